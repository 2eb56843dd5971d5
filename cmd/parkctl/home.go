package main

import (
	"context"
	"fmt"
	"os"
)

// landing holds the text of the home view in one language.
type landing struct {
	welcome     string
	hero        string
	description string
	planYourDay string
	loggedOut   string
	loggedIn    string // %s is the user's first name
}

var landings = map[string]landing{
	"en": {
		welcome:     "Welcome to Burger Land",
		hero:        "Take a juicy bite out of life at the tastiest theme park on earth.",
		description: "Ride the coasters that wind through our towering sesame-seed-bun mountains, cheer on the pickle parade and plan the whole day from here.",
		planYourDay: "Plan your day",
		loggedOut:   "log in to buy tickets: parkctl login (new here? parkctl register)",
		loggedIn:    "welcome back, %s. Buy tickets: parkctl tickets buy --date YYYY-MM-DD",
	},
	"es": {
		welcome:     "Bienvenido a Burger Land",
		hero:        "Dale un mordisco jugoso a la vida en el parque temático más sabroso del mundo.",
		description: "Sube a las montañas rusas que recorren nuestras imponentes montañas de pan con sésamo, anima el desfile de pepinillos y planifica todo el día desde aquí.",
		planYourDay: "Planifica tu día",
		loggedOut:   "inicia sesión para comprar entradas: parkctl login (¿eres nuevo? parkctl register)",
		loggedIn:    "hola de nuevo, %s. Compra entradas: parkctl tickets buy --date AAAA-MM-DD",
	},
}

// defaultLang is the --lang default: PARKCTL_LANG when set, else English.
func defaultLang() string {
	if v := os.Getenv("PARKCTL_LANG"); v != "" {
		return v
	}
	return "en"
}

// landingFor returns the text for lang. Unsupported languages keep English.
func landingFor(lang string) landing {
	if l, ok := landings[lang]; ok {
		return l
	}
	return landings["en"]
}

// home prints the landing view. The next step depends on whether a saved
// session still holds; an unreachable server counts as logged out.
func (a *app) home(ctx context.Context) error {
	l := landingFor(a.lang)
	next := l.loggedOut
	if err := a.session.Restore(ctx, a.api); err == nil && a.session.LoggedIn {
		next = fmt.Sprintf(l.loggedIn, a.session.User.FirstName)
	}

	fmt.Fprintln(a.out, l.welcome)
	fmt.Fprintln(a.out, l.hero)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, l.description)
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "%s: %s\n", l.planYourDay, next)
	return nil
}
