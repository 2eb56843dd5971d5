// Command parkctl is the terminal client for the theme park API: account
// registration, login, and buying tickets and booking experiences.
//
//	parkctl [--api URL] [--session FILE] [--lang en|es] [command] [flags]
//
// Commands: home (the default), register, login, logout, whoami,
// tickets [buy], bookings [create].
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/iliyamo/themepark/internal/client"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, time.Now); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

var errNotLoggedIn = errors.New("please log in first (parkctl login)")

type app struct {
	api     *client.Client
	session *client.SessionStore
	out     io.Writer
	now     func() time.Time
	lang    string
}

func run(ctx context.Context, args []string, out io.Writer, now func() time.Time) error {
	flags := pflag.NewFlagSet("parkctl", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(out)
	apiURL := flags.String("api", defaultAPI(), "API base URL (env PARK_API_URL)")
	sessionPath := flags.String("session", client.DefaultSessionPath(), "session token file")
	lang := flags.String("lang", defaultLang(), "language of the home view: en or es (env PARKCTL_LANG)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	a := &app{
		api:     client.New(*apiURL),
		session: client.NewSessionStore(*sessionPath),
		out:     out,
		now:     now,
		lang:    *lang,
	}
	return a.dispatch(ctx, flags.Args())
}

func defaultAPI() string {
	if v := os.Getenv("PARK_API_URL"); v != "" {
		return v
	}
	return "http://localhost:3000"
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.home(ctx)
	}
	command, rest := args[0], args[1:]
	switch command {
	case "home":
		return a.home(ctx)
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "tickets":
		if len(rest) > 0 && rest[0] == "buy" {
			return a.buyTicket(ctx, rest[1:])
		}
		return a.listTickets(ctx)
	case "bookings":
		if len(rest) > 0 && rest[0] == "create" {
			return a.createBooking(ctx, rest[1:])
		}
		return a.listBookings(ctx)
	}
	return fmt.Errorf("unknown command %q", command)
}

// requireSession restores the saved login or refuses to continue.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.session.Restore(ctx, a.api); err != nil {
		return err
	}
	if !a.session.LoggedIn {
		return errNotLoggedIn
	}
	return nil
}

// userMessage prefers the server's own text over the wrapped error chain.
func userMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
