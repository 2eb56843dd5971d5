package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/iliyamo/themepark/internal/client"
)

func newFlags(name string, a *app) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(a.out)
	return flags
}

func (a *app) register(ctx context.Context, args []string) error {
	flags := newFlags("register", a)
	var request client.RegisterRequest
	flags.StringVar(&request.Email, "email", "", "account email")
	flags.StringVar(&request.Password, "password", "", "password, at least 8 characters")
	flags.StringVar(&request.FirstName, "first-name", "", "first name")
	flags.StringVar(&request.LastName, "last-name", "", "last name")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := client.CheckCredentials(true, request.Password, request.FirstName, request.LastName); err != nil {
		return err
	}

	user, err := a.api.Register(ctx, request)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User registered successfully (%s). Log in with: parkctl login --email %s\n", user.ID, user.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	flags := newFlags("login", a)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "password")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := client.CheckCredentials(false, *password, "", ""); err != nil {
		return err
	}

	user, token, err := a.api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.session.Login(user, token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Login successful. Signed in as %s\n", user.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	// The server holds no session state, so a failed call still logs out
	// locally.
	_ = a.api.Logout(ctx)
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out successfully")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	u := a.session.User
	fmt.Fprintf(a.out, "%s %s <%s> (%s)\n", u.FirstName, u.LastName, u.Email, u.ID)
	return nil
}

func (a *app) buyTicket(ctx context.Context, args []string) error {
	flags := newFlags("tickets buy", a)
	date := flags.String("date", "", "visit date, YYYY-MM-DD")
	ticketType := flags.String("type", "SINGLE", "SINGLE ($50) or FAMILY ($120)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if err := client.CheckTicketDate(*date, a.now()); err != nil {
		return err
	}

	ticket, err := a.api.PurchaseTicket(ctx, *date, *ticketType)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Ticket purchased successfully: %s %s $%.2f\n", ticket.Type, ticket.TicketDate.Format("2006-01-02"), ticket.Price)
	return a.printTickets(ctx)
}

func (a *app) listTickets(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	return a.printTickets(ctx)
}

func (a *app) printTickets(ctx context.Context) error {
	fmt.Fprintln(a.out, "Loading tickets...")
	tickets, err := a.api.Tickets(ctx)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		fmt.Fprintln(a.out, "You currently have no tickets.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tPRICE\tPURCHASED")
	for _, t := range tickets {
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\n", t.TicketDate.Format("2006-01-02"), t.Type, t.Price, t.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (a *app) createBooking(ctx context.Context, args []string) error {
	flags := newFlags("bookings create", a)
	bookingType := flags.String("type", "RESTAURANT", "RESTAURANT, VIP_TOUR or PHOTO_SESSION")
	date := flags.String("date", "", "booking date, YYYY-MM-DD")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if err := client.CheckBookingDate(*date, a.now()); err != nil {
		return err
	}

	booking, err := a.api.CreateBooking(ctx, *bookingType, *date)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booking created successfully: %s %s\n", booking.BookingType, booking.BookingDate.Format("2006-01-02"))
	return a.printBookings(ctx)
}

func (a *app) listBookings(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	return a.printBookings(ctx)
}

func (a *app) printBookings(ctx context.Context) error {
	fmt.Fprintln(a.out, "Loading bookings...")
	bookings, err := a.api.Bookings(ctx)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		fmt.Fprintln(a.out, "You currently have no bookings.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tBOOKED")
	for _, b := range bookings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.BookingDate.Format("2006-01-02"), b.BookingType, b.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
