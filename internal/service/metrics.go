package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsSold = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themepark_tickets_sold_total",
		Help: "Tickets sold by type.",
	}, []string{"type"})
	bookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themepark_bookings_created_total",
		Help: "Bookings created by activity.",
	}, []string{"booking_type"})
	usersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themepark_users_registered_total",
		Help: "Accounts created.",
	})
)
