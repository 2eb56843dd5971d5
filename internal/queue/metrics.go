package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themepark_events_published_total",
		Help: "Events handed to the broker, by queue and outcome.",
	}, []string{"queue", "outcome"})
	noticesHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themepark_notices_handled_total",
		Help: "Consumed events, by queue and outcome.",
	}, []string{"queue", "outcome"})
)
