// Command notifier consumes ticket and booking events and logs the
// confirmation notice each one would trigger.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/themepark/internal/queue"
)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("module", "notifier")

	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	if url == "" {
		logger.Error("RABBITMQ_URL is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsAddr := os.Getenv("NOTIFIER_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9101"
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()

	logger.Info("consuming", "queues", []string{queue.TicketPurchasedQueue, queue.BookingCreatedQueue})
	if err := queue.NewConsumer(url, logger).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
