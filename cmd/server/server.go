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

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/themepark/internal/config"
)

const (
	_defaultIdleTimeout    = time.Minute
	_defaultReadTimeout    = 5 * time.Second
	_defaultWriteTimeout   = 10 * time.Second
	_defaultShutdownPeriod = 30 * time.Second
)

// serveHTTP runs e until SIGINT or SIGTERM, then drains in-flight requests.
func serveHTTP(e *echo.Echo, cfg config.Config, logger *slog.Logger) error {
	logger = logger.With("module", "server")
	e.Server.IdleTimeout = _defaultIdleTimeout
	e.Server.ReadTimeout = _defaultReadTimeout
	e.Server.WriteTimeout = _defaultWriteTimeout

	shutdownErrorChan := make(chan error)

	go func() {
		quitChan := make(chan os.Signal, 1)
		signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
		<-quitChan

		ctx, cancel := context.WithTimeout(context.Background(), _defaultShutdownPeriod)
		defer cancel()

		shutdownErrorChan <- e.Shutdown(ctx)
	}()

	logger.Info("starting server", slog.Group("server", "addr", cfg.Addr(), "env", cfg.Env))

	err := e.Start(cfg.Addr())
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErrorChan; err != nil {
		return err
	}

	logger.Info("stopped server", slog.Group("server", "addr", cfg.Addr()))
	return nil
}
