package infra

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ShutdownTimeout bounds the whole callback chain run by Graceful.
const ShutdownTimeout = 10 * time.Second

// Graceful blocks until SIGINT or SIGTERM, then runs cb in order.
func Graceful(cb ...func(context.Context)) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	for _, f := range cb {
		f(ctx)
	}
	slog.Info("shutdown complete")
}
