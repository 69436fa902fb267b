package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// ShutdownSignals are the signals that trigger a graceful shutdown
var ShutdownSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT}

// WithSignal returns a context canceled on the first shutdown signal. The
// received signal is logged. The returned stop func releases the handler.
func WithSignal(ctx context.Context, l *zap.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, ShutdownSignals...)

	go func() {
		select {
		case sig := <-sigCh:
			l.Info("shutdown signal received", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
