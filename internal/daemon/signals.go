// Package daemon supports the long-running reminder hosts: shutdown on
// signals, reminder metrics and installation as a user service.
package daemon

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals are the signals that end a reminder session.
var ShutdownSignals = []os.Signal{
	syscall.SIGINT,  // Ctrl+C
	syscall.SIGTERM, // Termination request
	syscall.SIGHUP,  // Terminal hangup
}

// SignalHandler handles OS signals for graceful shutdown.
type SignalHandler struct {
	signals chan os.Signal
	done    chan struct{}
}

// NewSignalHandler creates a new signal handler.
func NewSignalHandler() *SignalHandler {
	return &SignalHandler{
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
}

// Setup registers signal handlers.
func (h *SignalHandler) Setup() {
	signal.Notify(h.signals, ShutdownSignals...)
}

// Wait blocks until a shutdown signal is received, ctx is cancelled or Stop
// is called. It returns the signal, or nil.
func (h *SignalHandler) Wait(ctx context.Context) os.Signal {
	select {
	case sig := <-h.signals:
		return sig
	case <-ctx.Done():
		return nil
	case <-h.done:
		return nil
	}
}

// Stop stops waiting for signals.
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	close(h.done)
}

// WithShutdown returns a context that is cancelled when a shutdown signal
// arrives. The signal is logged. Calling cancel releases the handler.
func WithShutdown(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	h := NewSignalHandler()
	h.Setup()

	go func() {
		if sig := h.Wait(ctx); sig != nil {
			logger.Info("shutting down", "signal", sig.String())
			cancel()
		}
	}()

	return ctx, func() {
		cancel()
		h.Stop()
	}
}
