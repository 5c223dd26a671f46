package boot

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
)

// NotifyShutdown returns a context cancelled when one of sig arrives. The
// signal is logged at error level before cancelling.
func NotifyShutdown(parent context.Context, logger *slog.Logger, sig ...os.Signal) (context.Context, context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, sig...)

	ctx, cancel := shutdownOnSignal(parent, logger, signals)
	return ctx, func() {
		signal.Stop(signals)
		cancel()
	}
}

// shutdownOnSignal stops relaying after the first signal so a second one gets
// the default behaviour and can kill a stuck shutdown.
func shutdownOnSignal(parent context.Context, logger *slog.Logger, signals chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case s := <-signals:
			logger.Error("got signal, stopping...", "signal", s.String())
			signal.Stop(signals)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
