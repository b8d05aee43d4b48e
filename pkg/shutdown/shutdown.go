package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// ErrSignal is the cancellation cause when a termination signal arrived.
var ErrSignal = errors.New("termination signal")

// WithSignals returns a context cancelled on the first SIGINT or SIGTERM, with
// context.Cause reporting ErrSignal and the signal name. After the first
// signal the default handlers are restored, so a second one kills the
// process even when graceful shutdown hangs.
func WithSignals(parent context.Context, log *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	var once sync.Once
	release := func(cause error) {
		once.Do(func() {
			signal.Stop(ch)
			cancel(cause)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			release(context.Cause(ctx))
		case sig := <-ch:
			log.Info("signal received, shutting down", zap.String("signal", sig.String()))
			release(errors.Wrap(ErrSignal, sig.String()))
		}
	}()

	return ctx, func() { release(context.Canceled) }
}
