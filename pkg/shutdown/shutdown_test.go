package shutdown

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled")
	}
}

func TestWithSignals_Signal(t *testing.T) {
	ctx, cancel := WithSignals(context.Background(), zap.NewNop())
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send signal: %v", err)
	}
	waitDone(t, ctx)

	cause := context.Cause(ctx)
	if !errors.Is(cause, ErrSignal) {
		t.Errorf("expected ErrSignal cause, got %v", cause)
	}
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", ctx.Err())
	}
}

func TestWithSignals_Cancel(t *testing.T) {
	ctx, cancel := WithSignals(context.Background(), zap.NewNop())
	cancel()
	cancel()

	waitDone(t, ctx)
	if cause := context.Cause(ctx); errors.Is(cause, ErrSignal) {
		t.Errorf("expected plain cancellation, got %v", cause)
	}
}

func TestWithSignals_ParentCancelled(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := WithSignals(parent, zap.NewNop())
	defer cancel()

	cancelParent()
	waitDone(t, ctx)
	if !errors.Is(context.Cause(ctx), context.Canceled) {
		t.Errorf("expected parent cancellation, got %v", context.Cause(ctx))
	}
}
