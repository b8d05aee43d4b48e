package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type event struct {
	ctx  context.Context
	fn   func(ctx context.Context)
	done chan struct{}
}

// EventLoop runs UI events one at a time on a single goroutine, so the
// services behind it never see concurrent mutation.
type EventLoop struct {
	events chan event
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

func NewEventLoop(queueSize int, logger *zap.Logger) *EventLoop {
	return &EventLoop{
		events: make(chan event, queueSize),
		logger: logger,
	}
}

// Run processes events until Close is called and the queue is drained.
func (l *EventLoop) Run() {
	for ev := range l.events {
		l.dispatch(ev)
	}
	l.logger.Debug("event loop drained")
}

func (l *EventLoop) dispatch(ev event) {
	defer close(ev.done)
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event handler panicked", zap.Any("panic", r))
		}
	}()
	ev.fn(ev.ctx)
}

// Do enqueues fn and waits for it to finish. fn receives a context that keeps
// ctx's values but not its cancellation: once accepted, an event always runs
// to completion. Do returns ctx.Err() if ctx ends first, and ErrLoopClosed
// after Close.
func (l *EventLoop) Do(ctx context.Context, fn func(ctx context.Context)) error {
	ev := event{
		ctx:  context.WithoutCancel(ctx),
		fn:   fn,
		done: make(chan struct{}),
	}

	if err := l.enqueue(ctx, ev); err != nil {
		return err
	}

	select {
	case <-ev.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *EventLoop) enqueue(ctx context.Context, ev event) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return ErrLoopClosed
	}
	select {
	case l.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *EventLoop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	close(l.events)
}
