package port

import (
	"context"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice)
}

type NotifierFunc func(ctx context.Context, notice domain.Notice)

func (f NotifierFunc) Notify(ctx context.Context, notice domain.Notice) {
	f(ctx, notice)
}
