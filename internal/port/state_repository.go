package port

import (
	"context"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

type CartRepository interface {
	// LoadCart returns the persisted cart, or nil when nothing was stored yet
	LoadCart(ctx context.Context) ([]domain.CartItem, error)

	// SaveCart overwrites the persisted cart with the full item list
	SaveCart(ctx context.Context, items []domain.CartItem) error
}

type SessionRepository interface {
	// LoadPage returns the last visited page for a browsing session, ok=false if none
	LoadPage(ctx context.Context, sessionID string) (page string, ok bool, err error)

	// SavePage records the current page for a browsing session
	SavePage(ctx context.Context, sessionID string, page string) error
}
