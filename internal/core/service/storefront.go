package service

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
	"github.com/rl1809/bakery-storefront/internal/port"
)

const (
	clearCartPrompt      = "Are you sure you want to clear your cart?"
	msgOutOfStock        = "Sorry, this item is currently out of stock"
	msgItemRemoved       = "Item removed from cart"
	msgCartCleared       = "Cart cleared"
	msgContactThanks     = "Thank you! We'll get back to you within 24 hours."
	msgMissingFields     = "Please fill in all required fields"
	msgInvalidEmail      = "Please enter a valid email address"
	msgInvalidOrderType  = "Please choose a valid inquiry type"
	msgProductNotFound   = "Sorry, we couldn't find that product"
	msgSubmissionFailure = "Sorry, we couldn't send your message"
)

type StorefrontDeps struct {
	Catalog     []domain.Product
	Carts       port.CartRepository
	Sessions    port.SessionRepository
	Submissions port.SubmissionRepository
	Confirmer   port.Confirmer
	Notifier    port.Notifier
	Logger      *zap.Logger
	// SessionTTL is how long an idle session keeps its navigation state.
	// Zero means DefaultSessionTTL.
	SessionTTL time.Duration
	Now        func() time.Time
}

const DefaultSessionTTL = 30 * time.Minute

type sessionEntry struct {
	nav      *Navigator
	lastSeen time.Time
}

// Storefront is the call boundary the view layer talks to. It owns the cart,
// the catalog, the contact log and one Navigator per browsing session, and
// performs the checks that belong at the call site: stock before adding,
// confirmation before clearing.
//
// Like the services it wraps, Storefront expects to be driven from a single
// goroutine.
type Storefront struct {
	Cart    *CartService
	Catalog *CatalogService
	Contact *ContactService

	sessions   port.SessionRepository
	confirmer  port.Confirmer
	notifier   port.Notifier
	logger     *zap.Logger
	sessionTTL time.Duration
	now        func() time.Time
	navigators map[string]*sessionEntry
	lastSweep  time.Time
}

func NewStorefront(ctx context.Context, deps StorefrontDeps) *Storefront {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := deps.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Storefront{
		Cart:       NewCartService(ctx, deps.Carts, logger.Named("cart")),
		Catalog:    NewCatalogService(deps.Catalog),
		Contact:    NewContactService(deps.Submissions, logger.Named("contact")),
		sessions:   deps.Sessions,
		confirmer:  deps.Confirmer,
		notifier:   deps.Notifier,
		logger:     logger,
		sessionTTL: ttl,
		now:        now,
		navigators: make(map[string]*sessionEntry),
		lastSweep:  now(),
	}
}

func (s *Storefront) notify(ctx context.Context, level domain.NoticeLevel, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, domain.Notice{Level: level, Message: message})
}

func (s *Storefront) AddToCart(ctx context.Context, productID int) (domain.CartItem, error) {
	product, err := s.Catalog.Product(productID)
	if err != nil {
		s.notify(ctx, domain.NoticeError, msgProductNotFound)
		return domain.CartItem{}, errors.Wrapf(err, "add product %d", productID)
	}
	if !product.InStock {
		s.notify(ctx, domain.NoticeError, msgOutOfStock)
		return domain.CartItem{}, errors.Wrapf(ErrOutOfStock, "add product %d", productID)
	}

	item := s.Cart.AddItem(ctx, product)
	s.notify(ctx, domain.NoticeSuccess, product.Name+" added to cart!")
	return item, nil
}

// UpdateQuantity sets an absolute quantity; anything below 1 removes the item.
func (s *Storefront) UpdateQuantity(ctx context.Context, productID, quantity int) {
	if quantity < 1 {
		s.RemoveFromCart(ctx, productID)
		return
	}
	s.Cart.SetQuantity(ctx, productID, quantity)
}

func (s *Storefront) RemoveFromCart(ctx context.Context, productID int) {
	s.Cart.RemoveItem(ctx, productID)
	s.notify(ctx, domain.NoticeSuccess, msgItemRemoved)
}

// ClearCart empties the cart once the user confirms. It reports whether the
// cart was cleared.
func (s *Storefront) ClearCart(ctx context.Context) bool {
	if s.confirmer == nil || !s.confirmer.Confirm(ctx, clearCartPrompt) {
		return false
	}
	s.Cart.Clear(ctx)
	s.notify(ctx, domain.NoticeSuccess, msgCartCleared)
	return true
}

func (s *Storefront) CartSummary() domain.CartSummary {
	return s.Cart.Summary()
}

func (s *Storefront) Search(searchTerm, category string) []domain.Product {
	return s.Catalog.Filter(searchTerm, category)
}

// Session returns the Navigator for sessionID. A cached Navigator is
// refreshed from session storage, so a page that expired there is not served
// from memory. Sessions idle longer than the session TTL are dropped.
func (s *Storefront) Session(ctx context.Context, sessionID string) *Navigator {
	now := s.now()
	s.evictIdle(now)

	if e, ok := s.navigators[sessionID]; ok {
		if now.Sub(e.lastSeen) > s.sessionTTL {
			delete(s.navigators, sessionID)
		} else {
			e.lastSeen = now
			e.nav.Refresh(ctx)
			return e.nav
		}
	}

	n := NewNavigator(ctx, s.sessions, sessionID, s.logger.Named("navigation"))
	s.navigators[sessionID] = &sessionEntry{nav: n, lastSeen: now}
	return n
}

// evictIdle sweeps idle sessions at most once per TTL.
func (s *Storefront) evictIdle(now time.Time) {
	if now.Sub(s.lastSweep) < s.sessionTTL {
		return
	}
	s.lastSweep = now
	for id, e := range s.navigators {
		if now.Sub(e.lastSeen) > s.sessionTTL {
			delete(s.navigators, id)
		}
	}
}

// ActiveSessions reports how many sessions hold in-memory navigation state.
func (s *Storefront) ActiveSessions() int {
	return len(s.navigators)
}

// EndSession forgets the in-memory navigation state of a session. Whatever
// was persisted expires with the session storage.
func (s *Storefront) EndSession(sessionID string) {
	delete(s.navigators, sessionID)
}

func (s *Storefront) SubmitContact(ctx context.Context, form domain.ContactForm) (domain.Submission, error) {
	submission, err := s.Contact.Submit(ctx, form)
	switch {
	case err == nil:
		s.notify(ctx, domain.NoticeSuccess, msgContactThanks)
	case errors.Is(err, ErrMissingFields):
		s.notify(ctx, domain.NoticeError, msgMissingFields)
	case errors.Is(err, ErrInvalidEmail):
		s.notify(ctx, domain.NoticeError, msgInvalidEmail)
	case errors.Is(err, ErrInvalidOrderType):
		s.notify(ctx, domain.NoticeError, msgInvalidOrderType)
	default:
		s.notify(ctx, domain.NoticeError, msgSubmissionFailure)
	}
	return submission, err
}
