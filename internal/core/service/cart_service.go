package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
	"github.com/rl1809/bakery-storefront/internal/port"
)

// CartService owns the shopping cart. Every mutation is written through to
// the repository; write failures are logged and the in-memory cart stays
// authoritative.
//
// CartService is not safe for concurrent use. Callers serialize access, see
// EventLoop.
type CartService struct {
	repo   port.CartRepository
	logger *zap.Logger
	items  []domain.CartItem
}

// NewCartService rehydrates the cart from repo. A missing or unreadable cart
// yields an empty one.
func NewCartService(ctx context.Context, repo port.CartRepository, logger *zap.Logger) *CartService {
	s := &CartService{repo: repo, logger: logger}

	items, err := repo.LoadCart(ctx)
	if err != nil {
		logger.Warn("failed to load cart, starting empty", zap.Error(err))
		return s
	}
	s.items = sanitize(items, logger)
	return s
}

// sanitize drops entries that would break the one-line-per-product and
// quantity >= 1 invariants.
func sanitize(items []domain.CartItem, logger *zap.Logger) []domain.CartItem {
	seen := make(map[int]struct{}, len(items))
	out := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			logger.Warn("dropping stored cart item with invalid quantity",
				zap.Int("product_id", item.ID), zap.Int("quantity", item.Quantity))
			continue
		}
		if _, dup := seen[item.ID]; dup {
			logger.Warn("dropping duplicate stored cart item", zap.Int("product_id", item.ID))
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// AddItem increments the line for product, or appends a new line with
// quantity 1. Stock is checked by the caller.
func (s *CartService) AddItem(ctx context.Context, product domain.Product) domain.CartItem {
	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i].Quantity++
		item := s.items[i]
		s.persist(ctx)
		return item
	}

	item := domain.CartItem{Product: product, Quantity: 1}
	s.items = append(s.items, item)
	s.persist(ctx)
	return item
}

// SetQuantity sets an absolute quantity. Anything below 1 removes the line.
// It reports whether the cart changed.
func (s *CartService) SetQuantity(ctx context.Context, productID, quantity int) bool {
	if quantity < 1 {
		return s.RemoveItem(ctx, productID)
	}

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.items[i].Quantity = quantity
	s.persist(ctx)
	return true
}

// RemoveItem deletes the line for productID and reports whether it existed.
func (s *CartService) RemoveItem(ctx context.Context, productID int) bool {
	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.persist(ctx)
	return true
}

func (s *CartService) Clear(ctx context.Context) {
	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the cart lines in display order.
func (s *CartService) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *CartService) TotalItems() int {
	return domain.TotalItems(s.items)
}

func (s *CartService) TotalPrice() decimal.Decimal {
	return domain.TotalPrice(s.items)
}

func (s *CartService) Summary() domain.CartSummary {
	return domain.CartSummary{
		Items:      s.Items(),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	}
}

func (s *CartService) indexOf(productID int) int {
	for i, item := range s.items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (s *CartService) persist(ctx context.Context) {
	if err := s.repo.SaveCart(ctx, s.Items()); err != nil {
		s.logger.Warn("failed to persist cart", zap.Error(err), zap.Int("items", len(s.items)))
	}
}
