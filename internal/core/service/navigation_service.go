package service

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
	"github.com/rl1809/bakery-storefront/internal/port"
)

// Navigator tracks which view a browsing session is on. The current page is
// written to session-scoped storage so a reload lands on the same view; the
// cart overlay flag lives in memory only.
type Navigator struct {
	repo      port.SessionRepository
	sessionID string
	logger    *zap.Logger
	state     domain.NavigationState
	// stored is set once the current page is known to be in storage.
	stored bool
}

func NewNavigator(ctx context.Context, repo port.SessionRepository, sessionID string, logger *zap.Logger) *Navigator {
	n := &Navigator{
		repo:      repo,
		sessionID: sessionID,
		logger:    logger.With(zap.String("session_id", sessionID)),
		state:     domain.NavigationState{CurrentPage: domain.PageHome},
	}

	saved, ok, err := repo.LoadPage(ctx, sessionID)
	if err != nil {
		n.logger.Warn("failed to load last visited page", zap.Error(err))
		return n
	}
	if !ok {
		return n
	}
	page, valid := domain.ParsePage(saved)
	if !valid {
		n.logger.Warn("ignoring unknown stored page", zap.String("page", saved))
		return n
	}
	n.state.CurrentPage = page
	n.stored = true
	return n
}

// Refresh re-reads the stored page. A page that was stored and is now gone
// means the session expired, so the state starts over. Load errors and pages
// that never reached storage keep the in-memory state.
func (n *Navigator) Refresh(ctx context.Context) {
	saved, ok, err := n.repo.LoadPage(ctx, n.sessionID)
	if err != nil {
		n.logger.Warn("failed to refresh current page", zap.Error(err))
		return
	}
	if !ok {
		if n.stored {
			n.logger.Debug("stored page expired, starting over")
			n.state = domain.NavigationState{CurrentPage: domain.PageHome}
			n.stored = false
		}
		return
	}
	if page, valid := domain.ParsePage(saved); valid {
		n.state.CurrentPage = page
		n.stored = true
	}
}

func (n *Navigator) SessionID() string {
	return n.sessionID
}

func (n *Navigator) State() domain.NavigationState {
	return n.state
}

func (n *Navigator) CurrentPage() domain.Page {
	return n.state.CurrentPage
}

// Navigate switches to page. Unknown pages are rejected without changing state.
func (n *Navigator) Navigate(ctx context.Context, page string) error {
	p, ok := domain.ParsePage(page)
	if !ok {
		return errors.Wrapf(ErrUnknownPage, "navigate to %q", page)
	}
	if p == n.state.CurrentPage {
		return nil
	}

	n.state.CurrentPage = p
	if err := n.repo.SavePage(ctx, n.sessionID, string(p)); err != nil {
		n.logger.Warn("failed to persist current page", zap.Error(err), zap.String("page", string(p)))
		n.stored = false
		return nil
	}
	n.stored = true
	return nil
}

func (n *Navigator) OpenCart() {
	n.state.CartOpen = true
}

func (n *Navigator) CloseCart() {
	n.state.CartOpen = false
}
