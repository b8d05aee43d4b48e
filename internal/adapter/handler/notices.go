package handler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

const (
	DefaultNoticeCapacity = 20
	DefaultNoticeTTL      = 30 * time.Minute
)

type noticeQueue struct {
	notices  []domain.Notice
	lastSeen time.Time
}

// NoticeBoard queues notices per session until the view collects them. Each
// queue keeps only the most recent notices, and queues nobody collected
// within the TTL are dropped.
type NoticeBoard struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	queues    map[string]*noticeQueue
	lastSweep time.Time
	now       func() time.Time
	logger    *zap.Logger
}

func NewNoticeBoard(capacity int, ttl time.Duration, logger *zap.Logger) *NoticeBoard {
	if capacity <= 0 {
		capacity = DefaultNoticeCapacity
	}
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &NoticeBoard{
		capacity:  capacity,
		ttl:       ttl,
		queues:    make(map[string]*noticeQueue),
		lastSweep: time.Now(),
		now:       time.Now,
		logger:    logger,
	}
}

func (b *NoticeBoard) Notify(ctx context.Context, notice domain.Notice) {
	sessionID := SessionFromContext(ctx)
	b.logger.Info("notice",
		zap.String("session_id", sessionID),
		zap.String("level", string(notice.Level)),
		zap.String("message", notice.Message))

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.evictIdle(now)

	q, ok := b.queues[sessionID]
	if !ok {
		q = &noticeQueue{}
		b.queues[sessionID] = q
	}
	q.lastSeen = now
	q.notices = append(q.notices, notice)
	if len(q.notices) > b.capacity {
		q.notices = q.notices[len(q.notices)-b.capacity:]
	}
}

// Drain returns and forgets the pending notices of a session, oldest first.
func (b *NoticeBoard) Drain(sessionID string) []domain.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.evictIdle(b.now())

	q, ok := b.queues[sessionID]
	delete(b.queues, sessionID)
	if !ok || q.notices == nil {
		return []domain.Notice{}
	}
	return q.notices
}

// Pending reports how many sessions have uncollected notices.
func (b *NoticeBoard) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queues)
}

// evictIdle sweeps stale queues at most once per TTL. Callers hold mu.
func (b *NoticeBoard) evictIdle(now time.Time) {
	if now.Sub(b.lastSweep) < b.ttl {
		return
	}
	b.lastSweep = now
	for id, q := range b.queues {
		if now.Sub(q.lastSeen) > b.ttl {
			delete(b.queues, id)
		}
	}
}
