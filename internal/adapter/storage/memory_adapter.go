package storage

import (
	"context"
	"sync"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

// MemoryAdapter keeps the same JSON payloads as RedisAdapter in a process
// local map. Nothing survives a restart.
type MemoryAdapter struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{values: make(map[string]string)}
}

// SetRaw stores value under key as-is.
func (m *MemoryAdapter) SetRaw(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Raw returns the stored value under key.
func (m *MemoryAdapter) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryAdapter) LoadCart(ctx context.Context) ([]domain.CartItem, error) {
	raw, ok := m.Raw(cartKey)
	if !ok {
		return nil, nil
	}
	return decodeCart(raw)
}

func (m *MemoryAdapter) SaveCart(ctx context.Context, items []domain.CartItem) error {
	raw, err := encodeCart(items)
	if err != nil {
		return err
	}
	m.SetRaw(cartKey, raw)
	return nil
}

func (m *MemoryAdapter) LoadPage(ctx context.Context, sessionID string) (string, bool, error) {
	page, ok := m.Raw(sessionKey(sessionID))
	return page, ok, nil
}

func (m *MemoryAdapter) SavePage(ctx context.Context, sessionID string, page string) error {
	m.SetRaw(sessionKey(sessionID), page)
	return nil
}

func (m *MemoryAdapter) AppendSubmission(ctx context.Context, sub domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := appendSubmission(m.values[submissionsKey], sub)
	if err != nil {
		return err
	}
	m.values[submissionsKey] = raw
	return nil
}

func (m *MemoryAdapter) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	raw, ok := m.Raw(submissionsKey)
	if !ok {
		return nil, nil
	}
	return decodeSubmissions(raw)
}

func (m *MemoryAdapter) Ping(ctx context.Context) error {
	return nil
}
