package storage

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

const (
	DefaultSessionTTL = 30 * time.Minute
	maxAppendRetries  = 5
)

var ErrOptimisticLock = errors.New("optimistic lock conflict")

// RedisAdapter stores the cart without expiry and the session page with a
// TTL, which stands in for browser session storage: a session that stays idle
// longer than the TTL starts again on the home page.
type RedisAdapter struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedisAdapter(client *redis.Client, sessionTTL time.Duration) *RedisAdapter {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &RedisAdapter{client: client, sessionTTL: sessionTTL}
}

func (r *RedisAdapter) LoadCart(ctx context.Context) ([]domain.CartItem, error) {
	raw, err := r.client.Get(ctx, cartKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get cart")
	}
	return decodeCart(raw)
}

func (r *RedisAdapter) SaveCart(ctx context.Context, items []domain.CartItem) error {
	raw, err := encodeCart(items)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, cartKey, raw, 0).Err(); err != nil {
		return errors.Wrap(err, "set cart")
	}
	return nil
}

func (r *RedisAdapter) LoadPage(ctx context.Context, sessionID string) (string, bool, error) {
	page, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "get session page")
	}
	return page, true, nil
}

func (r *RedisAdapter) SavePage(ctx context.Context, sessionID string, page string) error {
	if err := r.client.Set(ctx, sessionKey(sessionID), page, r.sessionTTL).Err(); err != nil {
		return errors.Wrap(err, "set session page")
	}
	return nil
}

// AppendSubmission rewrites the whole submission list under WATCH, retrying
// when another writer got in between.
func (r *RedisAdapter) AppendSubmission(ctx context.Context, sub domain.Submission) error {
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, submissionsKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		updated, err := appendSubmission(raw, sub)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, submissionsKey, updated, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxAppendRetries; i++ {
		err := r.client.Watch(ctx, txf, submissionsKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return errors.Wrap(err, "append submission")
	}
	return ErrOptimisticLock
}

func (r *RedisAdapter) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	raw, err := r.client.Get(ctx, submissionsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get submissions")
	}
	return decodeSubmissions(raw)
}

func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
