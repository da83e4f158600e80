package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type redisStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(visitorID string) string
}

type redisStorage struct {
	store     redisStore
	visitorID string
	ttl       time.Duration
}

// NewRedisStorage persists the cart under the visitor's namespaced key
// so web-mode carts survive process restarts.
func NewRedisStorage(store redisStore, visitorID string, ttl time.Duration) Storage {
	return &redisStorage{store: store, visitorID: visitorID, ttl: ttl}
}

func (r *redisStorage) Load(ctx context.Context) ([]LineItem, error) {
	raw, err := r.store.Get(ctx, r.store.CartKey(r.visitorID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, nil
	}
	return items, nil
}

func (r *redisStorage) Save(ctx context.Context, items []LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.store.CartKey(r.visitorID), string(raw), r.ttl)
}
