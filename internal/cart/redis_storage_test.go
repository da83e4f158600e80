package cart

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type fakeRedisStore struct {
	data map[string]string
}

func (f *fakeRedisStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeRedisStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeRedisStore) CartKey(visitorID string) string {
	return "thali:cart:" + visitorID
}

func TestRedisStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedisStore{data: map[string]string{}}
	storage := NewRedisStorage(fake, "v-1", time.Hour)

	store := NewStore(ctx, storage, nil)
	store.Add(ctx, ProductSnapshot{ID: "p1", Name: "momo", Price: decimal.NewFromInt(180)}, 2)

	reloaded := NewStore(ctx, NewRedisStorage(fake, "v-1", time.Hour), nil)
	items := reloaded.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected reloaded cart %+v", items)
	}
	if !items[0].Product.Price.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("price did not survive the round trip: %s", items[0].Product.Price)
	}
}

func TestRedisStorageMissingKeyLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedisStore{data: map[string]string{}}

	store := NewStore(ctx, NewRedisStorage(fake, "v-2", time.Hour), nil)
	if len(store.Items()) != 0 {
		t.Fatalf("missing key should load as empty cart")
	}
}

func TestRedisStorageMalformedPayloadLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedisStore{data: map[string]string{"thali:cart:v-3": "{oops"}}

	store := NewStore(ctx, NewRedisStorage(fake, "v-3", time.Hour), nil)
	if len(store.Items()) != 0 {
		t.Fatalf("malformed payload should load as empty cart")
	}
}
