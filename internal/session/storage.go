package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

// TokenStorage persists only the opaque bearer token string; no other
// session data is ever written.
type TokenStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type memoryTokens struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStorage keeps the credential in process memory only.
func NewMemoryTokenStorage() TokenStorage {
	return &memoryTokens{}
}

func (m *memoryTokens) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memoryTokens) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

type fileTokens struct {
	path string
}

// NewFileTokenStorage persists the token in the local profile
// directory, surviving restarts on one device.
func NewFileTokenStorage(path string) TokenStorage {
	return &fileTokens{path: path}
}

func (f *fileTokens) Load(context.Context) (string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (f *fileTokens) Save(_ context.Context, token string) error {
	if dir := filepath.Dir(f.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *fileTokens) Clear(context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type redisTokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	TokenKey(visitorID string) string
}

type redisTokens struct {
	store     redisTokenStore
	visitorID string
	ttl       time.Duration
}

// NewRedisTokenStorage keys the token by visitor for web mode.
func NewRedisTokenStorage(store redisTokenStore, visitorID string, ttl time.Duration) TokenStorage {
	return &redisTokens{store: store, visitorID: visitorID, ttl: ttl}
}

func (r *redisTokens) Load(ctx context.Context) (string, error) {
	token, err := r.store.Get(ctx, r.store.TokenKey(r.visitorID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (r *redisTokens) Save(ctx context.Context, token string) error {
	return r.store.Set(ctx, r.store.TokenKey(r.visitorID), token, r.ttl)
}

func (r *redisTokens) Clear(ctx context.Context) error {
	return r.store.Del(ctx, r.store.TokenKey(r.visitorID))
}
