package visitor

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/thalilabs/storefront/internal/cart"
	"github.com/thalilabs/storefront/internal/session"
	pkgredis "github.com/thalilabs/storefront/pkg/redis"
)

// RedisStorageProvider keys cart and token state by visitor in Redis.
type RedisStorageProvider struct {
	Client *pkgredis.Client
	TTL    time.Duration
}

func (p *RedisStorageProvider) CartStorage(visitorID string) cart.Storage {
	return cart.NewRedisStorage(p.Client, visitorID, p.TTL)
}

func (p *RedisStorageProvider) TokenStorage(visitorID string) session.TokenStorage {
	return session.NewRedisTokenStorage(p.Client, visitorID, p.TTL)
}

// FileStorageProvider writes per-visitor state under the local profile
// directory. Used when the storefront runs without Redis.
type FileStorageProvider struct {
	Dir string
}

func (p *FileStorageProvider) CartStorage(visitorID string) cart.Storage {
	return cart.NewFileStorage(filepath.Join(p.Dir, "visitors", visitorID, "cart.json"))
}

func (p *FileStorageProvider) TokenStorage(visitorID string) session.TokenStorage {
	return session.NewFileTokenStorage(filepath.Join(p.Dir, "visitors", visitorID, "token"))
}

// MemoryStorageProvider keeps everything in process memory; tests and
// ephemeral dev runs.
type MemoryStorageProvider struct {
	mu     sync.Mutex
	carts  map[string]cart.Storage
	tokens map[string]session.TokenStorage
}

func NewMemoryStorageProvider() *MemoryStorageProvider {
	return &MemoryStorageProvider{
		carts:  map[string]cart.Storage{},
		tokens: map[string]session.TokenStorage{},
	}
}

func (p *MemoryStorageProvider) CartStorage(visitorID string) cart.Storage {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.carts[visitorID]; ok {
		return s
	}
	s := cart.NewMemoryStorage()
	p.carts[visitorID] = s
	return s
}

func (p *MemoryStorageProvider) TokenStorage(visitorID string) session.TokenStorage {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.tokens[visitorID]; ok {
		return s
	}
	s := session.NewMemoryTokenStorage()
	p.tokens[visitorID] = s
	return s
}
