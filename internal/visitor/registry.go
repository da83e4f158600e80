package visitor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/thalilabs/storefront/internal/backend"
	"github.com/thalilabs/storefront/internal/cart"
	"github.com/thalilabs/storefront/internal/guard"
	"github.com/thalilabs/storefront/internal/session"
	"github.com/thalilabs/storefront/pkg/config"
	"github.com/thalilabs/storefront/pkg/logger"
)

// Stores bundles the state owned by one visitor. Each visitor gets a
// dedicated backend client so the bearer credential stays scoped to
// that client instance.
type Stores struct {
	ID      string
	Cart    *cart.Store
	Session *session.Store
	Backend *backend.Client
}

// StorageProvider supplies per-visitor persistence.
type StorageProvider interface {
	CartStorage(visitorID string) cart.Storage
	TokenStorage(visitorID string) session.TokenStorage
}

// RegistryParams groups dependencies for the visitor registry.
type RegistryParams struct {
	Backend config.BackendConfig
	Storage StorageProvider
	Logger  *logger.Logger
}

// Registry lazily builds and caches the stores for each visitor. The
// session bootstrap runs exactly once per visitor per process.
type Registry struct {
	params RegistryParams

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	once   sync.Once
	stores *Stores
	err    error
}

// NewRegistry validates dependencies and returns an empty registry.
func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Storage == nil {
		return nil, fmt.Errorf("storage provider is required")
	}
	if strings.TrimSpace(params.Backend.BaseURL) == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	return &Registry{
		params:  params,
		entries: map[string]*entry{},
	}, nil
}

// Get returns the visitor's stores, building and bootstrapping them on
// first use.
func (r *Registry) Get(ctx context.Context, visitorID string) (*Stores, error) {
	if strings.TrimSpace(visitorID) == "" {
		return nil, fmt.Errorf("visitor id is required")
	}

	r.mu.Lock()
	e, ok := r.entries[visitorID]
	if !ok {
		e = &entry{}
		r.entries[visitorID] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		e.stores, e.err = r.build(ctx, visitorID)
	})
	if e.err != nil {
		// Allow a later request to retry a failed build.
		r.mu.Lock()
		if r.entries[visitorID] == e {
			delete(r.entries, visitorID)
		}
		r.mu.Unlock()
	}
	return e.stores, e.err
}

// Resolve implements the guard's session lookup.
func (r *Registry) Resolve(ctx context.Context, visitorID string) (guard.Session, error) {
	stores, err := r.Get(ctx, visitorID)
	if err != nil {
		return guard.Session{}, err
	}
	user := stores.Session.User()
	return guard.Session{
		Loading:       stores.Session.Loading(),
		Authenticated: user != nil,
		Admin:         user != nil && user.IsAdmin,
	}, nil
}

// Drop forgets the visitor's in-process stores. Persisted state is left
// alone.
func (r *Registry) Drop(visitorID string) {
	r.mu.Lock()
	delete(r.entries, visitorID)
	r.mu.Unlock()
}

func (r *Registry) build(ctx context.Context, visitorID string) (*Stores, error) {
	client, err := backend.NewClient(r.params.Backend, r.params.Logger)
	if err != nil {
		return nil, fmt.Errorf("build backend client: %w", err)
	}

	sessionStore, err := session.NewStore(client, r.params.Storage.TokenStorage(visitorID), r.params.Logger)
	if err != nil {
		return nil, fmt.Errorf("build session store: %w", err)
	}
	sessionStore.Bootstrap(ctx)

	cartStore := cart.NewStore(ctx, r.params.Storage.CartStorage(visitorID), r.params.Logger)

	return &Stores{
		ID:      visitorID,
		Cart:    cartStore,
		Session: sessionStore,
		Backend: client,
	}, nil
}
