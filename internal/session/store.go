package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/thalilabs/storefront/internal/backend"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
	"github.com/thalilabs/storefront/pkg/logger"
)

// API is the slice of the backend client the session store drives. The
// credential is attached to this one client instance, never to a shared
// process-wide default.
type API interface {
	Me(ctx context.Context) (*backend.User, error)
	Login(ctx context.Context, creds backend.Credentials) (*backend.AuthResult, error)
	Register(ctx context.Context, input backend.RegisterInput) (*backend.AuthResult, error)
	UpdateProfile(ctx context.Context, patch backend.ProfilePatch) (*backend.User, error)
	SetCredential(token string)
	ClearCredential()
}

// Store owns the authentication session: the identity, the persisted
// bearer credential, and the one-shot bootstrap flag.
type Store struct {
	api    API
	tokens TokenStorage
	logg   *logger.Logger

	mu      sync.RWMutex
	user    *backend.User
	loading bool

	subMu sync.Mutex
	subs  map[int]func()
	nextS int
}

// NewStore wires the session store. Loading stays true until Bootstrap
// has run once.
func NewStore(api API, tokens TokenStorage, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("backend api is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token storage is required")
	}
	return &Store{
		api:     api,
		tokens:  tokens,
		logg:    logg,
		loading: true,
		subs:    map[int]func(){},
	}, nil
}

// Bootstrap validates any persisted credential. With no stored token it
// settles unauthenticated without touching the network. A rejected or
// unreachable validation silently demotes to unauthenticated and clears
// the stored credential.
func (s *Store) Bootstrap(ctx context.Context) {
	defer s.settle()

	token, err := s.tokens.Load(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "session.token_load_failed")
		}
		return
	}
	if strings.TrimSpace(token) == "" {
		return
	}

	s.api.SetCredential(token)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.api.ClearCredential()
		if clearErr := s.tokens.Clear(ctx); clearErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "session.token_clear_failed")
		}
		if s.logg != nil {
			s.logg.Info(ctx, "session.credential_rejected")
		}
		return
	}

	s.setUser(user)
}

// Login exchanges credentials for a session. The returned identity is
// also retained as the current user.
func (s *Store) Login(ctx context.Context, email, password string) (*backend.User, error) {
	result, err := s.api.Login(ctx, backend.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, result)
}

// Register creates an account and auto-authenticates it.
func (s *Store) Register(ctx context.Context, input backend.RegisterInput) (*backend.User, error) {
	result, err := s.api.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, result)
}

// Logout drops the credential and identity. Purely local; always
// succeeds.
func (s *Store) Logout(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "session.token_clear_failed")
	}
	s.api.ClearCredential()
	s.setUser(nil)
}

// UpdateProfile patches the identity; the current user changes only
// when the backend accepts the update.
func (s *Store) UpdateProfile(ctx context.Context, patch backend.ProfilePatch) (*backend.User, error) {
	user, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// User returns the current identity, or nil when unauthenticated.
func (s *Store) User() *backend.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// Loading reports whether the initial bootstrap is still in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsAdmin reports whether the current identity carries the admin flag.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// Subscribe registers a callback fired after every session change. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextS
	s.nextS++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) adopt(ctx context.Context, result *backend.AuthResult) (*backend.User, error) {
	if result == nil || strings.TrimSpace(result.Token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend returned no credential")
	}
	if err := s.tokens.Save(ctx, result.Token); err != nil && s.logg != nil {
		// Session works for this process lifetime; it just won't
		// survive a restart.
		s.logg.Warn(ctx, "session.token_save_failed")
	}
	s.api.SetCredential(result.Token)
	user := result.User
	s.setUser(&user)
	return s.User(), nil
}

func (s *Store) setUser(user *backend.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify()
}

func (s *Store) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
