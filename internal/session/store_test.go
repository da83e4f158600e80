package session

import (
	"context"
	"testing"

	"github.com/thalilabs/storefront/internal/backend"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
)

type fakeAPI struct {
	credential string

	meCalls   int
	meUser    *backend.User
	meErr     error
	loginRes  *backend.AuthResult
	loginErr  error
	regRes    *backend.AuthResult
	regErr    error
	updateRes *backend.User
	updateErr error
}

func (f *fakeAPI) Me(context.Context) (*backend.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func (f *fakeAPI) Login(context.Context, backend.Credentials) (*backend.AuthResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) Register(context.Context, backend.RegisterInput) (*backend.AuthResult, error) {
	return f.regRes, f.regErr
}

func (f *fakeAPI) UpdateProfile(context.Context, backend.ProfilePatch) (*backend.User, error) {
	return f.updateRes, f.updateErr
}

func (f *fakeAPI) SetCredential(token string) { f.credential = token }
func (f *fakeAPI) ClearCredential()           { f.credential = "" }

func newTestStore(t *testing.T, api *fakeAPI, tokens TokenStorage) *Store {
	t.Helper()
	store, err := NewStore(api, tokens, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestBootstrapWithoutTokenSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	store := newTestStore(t, api, NewMemoryTokenStorage())

	if !store.Loading() {
		t.Fatalf("store should report loading before bootstrap")
	}

	store.Bootstrap(ctx)

	if api.meCalls != 0 {
		t.Fatalf("expected zero validation calls, got %d", api.meCalls)
	}
	if store.Loading() {
		t.Fatalf("loading should settle after bootstrap")
	}
	if store.User() != nil {
		t.Fatalf("expected unauthenticated state")
	}
}

func TestBootstrapWithValidTokenAuthenticates(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{meUser: &backend.User{ID: "u1", Name: "Asha"}}
	tokens := NewMemoryTokenStorage()
	if err := tokens.Save(ctx, "stored-token"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	store := newTestStore(t, api, tokens)

	store.Bootstrap(ctx)

	if api.credential != "stored-token" {
		t.Fatalf("credential should be attached before validation")
	}
	if user := store.User(); user == nil || user.ID != "u1" {
		t.Fatalf("expected authenticated user, got %+v", user)
	}
	if store.Loading() {
		t.Fatalf("loading should settle")
	}
}

func TestBootstrapRejectedTokenDemotesSilently(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{meErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "expired")}
	tokens := NewMemoryTokenStorage()
	if err := tokens.Save(ctx, "stale-token"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	store := newTestStore(t, api, tokens)

	store.Bootstrap(ctx)

	if store.User() != nil {
		t.Fatalf("expected unauthenticated state after rejection")
	}
	if api.credential != "" {
		t.Fatalf("credential should be detached after rejection")
	}
	if stored, _ := tokens.Load(ctx); stored != "" {
		t.Fatalf("stored credential should be cleared, got %q", stored)
	}
	if store.Loading() {
		t.Fatalf("loading should settle even on failure")
	}
}

func TestLoginPersistsTokenAndSetsUser(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: &backend.AuthResult{
		Token: "fresh-token",
		User:  backend.User{ID: "u2", Email: "a@b.example"},
	}}
	tokens := NewMemoryTokenStorage()
	store := newTestStore(t, api, tokens)

	user, err := store.Login(ctx, "a@b.example", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u2" {
		t.Fatalf("unexpected user %+v", user)
	}
	if api.credential != "fresh-token" {
		t.Fatalf("credential should be attached to the client")
	}
	if stored, _ := tokens.Load(ctx); stored != "fresh-token" {
		t.Fatalf("token should be persisted, got %q", stored)
	}
}

func TestLoginFailurePropagatesAndLeavesStateAlone(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	store := newTestStore(t, api, NewMemoryTokenStorage())

	if _, err := store.Login(ctx, "a@b.example", "wrong"); err == nil {
		t.Fatalf("expected login error")
	}
	if store.User() != nil {
		t.Fatalf("failed login should not authenticate")
	}
}

func TestRegisterAutoAuthenticates(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{regRes: &backend.AuthResult{
		Token: "new-token",
		User:  backend.User{ID: "u3", Name: "New"},
	}}
	store := newTestStore(t, api, NewMemoryTokenStorage())

	user, err := store.Register(ctx, backend.RegisterInput{Name: "New", Email: "n@b.example", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != "u3" || api.credential != "new-token" {
		t.Fatalf("register should behave like login")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: &backend.AuthResult{Token: "tok", User: backend.User{ID: "u4"}}}
	tokens := NewMemoryTokenStorage()
	store := newTestStore(t, api, tokens)

	if _, err := store.Login(ctx, "a@b.example", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	store.Logout(ctx)

	if store.User() != nil {
		t.Fatalf("logout should drop the user")
	}
	if api.credential != "" {
		t.Fatalf("logout should detach the credential")
	}
	if stored, _ := tokens.Load(ctx); stored != "" {
		t.Fatalf("logout should clear the stored token")
	}
}

func TestUpdateProfileFailureKeepsUser(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		loginRes:  &backend.AuthResult{Token: "tok", User: backend.User{ID: "u5", Name: "Before"}},
		updateErr: pkgerrors.New(pkgerrors.CodeValidation, "bad phone"),
	}
	store := newTestStore(t, api, NewMemoryTokenStorage())
	if _, err := store.Login(ctx, "a@b.example", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := store.UpdateProfile(ctx, backend.ProfilePatch{Phone: "x"}); err == nil {
		t.Fatalf("expected update error")
	}
	if user := store.User(); user == nil || user.Name != "Before" {
		t.Fatalf("failed update must leave user unchanged, got %+v", user)
	}
}

func TestUpdateProfileSuccessReplacesUser(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		loginRes:  &backend.AuthResult{Token: "tok", User: backend.User{ID: "u6", Name: "Before"}},
		updateRes: &backend.User{ID: "u6", Name: "After"},
	}
	store := newTestStore(t, api, NewMemoryTokenStorage())
	if _, err := store.Login(ctx, "a@b.example", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := store.UpdateProfile(ctx, backend.ProfilePatch{Name: "After"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Name != "After" {
		t.Fatalf("expected server representation, got %+v", user)
	}
}

func TestSubscribeFiresOnSessionChanges(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: &backend.AuthResult{Token: "tok", User: backend.User{ID: "u7"}}}
	store := newTestStore(t, api, NewMemoryTokenStorage())

	fired := 0
	cancel := store.Subscribe(func() { fired++ })

	store.Bootstrap(ctx)
	if fired == 0 {
		t.Fatalf("bootstrap should notify subscribers")
	}

	before := fired
	cancel()
	store.Logout(ctx)
	if fired != before {
		t.Fatalf("cancelled subscriber should not fire")
	}
}
