package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thalilabs/storefront/pkg/config"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
	"github.com/thalilabs/storefront/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(
		config.BackendConfig{BaseURL: server.URL},
		logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	)
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.BackendConfig{}, nil); err == nil {
		t.Fatalf("expected error for missing base url")
	}
}

func TestCredentialAttachedOnlyWhenSet(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Product{})
	})

	ctx := context.Background()
	if _, err := client.ListProducts(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client.SetCredential("tok-1")
	if _, err := client.ListProducts(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client.ClearCredential()
	if _, err := client.ListProducts(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"", "Bearer tok-1", ""}
	for i, header := range want {
		if seen[i] != header {
			t.Fatalf("request %d: expected header %q, got %q", i, header, seen[i])
		}
	}
}

func TestLoginPostsCredentialsAndDecodesResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "asha@example.com" {
			t.Fatalf("unexpected credentials %+v", creds)
		}
		json.NewEncoder(w).Encode(AuthResult{Token: "tok-9", User: User{ID: "u1", Name: "Asha"}})
	})

	result, err := client.Login(context.Background(), Credentials{Email: "asha@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token != "tok-9" || result.User.Name != "Asha" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		code   pkgerrors.Code
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, code: pkgerrors.CodeUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, code: pkgerrors.CodeForbidden},
		{name: "not found", status: http.StatusNotFound, code: pkgerrors.CodeNotFound},
		{name: "client error", status: http.StatusUnprocessableEntity, code: pkgerrors.CodeValidation},
		{name: "server error", status: http.StatusBadGateway, code: pkgerrors.CodeDependency},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
			})

			_, err := client.Me(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, err)
			}
			if typed.Message() != "nope" {
				t.Fatalf("expected backend message to surface, got %q", typed.Message())
			}
		})
	}
}

func TestMapErrorFallsBackToStatusText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Me(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != http.StatusText(http.StatusServiceUnavailable) {
		t.Fatalf("expected status text fallback, got %v", err)
	}
}
