package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thalilabs/storefront/api/middleware"
	"github.com/thalilabs/storefront/internal/visitor"
	"github.com/thalilabs/storefront/pkg/config"
	"github.com/thalilabs/storefront/pkg/logger"
)

const testVisitorID = "visitor-test"

type testEnv struct {
	locator *visitor.Registry
	logg    *logger.Logger
}

// newTestEnv wires a registry against a stub backend server.
func newTestEnv(t *testing.T, backendHandler http.Handler) *testEnv {
	t.Helper()

	server := httptest.NewServer(backendHandler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	reg, err := visitor.NewRegistry(visitor.RegistryParams{
		Backend: config.BackendConfig{BaseURL: server.URL},
		Storage: visitor.NewMemoryStorageProvider(),
		Logger:  logg,
	})
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return &testEnv{locator: reg, logg: logg}
}

// serve routes the request through a chi mux so URL params resolve, with
// the visitor id already on the context.
func (e *testEnv) serve(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req = req.WithContext(middleware.WithVisitorID(req.Context(), testVisitorID))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
}

func (e *testEnv) cart(t *testing.T) cartResponse {
	t.Helper()
	stores, err := e.locator.Get(context.Background(), testVisitorID)
	if err != nil {
		t.Fatalf("failed to resolve stores: %v", err)
	}
	return newCartResponse(stores.Cart)
}
