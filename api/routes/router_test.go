package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thalilabs/storefront/internal/visitor"
	"github.com/thalilabs/storefront/pkg/config"
	"github.com/thalilabs/storefront/pkg/logger"
	"github.com/thalilabs/storefront/pkg/metrics"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	backendStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{})
	}))
	t.Cleanup(backendStub.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	registry, err := visitor.NewRegistry(visitor.RegistryParams{
		Backend: config.BackendConfig{BaseURL: backendStub.URL},
		Storage: visitor.NewMemoryStorageProvider(),
		Logger:  logg,
	})
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	promRegistry := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config: &config.Config{
			App:      config.AppConfig{Env: config.AppEnvDev},
			Checkout: config.CheckoutConfig{VisitorTTL: 720 * time.Hour},
		},
		Logger:   logg,
		Registry: registry,
		Metrics:  metrics.NewHTTPMetrics(promRegistry),
		Gatherer: promRegistry,
	})
}

func TestHealthAndPing(t *testing.T) {
	router := testRouter(t)

	for _, target := range []string{"/health/live", "/health/ready", "/api/ping"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 but got %d", target, w.Code)
		}
	}
}

func TestVisitorCookieIssuedOnFirstRequest(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))

	var issued *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "thali_visitor" {
			issued = cookie
		}
	}
	if issued == nil {
		t.Fatalf("expected visitor cookie on first request")
	}
	if !issued.HttpOnly {
		t.Fatalf("visitor cookie must be http-only")
	}
}

func TestGuardedRouteRedirectsAnonymousVisitor(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect but got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login?from=%2Fapi%2Forders" {
		t.Fatalf("unexpected redirect target %s", got)
	}
}

func TestAdminRouteRedirectsAnonymousVisitor(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect but got %d", w.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 but got %d", w.Code)
	}
}
