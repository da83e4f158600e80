package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thalilabs/storefront/api/controllers"
	"github.com/thalilabs/storefront/api/middleware"
	"github.com/thalilabs/storefront/internal/visitor"
	"github.com/thalilabs/storefront/pkg/config"
	"github.com/thalilabs/storefront/pkg/logger"
	"github.com/thalilabs/storefront/pkg/metrics"
	pkgredis "github.com/thalilabs/storefront/pkg/redis"
)

// Deps carries everything the storefront routes need. IdempotencyStore
// is nil when the storefront runs without Redis; checkout then skips
// replay protection.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	Registry         *visitor.Registry
	IdempotencyStore pkgredis.IdempotencyStore
	Metrics          *metrics.HTTPMetrics
	Gatherer         prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	registry := deps.Registry

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Visitor(logg, cfg.Checkout.VisitorTTL, cfg.App.IsProd()))

		r.Get("/ping", controllers.PublicPing())

		r.Get("/menu", controllers.Menu(registry, logg))
		r.Get("/menu/{productID}", controllers.ProductDetail(registry, logg))

		r.Get("/session", controllers.Session(registry, logg))
		r.Post("/login", controllers.Login(registry, logg))
		r.Post("/register", controllers.Register(registry, logg))
		r.Post("/logout", controllers.Logout(registry, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(registry, logg))
			r.Delete("/", controllers.CartClear(registry, logg))
			r.Post("/items", controllers.CartAdd(registry, logg))
			r.Put("/items/{productID}", controllers.CartSetQuantity(registry, logg))
			r.Delete("/items/{productID}", controllers.CartRemove(registry, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(registry, logg))

			r.With(middleware.Idempotency(deps.IdempotencyStore, logg)).
				Post("/checkout", controllers.Checkout(registry, logg))

			r.Get("/orders", controllers.MyOrders(registry, logg))
			r.Put("/profile", controllers.ProfileUpdate(registry, logg))
			r.Post("/menu/{productID}/reviews", controllers.SubmitReview(registry, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(registry, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(registry, logg))
				r.Put("/{orderID}/status", controllers.AdminUpdateOrderStatus(registry, logg))
			})
			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(registry, logg))
				r.Put("/{productID}", controllers.AdminUpdateProduct(registry, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(registry, logg))
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminListUsers(registry, logg))
				r.Put("/{userID}", controllers.AdminUpdateUser(registry, logg))
				r.Delete("/{userID}", controllers.AdminDeleteUser(registry, logg))
			})
		})
	})

	return r
}
