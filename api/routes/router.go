package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trendora-io/storefront-backend/api/controllers"
	"github.com/trendora-io/storefront-backend/api/middleware"
	cartsvc "github.com/trendora-io/storefront-backend/internal/cart"
	"github.com/trendora-io/storefront-backend/internal/catalog"
	checkoutsvc "github.com/trendora-io/storefront-backend/internal/checkout"
	orderssvc "github.com/trendora-io/storefront-backend/internal/orders"
	"github.com/trendora-io/storefront-backend/pkg/config"
	"github.com/trendora-io/storefront-backend/pkg/db"
	"github.com/trendora-io/storefront-backend/pkg/identity"
	"github.com/trendora-io/storefront-backend/pkg/logger"
	"github.com/trendora-io/storefront-backend/pkg/metrics"
	"github.com/trendora-io/storefront-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Services are interfaces so
// router tests can swap in stubs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry
	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   orderssvc.Service
}

// NewRouter assembles the storefront and admin APIs behind a shared middleware
// chain. The session middleware runs on every storefront route because carts
// and drafts are keyed by session, signed in or not.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session.CartTTL, logg))
		r.Use(middleware.Auth(cfg.Identity, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductGet(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RateLimit("cart", cfg.RateLimit.CartWriteLimit, cfg.RateLimit.CartWriteWindow, deps.Redis, logg))
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutGet(deps.Checkout, logg))
			r.Put("/steps/{step}", controllers.CheckoutSubmitStep(deps.Checkout, logg))
			r.Post("/back", controllers.CheckoutBack(deps.Checkout, logg))
			r.With(middleware.RateLimit("checkout_submit", cfg.RateLimit.CheckoutSubmitLimit, cfg.RateLimit.CheckoutSubmitWindow, deps.Redis, logg)).
				Post("/submit", controllers.CheckoutSubmit(deps.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderGet(deps.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Identity, logg))
		r.Use(middleware.RequireAuth(logg))
		r.Use(middleware.RequireRole(identity.RoleAdmin, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderGet(deps.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
		})
	})

	return r
}
