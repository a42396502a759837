package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/decantiq/decantiq-backend/api/controllers"
	"github.com/decantiq/decantiq-backend/api/middleware"
	cartsvc "github.com/decantiq/decantiq-backend/internal/cart"
	"github.com/decantiq/decantiq-backend/internal/catalog"
	checkoutsvc "github.com/decantiq/decantiq-backend/internal/checkout"
	"github.com/decantiq/decantiq-backend/internal/orders"
	"github.com/decantiq/decantiq-backend/pkg/config"
	"github.com/decantiq/decantiq-backend/pkg/db"
	"github.com/decantiq/decantiq-backend/pkg/firestore"
	"github.com/decantiq/decantiq-backend/pkg/logger"
	"github.com/decantiq/decantiq-backend/pkg/metrics"
	pkgredis "github.com/decantiq/decantiq-backend/pkg/redis"
)

// Deps carries everything the router mounts. Nil optional members (redis,
// metrics) disable the concern they back rather than failing at wire time.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    db.Pinger
	Firestore   firestore.Pinger
	Redis       *pkgredis.Client
	HTTPMetrics *metrics.HTTPMetrics
	MetricsHTTP http.Handler

	// IdempotencyStore overrides Redis as the idempotency backend when set.
	IdempotencyStore pkgredis.IdempotencyStore

	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   orders.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	var redisP pkgredis.Pinger
	if deps.Redis != nil {
		redisP = deps.Redis
	}

	idemStore := deps.IdempotencyStore
	if idemStore == nil && deps.Redis != nil {
		idemStore = deps.Redis
	}
	// Idempotency must be attached per route with With so it sees the full
	// leaf route pattern; a group-level Use only observes the partial mount
	// pattern and its route matchers would never fire.
	idem := func(next http.Handler) http.Handler { return next }
	if idemStore != nil {
		idem = middleware.Idempotency(idemStore, cfg.Checkout, logg)
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.Firestore, redisP))
	})

	if deps.MetricsHTTP != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHTTP)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))
		r.Use(middleware.WriteRateLimit(deps.Redis, cfg.RateLimit, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductGet(deps.Catalog, logg))
		})
		r.Route("/collections", func(r chi.Router) {
			r.Get("/", controllers.CollectionList(deps.Catalog, logg))
			r.Get("/{slug}", controllers.CollectionGet(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Post("/", controllers.CartAdd(deps.Cart, deps.Catalog, logg))
			r.Post("/clear", controllers.CartClear(deps.Cart, logg))
			r.Put("/{productId}/{size}", controllers.CartUpdateQuantity(deps.Cart, logg))
			r.Delete("/{productId}/{size}", controllers.CartRemove(deps.Cart, logg))
		})

		r.Get("/orders", controllers.OrderHistory(deps.Orders, logg))

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", controllers.CheckoutQuote(deps.Checkout, logg))
			r.With(idem).Post("/confirm", controllers.CheckoutConfirm(deps.Checkout, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminJWT, logg))

		r.With(idem).Post("/products", controllers.AdminProductCreate(deps.Catalog, logg))
		r.Patch("/products/{productId}", controllers.AdminProductUpdate(deps.Catalog, logg))
		r.Delete("/products/{productId}", controllers.AdminProductDelete(deps.Catalog, logg))

		r.With(idem).Put("/collections/{slug}", controllers.AdminCollectionSave(deps.Catalog, logg))
		r.Delete("/collections/{slug}", controllers.AdminCollectionDelete(deps.Catalog, logg))

		r.Get("/orders", controllers.AdminOrderList(deps.Orders, logg))
		r.Get("/orders/{orderId}", controllers.AdminOrderGet(deps.Orders, logg))
	})

	return r
}
