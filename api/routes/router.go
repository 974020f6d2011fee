package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karimbenali/boucherie-backend/api/controllers"
	"github.com/karimbenali/boucherie-backend/api/middleware"
	"github.com/karimbenali/boucherie-backend/internal/admin"
	"github.com/karimbenali/boucherie-backend/internal/auth"
	"github.com/karimbenali/boucherie-backend/internal/cart"
	"github.com/karimbenali/boucherie-backend/internal/catalog"
	"github.com/karimbenali/boucherie-backend/internal/orders"
	pkgauth "github.com/karimbenali/boucherie-backend/pkg/auth"
	"github.com/karimbenali/boucherie-backend/pkg/config"
	"github.com/karimbenali/boucherie-backend/pkg/logger"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Sessions pkgauth.SessionChecker
	Registry *prometheus.Registry

	AuthService    auth.Service
	CatalogService catalog.Service
	CartStore      *cart.Store
	OrderService   orders.Service
	AdminService   admin.Service
}

// NewRouter assembles the API surface: the public storefront routes, the
// password-gated admin routes and the operational endpoints.
func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", controllers.CatalogFetch(deps.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.CartStore, logg))
				r.Delete("/", controllers.CartClear(deps.CartStore, logg))
				r.Post("/items", controllers.CartAddItem(deps.CartStore, logg))
				r.Put("/items/{productId}", controllers.CartUpdateQuantity(deps.CartStore, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.CartStore, logg))
			})

			r.Post("/orders", controllers.OrderSubmit(deps.OrderService, logg))
		})

		r.Get("/orders/{orderId}/lines", controllers.OrderLines(deps.OrderService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/login", controllers.AdminLogin(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, deps.Sessions, logg))

			r.Post("/logout", controllers.AdminLogout(deps.AuthService, logg))
			r.Get("/data", controllers.AdminListData(deps.AdminService, logg))
			r.Get("/dashboard", controllers.AdminDashboard(deps.AdminService, logg))

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminListCategories(deps.AdminService, logg))
				r.Post("/", controllers.AdminCreateCategory(deps.AdminService, logg))
				r.Delete("/{categoryId}", controllers.AdminDeleteCategory(deps.AdminService, logg))
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.AdminService, logg))
				r.Post("/", controllers.AdminCreateProduct(deps.AdminService, logg))
				r.Put("/{productId}", controllers.AdminUpdateProduct(deps.AdminService, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.AdminService, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(deps.AdminService, logg))
				r.Post("/{orderId}/status", controllers.AdminSetOrderStatus(deps.AdminService, logg))
				r.Post("/{orderId}/paid", controllers.AdminMarkOrderPaid(deps.AdminService, logg))
			})
		})
	})

	return r
}
