package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdantcarry/veganbags-backend/api/controllers"
	"github.com/verdantcarry/veganbags-backend/api/middleware"
	"github.com/verdantcarry/veganbags-backend/internal/auth"
	cartsvc "github.com/verdantcarry/veganbags-backend/internal/cart"
	checkoutsvc "github.com/verdantcarry/veganbags-backend/internal/checkout"
	ordersvc "github.com/verdantcarry/veganbags-backend/internal/orders"
	productsvc "github.com/verdantcarry/veganbags-backend/internal/products"
	"github.com/verdantcarry/veganbags-backend/pkg/auth/session"
	"github.com/verdantcarry/veganbags-backend/pkg/config"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
	"github.com/verdantcarry/veganbags-backend/pkg/logger"
	"github.com/verdantcarry/veganbags-backend/pkg/metrics"
	"github.com/verdantcarry/veganbags-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on. Optional
// fields (redis, metrics, health checks) may be nil in tests.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	HealthChecks    map[string]func(r *http.Request) error
	AuthService     auth.Service
	RegisterService auth.RegisterService
	ProductService  productsvc.Service
	CartService     cartsvc.Service
	CheckoutService checkoutsvc.Service
	OrdersService   ordersvc.Service
}

// idempotencyStore avoids handing a typed-nil client to the middleware.
func idempotencyStore(c *redis.Client) redis.IdempotencyStore {
	if c == nil {
		return nil
	}
	return c
}

// authRateLimit disables throttling entirely when no redis client is wired.
func authRateLimit(policy middleware.AuthRateLimitPolicy, c *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if c == nil {
		return middleware.AuthRateLimit(policy, nil, logg)
	}
	return middleware.AuthRateLimit(policy, c, logg)
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(p.HTTPMetrics),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.HealthChecks))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore(p.Redis), cfg.Checkout.IdempotencyTTL, logg))
		r.With(authRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(authRateLimit(registerPolicy, p.Redis, logg)).
			Post("/register", controllers.AuthRegister(p.RegisterService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))
			r.Get("/session", controllers.AuthSession(p.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(p.AuthService, logg))
		})
	})

	// Browsing the catalog never requires an account.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(p.ProductService, logg))
		r.Get("/{productID}", controllers.GetProduct(p.ProductService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))
		r.Use(middleware.Idempotency(idempotencyStore(p.Redis), cfg.Checkout.IdempotencyTTL, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(p.CartService, logg))
			r.Post("/items", controllers.AddCartItem(p.CartService, logg))
			r.Put("/items/{itemID}", controllers.UpdateCartItem(p.CartService, logg))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(p.CartService, logg))
			r.Delete("/", controllers.ClearCart(p.CartService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutState(p.CheckoutService, logg))
			r.Post("/shipping", controllers.CheckoutSubmitShipping(p.CheckoutService, logg))
			r.Post("/edit-shipping", controllers.CheckoutEditShipping(p.CheckoutService, logg))
			r.Post("/place", controllers.CheckoutPlace(p.CheckoutService, logg))
			r.Delete("/", controllers.CheckoutReset(p.CheckoutService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListMyOrders(p.OrdersService, logg))
			r.Get("/{orderID}", controllers.GetOrder(p.OrdersService, logg))
		})

		r.Route("/owner", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleOwner), logg))
			r.Get("/ping", controllers.OwnerPing())

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.OwnerCreateProduct(p.ProductService, logg))
				r.Put("/{productID}", controllers.OwnerUpdateProduct(p.ProductService, logg))
				r.Delete("/{productID}", controllers.OwnerDeleteProduct(p.ProductService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OwnerListOrders(p.OrdersService, logg))
				r.Patch("/{orderID}/status", controllers.OwnerUpdateOrderStatus(p.OrdersService, logg))
			})
		})
	})

	return r
}
