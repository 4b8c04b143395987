package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/offerte-app/offerte-backend/api/controllers"
	"github.com/offerte-app/offerte-backend/api/middleware"
	"github.com/offerte-app/offerte-backend/internal/auth"
	"github.com/offerte-app/offerte-backend/internal/catalog"
	"github.com/offerte-app/offerte-backend/internal/dashboard"
	"github.com/offerte-app/offerte-backend/internal/offers"
	"github.com/offerte-app/offerte-backend/internal/purchases"
	"github.com/offerte-app/offerte-backend/internal/supermarkets"
	"github.com/offerte-app/offerte-backend/pkg/auth/session"
	"github.com/offerte-app/offerte-backend/pkg/config"
	"github.com/offerte-app/offerte-backend/pkg/db"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	"github.com/offerte-app/offerte-backend/pkg/logger"
	"github.com/offerte-app/offerte-backend/pkg/metrics"
	"github.com/offerte-app/offerte-backend/pkg/redis"
)

// NewRouter wires middleware, controllers, and services into the HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.Checker,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	registerService *auth.RegisterService,
	supermarketService *supermarkets.Service,
	catalogService *catalog.Service,
	offerService *offers.Service,
	purchaseService *purchases.Service,
	dashboardService *dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public auth surface.
	r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
		Post("/api/login", controllers.Login(authService, logg))
	r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
		Post("/api/register", controllers.Register(registerService, logg))

	// Everything below requires a live session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))

		r.Post("/api/logout", controllers.Logout(authService, logg))
		r.Post("/api/refresh", controllers.Refresh(authService, logg))

		r.Get("/api/supermarkets", controllers.SupermarketList(supermarketService, logg))
		r.Get("/api/supermarkets/{supermarketID}", controllers.SupermarketGet(supermarketService, logg))
		r.Get("/api/supermarkets/{supermarketID}/products", controllers.SupermarketProducts(catalogService, logg))
		r.Get("/api/products", controllers.ProductList(catalogService, logg))

		r.Get("/offers/{supermarketID}", controllers.OffersBySupermarket(offerService, logg))
		r.Get("/dashboard", controllers.Dashboard(dashboardService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleManager))
			r.Post("/api/add_supermarket", controllers.SupermarketCreate(supermarketService, logg))
			r.Post("/api/add_product", controllers.ProductCreate(catalogService, logg))
			r.Post("/add_product_to_supermarket/{supermarketID}", controllers.StockProduct(catalogService, logg))
			r.Post("/generate_offers/{supermarketID}", controllers.GenerateOffers(offerService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleCustomer))
			r.Post("/purchase/{supermarketID}/{productID}", controllers.PurchaseProduct(purchaseService, logg))
			r.Get("/api/purchases", controllers.PurchaseHistory(purchaseService, logg))
		})
	})

	return r
}
