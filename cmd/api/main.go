package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/offerte-app/offerte-backend/api/routes"
	"github.com/offerte-app/offerte-backend/internal/auth"
	"github.com/offerte-app/offerte-backend/internal/catalog"
	"github.com/offerte-app/offerte-backend/internal/dashboard"
	"github.com/offerte-app/offerte-backend/internal/offers"
	"github.com/offerte-app/offerte-backend/internal/purchases"
	"github.com/offerte-app/offerte-backend/internal/supermarkets"
	"github.com/offerte-app/offerte-backend/internal/users"
	"github.com/offerte-app/offerte-backend/pkg/auth/session"
	"github.com/offerte-app/offerte-backend/pkg/config"
	"github.com/offerte-app/offerte-backend/pkg/db"
	"github.com/offerte-app/offerte-backend/pkg/logger"
	"github.com/offerte-app/offerte-backend/pkg/metrics"
	"github.com/offerte-app/offerte-backend/pkg/migrate"
	"github.com/offerte-app/offerte-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	supermarketRepo := supermarkets.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	offerRepo := offers.NewRepository(dbClient.DB())
	purchaseRepo := purchases.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		UserRepo:       userRepo,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	supermarketService, err := supermarkets.NewService(supermarkets.ServiceParams{
		Repo:  supermarketRepo,
		Users: userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create supermarket service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo:         catalogRepo,
		Supermarkets: supermarketService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	offerService, err := offers.NewService(offers.ServiceParams{
		DB:           dbClient,
		Repo:         offerRepo,
		Supermarkets: supermarketService,
		Defaults:     cfg.Offers,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create offer service", err)
		os.Exit(1)
	}

	purchaseService, err := purchases.NewService(purchases.ServiceParams{
		DB:     dbClient,
		Repo:   purchaseRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create purchase service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Users:        userRepo,
		Supermarkets: supermarketRepo,
		Products:     catalogRepo,
		Offers:       offerService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			authService,
			registerService,
			supermarketService,
			catalogService,
			offerService,
			purchaseService,
			dashboardService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
