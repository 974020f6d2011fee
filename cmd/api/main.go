package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/karimbenali/boucherie-backend/api/routes"
	"github.com/karimbenali/boucherie-backend/internal/admin"
	"github.com/karimbenali/boucherie-backend/internal/auth"
	"github.com/karimbenali/boucherie-backend/internal/cart"
	"github.com/karimbenali/boucherie-backend/internal/catalog"
	"github.com/karimbenali/boucherie-backend/internal/categories"
	"github.com/karimbenali/boucherie-backend/internal/orders"
	product "github.com/karimbenali/boucherie-backend/internal/products"
	pkgauth "github.com/karimbenali/boucherie-backend/pkg/auth"
	"github.com/karimbenali/boucherie-backend/pkg/config"
	"github.com/karimbenali/boucherie-backend/pkg/db"
	"github.com/karimbenali/boucherie-backend/pkg/kv"
	"github.com/karimbenali/boucherie-backend/pkg/logger"
	"github.com/karimbenali/boucherie-backend/pkg/metrics"
	"github.com/karimbenali/boucherie-backend/pkg/migrate"
	"github.com/karimbenali/boucherie-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.New(registry)

	snapshots := kv.NewRedisStore(redisClient)

	sessionManager, err := pkgauth.NewSessionManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		SessionManager: sessionManager,
		AdminConfig:    cfg.Admin,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(snapshots, redisClient.CartKey, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	categoryRepo := categories.NewRepository(dbClient.DB())
	productRepo := product.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Products:    productRepo,
		Categories:  categoryRepo,
		Snapshots:   snapshots,
		SnapshotKey: redisClient.SnapshotKey("catalog"),
		Metrics:     storefrontMetrics,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:     orderRepo,
		Carts:    cartStore,
		Fallback: snapshots,
		QueueKey: redisClient.LinesQueueKey(),
		Metrics:  storefrontMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	adminService, err := admin.NewService(admin.ServiceParams{
		Categories: categoryRepo,
		Products:   productRepo,
		Orders:     orderRepo,
		Snapshots:  catalogService,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher := admin.NewRefresher(adminService, cfg.Dashboard.RefreshInterval, storefrontMetrics, logg)
	refresher.Start(rootCtx)
	defer refresher.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(rootCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Sessions:       sessionManager,
			Registry:       registry,
			AuthService:    authService,
			CatalogService: catalogService,
			CartStore:      cartStore,
			OrderService:   orderService,
			AdminService:   adminService,
		}),
	}

	go func() {
		<-rootCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "server shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "api server stopped")
}
