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
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/freshcart/api/controllers"
	"github.com/angelmondragon/freshcart/api/routes"
	"github.com/angelmondragon/freshcart/internal/auth"
	"github.com/angelmondragon/freshcart/internal/cart"
	"github.com/angelmondragon/freshcart/internal/catalog"
	"github.com/angelmondragon/freshcart/internal/reviews"
	"github.com/angelmondragon/freshcart/internal/sessions"
	"github.com/angelmondragon/freshcart/internal/users"
	"github.com/angelmondragon/freshcart/pkg/config"
	"github.com/angelmondragon/freshcart/pkg/instance"
	"github.com/angelmondragon/freshcart/pkg/logger"
	"github.com/angelmondragon/freshcart/pkg/metrics"
	"github.com/angelmondragon/freshcart/pkg/ratelimit"
	"github.com/angelmondragon/freshcart/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

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
		Environment: cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.IsDev(),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	products, err := catalog.Load(cfg.Catalog.SeedPath)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(products, catalog.Engine{}, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	sessionRegistry, err := sessions.NewRegistry(sessions.RegistryParams{
		Logger:        logg,
		IdleTTL:       cfg.Session.IdleTTL,
		SweepInterval: cfg.Session.SweepInterval,
		MaxSessions:   cfg.Session.MaxActive,
		Metrics:       storefrontMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session registry", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    sessionRegistry,
		Products: catalogService,
		Delivery: cart.DeliveryPolicy{
			FreeThreshold: cfg.Delivery.FreeThreshold,
			FlatFee:       cfg.Delivery.FlatFee,
		},
		MaxQuantity: cfg.Session.MaxLineQuantity,
		Metrics:     storefrontMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	seedReviews, err := reviews.DecodeSeed()
	if err != nil {
		logg.Error(context.Background(), "failed to decode review seed", err)
		os.Exit(1)
	}
	reviewService, err := reviews.NewService(reviews.ServiceParams{
		Products: catalogService,
		Seed:     seedReviews,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	directory := users.NewDirectory()
	if err := auth.SeedDemoUser(context.Background(), directory, cfg.Demo, cfg.Password); err != nil {
		logg.Error(context.Background(), "failed to seed demo user", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(auth.ServiceParams{
		Users:          directory,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	readiness := []controllers.ReadinessCheck{{
		Name: "catalog",
		Check: func(context.Context) error {
			if products.Len() == 0 {
				return errors.New("catalog is empty")
			}
			return nil
		},
	}}

	var rateCounter ratelimit.Counter = ratelimit.NewMemoryCounter(nil)
	if cfg.Redis.Enabled() {
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
		rateCounter = redisClient
		readiness = append(readiness, controllers.ReadinessCheck{Name: "redis", Check: redisClient.Ping})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"products": products.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, registry, readiness, sessionRegistry, rateCounter,
			catalogService, cartService, reviewService, authService),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		return sessionRegistry.Run(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down gracefully")
}
