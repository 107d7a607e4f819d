package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/societyhub-backend/api"
	"github.com/angelmondragon/societyhub-backend/api/routes"
	"github.com/angelmondragon/societyhub-backend/internal/amcs"
	"github.com/angelmondragon/societyhub-backend/internal/assets"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/internal/identity"
	"github.com/angelmondragon/societyhub-backend/internal/issues"
	"github.com/angelmondragon/societyhub-backend/internal/memberships"
	"github.com/angelmondragon/societyhub-backend/internal/societies"
	"github.com/angelmondragon/societyhub-backend/internal/users"
	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/db"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/metrics"
	"github.com/angelmondragon/societyhub-backend/pkg/migrate"
	"github.com/angelmondragon/societyhub-backend/pkg/redis"
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
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	authzMetrics := metrics.NewAuthzMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	conn := dbClient.DB()
	userRepo := users.NewRepository(conn)
	societyRepo := societies.NewRepository(conn)
	membershipRepo := memberships.NewRepository(conn)
	amcRepo := amcs.NewRepository(conn)

	az, err := authz.NewService(societyRepo, membershipRepo, authzMetrics)
	requireService(ctx, logg, "authz", err)
	resolver, err := identity.NewResolver(userRepo, cfg.JWT)
	requireService(ctx, logg, "identity", err)

	societySvc, err := societies.NewService(dbClient, societyRepo, membershipRepo, az, authzMetrics, logg)
	requireService(ctx, logg, "societies", err)
	membershipSvc, err := memberships.NewService(dbClient, membershipRepo, societyRepo, az, authzMetrics, logg)
	requireService(ctx, logg, "memberships", err)
	userSvc, err := users.NewService(userRepo, logg)
	requireService(ctx, logg, "users", err)
	issueSvc, err := issues.NewService(issues.NewRepository(conn), az, logg)
	requireService(ctx, logg, "issues", err)
	assetSvc, err := assets.NewService(assets.NewRepository(conn), societyRepo, amcRepo, az, logg)
	requireService(ctx, logg, "assets", err)
	amcSvc, err := amcs.NewService(dbClient, amcRepo, az, logg)
	requireService(ctx, logg, "amcs", err)

	handler := routes.NewRouter(cfg, logg, dbClient, redisClient, reg, httpMetrics, resolver, routes.Services{
		Societies:   societySvc,
		Memberships: membershipSvc,
		Users:       userSvc,
		Issues:      issueSvc,
		Assets:      assetSvc,
		AMCs:        amcSvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	if err := api.Run(ctx, api.NewServer(addr, handler), logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to create "+name+" service", err)
	os.Exit(1)
}
