package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/stockroom/api/responses"
	"github.com/angelmondragon/stockroom/api/routes"
	"github.com/angelmondragon/stockroom/internal/groups"
	"github.com/angelmondragon/stockroom/internal/products"
	"github.com/angelmondragon/stockroom/internal/stats"
	"github.com/angelmondragon/stockroom/pkg/codec"
	"github.com/angelmondragon/stockroom/pkg/config"
	"github.com/angelmondragon/stockroom/pkg/db"
	"github.com/angelmondragon/stockroom/pkg/instance"
	"github.com/angelmondragon/stockroom/pkg/logger"
	"github.com/angelmondragon/stockroom/pkg/metrics"
	"github.com/angelmondragon/stockroom/pkg/migrate"
	"github.com/angelmondragon/stockroom/pkg/redis"
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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envelope, err := codec.New(cfg.Envelope)
	if err != nil {
		return err
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
	} else {
		logg.Info(ctx, "redis not configured, idempotency replay disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	groupService, err := groups.NewService(groups.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}
	productRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productRepo, metrics.NewStockMetrics(reg))
	if err != nil {
		return err
	}
	statsService, err := stats.NewService(productRepo)
	if err != nil {
		return err
	}

	rw := responses.NewWriter(envelope, logg)
	handler := routes.NewRouter(cfg, logg, rw, dbClient, redisClient, metrics.NewHTTPMetrics(reg), reg, routes.Services{
		Groups:   groupService,
		Products: productService,
		Stats:    statsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"driver":   cfg.DB.Driver,
		"envelope": envelope.ContentType(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
