package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"posadmin/internal/auth"
	authhandler "posadmin/internal/auth/handler"
	authstore "posadmin/internal/auth/store"
	orderhandler "posadmin/internal/order/handler"
	orderservice "posadmin/internal/order/service"
	orderstore "posadmin/internal/order/store"
	"posadmin/internal/platform/config"
	"posadmin/internal/platform/httpserver"
	"posadmin/internal/platform/logger"
	"posadmin/internal/platform/metrics"
	"posadmin/internal/platform/postgres"
	platformredis "posadmin/internal/platform/redis"
	producthandler "posadmin/internal/product/handler"
	productservice "posadmin/internal/product/service"
	productstore "posadmin/internal/product/store"
	"posadmin/internal/schedule"
	"posadmin/internal/stats"
	"posadmin/internal/token"
	httptransport "posadmin/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	cache, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if cache == nil {
		log.Info("redis not configured, dashboard cache disabled")
	} else {
		defer cache.Close()
	}

	m := metrics.New()
	tokens := token.NewService(cfg.JWTSigningKey, cfg.SessionTTL)
	validator := token.NewMiddlewareAdapter(tokens)

	authService := auth.NewService(
		authstore.NewPostgresAdminStore(db),
		authstore.NewPostgresLoginEventStore(db),
		tokens,
		cfg.AdminPIN,
		log,
	)

	taskStore := schedule.NewPostgresStore(db)
	scheduler := schedule.NewScheduler(taskStore)

	orderService := orderservice.New(orderstore.NewPostgres(db), scheduler, m, log)
	worker := schedule.NewWorker(taskStore, orderService, cfg.SchedulerInterval, m, log)

	productService := productservice.New(productstore.NewPostgres(db))
	statsService := stats.NewService(stats.NewPostgresStore(db), cache, cfg.StatsCacheTTL, log)

	var cacheHealth httptransport.HealthChecker
	if cache != nil {
		cacheHealth = cache
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:    log,
		Metrics:   m,
		Validator: validator,
		DB:        db,
		Cache:     cacheHealth,
		Public: []httptransport.Registrar{
			authhandler.New(authService, validator, m, cfg.SessionTTL, log),
		},
		Gated: []httptransport.Registrar{
			orderhandler.New(orderService, log),
			producthandler.New(productService, log),
			stats.NewHandler(statsService, log),
		},
	})

	server := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return worker.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
