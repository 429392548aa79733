package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/config"
	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/remote"
	"github.com/sbdiallo/bizstock/internal/scheduler"
	"github.com/sbdiallo/bizstock/internal/server/handlers"
	"github.com/sbdiallo/bizstock/internal/server/router"
	accountssvc "github.com/sbdiallo/bizstock/internal/service/accounts"
	bannersvc "github.com/sbdiallo/bizstock/internal/service/banner"
	expensessvc "github.com/sbdiallo/bizstock/internal/service/expenses"
	inventorysvc "github.com/sbdiallo/bizstock/internal/service/inventory"
	"github.com/sbdiallo/bizstock/internal/session"
	"github.com/sbdiallo/bizstock/internal/store"
	"github.com/sbdiallo/bizstock/internal/store/mongodb"
	syncengine "github.com/sbdiallo/bizstock/internal/sync"
	"github.com/sbdiallo/bizstock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	recordStore, err := mongodb.NewStore(context.Background(), cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init record store", zap.Error(err))
	}
	defer func() {
		if err := recordStore.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close record store", zap.Error(err))
		}
	}()

	admin := models.Tenant{
		Username:    cfg.Admin.Username,
		Password:    cfg.Admin.Password,
		CompanyName: cfg.Admin.CompanyName,
	}
	if err := store.Bootstrap(context.Background(), recordStore, admin); err != nil {
		baseLogger.Fatal("failed to bootstrap record store", zap.Error(err))
	}

	gateway := remote.NewClient(cfg.Remote.Endpoint, cfg.Remote.Timeout, baseLogger.Named("remote"))
	engine := syncengine.NewEngine(recordStore, gateway, admin, baseLogger.Named("sync"))

	// Startup reconciliation runs once, asynchronously; its failure never
	// blocks local availability.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		_ = engine.Reconcile(ctx)
	}()

	sched := scheduler.NewScheduler(cfg.Sync.ResyncCron, engine, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	var sessions session.Manager
	if cfg.Redis.Addr != "" {
		redisSessions, err := session.NewRedisManager(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
		if err != nil {
			baseLogger.Fatal("failed to init redis sessions", zap.Error(err))
		}
		defer func() { _ = redisSessions.Close() }()
		sessions = redisSessions
	} else {
		baseLogger.Warn("REDIS_ADDR not set, sessions are in-process only")
		sessions = session.NewMemoryManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	}

	accountsSvc := accountssvc.NewService(recordStore, engine, baseLogger.Named("svc.accounts"))
	inventorySvc := inventorysvc.NewService(recordStore, engine, baseLogger.Named("svc.inventory"))
	expensesSvc := expensessvc.NewService(recordStore, engine, baseLogger.Named("svc.expenses"))
	bannerSvc := bannersvc.NewService(recordStore, engine, baseLogger.Named("svc.banner"))

	engineRoutes := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(accountsSvc, sessions, baseLogger.Named("handlers.auth")),
		Inventory: handlers.NewInventoryHandler(inventorySvc, expensesSvc, baseLogger.Named("handlers.inventory")),
		Admin:     handlers.NewAdminHandler(accountsSvc, bannerSvc, engine, baseLogger.Named("handlers.admin")),
		Banner:    handlers.NewBannerHandler(bannerSvc),
	}, sessions, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engineRoutes,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	// Give in-flight pushes a chance to land; pending ones drop by contract.
	engine.Drain(5 * time.Second)
}
