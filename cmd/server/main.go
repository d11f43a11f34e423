package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sales-manager/internal/config"
	"github.com/mamadbah2/sales-manager/internal/scheduler"
	"github.com/mamadbah2/sales-manager/internal/server/handlers"
	"github.com/mamadbah2/sales-manager/internal/server/router"
	"github.com/mamadbah2/sales-manager/internal/server/view"
	salessvc "github.com/mamadbah2/sales-manager/internal/service/sales"
	"github.com/mamadbah2/sales-manager/pkg/clients/salesstore"
	"github.com/mamadbah2/sales-manager/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	storeClient := salesstore.NewClient(cfg.Store, logger.Named(baseLogger, "client.salesstore"))
	salesSvc := salessvc.NewService(storeClient, logger.Named(baseLogger, "svc.sales"))

	// Initial load. A failure is kept in state and shown on the page.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	if state := salesSvc.Load(loadCtx); state.Error != "" {
		baseLogger.Warn("initial sales load failed", zap.String("error", state.Error), zap.String("store", cfg.Store.BaseURL))
	}
	cancelLoad()

	pages, err := view.Templates()
	if err != nil {
		baseLogger.Fatal("failed to parse templates", zap.Error(err))
	}

	salesHandler := handlers.NewSalesHandler(salesSvc, logger.Named(baseLogger, "handlers.sales"))
	engine := router.New(salesHandler, pages, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Refresh, salesSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second + cfg.Store.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.BaseURL))
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
}
