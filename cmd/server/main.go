package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"fridgeagent/internal/config"
	"fridgeagent/internal/repository"
	"fridgeagent/internal/repository/memory"
	"fridgeagent/internal/repository/mongodb"
	"fridgeagent/internal/scheduler"
	"fridgeagent/internal/server/handlers"
	"fridgeagent/internal/server/router"
	alertsvc "fridgeagent/internal/service/alerts"
	assistantsvc "fridgeagent/internal/service/assistant"
	inventorysvc "fridgeagent/internal/service/inventory"
	"fridgeagent/pkg/clients/anthropic"
	"fridgeagent/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var repo repository.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		repo = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI not set, using in-memory store; data will not survive restarts")
		repo = memory.NewRepository()
	}

	// Initialize AI Client
	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, chat/snap/recipes disabled")
	}

	inventorySvc := inventorysvc.NewService(repo, baseLogger.Named("svc.inventory"))
	alertsSvc := alertsvc.NewService(repo, aiClient, cfg.Alerts, baseLogger.Named("svc.alerts"))
	assistantSvc := assistantsvc.NewService(inventorySvc, aiClient, baseLogger.Named("svc.assistant"))

	inventoryHandler := handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory"))
	alertsHandler := handlers.NewAlertsHandler(alertsSvc, baseLogger.Named("handlers.alerts"))
	assistantHandler := handlers.NewAssistantHandler(assistantSvc, baseLogger.Named("handlers.assistant"))
	engine := router.New(inventoryHandler, alertsHandler, assistantHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Digest, alertsSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
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
}
