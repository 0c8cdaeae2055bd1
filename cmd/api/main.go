package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcamden/wildrun/internal/archive"
	"github.com/mcamden/wildrun/internal/config"
	"github.com/mcamden/wildrun/internal/handlers"
	"github.com/mcamden/wildrun/internal/logger"
	"github.com/mcamden/wildrun/internal/middleware"
	"github.com/mcamden/wildrun/internal/services"
	"github.com/mcamden/wildrun/internal/services/events"
	"github.com/mcamden/wildrun/internal/services/queue"
	"github.com/mcamden/wildrun/internal/storage"
	"github.com/mcamden/wildrun/internal/worker"
	"github.com/mcamden/wildrun/pkg/content"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Wildrun API",
		"port", cfg.Port,
		"environment", cfg.Environment)

	// The content registry is compiled in; refuse to start on a bad build.
	if err := content.Validate(); err != nil {
		log.Error("Content registry is invalid", "error", err)
		os.Exit(1)
	}

	storageService, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create storage service", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := storageService.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	queueClient, err := queue.NewClient(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing queue client", "error", err)
		}
	}()

	battleQueue := queue.NewBattleQueue(queueClient)
	interactionQueue := queue.NewInteractionQueue(queueClient, log)
	log.Info("Queue service initialized successfully")

	archiveStore, err := archive.New(cfg.ArchivePath)
	if err != nil {
		log.Error("Failed to open archive", "error", err, "path", cfg.ArchivePath)
		os.Exit(1)
	}
	defer func() {
		if err := archiveStore.Close(); err != nil {
			log.Error("Error closing archive", "error", err)
		}
	}()
	log.Info("Archive initialized successfully", "path", cfg.ArchivePath)

	// The API resolves battles synchronously when the sync endpoint is
	// used without a worker; the processor is shared with the worker path.
	combat := services.NewScriptedCombat(log)
	processor := worker.NewBattleProcessor(storageService, combat, archiveStore, log)

	broadcaster := events.NewBroadcaster(queueClient.GetRedisClient(), log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(storageService, log)
	mux.Handle("/health", healthHandler)

	runsHandler := handlers.NewRunsHandler(log, storageService, battleQueue, interactionQueue, processor, broadcaster, archiveStore)
	mux.Handle("/v1/runs", runsHandler)
	mux.Handle("/v1/runs/", runsHandler)

	contentHandler := handlers.NewContentHandler(log)
	mux.Handle("/v1/content/", contentHandler)

	archiveHandler := handlers.NewArchiveHandler(log, archiveStore)
	mux.Handle("/v1/archive", archiveHandler)
	mux.Handle("/v1/archive/", archiveHandler)

	eventsHandler := handlers.NewEventsHandler(queueClient.GetRedisClient(), log)
	mux.Handle("/v1/events/runs/", eventsHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout removed to enable streaming - streaming endpoints handle their own timeouts
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	// Close storage connection
	if err := storageService.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
