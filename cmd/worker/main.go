package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcamden/wildrun/internal/archive"
	"github.com/mcamden/wildrun/internal/config"
	"github.com/mcamden/wildrun/internal/logger"
	"github.com/mcamden/wildrun/internal/services"
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

	log.Info("Starting Wildrun Worker",
		"environment", cfg.Environment,
		"redis_url", cfg.RedisURL)

	if err := content.Validate(); err != nil {
		log.Error("Content registry is invalid", "error", err)
		os.Exit(1)
	}

	// Initialize queue service
	queueClient, err := queue.NewClient(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer func() {
		err = queueClient.Close()
		if err != nil {
			log.Error("Error closing queue client", "error", err)
		}
	}()

	battleQueue := queue.NewBattleQueue(queueClient)
	log.Info("Queue service initialized successfully")

	// Initialize storage service
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
	log.Info("Storage service initialized successfully")

	// Initialize the archive for finished runs
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

	// Create BattleProcessor with the scripted combat service
	combat := services.NewScriptedCombat(log)
	processor := worker.NewBattleProcessor(storageService, combat, archiveStore, log)
	log.Info("Battle processor initialized successfully")

	// Create a separate Redis client for worker locking
	// (separate from queue client to avoid connection conflicts)
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("Failed to parse Redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(opts)

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis client", "error", err)
		}
	}()

	log.Info("Redis connection established successfully")

	// Create and start worker with processor
	w := worker.New(battleQueue, processor, redisClient, log, cfg.WorkerID)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start worker in goroutine
	go func() {
		if err := w.Start(); err != nil {
			log.Error("Worker error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("Worker started, waiting for requests...")

	// Wait for shutdown signal
	<-quit
	log.Info("Worker shutdown signal received")

	// Stop worker
	w.Stop()

	// Give worker time to finish current request
	time.Sleep(2 * time.Second)

	log.Info("Worker exited")
}
