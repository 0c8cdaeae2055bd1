package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcamden/wildrun/internal/services/events"
	"github.com/mcamden/wildrun/internal/services/queue"
	queuePkg "github.com/mcamden/wildrun/pkg/queue"
)

const (
	workerTimeout = 5 * time.Second
	runLockTTL    = 30 * time.Second
)

// Worker processes battle requests from the queue
type Worker struct {
	id          string
	queue       *queue.BattleQueue
	processor   *BattleProcessor
	broadcaster *events.Broadcaster
	redisClient *redis.Client
	log         *slog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

// New creates a new worker instance
func New(battleQueue *queue.BattleQueue, processor *BattleProcessor, redisClient *redis.Client, log *slog.Logger, workerID string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if workerID == "" {
		workerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}

	broadcaster := events.NewBroadcaster(redisClient, log)

	return &Worker{
		id:          workerID,
		queue:       battleQueue,
		processor:   processor,
		broadcaster: broadcaster,
		redisClient: redisClient,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins processing requests from the queue
func (w *Worker) Start() error {
	w.log.Info("Worker starting", "worker_id", w.id)

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info("Worker shutting down", "worker_id", w.id)
			return nil
		default:
			if err := w.processNextRequest(); err != nil {
				w.log.Error("Error processing request", "error", err, "worker_id", w.id)
				// Continue processing even on error
				time.Sleep(1 * time.Second)
			}
		}
	}
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.log.Info("Worker stop requested", "worker_id", w.id)
	w.cancel()
}

// processNextRequest pulls the next request from the queue and processes it
func (w *Worker) processNextRequest() error {
	// Block waiting for next request (timeout after 5 seconds to check for shutdown)
	ctx, cancel := context.WithTimeout(w.ctx, workerTimeout)
	defer cancel()

	req, err := w.queue.BlockingDequeue(ctx, workerTimeout)
	if err != nil {
		// Real error (not timeout/cancellation)
		return fmt.Errorf("failed to dequeue request: %w", err)
	}

	if req == nil {
		// Queue is empty or timeout occurred - this is normal
		return nil
	}

	w.log.Info("Received request from queue",
		"worker_id", w.id,
		"request_id", req.RequestID,
		"type", req.Type,
		"run_id", req.RunID.String(),
	)

	// Try to acquire run lock
	locked, err := w.acquireRunLock(req.RunID)
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !locked {
		// Another worker is processing this run
		// Re-queue at the end and try next request
		w.log.Info("Run already locked, re-queueing request",
			"worker_id", w.id,
			"request_id", req.RequestID,
			"run_id", req.RunID.String(),
		)
		if err := w.queue.Enqueue(w.ctx, req); err != nil {
			return fmt.Errorf("failed to re-queue request: %w", err)
		}
		return nil
	}

	// Process the request, blocking the worker until done
	defer w.releaseRunLock(req.RunID)
	return w.processRequest(req)
}

// acquireRunLock attempts to acquire a lock for a run
// Returns true if lock was acquired, false if already locked
func (w *Worker) acquireRunLock(runID uuid.UUID) (bool, error) {
	lockKey := fmt.Sprintf("run-lock:%s", runID.String())

	result, err := w.redisClient.SetNX(w.ctx, lockKey, w.id, runLockTTL).Result()
	if err != nil {
		return false, err
	}

	return result, nil
}

// releaseRunLock releases the lock for a run
func (w *Worker) releaseRunLock(runID uuid.UUID) {
	lockKey := fmt.Sprintf("run-lock:%s", runID.String())

	// Only delete if we own the lock
	script := redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`)

	if err := script.Run(w.ctx, w.redisClient, []string{lockKey}, w.id).Err(); err != nil {
		w.log.Error("Failed to release run lock", "error", err, "run_id", runID.String())
	}
}

// processRequest resolves a single battle request
func (w *Worker) processRequest(req *queuePkg.Request) error {
	w.log.Info("Processing request",
		"worker_id", w.id,
		"request_id", req.RequestID,
		"type", req.Type,
		"run_id", req.RunID.String(),
	)

	if req.Type != queuePkg.RequestTypeBattle {
		return fmt.Errorf("unknown request type: %s", req.Type)
	}

	start := time.Now()

	if err := w.broadcaster.PublishBattleProcessing(w.ctx, req.RunID, req.RequestID, req.NodeID); err != nil {
		w.log.Error("Failed to publish processing event", "error", err)
		// Don't fail the request just because event publishing failed
	}

	outcome, err := w.processor.ProcessBattle(w.ctx, req.RunID, req.NodeID)
	if err != nil {
		w.log.Error("Failed to process battle",
			"error", err,
			"request_id", req.RequestID,
			"run_id", req.RunID.String(),
		)

		// Publish failure event
		if pubErr := w.broadcaster.PublishBattleFailed(w.ctx, req.RunID, req.RequestID, err.Error()); pubErr != nil {
			w.log.Error("Failed to publish failure event", "error", pubErr)
		}

		return fmt.Errorf("failed to process battle request: %w", err)
	}

	w.log.Info("Battle request processed successfully",
		"worker_id", w.id,
		"request_id", req.RequestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	// Publish completion event with the battle outcome
	result := map[string]interface{}{
		"victory":     outcome.Result.Victory,
		"gold":        outcome.Gold,
		"status":      string(outcome.State.Status),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err := w.broadcaster.PublishBattleCompleted(w.ctx, req.RunID, req.RequestID, result); err != nil {
		w.log.Error("Failed to publish completion event", "error", err)
	}

	return nil
}
