package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcamden/wildrun/pkg/run"
)

// InteractionQueue manages the pending interactive effects of each run.
// Committing an event choice can leave work only the player can finish
// (pick a card, choose removals, accept a recruit); those land here and
// the client drains them before play continues.
type InteractionQueue struct {
	client *Client
	logger *slog.Logger
}

// NewInteractionQueue creates a new interaction queue service
func NewInteractionQueue(client *Client, logger *slog.Logger) *InteractionQueue {
	return &InteractionQueue{
		client: client,
		logger: logger,
	}
}

// queueKey returns the Redis key for a run's pending interactions
func (iq *InteractionQueue) queueKey(runID uuid.UUID) string {
	return fmt.Sprintf("interactions:%s", runID.String())
}

// Enqueue adds pending interactions to the end of the queue for a run
func (iq *InteractionQueue) Enqueue(ctx context.Context, runID uuid.UUID, pending ...run.PendingInteraction) error {
	if len(pending) == 0 {
		return nil
	}
	key := iq.queueKey(runID)

	values := make([]interface{}, 0, len(pending))
	for _, p := range pending {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to serialize pending interaction: %w", err)
		}
		values = append(values, string(data))
	}

	if err := iq.client.rdb.RPush(ctx, key, values...).Err(); err != nil {
		iq.logger.Error("Failed to enqueue pending interactions",
			"error", err,
			"run_id", runID,
			"key", key)
		return fmt.Errorf("failed to enqueue pending interactions: %w", err)
	}

	iq.logger.Debug("Enqueued pending interactions",
		"run_id", runID,
		"count", len(pending))

	return nil
}

// Drain removes and returns all pending interactions for a run
func (iq *InteractionQueue) Drain(ctx context.Context, runID uuid.UUID) ([]run.PendingInteraction, error) {
	key := iq.queueKey(runID)

	raw, err := iq.client.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		iq.logger.Error("Failed to drain pending interactions",
			"error", err,
			"run_id", runID,
			"key", key)
		return nil, fmt.Errorf("failed to drain pending interactions: %w", err)
	}

	if len(raw) > 0 {
		if err := iq.client.rdb.Del(ctx, key).Err(); err != nil {
			iq.logger.Error("Failed to clear interaction queue after drain",
				"error", err,
				"run_id", runID,
				"key", key)
			return nil, fmt.Errorf("failed to clear interaction queue after drain: %w", err)
		}
	}

	return iq.parse(raw)
}

// Peek returns pending interactions without removing them
func (iq *InteractionQueue) Peek(ctx context.Context, runID uuid.UUID, limit int) ([]run.PendingInteraction, error) {
	key := iq.queueKey(runID)

	end := int64(limit - 1)
	if limit <= 0 {
		end = -1 // Get all
	}
	raw, err := iq.client.rdb.LRange(ctx, key, 0, end).Result()
	if err != nil && err != redis.Nil {
		iq.logger.Error("Failed to peek pending interactions",
			"error", err,
			"run_id", runID,
			"key", key)
		return nil, fmt.Errorf("failed to peek pending interactions: %w", err)
	}

	return iq.parse(raw)
}

// Clear removes all pending interactions for a run
func (iq *InteractionQueue) Clear(ctx context.Context, runID uuid.UUID) error {
	key := iq.queueKey(runID)

	if err := iq.client.rdb.Del(ctx, key).Err(); err != nil {
		iq.logger.Error("Failed to clear interaction queue",
			"error", err,
			"run_id", runID,
			"key", key)
		return fmt.Errorf("failed to clear interaction queue: %w", err)
	}

	iq.logger.Debug("Cleared interaction queue", "run_id", runID)
	return nil
}

// Depth returns the number of pending interactions queued for a run
func (iq *InteractionQueue) Depth(ctx context.Context, runID uuid.UUID) (int, error) {
	key := iq.queueKey(runID)

	count, err := iq.client.rdb.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get interaction queue depth: %w", err)
	}
	return int(count), nil
}

func (iq *InteractionQueue) parse(raw []string) ([]run.PendingInteraction, error) {
	pending := make([]run.PendingInteraction, 0, len(raw))
	for _, data := range raw {
		var p run.PendingInteraction
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to parse pending interaction: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, nil
}
