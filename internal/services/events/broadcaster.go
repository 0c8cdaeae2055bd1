package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeBattleQueued     EventType = "battle.queued"
	EventTypeBattleProcessing EventType = "battle.processing"
	EventTypeBattleCompleted  EventType = "battle.completed"
	EventTypeBattleFailed     EventType = "battle.failed"
	EventTypeRunUpdated       EventType = "run.updated"
)

// Event represents a generic event structure
type Event struct {
	Type      EventType              `json:"type"`
	RequestID string                 `json:"request_id,omitempty"`
	RunID     string                 `json:"run_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// ChannelFor is the Redis Pub/Sub channel carrying a run's events.
func ChannelFor(runID uuid.UUID) string {
	return fmt.Sprintf("run-events:%s", runID.String())
}

// Broadcaster publishes events to Redis Pub/Sub for SSE distribution
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishBattleQueued publishes a battle.queued event
func (b *Broadcaster) PublishBattleQueued(ctx context.Context, runID uuid.UUID, requestID string, nodeID string) error {
	event := Event{
		Type:      EventTypeBattleQueued,
		RequestID: requestID,
		RunID:     runID.String(),
		Data: map[string]interface{}{
			"status":  "queued",
			"node_id": nodeID,
		},
	}
	return b.publishToRun(ctx, runID, event)
}

// PublishBattleProcessing publishes a battle.processing event
func (b *Broadcaster) PublishBattleProcessing(ctx context.Context, runID uuid.UUID, requestID string, nodeID string) error {
	event := Event{
		Type:      EventTypeBattleProcessing,
		RequestID: requestID,
		RunID:     runID.String(),
		Data: map[string]interface{}{
			"status":  "processing",
			"node_id": nodeID,
		},
	}
	return b.publishToRun(ctx, runID, event)
}

// PublishBattleCompleted publishes a battle.completed event
func (b *Broadcaster) PublishBattleCompleted(ctx context.Context, runID uuid.UUID, requestID string, result map[string]interface{}) error {
	event := Event{
		Type:      EventTypeBattleCompleted,
		RequestID: requestID,
		RunID:     runID.String(),
		Data: map[string]interface{}{
			"status": "completed",
			"result": result,
		},
	}
	return b.publishToRun(ctx, runID, event)
}

// PublishBattleFailed publishes a battle.failed event
func (b *Broadcaster) PublishBattleFailed(ctx context.Context, runID uuid.UUID, requestID string, errorMsg string) error {
	event := Event{
		Type:      EventTypeBattleFailed,
		RequestID: requestID,
		RunID:     runID.String(),
		Data: map[string]interface{}{
			"status": "failed",
			"error":  errorMsg,
		},
	}
	return b.publishToRun(ctx, runID, event)
}

// PublishRunUpdated publishes a run.updated event after the run state
// changes outside of battle resolution (moves, events, party changes).
func (b *Broadcaster) PublishRunUpdated(ctx context.Context, runID uuid.UUID, act int, nodeID string, status string) error {
	event := Event{
		Type:  EventTypeRunUpdated,
		RunID: runID.String(),
		Data: map[string]interface{}{
			"act":     act,
			"node_id": nodeID,
			"status":  status,
		},
	}
	return b.publishToRun(ctx, runID, event)
}

// publishToRun publishes an event to the run-specific channel
func (b *Broadcaster) publishToRun(ctx context.Context, runID uuid.UUID, event Event) error {
	channel := ChannelFor(runID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"request_id", event.RequestID,
	)

	return nil
}
