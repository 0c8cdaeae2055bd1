package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/save"
)

// Run operations (Redis-backed)

func (r *RedisStorage) SaveRun(ctx context.Context, id uuid.UUID, s *run.RunState) error {
	if s == nil {
		return fmt.Errorf("run cannot be nil")
	}
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal run", "run_id", id, "error", err)
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	cmd := r.client.Set(ctx, runKey(id), string(data), runTTL)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save run", "run_id", id, "error", err)
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// LoadRun fetches a run and upgrades older persisted shapes through
// save.Migrate before returning it. Returns nil for a missing run.
func (r *RedisStorage) LoadRun(ctx context.Context, id uuid.UUID) (*run.RunState, error) {
	cmd := r.client.Get(ctx, runKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Run not found", "run_id", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load run", "run_id", id, "error", err)
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	data := cmd.Val()
	if data == "" {
		r.logger.Warn("Run not found", "run_id", id)
		return nil, nil
	}

	s, err := save.Migrate([]byte(data))
	if err != nil {
		r.logger.Error("Failed to migrate run", "run_id", id, "error", err)
		return nil, fmt.Errorf("failed to migrate run: %w", err)
	}

	return s, nil
}

// DeleteRun removes a run and its journal together.
func (r *RedisStorage) DeleteRun(ctx context.Context, id uuid.UUID) error {
	cmd := r.client.Del(ctx, runKey(id), journalKey(id))
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete run", "run_id", id, "error", err)
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}
