package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcamden/wildrun/pkg/journal"
)

// Journal operations (Redis-backed, append-only list per run)

func (r *RedisStorage) AppendJournal(ctx context.Context, id uuid.UUID, entries ...journal.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			r.logger.Error("Failed to marshal journal entry", "run_id", id, "error", err)
			return fmt.Errorf("failed to marshal journal entry: %w", err)
		}
		values = append(values, string(data))
	}

	key := journalKey(id)
	if err := r.client.RPush(ctx, key, values...).Err(); err != nil {
		r.logger.Error("Failed to append journal", "run_id", id, "error", err)
		return fmt.Errorf("failed to append journal: %w", err)
	}

	// Keep the journal on the same clock as its run.
	if err := r.client.Expire(ctx, key, runTTL).Err(); err != nil {
		r.logger.Error("Failed to refresh journal TTL", "run_id", id, "error", err)
		return fmt.Errorf("failed to refresh journal TTL: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadJournal(ctx context.Context, id uuid.UUID) ([]journal.Entry, error) {
	raw, err := r.client.LRange(ctx, journalKey(id), 0, -1).Result()
	if err != nil && err != redis.Nil {
		r.logger.Error("Failed to load journal", "run_id", id, "error", err)
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	entries := make([]journal.Entry, 0, len(raw))
	for _, data := range raw {
		var e journal.Entry
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			r.logger.Error("Failed to unmarshal journal entry", "run_id", id, "error", err)
			return nil, fmt.Errorf("failed to unmarshal journal entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
