package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcamden/wildrun/pkg/queue"
)

// battleQueueKey is the global list the worker consumes battle requests
// from. Requests for every run share one queue; the payload names the
// run and node.
const battleQueueKey = "battles"

// BattleQueue manages the global queue of battle-resolution requests.
// The API enqueues when a run arrives at a battle node; the worker
// blocks on the other end.
type BattleQueue struct {
	client *Client
}

func NewBattleQueue(client *Client) *BattleQueue {
	return &BattleQueue{
		client: client,
	}
}

// Enqueue adds a battle request to the end of the global queue
func (q *BattleQueue) Enqueue(ctx context.Context, req *queue.Request) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid battle request: %w", err)
	}

	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}

	if err := q.client.rdb.RPush(ctx, battleQueueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue battle request: %w", err)
	}
	return nil
}

// Dequeue removes and returns the next request from the global queue.
// Returns nil if the queue is empty.
func (q *BattleQueue) Dequeue(ctx context.Context) (*queue.Request, error) {
	result, err := q.client.rdb.LPop(ctx, battleQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Queue is empty
		}
		return nil, fmt.Errorf("failed to dequeue battle request: %w", err)
	}

	req, err := queue.FromJSON([]byte(result))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	return req, nil
}

// BlockingDequeue blocks until a request is available, then returns it.
// A zero timeout waits forever. Timeouts and context cancellation
// return nil rather than an error so callers can poll in a loop.
func (q *BattleQueue) BlockingDequeue(ctx context.Context, timeout time.Duration) (*queue.Request, error) {
	result, err := q.client.rdb.BLPop(ctx, timeout, battleQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue battle request: %w", err)
	}

	// BLPop returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BLPop result: %v", result)
	}

	req, err := queue.FromJSON([]byte(result[1]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	return req, nil
}

// Depth returns the number of requests in the global queue
func (q *BattleQueue) Depth(ctx context.Context) (int, error) {
	count, err := q.client.rdb.LLen(ctx, battleQueueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get battle queue depth: %w", err)
	}
	return int(count), nil
}
