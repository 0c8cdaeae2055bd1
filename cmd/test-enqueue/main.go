package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcamden/wildrun/pkg/queue"
)

// Debug tool: pushes a battle request onto the queue so a running worker
// can be observed picking it up. Pass a run ID and node ID to target a
// real run; with no args it uses a placeholder run that the worker will
// reject with "run not found", which still exercises the full path.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	runID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	nodeID := "a1_b1"
	if len(os.Args) > 1 {
		parsed, err := uuid.Parse(os.Args[1])
		if err != nil {
			log.Fatal("Invalid run ID:", err)
		}
		runID = parsed
	}
	if len(os.Args) > 2 {
		nodeID = os.Args[2]
	}

	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis successfully!")

	battleReq := &queue.Request{
		RequestID:  uuid.New().String(),
		Type:       queue.RequestTypeBattle,
		RunID:      runID,
		NodeID:     nodeID,
		EnqueuedAt: time.Now(),
	}

	data, err := json.Marshal(battleReq)
	if err != nil {
		log.Fatal("Failed to marshal request:", err)
	}

	if err := client.RPush(ctx, "battles", data).Err(); err != nil {
		log.Fatal("Failed to enqueue request:", err)
	}

	fmt.Printf("✅ Enqueued battle request: %s (run %s, node %s)\n", battleReq.RequestID, runID, nodeID)

	depth, err := client.LLen(ctx, "battles").Result()
	if err != nil {
		log.Fatal("Failed to get queue depth:", err)
	}

	fmt.Printf("\n📊 Queue depth: %d requests\n", depth)
	fmt.Println("\n💡 Now start the worker to see it process these requests!")
	fmt.Println("   Run: go run cmd/worker/main.go")
}
