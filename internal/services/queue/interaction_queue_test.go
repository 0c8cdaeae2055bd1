package queue

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/run"
)

func testInteractionQueue(t *testing.T) (*InteractionQueue, func()) {
	t.Helper()
	client, mr := setupTestRedis(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	iq := NewInteractionQueue(client, logger)
	return iq, func() {
		client.Close()
		mr.Close()
	}
}

func TestInteractionQueue_EnqueueAndDrain(t *testing.T) {
	iq, teardown := testInteractionQueue(t)
	defer teardown()

	ctx := context.Background()
	runID := uuid.New()

	pending := []run.PendingInteraction{
		{
			Effect:      event.Effect{Type: event.EffectShopDraft, Amount: 3},
			TargetIndex: 1,
			NodeID:      "a1_e1",
		},
		{
			Effect:      event.Effect{Type: event.EffectRecruit, SpeciesID: "glimmoth"},
			TargetIndex: -1,
			NodeID:      "a1_e1",
		},
	}
	if err := iq.Enqueue(ctx, runID, pending...); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}

	depth, err := iq.Depth(ctx, runID)
	if err != nil {
		t.Fatalf("Failed to get depth: %v", err)
	}
	if depth != 2 {
		t.Errorf("Expected depth 2, got %d", depth)
	}

	drained, err := iq.Drain(ctx, runID)
	if err != nil {
		t.Fatalf("Failed to drain: %v", err)
	}
	if len(drained) != 2 {
		t.Fatalf("Expected 2 interactions, got %d", len(drained))
	}
	if drained[0].Effect.Type != event.EffectShopDraft || drained[0].TargetIndex != 1 {
		t.Errorf("First interaction mismatch: %+v", drained[0])
	}
	if drained[1].Effect.SpeciesID != "glimmoth" || drained[1].TargetIndex != -1 {
		t.Errorf("Second interaction mismatch: %+v", drained[1])
	}
	if drained[1].NodeID != "a1_e1" {
		t.Errorf("Expected node a1_e1, got %s", drained[1].NodeID)
	}

	// Queue should be empty after drain
	depth, _ = iq.Depth(ctx, runID)
	if depth != 0 {
		t.Errorf("Expected empty queue after drain, got depth %d", depth)
	}
}

func TestInteractionQueue_DrainEmpty(t *testing.T) {
	iq, teardown := testInteractionQueue(t)
	defer teardown()

	drained, err := iq.Drain(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Failed to drain empty queue: %v", err)
	}
	if len(drained) != 0 {
		t.Errorf("Expected no interactions, got %d", len(drained))
	}
}

func TestInteractionQueue_Peek(t *testing.T) {
	iq, teardown := testInteractionQueue(t)
	defer teardown()

	ctx := context.Background()
	runID := uuid.New()

	for _, node := range []string{"a1_e1", "a1_e2", "a2_e1"} {
		p := run.PendingInteraction{
			Effect: event.Effect{Type: event.EffectRemoveCards, Amount: 2},
			NodeID: node,
		}
		if err := iq.Enqueue(ctx, runID, p); err != nil {
			t.Fatalf("Failed to enqueue: %v", err)
		}
	}

	// Peek all
	peeked, err := iq.Peek(ctx, runID, 0)
	if err != nil {
		t.Fatalf("Failed to peek: %v", err)
	}
	if len(peeked) != 3 {
		t.Errorf("Expected 3 interactions, got %d", len(peeked))
	}

	// Peek should not remove interactions
	depth, _ := iq.Depth(ctx, runID)
	if depth != 3 {
		t.Errorf("Peek removed interactions: expected depth 3, got %d", depth)
	}

	// Peek with limit
	peeked, err = iq.Peek(ctx, runID, 2)
	if err != nil {
		t.Fatalf("Failed to peek with limit: %v", err)
	}
	if len(peeked) != 2 {
		t.Errorf("Expected 2 interactions, got %d", len(peeked))
	}
}

func TestInteractionQueue_Clear(t *testing.T) {
	iq, teardown := testInteractionQueue(t)
	defer teardown()

	ctx := context.Background()
	runID := uuid.New()

	p := run.PendingInteraction{
		Effect: event.Effect{Type: event.EffectCloneCard},
		NodeID: "a1_e1",
	}
	iq.Enqueue(ctx, runID, p)
	iq.Enqueue(ctx, runID, p)

	if err := iq.Clear(ctx, runID); err != nil {
		t.Fatalf("Failed to clear: %v", err)
	}

	depth, _ := iq.Depth(ctx, runID)
	if depth != 0 {
		t.Errorf("Expected empty queue after clear, got depth %d", depth)
	}
}

func TestInteractionQueue_RunIsolation(t *testing.T) {
	iq, teardown := testInteractionQueue(t)
	defer teardown()

	ctx := context.Background()
	run1 := uuid.New()
	run2 := uuid.New()

	p := run.PendingInteraction{
		Effect: event.Effect{Type: event.EffectEpicDraft, Amount: 1},
		NodeID: "a2_e1",
	}
	iq.Enqueue(ctx, run1, p)
	iq.Enqueue(ctx, run1, p)
	iq.Enqueue(ctx, run2, p)

	depth1, _ := iq.Depth(ctx, run1)
	depth2, _ := iq.Depth(ctx, run2)
	if depth1 != 2 {
		t.Errorf("Run 1 expected depth 2, got %d", depth1)
	}
	if depth2 != 1 {
		t.Errorf("Run 2 expected depth 1, got %d", depth2)
	}

	// Draining run 1 shouldn't affect run 2
	iq.Drain(ctx, run1)
	depth2After, _ := iq.Depth(ctx, run2)
	if depth2After != 1 {
		t.Errorf("Run 2 depth changed after draining run 1: got %d", depth2After)
	}
}
