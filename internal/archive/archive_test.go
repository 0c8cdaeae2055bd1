package archive

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/run"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func archivedRun(t *testing.T, seed int64) *run.RunState {
	t.Helper()
	s, err := run.NewRun(seed, []string{"cindercub", "mossling"})
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC().Add(-time.Hour)
	return &s
}

func TestArchiveAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	s := archivedRun(t, 42)
	s.Status = run.StatusVictorious
	s.Gold = 210
	s.CurrentAct = 3

	if err := store.ArchiveRun(ctx, s); err != nil {
		t.Fatalf("Failed to archive: %v", err)
	}

	rec, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected a record")
	}
	if rec.ID != s.ID || rec.Seed != s.Seed {
		t.Errorf("Identity mismatch: %+v", rec)
	}
	if rec.Status != "victorious" || rec.Act != 3 || rec.Gold != 210 {
		t.Errorf("Outcome mismatch: %+v", rec)
	}
	if len(rec.Party) != 2 || rec.Party[0].SpeciesID != "cindercub" || rec.Party[0].Level != 1 {
		t.Errorf("Party summary mismatch: %+v", rec.Party)
	}
	if rec.ArchivedAt.IsZero() || rec.CreatedAt.IsZero() {
		t.Errorf("Timestamps missing: %+v", rec)
	}
}

func TestArchiveFlagsFallen(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	s := archivedRun(t, 7)
	s.Party[1].KnockedOut = true
	s.Party[1].CurrentHP = 0
	next := s.CleanupKnockouts()
	s = &next

	if err := store.ArchiveRun(ctx, s); err != nil {
		t.Fatalf("Failed to archive: %v", err)
	}

	rec, err := store.Get(ctx, s.ID)
	if err != nil || rec == nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if len(rec.Party) != 2 {
		t.Fatalf("Expected 2 summary lines, got %d", len(rec.Party))
	}
	if rec.Party[0].Fallen {
		t.Errorf("Survivor flagged fallen: %+v", rec.Party[0])
	}
	if !rec.Party[1].Fallen || rec.Party[1].SpeciesID != "mossling" {
		t.Errorf("Graveyard member not flagged: %+v", rec.Party[1])
	}
}

func TestArchiveOverwritesSameRun(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	s := archivedRun(t, 9)
	s.Status = run.StatusAbandoned
	if err := store.ArchiveRun(ctx, s); err != nil {
		t.Fatalf("Failed to archive: %v", err)
	}

	s.Status = run.StatusVictorious
	s.Gold = 99
	if err := store.ArchiveRun(ctx, s); err != nil {
		t.Fatalf("Failed to re-archive: %v", err)
	}

	recs, err := store.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Expected a single record, got %d", len(recs))
	}
	if recs[0].Status != "victorious" || recs[0].Gold != 99 {
		t.Errorf("Record not updated: %+v", recs[0])
	}
}

func TestListOrdersByArchiveTime(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		s := archivedRun(t, int64(i+1))
		s.Status = run.StatusDefeated
		if err := store.ArchiveRun(ctx, s); err != nil {
			t.Fatalf("Failed to archive: %v", err)
		}
		ids[i] = s.ID
		time.Sleep(2 * time.Millisecond)
	}

	recs, err := store.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(recs))
	}
	if recs[0].ID != ids[2] {
		t.Errorf("Expected most recent first, got %v", recs[0].ID)
	}

	limited, err := store.List(ctx, 2, 1)
	if err != nil {
		t.Fatalf("Failed to list with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 records with limit, got %d", len(limited))
	}
}

func TestGetMissingRecord(t *testing.T) {
	store := testStore(t)

	rec, err := store.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for missing record, got: %v", err)
	}
	if rec != nil {
		t.Errorf("Expected nil for missing record, got %+v", rec)
	}
}

func TestArchiveRejects(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.ArchiveRun(ctx, nil); err == nil {
		t.Error("Expected error for nil run")
	}

	s, err := run.NewRun(1, []string{"cindercub"})
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	// No id assigned
	if err := store.ArchiveRun(ctx, &s); err == nil {
		t.Error("Expected error for run without id")
	}
}
