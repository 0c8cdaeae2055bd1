package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/journal"
	"github.com/mcamden/wildrun/pkg/run"
)

// Storage defines a unified interface for run persistence. Runs and
// their journals live in Redis keyed by run id; static content (species,
// cards, events, acts) is compiled into pkg/content and never loaded
// through storage.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Run operations
	// LoadRun returns nil for a run that does not exist.
	SaveRun(ctx context.Context, id uuid.UUID, s *run.RunState) error
	LoadRun(ctx context.Context, id uuid.UUID) (*run.RunState, error)
	DeleteRun(ctx context.Context, id uuid.UUID) error

	// Journal operations. The journal is an append-only travel log per
	// run; DeleteRun removes it together with the run.
	AppendJournal(ctx context.Context, id uuid.UUID, entries ...journal.Entry) error
	LoadJournal(ctx context.Context, id uuid.UUID) ([]journal.Entry, error)
}
