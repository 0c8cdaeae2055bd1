// Package archive keeps a permanent record of finished runs. Live runs
// expire out of Redis; when one ends (victory, defeat, or abandonment)
// the service writes its footprint here so history survives the TTL.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
)

// Record is one archived run.
type Record struct {
	ID         uuid.UUID      `json:"id"`
	Seed       int64          `json:"seed"`
	Status     string         `json:"status"`
	Act        int            `json:"act"`
	Gold       int            `json:"gold"`
	Party      []PartySummary `json:"party"`
	CreatedAt  time.Time      `json:"created_at"`
	ArchivedAt time.Time      `json:"archived_at"`
}

// PartySummary is the compact roster line stored with a record: every
// creature the run carried, with fallen ones flagged.
type PartySummary struct {
	SpeciesID string `json:"species_id"`
	FormID    string `json:"form_id"`
	Level     int    `json:"level"`
	Fallen    bool   `json:"fallen,omitempty"`
}

type Store struct {
	db *sql.DB
}

// New opens/creates the archive database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			status TEXT NOT NULL,
			act INTEGER NOT NULL,
			gold INTEGER NOT NULL,
			party TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			archived_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_archived_at ON runs(archived_at DESC);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// ArchiveRun records a run's final state. Re-archiving the same id
// overwrites the previous record, so a run that is synced again after
// its status settles keeps a single row.
func (s *Store) ArchiveRun(ctx context.Context, st *run.RunState) error {
	if st == nil {
		return errors.New("run cannot be nil")
	}
	if st.ID == uuid.Nil {
		return errors.New("run has no id")
	}

	party, err := json.Marshal(summarize(st))
	if err != nil {
		return fmt.Errorf("marshal party summary: %w", err)
	}

	createdAt := st.CreatedAt.UTC()
	if st.CreatedAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs(id, seed, status, act, gold, party, created_at, archived_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status=excluded.status,
			act=excluded.act,
			gold=excluded.gold,
			party=excluded.party,
			archived_at=excluded.archived_at`,
		st.ID.String(), st.Seed, string(st.Status), st.CurrentAct, st.Gold,
		string(party), createdAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	return nil
}

// Get returns one archived run, or nil when the id is unknown.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seed, status, act, gold, party, created_at, archived_at
		FROM runs WHERE id=?`, id.String())

	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns archived runs, most recently archived first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seed, status, act, gold, party, created_at, archived_at
		FROM runs
		ORDER BY archived_at DESC, id
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanRecord(scan func(dest ...any) error) (*Record, error) {
	var rec Record
	var party string
	if err := scan(&rec.ID, &rec.Seed, &rec.Status, &rec.Act, &rec.Gold,
		&party, &rec.CreatedAt, &rec.ArchivedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(party), &rec.Party); err != nil {
		return nil, fmt.Errorf("parse party summary: %w", err)
	}
	return &rec, nil
}

// summarize flattens the full roster into summary lines: party and
// bench first, then the graveyard flagged as fallen.
func summarize(st *run.RunState) []PartySummary {
	out := make([]PartySummary, 0, len(st.Party)+len(st.Bench)+len(st.Graveyard))
	add := func(members []roster.Member, fallen bool) {
		for _, m := range members {
			out = append(out, PartySummary{
				SpeciesID: m.BaseSpeciesID,
				FormID:    m.CurrentFormID,
				Level:     m.Level,
				Fallen:    fallen,
			})
		}
	}
	add(st.Party, false)
	add(st.Bench, false)
	add(st.Graveyard, true)
	return out
}
