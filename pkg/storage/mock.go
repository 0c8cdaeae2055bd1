package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/journal"
	"github.com/mcamden/wildrun/pkg/run"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	runs      map[uuid.UUID]*run.RunState
	journals  map[uuid.UUID][]journal.Entry
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		runs:     make(map[uuid.UUID]*run.RunState),
		journals: make(map[uuid.UUID][]journal.Entry),
	}
}

// SetPingSuccess configures the mock to succeed on ping
func (m *MockStorage) SetPingSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = nil
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pingError != nil {
		return m.pingError
	}
	return nil
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveRun mocks saving a run
func (m *MockStorage) SaveRun(ctx context.Context, id uuid.UUID, s *run.RunState) error {
	if s == nil {
		return errors.New("run cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[id] = s
	return nil
}

// LoadRun mocks loading a run
func (m *MockStorage) LoadRun(ctx context.Context, id uuid.UUID) (*run.RunState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, exists := m.runs[id]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return s, nil
}

// DeleteRun mocks deleting a run and its journal
func (m *MockStorage) DeleteRun(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runs, id)
	delete(m.journals, id)
	return nil
}

// AppendJournal mocks appending journal entries for a run
func (m *MockStorage) AppendJournal(ctx context.Context, id uuid.UUID, entries ...journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journals[id] = append(m.journals[id], entries...)
	return nil
}

// LoadJournal mocks loading the journal for a run
func (m *MockStorage) LoadJournal(ctx context.Context, id uuid.UUID) ([]journal.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.journals[id]
	result := make([]journal.Entry, len(entries))
	copy(result, entries)
	return result, nil
}
