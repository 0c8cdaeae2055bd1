package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/battle"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// MockCombatService is a mock implementation of CombatService for testing
type MockCombatService struct {
	ResolveBattleFunc func(ctx context.Context, s *run.RunState, node worldmap.Node) (*battle.Result, error)

	// Track calls for testing
	ResolveBattleCalls []ResolveBattleCall

	mu sync.Mutex // protects all fields above
}

type ResolveBattleCall struct {
	RunID  uuid.UUID
	NodeID string
}

var _ CombatService = (*MockCombatService)(nil)

// NewMockCombatService creates a new mock combat service
func NewMockCombatService() *MockCombatService {
	return &MockCombatService{
		ResolveBattleCalls: make([]ResolveBattleCall, 0),
	}
}

// ResolveBattle mocks battle resolution. The default behavior is a
// flawless victory: every able member keeps its HP and position.
func (m *MockCombatService) ResolveBattle(ctx context.Context, s *run.RunState, node worldmap.Node) (*battle.Result, error) {
	m.mu.Lock()
	m.ResolveBattleCalls = append(m.ResolveBattleCalls, ResolveBattleCall{
		RunID:  s.ID,
		NodeID: node.ID,
	})
	m.mu.Unlock()

	if m.ResolveBattleFunc != nil {
		return m.ResolveBattleFunc(ctx, s, node)
	}

	results := make(map[int]roster.CombatResult)
	for i, member := range s.Party {
		if !member.Alive() {
			continue
		}
		results[i] = roster.CombatResult{
			FinalHP: member.CurrentHP,
			Alive:   true,
			Grid:    member.Grid,
		}
	}
	return &battle.Result{
		NodeID:  node.ID,
		Victory: true,
		Party:   results,
	}, nil
}

// Reset clears all call tracking
func (m *MockCombatService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveBattleCalls = make([]ResolveBattleCall, 0)
}
