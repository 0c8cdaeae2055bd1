package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/internal/archive"
	"github.com/mcamden/wildrun/internal/services"
	"github.com/mcamden/wildrun/pkg/battle"
	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/journal"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/storage"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// BattleProcessor resolves battles and lands the results on the run.
// It's used by both the HTTP handler (synchronously) and the worker
// (asynchronously).
type BattleProcessor struct {
	storage storage.Storage
	combat  services.CombatService
	archive *archive.Store
	logger  *slog.Logger
}

// NewBattleProcessor creates a new battle processor. The archive store
// may be nil when finished runs should not be kept.
func NewBattleProcessor(
	storage storage.Storage,
	combat services.CombatService,
	archive *archive.Store,
	logger *slog.Logger,
) *BattleProcessor {
	return &BattleProcessor{
		storage: storage,
		combat:  combat,
		archive: archive,
		logger:  logger,
	}
}

// BattleOutcome reports a resolved battle back to the caller.
type BattleOutcome struct {
	Result *battle.Result `json:"result"`
	Gold   int            `json:"gold"`
	State  *run.RunState  `json:"state"`
}

// ProcessBattle resolves the battle at nodeID for the given run: the
// combat service fights it, the results sync onto the party, knockouts
// move to the graveyard and a victory pays out. The updated run is
// saved and journaled; runs that end here are archived.
func (p *BattleProcessor) ProcessBattle(ctx context.Context, runID uuid.UUID, nodeID string) (*BattleOutcome, error) {
	s, node, err := p.loadBattleState(ctx, runID, nodeID)
	if err != nil {
		return nil, err
	}

	res, err := p.combat.ResolveBattle(ctx, s, node)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve battle: %w", err)
	}

	return p.land(ctx, runID, s, node, res)
}

// SyncResult lands a battle resolved by an external combat engine.
// The result names its node; validation and landing are the same path
// ProcessBattle takes.
func (p *BattleProcessor) SyncResult(ctx context.Context, runID uuid.UUID, res *battle.Result) (*BattleOutcome, error) {
	if res == nil || res.NodeID == "" {
		return nil, fmt.Errorf("battle result requires a node id")
	}
	s, node, err := p.loadBattleState(ctx, runID, res.NodeID)
	if err != nil {
		return nil, err
	}
	return p.land(ctx, runID, s, node, res)
}

// loadBattleState loads the run and checks that it is standing on the
// named battle node.
func (p *BattleProcessor) loadBattleState(ctx context.Context, runID uuid.UUID, nodeID string) (*run.RunState, worldmap.Node, error) {
	s, err := p.storage.LoadRun(ctx, runID)
	if err != nil {
		return nil, worldmap.Node{}, fmt.Errorf("failed to load run: %w", err)
	}
	if s == nil {
		return nil, worldmap.Node{}, fmt.Errorf("run not found: %s", runID.String())
	}
	if s.Status != run.StatusActive {
		return nil, worldmap.Node{}, fmt.Errorf("run %s is not active", runID.String())
	}

	node, ok := s.Nodes[nodeID]
	if !ok {
		return nil, worldmap.Node{}, fmt.Errorf("node %s is not in the current act", nodeID)
	}
	if node.Type != worldmap.NodeBattle {
		return nil, worldmap.Node{}, fmt.Errorf("node %s is not a battle node", nodeID)
	}
	if s.CurrentNodeID != nodeID {
		return nil, worldmap.Node{}, fmt.Errorf("party is at %s, not %s", s.CurrentNodeID, nodeID)
	}
	return s, node, nil
}

// land applies a finished battle to the run, saves it, journals the
// outcome and archives the run if it ended here.
func (p *BattleProcessor) land(ctx context.Context, runID uuid.UUID, s *run.RunState, node worldmap.Node, res *battle.Result) (*BattleOutcome, error) {
	fallenBefore := len(s.Graveyard)
	next, gold := battle.Apply(*s, *res)

	if err := p.storage.SaveRun(ctx, runID, &next); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	entries := battleEntries(node, res.Victory, gold, next, fallenBefore)
	if err := p.storage.AppendJournal(ctx, runID, entries...); err != nil {
		// Don't fail the battle just because the journal write failed
		p.logger.Error("Failed to append journal", "error", err, "run_id", runID.String())
	}

	if next.Status != run.StatusActive && p.archive != nil {
		if err := p.archive.ArchiveRun(ctx, &next); err != nil {
			p.logger.Error("Failed to archive finished run", "error", err, "run_id", runID.String())
		}
	}

	p.logger.Info("Battle resolved",
		"run_id", runID.String(),
		"node_id", node.ID,
		"victory", res.Victory,
		"gold", gold,
		"status", next.Status,
	)

	return &BattleOutcome{Result: res, Gold: gold, State: &next}, nil
}

// battleEntries narrates a resolved battle. Members past fallenBefore
// in the graveyard fell in this battle.
func battleEntries(node worldmap.Node, victory bool, gold int, next run.RunState, fallenBefore int) []journal.Entry {
	var entries []journal.Entry
	switch {
	case victory && node.IsBoss():
		entries = append(entries, journal.New(journal.KindBattle, "defeated the boss at %s", node.ID))
	case victory:
		entries = append(entries, journal.New(journal.KindBattle, "won the battle at %s", node.ID))
	default:
		entries = append(entries, journal.New(journal.KindBattle, "lost the battle at %s", node.ID))
	}
	for _, m := range next.Graveyard[fallenBefore:] {
		entries = append(entries, journal.New(journal.KindParty, "%s fell in battle", memberName(m)))
	}
	if victory && gold > 0 {
		entries = append(entries, journal.New(journal.KindReward, "earned %d gold", gold))
	}
	if next.Status == run.StatusDefeated {
		entries = append(entries, journal.New(journal.KindSystem, "the run ended in defeat"))
	}
	return entries
}

func memberName(m roster.Member) string {
	if f, ok := content.FormByID(m.CurrentFormID); ok {
		return f.Name
	}
	return m.CurrentFormID
}
