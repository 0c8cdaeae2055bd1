package run

import (
	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// MoveTo advances the run to a node reachable from the current one.
// The target is marked completed and appended to the visit history.
// Battle nodes grant +1 EXP to every party and bench member, and bench
// members auto-level in the same step; rest nodes heal the living party.
// Unknown or unreachable targets leave the state unchanged.
func (s RunState) MoveTo(nodeID string) (RunState, bool) {
	if s.Status != StatusActive {
		return s, false
	}
	current, ok := s.CurrentNode()
	if !ok || !current.ConnectsToNode(nodeID) {
		return s, false
	}
	target, ok := s.Nodes[nodeID]
	if !ok {
		return s, false
	}

	next := s.Clone()
	target = next.Nodes[nodeID]
	target.Completed = true
	next.Nodes[nodeID] = target
	next.CurrentNodeID = nodeID
	if !next.hasVisited(nodeID) {
		next.VisitedNodeIDs = append(next.VisitedNodeIDs, nodeID)
	}

	switch target.Type {
	case worldmap.NodeBattle:
		for i := range next.Party {
			next.Party[i] = next.Party[i].GrantExp(1)
		}
		for i := range next.Bench {
			next.Bench[i] = next.Bench[i].GrantExp(1).AutoLevel()
		}
	case worldmap.NodeRest:
		for i := range next.Party {
			next.Party[i] = next.Party[i].HealPercent(RestHealPercent)
		}
	}
	return next, true
}

// SetPath rewrites a node's outgoing edges. Used by events that open
// hidden branches. Unknown nodes leave the state unchanged.
func (s RunState) SetPath(nodeID string, edges []string) RunState {
	if _, ok := s.Nodes[nodeID]; !ok {
		return s
	}
	next := s.Clone()
	n := next.Nodes[nodeID]
	n.ConnectsTo = append([]string(nil), edges...)
	next.Nodes[nodeID] = n
	return next
}

// AdvanceAct consumes the current act-transition node: the next act's
// graph is generated and the run stands on its spawn, with roster, gold,
// and seen-event history carried over. On the final transition the run
// completes victorious instead. Any other current node leaves the state
// unchanged.
func (s RunState) AdvanceAct() (RunState, bool) {
	if s.Status != StatusActive {
		return s, false
	}
	current, ok := s.CurrentNode()
	if !ok || current.Type != worldmap.NodeActTransition {
		return s, false
	}

	if current.TargetAct > content.ActCount() {
		next := s.Clone()
		next.Status = StatusVictorious
		return next, true
	}

	next, err := s.enterAct(current.TargetAct)
	if err != nil {
		return s, false
	}
	return next, true
}

// SyncBattle overwrites party HP and positions from the combat engine's
// per-combatant results, keyed by party index. Members without a result
// are untouched. Sync must land before CleanupKnockouts runs.
func (s RunState) SyncBattle(results map[int]roster.CombatResult) RunState {
	next := s.Clone()
	for i, res := range results {
		if i < 0 || i >= len(next.Party) {
			continue
		}
		next.Party[i] = next.Party[i].SyncCombat(res)
	}
	return next
}

// CleanupKnockouts moves every knocked-out party and bench member to the
// graveyard in one batch. A run whose whole roster is in the graveyard
// is defeated.
func (s RunState) CleanupKnockouts() RunState {
	next := s.Clone()

	var party []roster.Member
	for _, m := range next.Party {
		if m.KnockedOut {
			next.Graveyard = append(next.Graveyard, m)
		} else {
			party = append(party, m)
		}
	}
	next.Party = party
	if next.Party == nil {
		next.Party = []roster.Member{}
	}

	var bench []roster.Member
	for _, m := range next.Bench {
		if m.KnockedOut {
			next.Graveyard = append(next.Graveyard, m)
		} else {
			bench = append(bench, m)
		}
	}
	next.Bench = bench
	if next.Bench == nil {
		next.Bench = []roster.Member{}
	}

	if len(next.Party) == 0 && len(next.Bench) == 0 {
		next.Status = StatusDefeated
	}
	return next
}

// battle reward constants.
const (
	baseBattleGold      = 50
	actBattleGoldBonus  = 15
	bossBattleGoldBonus = 25
	scavengerMultiplier = 1.25
)

// BattleReward computes the gold for clearing a battle node: a flat
// base, an act bonus, a boss bonus for multiplied-HP enemies, then the
// scavenger passive's multiplier on top if anyone in the party carries
// it, floored.
func (s RunState) BattleReward(node worldmap.Node) int {
	if node.Type != worldmap.NodeBattle {
		return 0
	}
	gold := baseBattleGold + actBattleGoldBonus*(s.CurrentAct-1)
	if node.IsBoss() {
		gold += bossBattleGoldBonus
	}
	if s.HasPartyPassive(content.PassiveScavenger) {
		gold = int(float64(gold) * scavengerMultiplier)
	}
	return gold
}
