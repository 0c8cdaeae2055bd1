package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcamden/wildrun/pkg/battle"
	"github.com/mcamden/wildrun/pkg/rng"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// CombatService resolves a battle at a map node and reports the
// per-member outcome. The card-combat engine proper is an external
// collaborator; this boundary is where its verdict enters the run
// engine, and the scripted implementation stands in for it.
type CombatService interface {
	ResolveBattle(ctx context.Context, s *run.RunState, node worldmap.Node) (*battle.Result, error)
}

// ScriptedCombat resolves battles from a seeded power comparison
// instead of playing cards. The same run seed and node id always
// produce the same verdict, so battles replay identically after a
// crash or a queue retry.
type ScriptedCombat struct {
	logger *slog.Logger
}

var _ CombatService = (*ScriptedCombat)(nil)

func NewScriptedCombat(logger *slog.Logger) *ScriptedCombat {
	return &ScriptedCombat{logger: logger}
}

// ResolveBattle builds both sides, compares party power against enemy
// power under a seeded swing factor, and spreads enemy power over the
// party as damage. Front-row members absorb a quarter more than the
// back row. A victory always leaves at least one member standing.
func (c *ScriptedCombat) ResolveBattle(ctx context.Context, s *run.RunState, node worldmap.Node) (*battle.Result, error) {
	party, err := battle.BuildParty(s.Party)
	if err != nil {
		return nil, fmt.Errorf("build party: %w", err)
	}
	enemies, err := battle.BuildEnemies(node)
	if err != nil {
		return nil, fmt.Errorf("build enemies: %w", err)
	}

	partyPower := 0
	for _, m := range party {
		partyPower += combatantPower(m)
	}
	enemyPower := 0
	for _, e := range enemies {
		enemyPower += e.Actor.HP()
	}

	roll, _ := rng.Roll(rng.SeedFor(s.Seed, "battle:"+node.ID))
	swing := 0.85 + roll/200
	victory := float64(partyPower)*swing >= float64(enemyPower)

	results := make(map[int]roster.CombatResult, len(party))
	if !victory {
		for _, m := range party {
			results[m.Index] = roster.CombatResult{
				FinalHP: 0,
				Alive:   false,
				Grid:    s.Party[m.Index].Grid,
			}
		}
	} else {
		base := enemyPower / (2 * len(party))
		survivor := -1
		survivorHP := 0
		for _, m := range party {
			dmg := base
			if s.Party[m.Index].Grid.Row == roster.RowFront {
				dmg = dmg * 5 / 4
			}
			hp := m.Actor.HP() - dmg
			if hp < 0 {
				hp = 0
			}
			results[m.Index] = roster.CombatResult{
				FinalHP: hp,
				Alive:   hp > 0,
				Grid:    s.Party[m.Index].Grid,
			}
			if m.Actor.HP() > survivorHP {
				survivor, survivorHP = m.Index, m.Actor.HP()
			}
		}
		if !anyAlive(results) && survivor >= 0 {
			results[survivor] = roster.CombatResult{
				FinalHP: 1,
				Alive:   true,
				Grid:    s.Party[survivor].Grid,
			}
		}
	}

	c.logger.Debug("Scripted battle resolved",
		"node_id", node.ID,
		"party_power", partyPower,
		"enemy_power", enemyPower,
		"swing", swing,
		"victory", victory)

	return &battle.Result{
		NodeID:  node.ID,
		Victory: victory,
		Party:   results,
	}, nil
}

// combatantPower folds a member's battle-relevant stats into one number:
// HP plus weighted level, energy, and draw.
func combatantPower(m battle.Combatant) int {
	level, _ := m.Actor.Attribute("level")
	energy, _ := m.Actor.Attribute("energy")
	draw, _ := m.Actor.Attribute("draw")
	return m.Actor.HP() + 8*level + 2*energy + draw
}

func anyAlive(results map[int]roster.CombatResult) bool {
	for _, r := range results {
		if r.Alive {
			return true
		}
	}
	return false
}
