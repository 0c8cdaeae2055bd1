// Package battle is the boundary between the run engine and the combat
// engine. Combat turn resolution happens elsewhere; this package builds
// engine-ready combat actors from roster members and enemy specs, and
// applies a finished battle's results back onto the run in one step.
package battle

import (
	"fmt"

	"github.com/jwebster45206/d20"

	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

const (
	// baseEnergy and baseDraw are a combatant's unmodified per-turn
	// energy and card draw.
	baseEnergy = 3
	baseDraw   = 5

	baseAC = 10
)

// Combatant pairs an identity with its built combat actor. Index is the
// party index for friendly combatants and spawn order for enemies.
type Combatant struct {
	ID    string
	Index int
	Actor *d20.Actor
}

// BuildParty constructs combat actors for every living party member.
// Knocked-out members are skipped; Index preserves the original party
// index so results map back without guessing.
func BuildParty(party []roster.Member) ([]Combatant, error) {
	var out []Combatant
	for i, m := range party {
		if !m.Alive() {
			continue
		}
		c, err := buildMember(i, m)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("battle: no living party members")
	}
	return out, nil
}

func buildMember(idx int, m roster.Member) (Combatant, error) {
	attrs := map[string]int{
		"level":  m.Level,
		"energy": baseEnergy + m.EnergyModifier,
		"draw":   baseDraw + m.DrawModifier,
	}
	actor, err := d20.NewActor(m.CurrentFormID).
		WithHP(m.MaxHP).
		WithAC(baseAC + m.Level).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return Combatant{}, fmt.Errorf("battle: build %s: %w", m.CurrentFormID, err)
	}
	if m.CurrentHP != m.MaxHP {
		if err := actor.SetHP(m.CurrentHP); err != nil {
			return Combatant{}, fmt.Errorf("battle: set hp for %s: %w", m.CurrentFormID, err)
		}
	}
	return Combatant{ID: m.CurrentFormID, Index: idx, Actor: actor}, nil
}

// BuildEnemies constructs combat actors for a battle node's enemy list,
// scaling each enemy's base-form HP by the node's multiplier.
func BuildEnemies(node worldmap.Node) ([]Combatant, error) {
	if node.Type != worldmap.NodeBattle {
		return nil, fmt.Errorf("battle: node %s is not a battle", node.ID)
	}
	mult := node.EnemyHPMultiplier
	if mult <= 0 {
		mult = 1
	}
	out := make([]Combatant, 0, len(node.EnemySpeciesIDs))
	for i, speciesID := range node.EnemySpeciesIDs {
		sp, ok := content.SpeciesByID(speciesID)
		if !ok {
			return nil, fmt.Errorf("battle: unknown enemy species %q", speciesID)
		}
		hp := int(float64(sp.BaseForm().BaseMaxHP) * mult)
		if hp < 1 {
			hp = 1
		}
		actor, err := d20.NewActor(fmt.Sprintf("%s_%d", speciesID, i)).
			WithHP(hp).
			WithAC(baseAC).
			Build()
		if err != nil {
			return nil, fmt.Errorf("battle: build enemy %s: %w", speciesID, err)
		}
		out = append(out, Combatant{ID: speciesID, Index: i, Actor: actor})
	}
	return out, nil
}

// Result is what the combat engine hands back when a battle ends:
// per-party-index outcomes plus who won.
type Result struct {
	NodeID  string                      `json:"node_id"`
	Victory bool                        `json:"victory"`
	Party   map[int]roster.CombatResult `json:"party"`
}

// Apply lands a finished battle on the run: combat results sync onto the
// party, knockouts move to the graveyard, and a victory pays the node's
// gold reward. Returns the new state and the gold awarded.
func Apply(s run.RunState, res Result) (run.RunState, int) {
	next := s.SyncBattle(res.Party)
	next = next.CleanupKnockouts()

	gold := 0
	if res.Victory {
		if node, ok := next.Nodes[res.NodeID]; ok {
			gold = next.BattleReward(node)
			next = next.AddGold(gold)
		}
	}
	return next, gold
}
