// Package event defines the narrative event catalog entries and resolves
// choice outcomes into primitive effect lists. Resolution is deterministic:
// weighted branches draw from a per-node sub-stream of the run seed, so a
// replay with the same seed and choices lands on the same branches.
package event

import (
	"errors"
	"fmt"
)

// EffectType discriminates the closed set of primitive effects an event
// outcome can carry. Consumers switch exhaustively on this value.
type EffectType string

const (
	EffectGold        EffectType = "gold"
	EffectMaxHPBoost  EffectType = "max_hp_boost"
	EffectDamage      EffectType = "damage"
	EffectPercentHeal EffectType = "percent_heal"
	EffectFullHeal    EffectType = "full_heal"
	EffectExp         EffectType = "exp"
	EffectEnergyMod   EffectType = "energy_modifier"
	EffectDrawMod     EffectType = "draw_modifier"
	EffectDazed       EffectType = "dazed"
	EffectRemoveCards EffectType = "remove_cards"
	EffectEpicDraft   EffectType = "epic_draft"
	EffectShopDraft   EffectType = "shop_draft"
	EffectCloneCard   EffectType = "clone_card"
	EffectRecruit     EffectType = "recruit"
	EffectSetPath     EffectType = "set_path"
)

// Target selects which roster members an effect touches. Knocked-out
// members are always excluded; if nobody qualifies the effect is a no-op.
type Target string

const (
	TargetOne    Target = "one"
	TargetAll    Target = "all"
	TargetRandom Target = "random"
)

// Effect is one primitive consequence of a resolved event choice. Only
// the payload fields for its type are meaningful; the rest stay zero.
type Effect struct {
	Type   EffectType `json:"type"`
	Target Target     `json:"target,omitempty"`

	// Amount carries gold, HP deltas, damage, EXP, modifier deltas, the
	// Dazed copy count, draft pick counts, or the removal allowance,
	// depending on Type.
	Amount int `json:"amount,omitempty"`

	// Percent is the heal fraction for percent_heal, in (0, 1].
	Percent float64 `json:"percent,omitempty"`

	// SpeciesID names the offered species for recruit effects.
	SpeciesID string `json:"species_id,omitempty"`

	// NodeID and Edges describe a path rewrite for set_path effects.
	NodeID string   `json:"node_id,omitempty"`
	Edges  []string `json:"edges,omitempty"`
}

// Interactive reports whether the effect needs a follow-up player choice
// before it can land. Interactive effects are queued by the run engine
// and realized later, never applied in the resolution pass.
func (e Effect) Interactive() bool {
	switch e.Type {
	case EffectRemoveCards, EffectEpicDraft, EffectShopDraft, EffectCloneCard, EffectRecruit:
		return true
	default:
		return false
	}
}

// Validate checks the effect payload for authoring mistakes. Referential
// checks against species and node tables belong to the content registry.
func (e Effect) Validate() error {
	switch e.Type {
	case EffectGold, EffectMaxHPBoost, EffectDamage, EffectExp, EffectDazed:
		if e.Amount <= 0 {
			return fmt.Errorf("effect %s: amount must be positive, got %d", e.Type, e.Amount)
		}
	case EffectPercentHeal:
		if e.Percent <= 0 || e.Percent > 1 {
			return fmt.Errorf("effect %s: percent must be in (0,1], got %v", e.Type, e.Percent)
		}
	case EffectFullHeal:
		// No payload.
	case EffectEnergyMod, EffectDrawMod:
		if e.Amount == 0 {
			return fmt.Errorf("effect %s: amount must be nonzero", e.Type)
		}
	case EffectRemoveCards:
		if e.Amount <= 0 {
			return fmt.Errorf("effect %s: removal allowance must be positive", e.Type)
		}
	case EffectEpicDraft, EffectShopDraft:
		if e.Amount <= 0 {
			return fmt.Errorf("effect %s: pick count must be positive", e.Type)
		}
	case EffectCloneCard:
		// No payload.
	case EffectRecruit:
		if e.SpeciesID == "" {
			return errors.New("effect recruit: species id required")
		}
	case EffectSetPath:
		if e.NodeID == "" || len(e.Edges) == 0 {
			return errors.New("effect set_path: node id and edges required")
		}
	default:
		return fmt.Errorf("unknown effect type %q", e.Type)
	}
	return nil
}
