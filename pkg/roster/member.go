// Package roster models the creatures a run carries: their HP, decks,
// levels, passives, and grid positions. Every operation is pure (value
// receiver in, new value out), so run state can be snapshotted, diffed,
// and replayed without defensive copying by callers.
package roster

import (
	"fmt"
	"sort"

	"github.com/mcamden/wildrun/pkg/content"
)

// Leveling constants. EXP cost is global, not per-species.
const (
	ExpPerLevel = 4
	MaxLevel    = 4
)

// Row is the front or back rank of the battle grid.
type Row string

const (
	RowFront Row = "front"
	RowBack  Row = "back"
)

// GridPosition is a slot on the 2x3 battle grid.
type GridPosition struct {
	Row Row `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether the position names a real grid slot.
func (p GridPosition) Valid() bool {
	return (p.Row == RowFront || p.Row == RowBack) && p.Col >= 0 && p.Col <= 2
}

// Member is one creature's run-persistent state. BaseSpeciesID never
// changes; CurrentFormID moves along the species' form chain on
// evolution. MaxHPModifier accumulates flat bonuses separately from form
// base stats so evolution can recompute MaxHP without losing them.
type Member struct {
	BaseSpeciesID  string       `json:"base_species_id"`
	CurrentFormID  string       `json:"current_form_id"`
	CurrentHP      int          `json:"current_hp"`
	MaxHP          int          `json:"max_hp"`
	MaxHPModifier  int          `json:"max_hp_modifier"`
	Deck           []string     `json:"deck"`
	Grid           GridPosition `json:"grid_position"`
	Level          int          `json:"level"`
	Exp            int          `json:"exp"`
	PassiveIDs     []string     `json:"passive_ability_ids"`
	KnockedOut     bool         `json:"knocked_out"`
	EnergyModifier int          `json:"energy_modifier,omitempty"`
	DrawModifier   int          `json:"draw_modifier,omitempty"`
}

// New creates a level-1 member of the given species at a grid position.
func New(speciesID string, pos GridPosition) (Member, error) {
	s, ok := content.SpeciesByID(speciesID)
	if !ok {
		return Member{}, fmt.Errorf("roster: unknown species %q", speciesID)
	}
	base := s.BaseForm()
	return Member{
		BaseSpeciesID: s.ID,
		CurrentFormID: base.ID,
		CurrentHP:     base.BaseMaxHP,
		MaxHP:         base.BaseMaxHP,
		Deck:          append([]string(nil), base.BaseDeck...),
		Grid:          pos,
		Level:         1,
	}, nil
}

// Clone returns a deep copy of the member.
func (m Member) Clone() Member {
	c := m
	if m.Deck != nil {
		c.Deck = append([]string(nil), m.Deck...)
	}
	if m.PassiveIDs != nil {
		c.PassiveIDs = append([]string(nil), m.PassiveIDs...)
	}
	return c
}

// Alive reports whether the member can participate in effects and
// battles: not knocked out and above zero HP.
func (m Member) Alive() bool {
	return !m.KnockedOut && m.CurrentHP > 0
}

// HasPassive reports whether the member has unlocked the passive.
func (m Member) HasPassive(id string) bool {
	for _, p := range m.PassiveIDs {
		if p == id {
			return true
		}
	}
	return false
}

// HealPercent restores floor(p * MaxHP), clamped to MaxHP. Knocked-out
// members are never healed; revival is a separate, explicit operation.
func (m Member) HealPercent(p float64) Member {
	if m.KnockedOut {
		return m
	}
	next := m.Clone()
	next.CurrentHP += int(p * float64(m.MaxHP))
	if next.CurrentHP > next.MaxHP {
		next.CurrentHP = next.MaxHP
	}
	return next
}

// FullHeal restores the member to MaxHP. Skips knocked-out members.
func (m Member) FullHeal() Member {
	if m.KnockedOut {
		return m
	}
	next := m.Clone()
	next.CurrentHP = next.MaxHP
	return next
}

// BoostMaxHP raises maximum and current HP together and records the
// bonus in MaxHPModifier so evolutions preserve it.
func (m Member) BoostMaxHP(delta int) Member {
	next := m.Clone()
	next.MaxHP += delta
	next.CurrentHP += delta
	next.MaxHPModifier += delta
	return next
}

// Damage applies narrative or environmental damage, which is floored at
// 1 HP: only combat resolution can knock a member out. Members already
// down are unaffected.
func (m Member) Damage(amount int) Member {
	if !m.Alive() {
		return m
	}
	next := m.Clone()
	next.CurrentHP -= amount
	if next.CurrentHP < 1 {
		next.CurrentHP = 1
	}
	return next
}

// GrantExp adds EXP without leveling; leveling is always a separate,
// explicit step so traversal grants land before eligibility is read.
func (m Member) GrantExp(n int) Member {
	next := m.Clone()
	next.Exp += n
	return next
}

// AddCard appends a card to the deck.
func (m Member) AddCard(cardID string) Member {
	next := m.Clone()
	next.Deck = append(next.Deck, cardID)
	return next
}

// AddDazed injects n copies of the Dazed curse card.
func (m Member) AddDazed(n int) Member {
	next := m.Clone()
	for i := 0; i < n; i++ {
		next.Deck = append(next.Deck, content.CardDazed)
	}
	return next
}

// RemoveCards drops the cards at the given deck indices. Indices are
// de-duplicated and processed highest-first so earlier positions stay
// stable during multi-removal; out-of-range indices are ignored.
func (m Member) RemoveCards(indices []int) Member {
	next := m.Clone()
	seen := make(map[int]bool, len(indices))
	sorted := make([]int, 0, len(indices))
	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			sorted = append(sorted, idx)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, idx := range sorted {
		if idx < 0 || idx >= len(next.Deck) {
			continue
		}
		next.Deck = append(next.Deck[:idx], next.Deck[idx+1:]...)
	}
	return next
}

// AdjustEnergy applies a permanent energy modifier delta.
func (m Member) AdjustEnergy(delta int) Member {
	next := m.Clone()
	next.EnergyModifier += delta
	return next
}

// AdjustDraw applies a permanent draw modifier delta.
func (m Member) AdjustDraw(delta int) Member {
	next := m.Clone()
	next.DrawModifier += delta
	return next
}
