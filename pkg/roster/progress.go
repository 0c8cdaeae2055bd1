package roster

import "github.com/mcamden/wildrun/pkg/content"

// CanLevelUp reports leveling eligibility: below the level cap, enough
// banked EXP, and a progression tree on file for the species. Members
// of tree-less species (enemy lines) simply never level.
func (m Member) CanLevelUp() bool {
	if m.Level >= MaxLevel || m.Exp < ExpPerLevel {
		return false
	}
	_, ok := content.TreeFor(m.CurrentFormID)
	return ok
}

// LevelUp applies one progression rung: evolve if the rung says so,
// recompute MaxHP from the (possibly new) form's base stats plus the
// accumulated modifier, preserve absolute damage taken, append rung
// cards, grant the rung passive once, spend the EXP cost. Ineligible
// members are returned unchanged.
func (m Member) LevelUp() Member {
	if !m.CanLevelUp() {
		return m
	}
	tree, ok := content.TreeFor(m.CurrentFormID)
	if !ok {
		return m
	}
	rung, ok := tree.RungFor(m.Level + 1)
	if !ok {
		return m
	}

	next := m.Clone()
	if rung.EvolveTo != "" {
		next.CurrentFormID = rung.EvolveTo
	}
	next.MaxHPModifier += rung.MaxHPDelta

	form := content.MustForm(next.CurrentFormID)
	damageTaken := m.MaxHP - m.CurrentHP
	next.MaxHP = form.BaseMaxHP + next.MaxHPModifier
	next.CurrentHP = next.MaxHP - damageTaken
	if next.CurrentHP < 0 {
		next.CurrentHP = 0
	}

	next.Deck = append(next.Deck, rung.CardIDs...)
	if rung.PassiveID != "" && !next.HasPassive(rung.PassiveID) {
		next.PassiveIDs = append(next.PassiveIDs, rung.PassiveID)
	}
	next.Level++
	next.Exp -= ExpPerLevel
	return next
}

// AutoLevel chains level-ups while the member stays eligible. Bench
// members use this on battle-node visits since no UI gates their choice;
// a large EXP lump can climb several rungs in one call.
func (m Member) AutoLevel() Member {
	next := m
	for next.CanLevelUp() {
		next = next.LevelUp()
	}
	return next
}

// CombatResult is the per-participant summary the combat engine hands
// back after a battle node.
type CombatResult struct {
	FinalHP       int          `json:"final_hp"`
	Alive         bool         `json:"alive"`
	Grid          GridPosition `json:"grid_position"`
	ConsumedCards []string     `json:"consumed_cards,omitempty"`
}

// SyncCombat overwrites HP and position from a combat result. A result
// at or below zero HP, or flagged not-alive, knocks the member out;
// this is the only path that sets KnockedOut. Consumed cards that the
// registry marks single-use leave the permanent deck, one copy per use.
func (m Member) SyncCombat(res CombatResult) Member {
	next := m.Clone()
	next.Grid = res.Grid

	hp := res.FinalHP
	if hp < 0 {
		hp = 0
	}
	if hp > next.MaxHP {
		hp = next.MaxHP
	}
	next.CurrentHP = hp
	if res.FinalHP <= 0 || !res.Alive {
		next.KnockedOut = true
		next.CurrentHP = 0
	}

	for _, cardID := range res.ConsumedCards {
		card, ok := content.CardByID(cardID)
		if !ok || !card.SingleUse {
			continue
		}
		for i, deckCard := range next.Deck {
			if deckCard == cardID {
				next.Deck = append(next.Deck[:i], next.Deck[i+1:]...)
				break
			}
		}
	}
	return next
}

// Revive clears the knockout at a fraction of max HP, floored at 1, and
// leaves a Mending Scar in the deck.
func (m Member) Revive(fraction float64) Member {
	if !m.KnockedOut {
		return m
	}
	next := m.Clone()
	next.KnockedOut = false
	next.CurrentHP = int(fraction * float64(next.MaxHP))
	if next.CurrentHP < 1 {
		next.CurrentHP = 1
	}
	next.Deck = append(next.Deck, content.CardMendingScar)
	return next
}
