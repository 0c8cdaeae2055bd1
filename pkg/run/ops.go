package run

import (
	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/roster"
)

// HealParty applies a percent heal to every living party member.
func (s RunState) HealParty(percent float64) RunState {
	next := s.Clone()
	for i := range next.Party {
		next.Party[i] = next.Party[i].HealPercent(percent)
	}
	return next
}

// LevelUpMember levels one party member a single step, the explicit
// player action. Ineligible members leave the state unchanged.
func (s RunState) LevelUpMember(partyIdx int) (RunState, bool) {
	if partyIdx < 0 || partyIdx >= len(s.Party) || !s.Party[partyIdx].CanLevelUp() {
		return s, false
	}
	next := s.Clone()
	next.Party[partyIdx] = next.Party[partyIdx].LevelUp()
	return next, true
}

// AddGold credits the run's purse.
func (s RunState) AddGold(amount int) RunState {
	next := s.Clone()
	next.Gold += amount
	return next
}

// SpendGold debits the purse. Overspending reports failure and leaves
// the state unchanged; gold never goes negative.
func (s RunState) SpendGold(amount int) (RunState, bool) {
	if amount < 0 || amount > s.Gold {
		return s, false
	}
	next := s.Clone()
	next.Gold -= amount
	return next, true
}

// RemoveMemberCards removes up to limit cards from a party member's deck
// by index, realizing a card-removal node or a queued removal effect.
// Extra indices beyond the limit are dropped.
func (s RunState) RemoveMemberCards(partyIdx int, indices []int, limit int) (RunState, bool) {
	if partyIdx < 0 || partyIdx >= len(s.Party) || len(indices) == 0 || limit <= 0 {
		return s, false
	}
	if len(indices) > limit {
		indices = indices[:limit]
	}
	next := s.Clone()
	next.Party[partyIdx] = next.Party[partyIdx].RemoveCards(indices)
	return next, true
}

// AddCardToMember appends a drafted card to a party member's deck.
// Unknown cards leave the state unchanged.
func (s RunState) AddCardToMember(partyIdx int, cardID string) (RunState, bool) {
	if partyIdx < 0 || partyIdx >= len(s.Party) {
		return s, false
	}
	if _, ok := content.CardByID(cardID); !ok {
		return s, false
	}
	next := s.Clone()
	next.Party[partyIdx] = next.Party[partyIdx].AddCard(cardID)
	return next, true
}

// BuyCard spends the card's shop price and adds it to a party member's
// deck in one step. Insufficient gold or an unpriced card is a no-op.
func (s RunState) BuyCard(partyIdx int, cardID string) (RunState, bool) {
	card, ok := content.CardByID(cardID)
	if !ok || card.Cost <= 0 {
		return s, false
	}
	next, ok := s.SpendGold(card.Cost)
	if !ok {
		return s, false
	}
	return next.AddCardToMember(partyIdx, cardID)
}

// CloneMemberCard duplicates one card in a party member's deck,
// appending the copy.
func (s RunState) CloneMemberCard(partyIdx int, deckIdx int) (RunState, bool) {
	if partyIdx < 0 || partyIdx >= len(s.Party) {
		return s, false
	}
	deck := s.Party[partyIdx].Deck
	if deckIdx < 0 || deckIdx >= len(deck) {
		return s, false
	}
	next := s.Clone()
	next.Party[partyIdx] = next.Party[partyIdx].AddCard(deck[deckIdx])
	return next, true
}

// Recruit adds a new level-1 member of the species to the bench. A full
// bench refuses the recruit.
func (s RunState) Recruit(speciesID string) (RunState, bool) {
	if len(s.Bench) >= MaxBenchSize {
		return s, false
	}
	m, err := roster.New(speciesID, roster.GridPosition{Row: roster.RowBack, Col: 0})
	if err != nil {
		return s, false
	}
	next := s.Clone()
	next.Bench = append(next.Bench, m)
	return next, true
}

// SwapMembers exchanges a party member with a bench member. The bench
// member inherits the departing member's grid position.
func (s RunState) SwapMembers(partyIdx, benchIdx int) (RunState, bool) {
	if partyIdx < 0 || partyIdx >= len(s.Party) || benchIdx < 0 || benchIdx >= len(s.Bench) {
		return s, false
	}
	next := s.Clone()
	out := next.Party[partyIdx]
	in := next.Bench[benchIdx]
	in.Grid = out.Grid
	next.Party[partyIdx] = in
	next.Bench[benchIdx] = out
	return next, true
}

// PromoteMember moves a bench member into the party at a free, valid
// grid position.
func (s RunState) PromoteMember(benchIdx int, pos roster.GridPosition) (RunState, bool) {
	if benchIdx < 0 || benchIdx >= len(s.Bench) || len(s.Party) >= MaxPartySize || !pos.Valid() {
		return s, false
	}
	for _, m := range s.Party {
		if m.Grid == pos {
			return s, false
		}
	}
	next := s.Clone()
	m := next.Bench[benchIdx]
	m.Grid = pos
	next.Party = append(next.Party, m)
	next.Bench = append(next.Bench[:benchIdx], next.Bench[benchIdx+1:]...)
	return next, true
}

// DemoteMember moves a party member to the bench. The party keeps at
// least one member and the bench holds at most four.
func (s RunState) DemoteMember(partyIdx int) (RunState, bool) {
	if partyIdx < 0 || partyIdx >= len(s.Party) || len(s.Party) <= 1 || len(s.Bench) >= MaxBenchSize {
		return s, false
	}
	next := s.Clone()
	m := next.Party[partyIdx]
	next.Party = append(next.Party[:partyIdx], next.Party[partyIdx+1:]...)
	next.Bench = append(next.Bench, m)
	return next, true
}

// RearrangeParty reassigns every party member's grid position in one
// step. The layout must cover the whole party with valid, distinct
// slots.
func (s RunState) RearrangeParty(positions []roster.GridPosition) (RunState, bool) {
	if len(positions) != len(s.Party) {
		return s, false
	}
	used := map[roster.GridPosition]bool{}
	for _, pos := range positions {
		if !pos.Valid() || used[pos] {
			return s, false
		}
		used[pos] = true
	}
	next := s.Clone()
	for i := range next.Party {
		next.Party[i].Grid = positions[i]
	}
	return next, true
}

// ReviveMember brings a graveyard member back onto the bench at a
// fraction of max HP, with the revival scar in their deck.
func (s RunState) ReviveMember(graveyardIdx int, fraction float64) (RunState, bool) {
	if graveyardIdx < 0 || graveyardIdx >= len(s.Graveyard) || len(s.Bench) >= MaxBenchSize {
		return s, false
	}
	next := s.Clone()
	m := next.Graveyard[graveyardIdx].Revive(fraction)
	next.Graveyard = append(next.Graveyard[:graveyardIdx], next.Graveyard[graveyardIdx+1:]...)
	next.Bench = append(next.Bench, m)
	return next, true
}

// Abandon ends the run without a victor.
func (s RunState) Abandon() RunState {
	next := s.Clone()
	next.Status = StatusAbandoned
	return next
}
