package run

import (
	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// PendingInteraction is an interactive effect waiting on a follow-up
// player choice: a card removal, a draft pick, a clone, or a recruit
// offer. TargetIndex is the party member it applies to, resolved when
// the effect was queued, or -1 for effects without a member target.
type PendingInteraction struct {
	Effect      event.Effect `json:"effect"`
	TargetIndex int          `json:"target_index"`
	NodeID      string       `json:"node_id"`
}

// ChoiceResult reports what resolving an event choice did: the flavor
// text and branch drawn, the effects applied immediately, and the
// interactive effects queued for follow-up.
type ChoiceResult struct {
	Flavor  string               `json:"flavor,omitempty"`
	Branch  int                  `json:"branch"`
	Applied []event.Effect       `json:"applied,omitempty"`
	Pending []PendingInteraction `json:"pending,omitempty"`
}

// ApplyChoice commits one choice of the current event node. The outcome
// resolves against the run seed, immediate effects land in order, and
// interactive effects queue as pending follow-ups. The node is marked
// resolved so a second commit is refused. targetIdx picks the party
// member for single-target effects; an invalid or knocked-out pick
// falls back to the first living member.
func (s RunState) ApplyChoice(choiceIdx, targetIdx int) (RunState, ChoiceResult, bool) {
	if s.Status != StatusActive {
		return s, ChoiceResult{}, false
	}
	node, ok := s.CurrentNode()
	if !ok || node.Type != worldmap.NodeEvent || node.EventID == "" || node.Resolved {
		return s, ChoiceResult{}, false
	}
	def, ok := content.EventByID(node.EventID)
	if !ok {
		return s, ChoiceResult{}, false
	}
	if choiceIdx < 0 || choiceIdx >= len(def.Choices) {
		return s, ChoiceResult{}, false
	}

	res := def.Choices[choiceIdx].Outcome.Resolve(s.Seed, node.ID)

	next := s.Clone()
	result := ChoiceResult{Flavor: res.Flavor, Branch: res.Branch}
	for _, eff := range res.Effects {
		if eff.Interactive() {
			result.Pending = append(result.Pending, PendingInteraction{
				Effect:      eff,
				TargetIndex: next.resolveTarget(eff, targetIdx, node.ID),
				NodeID:      node.ID,
			})
			continue
		}
		next = next.applyEffect(eff, targetIdx, node.ID)
		result.Applied = append(result.Applied, eff)
	}

	resolved := next.Nodes[node.ID]
	resolved.Resolved = true
	next.Nodes[node.ID] = resolved
	return next, result, true
}

// applyEffect lands one non-interactive effect on the run.
func (s RunState) applyEffect(eff event.Effect, targetIdx int, nodeID string) RunState {
	switch eff.Type {
	case event.EffectGold:
		return s.AddGold(eff.Amount)
	case event.EffectSetPath:
		return s.SetPath(eff.NodeID, eff.Edges)
	}

	targets := s.effectTargets(eff, targetIdx, nodeID)
	if len(targets) == 0 {
		return s
	}
	next := s.Clone()
	for _, i := range targets {
		m := next.Party[i]
		switch eff.Type {
		case event.EffectMaxHPBoost:
			m = m.BoostMaxHP(eff.Amount)
		case event.EffectDamage:
			m = m.Damage(eff.Amount)
		case event.EffectPercentHeal:
			m = m.HealPercent(eff.Percent)
		case event.EffectFullHeal:
			m = m.FullHeal()
		case event.EffectExp:
			m = m.GrantExp(eff.Amount)
		case event.EffectEnergyMod:
			m = m.AdjustEnergy(eff.Amount)
		case event.EffectDrawMod:
			m = m.AdjustDraw(eff.Amount)
		case event.EffectDazed:
			m = m.AddDazed(eff.Amount)
		}
		next.Party[i] = m
	}
	return next
}

// effectTargets resolves an effect's target selector to party indices.
// Only living members qualify; a single-target effect with an invalid
// or dead pick falls back to the first living member, and a random
// target draws from the node's offset sub-stream.
func (s RunState) effectTargets(eff event.Effect, targetIdx int, nodeID string) []int {
	alive := s.alivePartyIndices()
	if len(alive) == 0 {
		return nil
	}
	switch eff.Target {
	case event.TargetAll:
		return alive
	case event.TargetRandom:
		return []int{alive[event.RandomIndex(s.Seed, nodeID, len(alive))]}
	default:
		if targetIdx >= 0 && targetIdx < len(s.Party) && s.Party[targetIdx].Alive() {
			return []int{targetIdx}
		}
		return []int{alive[0]}
	}
}

// resolveTarget picks the member index a pending interaction will apply
// to, or -1 for effects without a member target.
func (s RunState) resolveTarget(eff event.Effect, targetIdx int, nodeID string) int {
	if eff.Type == event.EffectRecruit {
		return -1
	}
	targets := s.effectTargets(eff, targetIdx, nodeID)
	if len(targets) == 0 {
		return -1
	}
	return targets[0]
}
