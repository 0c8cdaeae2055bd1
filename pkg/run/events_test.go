package run

import (
	"testing"

	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/event"
)

// eventRun returns a fresh run standing on a1_e1 with the given event
// written into the node.
func eventRun(t *testing.T, eventID string) RunState {
	t.Helper()
	return eventRunSeeded(t, 42, eventID)
}

func eventRunSeeded(t *testing.T, seed int64, eventID string) RunState {
	t.Helper()
	s, err := NewRun(seed, []string{"cindercub", "mossling"})
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	n := s.Nodes["a1_e1"]
	n.EventID = eventID
	s.Nodes["a1_e1"] = n
	s.CurrentNodeID = "a1_e1"
	return s
}

func TestApplyChoiceTrainHard(t *testing.T) {
	s := eventRun(t, "training_camp")

	s2, res, ok := s.ApplyChoice(0, 1)
	if !ok {
		t.Fatal("choice refused")
	}
	if res.Branch != -1 {
		t.Errorf("branch = %d, want -1 for a fixed outcome", res.Branch)
	}
	if len(res.Applied) != 1 || len(res.Pending) != 0 {
		t.Fatalf("applied %d pending %d, want 1 and 0", len(res.Applied), len(res.Pending))
	}
	if res.Flavor == "" {
		t.Error("flavor text missing")
	}

	m := s2.Party[1]
	if m.MaxHP != 51 || m.CurrentHP != 51 || m.MaxHPModifier != 5 {
		t.Errorf("target = hp %d/%d mod %d, want 51/51 with modifier 5", m.CurrentHP, m.MaxHP, m.MaxHPModifier)
	}
	if s2.Party[0].MaxHP != 42 {
		t.Error("untargeted member changed")
	}
	if !s2.Nodes["a1_e1"].Resolved {
		t.Error("node not marked resolved")
	}
}

func TestApplyChoiceResolvesOnce(t *testing.T) {
	s := eventRun(t, "training_camp")
	s2, _, ok := s.ApplyChoice(1, 0)
	if !ok {
		t.Fatal("first choice refused")
	}
	if _, _, ok := s2.ApplyChoice(1, 0); ok {
		t.Error("second choice on a resolved node allowed")
	}
}

func TestApplyChoiceSparTogether(t *testing.T) {
	s := eventRun(t, "training_camp")
	s2, _, ok := s.ApplyChoice(1, 0)
	if !ok {
		t.Fatal("choice refused")
	}
	for i, m := range s2.Party {
		if m.Exp != 2 {
			t.Errorf("party[%d] exp = %d, want 2", i, m.Exp)
		}
	}
}

func TestApplyChoiceRestEasy(t *testing.T) {
	s := eventRun(t, "training_camp")
	for i := range s.Party {
		s.Party[i] = s.Party[i].Damage(20)
	}

	s2, _, ok := s.ApplyChoice(2, 0)
	if !ok {
		t.Fatal("choice refused")
	}
	// floor(0.25*42)=10 onto 22; floor(0.25*46)=11 onto 26.
	if got := s2.Party[0].CurrentHP; got != 32 {
		t.Errorf("party[0] hp = %d, want 32", got)
	}
	if got := s2.Party[1].CurrentHP; got != 37 {
		t.Errorf("party[1] hp = %d, want 37", got)
	}
}

func TestApplyChoiceTargetFallback(t *testing.T) {
	for _, target := range []int{-1, 99} {
		s := eventRun(t, "training_camp")
		s2, _, ok := s.ApplyChoice(0, target)
		if !ok {
			t.Fatalf("choice with target %d refused", target)
		}
		if s2.Party[0].MaxHP != 47 {
			t.Errorf("target %d: boost did not fall back to the first living member", target)
		}
	}
}

func TestApplyChoiceRefused(t *testing.T) {
	base := eventRun(t, "training_camp")

	offNode := base.Clone()
	offNode.CurrentNodeID = "a1_spawn"
	if _, _, ok := offNode.ApplyChoice(0, 0); ok {
		t.Error("choice applied off an event node")
	}

	if _, _, ok := base.ApplyChoice(9, 0); ok {
		t.Error("out-of-range choice allowed")
	}
	if _, _, ok := base.ApplyChoice(-1, 0); ok {
		t.Error("negative choice allowed")
	}

	open := base.Clone()
	n := open.Nodes["a1_e1"]
	n.EventID = ""
	open.Nodes["a1_e1"] = n
	if _, _, ok := open.ApplyChoice(0, 0); ok {
		t.Error("choice applied on an open slot")
	}

	done := base.Abandon()
	if _, _, ok := done.ApplyChoice(0, 0); ok {
		t.Error("choice applied on a finished run")
	}
}

func TestApplyChoiceRandomDeterminism(t *testing.T) {
	s := eventRun(t, "forked_trail")

	a, resA, okA := s.ApplyChoice(0, 0)
	b, resB, okB := s.ApplyChoice(0, 0)
	if !okA || !okB {
		t.Fatal("choice refused")
	}
	if resA.Branch != resB.Branch || resA.Flavor != resB.Flavor {
		t.Fatalf("same state resolved differently: branch %d vs %d", resA.Branch, resB.Branch)
	}
	if a.Gold != b.Gold {
		t.Errorf("gold diverged: %d vs %d", a.Gold, b.Gold)
	}
	for i := range a.Party {
		if a.Party[i].CurrentHP != b.Party[i].CurrentHP {
			t.Errorf("party[%d] hp diverged", i)
		}
	}
}

func TestApplyChoiceRandomBranchOutcomes(t *testing.T) {
	seenGold, seenBite := false, false
	for seed := int64(1); seed <= 60; seed++ {
		s := eventRunSeeded(t, seed, "forked_trail")
		s2, res, ok := s.ApplyChoice(0, 0)
		if !ok {
			t.Fatalf("seed %d: choice refused", seed)
		}
		switch res.Branch {
		case 0:
			seenGold = true
			if s2.Gold != 40 {
				t.Errorf("seed %d: gold = %d, want 40 on the gold branch", seed, s2.Gold)
			}
		case 1:
			seenBite = true
			if s2.Gold != 0 {
				t.Errorf("seed %d: gold = %d on the damage branch", seed, s2.Gold)
			}
			hurt := 0
			for i := range s2.Party {
				lost := s.Party[i].CurrentHP - s2.Party[i].CurrentHP
				if lost == 7 {
					hurt++
				} else if lost != 0 {
					t.Errorf("seed %d: party[%d] lost %d hp, want 0 or 7", seed, i, lost)
				}
			}
			if hurt != 1 {
				t.Errorf("seed %d: %d members hurt, want exactly one", seed, hurt)
			}
		default:
			t.Fatalf("seed %d: branch = %d", seed, res.Branch)
		}
	}
	if !seenGold || !seenBite {
		t.Errorf("branch coverage across seeds: gold=%v bite=%v, want both", seenGold, seenBite)
	}
}

func TestApplyChoiceDazedCurses(t *testing.T) {
	sawDrone := false
	for seed := int64(1); seed <= 80 && !sawDrone; seed++ {
		s := eventRunSeeded(t, seed, "murmuring_idol")
		s2, res, ok := s.ApplyChoice(0, 0)
		if !ok {
			t.Fatalf("seed %d: choice refused", seed)
		}
		if res.Branch != 1 {
			continue
		}
		sawDrone = true
		for i := range s2.Party {
			grew := len(s2.Party[i].Deck) - len(s.Party[i].Deck)
			if grew != 2 {
				t.Errorf("party[%d] deck grew by %d, want 2 dazed copies", i, grew)
			}
			deck := s2.Party[i].Deck
			for _, c := range deck[len(deck)-2:] {
				if c != content.CardDazed {
					t.Errorf("party[%d] gained %s, want %s", i, c, content.CardDazed)
				}
			}
		}
	}
	if !sawDrone {
		t.Error("dazed branch never drawn across 80 seeds")
	}
}

func TestApplyChoiceDamageFloors(t *testing.T) {
	sawBite := false
	for seed := int64(1); seed <= 60 && !sawBite; seed++ {
		s := eventRunSeeded(t, seed, "forked_trail")
		s.Party = s.Party[:1]
		s.Party[0].CurrentHP = 3

		s2, res, ok := s.ApplyChoice(0, 0)
		if !ok {
			t.Fatalf("seed %d: choice refused", seed)
		}
		if res.Branch != 1 {
			continue
		}
		sawBite = true
		m := s2.Party[0]
		if m.CurrentHP != 1 || m.KnockedOut {
			t.Errorf("hp = %d ko = %v, want floored at 1 and standing", m.CurrentHP, m.KnockedOut)
		}
		if s2.Status != StatusActive {
			t.Errorf("status = %s, want active", s2.Status)
		}
	}
	if !sawBite {
		t.Error("damage branch never drawn across 60 seeds")
	}
}

func TestApplyChoicePendingDraft(t *testing.T) {
	s := eventRun(t, "wandering_merchant")
	s2, res, ok := s.ApplyChoice(0, 1)
	if !ok {
		t.Fatal("choice refused")
	}
	if len(res.Applied) != 0 || len(res.Pending) != 1 {
		t.Fatalf("applied %d pending %d, want 0 and 1", len(res.Applied), len(res.Pending))
	}
	p := res.Pending[0]
	if p.Effect.Type != event.EffectShopDraft {
		t.Errorf("pending type = %s, want %s", p.Effect.Type, event.EffectShopDraft)
	}
	if p.TargetIndex != 1 {
		t.Errorf("pending target = %d, want the chosen member 1", p.TargetIndex)
	}
	if p.NodeID != "a1_e1" {
		t.Errorf("pending node = %s, want a1_e1", p.NodeID)
	}
	if s2.Gold != 0 {
		t.Errorf("gold = %d, pending drafts must not change state", s2.Gold)
	}
	if !s2.Nodes["a1_e1"].Resolved {
		t.Error("node with only pending effects not marked resolved")
	}
}

func TestApplyChoicePendingRecruit(t *testing.T) {
	s := eventRun(t, "lost_cub")
	_, res, ok := s.ApplyChoice(0, 0)
	if !ok {
		t.Fatal("choice refused")
	}
	if len(res.Pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(res.Pending))
	}
	p := res.Pending[0]
	if p.Effect.Type != event.EffectRecruit || p.Effect.SpeciesID != "glimmoth" {
		t.Errorf("pending = %+v, want a glimmoth recruit offer", p.Effect)
	}
	if p.TargetIndex != -1 {
		t.Errorf("recruit target = %d, want -1", p.TargetIndex)
	}

	s2, res2, ok := s.ApplyChoice(1, 0)
	if !ok {
		t.Fatal("second option refused")
	}
	if len(res2.Pending) != 0 || s2.Gold != 25 {
		t.Errorf("gold = %d pending = %d, want 25 and none", s2.Gold, len(res2.Pending))
	}
}

func TestApplyChoiceModifiers(t *testing.T) {
	s := eventRun(t, "storm_omen")

	s2, _, ok := s.ApplyChoice(0, 0)
	if !ok {
		t.Fatal("choice refused")
	}
	if s2.Party[0].EnergyModifier != 1 {
		t.Errorf("energy modifier = %d, want 1", s2.Party[0].EnergyModifier)
	}

	s3, _, ok := s.ApplyChoice(1, 1)
	if !ok {
		t.Fatal("choice refused")
	}
	if s3.Party[1].DrawModifier != 1 {
		t.Errorf("draw modifier = %d, want 1", s3.Party[1].DrawModifier)
	}
}

func TestApplyChoiceNothingHappens(t *testing.T) {
	s := eventRun(t, "forked_trail")
	s2, res, ok := s.ApplyChoice(1, 0)
	if !ok {
		t.Fatal("choice refused")
	}
	if len(res.Applied) != 0 || len(res.Pending) != 0 {
		t.Errorf("applied %d pending %d, want nothing", len(res.Applied), len(res.Pending))
	}
	if res.Flavor == "" {
		t.Error("flavor text missing")
	}
	if s2.Gold != 0 || s2.Party[0].CurrentHP != s.Party[0].CurrentHP {
		t.Error("no-effect choice changed run state")
	}
	if !s2.Nodes["a1_e1"].Resolved {
		t.Error("node not marked resolved")
	}
}

func TestHiddenGrovePathRewrite(t *testing.T) {
	s := testRun(t)
	s.CurrentNodeID = "a1_grove"

	s2, res, ok := s.ApplyChoice(0, 0)
	if !ok {
		t.Fatal("choice refused")
	}
	if len(res.Applied) != 1 || res.Applied[0].Type != event.EffectSetPath {
		t.Fatalf("applied = %+v, want one path rewrite", res.Applied)
	}
	edges := s2.Nodes["a1_grove"].ConnectsTo
	if len(edges) != 1 || edges[0] != "a1_hidden" {
		t.Fatalf("a1_grove edges = %v, want [a1_hidden]", edges)
	}

	s3, ok := s2.MoveTo("a1_hidden")
	if !ok {
		t.Fatal("hidden node unreachable after rewrite")
	}
	s4, res, ok := s3.ApplyChoice(0, 0)
	if !ok {
		t.Fatal("hoard choice refused")
	}
	if res.Branch != -1 || s4.Gold != 120 {
		t.Errorf("gold = %d, want 120 from the hoard", s4.Gold)
	}
}
