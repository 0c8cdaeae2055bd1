package roster

import (
	"reflect"
	"testing"
)

func testMember(t *testing.T) Member {
	t.Helper()
	m, err := New("cindercub", GridPosition{Row: RowFront, Col: 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNew(t *testing.T) {
	m := testMember(t)
	if m.BaseSpeciesID != "cindercub" || m.CurrentFormID != "cindercub" {
		t.Errorf("identity = %s/%s", m.BaseSpeciesID, m.CurrentFormID)
	}
	if m.CurrentHP != 42 || m.MaxHP != 42 {
		t.Errorf("HP = %d/%d, want 42/42", m.CurrentHP, m.MaxHP)
	}
	if m.Level != 1 || m.Exp != 0 {
		t.Errorf("level/exp = %d/%d", m.Level, m.Exp)
	}
	if len(m.Deck) != 4 {
		t.Errorf("deck size = %d, want 4", len(m.Deck))
	}
}

func TestNew_UnknownSpecies(t *testing.T) {
	if _, err := New("chimera", GridPosition{Row: RowFront, Col: 0}); err == nil {
		t.Error("expected error for unknown species")
	}
}

func TestGridPositionValid(t *testing.T) {
	tests := []struct {
		pos  GridPosition
		want bool
	}{
		{GridPosition{RowFront, 0}, true},
		{GridPosition{RowBack, 2}, true},
		{GridPosition{RowFront, 3}, false},
		{GridPosition{RowBack, -1}, false},
		{GridPosition{"middle", 1}, false},
	}
	for _, tt := range tests {
		if got := tt.pos.Valid(); got != tt.want {
			t.Errorf("%+v Valid() = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestHealPercent(t *testing.T) {
	m := testMember(t)
	m.CurrentHP = 10

	healed := m.HealPercent(0.3)
	// floor(0.3 * 42) = 12
	if healed.CurrentHP != 22 {
		t.Errorf("CurrentHP = %d, want 22", healed.CurrentHP)
	}

	nearly := m
	nearly.CurrentHP = 40
	if got := nearly.HealPercent(0.5).CurrentHP; got != 42 {
		t.Errorf("heal past max: CurrentHP = %d, want 42", got)
	}
}

func TestHeal_SkipsKnockedOut(t *testing.T) {
	m := testMember(t)
	m.KnockedOut = true
	m.CurrentHP = 0

	if got := m.HealPercent(0.5); got.CurrentHP != 0 || !got.KnockedOut {
		t.Errorf("percent heal touched a downed member: %+v", got)
	}
	if got := m.FullHeal(); got.CurrentHP != 0 || !got.KnockedOut {
		t.Errorf("full heal touched a downed member: %+v", got)
	}
}

func TestFullHeal(t *testing.T) {
	m := testMember(t)
	m.CurrentHP = 3
	if got := m.FullHeal().CurrentHP; got != 42 {
		t.Errorf("CurrentHP = %d, want 42", got)
	}
}

func TestBoostMaxHP(t *testing.T) {
	m := testMember(t)
	m.CurrentHP, m.MaxHP = 50, 50

	boosted := m.BoostMaxHP(5)
	if boosted.MaxHP != 55 || boosted.CurrentHP != 55 || boosted.MaxHPModifier != 5 {
		t.Errorf("got %d/%d mod %d, want 55/55 mod 5", boosted.CurrentHP, boosted.MaxHP, boosted.MaxHPModifier)
	}
}

func TestDamage(t *testing.T) {
	m := testMember(t)

	hit := m.Damage(10)
	if hit.CurrentHP != 32 {
		t.Errorf("CurrentHP = %d, want 32", hit.CurrentHP)
	}

	weak := m
	weak.CurrentHP = 5
	if got := weak.Damage(99).CurrentHP; got != 1 {
		t.Errorf("overkill narrative damage left %d HP, want floor of 1", got)
	}

	down := m
	down.KnockedOut = true
	down.CurrentHP = 0
	if got := down.Damage(5); got.CurrentHP != 0 {
		t.Errorf("damage touched a downed member: %+v", got)
	}
}

func TestRemoveCards_DescendingStability(t *testing.T) {
	m := testMember(t)
	m.Deck = []string{"c0", "c1", "c2", "c3", "c4"}

	got := m.RemoveCards([]int{3, 1})
	want := []string{"c0", "c2", "c4"}
	if !reflect.DeepEqual(got.Deck, want) {
		t.Errorf("deck = %v, want %v", got.Deck, want)
	}

	// Ascending input must remove the same original cards.
	got = m.RemoveCards([]int{1, 3})
	if !reflect.DeepEqual(got.Deck, want) {
		t.Errorf("ascending input: deck = %v, want %v", got.Deck, want)
	}
}

func TestRemoveCards_DuplicateAndOutOfRange(t *testing.T) {
	m := testMember(t)
	m.Deck = []string{"c0", "c1", "c2"}

	got := m.RemoveCards([]int{1, 1, 7, -2})
	want := []string{"c0", "c2"}
	if !reflect.DeepEqual(got.Deck, want) {
		t.Errorf("deck = %v, want %v", got.Deck, want)
	}
}

func TestAddDazed(t *testing.T) {
	m := testMember(t)
	before := len(m.Deck)

	got := m.AddDazed(2)
	if len(got.Deck) != before+2 {
		t.Fatalf("deck size = %d, want %d", len(got.Deck), before+2)
	}
	if got.Deck[before] != "dazed" || got.Deck[before+1] != "dazed" {
		t.Errorf("tail = %v", got.Deck[before:])
	}
}

func TestModifiers(t *testing.T) {
	m := testMember(t)
	got := m.AdjustEnergy(1).AdjustDraw(-1)
	if got.EnergyModifier != 1 || got.DrawModifier != -1 {
		t.Errorf("modifiers = %d/%d, want 1/-1", got.EnergyModifier, got.DrawModifier)
	}
}

func TestClone_Independent(t *testing.T) {
	m := testMember(t)
	c := m.Clone()
	c.Deck[0] = "tampered"
	c.PassiveIDs = append(c.PassiveIDs, "scavenger")

	if m.Deck[0] == "tampered" {
		t.Error("clone shares deck with original")
	}
	if len(m.PassiveIDs) != 0 {
		t.Error("clone shares passives with original")
	}
}

func TestOpsDoNotMutateReceiver(t *testing.T) {
	m := testMember(t)
	m.CurrentHP = 20
	snapshot := m.Clone()

	m.HealPercent(0.5)
	m.Damage(5)
	m.BoostMaxHP(3)
	m.AddCard("strike")
	m.RemoveCards([]int{0})
	m.GrantExp(4)

	if !reflect.DeepEqual(m, snapshot) {
		t.Errorf("receiver mutated: %+v != %+v", m, snapshot)
	}
}
