package roster

import (
	"reflect"
	"testing"
)

func TestCanLevelUp(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Member)
		want  bool
	}{
		{"eligible", func(m *Member) { m.Exp = 4 }, true},
		{"not enough exp", func(m *Member) { m.Exp = 3 }, false},
		{"at level cap", func(m *Member) { m.Level = 4; m.Exp = 20 }, false},
		{"no tree for species", func(m *Member) {
			m.BaseSpeciesID = "ashtyrant"
			m.CurrentFormID = "ashtyrant"
			m.Exp = 10
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMember(t)
			tt.setup(&m)
			if got := m.CanLevelUp(); got != tt.want {
				t.Errorf("CanLevelUp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelUp_Evolution(t *testing.T) {
	m := testMember(t) // cindercub 42/42
	m.Exp = 5

	got := m.LevelUp()
	if got.Level != 2 || got.Exp != 1 {
		t.Errorf("level/exp = %d/%d, want 2/1", got.Level, got.Exp)
	}
	if got.CurrentFormID != "emberbruin" {
		t.Errorf("form = %q, want emberbruin", got.CurrentFormID)
	}
	if got.BaseSpeciesID != "cindercub" {
		t.Errorf("base species changed to %q", got.BaseSpeciesID)
	}
	// emberbruin base 58 + rung delta 6.
	if got.MaxHP != 64 || got.CurrentHP != 64 || got.MaxHPModifier != 6 {
		t.Errorf("HP = %d/%d mod %d, want 64/64 mod 6", got.CurrentHP, got.MaxHP, got.MaxHPModifier)
	}
	if !got.HasPassive("ember_heart") {
		t.Error("rung passive not granted")
	}
	if got.Deck[len(got.Deck)-1] != "cinder_roar" {
		t.Errorf("rung card not appended: %v", got.Deck)
	}
}

func TestLevelUp_PreservesDamageTaken(t *testing.T) {
	m := testMember(t)
	m.CurrentHP = 30 // 12 damage taken
	m.Exp = 4

	got := m.LevelUp()
	if got.MaxHP != 64 {
		t.Fatalf("MaxHP = %d, want 64", got.MaxHP)
	}
	if got.CurrentHP != 52 {
		t.Errorf("CurrentHP = %d, want 52 (new max minus 12 damage)", got.CurrentHP)
	}
}

func TestLevelUp_IneligibleUnchanged(t *testing.T) {
	m := testMember(t)
	m.Exp = 2
	if got := m.LevelUp(); !reflect.DeepEqual(got, m) {
		t.Errorf("ineligible level-up changed state: %+v", got)
	}

	m.Level = 4
	m.Exp = 40
	if got := m.LevelUp(); got.Level != 4 || got.Exp != 40 {
		t.Errorf("terminal level accepted a level-up: %+v", got)
	}
}

func TestLevelUp_PassiveGrantedOnce(t *testing.T) {
	m := testMember(t)
	m.PassiveIDs = []string{"ember_heart"}
	m.Exp = 4

	got := m.LevelUp()
	count := 0
	for _, p := range got.PassiveIDs {
		if p == "ember_heart" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("ember_heart appears %d times", count)
	}
}

func TestAutoLevel_CarryOverExp(t *testing.T) {
	m := testMember(t)
	m.Exp = 10

	got := m.AutoLevel()
	if got.Level != 3 {
		t.Errorf("level = %d, want 3 (two level-ups from 10 EXP)", got.Level)
	}
	if got.Exp != 2 {
		t.Errorf("exp = %d, want 2 carried over", got.Exp)
	}
	if got.Exp < 0 {
		t.Error("exp went negative")
	}
}

func TestAutoLevel_StopsAtCap(t *testing.T) {
	m := testMember(t)
	m.Level = 3
	m.Exp = 20

	got := m.AutoLevel()
	if got.Level != 4 {
		t.Fatalf("level = %d, want 4", got.Level)
	}
	if got.Exp != 16 {
		t.Errorf("exp = %d, want 16 (one cost paid, rest banked at cap)", got.Exp)
	}
	if got.CanLevelUp() {
		t.Error("level 4 must be terminal even with banked EXP")
	}
}

func TestAutoLevel_FullChain(t *testing.T) {
	m, err := New("mossling", GridPosition{Row: RowFront, Col: 1})
	if err != nil {
		t.Fatal(err)
	}
	m.Exp = 12

	got := m.AutoLevel()
	if got.Level != 4 || got.Exp != 0 {
		t.Fatalf("level/exp = %d/%d, want 4/0", got.Level, got.Exp)
	}
	if got.CurrentFormID != "thornstag" {
		t.Errorf("form = %q, want thornstag", got.CurrentFormID)
	}
	// thornstag base 66 + deltas 5+7+6.
	if got.MaxHP != 84 || got.CurrentHP != 84 {
		t.Errorf("HP = %d/%d, want 84/84", got.CurrentHP, got.MaxHP)
	}
	if !got.HasPassive("deep_roots") {
		t.Error("chain skipped the rung 2 passive")
	}
}

func TestSyncCombat(t *testing.T) {
	m := testMember(t)
	pos := GridPosition{Row: RowBack, Col: 2}

	got := m.SyncCombat(CombatResult{FinalHP: 17, Alive: true, Grid: pos})
	if got.CurrentHP != 17 {
		t.Errorf("CurrentHP = %d, want 17", got.CurrentHP)
	}
	if got.Grid != pos {
		t.Errorf("grid = %+v, want %+v", got.Grid, pos)
	}
	if got.KnockedOut {
		t.Error("surviving member marked knocked out")
	}
}

func TestSyncCombat_Knockout(t *testing.T) {
	m := testMember(t)

	byHP := m.SyncCombat(CombatResult{FinalHP: 0, Alive: true})
	if !byHP.KnockedOut || byHP.CurrentHP != 0 {
		t.Errorf("zero HP should knock out: %+v", byHP)
	}

	byFlag := m.SyncCombat(CombatResult{FinalHP: 12, Alive: false})
	if !byFlag.KnockedOut || byFlag.CurrentHP != 0 {
		t.Errorf("not-alive flag should knock out: %+v", byFlag)
	}
}

func TestSyncCombat_ClampsToMax(t *testing.T) {
	m := testMember(t)
	got := m.SyncCombat(CombatResult{FinalHP: 999, Alive: true, Grid: m.Grid})
	if got.CurrentHP != m.MaxHP {
		t.Errorf("CurrentHP = %d, want clamp to %d", got.CurrentHP, m.MaxHP)
	}
}

func TestSyncCombat_ConsumesSingleUseCards(t *testing.T) {
	m := testMember(t)
	m.Deck = []string{"tonic_draught", "strike", "tonic_draught"}

	got := m.SyncCombat(CombatResult{
		FinalHP:       20,
		Alive:         true,
		Grid:          m.Grid,
		ConsumedCards: []string{"tonic_draught", "strike"},
	})

	// One tonic per use; strike is not single-use and stays.
	want := []string{"strike", "tonic_draught"}
	if !reflect.DeepEqual(got.Deck, want) {
		t.Errorf("deck = %v, want %v", got.Deck, want)
	}
}

func TestRevive(t *testing.T) {
	m := testMember(t)
	m.KnockedOut = true
	m.CurrentHP = 0

	got := m.Revive(0.3)
	if got.KnockedOut {
		t.Fatal("still knocked out")
	}
	if got.CurrentHP != 12 { // floor(0.3 * 42)
		t.Errorf("CurrentHP = %d, want 12", got.CurrentHP)
	}
	if got.Deck[len(got.Deck)-1] != "mending_scar" {
		t.Error("revival marker card missing")
	}
}

func TestRevive_MinimumOneHP(t *testing.T) {
	m := testMember(t)
	m.KnockedOut = true
	m.MaxHP = 2
	m.CurrentHP = 0

	if got := m.Revive(0.1).CurrentHP; got != 1 {
		t.Errorf("CurrentHP = %d, want floor of 1", got)
	}
}

func TestRevive_NoOpWhenStanding(t *testing.T) {
	m := testMember(t)
	got := m.Revive(0.5)
	if !reflect.DeepEqual(got, m) {
		t.Errorf("revive changed a standing member: %+v", got)
	}
}

func TestKnockoutSticky(t *testing.T) {
	m := testMember(t)
	down := m.SyncCombat(CombatResult{FinalHP: 0, Alive: false})

	after := down.HealPercent(1.0).FullHeal().Damage(3)
	if !after.KnockedOut {
		t.Error("knockout cleared without an explicit revive")
	}
	if after.CurrentHP != 0 {
		t.Errorf("downed member HP moved to %d", after.CurrentHP)
	}

	if revived := after.Revive(0.3); revived.KnockedOut {
		t.Error("explicit revive failed")
	}
}
