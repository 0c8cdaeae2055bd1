package save

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/mcamden/wildrun/pkg/run"
)

// legacySave is the oldest persisted shape: no status, bench, graveyard,
// gold, recruit seed, seen events, visit history, or node layouts, and
// event nodes tagged with a coarse event_type instead of an event id.
const legacySave = `{
	"seed": 77,
	"active_party": [
		{
			"base_species_id": "cindercub",
			"current_form_id": "cindercub",
			"current_hp": 30,
			"max_hp": 42,
			"deck": ["ember_swipe", "ember_swipe", "guard", "quick_jab"],
			"grid_position": {"row": "front", "col": 0},
			"level": 1,
			"exp": 2,
			"passive_ability_ids": null,
			"knocked_out": false
		}
	],
	"current_node_id": "n_spawn",
	"current_act": 1,
	"nodes": {
		"n_spawn": {"id": "n_spawn", "type": "spawn", "stage": 0, "connects_to": ["n_ev", "n_tr"], "completed": true},
		"n_ev":    {"id": "n_ev", "type": "event", "stage": 1, "connects_to": ["n_exit"], "event_type": "treasure"},
		"n_tr":    {"id": "n_tr", "type": "event", "stage": 1, "connects_to": ["n_exit"], "event_type": "trainer"},
		"n_exit":  {"id": "n_exit", "type": "act_transition", "stage": 2, "connects_to": [], "target_act": 2}
	}
}`

func TestMigrateLegacySave(t *testing.T) {
	s, err := Migrate([]byte(legacySave))
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	if s.Status != run.StatusActive {
		t.Errorf("status = %s, want backfilled active", s.Status)
	}
	if s.Bench == nil || len(s.Bench) != 0 {
		t.Errorf("bench = %v, want empty", s.Bench)
	}
	if s.Graveyard == nil || len(s.Graveyard) != 0 {
		t.Errorf("graveyard = %v, want empty", s.Graveyard)
	}
	if s.SeenEventIDs == nil || len(s.SeenEventIDs) != 0 {
		t.Errorf("seen events = %v, want empty", s.SeenEventIDs)
	}
	if s.Gold != 0 {
		t.Errorf("gold = %d, want 0", s.Gold)
	}
	if want := run.DeriveRecruitSeed(77); s.RecruitSeed != want {
		t.Errorf("recruit seed = %d, want derived %d", s.RecruitSeed, want)
	}

	if len(s.Party) != 1 || s.Party[0].CurrentHP != 30 || s.Party[0].Exp != 2 {
		t.Errorf("party not preserved: %+v", s.Party)
	}
}

func TestMigrateLegacyEventTypes(t *testing.T) {
	s, err := Migrate([]byte(legacySave))
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if got := s.Nodes["n_ev"].EventID; got != "sunken_hoard" {
		t.Errorf("treasure node event = %s, want sunken_hoard", got)
	}
	if got := s.Nodes["n_tr"].EventID; got != "training_camp" {
		t.Errorf("trainer node event = %s, want training_camp", got)
	}
}

func TestMigrateBackfillsLayout(t *testing.T) {
	s, err := Migrate([]byte(legacySave))
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	spawn := s.Nodes["n_spawn"].Layout
	if spawn.X != 0 || spawn.Y != 0.5 {
		t.Errorf("spawn layout = %+v, want {0 0.5}", spawn)
	}
	// Stage 1 holds n_ev and n_tr; id order spaces them down the column.
	ev, tr := s.Nodes["n_ev"].Layout, s.Nodes["n_tr"].Layout
	if ev.X != 0.5 || tr.X != 0.5 {
		t.Errorf("stage 1 X = %v/%v, want 0.5", ev.X, tr.X)
	}
	if ev.Y >= tr.Y {
		t.Errorf("stage 1 Y = %v/%v, want id order down the column", ev.Y, tr.Y)
	}
	exit := s.Nodes["n_exit"].Layout
	if exit.X != 1 {
		t.Errorf("terminal X = %v, want 1", exit.X)
	}
}

func TestMigrateRebuildsVisitHistory(t *testing.T) {
	s, err := Migrate([]byte(legacySave))
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(s.VisitedNodeIDs) != 1 || s.VisitedNodeIDs[0] != "n_spawn" {
		t.Errorf("visited = %v, want the completed spawn", s.VisitedNodeIDs)
	}
}

func TestMigrateCurrentSaveUnchanged(t *testing.T) {
	orig, err := run.NewRun(42, []string{"cindercub", "mossling"})
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	raw, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := Migrate(raw)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !reflect.DeepEqual(*got, orig) {
		t.Errorf("current save rewritten by migration:\n got %+v\nwant %+v", *got, orig)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	first, err := Migrate([]byte(legacySave))
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	raw, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := Migrate(raw)
	if err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("migration not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestMigratePreservesPresentFields(t *testing.T) {
	save := `{
		"seed": 5,
		"status": "victorious",
		"recruit_seed": 999,
		"gold": 150,
		"seen_event_ids": ["training_camp"],
		"active_party": [],
		"bench": [],
		"graveyard": [],
		"visited_node_ids": ["n_a"],
		"current_node_id": "n_a",
		"current_act": 2,
		"nodes": {
			"n_a": {"id": "n_a", "type": "event", "stage": 0, "connects_to": [], "completed": true, "event_id": "mirror_pool", "event_type": "mystery", "layout": {"x": 0.2, "y": 0.8}}
		}
	}`
	s, err := Migrate([]byte(save))
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.RecruitSeed != 999 {
		t.Errorf("recruit seed = %d, want preserved 999", s.RecruitSeed)
	}
	if s.Gold != 150 || s.Status != run.StatusVictorious {
		t.Errorf("gold/status rewritten: %d %s", s.Gold, s.Status)
	}
	// A node that already names its event keeps it over the legacy tag.
	if got := s.Nodes["n_a"].EventID; got != "mirror_pool" {
		t.Errorf("event id = %s, want mirror_pool kept", got)
	}
	if l := s.Nodes["n_a"].Layout; l.X != 0.2 || l.Y != 0.8 {
		t.Errorf("layout rewritten: %+v", l)
	}
}

func TestMigrateRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"seed": `},
		{"unknown legacy event type", `{
			"seed": 1,
			"current_node_id": "n",
			"nodes": {"n": {"id": "n", "type": "event", "stage": 0, "connects_to": [], "event_type": "witch_hut"}}
		}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Migrate([]byte(tc.raw)); err == nil {
				t.Error("Migrate succeeded, want error")
			}
		})
	}
}
