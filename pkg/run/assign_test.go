package run

import (
	"testing"

	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

func TestAssignContentFillsOpenSlots(t *testing.T) {
	g, _ := content.ActTemplate(1)
	out, seed, seen := assignContent(g, 1, map[string]bool{}, nil, 99)

	if out["a1_r1"].SpeciesID == "" {
		t.Error("recruit slot left open with a full pool")
	}
	if out["a1_e1"].EventID == "" || out["a1_e2"].EventID == "" {
		t.Error("event slots left open with a full pool")
	}
	if seed == 99 {
		t.Error("seed did not advance across assignments")
	}
	if len(seen) != 2 {
		t.Errorf("seen = %v, want the two assigned event ids", seen)
	}
}

func TestAssignContentReplays(t *testing.T) {
	g1, _ := content.ActTemplate(2)
	g2, _ := content.ActTemplate(2)
	owned := map[string]bool{"cindercub": true}
	seen := []string{"training_camp"}

	a, seedA, seenA := assignContent(g1, 2, owned, seen, 777)
	b, seedB, seenB := assignContent(g2, 2, owned, seen, 777)

	if seedA != seedB {
		t.Errorf("seeds diverged: %d vs %d", seedA, seedB)
	}
	if len(seenA) != len(seenB) {
		t.Fatalf("seen lists diverged: %v vs %v", seenA, seenB)
	}
	for id := range a {
		if a[id].SpeciesID != b[id].SpeciesID || a[id].EventID != b[id].EventID {
			t.Errorf("node %s assigned differently on replay", id)
		}
	}
}

func TestAssignContentExcludesOwnedSpecies(t *testing.T) {
	// Two open recruit slots against a pool with only two unowned
	// species left: both must be used, neither duplicated.
	g := worldmap.Graph{
		"r_a": {ID: "r_a", Type: worldmap.NodeRecruit},
		"r_b": {ID: "r_b", Type: worldmap.NodeRecruit},
	}
	owned := map[string]bool{"gustling": true, "pebblit": true}

	out, _, _ := assignContent(g, 1, owned, nil, 5)

	got := map[string]bool{}
	for _, id := range []string{"r_a", "r_b"} {
		sp := out[id].SpeciesID
		if sp == "" {
			t.Fatalf("slot %s left open", id)
		}
		if owned[sp] {
			t.Errorf("slot %s assigned owned species %s", id, sp)
		}
		if got[sp] {
			t.Errorf("species %s assigned twice", sp)
		}
		got[sp] = true
	}
}

func TestAssignContentExcludesSeenEvents(t *testing.T) {
	pool := content.EventPool(1)
	seen := pool[:len(pool)-1]
	last := pool[len(pool)-1]

	g, _ := content.ActTemplate(1)
	out, _, newSeen := assignContent(g, 1, map[string]bool{}, seen, 3)

	// a1_e1 sorts before a1_e2, so the single unseen event lands there
	// and the second slot stays open.
	if got := out["a1_e1"].EventID; got != last {
		t.Errorf("a1_e1 = %s, want the only unseen event %s", got, last)
	}
	if got := out["a1_e2"].EventID; got != "" {
		t.Errorf("a1_e2 = %s, want open after pool exhaustion", got)
	}

	// The input list survives as a prefix of the output.
	if len(newSeen) != len(seen)+1 {
		t.Fatalf("seen = %v, want input plus one assignment", newSeen)
	}
	for i, id := range seen {
		if newSeen[i] != id {
			t.Errorf("seen[%d] = %s, want %s", i, newSeen[i], id)
		}
	}
	if newSeen[len(newSeen)-1] != last {
		t.Errorf("assigned id %s not appended to seen", last)
	}
}

func TestAssignContentPoolExhausted(t *testing.T) {
	g, _ := content.ActTemplate(1)
	seen := append([]string(nil), content.EventPool(1)...)

	out, _, newSeen := assignContent(g, 1, map[string]bool{}, seen, 11)

	if out["a1_e1"].EventID != "" || out["a1_e2"].EventID != "" {
		t.Error("event slots filled from an exhausted pool")
	}
	if len(newSeen) != len(seen) {
		t.Errorf("seen grew without assignments: %v", newSeen)
	}
}

func TestAssignContentSkipsDetoursAndAuthoredNodes(t *testing.T) {
	g, _ := content.ActTemplate(1)
	out, _, _ := assignContent(g, 1, map[string]bool{}, nil, 21)

	if got := out["a1_d_r"].SpeciesID; got != "glimmoth" {
		t.Errorf("detour recruit rewritten to %s", got)
	}
	if got := out["a1_grove"].EventID; got != "hidden_grove" {
		t.Errorf("authored event rewritten to %s", got)
	}
	if got := out["a1_hidden"].EventID; got != "sunken_hoard" {
		t.Errorf("hidden event rewritten to %s", got)
	}
}

func TestNewActNeverRepeatsSeenEvents(t *testing.T) {
	// Act 3's pool shares collapsing_cave and storm_omen with earlier
	// acts; a run that has seen them must not be offered either again.
	s := testRun(t)
	s.SeenEventIDs = []string{"collapsing_cave", "storm_omen"}

	s2, err := s.enterAct(3)
	if err != nil {
		t.Fatalf("enterAct: %v", err)
	}
	for _, id := range []string{"a3_e1", "a3_e2"} {
		ev := s2.Nodes[id].EventID
		if ev == "collapsing_cave" || ev == "storm_omen" {
			t.Errorf("node %s re-offered seen event %s", id, ev)
		}
	}
	if len(s2.SeenEventIDs) < 2 {
		t.Errorf("seen history shrank: %v", s2.SeenEventIDs)
	}
}
