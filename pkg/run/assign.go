package run

import (
	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/rng"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// assignContent fills an act's open recruit and event slots from the
// recruit-seed stream. Recruit nodes are filled first, then event nodes,
// both in sorted node-id order, advancing the seed once per assignment,
// so the whole pass replays exactly from (seed, roster, seen events).
//
// Recruit candidates exclude species owned anywhere in the roster and
// species already assigned in this pass; event candidates exclude ids
// seen anywhere in the run and ids already assigned in this pass. Every
// assigned event id is recorded as seen immediately, which is what keeps
// later acts from re-offering it. A slot with no remaining candidates
// stays open and resolves to nothing when visited.
func assignContent(g worldmap.Graph, act int, owned map[string]bool, seen []string, seed int64) (worldmap.Graph, int64, []string) {
	newSeen := append([]string(nil), seen...)
	seenSet := map[string]bool{}
	for _, id := range newSeen {
		seenSet[id] = true
	}

	assignedSpecies := map[string]bool{}
	for _, nodeID := range g.IDs() {
		n := g[nodeID]
		if !n.Open() || n.Type != worldmap.NodeRecruit {
			continue
		}
		var candidates []string
		for _, sp := range content.RecruitPool(act) {
			if !owned[sp] && !assignedSpecies[sp] {
				candidates = append(candidates, sp)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		var idx int
		idx, seed = rng.IntN(seed, len(candidates))
		n.SpeciesID = candidates[idx]
		assignedSpecies[n.SpeciesID] = true
		g[nodeID] = n
	}

	assignedEvents := map[string]bool{}
	for _, nodeID := range g.IDs() {
		n := g[nodeID]
		if !n.Open() || n.Type != worldmap.NodeEvent {
			continue
		}
		var candidates []string
		for _, ev := range content.EventPool(act) {
			if !seenSet[ev] && !assignedEvents[ev] {
				candidates = append(candidates, ev)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		var idx int
		idx, seed = rng.IntN(seed, len(candidates))
		n.EventID = candidates[idx]
		assignedEvents[n.EventID] = true
		seenSet[n.EventID] = true
		newSeen = append(newSeen, n.EventID)
		g[nodeID] = n
	}

	return g, seed, newSeen
}
