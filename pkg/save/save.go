// Package save upgrades persisted runs across schema changes. Older
// saves predate the bench, the graveyard, the economy, the independent
// recruit-seed stream, node layout coordinates, and concrete event ids
// on event nodes; Migrate backfills all of them without touching fields
// that are already present.
package save

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// legacyEventIDs maps retired event-node type tags to event catalog
// ids. The earliest saves stored a coarse event_type on the node
// instead of an event id.
var legacyEventIDs = map[string]string{
	"treasure": "sunken_hoard",
	"trainer":  "training_camp",
	"mystery":  "murmuring_idol",
}

// nodeProbe reads raw node fields the typed model no longer carries,
// plus presence information the typed model cannot distinguish from
// zero values.
type nodeProbe struct {
	EventType string           `json:"event_type"`
	Layout    *worldmap.Layout `json:"layout"`
}

type probe struct {
	RecruitSeed *int64               `json:"recruit_seed"`
	Nodes       map[string]nodeProbe `json:"nodes"`
}

// Migrate parses a persisted run and upgrades older shapes: missing
// roster groups and seen-event history become empty, a missing recruit
// seed is re-derived from the run seed, legacy event-type tags become
// event ids, absent layout coordinates are computed from stages, and a
// missing visit history is rebuilt from completed nodes. Migrating an
// already-current save changes nothing.
func Migrate(raw []byte) (*run.RunState, error) {
	var s run.RunState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("save: parse run: %w", err)
	}
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("save: probe run: %w", err)
	}

	if s.Status == "" {
		s.Status = run.StatusActive
	}
	if s.Party == nil {
		s.Party = []roster.Member{}
	}
	if s.Bench == nil {
		s.Bench = []roster.Member{}
	}
	if s.Graveyard == nil {
		s.Graveyard = []roster.Member{}
	}
	if s.SeenEventIDs == nil {
		s.SeenEventIDs = []string{}
	}
	if p.RecruitSeed == nil || s.RecruitSeed == 0 {
		s.RecruitSeed = run.DeriveRecruitSeed(s.Seed)
	}

	if err := migrateNodes(&s, p.Nodes); err != nil {
		return nil, err
	}

	if len(s.VisitedNodeIDs) == 0 {
		s.VisitedNodeIDs = visitedFromCompleted(&s)
	}
	return &s, nil
}

func migrateNodes(s *run.RunState, probes map[string]nodeProbe) error {
	for id, pn := range probes {
		if pn.EventType == "" {
			continue
		}
		n, ok := s.Nodes[id]
		if !ok || n.Type != worldmap.NodeEvent || n.EventID != "" {
			continue
		}
		eventID, ok := legacyEventIDs[pn.EventType]
		if !ok {
			return fmt.Errorf("save: node %s has unknown legacy event type %q", id, pn.EventType)
		}
		n.EventID = eventID
		s.Nodes[id] = n
	}

	// Layout coordinates arrived after the first saves. Backfill only
	// when the whole graph predates them; a single present layout means
	// the save is already current.
	for _, pn := range probes {
		if pn.Layout != nil {
			return nil
		}
	}
	if len(s.Nodes) > 0 {
		backfillLayout(s.Nodes)
	}
	return nil
}

// backfillLayout spreads nodes across the map panel by stage: X walks
// left to right with stage depth, Y spaces same-stage nodes evenly in
// id order.
func backfillLayout(g worldmap.Graph) {
	maxStage := 0
	byStage := map[int][]string{}
	for id, n := range g {
		if n.Stage > maxStage {
			maxStage = n.Stage
		}
		byStage[n.Stage] = append(byStage[n.Stage], id)
	}

	for stage, ids := range byStage {
		sort.Strings(ids)
		x := 0.0
		if maxStage > 0 {
			x = float64(stage) / float64(maxStage)
		}
		for i, id := range ids {
			n := g[id]
			n.Layout = worldmap.Layout{
				X: x,
				Y: float64(i+1) / float64(len(ids)+1),
			}
			g[id] = n
		}
	}
}

// visitedFromCompleted rebuilds the visit history from completed nodes
// in id order, keeping the current node present.
func visitedFromCompleted(s *run.RunState) []string {
	visited := []string{}
	for _, id := range s.Nodes.IDs() {
		if s.Nodes[id].Completed {
			visited = append(visited, id)
		}
	}
	for _, id := range visited {
		if id == s.CurrentNodeID {
			return visited
		}
	}
	if s.CurrentNodeID != "" {
		visited = append(visited, s.CurrentNodeID)
	}
	return visited
}
