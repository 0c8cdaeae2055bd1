// Package run holds the authoritative state of one campaign run and
// every operation that advances it: map traversal, event resolution,
// battle-result sync, roster management, leveling, and the economy.
// Operations are pure: they take a RunState by value and return a new
// one, so a run can be persisted, replayed, or diffed at any step.
// Invalid transitions return the input unchanged; callers treat "nothing
// changed" as the failure signal.
package run

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/rng"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

const (
	MaxPartySize = 4
	MaxBenchSize = 4

	// RestHealPercent is the party heal applied on arriving at a rest site.
	RestHealPercent = 0.3

	// DefaultRevivalFraction is the HP fraction a graveyard revival
	// restores unless the caller picks another.
	DefaultRevivalFraction = 0.3
)

// Status is the run lifecycle state.
type Status string

const (
	StatusActive     Status = "active"
	StatusVictorious Status = "victorious"
	StatusDefeated   Status = "defeated"
	StatusAbandoned  Status = "abandoned"
)

// RunState is the aggregate for one campaign run. Seed drives event
// outcomes and random targeting; RecruitSeed drives content assignment,
// kept separate so outcome draws never perturb map content.
type RunState struct {
	ID     uuid.UUID `json:"id,omitempty"`
	Status Status    `json:"status"`

	Seed        int64 `json:"seed"`
	RecruitSeed int64 `json:"recruit_seed"`

	Party     []roster.Member `json:"active_party"`
	Bench     []roster.Member `json:"bench"`
	Graveyard []roster.Member `json:"graveyard"`

	CurrentNodeID  string         `json:"current_node_id"`
	VisitedNodeIDs []string       `json:"visited_node_ids"`
	Nodes          worldmap.Graph `json:"nodes"`
	CurrentAct     int            `json:"current_act"`

	Gold         int      `json:"gold"`
	SeenEventIDs []string `json:"seen_event_ids"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// starterPositions are the default grid slots for a fresh party, in
// pick order.
var starterPositions = []roster.GridPosition{
	{Row: roster.RowFront, Col: 0},
	{Row: roster.RowFront, Col: 1},
	{Row: roster.RowFront, Col: 2},
	{Row: roster.RowBack, Col: 1},
}

// NewRun creates a run from a seed and 1-4 distinct starting species.
// The act 1 graph is generated immediately, with open recruit and event
// slots filled from the recruit-seed stream, and the spawn node marked
// visited.
func NewRun(seed int64, starterIDs []string) (RunState, error) {
	if len(starterIDs) == 0 || len(starterIDs) > MaxPartySize {
		return RunState{}, fmt.Errorf("run: party size %d outside 1..%d", len(starterIDs), MaxPartySize)
	}
	seenSpecies := map[string]bool{}
	party := make([]roster.Member, 0, len(starterIDs))
	for i, id := range starterIDs {
		if seenSpecies[id] {
			return RunState{}, fmt.Errorf("run: duplicate starter %q", id)
		}
		seenSpecies[id] = true
		m, err := roster.New(id, starterPositions[i])
		if err != nil {
			return RunState{}, err
		}
		party = append(party, m)
	}

	s := RunState{
		Status:       StatusActive,
		Seed:         rng.Normalize(seed),
		RecruitSeed:  DeriveRecruitSeed(seed),
		Party:        party,
		Bench:        []roster.Member{},
		Graveyard:    []roster.Member{},
		CurrentAct:   1,
		SeenEventIDs: []string{},
	}
	return s.enterAct(1)
}

// DeriveRecruitSeed expands a root seed into the independent stream used
// for content assignment. Save migration uses the same derivation for
// older runs that never stored one.
func DeriveRecruitSeed(seed int64) int64 {
	return rng.Normalize(rng.Normalize(seed) * 31)
}

// enterAct installs a generated act graph and stands the run on its
// spawn node.
func (s RunState) enterAct(act int) (RunState, error) {
	template, ok := content.ActTemplate(act)
	if !ok {
		return s, fmt.Errorf("run: no act %d", act)
	}
	next := s.Clone()
	next.CurrentAct = act

	graph, newSeed, newSeen := assignContent(template, act, next.ownedSpecies(), next.SeenEventIDs, next.RecruitSeed)
	next.Nodes = graph
	next.RecruitSeed = newSeed
	next.SeenEventIDs = newSeen

	spawnID, ok := next.Nodes.SpawnID()
	if !ok {
		return s, fmt.Errorf("run: act %d has no spawn", act)
	}
	spawn := next.Nodes[spawnID]
	spawn.Completed = true
	next.Nodes[spawnID] = spawn
	next.CurrentNodeID = spawnID
	next.VisitedNodeIDs = []string{spawnID}
	return next, nil
}

// Clone returns a deep copy of the run state.
func (s RunState) Clone() RunState {
	next := s
	next.Party = cloneMembers(s.Party)
	next.Bench = cloneMembers(s.Bench)
	next.Graveyard = cloneMembers(s.Graveyard)
	if s.VisitedNodeIDs != nil {
		next.VisitedNodeIDs = append([]string(nil), s.VisitedNodeIDs...)
	}
	if s.SeenEventIDs != nil {
		next.SeenEventIDs = append([]string(nil), s.SeenEventIDs...)
	}
	if s.Nodes != nil {
		next.Nodes = s.Nodes.Clone()
	}
	return next
}

func cloneMembers(ms []roster.Member) []roster.Member {
	if ms == nil {
		return nil
	}
	out := make([]roster.Member, len(ms))
	for i, m := range ms {
		out[i] = m.Clone()
	}
	return out
}

// CurrentNode returns the node the run stands on.
func (s RunState) CurrentNode() (worldmap.Node, bool) {
	n, ok := s.Nodes[s.CurrentNodeID]
	return n, ok
}

// alivePartyIndices lists party indices eligible for effect targeting.
func (s RunState) alivePartyIndices() []int {
	var out []int
	for i, m := range s.Party {
		if m.Alive() {
			out = append(out, i)
		}
	}
	return out
}

// ownedSpecies collects the base species across party, bench, and
// graveyard; the assignment pass never offers one of these.
func (s RunState) ownedSpecies() map[string]bool {
	owned := map[string]bool{}
	for _, group := range [][]roster.Member{s.Party, s.Bench, s.Graveyard} {
		for _, m := range group {
			owned[m.BaseSpeciesID] = true
		}
	}
	return owned
}

// HasPartyPassive reports whether any party member carries the passive.
func (s RunState) HasPartyPassive(id string) bool {
	for _, m := range s.Party {
		if m.HasPassive(id) {
			return true
		}
	}
	return false
}

// hasVisited reports whether the node is already in the visit history.
func (s RunState) hasVisited(nodeID string) bool {
	for _, id := range s.VisitedNodeIDs {
		if id == nodeID {
			return true
		}
	}
	return false
}

func (s RunState) hasSeenEvent(eventID string) bool {
	for _, id := range s.SeenEventIDs {
		if id == eventID {
			return true
		}
	}
	return false
}
