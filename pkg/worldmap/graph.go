package worldmap

import (
	"errors"
	"fmt"
	"sort"
)

// MaxOutdegree is the most outgoing edges a node may carry.
const MaxOutdegree = 4

var (
	ErrNoSpawn       = errors.New("worldmap: graph has no spawn node")
	ErrManySpawns    = errors.New("worldmap: graph has more than one spawn node")
	ErrCycleDetected = errors.New("worldmap: cycle detected in graph")
	ErrUnreachable   = errors.New("worldmap: node unreachable from spawn")
	ErrNoTerminal    = errors.New("worldmap: graph has no act transition node")
)

// Graph is an act's node table, keyed by node id.
type Graph map[string]Node

// Clone deep-copies the graph so a run can mutate its own act without
// touching the authored template.
func (g Graph) Clone() Graph {
	c := make(Graph, len(g))
	for id, n := range g {
		c[id] = n.Clone()
	}
	return c
}

// SpawnID returns the id of the graph's spawn node.
func (g Graph) SpawnID() (string, bool) {
	for id, n := range g {
		if n.Type == NodeSpawn {
			return id, true
		}
	}
	return "", false
}

// IDs returns all node ids in deterministic order.
func (g Graph) IDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the structural invariants of an authored act graph:
// exactly one spawn, every edge target defined, outdegree within bounds,
// no cycles, every node reachable from spawn, and at least one act
// transition to terminate the act.
func (g Graph) Validate() error {
	spawns := 0
	var spawnID string
	hasTerminal := false

	for _, id := range g.IDs() {
		n := g[id]
		if n.ID != id {
			return fmt.Errorf("worldmap: node keyed %q carries id %q", id, n.ID)
		}
		switch n.Type {
		case NodeSpawn:
			spawns++
			spawnID = id
		case NodeActTransition:
			hasTerminal = true
		}
		if len(n.ConnectsTo) > MaxOutdegree {
			return fmt.Errorf("worldmap: node %q has %d edges, max %d", id, len(n.ConnectsTo), MaxOutdegree)
		}
		for _, edge := range n.ConnectsTo {
			if _, ok := g[edge]; !ok {
				return fmt.Errorf("worldmap: node %q connects to missing node %q", id, edge)
			}
		}
	}

	if spawns == 0 {
		return ErrNoSpawn
	}
	if spawns > 1 {
		return ErrManySpawns
	}
	if !hasTerminal {
		return ErrNoTerminal
	}

	if err := g.checkAcyclic(); err != nil {
		return err
	}
	return g.checkReachable(spawnID)
}

// checkAcyclic runs Kahn's algorithm; if the sort cannot consume every
// node, the leftover nodes form a cycle.
func (g Graph) checkAcyclic() error {
	inDegree := make(map[string]int, len(g))
	for id := range g {
		inDegree[id] = 0
	}
	for _, n := range g {
		for _, edge := range n.ConnectsTo {
			inDegree[edge]++
		}
	}

	var queue []string
	for _, id := range g.IDs() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	processed := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		processed++
		for _, edge := range g[curr].ConnectsTo {
			inDegree[edge]--
			if inDegree[edge] == 0 {
				queue = append(queue, edge)
			}
		}
	}

	if processed != len(g) {
		return ErrCycleDetected
	}
	return nil
}

// checkReachable walks forward from spawn. Hidden nodes are exempt:
// they only gain an inbound edge when an event rewrites a path.
func (g Graph) checkReachable(spawnID string) error {
	seen := map[string]bool{spawnID: true}
	queue := []string{spawnID}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, edge := range g[curr].ConnectsTo {
			if !seen[edge] {
				seen[edge] = true
				queue = append(queue, edge)
			}
		}
	}
	for _, id := range g.IDs() {
		if !seen[id] && !g[id].Hidden {
			return fmt.Errorf("%w: %q", ErrUnreachable, id)
		}
	}
	return nil
}
