// Package worldmap models the per-act node graph a run walks through:
// battles, rest sites, narrative events, recruitment encounters and act
// transitions, connected by directed edges. The graph is data, not
// pointers: nodes are stored in an id-indexed table and edges are id
// lists, so traversal is lookup-based and copies are cheap.
package worldmap

// NodeType discriminates the map node variants.
type NodeType string

const (
	NodeSpawn         NodeType = "spawn"
	NodeBattle        NodeType = "battle"
	NodeRest          NodeType = "rest"
	NodeEvent         NodeType = "event"
	NodeRecruit       NodeType = "recruit"
	NodeCardRemoval   NodeType = "card_removal"
	NodeActTransition NodeType = "act_transition"
)

// Layout is a normalized map-panel coordinate in [0,1] on both axes.
type Layout struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a single point in an act's map graph. Payload fields are
// meaningful only for their node type; the zero value means "unset".
// Event and recruit nodes with empty EventID/SpeciesID are "open" slots
// filled by the seeded assignment pass at act generation.
type Node struct {
	ID         string   `json:"id"`
	Type       NodeType `json:"type"`
	Stage      int      `json:"stage"`
	ConnectsTo []string `json:"connects_to"`
	Completed  bool     `json:"completed"`
	Layout     Layout   `json:"layout"`
	SizeHint   float64  `json:"size_hint,omitempty"`

	// Detour nodes sit on optional side loops and keep their authored
	// content; the assignment pass never touches them.
	Detour bool `json:"detour,omitempty"`

	// Hidden nodes start unreachable and only become reachable when an
	// event's path rewrite points an edge at them.
	Hidden bool `json:"hidden,omitempty"`

	// Battle payload.
	EnemySpeciesIDs   []string `json:"enemy_species_ids,omitempty"`
	EnemyHPMultiplier float64  `json:"enemy_hp_multiplier,omitempty"`

	// Event payload. Resolved flips when the player commits a choice so
	// revisiting the node cannot re-apply its effects.
	EventID  string `json:"event_id,omitempty"`
	Resolved bool   `json:"resolved,omitempty"`

	// Recruit payload.
	SpeciesID string `json:"species_id,omitempty"`

	// Card-removal payload.
	MaxRemovals int `json:"max_removals,omitempty"`

	// Act-transition payload.
	TargetAct int `json:"target_act,omitempty"`
}

// Clone returns a deep copy of the node. Slice fields are copied so the
// clone shares no mutable state with the original.
func (n Node) Clone() Node {
	c := n
	if n.ConnectsTo != nil {
		c.ConnectsTo = append([]string(nil), n.ConnectsTo...)
	}
	if n.EnemySpeciesIDs != nil {
		c.EnemySpeciesIDs = append([]string(nil), n.EnemySpeciesIDs...)
	}
	return c
}

// ConnectsToNode reports whether id is among the node's outgoing edges.
func (n Node) ConnectsToNode(id string) bool {
	for _, edge := range n.ConnectsTo {
		if edge == id {
			return true
		}
	}
	return false
}

// Open reports whether the node is an unfilled event or recruit slot,
// eligible for the seeded assignment pass.
func (n Node) Open() bool {
	if n.Detour {
		return false
	}
	switch n.Type {
	case NodeEvent:
		return n.EventID == ""
	case NodeRecruit:
		return n.SpeciesID == ""
	default:
		return false
	}
}

// IsBoss reports whether a battle node carries an enemy HP multiplier
// above 1, which marks it as an act boss for reward purposes.
func (n Node) IsBoss() bool {
	return n.Type == NodeBattle && n.EnemyHPMultiplier > 1
}
