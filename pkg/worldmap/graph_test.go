package worldmap

import (
	"errors"
	"testing"
)

func validGraph() Graph {
	return Graph{
		"spawn": {ID: "spawn", Type: NodeSpawn, Stage: 0, ConnectsTo: []string{"b1", "e1"}},
		"b1":    {ID: "b1", Type: NodeBattle, Stage: 1, ConnectsTo: []string{"rest"}, EnemySpeciesIDs: []string{"cindercub"}},
		"e1":    {ID: "e1", Type: NodeEvent, Stage: 1, ConnectsTo: []string{"rest"}},
		"rest":  {ID: "rest", Type: NodeRest, Stage: 2, ConnectsTo: []string{"boss"}},
		"boss":  {ID: "boss", Type: NodeBattle, Stage: 3, ConnectsTo: []string{"exit"}, EnemySpeciesIDs: []string{"thornstag"}, EnemyHPMultiplier: 1.5},
		"exit":  {ID: "exit", Type: NodeActTransition, Stage: 4, TargetAct: 2},
	}
}

func TestGraphValidate(t *testing.T) {
	if err := validGraph().Validate(); err != nil {
		t.Fatalf("valid graph rejected: %v", err)
	}
}

func TestGraphValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(Graph)
		wantErr error
	}{
		{
			name: "no spawn",
			mutate: func(g Graph) {
				n := g["spawn"]
				n.Type = NodeRest
				g["spawn"] = n
			},
			wantErr: ErrNoSpawn,
		},
		{
			name: "two spawns",
			mutate: func(g Graph) {
				n := g["rest"]
				n.Type = NodeSpawn
				g["rest"] = n
			},
			wantErr: ErrManySpawns,
		},
		{
			name: "no terminal",
			mutate: func(g Graph) {
				n := g["exit"]
				n.Type = NodeRest
				g["exit"] = n
			},
			wantErr: ErrNoTerminal,
		},
		{
			name: "cycle",
			mutate: func(g Graph) {
				n := g["boss"]
				n.ConnectsTo = []string{"exit", "b1"}
				g["boss"] = n
			},
			wantErr: ErrCycleDetected,
		},
		{
			name: "unreachable node",
			mutate: func(g Graph) {
				g["island"] = Node{ID: "island", Type: NodeRest}
			},
			wantErr: ErrUnreachable,
		},
		{
			name: "hidden cycle still rejected",
			mutate: func(g Graph) {
				g["cave"] = Node{ID: "cave", Type: NodeEvent, Hidden: true, ConnectsTo: []string{"cave2"}}
				g["cave2"] = Node{ID: "cave2", Type: NodeEvent, Hidden: true, ConnectsTo: []string{"cave"}}
			},
			wantErr: ErrCycleDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGraph()
			tt.mutate(g)
			err := g.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGraphValidate_HiddenNodeExemptFromReachability(t *testing.T) {
	g := validGraph()
	g["cave"] = Node{ID: "cave", Type: NodeEvent, EventID: "sunken_hoard", Hidden: true, ConnectsTo: []string{"boss"}}
	if err := g.Validate(); err != nil {
		t.Fatalf("hidden node should not trip reachability: %v", err)
	}
}

func TestGraphValidate_MissingEdgeTarget(t *testing.T) {
	g := validGraph()
	n := g["rest"]
	n.ConnectsTo = []string{"nowhere"}
	g["rest"] = n
	if err := g.Validate(); err == nil {
		t.Fatal("expected error for edge to missing node")
	}
}

func TestGraphValidate_OutdegreeBound(t *testing.T) {
	g := validGraph()
	n := g["spawn"]
	n.ConnectsTo = []string{"b1", "e1", "rest", "boss", "exit"}
	g["spawn"] = n
	if err := g.Validate(); err == nil {
		t.Fatal("expected error for outdegree above max")
	}
}

func TestGraphClone_Independent(t *testing.T) {
	orig := validGraph()
	clone := orig.Clone()

	n := clone["spawn"]
	n.ConnectsTo[0] = "changed"
	n.Completed = true
	clone["spawn"] = n

	if orig["spawn"].ConnectsTo[0] != "b1" {
		t.Error("clone shares edge slice with original")
	}
	if orig["spawn"].Completed {
		t.Error("clone shares completion state with original")
	}
}

func TestNodeOpen(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"unfilled event", Node{Type: NodeEvent}, true},
		{"authored event", Node{Type: NodeEvent, EventID: "training_camp"}, false},
		{"detour event", Node{Type: NodeEvent, Detour: true}, false},
		{"unfilled recruit", Node{Type: NodeRecruit}, true},
		{"authored recruit", Node{Type: NodeRecruit, SpeciesID: "mossling"}, false},
		{"battle never open", Node{Type: NodeBattle}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Open(); got != tt.want {
				t.Errorf("Open() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeIsBoss(t *testing.T) {
	if (Node{Type: NodeBattle, EnemyHPMultiplier: 1.5}).IsBoss() != true {
		t.Error("multiplier above 1 should mark boss")
	}
	if (Node{Type: NodeBattle}).IsBoss() {
		t.Error("plain battle is not a boss")
	}
	if (Node{Type: NodeRest, EnemyHPMultiplier: 2}).IsBoss() {
		t.Error("non-battle node is never a boss")
	}
}
