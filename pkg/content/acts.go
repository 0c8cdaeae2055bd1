package content

import "github.com/mcamden/wildrun/pkg/worldmap"

// actTemplates are the authored per-act graphs. Runs receive deep copies
// via ActTemplate, never these values. Open event/recruit nodes are
// filled by the seeded assignment pass; Detour and pre-set nodes keep
// their authored content. a1_hidden only becomes reachable when the
// hidden_grove event rewrites a1_grove's path.
var actTemplates = map[int]worldmap.Graph{
	1: {
		"a1_spawn":  {ID: "a1_spawn", Type: worldmap.NodeSpawn, Stage: 0, ConnectsTo: []string{"a1_b1", "a1_b2"}, Layout: worldmap.Layout{X: 0, Y: 0.5}},
		"a1_b1":     {ID: "a1_b1", Type: worldmap.NodeBattle, Stage: 1, ConnectsTo: []string{"a1_e1", "a1_grove"}, EnemySpeciesIDs: []string{"gustling"}, Layout: worldmap.Layout{X: 0.13, Y: 0.33}},
		"a1_b2":     {ID: "a1_b2", Type: worldmap.NodeBattle, Stage: 1, ConnectsTo: []string{"a1_r1", "a1_rest1"}, EnemySpeciesIDs: []string{"pebblit"}, Layout: worldmap.Layout{X: 0.13, Y: 0.67}},
		"a1_e1":     {ID: "a1_e1", Type: worldmap.NodeEvent, Stage: 2, ConnectsTo: []string{"a1_b3"}, Layout: worldmap.Layout{X: 0.25, Y: 0.2}},
		"a1_grove":  {ID: "a1_grove", Type: worldmap.NodeEvent, Stage: 2, ConnectsTo: []string{"a1_b3"}, EventID: "hidden_grove", Layout: worldmap.Layout{X: 0.25, Y: 0.4}},
		"a1_r1":     {ID: "a1_r1", Type: worldmap.NodeRecruit, Stage: 2, ConnectsTo: []string{"a1_b3"}, Layout: worldmap.Layout{X: 0.25, Y: 0.6}},
		"a1_rest1":  {ID: "a1_rest1", Type: worldmap.NodeRest, Stage: 2, ConnectsTo: []string{"a1_d_b", "a1_b3"}, Layout: worldmap.Layout{X: 0.25, Y: 0.8}},
		"a1_hidden": {ID: "a1_hidden", Type: worldmap.NodeEvent, Stage: 3, ConnectsTo: []string{"a1_b3"}, EventID: "sunken_hoard", Hidden: true, Layout: worldmap.Layout{X: 0.38, Y: 0.3}},
		"a1_d_b":    {ID: "a1_d_b", Type: worldmap.NodeBattle, Stage: 3, ConnectsTo: []string{"a1_d_r"}, EnemySpeciesIDs: []string{"bramblehog"}, Detour: true, Layout: worldmap.Layout{X: 0.38, Y: 0.85}},
		"a1_d_r":    {ID: "a1_d_r", Type: worldmap.NodeRecruit, Stage: 4, ConnectsTo: []string{"a1_b3"}, SpeciesID: "glimmoth", Detour: true, Layout: worldmap.Layout{X: 0.5, Y: 0.85}},
		"a1_b3":     {ID: "a1_b3", Type: worldmap.NodeBattle, Stage: 5, ConnectsTo: []string{"a1_e2", "a1_rest2"}, EnemySpeciesIDs: []string{"gustling", "pebblit"}, Layout: worldmap.Layout{X: 0.63, Y: 0.5}},
		"a1_e2":     {ID: "a1_e2", Type: worldmap.NodeEvent, Stage: 6, ConnectsTo: []string{"a1_boss"}, Layout: worldmap.Layout{X: 0.75, Y: 0.35}},
		"a1_rest2":  {ID: "a1_rest2", Type: worldmap.NodeRest, Stage: 6, ConnectsTo: []string{"a1_boss"}, Layout: worldmap.Layout{X: 0.75, Y: 0.65}},
		"a1_boss":   {ID: "a1_boss", Type: worldmap.NodeBattle, Stage: 7, ConnectsTo: []string{"a1_exit"}, EnemySpeciesIDs: []string{"ashtyrant"}, EnemyHPMultiplier: 1.5, SizeHint: 1.4, Layout: worldmap.Layout{X: 0.88, Y: 0.5}},
		"a1_exit":   {ID: "a1_exit", Type: worldmap.NodeActTransition, Stage: 8, TargetAct: 2, Layout: worldmap.Layout{X: 1, Y: 0.5}},
	},
	2: {
		"a2_spawn": {ID: "a2_spawn", Type: worldmap.NodeSpawn, Stage: 0, ConnectsTo: []string{"a2_b1", "a2_b2", "a2_e1"}, Layout: worldmap.Layout{X: 0, Y: 0.5}},
		"a2_b1":    {ID: "a2_b1", Type: worldmap.NodeBattle, Stage: 1, ConnectsTo: []string{"a2_r1", "a2_card1"}, EnemySpeciesIDs: []string{"duskit"}, Layout: worldmap.Layout{X: 0.13, Y: 0.25}},
		"a2_b2":    {ID: "a2_b2", Type: worldmap.NodeBattle, Stage: 1, ConnectsTo: []string{"a2_card1", "a2_rest1"}, EnemySpeciesIDs: []string{"frostfawn", "gustling"}, Layout: worldmap.Layout{X: 0.13, Y: 0.55}},
		"a2_e1":    {ID: "a2_e1", Type: worldmap.NodeEvent, Stage: 1, ConnectsTo: []string{"a2_r1"}, Layout: worldmap.Layout{X: 0.13, Y: 0.8}},
		"a2_r1":    {ID: "a2_r1", Type: worldmap.NodeRecruit, Stage: 2, ConnectsTo: []string{"a2_b3"}, Layout: worldmap.Layout{X: 0.25, Y: 0.3}},
		"a2_card1": {ID: "a2_card1", Type: worldmap.NodeCardRemoval, Stage: 2, ConnectsTo: []string{"a2_b3"}, MaxRemovals: 2, Layout: worldmap.Layout{X: 0.25, Y: 0.55}},
		"a2_rest1": {ID: "a2_rest1", Type: worldmap.NodeRest, Stage: 2, ConnectsTo: []string{"a2_d_b", "a2_b3"}, Layout: worldmap.Layout{X: 0.25, Y: 0.8}},
		"a2_d_b":   {ID: "a2_d_b", Type: worldmap.NodeBattle, Stage: 3, ConnectsTo: []string{"a2_d_r"}, EnemySpeciesIDs: []string{"pebblit", "bramblehog"}, Detour: true, Layout: worldmap.Layout{X: 0.38, Y: 0.85}},
		"a2_d_r":   {ID: "a2_d_r", Type: worldmap.NodeRecruit, Stage: 4, ConnectsTo: []string{"a2_b3"}, SpeciesID: "frostfawn", Detour: true, Layout: worldmap.Layout{X: 0.5, Y: 0.85}},
		"a2_b3":    {ID: "a2_b3", Type: worldmap.NodeBattle, Stage: 5, ConnectsTo: []string{"a2_e2", "a2_rest2"}, EnemySpeciesIDs: []string{"duskit", "pebblit"}, Layout: worldmap.Layout{X: 0.63, Y: 0.5}},
		"a2_e2":    {ID: "a2_e2", Type: worldmap.NodeEvent, Stage: 6, ConnectsTo: []string{"a2_boss"}, Layout: worldmap.Layout{X: 0.75, Y: 0.35}},
		"a2_rest2": {ID: "a2_rest2", Type: worldmap.NodeRest, Stage: 6, ConnectsTo: []string{"a2_boss"}, Layout: worldmap.Layout{X: 0.75, Y: 0.65}},
		"a2_boss":  {ID: "a2_boss", Type: worldmap.NodeBattle, Stage: 7, ConnectsTo: []string{"a2_exit"}, EnemySpeciesIDs: []string{"galecrown"}, EnemyHPMultiplier: 1.6, SizeHint: 1.4, Layout: worldmap.Layout{X: 0.88, Y: 0.5}},
		"a2_exit":  {ID: "a2_exit", Type: worldmap.NodeActTransition, Stage: 8, TargetAct: 3, Layout: worldmap.Layout{X: 1, Y: 0.5}},
	},
	3: {
		"a3_spawn": {ID: "a3_spawn", Type: worldmap.NodeSpawn, Stage: 0, ConnectsTo: []string{"a3_b1", "a3_b2"}, Layout: worldmap.Layout{X: 0, Y: 0.5}},
		"a3_b1":    {ID: "a3_b1", Type: worldmap.NodeBattle, Stage: 1, ConnectsTo: []string{"a3_e1", "a3_r1"}, EnemySpeciesIDs: []string{"duskit", "frostfawn"}, Layout: worldmap.Layout{X: 0.14, Y: 0.35}},
		"a3_b2":    {ID: "a3_b2", Type: worldmap.NodeBattle, Stage: 1, ConnectsTo: []string{"a3_r1", "a3_rest1"}, EnemySpeciesIDs: []string{"bramblehog", "pebblit"}, Layout: worldmap.Layout{X: 0.14, Y: 0.65}},
		"a3_e1":    {ID: "a3_e1", Type: worldmap.NodeEvent, Stage: 2, ConnectsTo: []string{"a3_card1"}, Layout: worldmap.Layout{X: 0.29, Y: 0.25}},
		"a3_r1":    {ID: "a3_r1", Type: worldmap.NodeRecruit, Stage: 2, ConnectsTo: []string{"a3_card1", "a3_b3"}, Layout: worldmap.Layout{X: 0.29, Y: 0.5}},
		"a3_rest1": {ID: "a3_rest1", Type: worldmap.NodeRest, Stage: 2, ConnectsTo: []string{"a3_b3"}, Layout: worldmap.Layout{X: 0.29, Y: 0.75}},
		"a3_card1": {ID: "a3_card1", Type: worldmap.NodeCardRemoval, Stage: 3, ConnectsTo: []string{"a3_b3"}, MaxRemovals: 2, Layout: worldmap.Layout{X: 0.43, Y: 0.35}},
		"a3_b3":    {ID: "a3_b3", Type: worldmap.NodeBattle, Stage: 4, ConnectsTo: []string{"a3_e2", "a3_rest2"}, EnemySpeciesIDs: []string{"glimmoth", "gustling", "duskit"}, Layout: worldmap.Layout{X: 0.57, Y: 0.5}},
		"a3_e2":    {ID: "a3_e2", Type: worldmap.NodeEvent, Stage: 5, ConnectsTo: []string{"a3_boss"}, Layout: worldmap.Layout{X: 0.71, Y: 0.35}},
		"a3_rest2": {ID: "a3_rest2", Type: worldmap.NodeRest, Stage: 5, ConnectsTo: []string{"a3_boss"}, Layout: worldmap.Layout{X: 0.71, Y: 0.65}},
		"a3_boss":  {ID: "a3_boss", Type: worldmap.NodeBattle, Stage: 6, ConnectsTo: []string{"a3_exit"}, EnemySpeciesIDs: []string{"nightmaw"}, EnemyHPMultiplier: 2, SizeHint: 1.6, Layout: worldmap.Layout{X: 0.86, Y: 0.5}},
		"a3_exit":  {ID: "a3_exit", Type: worldmap.NodeActTransition, Stage: 7, TargetAct: 4, Layout: worldmap.Layout{X: 1, Y: 0.5}},
	},
}
