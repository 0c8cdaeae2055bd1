// Package content is the static registry the run engine reads: species
// and their evolution forms, card and passive definitions, per-species
// progression trees, the narrative event catalog, per-act map templates,
// and the candidate pools used by seeded assignment. All of it is
// read-only, process-lifetime data; lookups are plain map hits. Must*
// variants panic, since a missing id means corrupted authored content,
// not a runtime condition.
package content

import (
	"fmt"

	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// Well-known content ids the engine references directly.
const (
	// CardDazed is the curse card injected by unsettling events. It is
	// single-use so copies burn off as they are played.
	CardDazed = "dazed"

	// CardMendingScar marks a revival's lingering effect on the deck.
	CardMendingScar = "mending_scar"

	// PassiveScavenger raises base battle gold rewards.
	PassiveScavenger = "scavenger"
)

// Form is one evolution stage of a species.
type Form struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	BaseMaxHP int      `json:"base_max_hp"`
	BaseDeck  []string `json:"base_deck"`
}

// Species is a creature line: an ordered chain of forms. The first form
// is the base form and shares the species id.
type Species struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Forms []Form `json:"forms"`
}

// BaseForm returns the species' first form.
func (s Species) BaseForm() Form {
	return s.Forms[0]
}

// Card is a deck entry definition. SingleUse cards are consumed by combat
// and dropped from the permanent deck during battle-result sync.
type Card struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SingleUse bool   `json:"single_use,omitempty"`
	Curse     bool   `json:"curse,omitempty"`
	Cost      int    `json:"cost,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Passive is a permanently-unlocked combat modifier.
type Passive struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text,omitempty"`
}

// Rung is one level-gated step of a progression tree. Applying the rung
// for level N takes a member from N-1 to N; the level-1 rung describes
// the starting state and is never applied.
type Rung struct {
	Level      int      `json:"level"`
	EvolveTo   string   `json:"evolve_to,omitempty"`
	MaxHPDelta int      `json:"max_hp_delta"`
	PassiveID  string   `json:"passive_id,omitempty"`
	CardIDs    []string `json:"card_ids,omitempty"`
}

// Tree is a species' four-rung progression ladder, levels 1 through 4.
type Tree struct {
	SpeciesID string  `json:"species_id"`
	Rungs     [4]Rung `json:"rungs"`
}

// RungFor returns the rung that takes a member to the given level.
func (t Tree) RungFor(level int) (Rung, bool) {
	if level < 1 || level > len(t.Rungs) {
		return Rung{}, false
	}
	return t.Rungs[level-1], true
}

var (
	speciesByID map[string]Species
	formByID    map[string]Form
	formOwner   map[string]string // form id -> species id
	cardByID    map[string]Card
	passiveByID map[string]Passive
	treeByID    map[string]Tree // keyed by species id
	eventByID   map[string]event.Definition
)

func init() {
	speciesByID = make(map[string]Species, len(allSpecies))
	formByID = make(map[string]Form)
	formOwner = make(map[string]string)
	for _, s := range allSpecies {
		speciesByID[s.ID] = s
		for _, f := range s.Forms {
			formByID[f.ID] = f
			formOwner[f.ID] = s.ID
		}
	}

	cardByID = make(map[string]Card, len(allCards))
	for _, c := range allCards {
		cardByID[c.ID] = c
	}

	passiveByID = make(map[string]Passive, len(allPassives))
	for _, p := range allPassives {
		passiveByID[p.ID] = p
	}

	treeByID = make(map[string]Tree, len(allTrees))
	for _, t := range allTrees {
		treeByID[t.SpeciesID] = t
	}

	eventByID = make(map[string]event.Definition, len(allEvents))
	for _, e := range allEvents {
		eventByID[e.ID] = e
	}
}

// SpeciesByID looks up a species by id.
func SpeciesByID(id string) (Species, bool) {
	s, ok := speciesByID[id]
	return s, ok
}

// AllSpecies returns every authored species in authoring order.
func AllSpecies() []Species {
	return allSpecies
}

// FormByID looks up any form, base or evolved.
func FormByID(id string) (Form, bool) {
	f, ok := formByID[id]
	return f, ok
}

// MustForm is FormByID for ids the caller knows must exist.
func MustForm(id string) Form {
	f, ok := formByID[id]
	if !ok {
		panic(fmt.Sprintf("content: no form %q", id))
	}
	return f
}

// CardByID looks up a card definition.
func CardByID(id string) (Card, bool) {
	c, ok := cardByID[id]
	return c, ok
}

// MustCard is CardByID for ids the caller knows must exist.
func MustCard(id string) Card {
	c, ok := cardByID[id]
	if !ok {
		panic(fmt.Sprintf("content: no card %q", id))
	}
	return c
}

// PassiveByID looks up a passive definition.
func PassiveByID(id string) (Passive, bool) {
	p, ok := passiveByID[id]
	return p, ok
}

// TreeFor resolves a species id or any of its evolved-form ids to the
// owning progression tree. Enemy-only species have no tree.
func TreeFor(id string) (Tree, bool) {
	if t, ok := treeByID[id]; ok {
		return t, true
	}
	if owner, ok := formOwner[id]; ok {
		t, ok := treeByID[owner]
		return t, ok
	}
	return Tree{}, false
}

// EventByID looks up an event definition.
func EventByID(id string) (event.Definition, bool) {
	e, ok := eventByID[id]
	return e, ok
}

// AllEvents returns the full event catalog in authoring order.
func AllEvents() []event.Definition {
	return allEvents
}

// ActTemplate returns a deep copy of an act's authored node graph, so
// run mutations never leak back into the template.
func ActTemplate(act int) (worldmap.Graph, bool) {
	g, ok := actTemplates[act]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// ActCount is the number of authored acts in a campaign.
func ActCount() int {
	return len(actTemplates)
}

// RecruitPool returns the wild species candidates for an act's open
// recruit nodes.
func RecruitPool(act int) []string {
	return append([]string(nil), recruitPools[act]...)
}

// EventPool returns the narrative event candidates for an act's open
// event nodes.
func EventPool(act int) []string {
	return append([]string(nil), eventPools[act]...)
}

// EpicPool returns the card ids offered by an epic draft.
func EpicPool() []string {
	return append([]string(nil), epicPool...)
}

// ShopPool returns the card ids offered by a shop draft.
func ShopPool() []string {
	return append([]string(nil), shopPool...)
}

// StarterSpeciesIDs returns the species a new run may start with.
func StarterSpeciesIDs() []string {
	return append([]string(nil), starterSpecies...)
}
