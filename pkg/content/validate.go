package content

import (
	"fmt"
	"strings"

	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// Validate checks the whole registry for referential integrity: forms,
// cards, passives, and trees resolving to each other; event payloads
// naming real species and map nodes; act graphs holding their structural
// invariants; pools large enough to fill every open slot. The service
// runs this at boot and refuses to start on failure.
func Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	validateSpecies(add)
	validateTrees(add)
	validateEvents(add)
	validateActs(add)
	validatePools(add)
	validateShops(add)

	if len(problems) > 0 {
		return fmt.Errorf("content: %d problems:\n  %s", len(problems), strings.Join(problems, "\n  "))
	}
	return nil
}

func validateSpecies(add func(string, ...any)) {
	seen := map[string]bool{}
	for _, s := range allSpecies {
		if seen[s.ID] {
			add("species %q defined twice", s.ID)
		}
		seen[s.ID] = true
		if len(s.Forms) == 0 {
			add("species %q has no forms", s.ID)
			continue
		}
		if s.Forms[0].ID != s.ID {
			add("species %q base form id is %q, want the species id", s.ID, s.Forms[0].ID)
		}
		for _, f := range s.Forms {
			if f.BaseMaxHP <= 0 {
				add("form %q has non-positive base max HP", f.ID)
			}
			for _, cardID := range f.BaseDeck {
				if _, ok := cardByID[cardID]; !ok {
					add("form %q deck references missing card %q", f.ID, cardID)
				}
			}
		}
	}
}

func validateTrees(add func(string, ...any)) {
	for _, t := range allTrees {
		s, ok := speciesByID[t.SpeciesID]
		if !ok {
			add("tree for missing species %q", t.SpeciesID)
			continue
		}
		for i, r := range t.Rungs {
			if r.Level != i+1 {
				add("tree %q rung %d carries level %d", t.SpeciesID, i, r.Level)
			}
			if r.EvolveTo != "" {
				if owner, ok := formOwner[r.EvolveTo]; !ok {
					add("tree %q rung %d evolves to missing form %q", t.SpeciesID, r.Level, r.EvolveTo)
				} else if owner != s.ID {
					add("tree %q rung %d evolves into another species' form %q", t.SpeciesID, r.Level, r.EvolveTo)
				}
			}
			if r.PassiveID != "" {
				if _, ok := passiveByID[r.PassiveID]; !ok {
					add("tree %q rung %d grants missing passive %q", t.SpeciesID, r.Level, r.PassiveID)
				}
			}
			for _, cardID := range r.CardIDs {
				if _, ok := cardByID[cardID]; !ok {
					add("tree %q rung %d grants missing card %q", t.SpeciesID, r.Level, cardID)
				}
			}
		}
	}
}

func validateEvents(add func(string, ...any)) {
	seen := map[string]bool{}
	for _, e := range allEvents {
		if seen[e.ID] {
			add("event %q defined twice", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			add("%v", err)
		}
		forEachEffect(e, func(eff event.Effect) {
			switch eff.Type {
			case event.EffectRecruit:
				if _, ok := speciesByID[eff.SpeciesID]; !ok {
					add("event %q recruits missing species %q", e.ID, eff.SpeciesID)
				}
			case event.EffectSetPath:
				validateSetPath(e.ID, eff, add)
			}
		})
	}
}

func forEachEffect(d event.Definition, fn func(event.Effect)) {
	for _, c := range d.Choices {
		for _, eff := range c.Outcome.Effects {
			fn(eff)
		}
		for _, b := range c.Outcome.Branches {
			for _, eff := range b.Effects {
				fn(eff)
			}
		}
	}
}

// validateSetPath requires the rewrite target and every new edge to live
// in the same act graph.
func validateSetPath(eventID string, eff event.Effect, add func(string, ...any)) {
	for act, g := range actTemplates {
		if _, ok := g[eff.NodeID]; !ok {
			continue
		}
		for _, edge := range eff.Edges {
			if _, ok := g[edge]; !ok {
				add("event %q set_path edge %q missing from act %d", eventID, edge, act)
			}
		}
		return
	}
	add("event %q set_path targets node %q not found in any act", eventID, eff.NodeID)
}

func validateActs(add func(string, ...any)) {
	for act := 1; act <= len(actTemplates); act++ {
		g, ok := actTemplates[act]
		if !ok {
			add("acts are not numbered contiguously: missing act %d", act)
			continue
		}
		if err := g.Validate(); err != nil {
			add("act %d: %v", act, err)
		}
		for _, id := range g.IDs() {
			n := g[id]
			switch n.Type {
			case worldmap.NodeBattle:
				if len(n.EnemySpeciesIDs) == 0 {
					add("act %d node %q has no enemies", act, id)
				}
				for _, sid := range n.EnemySpeciesIDs {
					if _, ok := speciesByID[sid]; !ok {
						add("act %d node %q references missing species %q", act, id, sid)
					}
				}
			case worldmap.NodeEvent:
				if n.EventID != "" {
					if _, ok := eventByID[n.EventID]; !ok {
						add("act %d node %q references missing event %q", act, id, n.EventID)
					}
				}
			case worldmap.NodeRecruit:
				if n.SpeciesID != "" {
					if _, ok := speciesByID[n.SpeciesID]; !ok {
						add("act %d node %q offers missing species %q", act, id, n.SpeciesID)
					}
				}
			case worldmap.NodeCardRemoval:
				if n.MaxRemovals <= 0 {
					add("act %d node %q allows no removals", act, id)
				}
			case worldmap.NodeActTransition:
				if n.TargetAct != act+1 {
					add("act %d node %q transitions to act %d, want %d", act, id, n.TargetAct, act+1)
				}
			}
		}
	}
}

func validatePools(add func(string, ...any)) {
	for act := 1; act <= len(actTemplates); act++ {
		g := actTemplates[act]
		openEvents, openRecruits := 0, 0
		for _, id := range g.IDs() {
			n := g[id]
			if !n.Open() {
				continue
			}
			if n.Type == worldmap.NodeEvent {
				openEvents++
			} else {
				openRecruits++
			}
		}

		events := eventPools[act]
		for _, id := range events {
			if _, ok := eventByID[id]; !ok {
				add("act %d event pool references missing event %q", act, id)
			}
		}
		if len(events) < openEvents {
			add("act %d event pool has %d entries for %d open slots", act, len(events), openEvents)
		}

		species := recruitPools[act]
		for _, id := range species {
			if _, ok := speciesByID[id]; !ok {
				add("act %d recruit pool references missing species %q", act, id)
			} else if _, ok := treeByID[id]; !ok {
				add("act %d recruit pool species %q has no progression tree", act, id)
			}
		}
		if len(species) < openRecruits {
			add("act %d recruit pool has %d entries for %d open slots", act, len(species), openRecruits)
		}
	}

	for _, id := range starterSpecies {
		if _, ok := speciesByID[id]; !ok {
			add("starter species %q missing", id)
		} else if _, ok := treeByID[id]; !ok {
			add("starter species %q has no progression tree", id)
		}
	}
}

func validateShops(add func(string, ...any)) {
	if len(epicPool) == 0 {
		add("epic draft pool is empty")
	}
	for _, id := range epicPool {
		if _, ok := cardByID[id]; !ok {
			add("epic pool references missing card %q", id)
		}
	}
	if len(shopPool) == 0 {
		add("shop pool is empty")
	}
	for _, id := range shopPool {
		c, ok := cardByID[id]
		if !ok {
			add("shop pool references missing card %q", id)
		} else if c.Cost <= 0 {
			add("shop card %q has no price", id)
		}
	}

	for _, id := range []string{CardDazed, CardMendingScar} {
		if _, ok := cardByID[id]; !ok {
			add("engine card %q missing from registry", id)
		}
	}
	if _, ok := passiveByID[PassiveScavenger]; !ok {
		add("engine passive %q missing from registry", PassiveScavenger)
	}
}
