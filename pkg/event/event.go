package event

import (
	"fmt"

	"github.com/mcamden/wildrun/pkg/rng"
)

// targetDrawOffset shifts the seed used for random-target selection away
// from the branch-selection draw of the same node, so the two never
// collide even when both fire during a single event resolution.
const targetDrawOffset = 7919

// OutcomeKind discriminates fixed outcomes from weighted-random ones.
type OutcomeKind string

const (
	OutcomeFixed  OutcomeKind = "fixed"
	OutcomeRandom OutcomeKind = "random"
)

// Branch is one weighted alternative of a random outcome.
type Branch struct {
	Weight  float64  `json:"weight"`
	Effects []Effect `json:"effects"`
	Flavor  string   `json:"flavor,omitempty"`
}

// Outcome is what a choice leads to: either a literal effect list or a
// weighted draw over branches.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Effects  []Effect    `json:"effects,omitempty"`
	Flavor   string      `json:"flavor,omitempty"`
	Branches []Branch    `json:"branches,omitempty"`
}

// Choice is one selectable option of an event.
type Choice struct {
	Label   string  `json:"label"`
	Outcome Outcome `json:"outcome"`
}

// Definition is a narrative event: a prompt and 2-4 choices.
type Definition struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Prompt  string   `json:"prompt"`
	Choices []Choice `json:"choices"`
}

// Resolution is the concrete result of resolving one choice: the effect
// list to apply, its flavor text, and which branch was drawn (-1 for
// fixed outcomes).
type Resolution struct {
	Effects []Effect
	Flavor  string
	Branch  int
}

// Resolve turns a choice's outcome into a Resolution. Random outcomes
// draw one percentile roll from the node's sub-stream of the run seed;
// the walk accumulates branch weights and picks the first branch whose
// running total exceeds the roll. A roll that lands exactly on a
// boundary falls through to the next branch, and a table whose weights
// leave the roll uncovered falls back to the last branch. Both are
// defined behavior, not errors.
func (o Outcome) Resolve(runSeed int64, nodeID string) Resolution {
	if o.Kind == OutcomeFixed {
		return Resolution{Effects: o.Effects, Flavor: o.Flavor, Branch: -1}
	}
	roll, _ := rng.Roll(rng.SeedFor(runSeed, nodeID))
	idx := selectBranch(o.Branches, roll)
	b := o.Branches[idx]
	return Resolution{Effects: b.Effects, Flavor: b.Flavor, Branch: idx}
}

func selectBranch(branches []Branch, roll float64) int {
	cumulative := 0.0
	for i, b := range branches {
		cumulative += b.Weight
		if roll < cumulative {
			return i
		}
	}
	return len(branches) - 1
}

// RandomIndex draws an index in [0, n) for random-target selection on
// the given node. The draw is offset from the branch-selection stream.
func RandomIndex(runSeed int64, nodeID string, n int) int {
	i, _ := rng.IntN(rng.SeedFor(runSeed, nodeID)+targetDrawOffset, n)
	return i
}

// Validate checks the definition for authoring mistakes: choice count,
// outcome shape, branch weights, and per-effect payloads.
func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("event: id required")
	}
	if len(d.Choices) < 2 || len(d.Choices) > 4 {
		return fmt.Errorf("event %s: needs 2-4 choices, has %d", d.ID, len(d.Choices))
	}
	for ci, c := range d.Choices {
		if c.Label == "" {
			return fmt.Errorf("event %s choice %d: label required", d.ID, ci)
		}
		switch c.Outcome.Kind {
		case OutcomeFixed:
			for ei, e := range c.Outcome.Effects {
				if err := e.Validate(); err != nil {
					return fmt.Errorf("event %s choice %d effect %d: %w", d.ID, ci, ei, err)
				}
			}
		case OutcomeRandom:
			if len(c.Outcome.Branches) == 0 {
				return fmt.Errorf("event %s choice %d: random outcome needs branches", d.ID, ci)
			}
			for bi, b := range c.Outcome.Branches {
				if b.Weight <= 0 {
					return fmt.Errorf("event %s choice %d branch %d: weight must be positive", d.ID, ci, bi)
				}
				for ei, e := range b.Effects {
					if err := e.Validate(); err != nil {
						return fmt.Errorf("event %s choice %d branch %d effect %d: %w", d.ID, ci, bi, ei, err)
					}
				}
			}
		default:
			return fmt.Errorf("event %s choice %d: unknown outcome kind %q", d.ID, ci, c.Outcome.Kind)
		}
	}
	return nil
}
