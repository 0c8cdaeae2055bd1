package runner

import (
	"time"

	"github.com/google/uuid"
)

// Step actions understood by the runner. WaitBattle is special: it does
// not call a mutating endpoint, it polls until the battle worker has
// landed its result on the run.
const (
	ActionMove        = "move"
	ActionWaitBattle  = "wait_battle"
	ActionBattle      = "battle"
	ActionAdvance     = "advance"
	ActionEventChoice = "event_choice"
	ActionLevelUp     = "level_up"
	ActionRecruit     = "recruit"
)

// TestSuite defines a complete integration test scenario: one scripted
// run played against a live API. Can either be a regular test with
// Steps, or a suite that references other Cases.
type TestSuite struct {
	Name     string     `json:"name"`
	Seed     int64      `json:"seed,omitempty"`     // Used for regular tests
	Starters []string   `json:"starters,omitempty"` // Species ids for the starting party
	Steps    []TestStep `json:"steps,omitempty"`    // Used for regular tests
	Cases    []string   `json:"cases,omitempty"`    // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single action against the run and its expected
// outcomes. NodeID is the move/poll target; Choice, Target and Member
// parameterize event and level-up actions.
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Action       string       `json:"action"`
	NodeID       string       `json:"node_id,omitempty"`
	Choice       int          `json:"choice,omitempty"`
	Target       *int         `json:"target,omitempty"`
	Member       int          `json:"member,omitempty"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes. Only
// deterministic run-state facts belong here: anything drawn from the
// seeded outcome streams varies per seed and would make cases flaky.
type Expectations struct {
	// Run-state properties - aligned with pkg/run/run.go
	CurrentNode   *string `json:"current_node,omitempty"`
	Act           *int    `json:"act,omitempty"`
	Status        *string `json:"status,omitempty"`
	Gold          *int    `json:"gold,omitempty"`
	GoldMin       *int    `json:"gold_min,omitempty"`
	PartySize     *int    `json:"party_size,omitempty"`
	BenchSize     *int    `json:"bench_size,omitempty"`
	GraveyardSize *int    `json:"graveyard_size,omitempty"`

	// Node checks against the step's NodeID (or the current node when
	// NodeID is empty)
	NodeCompleted *bool `json:"node_completed,omitempty"`
	EventResolved *bool `json:"event_resolved,omitempty"`

	// Move response analysis
	BattleQueued *bool `json:"battle_queued,omitempty"`

	// Journal analysis (substring match, case insensitive)
	JournalContains []string `json:"journal_contains,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	IsWait   bool // True if this was a wait_battle step
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	RunID    uuid.UUID // ID of the run used for this test
}
