package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/run"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running wildrun API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	// If this is not a sequence, return it as-is
	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	// This is a sequence - load all referenced cases
	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		// Resolve path relative to casesDir
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite: a fresh run is created from
// the suite's seed and starters, then each step plays against it.
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	state, err := CreateRun(ctx, r.Client, r.BaseURL, suite.Seed, suite.Starters)
	if err != nil {
		result.Error = fmt.Errorf("failed to create run: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.RunID = state.ID

	// Execute each test step
	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult, nextState := r.runStep(ctx, state, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			// Break only if error handling mode is "exit"
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			// Continue to next step if mode is "continue"
		} else {
			r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
		}

		// Carry the latest state forward so wait steps can diff against it
		if nextState != nil {
			state = nextState
		}
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// runStep executes a single test step and checks expectations.
// Will retry once on battle-poll timeouts without backoff.
func (r *Runner) runStep(ctx context.Context, state *run.RunState, step TestStep) (TestResult, *run.RunState) {
	// Try once, then retry on timeout
	for attempt := 1; attempt <= 2; attempt++ {
		result, next := r.executeStep(ctx, state, step)

		// If successful or not a timeout, return immediately
		if result.Success || result.Error == nil {
			return result, next
		}

		// Check if it's a timeout error
		isTimeout := strings.Contains(result.Error.Error(), "timeout waiting for battle resolution")

		// If it's a timeout and this is the first attempt, retry
		if isTimeout && attempt == 1 {
			r.Logger("    Timeout detected, retrying step: %s", step.Name)
			continue
		}

		// Otherwise, return the result
		return result, next
	}

	// Should never reach here, but return empty result just in case
	return TestResult{StepName: step.Name, Error: fmt.Errorf("unexpected error in retry logic")}, nil
}

// executeStep performs the actual step execution
func (r *Runner) executeStep(ctx context.Context, state *run.RunState, step TestStep) (TestResult, *run.RunState) {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}

	runURL := fmt.Sprintf("%s/v1/runs/%s", r.BaseURL, state.ID.String())

	var next *run.RunState
	var battleQueued *bool
	var err error

	switch step.Action {
	case ActionMove:
		var resp struct {
			State        *run.RunState `json:"state"`
			BattleQueued bool          `json:"battle_queued"`
		}
		err = postJSON(ctx, r.Client, runURL+"/move", map[string]string{"node_id": step.NodeID}, http.StatusOK, &resp)
		if err == nil {
			next = resp.State
			battleQueued = &resp.BattleQueued
		}

	case ActionWaitBattle:
		result.IsWait = true
		next, err = PollForBattleResolution(ctx, r.Client, r.BaseURL, state.ID, state)

	case ActionBattle:
		var resp struct {
			State *run.RunState `json:"state"`
		}
		err = postJSON(ctx, r.Client, runURL+"/battle", struct{}{}, http.StatusOK, &resp)
		if err == nil {
			next = resp.State
		}

	case ActionAdvance:
		var advanced run.RunState
		err = postJSON(ctx, r.Client, runURL+"/advance", struct{}{}, http.StatusOK, &advanced)
		if err == nil {
			next = &advanced
		}

	case ActionEventChoice:
		target := -1
		if step.Target != nil {
			target = *step.Target
		}
		var resp struct {
			State *run.RunState `json:"state"`
		}
		err = postJSON(ctx, r.Client, runURL+"/event", map[string]int{"choice": step.Choice, "target": target}, http.StatusOK, &resp)
		if err == nil {
			next = resp.State
		}

	case ActionLevelUp:
		var leveled run.RunState
		err = postJSON(ctx, r.Client, runURL+"/levelup", map[string]int{"member": step.Member}, http.StatusOK, &leveled)
		if err == nil {
			next = &leveled
		}

	case ActionRecruit:
		next, err = r.resolveRecruit(ctx, state, step)

	default:
		err = fmt.Errorf("unknown action %q", step.Action)
	}

	if err != nil {
		result.Error = fmt.Errorf("action %s failed: %w", step.Action, err)
		result.Duration = time.Since(start)
		return result, next
	}

	if next == nil {
		next, err = GetRun(ctx, r.Client, r.BaseURL, state.ID)
		if err != nil {
			result.Error = fmt.Errorf("failed to get run after step: %w", err)
			result.Duration = time.Since(start)
			return result, nil
		}
	}

	// Check expectations
	if err := r.checkExpectations(ctx, step, next, battleQueued); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result, next
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result, next
}

// resolveRecruit realizes the recruit offer at the step's node (or the
// current node) through the interact endpoint.
func (r *Runner) resolveRecruit(ctx context.Context, state *run.RunState, step TestStep) (*run.RunState, error) {
	nodeID := step.NodeID
	if nodeID == "" {
		nodeID = state.CurrentNodeID
	}
	node, ok := state.Nodes[nodeID]
	if !ok || node.SpeciesID == "" {
		return nil, fmt.Errorf("node %s offers no recruit", nodeID)
	}

	req := map[string]interface{}{
		"action": "resolve",
		"interaction": run.PendingInteraction{
			Effect: event.Effect{Type: event.EffectRecruit, SpeciesID: node.SpeciesID},
			NodeID: node.ID,
		},
	}
	var resp struct {
		State *run.RunState `json:"state"`
	}
	runURL := fmt.Sprintf("%s/v1/runs/%s", r.BaseURL, state.ID.String())
	if err := postJSON(ctx, r.Client, runURL+"/interact", req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

// checkExpectations validates the test expectations against the run
// state after the step
func (r *Runner) checkExpectations(ctx context.Context, step TestStep, s *run.RunState, battleQueued *bool) error {
	exp := step.Expectations

	if exp.CurrentNode != nil {
		if s.CurrentNodeID != *exp.CurrentNode {
			return fmt.Errorf("expected current node %s, got %s", *exp.CurrentNode, s.CurrentNodeID)
		}
	}

	if exp.Act != nil {
		if s.CurrentAct != *exp.Act {
			return fmt.Errorf("expected act %d, got %d", *exp.Act, s.CurrentAct)
		}
	}

	if exp.Status != nil {
		if string(s.Status) != *exp.Status {
			return fmt.Errorf("expected status %s, got %s", *exp.Status, s.Status)
		}
	}

	if exp.Gold != nil {
		if s.Gold != *exp.Gold {
			return fmt.Errorf("expected gold %d, got %d", *exp.Gold, s.Gold)
		}
	}

	if exp.GoldMin != nil {
		if s.Gold < *exp.GoldMin {
			return fmt.Errorf("expected gold >= %d, got %d", *exp.GoldMin, s.Gold)
		}
	}

	if exp.PartySize != nil {
		if len(s.Party) != *exp.PartySize {
			return fmt.Errorf("expected party size %d, got %d", *exp.PartySize, len(s.Party))
		}
	}

	if exp.BenchSize != nil {
		if len(s.Bench) != *exp.BenchSize {
			return fmt.Errorf("expected bench size %d, got %d", *exp.BenchSize, len(s.Bench))
		}
	}

	if exp.GraveyardSize != nil {
		if len(s.Graveyard) != *exp.GraveyardSize {
			return fmt.Errorf("expected graveyard size %d, got %d", *exp.GraveyardSize, len(s.Graveyard))
		}
	}

	// Node checks run against the step's node, falling back to the
	// current one
	nodeID := step.NodeID
	if nodeID == "" {
		nodeID = s.CurrentNodeID
	}

	if exp.NodeCompleted != nil {
		node, ok := s.Nodes[nodeID]
		if !ok {
			return fmt.Errorf("node %s not found in run", nodeID)
		}
		if node.Completed != *exp.NodeCompleted {
			return fmt.Errorf("expected node %s completed=%t, got %t", nodeID, *exp.NodeCompleted, node.Completed)
		}
	}

	if exp.EventResolved != nil {
		node, ok := s.Nodes[nodeID]
		if !ok {
			return fmt.Errorf("node %s not found in run", nodeID)
		}
		if node.Resolved != *exp.EventResolved {
			return fmt.Errorf("expected node %s resolved=%t, got %t", nodeID, *exp.EventResolved, node.Resolved)
		}
	}

	if exp.BattleQueued != nil {
		if battleQueued == nil {
			return fmt.Errorf("battle_queued expectation only applies to move steps")
		}
		if *battleQueued != *exp.BattleQueued {
			return fmt.Errorf("expected battle_queued=%t, got %t", *exp.BattleQueued, *battleQueued)
		}
	}

	// Journal content checks (substring, case insensitive)
	if len(exp.JournalContains) > 0 {
		entries, err := GetJournal(ctx, r.Client, r.BaseURL, s.ID)
		if err != nil {
			return fmt.Errorf("failed to get journal for expectations: %w", err)
		}
		var all strings.Builder
		for _, e := range entries {
			all.WriteString(strings.ToLower(e.Text))
			all.WriteString("\n")
		}
		text := all.String()
		for _, want := range exp.JournalContains {
			if !strings.Contains(text, strings.ToLower(want)) {
				return fmt.Errorf("expected journal to contain '%s', but it didn't", want)
			}
		}
	}

	return nil
}
