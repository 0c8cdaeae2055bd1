package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/journal"
	"github.com/mcamden/wildrun/pkg/run"
)

const (
	// PollInterval is how often to check the run for updates
	PollInterval = 1 * time.Second
	// BattleTimeout is max time to wait for the battle worker to land
	// its result
	BattleTimeout = 30 * time.Second
)

// postJSON sends a JSON body and decodes a JSON response, failing on any
// status other than wantStatus.
func postJSON(ctx context.Context, client *http.Client, url string, reqBody interface{}, wantStatus int, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d (expected %d): %s", url, resp.StatusCode, wantStatus, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d: %s", url, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CreateRun starts a new run with the given seed and starters and
// returns the created state.
func CreateRun(ctx context.Context, client *http.Client, baseURL string, seed int64, starters []string) (*run.RunState, error) {
	reqBody := map[string]interface{}{
		"seed":             seed,
		"starting_species": starters,
	}
	var state run.RunState
	if err := postJSON(ctx, client, baseURL+"/v1/runs", reqBody, http.StatusCreated, &state); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return &state, nil
}

// GetRun retrieves the current run state
func GetRun(ctx context.Context, client *http.Client, baseURL string, runID uuid.UUID) (*run.RunState, error) {
	var state run.RunState
	url := fmt.Sprintf("%s/v1/runs/%s", baseURL, runID.String())
	if err := getJSON(ctx, client, url, &state); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &state, nil
}

// GetJournal retrieves the run's journal entries
func GetJournal(ctx context.Context, client *http.Client, baseURL string, runID uuid.UUID) ([]journal.Entry, error) {
	var resp struct {
		Entries []journal.Entry `json:"entries"`
	}
	url := fmt.Sprintf("%s/v1/runs/%s/journal", baseURL, runID.String())
	if err := getJSON(ctx, client, url, &resp); err != nil {
		return nil, fmt.Errorf("failed to get journal: %w", err)
	}
	return resp.Entries, nil
}

// PollForBattleResolution polls the run until the battle worker has
// landed its result: gold changes on a victory, members die on a
// defeat, and either way the save bumps the updated_at timestamp.
// Returns the run state after resolution.
func PollForBattleResolution(ctx context.Context, client *http.Client, baseURL string, runID uuid.UUID, preState *run.RunState) (*run.RunState, error) {
	timeout := time.After(BattleTimeout)
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, fmt.Errorf("timeout waiting for battle resolution (waited %v)", BattleTimeout)
		case <-ticker.C:
			state, err := GetRun(ctx, client, baseURL, runID)
			if err != nil {
				// Log error but continue polling
				continue
			}

			// Check if gold changed (victory reward landed)
			if state.Gold != preState.Gold {
				return state, nil
			}

			// Check if the run ended
			if state.Status != preState.Status {
				return state, nil
			}

			// Also check updated_at timestamp as fallback
			if state.UpdatedAt.After(preState.UpdatedAt) {
				return state, nil
			}
		}
	}
}
