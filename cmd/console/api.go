package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/battle"
	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/journal"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// getJSON performs a GET and decodes the response into out, surfacing
// the API's error body on non-2xx statuses.
func getJSON(client *http.Client, url string, out interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return apiError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// postJSON performs a POST with a JSON body and decodes the response
// into out (when out is non-nil).
func postJSON(client *http.Client, url string, reqBody interface{}, wantStatus int, out interface{}) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return apiError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func apiError(status int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("%s", errorResp.Error)
}

// speciesListResponse matches the content endpoint's list shape.
type speciesListResponse struct {
	Species []content.Species `json:"species"`
}

func listSpecies(client *http.Client, baseURL string) ([]content.Species, error) {
	var resp speciesListResponse
	if err := getJSON(client, baseURL+"/v1/content/species", &resp); err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	return resp.Species, nil
}

// CreateRunRequest matches the API request structure
type CreateRunRequest struct {
	Seed            int64    `json:"seed,omitempty"`
	StartingSpecies []string `json:"starting_species"`
}

func createRun(client *http.Client, baseURL string, speciesIDs []string, seed int64) (*run.RunState, error) {
	req := CreateRunRequest{
		Seed:            seed,
		StartingSpecies: speciesIDs,
	}
	var state run.RunState
	if err := postJSON(client, baseURL+"/v1/runs", req, http.StatusCreated, &state); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return &state, nil
}

func getRun(client *http.Client, baseURL string, runID uuid.UUID) (*run.RunState, error) {
	var state run.RunState
	if err := getJSON(client, fmt.Sprintf("%s/v1/runs/%s", baseURL, runID), &state); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &state, nil
}

func deleteRun(client *http.Client, baseURL string, runID uuid.UUID) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/v1/runs/%s", baseURL, runID), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, body)
	}
	return nil
}

// MoveResult matches the move endpoint's response.
type MoveResult struct {
	State        *run.RunState     `json:"state"`
	BattleQueued bool              `json:"battle_queued,omitempty"`
	Event        *event.Definition `json:"event,omitempty"`
}

func postMove(client *http.Client, baseURL string, runID uuid.UUID, nodeID string) (*MoveResult, error) {
	req := map[string]string{"node_id": nodeID}
	var result MoveResult
	if err := postJSON(client, fmt.Sprintf("%s/v1/runs/%s/move", baseURL, runID), req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func postAdvance(client *http.Client, baseURL string, runID uuid.UUID) (*run.RunState, error) {
	var state run.RunState
	if err := postJSON(client, fmt.Sprintf("%s/v1/runs/%s/advance", baseURL, runID), struct{}{}, http.StatusOK, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// EventChoiceResult matches the event endpoint's response.
type EventChoiceResult struct {
	State  *run.RunState    `json:"state"`
	Result run.ChoiceResult `json:"result"`
}

func postEventChoice(client *http.Client, baseURL string, runID uuid.UUID, choice, target int) (*EventChoiceResult, error) {
	req := map[string]int{"choice": choice, "target": target}
	var result EventChoiceResult
	if err := postJSON(client, fmt.Sprintf("%s/v1/runs/%s/event", baseURL, runID), req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func postLevelUp(client *http.Client, baseURL string, runID uuid.UUID, member int) (*run.RunState, error) {
	req := map[string]int{"member": member}
	var state run.RunState
	if err := postJSON(client, fmt.Sprintf("%s/v1/runs/%s/levelup", baseURL, runID), req, http.StatusOK, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// PartyActionRequest matches the party endpoint's request structure.
type PartyActionRequest struct {
	Action         string                `json:"action"`
	PartyIndex     int                   `json:"party_index"`
	BenchIndex     int                   `json:"bench_index"`
	GraveyardIndex int                   `json:"graveyard_index"`
	Position       *roster.GridPosition  `json:"position,omitempty"`
	Positions      []roster.GridPosition `json:"positions,omitempty"`
	Fraction       float64               `json:"fraction,omitempty"`
}

func postPartyAction(client *http.Client, baseURL string, runID uuid.UUID, req PartyActionRequest) (*run.RunState, error) {
	var state run.RunState
	if err := postJSON(client, fmt.Sprintf("%s/v1/runs/%s/party", baseURL, runID), req, http.StatusOK, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// BattleOutcome matches the battle endpoint's response.
type BattleOutcome struct {
	Result *battle.Result `json:"result"`
	Gold   int            `json:"gold"`
	State  *run.RunState  `json:"state"`
}

// postBattleSync asks the API to resolve the battle at the current node
// with its scripted combat service.
func postBattleSync(client *http.Client, baseURL string, runID uuid.UUID) (*BattleOutcome, error) {
	var outcome BattleOutcome
	if err := postJSON(client, fmt.Sprintf("%s/v1/runs/%s/battle", baseURL, runID), struct{}{}, http.StatusOK, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// PendingResult matches the pending endpoint's response.
type PendingResult struct {
	Pending []run.PendingInteraction `json:"pending"`
}

func getPending(client *http.Client, baseURL string, runID uuid.UUID) ([]run.PendingInteraction, error) {
	var resp PendingResult
	if err := getJSON(client, fmt.Sprintf("%s/v1/runs/%s/pending", baseURL, runID), &resp); err != nil {
		return nil, err
	}
	return resp.Pending, nil
}

// InteractRequest matches the interact endpoint's request structure.
type InteractRequest struct {
	Action      string                  `json:"action"`
	Interaction *run.PendingInteraction `json:"interaction"`
	CardIDs     []string                `json:"card_ids,omitempty"`
	DeckIndices []int                   `json:"deck_indices,omitempty"`
	TargetIndex *int                    `json:"target_index,omitempty"`
}

type interactResponse struct {
	State *run.RunState `json:"state"`
}

func postInteract(client *http.Client, baseURL string, runID uuid.UUID, req InteractRequest) (*run.RunState, error) {
	var resp interactResponse
	if err := postJSON(client, fmt.Sprintf("%s/v1/runs/%s/interact", baseURL, runID), req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

type journalResponse struct {
	Entries []journal.Entry `json:"entries"`
}

func getJournal(client *http.Client, baseURL string, runID uuid.UUID) ([]journal.Entry, error) {
	var resp journalResponse
	if err := getJSON(client, fmt.Sprintf("%s/v1/runs/%s/journal", baseURL, runID), &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// SSEEvent represents an event from the SSE stream
type SSEEvent struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// listenToSSE connects to the SSE endpoint and streams events to a channel
func listenToSSE(ctx context.Context, client *http.Client, baseURL string, runID uuid.UUID, eventChan chan<- SSEEvent) error {
	url := fmt.Sprintf("%s/v1/events/runs/%s", baseURL, runID.String())

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to SSE: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SSE connection failed with status %d: %s", resp.StatusCode, string(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	var currentEvent SSEEvent

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()

		if line == "" {
			// Empty line signals end of event
			if currentEvent.Type != "" {
				eventChan <- currentEvent
				currentEvent = SSEEvent{}
			}
			continue
		}

		// Parse SSE format
		if strings.HasPrefix(line, "event: ") {
			currentEvent.Type = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			dataJSON := strings.TrimPrefix(line, "data: ")
			var data map[string]interface{}
			if err := json.Unmarshal([]byte(dataJSON), &data); err == nil {
				currentEvent.Data = data
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading SSE stream: %w", err)
	}

	return nil
}
