package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/internal/archive"
	"github.com/mcamden/wildrun/internal/services/events"
	"github.com/mcamden/wildrun/internal/services/queue"
	"github.com/mcamden/wildrun/internal/worker"
	"github.com/mcamden/wildrun/pkg/journal"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// RunsHandler owns the /v1/runs surface: run lifecycle, traversal,
// events, party management, battles and interactions.
type RunsHandler struct {
	storage      storage.Storage
	battleQueue  *queue.BattleQueue
	interactions *queue.InteractionQueue
	processor    *worker.BattleProcessor
	broadcaster  *events.Broadcaster
	archive      *archive.Store
	logger       *slog.Logger
}

// NewRunsHandler creates the runs handler. The broadcaster and archive
// may be nil; the matching side effects are skipped.
func NewRunsHandler(
	logger *slog.Logger,
	storage storage.Storage,
	battleQueue *queue.BattleQueue,
	interactions *queue.InteractionQueue,
	processor *worker.BattleProcessor,
	broadcaster *events.Broadcaster,
	archive *archive.Store,
) *RunsHandler {
	return &RunsHandler{
		storage:      storage,
		battleQueue:  battleQueue,
		interactions: interactions,
		processor:    processor,
		broadcaster:  broadcaster,
		archive:      archive,
		logger:       logger,
	}
}

// ServeHTTP routes run requests.
// Routes:
// POST /v1/runs                  - Create a new run
// GET /v1/runs/{id}              - Read a run by ID
// DELETE /v1/runs/{id}           - Abandon, archive and delete a run
// POST /v1/runs/{id}/move        - Move to a connected node
// POST /v1/runs/{id}/advance     - Consume the current act transition
// POST /v1/runs/{id}/event       - Commit a choice of the current event
// POST /v1/runs/{id}/levelup     - Level one party member
// POST /v1/runs/{id}/party       - Swap/promote/demote/rearrange/revive
// POST /v1/runs/{id}/battle      - Resolve or sync a battle at the current node
// POST /v1/runs/{id}/interact    - Realize a drained interactive effect
// GET /v1/runs/{id}/pending      - Drain pending interactions
// GET /v1/runs/{id}/journal      - Read the run's journal
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/runs"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.Split(path, "/")
	runID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid run ID", "id", parts[0], "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, runID)
		case http.MethodDelete:
			h.handleDelete(w, r, runID)
		default:
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
		return
	}

	if len(parts) != 2 {
		h.writeError(w, http.StatusNotFound, "Unknown runs path")
		return
	}

	action := parts[1]
	switch action {
	case "move", "advance", "event", "levelup", "party", "battle", "interact":
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
			return
		}
	case "pending", "journal":
		if r.Method != http.MethodGet {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
			return
		}
	default:
		h.writeError(w, http.StatusNotFound, "Unknown run action: "+action)
		return
	}

	switch action {
	case "move":
		h.handleMove(w, r, runID)
	case "advance":
		h.handleAdvance(w, r, runID)
	case "event":
		h.handleEvent(w, r, runID)
	case "levelup":
		h.handleLevelUp(w, r, runID)
	case "party":
		h.handleParty(w, r, runID)
	case "battle":
		h.handleBattle(w, r, runID)
	case "interact":
		h.handleInteract(w, r, runID)
	case "pending":
		h.handlePending(w, r, runID)
	case "journal":
		h.handleJournal(w, r, runID)
	}
}

// writeError writes a JSON error response.
func (h *RunsHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}

// writeJSON writes a success response.
func (h *RunsHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// loadRun loads a run and writes the error response itself when the
// run is missing or storage fails.
func (h *RunsHandler) loadRun(w http.ResponseWriter, r *http.Request, runID uuid.UUID) (*run.RunState, bool) {
	s, err := h.storage.LoadRun(r.Context(), runID)
	if err != nil {
		h.logger.Error("Failed to load run", "error", err, "run_id", runID.String())
		h.writeError(w, http.StatusInternalServerError, "Failed to load run")
		return nil, false
	}
	if s == nil {
		h.writeError(w, http.StatusNotFound, "Run not found")
		return nil, false
	}
	return s, true
}

// saveRun persists a run and writes the error response on failure.
func (h *RunsHandler) saveRun(w http.ResponseWriter, r *http.Request, runID uuid.UUID, s *run.RunState) bool {
	if err := h.storage.SaveRun(r.Context(), runID, s); err != nil {
		h.logger.Error("Failed to save run", "error", err, "run_id", runID.String())
		h.writeError(w, http.StatusInternalServerError, "Failed to save run")
		return false
	}
	return true
}

// journal appends entries, logging failures instead of surfacing them.
func (h *RunsHandler) journal(r *http.Request, runID uuid.UUID, entries ...journal.Entry) {
	if len(entries) == 0 {
		return
	}
	if err := h.storage.AppendJournal(r.Context(), runID, entries...); err != nil {
		h.logger.Error("Failed to append journal", "error", err, "run_id", runID.String())
	}
}

// publishUpdate notifies subscribers that the run state changed.
func (h *RunsHandler) publishUpdate(r *http.Request, s *run.RunState) {
	if h.broadcaster == nil {
		return
	}
	if err := h.broadcaster.PublishRunUpdated(r.Context(), s.ID, s.CurrentAct, s.CurrentNodeID, string(s.Status)); err != nil {
		h.logger.Error("Failed to publish run update", "error", err, "run_id", s.ID.String())
	}
}

// CreateRunRequest defines the request body for creating a new run
type CreateRunRequest struct {
	// Seed drives every random draw of the run. Zero picks a seed from
	// the clock.
	Seed int64 `json:"seed,omitempty"`

	// StartingSpecies names 1-4 distinct starter species.
	StartingSpecies []string `json:"starting_species"`
}

func (h *RunsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Creating new run")

	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if len(req.StartingSpecies) == 0 || len(req.StartingSpecies) > run.MaxPartySize {
		h.writeError(w, http.StatusBadRequest, "starting_species must name 1 to 4 species")
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s, err := run.NewRun(seed, req.StartingSpecies)
	if err != nil {
		h.logger.Warn("Failed to create run", "error", err)
		h.writeError(w, http.StatusBadRequest, "Failed to create run: "+err.Error())
		return
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()

	if !h.saveRun(w, r, s.ID, &s) {
		return
	}

	h.journal(r, s.ID,
		journal.New(journal.KindSystem, "a new run began with seed %d", s.Seed),
		journal.New(journal.KindTravel, "the party set out from %s", s.CurrentNodeID),
	)

	h.logger.Debug("Run created successfully", "id", s.ID.String(), "seed", s.Seed)
	h.writeJSON(w, http.StatusCreated, &s)
}

func (h *RunsHandler) handleRead(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

// handleDelete abandons an active run, records it in the archive, and
// removes it from live storage.
func (h *RunsHandler) handleDelete(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	final := *s
	if final.Status == run.StatusActive {
		final = final.Abandon()
	}

	if h.archive != nil {
		if err := h.archive.ArchiveRun(r.Context(), &final); err != nil {
			h.logger.Error("Failed to archive run before delete", "error", err, "run_id", runID.String())
			h.writeError(w, http.StatusInternalServerError, "Failed to archive run")
			return
		}
	}

	if err := h.storage.DeleteRun(r.Context(), runID); err != nil {
		h.logger.Error("Failed to delete run", "error", err, "run_id", runID.String())
		h.writeError(w, http.StatusInternalServerError, "Failed to delete run")
		return
	}

	h.logger.Debug("Run deleted successfully", "id", runID.String(), "status", final.Status)
	w.WriteHeader(http.StatusNoContent)
}
