package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/journal"
	queuePkg "github.com/mcamden/wildrun/pkg/queue"
	"github.com/mcamden/wildrun/pkg/roster"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// MoveRequest defines the request body for moving the party
type MoveRequest struct {
	NodeID string `json:"node_id"`
}

// MoveResponse carries the state after a move plus what the arrival
// set in motion: a queued battle, or an event to choose from.
type MoveResponse struct {
	State        *run.RunState     `json:"state"`
	BattleQueued bool              `json:"battle_queued,omitempty"`
	Event        *event.Definition `json:"event,omitempty"`
}

func (h *RunsHandler) handleMove(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.NodeID == "" {
		h.writeError(w, http.StatusBadRequest, "node_id field is required")
		return
	}

	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	next, ok := s.MoveTo(req.NodeID)
	if !ok {
		h.writeError(w, http.StatusConflict, "Cannot move to node "+req.NodeID)
		return
	}

	if !h.saveRun(w, r, runID, &next) {
		return
	}

	node := next.Nodes[req.NodeID]
	entries := []journal.Entry{journal.New(journal.KindTravel, "moved to %s", node.ID)}
	resp := MoveResponse{State: &next}

	switch node.Type {
	case worldmap.NodeBattle:
		resp.BattleQueued = h.queueBattle(r, runID, node.ID)
	case worldmap.NodeRest:
		entries = append(entries, journal.New(journal.KindParty, "the party rested and recovered"))
	case worldmap.NodeEvent:
		if def, ok := content.EventByID(node.EventID); ok {
			resp.Event = &def
		}
	}

	h.journal(r, runID, entries...)
	h.publishUpdate(r, &next)
	h.writeJSON(w, http.StatusOK, resp)
}

// queueBattle enqueues a battle request for the worker. Failures are
// logged, not surfaced: the move already landed, and the client can
// fall back to the synchronous battle endpoint.
func (h *RunsHandler) queueBattle(r *http.Request, runID uuid.UUID, nodeID string) bool {
	if h.battleQueue == nil {
		return false
	}
	req := &queuePkg.Request{
		RequestID:  uuid.New().String(),
		Type:       queuePkg.RequestTypeBattle,
		RunID:      runID,
		NodeID:     nodeID,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := h.battleQueue.Enqueue(r.Context(), req); err != nil {
		h.logger.Error("Failed to enqueue battle request", "error", err, "run_id", runID.String(), "node_id", nodeID)
		return false
	}
	if h.broadcaster != nil {
		if err := h.broadcaster.PublishBattleQueued(r.Context(), runID, req.RequestID, nodeID); err != nil {
			h.logger.Error("Failed to publish queued event", "error", err)
		}
	}
	return true
}

// handleAdvance consumes the current act-transition node: the next act
// is generated, or the run completes victorious on the final one.
func (h *RunsHandler) handleAdvance(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	next, ok := s.AdvanceAct()
	if !ok {
		h.writeError(w, http.StatusConflict, "The party is not standing on an act transition")
		return
	}

	if !h.saveRun(w, r, runID, &next) {
		return
	}

	if next.Status == run.StatusVictorious {
		h.journal(r, runID, journal.New(journal.KindSystem, "the run ended in victory"))
		if h.archive != nil {
			if err := h.archive.ArchiveRun(r.Context(), &next); err != nil {
				h.logger.Error("Failed to archive victorious run", "error", err, "run_id", runID.String())
			}
		}
	} else {
		h.journal(r, runID, journal.New(journal.KindTravel, "entered act %d", next.CurrentAct))
	}

	h.publishUpdate(r, &next)
	h.writeJSON(w, http.StatusOK, &next)
}

// EventChoiceRequest defines the request body for committing an event
// choice. Target picks the party member for single-target effects and
// may be -1 to default to the first living member.
type EventChoiceRequest struct {
	Choice int `json:"choice"`
	Target int `json:"target"`
}

// EventChoiceResponse carries the state after the choice plus the
// resolved outcome: flavor text, applied effects and queued follow-ups.
type EventChoiceResponse struct {
	State  *run.RunState    `json:"state"`
	Result run.ChoiceResult `json:"result"`
}

func (h *RunsHandler) handleEvent(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	var req EventChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	next, result, ok := s.ApplyChoice(req.Choice, req.Target)
	if !ok {
		h.writeError(w, http.StatusConflict, "No unresolved event at the current node")
		return
	}

	if len(result.Pending) > 0 && h.interactions != nil {
		if err := h.interactions.Enqueue(r.Context(), runID, result.Pending...); err != nil {
			// The response still carries the pending list, so the
			// client can realize them via the interact endpoint.
			h.logger.Error("Failed to enqueue pending interactions", "error", err, "run_id", runID.String())
		}
	}

	if !h.saveRun(w, r, runID, &next) {
		return
	}

	entries := h.eventEntries(s, req.Choice, result)
	h.journal(r, runID, entries...)
	h.publishUpdate(r, &next)
	h.writeJSON(w, http.StatusOK, EventChoiceResponse{State: &next, Result: result})
}

// eventEntries narrates a committed event choice.
func (h *RunsHandler) eventEntries(s *run.RunState, choiceIdx int, result run.ChoiceResult) []journal.Entry {
	var entries []journal.Entry
	node, ok := s.CurrentNode()
	if !ok {
		return entries
	}
	if def, ok := content.EventByID(node.EventID); ok && choiceIdx >= 0 && choiceIdx < len(def.Choices) {
		entries = append(entries, journal.New(journal.KindEvent, "%s: chose %q", def.Title, def.Choices[choiceIdx].Label))
	}
	if result.Flavor != "" {
		entries = append(entries, journal.New(journal.KindEvent, "%s", result.Flavor))
	}
	return entries
}

// LevelUpRequest defines the request body for leveling a party member
type LevelUpRequest struct {
	Member int `json:"member"`
}

func (h *RunsHandler) handleLevelUp(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	var req LevelUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	next, ok := s.LevelUpMember(req.Member)
	if !ok {
		h.writeError(w, http.StatusConflict, "Member cannot level up")
		return
	}

	if !h.saveRun(w, r, runID, &next) {
		return
	}

	before := s.Party[req.Member]
	after := next.Party[req.Member]
	entries := []journal.Entry{
		journal.New(journal.KindParty, "%s reached level %d", formName(after.CurrentFormID), after.Level),
	}
	if before.CurrentFormID != after.CurrentFormID {
		entries = append(entries, journal.New(journal.KindParty, "%s evolved into %s",
			formName(before.CurrentFormID), formName(after.CurrentFormID)))
	}
	h.journal(r, runID, entries...)
	h.publishUpdate(r, &next)
	h.writeJSON(w, http.StatusOK, &next)
}

func formName(formID string) string {
	if f, ok := content.FormByID(formID); ok {
		return f.Name
	}
	return formID
}

// PartyActionRequest defines the request body for party management.
// Action selects the operation; the index fields that apply to it must
// be set.
type PartyActionRequest struct {
	Action         string                `json:"action"`
	PartyIndex     int                   `json:"party_index"`
	BenchIndex     int                   `json:"bench_index"`
	GraveyardIndex int                   `json:"graveyard_index"`
	Position       *roster.GridPosition  `json:"position,omitempty"`
	Positions      []roster.GridPosition `json:"positions,omitempty"`
	Fraction       float64               `json:"fraction,omitempty"`
}

func (h *RunsHandler) handleParty(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	var req PartyActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	var next run.RunState
	var applied bool
	var entry journal.Entry

	switch req.Action {
	case "swap":
		next, applied = s.SwapMembers(req.PartyIndex, req.BenchIndex)
		if applied {
			entry = journal.New(journal.KindParty, "%s swapped in for %s",
				formName(next.Party[req.PartyIndex].CurrentFormID),
				formName(next.Bench[req.BenchIndex].CurrentFormID))
		}
	case "promote":
		if req.Position == nil {
			h.writeError(w, http.StatusBadRequest, "position field is required for promote")
			return
		}
		next, applied = s.PromoteMember(req.BenchIndex, *req.Position)
		if applied {
			entry = journal.New(journal.KindParty, "%s joined the party",
				formName(next.Party[len(next.Party)-1].CurrentFormID))
		}
	case "demote":
		next, applied = s.DemoteMember(req.PartyIndex)
		if applied {
			entry = journal.New(journal.KindParty, "%s moved to the bench",
				formName(next.Bench[len(next.Bench)-1].CurrentFormID))
		}
	case "rearrange":
		next, applied = s.RearrangeParty(req.Positions)
		if applied {
			entry = journal.New(journal.KindParty, "the party changed formation")
		}
	case "revive":
		fraction := req.Fraction
		if fraction <= 0 || fraction > 1 {
			fraction = run.DefaultRevivalFraction
		}
		next, applied = s.ReviveMember(req.GraveyardIndex, fraction)
		if applied {
			entry = journal.New(journal.KindParty, "%s returned from the graveyard",
				formName(next.Bench[len(next.Bench)-1].CurrentFormID))
		}
	default:
		h.writeError(w, http.StatusBadRequest, "Unknown party action: "+req.Action)
		return
	}

	if !applied {
		h.writeError(w, http.StatusConflict, "Party action "+req.Action+" is not possible")
		return
	}

	if !h.saveRun(w, r, runID, &next) {
		return
	}

	h.journal(r, runID, entry)
	h.publishUpdate(r, &next)
	h.writeJSON(w, http.StatusOK, &next)
}
