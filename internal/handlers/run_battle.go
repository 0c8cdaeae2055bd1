package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/internal/worker"
	"github.com/mcamden/wildrun/pkg/battle"
	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/event"
	"github.com/mcamden/wildrun/pkg/journal"
	"github.com/mcamden/wildrun/pkg/run"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// BattleSyncRequest defines the request body for the battle endpoint.
// With a result attached, the endpoint lands an externally resolved
// battle; without one, the scripted combat service fights it
// synchronously.
type BattleSyncRequest struct {
	Result *battle.Result `json:"result,omitempty"`
}

func (h *RunsHandler) handleBattle(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	var req BattleSyncRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Warn("Invalid JSON in request body", "error", err)
			h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
	}

	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}
	if s.Status != run.StatusActive {
		h.writeError(w, http.StatusConflict, "Run is not active")
		return
	}
	current, ok := s.CurrentNode()
	if !ok || current.Type != worldmap.NodeBattle {
		h.writeError(w, http.StatusConflict, "The party is not standing on a battle node")
		return
	}
	if req.Result != nil && req.Result.NodeID != current.ID {
		h.writeError(w, http.StatusConflict, "Battle result is for node "+req.Result.NodeID+", the party is at "+current.ID)
		return
	}

	var outcome *worker.BattleOutcome
	var err error
	if req.Result != nil {
		outcome, err = h.processor.SyncResult(r.Context(), runID, req.Result)
	} else {
		outcome, err = h.processor.ProcessBattle(r.Context(), runID, current.ID)
	}
	if err != nil {
		h.logger.Error("Failed to resolve battle", "error", err, "run_id", runID.String())
		h.writeError(w, http.StatusInternalServerError, "Failed to resolve battle")
		return
	}

	h.publishUpdate(r, outcome.State)
	h.writeJSON(w, http.StatusOK, outcome)
}

// InteractRequest defines the request body for realizing one pending
// interactive effect. The interaction payload comes from a drained
// pending list (or the event response). Skip discards it.
type InteractRequest struct {
	Action      string                  `json:"action"`
	Interaction *run.PendingInteraction `json:"interaction"`

	// CardIDs are the draft picks for epic_draft and shop_draft.
	CardIDs []string `json:"card_ids,omitempty"`

	// DeckIndices pick deck cards for remove_cards and clone_card.
	DeckIndices []int `json:"deck_indices,omitempty"`

	// TargetIndex overrides the interaction's resolved member target.
	TargetIndex *int `json:"target_index,omitempty"`
}

// InteractResponse carries the state after the interaction landed.
type InteractResponse struct {
	State *run.RunState `json:"state"`
}

func (h *RunsHandler) handleInteract(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	var req InteractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Interaction == nil {
		h.writeError(w, http.StatusBadRequest, "interaction field is required")
		return
	}
	if !req.Interaction.Effect.Interactive() {
		h.writeError(w, http.StatusBadRequest, "Effect "+string(req.Interaction.Effect.Type)+" is not interactive")
		return
	}

	s, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	if req.Action == "skip" {
		h.writeJSON(w, http.StatusOK, InteractResponse{State: s})
		return
	}
	if req.Action != "resolve" {
		h.writeError(w, http.StatusBadRequest, "action must be resolve or skip")
		return
	}

	next, text, err := realizeInteraction(*s, *req.Interaction, req)
	if err != nil {
		h.writeError(w, http.StatusConflict, err.Error())
		return
	}

	if !h.saveRun(w, r, runID, &next) {
		return
	}

	h.journal(r, runID, journal.New(journal.KindEvent, "%s", text))
	h.publishUpdate(r, &next)
	h.writeJSON(w, http.StatusOK, InteractResponse{State: &next})
}

// realizeInteraction lands one pending interactive effect on the run,
// returning the new state and a journal line.
func realizeInteraction(s run.RunState, p run.PendingInteraction, req InteractRequest) (run.RunState, string, error) {
	target := p.TargetIndex
	if req.TargetIndex != nil {
		target = *req.TargetIndex
	}

	switch p.Effect.Type {
	case event.EffectRemoveCards:
		next, ok := s.RemoveMemberCards(target, req.DeckIndices, p.Effect.Amount)
		if !ok {
			return s, "", fmt.Errorf("invalid card removal")
		}
		removed := len(req.DeckIndices)
		if removed > p.Effect.Amount {
			removed = p.Effect.Amount
		}
		return next, fmt.Sprintf("%s let go of %d cards", memberLabel(next, target), removed), nil

	case event.EffectEpicDraft:
		return draftCards(s, target, req.CardIDs, p.Effect.Amount, content.EpicPool(), false)

	case event.EffectShopDraft:
		return draftCards(s, target, req.CardIDs, p.Effect.Amount, content.ShopPool(), true)

	case event.EffectCloneCard:
		if len(req.DeckIndices) != 1 {
			return s, "", fmt.Errorf("clone_card needs exactly one deck index")
		}
		idx := req.DeckIndices[0]
		next, ok := s.CloneMemberCard(target, idx)
		if !ok {
			return s, "", fmt.Errorf("invalid clone pick")
		}
		return next, fmt.Sprintf("%s cloned %s", memberLabel(next, target), cardName(s.Party[target].Deck[idx])), nil

	case event.EffectRecruit:
		next, ok := s.Recruit(p.Effect.SpeciesID)
		if !ok {
			return s, "", fmt.Errorf("the bench is full")
		}
		return next, fmt.Sprintf("%s joined the bench", formName(next.Bench[len(next.Bench)-1].CurrentFormID)), nil
	}

	return s, "", fmt.Errorf("effect %s is not interactive", p.Effect.Type)
}

// draftCards applies up to limit picks from the offered pool, paying
// shop prices when buying.
func draftCards(s run.RunState, target int, picks []string, limit int, pool []string, buy bool) (run.RunState, string, error) {
	if len(picks) == 0 {
		return s, "", fmt.Errorf("no cards picked")
	}
	if len(picks) > limit {
		return s, "", fmt.Errorf("at most %d picks allowed", limit)
	}
	offered := make(map[string]bool, len(pool))
	for _, id := range pool {
		offered[id] = true
	}

	next := s
	for _, id := range picks {
		if !offered[id] {
			return s, "", fmt.Errorf("card %s is not offered", id)
		}
		var ok bool
		if buy {
			next, ok = next.BuyCard(target, id)
			if !ok {
				return s, "", fmt.Errorf("cannot afford %s", id)
			}
		} else {
			next, ok = next.AddCardToMember(target, id)
			if !ok {
				return s, "", fmt.Errorf("invalid draft pick %s", id)
			}
		}
	}

	verb := "drafted"
	if buy {
		verb = "bought"
	}
	return next, fmt.Sprintf("%s %s %s", memberLabel(next, target), verb, cardList(picks)), nil
}

func memberLabel(s run.RunState, idx int) string {
	if idx >= 0 && idx < len(s.Party) {
		return formName(s.Party[idx].CurrentFormID)
	}
	return "the party"
}

func cardName(cardID string) string {
	if c, ok := content.CardByID(cardID); ok {
		return c.Name
	}
	return cardID
}

func cardList(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += cardName(id)
	}
	return out
}

// PendingResponse lists drained interactions. Once drained they are
// the client's to realize or skip via the interact endpoint.
type PendingResponse struct {
	Pending []run.PendingInteraction `json:"pending"`
}

func (h *RunsHandler) handlePending(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	if _, ok := h.loadRun(w, r, runID); !ok {
		return
	}

	pending := []run.PendingInteraction{}
	if h.interactions != nil {
		drained, err := h.interactions.Drain(r.Context(), runID)
		if err != nil {
			h.logger.Error("Failed to drain pending interactions", "error", err, "run_id", runID.String())
			h.writeError(w, http.StatusInternalServerError, "Failed to drain pending interactions")
			return
		}
		pending = drained
	}

	h.writeJSON(w, http.StatusOK, PendingResponse{Pending: pending})
}

// JournalResponse lists a run's journal entries in write order.
type JournalResponse struct {
	Entries []journal.Entry `json:"entries"`
}

func (h *RunsHandler) handleJournal(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	if _, ok := h.loadRun(w, r, runID); !ok {
		return
	}

	entries, err := h.storage.LoadJournal(r.Context(), runID)
	if err != nil {
		h.logger.Error("Failed to load journal", "error", err, "run_id", runID.String())
		h.writeError(w, http.StatusInternalServerError, "Failed to load journal")
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}

	h.writeJSON(w, http.StatusOK, JournalResponse{Entries: entries})
}
