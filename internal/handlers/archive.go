package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/internal/archive"
)

// ArchiveHandler serves the finished-run archive. Records land here
// when a run ends (victory, defeat, or abandonment) and outlive the
// Redis state, which expires.
type ArchiveHandler struct {
	logger *slog.Logger
	store  *archive.Store
}

func NewArchiveHandler(logger *slog.Logger, store *archive.Store) *ArchiveHandler {
	return &ArchiveHandler{
		logger: logger,
		store:  store,
	}
}

func (h *ArchiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/archive"), "/")
	if path == "" {
		h.ListRuns(w, r)
		return
	}
	h.GetRun(w, r, path)
}

func (h *ArchiveHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	records, err := h.store.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list archived runs", "error", err)
		http.Error(w, "Failed to list archived runs", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"runs": records,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *ArchiveHandler) GetRun(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid run ID format", http.StatusBadRequest)
		return
	}

	rec, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get archived run", "run_id", idStr, "error", err)
		http.Error(w, "Failed to get archived run", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.Error(w, "Archived run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
