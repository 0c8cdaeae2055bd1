package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcamden/wildrun/pkg/content"
)

// ContentHandler serves the compiled content catalog: species with
// their form chains, and event definitions. The catalog is static,
// so there is no storage behind these routes.
type ContentHandler struct {
	logger *slog.Logger
}

func NewContentHandler(logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		logger: logger,
	}
}

func (h *ContentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/content"), "/")
	switch {
	case path == "species":
		h.ListSpecies(w, r)
	case strings.HasPrefix(path, "species/"):
		h.GetSpecies(w, r, strings.TrimPrefix(path, "species/"))
	case path == "events":
		h.ListEvents(w, r)
	case strings.HasPrefix(path, "events/"):
		h.GetEvent(w, r, strings.TrimPrefix(path, "events/"))
	default:
		http.Error(w, "Unknown content path", http.StatusNotFound)
	}
}

func (h *ContentHandler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"species": content.AllSpecies(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *ContentHandler) GetSpecies(w http.ResponseWriter, r *http.Request, speciesID string) {
	speciesID = strings.TrimSpace(speciesID)
	if speciesID == "" || strings.Contains(speciesID, "/") {
		http.Error(w, "Invalid species ID", http.StatusBadRequest)
		return
	}

	species, ok := content.SpeciesByID(speciesID)
	if !ok {
		http.Error(w, "Species not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(species); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"events": content.AllEvents(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *ContentHandler) GetEvent(w http.ResponseWriter, r *http.Request, eventID string) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" || strings.Contains(eventID, "/") {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	def, ok := content.EventByID(eventID)
	if !ok {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(def); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
