package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/event"
)

func TestContentHandler_ListSpecies(t *testing.T) {
	handler := NewContentHandler(testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/content/species", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Species []content.Species `json:"species"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Species) == 0 {
		t.Fatal("Expected a non-empty species catalog")
	}

	ids := map[string]bool{}
	for _, s := range resp.Species {
		ids[s.ID] = true
	}
	for _, starter := range content.StarterSpeciesIDs() {
		if !ids[starter] {
			t.Errorf("Starter %s missing from the catalog", starter)
		}
	}
}

func TestContentHandler_GetSpecies(t *testing.T) {
	handler := NewContentHandler(testLogger())

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{
			name:           "known species",
			path:           "/v1/content/species/cindercub",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown species",
			path:           "/v1/content/species/dragonlord",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown content path",
			path:           "/v1/content/cards",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Response body: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/content/species/cindercub", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var species content.Species
	if err := json.NewDecoder(rr.Body).Decode(&species); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if species.ID != "cindercub" {
		t.Errorf("Expected cindercub, got %s", species.ID)
	}
	if len(species.Forms) != 3 {
		t.Errorf("Expected 3 forms, got %d", len(species.Forms))
	}
}

func TestContentHandler_Events(t *testing.T) {
	handler := NewContentHandler(testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/content/events", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Events []event.Definition `json:"events"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Events) == 0 {
		t.Fatal("Expected a non-empty event catalog")
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/content/events/hidden_grove", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var def event.Definition
	if err := json.NewDecoder(rr.Body).Decode(&def); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if def.ID != "hidden_grove" || len(def.Choices) != 2 {
		t.Errorf("Unexpected event definition: %+v", def)
	}
}

func TestContentHandler_MethodNotAllowed(t *testing.T) {
	handler := NewContentHandler(testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/content/species", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}
