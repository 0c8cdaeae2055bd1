package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/internal/archive"
	"github.com/mcamden/wildrun/pkg/run"
)

func archiveFixture(t *testing.T) (*ArchiveHandler, *run.RunState) {
	t.Helper()

	store, err := archive.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	s, err := run.NewRun(7, []string{"sparkvole"})
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}
	s.ID = uuid.New()
	finished := s.Abandon()
	finished.ID = s.ID
	if err := store.ArchiveRun(context.Background(), &finished); err != nil {
		t.Fatalf("Failed to archive run: %v", err)
	}

	return NewArchiveHandler(testLogger(), store), &finished
}

func TestArchiveHandler_List(t *testing.T) {
	handler, archived := archiveFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/archive", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Runs []archive.Record `json:"runs"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Runs) != 1 {
		t.Fatalf("Expected 1 archived run, got %d", len(resp.Runs))
	}
	if resp.Runs[0].ID != archived.ID {
		t.Errorf("Expected run %s, got %s", archived.ID, resp.Runs[0].ID)
	}
	if resp.Runs[0].Status != string(run.StatusAbandoned) {
		t.Errorf("Expected status abandoned, got %s", resp.Runs[0].Status)
	}
}

func TestArchiveHandler_Get(t *testing.T) {
	handler, archived := archiveFixture(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{
			name:           "known run",
			path:           "/v1/archive/" + archived.ID.String(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown run",
			path:           "/v1/archive/" + uuid.New().String(),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			path:           "/v1/archive/not-a-uuid",
			expectedStatus: http.StatusBadRequest,
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

	req := httptest.NewRequest(http.MethodGet, "/v1/archive/"+archived.ID.String(), nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var rec archive.Record
	if err := json.NewDecoder(rr.Body).Decode(&rec); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if rec.ID != archived.ID {
		t.Errorf("Expected run %s, got %s", archived.ID, rec.ID)
	}
	if rec.Seed != archived.Seed {
		t.Errorf("Expected seed %d, got %d", archived.Seed, rec.Seed)
	}
	if len(rec.Party) != 1 {
		t.Errorf("Expected a 1-member party summary, got %d", len(rec.Party))
	}
}

func TestArchiveHandler_MethodNotAllowed(t *testing.T) {
	handler, _ := archiveFixture(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/archive", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}
