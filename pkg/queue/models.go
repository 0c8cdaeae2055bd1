package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcamden/wildrun/pkg/run"
)

// RequestType identifies the type of request in the queue
type RequestType string

const (
	// RequestTypeBattle asks the battle worker to resolve a battle node.
	RequestTypeBattle RequestType = "battle"

	// RequestTypeInteraction is a deferred interactive event effect
	// waiting on the player's follow-up choice.
	RequestTypeInteraction RequestType = "interaction"
)

// Request represents a unified request in the queue
type Request struct {
	RequestID string      `json:"request_id"`
	Type      RequestType `json:"type"`
	RunID     uuid.UUID   `json:"run_id"`

	// Battle-specific fields
	NodeID string `json:"node_id,omitempty"`

	// Interaction-specific fields
	Interaction *run.PendingInteraction `json:"interaction,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Validate checks that the request carries the payload its type needs.
func (r *Request) Validate() error {
	if r.RequestID == "" {
		return fmt.Errorf("request_id is required")
	}
	if r.RunID == uuid.Nil {
		return fmt.Errorf("run_id is required")
	}
	switch r.Type {
	case RequestTypeBattle:
		if r.NodeID == "" {
			return fmt.Errorf("battle request requires node_id")
		}
	case RequestTypeInteraction:
		if r.Interaction == nil {
			return fmt.Errorf("interaction request requires an interaction payload")
		}
	default:
		return fmt.Errorf("unknown request type %q", r.Type)
	}
	return nil
}

// MarshalJSON serializes the request to JSON for Redis storage
func (r *Request) MarshalJSON() ([]byte, error) {
	type Alias Request
	return json.Marshal(&struct {
		RunID string `json:"run_id"`
		*Alias
	}{
		RunID: r.RunID.String(),
		Alias: (*Alias)(r),
	})
}

// UnmarshalJSON deserializes the request from JSON in Redis
func (r *Request) UnmarshalJSON(data []byte) error {
	type Alias Request
	aux := &struct {
		RunID string `json:"run_id"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	runID, err := uuid.Parse(aux.RunID)
	if err != nil {
		return err
	}

	r.RunID = runID
	return nil
}

// ToJSON converts the request to JSON bytes for Redis
func (r *Request) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// FromJSON parses a request from JSON bytes
func FromJSON(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
