package events

import (
	"time"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketScored        EventType = "ticket_scored"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketCode    string `json:"ticket_code"`
	ClientID      string `json:"client_id"`
	FinalPriority int    `json:"final_priority"`
}

// TicketScoredPayload payload.
type TicketScoredPayload struct {
	InitialPriority      int     `json:"initial_priority"`
	ImportanceMultiplier float64 `json:"importance_multiplier"`
	FinalPriority        int     `json:"final_priority"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	EngineerID string `json:"engineer_id"`
	Advised    bool   `json:"advised"`
	Reason     string `json:"reason,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}
