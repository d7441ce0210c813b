package dto

import (
	"time"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// CreateTicketRequest is the public submission payload.
type CreateTicketRequest struct {
	AccountNumber string `json:"account_number"`
	Description   string `json:"description"`
}

// TicketSummary is the compact ticket representation for lists.
type TicketSummary struct {
	ID               string              `json:"id"`
	TicketCode       string              `json:"ticket_code"`
	ClientID         string              `json:"client_id"`
	EngineerID       *string             `json:"engineer_id,omitempty"`
	Status           domain.TicketStatus `json:"status"`
	InitialPriority  int                 `json:"initial_priority"`
	FinalPriority    int                 `json:"final_priority"`
	VisitProbability int                 `json:"engineer_visit_probability"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// TicketDetailResponse is the full staff-facing ticket view.
type TicketDetailResponse struct {
	ID                       string              `json:"id"`
	TicketCode               string              `json:"ticket_code"`
	ClientID                 string              `json:"client_id"`
	EngineerID               *string             `json:"engineer_id,omitempty"`
	Description              string              `json:"description"`
	InitialPriority          int                 `json:"initial_priority"`
	FinalPriority            int                 `json:"final_priority"`
	VisitProbability         int                 `json:"engineer_visit_probability"`
	VisitExplanation         string              `json:"visit_explanation"`
	ProposedSolutionClient   string              `json:"proposed_solution_client"`
	ProposedSolutionEngineer string              `json:"proposed_solution_engineer"`
	FinalResolution          *string             `json:"final_resolution,omitempty"`
	Status                   domain.TicketStatus `json:"status"`
	CreatedAt                time.Time           `json:"created_at"`
	UpdatedAt                time.Time           `json:"updated_at"`
	ClosedAt                 *time.Time          `json:"closed_at,omitempty"`
}

// CreatedTicketResponse is what the public caller gets back on submit:
// the tracking code, the computed priority, and the advice meant for the
// client. Engineer-facing advice is withheld.
type CreatedTicketResponse struct {
	TicketCode       string              `json:"ticket_code"`
	Status           domain.TicketStatus `json:"status"`
	FinalPriority    int                 `json:"final_priority"`
	VisitProbability int                 `json:"engineer_visit_probability"`
	ClientAdvice     string              `json:"client_advice"`
	CreatedAt        time.Time           `json:"created_at"`
}

// StatusCheckResponse is the public ticket-by-code view.
type StatusCheckResponse struct {
	TicketCode   string              `json:"ticket_code"`
	Status       domain.TicketStatus `json:"status"`
	Description  string              `json:"description"`
	EngineerName *string             `json:"engineer_name,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	ClosedAt     *time.Time          `json:"closed_at,omitempty"`
}

// UpdateTicketStatusRequest advances the lifecycle.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// ResolveTicketRequest records the engineer's final resolution.
type ResolveTicketRequest struct {
	Resolution string `json:"resolution"`
}

// AssignTicketRequest optionally names an engineer; empty means
// most-free selection.
type AssignTicketRequest struct {
	EngineerID string `json:"engineer_id"`
}
