package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
// Transitions only move forward: new -> in_progress -> done.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusDone       TicketStatus = "done"
)

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID                       string
	TicketCode               string
	ClientID                 string
	EngineerID               *string
	Description              string
	InitialPriority          int
	FinalPriority            int
	EngineerVisitProbability int
	VisitExplanation         string
	ProposedSolutionClient   string
	ProposedSolutionEngineer string
	FinalResolution          *string
	Status                   TicketStatus
	CreatedAt                time.Time
	UpdatedAt                time.Time
	ClosedAt                 *time.Time
}

// Assignable reports whether the ticket may still receive an engineer.
func (t *Ticket) Assignable() bool {
	return t.Status != TicketStatusDone
}
