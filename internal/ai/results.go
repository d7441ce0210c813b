package ai

import (
	"fmt"
	"strings"
)

// Initial priority bounds the classifier is instructed to stay within.
const (
	MinInitialPriority = 30
	MaxInitialPriority = 70
)

// TicketAssessment is the typed classification result for a new ticket.
// The advisor is unreliable; every consumer goes through Validate before
// trusting a field.
type TicketAssessment struct {
	ClientAdvice     string `json:"client_advice"`
	EngineerAdvice   string `json:"engineer_advice"`
	VisitProbability int    `json:"engineer_visit_probability"`
	VisitExplanation string `json:"visit_explanation"`
	InitialPriority  int    `json:"initial_priority"`
}

// Validate rejects assessments with missing or out-of-range fields.
func (a *TicketAssessment) Validate() error {
	if a == nil {
		return fmt.Errorf("assessment is nil")
	}
	if strings.TrimSpace(a.ClientAdvice) == "" {
		return fmt.Errorf("assessment missing client advice")
	}
	if a.InitialPriority < MinInitialPriority || a.InitialPriority > MaxInitialPriority {
		return fmt.Errorf("initial priority %d outside [%d,%d]", a.InitialPriority, MinInitialPriority, MaxInitialPriority)
	}
	if a.VisitProbability < 0 || a.VisitProbability > 100 {
		return fmt.Errorf("visit probability %d outside [0,100]", a.VisitProbability)
	}
	return nil
}

// EngineerPick is the typed assignment recommendation.
type EngineerPick struct {
	EngineerID string  `json:"engineer_id"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// Validate rejects picks with a missing id or out-of-range confidence.
// Whether the id refers to a currently active engineer is re-checked by
// the caller against the live pool; a well-formed pick can still be
// stale.
func (p *EngineerPick) Validate() error {
	if p == nil {
		return fmt.Errorf("engineer pick is nil")
	}
	if strings.TrimSpace(p.EngineerID) == "" {
		return fmt.Errorf("engineer pick missing engineer id")
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", p.Confidence)
	}
	return nil
}

// TelecomVerdict is the domain classifier result.
type TelecomVerdict struct {
	IsTelecom bool `json:"is_telecom"`
}
