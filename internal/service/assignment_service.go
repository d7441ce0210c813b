package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-support/internal/ai"
	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/events"
	"github.com/spec-kit/telecom-support/internal/repository"
	apperrors "github.com/spec-kit/telecom-support/pkg/util"
)

// AssignmentService selects and commits an engineer for a ticket.
type AssignmentService struct {
	tickets    repository.TicketRepository
	engineers  repository.EngineerRepository
	clients    repository.ClientRepository
	advisor    *ai.Advisor
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	TicketRepo   repository.TicketRepository
	EngineerRepo repository.EngineerRepository
	ClientRepo   repository.ClientRepository
	Advisor      *ai.Advisor
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:    deps.TicketRepo,
		engineers:  deps.EngineerRepo,
		clients:    deps.ClientRepo,
		advisor:    deps.Advisor,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// MostFreeEngineer returns the active engineer with the fewest open
// tickets, or nil when no engineer is active. Callers must treat nil as
// "leave unassigned" — it is a normal outcome, not an error. Ties break
// deterministically by creation time then id.
func (s *AssignmentService) MostFreeEngineer(ctx context.Context) (*domain.Engineer, error) {
	loads, err := s.engineers.ListActiveWithLoad(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(loads) == 0 {
		return nil, nil
	}
	best := loads[0]
	for _, load := range loads[1:] {
		if load.ActiveTickets < best.ActiveTickets {
			best = load
		}
	}
	engineer := best.Engineer
	return &engineer, nil
}

// AssignEngineer commits an explicit engineer to a ticket. The store's
// conditional update enforces the status guard, so two concurrent
// assignments cannot both slip past a done transition.
func (s *AssignmentService) AssignEngineer(ctx context.Context, ticketID, engineerID string) (*domain.Ticket, error) {
	engineer, err := s.engineers.GetByID(ctx, engineerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("engineer", map[string]any{"engineer_id": engineerID})
		}
		return nil, apperrors.MapError(err)
	}
	if !engineer.IsActive {
		return nil, apperrors.NewConflict("engineer inactive", map[string]any{"engineer_id": engineerID})
	}

	if err := s.tickets.AssignEngineer(ctx, ticketID, engineerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("ticket missing or already done", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishAssigned(ctx, ticket.ID, engineerID, false, "")
	return ticket, nil
}

// AutoAssign assigns the most-free engineer. A ticket with no available
// engineer stays unassigned and is returned as-is.
func (s *AssignmentService) AutoAssign(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	engineer, err := s.MostFreeEngineer(ctx)
	if err != nil {
		return nil, err
	}
	if engineer == nil {
		s.logger.Info("no active engineer available; leaving ticket unassigned", zap.String("ticket_id", ticketID))
		ticket, err := s.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return ticket, nil
	}
	return s.AssignEngineer(ctx, ticketID, engineer.ID)
}

// AssignWithAdvisor asks the AI collaborator for a ranked recommendation
// and commits it only after re-validating the suggested id against the
// currently active pool. A stale, inactive, or hallucinated id rejects
// the suggestion and leaves the ticket unassigned with an error
// surfaced to the caller; it never silently falls back to the simple
// form. Advisor failure or timeout degrades the same way.
func (s *AssignmentService) AssignWithAdvisor(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !ticket.Assignable() {
		return nil, apperrors.NewConflict("ticket already done", map[string]any{"ticket_id": ticketID})
	}

	client, err := s.clients.GetByID(ctx, ticket.ClientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	loads, err := s.engineers.ListActiveWithLoad(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(loads) == 0 {
		return nil, apperrors.NewConflict("no active engineers", nil)
	}

	candidates := make([]ai.EngineerCandidate, 0, len(loads))
	activeIDs := make(map[string]struct{}, len(loads))
	for _, load := range loads {
		activeIDs[load.Engineer.ID] = struct{}{}
		resolved, err := s.tickets.RecentResolutionsByEngineer(ctx, load.Engineer.ID, 5)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		past := make([]string, 0, len(resolved))
		for _, sample := range resolved {
			past = append(past, sample.Description)
		}
		candidates = append(candidates, ai.EngineerCandidate{
			EngineerID:    load.Engineer.ID,
			FullName:      load.Engineer.FullName,
			ActiveTickets: load.ActiveTickets,
			PastResolved:  past,
		})
	}

	pick, err := s.advisor.PickEngineer(ctx, ticket.Description, client.Age, candidates)
	if err != nil {
		return nil, apperrors.NewUnavailable("engineer recommendation unavailable, try again later")
	}

	if _, ok := activeIDs[pick.EngineerID]; !ok {
		s.logger.Warn("advisor suggested unknown or inactive engineer",
			zap.String("ticket_id", ticketID),
			zap.String("engineer_id", pick.EngineerID),
			zap.Float64("confidence", pick.Confidence))
		return nil, apperrors.NewConflict("suggested engineer not active", map[string]any{
			"engineer_id": pick.EngineerID,
		})
	}

	if err := s.tickets.AssignEngineer(ctx, ticketID, pick.EngineerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("ticket missing or already done", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	updated, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishAssigned(ctx, updated.ID, pick.EngineerID, true, pick.Reason)
	return updated, nil
}

func (s *AssignmentService) publishAssigned(ctx context.Context, ticketID, engineerID string, advised bool, reason string) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketAssigned,
		TicketID:  ticketID,
		Timestamp: time.Now(),
		Payload: events.TicketAssignedPayload{
			EngineerID: engineerID,
			Advised:    advised,
			Reason:     reason,
		},
	}
	_ = s.dispatcher.Publish(ctx, event)
}
