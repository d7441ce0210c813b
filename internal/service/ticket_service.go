package service

import (
	"context"
	"errors"
	"strings"
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

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	clients    repository.ClientRepository
	engineers  repository.EngineerRepository
	priority   *PriorityService
	valuation  *ValuationService
	advisor    *ai.Advisor
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ClientRepo   repository.ClientRepository
	EngineerRepo repository.EngineerRepository
	Priority     *PriorityService
	Valuation    *ValuationService
	Advisor      *ai.Advisor
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		clients:    deps.ClientRepo,
		engineers:  deps.EngineerRepo,
		priority:   deps.Priority,
		valuation:  deps.Valuation,
		advisor:    deps.Advisor,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// TicketCreateInput describes the public submission payload.
type TicketCreateInput struct {
	AccountNumber string
	Description   string
}

// StatusCheck is the public view of a ticket looked up by code. The
// engineer name is exposed only once work has started.
type StatusCheck struct {
	TicketCode   string
	Status       domain.TicketStatus
	Description  string
	EngineerName *string
	CreatedAt    time.Time
	ClosedAt     *time.Time
}

// CreateTicket runs the full submission flow: domain gate, AI
// assessment, priority scoring, insert. A failed or malformed AI
// exchange surfaces as "try again later" and no ticket is created.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	description := strings.TrimSpace(input.Description)
	accountNumber := strings.TrimSpace(input.AccountNumber)
	if description == "" || accountNumber == "" {
		return nil, apperrors.NewValidationError("account_number and description required", nil)
	}

	if !s.advisor.ClassifyTelecom(ctx, description) {
		return nil, apperrors.NewValidationError("described problem is not related to telecom services", nil)
	}

	client, err := s.clients.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"account_number": accountNumber})
		}
		return nil, apperrors.MapError(err)
	}

	resolutions, err := s.tickets.RecentResolutions(ctx, 30)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	visits, err := s.tickets.RecentVisitSamples(ctx, 40)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	assessment, err := s.advisor.AssessTicket(ctx, description, client.Age, resolutions, visits)
	if err != nil {
		return nil, apperrors.NewUnavailable("AI service temporarily unavailable, try again later")
	}

	score, err := s.priority.ScorePriority(ctx, assessment.InitialPriority, client)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		TicketCode:               generateTicketCode(),
		ClientID:                 client.ID,
		Description:              description,
		InitialPriority:          assessment.InitialPriority,
		FinalPriority:            score.FinalPriority,
		EngineerVisitProbability: assessment.VisitProbability,
		VisitExplanation:         assessment.VisitExplanation,
		ProposedSolutionClient:   assessment.ClientAdvice,
		ProposedSolutionEngineer: assessment.EngineerAdvice,
		Status:                   domain.TicketStatusNew,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			TicketCode:    ticket.TicketCode,
			ClientID:      ticket.ClientID,
			FinalPriority: ticket.FinalPriority,
		},
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketScored,
		TicketID: ticket.ID,
		Payload: events.TicketScoredPayload{
			InitialPriority:      ticket.InitialPriority,
			ImportanceMultiplier: score.ImportanceMultiplier,
			FinalPriority:        ticket.FinalPriority,
		},
	})

	return ticket, nil
}

// CheckStatus looks up a ticket by its public code.
func (s *TicketService) CheckStatus(ctx context.Context, ticketCode string) (*StatusCheck, error) {
	ticket, err := s.tickets.GetByCode(ctx, strings.TrimSpace(ticketCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_code": ticketCode})
		}
		return nil, apperrors.MapError(err)
	}

	check := &StatusCheck{
		TicketCode:  ticket.TicketCode,
		Status:      ticket.Status,
		Description: ticket.Description,
		CreatedAt:   ticket.CreatedAt,
		ClosedAt:    ticket.ClosedAt,
	}

	showEngineer := ticket.EngineerID != nil &&
		(ticket.Status == domain.TicketStatusInProgress || ticket.Status == domain.TicketStatusDone)
	if showEngineer {
		name, err := s.engineerName(ctx, *ticket.EngineerID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if name != "" {
			check.EngineerName = &name
		}
	}

	return check, nil
}

// ListDashboard returns tickets in the staff working order.
func (s *TicketService) ListDashboard(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListDashboard(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateStatus advances a ticket along new -> in_progress -> done.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, next domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !isValidTransition(ticket.Status, next) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   next,
		})
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, ticket.Status, next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the conditional update race; current status changed.
			return nil, apperrors.NewConflict("ticket status changed concurrently", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	updated, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: updated.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: ticket.Status,
			NewStatus: next,
		},
	})
	return updated, nil
}

// Resolve records the engineer's final resolution and closes the ticket.
func (s *TicketService) Resolve(ctx context.Context, ticketID, resolution string) (*domain.Ticket, error) {
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return nil, apperrors.NewValidationError("resolution required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.tickets.Resolve(ctx, ticketID, resolution); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("ticket already done", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	updated, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: updated.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: ticket.Status,
			NewStatus: domain.TicketStatusDone,
		},
	})
	return updated, nil
}

func (s *TicketService) engineerName(ctx context.Context, engineerID string) (string, error) {
	engineer, err := s.engineers.GetByID(ctx, engineerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Engineer record removed after assignment; hide rather than fail.
			return "", nil
		}
		return "", err
	}
	return engineer.FullName, nil
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusNew:        {domain.TicketStatusInProgress},
	domain.TicketStatusInProgress: {domain.TicketStatusDone},
	domain.TicketStatusDone:       {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func generateTicketCode() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
