package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-support/internal/ai"
	"github.com/spec-kit/telecom-support/internal/config"
	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/events"
	"github.com/spec-kit/telecom-support/internal/observability"
)

type ticketFixture struct {
	svc       *TicketService
	tickets   *fakeTicketRepo
	clients   *fakeClientRepo
	engineers *fakeEngineerRepo
	subs      *fakeSubscriptionRepo
}

func newTicketFixture(completer ai.Completer) *ticketFixture {
	tickets := newFakeTicketRepo()
	clients := newFakeClientRepo()
	engineers := newFakeEngineerRepo()
	subs := newFakeSubscriptionRepo()
	advisor := ai.NewAdvisor(completer, nil, 0, zap.NewNop())

	valuation := NewValuationService(clients, config.ScoringConfig{})
	priority := NewPriorityService(valuation, subs, observability.NewMetrics())

	svc := NewTicketService(TicketDependencies{
		TicketRepo:   tickets,
		ClientRepo:   clients,
		EngineerRepo: engineers,
		Priority:     priority,
		Valuation:    valuation,
		Advisor:      advisor,
		Dispatcher:   events.NewInMemoryDispatcher(),
		Logger:       zap.NewNop(),
	})
	return &ticketFixture{svc: svc, tickets: tickets, clients: clients, engineers: engineers, subs: subs}
}

const validAssessment = `{"client_advice":"restart the router","engineer_advice":"check the line","engineer_visit_probability":40,"visit_explanation":"likely remote fix","initial_priority":50}`

func TestCreateTicketHappyPath(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{responses: []string{
		`{"is_telecom": true}`,
		validAssessment,
	}})
	fx.clients.add(domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001", Age: 34}, decimal.Zero)

	ticket, err := fx.svc.CreateTicket(context.Background(), TicketCreateInput{
		AccountNumber: "100001",
		Description:   "internet keeps dropping",
	})
	require.NoError(t, err)
	require.NotEmpty(t, ticket.ID)
	require.NotEmpty(t, ticket.TicketCode)
	require.Equal(t, domain.TicketStatusNew, ticket.Status)
	require.Equal(t, 50, ticket.InitialPriority)
	// Sole zero-spend client: 50 * 1.10 = 55.
	require.Equal(t, 55, ticket.FinalPriority)
	require.Equal(t, "restart the router", ticket.ProposedSolutionClient)
	require.Equal(t, 40, ticket.EngineerVisitProbability)
}

func TestCreateTicketRejectsNonTelecom(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{responses: []string{
		`{"is_telecom": false}`,
	}})
	fx.clients.add(domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001"}, decimal.Zero)

	_, err := fx.svc.CreateTicket(context.Background(), TicketCreateInput{
		AccountNumber: "100001",
		Description:   "my cat climbed a tree",
	})
	require.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	require.Empty(t, fx.tickets.tickets)
}

func TestCreateTicketUnknownAccount(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{responses: []string{
		`{"is_telecom": true}`,
	}})

	_, err := fx.svc.CreateTicket(context.Background(), TicketCreateInput{
		AccountNumber: "999999",
		Description:   "internet keeps dropping",
	})
	require.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestCreateTicketAdvisorDownNoTicket(t *testing.T) {
	// The classifier fails open, but a failed assessment must refuse the
	// submission instead of storing a half-scored ticket.
	fx := newTicketFixture(&scriptedCompleter{responses: []string{
		`{"is_telecom": true}`,
		`not json at all`,
	}})
	fx.clients.add(domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001"}, decimal.Zero)

	_, err := fx.svc.CreateTicket(context.Background(), TicketCreateInput{
		AccountNumber: "100001",
		Description:   "internet keeps dropping",
	})
	require.Equal(t, "SERVICE_UNAVAILABLE", domainCode(t, err))
	require.Empty(t, fx.tickets.tickets)
}

func TestCreateTicketValidatesInput(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{})
	_, err := fx.svc.CreateTicket(context.Background(), TicketCreateInput{Description: "  "})
	require.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestCheckStatusHidesEngineerBeforeWorkStarts(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{})
	engineerID := "e-1"
	fx.engineers.addWithLoad(domain.Engineer{ID: engineerID, FullName: "Dana", IsActive: true}, 0)
	ticket := &domain.Ticket{
		TicketCode:  "TCK-ABCD1234",
		ClientID:    "c-1",
		Description: "no dial tone",
		EngineerID:  &engineerID,
		Status:      domain.TicketStatusNew,
	}
	require.NoError(t, fx.tickets.Create(context.Background(), ticket))

	check, err := fx.svc.CheckStatus(context.Background(), "TCK-ABCD1234")
	require.NoError(t, err)
	require.Nil(t, check.EngineerName)
}

func TestCheckStatusShowsEngineerInProgress(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{})
	engineerID := "e-1"
	fx.engineers.addWithLoad(domain.Engineer{ID: engineerID, FullName: "Dana", IsActive: true}, 0)
	ticket := &domain.Ticket{
		TicketCode:  "TCK-ABCD1234",
		ClientID:    "c-1",
		Description: "no dial tone",
		EngineerID:  &engineerID,
		Status:      domain.TicketStatusInProgress,
	}
	require.NoError(t, fx.tickets.Create(context.Background(), ticket))

	check, err := fx.svc.CheckStatus(context.Background(), "TCK-ABCD1234")
	require.NoError(t, err)
	require.NotNil(t, check.EngineerName)
	require.Equal(t, "Dana", *check.EngineerName)
}

func TestCheckStatusUnknownCode(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{})
	_, err := fx.svc.CheckStatus(context.Background(), "TCK-MISSING1")
	require.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{})
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Status: domain.TicketStatusNew}
	require.NoError(t, fx.tickets.Create(context.Background(), ticket))

	// new -> done skips in_progress and is rejected.
	_, err := fx.svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusDone)
	require.Equal(t, "CONFLICT", domainCode(t, err))

	updated, err := fx.svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusInProgress, updated.Status)

	updated, err = fx.svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusDone)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusDone, updated.Status)
	require.NotNil(t, updated.ClosedAt)

	// done is terminal.
	_, err = fx.svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusInProgress)
	require.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestResolveClosesTicket(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{})
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Status: domain.TicketStatusInProgress}
	require.NoError(t, fx.tickets.Create(context.Background(), ticket))

	resolved, err := fx.svc.Resolve(context.Background(), ticket.ID, "replaced the faulty modem")
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusDone, resolved.Status)
	require.NotNil(t, resolved.FinalResolution)
	require.Equal(t, "replaced the faulty modem", *resolved.FinalResolution)
	require.NotNil(t, resolved.ClosedAt)
}

func TestResolveRequiresText(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{})
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Status: domain.TicketStatusInProgress}
	require.NoError(t, fx.tickets.Create(context.Background(), ticket))

	_, err := fx.svc.Resolve(context.Background(), ticket.ID, "   ")
	require.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestResolveAlreadyDone(t *testing.T) {
	fx := newTicketFixture(&scriptedCompleter{})
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Status: domain.TicketStatusDone}
	require.NoError(t, fx.tickets.Create(context.Background(), ticket))

	_, err := fx.svc.Resolve(context.Background(), ticket.ID, "done twice")
	require.Equal(t, "CONFLICT", domainCode(t, err))
}
