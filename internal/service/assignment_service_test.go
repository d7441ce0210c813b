package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-support/internal/ai"
	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/events"
	apperrors "github.com/spec-kit/telecom-support/pkg/util"
)

type scriptedCompleter struct {
	responses []string
	err       error
}

func (s *scriptedCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func newAssignmentFixture(completer ai.Completer) (*AssignmentService, *fakeTicketRepo, *fakeEngineerRepo, *fakeClientRepo) {
	tickets := newFakeTicketRepo()
	engineers := newFakeEngineerRepo()
	clients := newFakeClientRepo()
	advisor := ai.NewAdvisor(completer, nil, 0, zap.NewNop())
	svc := NewAssignmentService(AssignmentDependencies{
		TicketRepo:   tickets,
		EngineerRepo: engineers,
		ClientRepo:   clients,
		Advisor:      advisor,
		Dispatcher:   events.NewInMemoryDispatcher(),
		Logger:       zap.NewNop(),
	})
	return svc, tickets, engineers, clients
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr.Code
}

func TestMostFreeEngineerNoneActive(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture(&scriptedCompleter{})
	engineer, err := svc.MostFreeEngineer(context.Background())
	require.NoError(t, err)
	require.Nil(t, engineer)
}

func TestMostFreeEngineerPicksLowestLoad(t *testing.T) {
	svc, _, engineers, _ := newAssignmentFixture(&scriptedCompleter{})
	engineers.addWithLoad(domain.Engineer{ID: "e-1", FullName: "Dana", IsActive: true}, 3)
	engineers.addWithLoad(domain.Engineer{ID: "e-2", FullName: "Kim", IsActive: true}, 1)

	engineer, err := svc.MostFreeEngineer(context.Background())
	require.NoError(t, err)
	require.Equal(t, "e-2", engineer.ID)
}

func TestAssignEngineerInactiveRejected(t *testing.T) {
	svc, tickets, engineers, _ := newAssignmentFixture(&scriptedCompleter{})
	engineers.addWithLoad(domain.Engineer{ID: "e-1", FullName: "Dana", IsActive: false}, 0)
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Status: domain.TicketStatusNew}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	_, err := svc.AssignEngineer(context.Background(), ticket.ID, "e-1")
	require.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestAssignEngineerDoneTicketRejected(t *testing.T) {
	svc, tickets, engineers, _ := newAssignmentFixture(&scriptedCompleter{})
	engineers.addWithLoad(domain.Engineer{ID: "e-1", FullName: "Dana", IsActive: true}, 0)
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Status: domain.TicketStatusDone}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	_, err := svc.AssignEngineer(context.Background(), ticket.ID, "e-1")
	require.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestAssignEngineerAdvancesStatus(t *testing.T) {
	svc, tickets, engineers, _ := newAssignmentFixture(&scriptedCompleter{})
	engineers.addWithLoad(domain.Engineer{ID: "e-1", FullName: "Dana", IsActive: true}, 0)
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Status: domain.TicketStatusNew}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	updated, err := svc.AssignEngineer(context.Background(), ticket.ID, "e-1")
	require.NoError(t, err)
	require.NotNil(t, updated.EngineerID)
	require.Equal(t, "e-1", *updated.EngineerID)
	require.Equal(t, domain.TicketStatusInProgress, updated.Status)
}

func TestAutoAssignLeavesTicketUnassignedWithoutEngineers(t *testing.T) {
	svc, tickets, _, _ := newAssignmentFixture(&scriptedCompleter{})
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Status: domain.TicketStatusNew}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	updated, err := svc.AutoAssign(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Nil(t, updated.EngineerID)
	require.Equal(t, domain.TicketStatusNew, updated.Status)
}

func TestAssignWithAdvisorCommitsValidPick(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"engineer_id":"e-2","reason":"matching past work","confidence":0.9}`,
	}}
	svc, tickets, engineers, clients := newAssignmentFixture(completer)
	clients.add(domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001", Age: 40}, decimal.Zero)
	engineers.addWithLoad(domain.Engineer{ID: "e-1", FullName: "Dana", IsActive: true}, 2)
	engineers.addWithLoad(domain.Engineer{ID: "e-2", FullName: "Kim", IsActive: true}, 4)
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Description: "no internet", Status: domain.TicketStatusNew}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	updated, err := svc.AssignWithAdvisor(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.EngineerID)
	require.Equal(t, "e-2", *updated.EngineerID)
	require.Equal(t, domain.TicketStatusInProgress, updated.Status)
}

func TestAssignWithAdvisorRejectsUnknownPick(t *testing.T) {
	// The advisor names an engineer outside the active pool. The pick is
	// rejected, the ticket stays unassigned, and there is no silent
	// fallback to most-free selection.
	completer := &scriptedCompleter{responses: []string{
		`{"engineer_id":"e-99","reason":"hallucinated","confidence":0.9}`,
	}}
	svc, tickets, engineers, clients := newAssignmentFixture(completer)
	clients.add(domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001"}, decimal.Zero)
	engineers.addWithLoad(domain.Engineer{ID: "e-1", FullName: "Dana", IsActive: true}, 0)
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Description: "no internet", Status: domain.TicketStatusNew}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	_, err := svc.AssignWithAdvisor(context.Background(), ticket.ID)
	require.Equal(t, "CONFLICT", domainCode(t, err))

	stored, err := tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Nil(t, stored.EngineerID)
}

func TestAssignWithAdvisorDegradesOnFailure(t *testing.T) {
	completer := &scriptedCompleter{err: errors.New("timeout")}
	svc, tickets, engineers, clients := newAssignmentFixture(completer)
	clients.add(domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001"}, decimal.Zero)
	engineers.addWithLoad(domain.Engineer{ID: "e-1", FullName: "Dana", IsActive: true}, 0)
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Description: "no internet", Status: domain.TicketStatusNew}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	_, err := svc.AssignWithAdvisor(context.Background(), ticket.ID)
	require.Equal(t, "SERVICE_UNAVAILABLE", domainCode(t, err))

	stored, err := tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Nil(t, stored.EngineerID)
}

func TestAssignWithAdvisorNoActiveEngineers(t *testing.T) {
	svc, tickets, _, clients := newAssignmentFixture(&scriptedCompleter{})
	clients.add(domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001"}, decimal.Zero)
	ticket := &domain.Ticket{TicketCode: "TCK-1", ClientID: "c-1", Description: "no internet", Status: domain.TicketStatusNew}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	_, err := svc.AssignWithAdvisor(context.Background(), ticket.ID)
	require.Equal(t, "CONFLICT", domainCode(t, err))
}
