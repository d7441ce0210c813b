package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/repository"
)

type fakeTicketRepo struct {
	tickets     map[string]*domain.Ticket
	seq         int
	resolutions []repository.ResolutionSample
	visits      []repository.VisitSample
	byEngineer  map[string][]repository.ResolutionSample
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:    make(map[string]*domain.Ticket),
		byEngineer: make(map[string][]repository.ResolutionSample),
	}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("t-%d", r.seq)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	stored, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeTicketRepo) GetByCode(_ context.Context, code string) (*domain.Ticket, error) {
	for _, stored := range r.tickets {
		if stored.TicketCode == code {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListDashboard(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, stored := range r.tickets {
		result = append(result, *stored)
	}
	return result, nil
}

func (r *fakeTicketRepo) AssignEngineer(_ context.Context, ticketID, engineerID string) error {
	stored, ok := r.tickets[ticketID]
	if !ok || stored.Status == domain.TicketStatusDone {
		return pgx.ErrNoRows
	}
	stored.EngineerID = &engineerID
	if stored.Status == domain.TicketStatusNew {
		stored.Status = domain.TicketStatusInProgress
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, ticketID string, current, next domain.TicketStatus) error {
	stored, ok := r.tickets[ticketID]
	if !ok || stored.Status != current {
		return pgx.ErrNoRows
	}
	stored.Status = next
	if next == domain.TicketStatusDone {
		now := time.Now()
		stored.ClosedAt = &now
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) Resolve(_ context.Context, ticketID, resolution string) error {
	stored, ok := r.tickets[ticketID]
	if !ok || stored.Status == domain.TicketStatusDone {
		return pgx.ErrNoRows
	}
	stored.FinalResolution = &resolution
	stored.Status = domain.TicketStatusDone
	now := time.Now()
	stored.ClosedAt = &now
	stored.UpdatedAt = now
	return nil
}

func (r *fakeTicketRepo) RecentResolutions(_ context.Context, _ int) ([]repository.ResolutionSample, error) {
	return r.resolutions, nil
}

func (r *fakeTicketRepo) RecentVisitSamples(_ context.Context, _ int) ([]repository.VisitSample, error) {
	return r.visits, nil
}

func (r *fakeTicketRepo) RecentResolutionsByEngineer(_ context.Context, engineerID string, _ int) ([]repository.ResolutionSample, error) {
	return r.byEngineer[engineerID], nil
}

type fakeClientRepo struct {
	clients map[string]*domain.Client
	spends  map[string]decimal.Decimal
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients: make(map[string]*domain.Client),
		spends:  make(map[string]decimal.Decimal),
	}
}

func (r *fakeClientRepo) add(client domain.Client, spend decimal.Decimal) {
	r.clients[client.ID] = &client
	r.spends[client.ID] = spend
}

func (r *fakeClientRepo) Create(_ context.Context, client *domain.Client) error {
	client.ID = fmt.Sprintf("c-%d", len(r.clients)+1)
	client.AccountNumber = fmt.Sprintf("%d", 100000+len(r.clients)+1)
	client.CreatedAt = time.Now()
	r.add(*client, decimal.Zero)
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *client
	return &clone, nil
}

func (r *fakeClientRepo) GetByAccountNumber(_ context.Context, accountNumber string) (*domain.Client, error) {
	for _, client := range r.clients {
		if client.AccountNumber == accountNumber {
			clone := *client
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeClientRepo) List(_ context.Context, _, _ int) ([]domain.Client, error) {
	result := make([]domain.Client, 0, len(r.clients))
	for _, client := range r.clients {
		result = append(result, *client)
	}
	return result, nil
}

func (r *fakeClientRepo) SpendTotals(_ context.Context) ([]repository.ClientSpend, error) {
	result := make([]repository.ClientSpend, 0, len(r.spends))
	for id, total := range r.spends {
		result = append(result, repository.ClientSpend{ClientID: id, Total: total})
	}
	return result, nil
}

func (r *fakeClientRepo) SpendTotal(_ context.Context, clientID string) (decimal.Decimal, error) {
	return r.spends[clientID], nil
}

type fakeSubscriptionRepo struct {
	subs map[string][]domain.ClientService
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string][]domain.ClientService)}
}

func (r *fakeSubscriptionRepo) add(clientID string, serviceType domain.ServiceType, price decimal.Decimal) {
	r.subs[clientID] = append(r.subs[clientID], domain.ClientService{
		ID:           fmt.Sprintf("s-%d", len(r.subs[clientID])+1),
		ClientID:     clientID,
		ServiceType:  serviceType,
		ServicePrice: price,
	})
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *domain.ClientService) error {
	r.subs[sub.ClientID] = append(r.subs[sub.ClientID], *sub)
	return nil
}

func (r *fakeSubscriptionRepo) ListByClient(_ context.Context, clientID string) ([]domain.ClientService, error) {
	return r.subs[clientID], nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, _ string) error {
	return nil
}

type fakeEngineerRepo struct {
	engineers map[string]*domain.Engineer
	loads     []domain.EngineerLoad
}

func newFakeEngineerRepo() *fakeEngineerRepo {
	return &fakeEngineerRepo{engineers: make(map[string]*domain.Engineer)}
}

func (r *fakeEngineerRepo) addWithLoad(engineer domain.Engineer, activeTickets int) {
	r.engineers[engineer.ID] = &engineer
	if engineer.IsActive {
		r.loads = append(r.loads, domain.EngineerLoad{Engineer: engineer, ActiveTickets: activeTickets})
	}
}

func (r *fakeEngineerRepo) Create(_ context.Context, engineer *domain.Engineer) error {
	engineer.ID = fmt.Sprintf("e-%d", len(r.engineers)+1)
	engineer.CreatedAt = time.Now()
	r.engineers[engineer.ID] = engineer
	return nil
}

func (r *fakeEngineerRepo) GetByID(_ context.Context, id string) (*domain.Engineer, error) {
	engineer, ok := r.engineers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *engineer
	return &clone, nil
}

func (r *fakeEngineerRepo) SetActive(_ context.Context, id string, active bool) error {
	engineer, ok := r.engineers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	engineer.IsActive = active
	return nil
}

func (r *fakeEngineerRepo) List(_ context.Context) ([]domain.Engineer, error) {
	result := make([]domain.Engineer, 0, len(r.engineers))
	for _, engineer := range r.engineers {
		result = append(result, *engineer)
	}
	return result, nil
}

func (r *fakeEngineerRepo) ListActiveWithLoad(_ context.Context) ([]domain.EngineerLoad, error) {
	return r.loads, nil
}

func (r *fakeEngineerRepo) ActiveTicketCount(_ context.Context, engineerID string) (int, error) {
	for _, load := range r.loads {
		if load.Engineer.ID == engineerID {
			return load.ActiveTickets, nil
		}
	}
	return 0, nil
}
