package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/repository"
	"github.com/spec-kit/telecom-support/internal/scoring"
	apperrors "github.com/spec-kit/telecom-support/pkg/util"
)

// DirectoryService manages clients, the service catalog, subscriptions
// and engineers for the staff surface.
type DirectoryService struct {
	clients       repository.ClientRepository
	catalog       repository.CatalogRepository
	subscriptions repository.SubscriptionRepository
	engineers     repository.EngineerRepository
}

// DirectoryDependencies encapsulates repositories for the directory.
type DirectoryDependencies struct {
	ClientRepo       repository.ClientRepository
	CatalogRepo      repository.CatalogRepository
	SubscriptionRepo repository.SubscriptionRepository
	EngineerRepo     repository.EngineerRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		clients:       deps.ClientRepo,
		catalog:       deps.CatalogRepo,
		subscriptions: deps.SubscriptionRepo,
		engineers:     deps.EngineerRepo,
	}
}

// RegisterClient creates a client. The account number is generated by
// the store and returned on the client.
func (s *DirectoryService) RegisterClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if strings.TrimSpace(client.FullName) == "" {
		return nil, apperrors.NewValidationError("full_name required", nil)
	}
	if client.Age < 0 {
		return nil, apperrors.NewValidationError("age must not be negative", nil)
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// GetClient fetches a client by id.
func (s *DirectoryService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// ListClients pages through the client directory.
func (s *DirectoryService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}

// CreateService adds a catalog entry.
func (s *DirectoryService) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	if strings.TrimSpace(service.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if service.Price.IsNegative() {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}
	if err := s.catalog.Create(ctx, service); err != nil {
		return nil, apperrors.MapError(err)
	}
	return service, nil
}

// ListServices returns the catalog.
func (s *DirectoryService) ListServices(ctx context.Context) ([]domain.Service, error) {
	services, err := s.catalog.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// Subscribe links a client to a catalog service.
func (s *DirectoryService) Subscribe(ctx context.Context, clientID, serviceID string) (*domain.ClientService, error) {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	service, err := s.catalog.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"service_id": serviceID})
		}
		return nil, apperrors.MapError(err)
	}

	sub := &domain.ClientService{ClientID: clientID, ServiceID: serviceID}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, apperrors.MapError(err)
	}
	sub.ServiceType = service.ServiceType
	sub.ServicePrice = service.Price
	return sub, nil
}

// ListSubscriptions returns a client's current subscriptions.
func (s *DirectoryService) ListSubscriptions(ctx context.Context, clientID string) ([]domain.ClientService, error) {
	subs, err := s.subscriptions.ListByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return subs, nil
}

// Unsubscribe removes a subscription.
func (s *DirectoryService) Unsubscribe(ctx context.Context, subscriptionID string) error {
	if err := s.subscriptions.Delete(ctx, subscriptionID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// CreateEngineer adds an engineer, active by default.
func (s *DirectoryService) CreateEngineer(ctx context.Context, fullName string) (*domain.Engineer, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, apperrors.NewValidationError("full_name required", nil)
	}
	engineer := &domain.Engineer{FullName: fullName, IsActive: true}
	if err := s.engineers.Create(ctx, engineer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return engineer, nil
}

// SetEngineerActive toggles assignment eligibility. Deactivation never
// touches existing assignments; it only removes the engineer from future
// selection.
func (s *DirectoryService) SetEngineerActive(ctx context.Context, engineerID string, active bool) error {
	if err := s.engineers.SetActive(ctx, engineerID, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("engineer", map[string]any{"engineer_id": engineerID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListEngineers returns all engineers.
func (s *DirectoryService) ListEngineers(ctx context.Context) ([]domain.Engineer, error) {
	engineers, err := s.engineers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return engineers, nil
}

// EngineerLoads returns active engineers with derived open-ticket counts.
func (s *DirectoryService) EngineerLoads(ctx context.Context) ([]domain.EngineerLoad, error) {
	loads, err := s.engineers.ListActiveWithLoad(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return loads, nil
}

// EstimateServiceScore computes the standalone estimate for a client and
// service type from the client's live subscription state.
func (s *DirectoryService) EstimateServiceScore(ctx context.Context, clientID string, serviceType domain.ServiceType) (float64, error) {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return 0, err
	}
	subs, err := s.subscriptions.ListByClient(ctx, clientID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}

	total := decimal.Zero
	for _, sub := range subs {
		total = total.Add(sub.ServicePrice)
	}
	price, _ := total.Float64()

	return scoring.Estimate(serviceType, len(subs), price, client.IsCompany), nil
}
