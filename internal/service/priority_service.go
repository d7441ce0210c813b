package service

import (
	"context"

	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/observability"
	"github.com/spec-kit/telecom-support/internal/repository"
	"github.com/spec-kit/telecom-support/internal/scoring"
)

// PriorityService produces the persisted 0-100 final priority for a
// ticket from the AI-suggested initial priority and the client's live
// attributes. Pure read-then-compute; two computations for different
// tickets may run concurrently without interference.
type PriorityService struct {
	valuation     *ValuationService
	subscriptions repository.SubscriptionRepository
	metrics       *observability.Metrics
}

// NewPriorityService creates the service.
func NewPriorityService(valuation *ValuationService, subscriptions repository.SubscriptionRepository, metrics *observability.Metrics) *PriorityService {
	return &PriorityService{
		valuation:     valuation,
		subscriptions: subscriptions,
		metrics:       metrics,
	}
}

// ScoreResult carries the persisted priority and the inputs that shaped
// it, for event payloads and staff tooling.
type ScoreResult struct {
	FinalPriority        int
	ImportanceMultiplier float64
}

// ScorePriority computes the final bounded priority for the client.
// Deterministic for identical inputs and a stable client population; the
// importance multiplier is relative to the current client base.
func (s *PriorityService) ScorePriority(ctx context.Context, initialPriority int, client *domain.Client) (*ScoreResult, error) {
	multiplier, err := s.valuation.ImportanceMultiplier(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subscriptions.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	serviceTypes := make([]domain.ServiceType, 0, len(subs))
	for _, sub := range subs {
		serviceTypes = append(serviceTypes, sub.ServiceType)
	}

	final := scoring.FinalPriority(initialPriority, scoring.ScoreInput{
		ImportanceMultiplier: multiplier,
		IsCompany:            client.IsCompany,
		ServiceTypes:         serviceTypes,
	})

	s.metrics.RecordScore()
	return &ScoreResult{FinalPriority: final, ImportanceMultiplier: multiplier}, nil
}
