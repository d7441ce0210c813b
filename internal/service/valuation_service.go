package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/telecom-support/internal/config"
	"github.com/spec-kit/telecom-support/internal/repository"
	"github.com/spec-kit/telecom-support/internal/scoring"
)

// ValuationService quantifies a client's relative importance among all
// clients. Totals are read from live subscription state on every call;
// nothing here is cached, so price and subscription changes take effect
// immediately.
type ValuationService struct {
	clients repository.ClientRepository
	minCoef float64
	maxCoef float64
}

// NewValuationService creates the service.
func NewValuationService(clients repository.ClientRepository, cfg config.ScoringConfig) *ValuationService {
	minCoef := cfg.MinImportanceCoef
	maxCoef := cfg.MaxImportanceCoef
	if minCoef == 0 && maxCoef == 0 {
		minCoef = scoring.DefaultMinCoef
		maxCoef = scoring.DefaultMaxCoef
	}
	return &ValuationService{clients: clients, minCoef: minCoef, maxCoef: maxCoef}
}

// TotalPrice sums the prices of the client's current subscriptions.
func (s *ValuationService) TotalPrice(ctx context.Context, clientID string) (decimal.Decimal, error) {
	return s.clients.SpendTotal(ctx, clientID)
}

// ImportanceMultiplier ranks the client's spend among all clients and
// maps the percentile into the configured coefficient bounds. The scan
// over all clients is O(N log N) per call and is not transactionally
// consistent with later subscription reads; the score is a best-effort
// heuristic, not a serializable read.
func (s *ValuationService) ImportanceMultiplier(ctx context.Context, clientID string) (float64, error) {
	spends, err := s.clients.SpendTotals(ctx)
	if err != nil {
		return 0, err
	}

	clientTotal := decimal.Zero
	allTotals := make([]decimal.Decimal, 0, len(spends))
	for _, spend := range spends {
		allTotals = append(allTotals, spend.Total)
		if spend.ClientID == clientID {
			clientTotal = spend.Total
		}
	}

	return scoring.ImportanceMultiplier(clientTotal, allTotals, s.minCoef, s.maxCoef), nil
}
