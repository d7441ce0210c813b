package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/telecom-support/internal/config"
	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/observability"
)

func TestScorePrioritySoleZeroSpendClient(t *testing.T) {
	clients := newFakeClientRepo()
	client := domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001"}
	clients.add(client, decimal.Zero)

	valuation := NewValuationService(clients, config.ScoringConfig{})
	priority := NewPriorityService(valuation, newFakeSubscriptionRepo(), observability.NewMetrics())

	score, err := priority.ScorePriority(context.Background(), 50, &client)
	require.NoError(t, err)
	require.Equal(t, 1.10, score.ImportanceMultiplier)
	require.Equal(t, 55, score.FinalPriority)
}

func TestScorePriorityTopSpenderWithSubscription(t *testing.T) {
	clients := newFakeClientRepo()
	top := domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001"}
	clients.add(top, decimal.NewFromInt(100))
	clients.add(domain.Client{ID: "c-2", FullName: "Bo", AccountNumber: "100002"}, decimal.Zero)

	subs := newFakeSubscriptionRepo()
	subs.add("c-1", domain.ServiceTypeNetwork, decimal.NewFromInt(100))

	valuation := NewValuationService(clients, config.ScoringConfig{})
	priority := NewPriorityService(valuation, subs, observability.NewMetrics())

	// 50 * 1.20 * 1.10 = 66, +5 points, +2 bonus.
	score, err := priority.ScorePriority(context.Background(), 50, &top)
	require.NoError(t, err)
	require.Equal(t, 1.20, score.ImportanceMultiplier)
	require.Equal(t, 73, score.FinalPriority)
}

func TestScorePriorityDeterministicForSameInputs(t *testing.T) {
	clients := newFakeClientRepo()
	client := domain.Client{ID: "c-1", FullName: "Ada", AccountNumber: "100001", IsCompany: true}
	clients.add(client, decimal.NewFromInt(500))
	clients.add(domain.Client{ID: "c-2", AccountNumber: "100002"}, decimal.NewFromInt(200))

	subs := newFakeSubscriptionRepo()
	subs.add("c-1", domain.ServiceTypeITServices, decimal.NewFromInt(500))

	valuation := NewValuationService(clients, config.ScoringConfig{})
	priority := NewPriorityService(valuation, subs, observability.NewMetrics())

	first, err := priority.ScorePriority(context.Background(), 60, &client)
	require.NoError(t, err)
	second, err := priority.ScorePriority(context.Background(), 60, &client)
	require.NoError(t, err)
	require.Equal(t, first.FinalPriority, second.FinalPriority)
	require.Equal(t, first.ImportanceMultiplier, second.ImportanceMultiplier)
}
