package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/telecom-support/internal/domain"
)

func TestFinalPriorityNoSubscriptions(t *testing.T) {
	// Sole client with zero spend: floor multiplier, nothing else.
	got := FinalPriority(50, ScoreInput{ImportanceMultiplier: 1.10})
	require.Equal(t, 55, got)
}

func TestFinalPriorityCompanyWithSubscriptions(t *testing.T) {
	// 50 * 1.20 * 1.15 * (1.10 * 1.08) = 81.972, +8 points, +4 bonus.
	got := FinalPriority(50, ScoreInput{
		ImportanceMultiplier: 1.20,
		IsCompany:            true,
		ServiceTypes:         []domain.ServiceType{domain.ServiceTypeNetwork, domain.ServiceTypeITServices},
	})
	require.Equal(t, 94, got)
}

func TestFinalPriorityClampsAt100(t *testing.T) {
	got := FinalPriority(70, ScoreInput{
		ImportanceMultiplier: 1.20,
		IsCompany:            true,
		ServiceTypes: []domain.ServiceType{
			domain.ServiceTypeNetwork,
			domain.ServiceTypeITServices,
			domain.ServiceTypeExternalCalls,
			domain.ServiceTypeLocalPhone,
			domain.ServiceTypeIPTV,
		},
	})
	require.Equal(t, 100, got)
}

func TestFinalPriorityUnknownServiceTypeSkipped(t *testing.T) {
	// Unknown types contribute neither multiplier nor points but still
	// count toward the subscription bonus.
	got := FinalPriority(50, ScoreInput{
		ImportanceMultiplier: 1.0,
		ServiceTypes:         []domain.ServiceType{domain.ServiceType("satellite")},
	})
	require.Equal(t, 52, got)
}

func TestFinalPrioritySubscriptionBonusCapped(t *testing.T) {
	types := make([]domain.ServiceType, 6)
	for i := range types {
		types[i] = domain.ServiceTypeLocalPhone
	}
	// 50 * 1.0^6 = 50, +6 points, bonus min(12, 10) = 10.
	got := FinalPriority(50, ScoreInput{ImportanceMultiplier: 1.0, ServiceTypes: types})
	require.Equal(t, 66, got)
}

func TestFinalPriorityZeroInitial(t *testing.T) {
	got := FinalPriority(0, ScoreInput{ImportanceMultiplier: 1.20, IsCompany: true})
	require.Equal(t, 0, got)
}

func TestFinalPriorityMonotonicInInitial(t *testing.T) {
	input := ScoreInput{
		ImportanceMultiplier: 1.15,
		ServiceTypes:         []domain.ServiceType{domain.ServiceTypeNetwork},
	}
	prev := -1
	for initial := 30; initial <= 70; initial++ {
		got := FinalPriority(initial, input)
		require.GreaterOrEqual(t, got, prev)
		require.LessOrEqual(t, got, 100)
		prev = got
	}
}
