package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/telecom-support/internal/domain"
)

func TestEstimateBaseOnly(t *testing.T) {
	require.Equal(t, 70.0, Estimate(domain.ServiceTypeNetwork, 0, 0, false))
}

func TestEstimateUnknownTypeUsesDefaultBase(t *testing.T) {
	require.Equal(t, 50.0, Estimate(domain.ServiceType("satellite"), 0, 0, false))
}

func TestEstimateCompanyMultiplier(t *testing.T) {
	require.Equal(t, 84.0, Estimate(domain.ServiceTypeNetwork, 0, 0, true))
}

func TestEstimateServiceCountLogGrowth(t *testing.T) {
	// 9 services: 1 + log10(10) doubles the base.
	require.Equal(t, 110.0, Estimate(domain.ServiceTypeLocalPhone, 9, 0, false))
}

func TestEstimatePriceFactor(t *testing.T) {
	// 50000 total price doubles the base.
	require.Equal(t, 140.0, Estimate(domain.ServiceTypeNetwork, 0, 50000, false))
}

func TestEstimateNotClamped(t *testing.T) {
	got := Estimate(domain.ServiceTypeNetwork, 99, 100000, true)
	require.Greater(t, got, 100.0)
}
