package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestImportanceMultiplierEmptyPopulation(t *testing.T) {
	got := ImportanceMultiplier(decimal.Zero, nil, DefaultMinCoef, DefaultMaxCoef)
	require.Equal(t, DefaultMinCoef, got)
}

func TestImportanceMultiplierAllZeroTotals(t *testing.T) {
	totals := []decimal.Decimal{decimal.Zero, decimal.Zero, decimal.Zero}
	got := ImportanceMultiplier(decimal.Zero, totals, DefaultMinCoef, DefaultMaxCoef)
	require.Equal(t, DefaultMinCoef, got)
}

func TestImportanceMultiplierSingleSpendingClient(t *testing.T) {
	totals := []decimal.Decimal{d(100)}
	got := ImportanceMultiplier(d(100), totals, DefaultMinCoef, DefaultMaxCoef)
	require.Equal(t, DefaultMaxCoef, got)
}

func TestImportanceMultiplierMidRank(t *testing.T) {
	totals := []decimal.Decimal{d(0), d(50), d(100)}
	got := ImportanceMultiplier(d(50), totals, DefaultMinCoef, DefaultMaxCoef)
	require.Equal(t, 1.15, got)
}

func TestImportanceMultiplierTopRank(t *testing.T) {
	totals := []decimal.Decimal{d(0), d(50), d(100)}
	got := ImportanceMultiplier(d(100), totals, DefaultMinCoef, DefaultMaxCoef)
	require.Equal(t, DefaultMaxCoef, got)
}

func TestImportanceMultiplierTiesCollapseToLowestRank(t *testing.T) {
	totals := []decimal.Decimal{d(10), d(10), d(30)}
	got := ImportanceMultiplier(d(10), totals, DefaultMinCoef, DefaultMaxCoef)
	require.Equal(t, DefaultMinCoef, got)
}

func TestImportanceMultiplierRoundsToFourDecimals(t *testing.T) {
	totals := []decimal.Decimal{d(0), d(1), d(2), d(3)}
	got := ImportanceMultiplier(d(1), totals, DefaultMinCoef, DefaultMaxCoef)
	require.Equal(t, 1.1333, got)
}

func TestImportanceMultiplierBoundsAlwaysHeld(t *testing.T) {
	totals := make([]decimal.Decimal, 0, 50)
	for i := int64(0); i < 50; i++ {
		totals = append(totals, d(i*7))
	}
	for _, total := range totals {
		got := ImportanceMultiplier(total, totals, DefaultMinCoef, DefaultMaxCoef)
		require.GreaterOrEqual(t, got, DefaultMinCoef)
		require.LessOrEqual(t, got, DefaultMaxCoef)
	}
}
