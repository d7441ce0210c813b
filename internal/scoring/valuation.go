package scoring

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Default bounds for the client importance multiplier.
const (
	DefaultMinCoef = 1.10
	DefaultMaxCoef = 1.20
)

// ImportanceMultiplier maps a client's total spend to a coefficient in
// [minCoef, maxCoef] by percentile rank among all clients' totals.
//
// allTotals must contain one entry per client in the system, including
// the client being scored. If the population is empty or every total is
// zero, the floor coefficient is returned. Rank is the first index of
// clientTotal in the ascending sort, so exact-spend ties collapse to the
// lowest shared rank. The result is rounded to 4 decimal places.
func ImportanceMultiplier(clientTotal decimal.Decimal, allTotals []decimal.Decimal, minCoef, maxCoef float64) float64 {
	if len(allTotals) == 0 || allZero(allTotals) {
		return minCoef
	}

	sorted := make([]decimal.Decimal, len(allTotals))
	copy(sorted, allTotals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	rank := 0
	for i, total := range sorted {
		if total.Equal(clientTotal) {
			rank = i
			break
		}
	}

	p := 1.0
	if len(sorted) > 1 {
		p = float64(rank) / float64(len(sorted)-1)
	}

	coef := minCoef + p*(maxCoef-minCoef)
	return math.Round(coef*10000) / 10000
}

func allZero(totals []decimal.Decimal) bool {
	for _, total := range totals {
		if !total.IsZero() {
			return false
		}
	}
	return true
}
