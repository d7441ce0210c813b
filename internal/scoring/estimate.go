package scoring

import (
	"math"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// Estimate is a standalone, unbounded priority model kept separate from
// FinalPriority. It is never used for persisted ticket priority: its
// numeric range differs (logarithmic count growth, soft price factor, no
// clamp) and the two models are not interchangeable.
func Estimate(serviceType domain.ServiceType, serviceCount int, totalPrice float64, isCompany bool) float64 {
	base := BaseScore(serviceType)
	typeCoef := clientTypeMultiplier(isCompany)
	countFactor := serviceCountFactor(serviceCount)
	priceFactor := totalPriceFactor(totalPrice)

	final := base * typeCoef * countFactor * priceFactor

	return math.Round(final*100) / 100
}

func clientTypeMultiplier(isCompany bool) float64 {
	if isCompany {
		return 1.20
	}
	return 1.00
}

// Logarithmic growth: 1 service barely moves the score, 100 noticeably,
// 1000 strongly but still bounded.
func serviceCountFactor(serviceCount int) float64 {
	return 1 + math.Log10(float64(serviceCount+1))
}

// 50000 doubles the score, 10000 adds twenty percent.
func totalPriceFactor(totalPrice float64) float64 {
	return 1 + totalPrice/50000
}
