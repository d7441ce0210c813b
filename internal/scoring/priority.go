package scoring

import (
	"math"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// CompanyMultiplier is applied when the client is a legal entity.
const CompanyMultiplier = 1.15

// Per-count bonus for subscribed services, capped at subscriptionBonusCap.
const (
	subscriptionBonusStep = 2
	subscriptionBonusCap  = 10
)

// ScoreInput carries the client attributes FinalPriority composes with
// the AI-suggested initial priority.
type ScoreInput struct {
	ImportanceMultiplier float64
	IsCompany            bool
	ServiceTypes         []domain.ServiceType
}

// FinalPriority computes the persisted 0-100 ticket priority.
//
// Composition order matters: the initial priority is scaled by the
// importance multiplier, then the company multiplier, then the product of
// the matched service-type multipliers; matched points and the capped
// subscription-count bonus are added afterwards. The result is clamped to
// [0,100] and rounded to the nearest integer.
func FinalPriority(initialPriority int, input ScoreInput) int {
	priority := float64(initialPriority)

	priority *= input.ImportanceMultiplier

	if input.IsCompany {
		priority *= CompanyMultiplier
	}

	totalMultiplier := 1.0
	totalPoints := 0
	for _, serviceType := range input.ServiceTypes {
		weight, ok := ServiceTypeWeights[serviceType]
		if !ok {
			continue
		}
		totalMultiplier *= weight.Multiplier
		totalPoints += weight.Points
	}

	priority *= totalMultiplier
	priority += float64(totalPoints)

	bonus := subscriptionBonusStep * len(input.ServiceTypes)
	if bonus > subscriptionBonusCap {
		bonus = subscriptionBonusCap
	}
	priority += float64(bonus)

	if priority < 0 {
		priority = 0
	}
	if priority > 100 {
		priority = 100
	}

	return int(math.Round(priority))
}
