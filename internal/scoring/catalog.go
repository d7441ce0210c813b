package scoring

import "github.com/spec-kit/telecom-support/internal/domain"

// TypeWeight is the {multiplier, points} pair a service type contributes
// to the final-priority composition.
type TypeWeight struct {
	Multiplier float64
	Points     int
}

// ServiceTypeWeights drives FinalPriority. Service types missing from this
// table contribute neither multiplier nor points; they are skipped, not
// defaulted.
var ServiceTypeWeights = map[domain.ServiceType]TypeWeight{
	domain.ServiceTypeNetwork:       {Multiplier: 1.10, Points: 5},
	domain.ServiceTypeITServices:    {Multiplier: 1.08, Points: 3},
	domain.ServiceTypeExternalCalls: {Multiplier: 1.04, Points: 2},
	domain.ServiceTypeLocalPhone:    {Multiplier: 1.00, Points: 1},
	domain.ServiceTypeIPTV:          {Multiplier: 1.02, Points: 1},
}

// ServiceBaseScores drives the standalone Estimate scorer. Unknown types
// fall back to DefaultBaseScore here, unlike the weight table above.
var ServiceBaseScores = map[domain.ServiceType]float64{
	domain.ServiceTypeNetwork:       70,
	domain.ServiceTypeITServices:    65,
	domain.ServiceTypeLocalPhone:    55,
	domain.ServiceTypeExternalCalls: 50,
	domain.ServiceTypeIPTV:          40,
}

// DefaultBaseScore is the neutral base for service types absent from the
// catalog.
const DefaultBaseScore = 50

// BaseScore returns the base priority for a service type in the
// standalone estimator.
func BaseScore(serviceType domain.ServiceType) float64 {
	if score, ok := ServiceBaseScores[serviceType]; ok {
		return score
	}
	return DefaultBaseScore
}
