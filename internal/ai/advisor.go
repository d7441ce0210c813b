package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-support/internal/repository"
)

// ErrAdvisorUnavailable is returned for any failed, timed-out, or
// malformed advisor exchange. Callers degrade to "no score enrichment" /
// "no assignment"; the error is never allowed to crash a request.
var ErrAdvisorUnavailable = errors.New("advisor unavailable")

// Completer abstracts the completion transport for tests.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Advisor wraps the completion client with typed, validated calls.
type Advisor struct {
	completer Completer
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewAdvisor builds an advisor. cache may be nil; verdict caching is then
// skipped.
func NewAdvisor(completer Completer, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *Advisor {
	return &Advisor{
		completer: completer,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// ClassifyTelecom reports whether the description concerns telecom
// services. Verdicts are cached by description hash so repeated
// submissions of the same text skip the API. On advisor failure the
// description is treated as in-scope; the gate must not block legitimate
// tickets when the AI is down.
func (a *Advisor) ClassifyTelecom(ctx context.Context, description string) bool {
	cacheKey := "telecom_verdict:" + hashDescription(description)
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, cacheKey).Result(); err == nil {
			return cached == "1"
		}
	}

	raw, err := a.completer.Complete(ctx, telecomClassifierPrompt, "Problem description:\n"+description+"\nReturn JSON only.")
	if err != nil {
		a.logger.Warn("telecom classifier unavailable", zap.Error(err))
		return true
	}

	var verdict TelecomVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		a.logger.Warn("telecom classifier returned malformed JSON", zap.Error(err))
		return true
	}

	if a.cache != nil && a.cacheTTL > 0 {
		value := "0"
		if verdict.IsTelecom {
			value = "1"
		}
		if err := a.cache.Set(ctx, cacheKey, value, a.cacheTTL).Err(); err != nil {
			a.logger.Warn("verdict cache write failed", zap.Error(err))
		}
	}

	return verdict.IsTelecom
}

// AssessTicket runs the unified classification call for a new ticket.
func (a *Advisor) AssessTicket(ctx context.Context, description string, clientAge int, resolutions []repository.ResolutionSample, visits []repository.VisitSample) (*TicketAssessment, error) {
	userPrompt := buildAssessmentUserPrompt(description, clientAge, resolutions, visits)

	raw, err := a.completer.Complete(ctx, assessmentPrompt, userPrompt)
	if err != nil {
		a.logger.Warn("ticket assessment failed", zap.Error(err))
		return nil, ErrAdvisorUnavailable
	}

	var assessment TicketAssessment
	if err := json.Unmarshal([]byte(raw), &assessment); err != nil {
		a.logger.Warn("ticket assessment returned malformed JSON", zap.Error(err))
		return nil, ErrAdvisorUnavailable
	}
	if err := assessment.Validate(); err != nil {
		a.logger.Warn("ticket assessment rejected", zap.Error(err))
		return nil, ErrAdvisorUnavailable
	}

	return &assessment, nil
}

// PickEngineer asks for a ranked assignment recommendation among the
// provided candidates. The returned pick is well-formed but NOT yet
// checked against the live engineer pool; the assignment service owns
// that re-validation.
func (a *Advisor) PickEngineer(ctx context.Context, description string, clientAge int, candidates []EngineerCandidate) (*EngineerPick, error) {
	if len(candidates) == 0 {
		return nil, ErrAdvisorUnavailable
	}
	userPrompt := buildEngineerPickUserPrompt(description, clientAge, candidates)

	raw, err := a.completer.Complete(ctx, engineerPickPrompt, userPrompt)
	if err != nil {
		a.logger.Warn("engineer pick failed", zap.Error(err))
		return nil, ErrAdvisorUnavailable
	}

	var pick EngineerPick
	if err := json.Unmarshal([]byte(raw), &pick); err != nil {
		a.logger.Warn("engineer pick returned malformed JSON", zap.Error(err))
		return nil, ErrAdvisorUnavailable
	}
	if err := pick.Validate(); err != nil {
		a.logger.Warn("engineer pick rejected", zap.Error(err))
		return nil, ErrAdvisorUnavailable
	}

	return &pick, nil
}

func hashDescription(description string) string {
	sum := sha256.Sum256([]byte(description))
	return hex.EncodeToString(sum[:])
}
