// Package sentiment scores ticket text on a [-1, 1] scale through an ordered
// chain of estimators. Estimator failure never propagates: the chain tries
// each estimator in turn and falls back to neutral when all are exhausted.
package sentiment

import (
	"context"
	"log/slog"
)

// Neutral is the score used when every estimator fails.
const Neutral = 0.0

// Estimator produces a raw sentiment score for a piece of text. Scores may
// exceed [-1, 1]; the chain clamps them.
type Estimator interface {
	Name() string
	Estimate(ctx context.Context, text string) (float64, error)
}

// Chain tries estimators in order; the first success wins.
type Chain struct {
	estimators []Estimator
}

func NewChain(estimators ...Estimator) *Chain {
	return &Chain{estimators: estimators}
}

// Score never fails. Any estimator error is absorbed and logged, and the
// result is always clamped to [-1, 1].
func (c *Chain) Score(ctx context.Context, text string) float64 {
	for _, est := range c.estimators {
		score, err := est.Estimate(ctx, text)
		if err != nil {
			slog.Warn("sentiment estimator failed, trying next", "estimator", est.Name(), "error", err)
			continue
		}
		return Clamp(score)
	}
	slog.Warn("all sentiment estimators failed, falling back to neutral")
	return Neutral
}

// Clamp bounds a raw score to [-1, 1].
func Clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
