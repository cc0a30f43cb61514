package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tickethub/ticket-resolver/internal/llm"
)

// Fixed reference sentences the similarity estimator compares against.
const (
	positiveReference = "I am very happy and satisfied with the service"
	negativeReference = "I am very frustrated and unhappy with the service"
)

// Comparer is the slice of the similarity client the estimator needs.
type Comparer interface {
	Compare(ctx context.Context, source string, sentences []string) ([]float64, error)
}

// SimilarityEstimator scores text as its similarity to a positive reference
// minus its similarity to a negative reference.
type SimilarityEstimator struct {
	comparer Comparer
}

func NewSimilarityEstimator(comparer Comparer) *SimilarityEstimator {
	return &SimilarityEstimator{comparer: comparer}
}

func (e *SimilarityEstimator) Name() string { return "similarity" }

func (e *SimilarityEstimator) Estimate(ctx context.Context, text string) (float64, error) {
	scores, err := e.comparer.Compare(ctx, text, []string{positiveReference, negativeReference})
	if err != nil {
		return 0, err
	}
	return scores[0] - scores[1], nil
}

const completionPrompt = `Rate the sentiment of the following customer message as a single number between -1.0 (very negative) and 1.0 (very positive). Reply with the number only.`

// CompletionEstimator asks the completion service for a numeric sentiment
// estimate. It is the secondary estimator behind the similarity one.
type CompletionEstimator struct {
	provider llm.Provider
}

func NewCompletionEstimator(provider llm.Provider) *CompletionEstimator {
	return &CompletionEstimator{provider: provider}
}

func (e *CompletionEstimator) Name() string { return "completion" }

func (e *CompletionEstimator) Estimate(ctx context.Context, text string) (float64, error) {
	resp, err := e.provider.Complete(ctx, completionPrompt, text, llm.WithMaxTokens(10))
	if err != nil {
		return 0, err
	}

	raw := strings.TrimSpace(resp.Content)
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("completion returned non-numeric sentiment %q", raw)
	}
	return score, nil
}
