// Package agent holds the two leaf agents of the resolution pipeline: the
// analysis agent that classifies and triages a ticket through a forced-schema
// extraction call, and the response agent that drafts a reply constrained by
// that analysis.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tickethub/ticket-resolver/internal/llm"
	"github.com/tickethub/ticket-resolver/internal/ticket"
)

const analysisSystemPrompt = `You are an expert support ticket analyzer. Analyze the ticket based on:
1. Content and subject for category
2. Priority based on:
   - Urgency words ("ASAP", "urgent", "immediately")
   - Customer role (C-level, Director gets higher priority)
   - Business impact (payroll, revenue-impacting issues)
3. Extract key points for response
4. Identify required expertise
5. Analyze business impact`

// Scorer is the sentiment source attached to every analysis. It never fails;
// estimator errors are absorbed inside the chain.
type Scorer interface {
	Score(ctx context.Context, text string) float64
}

// AnalysisAgent classifies a ticket through the structured-extraction call
// and enriches the result with a sentiment score.
type AnalysisAgent struct {
	provider llm.Provider
	scorer   Scorer
}

func NewAnalysisAgent(provider llm.Provider, scorer Scorer) *AnalysisAgent {
	return &AnalysisAgent{
		provider: provider,
		scorer:   scorer,
	}
}

// Analyze runs the extraction call and the sentiment chain and assembles a
// complete analysis. Failures of the extraction call or its schema validation
// wrap ErrExtraction; sentiment failures never surface.
func (a *AnalysisAgent) Analyze(ctx context.Context, ticketText string, customerInfo map[string]any) (ticket.Analysis, error) {
	// Sentiment runs alongside the extraction round-trip; both complete
	// before return. The channel is buffered so an extraction error does not
	// strand the goroutine.
	scoreCh := make(chan float64, 1)
	go func() {
		scoreCh <- a.scorer.Score(ctx, ticketText)
	}()

	info := "None"
	if customerInfo != nil {
		serialized, err := json.Marshal(customerInfo)
		if err != nil {
			return ticket.Analysis{}, fmt.Errorf("%w: serialize customer info: %v", ErrExtraction, err)
		}
		info = string(serialized)
	}
	userMessage := fmt.Sprintf("Analyze this support ticket: %s\n\nCustomer Info: %s", ticketText, info)

	resp, err := a.provider.Complete(ctx, analysisSystemPrompt, userMessage,
		llm.WithTool(analyzeToolName, analyzeTool))
	if err != nil {
		return ticket.Analysis{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if resp.FunctionCall == nil {
		return ticket.Analysis{}, fmt.Errorf("%w: model returned no structured result", ErrExtraction)
	}

	analysis, err := parseAnalysisArguments(resp.FunctionCall.Arguments)
	if err != nil {
		return ticket.Analysis{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	analysis.Sentiment = <-scoreCh

	slog.Debug("ticket analyzed",
		"category", analysis.Category,
		"priority", analysis.Priority.String(),
		"sentiment", analysis.Sentiment,
		"tokens", resp.Usage.TotalTokens,
	)

	return analysis, nil
}
