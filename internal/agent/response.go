package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tickethub/ticket-resolver/internal/llm"
	"github.com/tickethub/ticket-resolver/internal/ticket"
)

const responseGuidelines = `You are an expert support response generator. Generate a response based on:
1. The ticket analysis provided
2. Available response templates
3. Context information

Guidelines:
- Use appropriate template based on ticket category
- Personalize the response using context
- Match technical detail level to customer expertise
- Include clear action items
- Mark for approval if response involves sensitive issues (billing disputes, access or security problems, anything affecting revenue or payroll)`

// ResponseAgent drafts a reply for an analyzed ticket through the
// structured-generation call. Template placeholders are filled by the model's
// judgment, not substituted here.
type ResponseAgent struct {
	provider llm.Provider
}

func NewResponseAgent(provider llm.Provider) *ResponseAgent {
	return &ResponseAgent{provider: provider}
}

// Generate invokes the generation call with the template catalog, the
// analysis summary, and the per-ticket context. Failures of the call or its
// schema validation wrap ErrGeneration.
func (r *ResponseAgent) Generate(ctx context.Context, analysis ticket.Analysis, templates map[string]string, contextData map[string]any) (ticket.ResponseSuggestion, error) {
	serializedTemplates, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return ticket.ResponseSuggestion{}, fmt.Errorf("%w: serialize templates: %v", ErrGeneration, err)
	}
	serializedContext, err := json.MarshalIndent(contextData, "", "  ")
	if err != nil {
		return ticket.ResponseSuggestion{}, fmt.Errorf("%w: serialize context: %v", ErrGeneration, err)
	}

	systemMessage := fmt.Sprintf("%s\n\nAvailable templates:\n%s", responseGuidelines, serializedTemplates)
	userMessage := fmt.Sprintf(`Generate a response for this ticket analysis:
Category: %s
Priority: %d
Key Points: %v
Sentiment: %.2f
Business Impact: %s

Context Information:
%s`,
		analysis.Category,
		analysis.Priority,
		analysis.KeyPoints,
		analysis.Sentiment,
		analysis.BusinessImpact,
		serializedContext,
	)

	resp, err := r.provider.Complete(ctx, systemMessage, userMessage,
		llm.WithTool(generateToolName, generateTool))
	if err != nil {
		return ticket.ResponseSuggestion{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if resp.FunctionCall == nil {
		return ticket.ResponseSuggestion{}, fmt.Errorf("%w: model returned no structured result", ErrGeneration)
	}

	suggestion, err := parseResponseArguments(resp.FunctionCall.Arguments)
	if err != nil {
		return ticket.ResponseSuggestion{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	slog.Debug("response drafted",
		"confidence", suggestion.ConfidenceScore,
		"requires_approval", suggestion.RequiresApproval,
		"tokens", resp.Usage.TotalTokens,
	)

	return suggestion, nil
}
