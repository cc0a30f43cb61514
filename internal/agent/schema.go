package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/tickethub/ticket-resolver/internal/ticket"
)

// The two forced-schema tools. Every field is required and no additional
// fields are permitted, so a malformed upstream response is rejected here at
// the boundary instead of leaking partial data downstream.

const (
	analyzeToolName  = "analyze_support_ticket"
	generateToolName = "generate_support_response"
)

var analyzeTool = openai.ChatCompletionToolParam{
	Type: openai.F(openai.ChatCompletionToolTypeFunction),
	Function: openai.F(openai.FunctionDefinitionParam{
		Name:        openai.String(analyzeToolName),
		Description: openai.String("Analyze a customer support ticket for classification and priority"),
		Strict:      openai.Bool(true),
		Parameters: openai.F(openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"technical", "billing", "feature", "access"},
					"description": "The category of the support ticket",
				},
				"priority": map[string]interface{}{
					"type":        "integer",
					"enum":        []int{1, 2, 3, 4},
					"description": "Priority level (1=LOW, 2=MEDIUM, 3=HIGH, 4=URGENT)",
				},
				"key_points": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Main points from the ticket",
				},
				"required_expertise": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Required expertise to handle this ticket",
				},
				"urgency_indicators": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Words or phrases indicating urgency",
				},
				"business_impact": map[string]interface{}{
					"type":        "string",
					"description": "Description of business impact",
				},
				"suggested_response_type": map[string]interface{}{
					"type":        "string",
					"description": "Suggested type of response template",
				},
			},
			"required": []string{
				"category", "priority", "key_points", "required_expertise",
				"urgency_indicators", "business_impact", "suggested_response_type",
			},
			"additionalProperties": false,
		}),
	}),
}

var generateTool = openai.ChatCompletionToolParam{
	Type: openai.F(openai.ChatCompletionToolTypeFunction),
	Function: openai.F(openai.FunctionDefinitionParam{
		Name:        openai.String(generateToolName),
		Description: openai.String("Generate a response for a support ticket"),
		Strict:      openai.Bool(true),
		Parameters: openai.F(openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"response_text": map[string]interface{}{
					"type":        "string",
					"description": "The generated response text",
				},
				"confidence_score": map[string]interface{}{
					"type":        "number",
					"description": "Confidence score between 0 and 1",
				},
				"requires_approval": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether this response needs human approval",
				},
				"suggested_actions": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "List of suggested follow-up actions",
				},
			},
			"required": []string{
				"response_text", "confidence_score", "requires_approval", "suggested_actions",
			},
			"additionalProperties": false,
		}),
	}),
}

// Payload structs decode tool-call arguments strictly: pointer fields detect
// missing keys, DisallowUnknownFields rejects extras.

type analysisPayload struct {
	Category              *string   `json:"category"`
	Priority              *int      `json:"priority"`
	KeyPoints             *[]string `json:"key_points"`
	RequiredExpertise     *[]string `json:"required_expertise"`
	UrgencyIndicators     *[]string `json:"urgency_indicators"`
	BusinessImpact        *string   `json:"business_impact"`
	SuggestedResponseType *string   `json:"suggested_response_type"`
}

type responsePayload struct {
	ResponseText     *string   `json:"response_text"`
	ConfidenceScore  *float64  `json:"confidence_score"`
	RequiresApproval *bool     `json:"requires_approval"`
	SuggestedActions *[]string `json:"suggested_actions"`
}

func decodeStrict(raw string, v interface{}) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed arguments: %w", err)
	}
	return nil
}

func parseAnalysisArguments(raw string) (ticket.Analysis, error) {
	var p analysisPayload
	if err := decodeStrict(raw, &p); err != nil {
		return ticket.Analysis{}, err
	}

	switch {
	case p.Category == nil:
		return ticket.Analysis{}, fmt.Errorf("missing required field %q", "category")
	case p.Priority == nil:
		return ticket.Analysis{}, fmt.Errorf("missing required field %q", "priority")
	case p.KeyPoints == nil:
		return ticket.Analysis{}, fmt.Errorf("missing required field %q", "key_points")
	case p.RequiredExpertise == nil:
		return ticket.Analysis{}, fmt.Errorf("missing required field %q", "required_expertise")
	case p.UrgencyIndicators == nil:
		return ticket.Analysis{}, fmt.Errorf("missing required field %q", "urgency_indicators")
	case p.BusinessImpact == nil:
		return ticket.Analysis{}, fmt.Errorf("missing required field %q", "business_impact")
	case p.SuggestedResponseType == nil:
		return ticket.Analysis{}, fmt.Errorf("missing required field %q", "suggested_response_type")
	}

	category, err := ticket.ParseCategory(*p.Category)
	if err != nil {
		return ticket.Analysis{}, err
	}
	priority, err := ticket.ParsePriority(*p.Priority)
	if err != nil {
		return ticket.Analysis{}, err
	}

	return ticket.Analysis{
		Category:              category,
		Priority:              priority,
		KeyPoints:             *p.KeyPoints,
		RequiredExpertise:     *p.RequiredExpertise,
		UrgencyIndicators:     *p.UrgencyIndicators,
		BusinessImpact:        *p.BusinessImpact,
		SuggestedResponseType: *p.SuggestedResponseType,
	}, nil
}

func parseResponseArguments(raw string) (ticket.ResponseSuggestion, error) {
	var p responsePayload
	if err := decodeStrict(raw, &p); err != nil {
		return ticket.ResponseSuggestion{}, err
	}

	switch {
	case p.ResponseText == nil:
		return ticket.ResponseSuggestion{}, fmt.Errorf("missing required field %q", "response_text")
	case p.ConfidenceScore == nil:
		return ticket.ResponseSuggestion{}, fmt.Errorf("missing required field %q", "confidence_score")
	case p.RequiresApproval == nil:
		return ticket.ResponseSuggestion{}, fmt.Errorf("missing required field %q", "requires_approval")
	case p.SuggestedActions == nil:
		return ticket.ResponseSuggestion{}, fmt.Errorf("missing required field %q", "suggested_actions")
	}

	if *p.ConfidenceScore < 0 || *p.ConfidenceScore > 1 {
		return ticket.ResponseSuggestion{}, fmt.Errorf("confidence_score %v outside [0, 1]", *p.ConfidenceScore)
	}

	return ticket.ResponseSuggestion{
		ResponseText:     *p.ResponseText,
		ConfidenceScore:  *p.ConfidenceScore,
		RequiresApproval: *p.RequiresApproval,
		SuggestedActions: *p.SuggestedActions,
	}, nil
}
