// Package ticket defines the domain types flowing through the resolution
// pipeline: the inbound support ticket, the structured analysis, the drafted
// response suggestion, and the terminal resolution record.
package ticket

import (
	"fmt"
	"time"
)

// Category classifies a support ticket.
type Category string

const (
	CategoryTechnical Category = "technical"
	CategoryBilling   Category = "billing"
	CategoryFeature   Category = "feature"
	CategoryAccess    Category = "access"
)

// ParseCategory validates a raw category value from an upstream response.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryTechnical, CategoryBilling, CategoryFeature, CategoryAccess:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Priority is an ordinal urgency level. Higher is more urgent.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4
)

// ParsePriority validates a raw priority ordinal from an upstream response.
func ParsePriority(n int) (Priority, error) {
	if n < int(PriorityLow) || n > int(PriorityUrgent) {
		return 0, fmt.Errorf("priority %d outside 1-4", n)
	}
	return Priority(n), nil
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// SupportTicket is one inbound customer support request. Constructed by the
// caller and read-only inside the pipeline.
type SupportTicket struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Content string `json:"content"`

	// CustomerInfo is open metadata about the requester: role, plan tier,
	// company size and similar.
	CustomerInfo map[string]any `json:"customer_info,omitempty"`
}

// Analysis is the structured classification of one ticket.
type Analysis struct {
	Category          Category `json:"category"`
	Priority          Priority `json:"priority"`
	KeyPoints         []string `json:"key_points"`
	RequiredExpertise []string `json:"required_expertise"`

	// Sentiment is in [-1, 1]; negative means a frustrated customer.
	Sentiment float64 `json:"sentiment"`

	UrgencyIndicators     []string `json:"urgency_indicators"`
	BusinessImpact        string   `json:"business_impact"`
	SuggestedResponseType string   `json:"suggested_response_type"`
}

// ResponseSuggestion is a drafted reply for one analyzed ticket.
type ResponseSuggestion struct {
	ResponseText string `json:"response_text"`

	// ConfidenceScore is in [0, 1].
	ConfidenceScore float64 `json:"confidence_score"`

	// RequiresApproval flags drafts touching sensitive topics that must not
	// be sent unreviewed.
	RequiresApproval bool     `json:"requires_approval"`
	SuggestedActions []string `json:"suggested_actions"`
}

// Status of a terminal resolution record.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Resolution is the terminal record for one processed ticket. Either both
// Analysis and Response are set (completed) or neither is and Error carries
// the failure message.
type Resolution struct {
	TicketID    string              `json:"ticket_id"`
	Analysis    *Analysis           `json:"analysis,omitempty"`
	Response    *ResponseSuggestion `json:"response,omitempty"`
	ProcessedAt time.Time           `json:"processed_at"`

	// ProcessingTime is elapsed seconds from intake to record, measured on
	// the failure path too.
	ProcessingTime float64 `json:"processing_time"`

	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}
