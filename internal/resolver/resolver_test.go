package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickethub/ticket-resolver/internal/ticket"
)

// scriptedAnalyzer classifies by looking at the ticket text, mimicking the
// extraction call without a network dependency.
type scriptedAnalyzer struct {
	err error

	mu    sync.Mutex
	calls int
}

func (a *scriptedAnalyzer) Analyze(ctx context.Context, ticketText string, customerInfo map[string]any) (ticket.Analysis, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()

	if a.err != nil {
		return ticket.Analysis{}, a.err
	}

	analysis := ticket.Analysis{
		Category:              ticket.CategoryTechnical,
		Priority:              ticket.PriorityMedium,
		KeyPoints:             []string{"extracted point"},
		RequiredExpertise:     []string{"support"},
		Sentiment:             -0.2,
		UrgencyIndicators:     []string{},
		BusinessImpact:        "limited",
		SuggestedResponseType: "technical_issue",
	}

	role, _ := customerInfo["role"].(string)
	senior := strings.Contains(role, "Director") || strings.Contains(role, "C-level")
	urgent := strings.Contains(ticketText, "ASAP") || strings.Contains(ticketText, "urgent")
	critical := strings.Contains(ticketText, "payroll") || strings.Contains(ticketText, "revenue")

	switch {
	case strings.Contains(ticketText, "403") || strings.Contains(ticketText, "access"):
		analysis.Category = ticket.CategoryAccess
	case strings.Contains(ticketText, "billing") || strings.Contains(ticketText, "invoice"):
		analysis.Category = ticket.CategoryBilling
	}

	if urgent && senior && critical {
		analysis.Priority = ticket.PriorityUrgent
		analysis.UrgencyIndicators = []string{"ASAP"}
		analysis.BusinessImpact = "payroll processing blocked"
		analysis.SuggestedResponseType = "urgent_issue"
	}

	return analysis, nil
}

// scriptedResponder drafts from the analysis and records the context it saw.
type scriptedResponder struct {
	err error

	mu       sync.Mutex
	contexts []map[string]any
}

func (r *scriptedResponder) Generate(ctx context.Context, analysis ticket.Analysis, templates map[string]string, contextData map[string]any) (ticket.ResponseSuggestion, error) {
	r.mu.Lock()
	r.contexts = append(r.contexts, contextData)
	r.mu.Unlock()

	if r.err != nil {
		return ticket.ResponseSuggestion{}, r.err
	}

	text := "Thank you for reaching out."
	if analysis.Category == ticket.CategoryBilling {
		text = "Pro-rating applies from your signup date; your first invoice covers a partial billing cycle."
	}

	return ticket.ResponseSuggestion{
		ResponseText:     text,
		ConfidenceScore:  0.9,
		RequiresApproval: analysis.Priority == ticket.PriorityUrgent || analysis.Category == ticket.CategoryAccess,
		SuggestedActions: []string{"follow up in 24h"},
	}, nil
}

var urgentAccessTicket = ticket.SupportTicket{
	ID:      "TKT-001",
	Subject: "Cannot access admin dashboard",
	Content: "Since this morning I keep getting a 403 error. I need this fixed ASAP to process payroll today.",
	CustomerInfo: map[string]any{
		"role":         "Finance Director",
		"plan":         "Enterprise",
		"company_size": "250+",
	},
}

var billingTicket = ticket.SupportTicket{
	ID:      "TKT-002",
	Subject: "Question about billing cycle",
	Content: "Our invoice shows billing from the 15th but we signed up on the 20th. How does pro-rating work?",
	CustomerInfo: map[string]any{
		"role": "Billing Admin",
		"plan": "Professional",
	},
}

func TestResolveCompletedRecordInvariant(t *testing.T) {
	orch := New(&scriptedAnalyzer{}, &scriptedResponder{})

	res := orch.Resolve(context.Background(), urgentAccessTicket)

	assert.Equal(t, ticket.StatusCompleted, res.Status)
	assert.Equal(t, "TKT-001", res.TicketID)
	require.NotNil(t, res.Analysis)
	require.NotNil(t, res.Response)
	assert.Empty(t, res.Error)
	assert.False(t, res.ProcessedAt.IsZero())
	assert.GreaterOrEqual(t, res.ProcessingTime, 0.0)
}

func TestResolveEscalatesUrgentAccessTicket(t *testing.T) {
	orch := New(&scriptedAnalyzer{}, &scriptedResponder{})

	res := orch.Resolve(context.Background(), urgentAccessTicket)

	require.Equal(t, ticket.StatusCompleted, res.Status)
	assert.Equal(t, ticket.CategoryAccess, res.Analysis.Category)
	assert.Equal(t, ticket.PriorityUrgent, res.Analysis.Priority)
	assert.True(t, res.Response.RequiresApproval)
}

func TestResolveBillingTicketStaysBelowUrgent(t *testing.T) {
	orch := New(&scriptedAnalyzer{}, &scriptedResponder{})

	res := orch.Resolve(context.Background(), billingTicket)

	require.Equal(t, ticket.StatusCompleted, res.Status)
	assert.Equal(t, ticket.CategoryBilling, res.Analysis.Category)
	assert.Less(t, res.Analysis.Priority, ticket.PriorityUrgent)
	assert.Contains(t, res.Response.ResponseText, "Pro-rating")
}

func TestResolveConvertsAnalysisErrorToErrorRecord(t *testing.T) {
	orch := New(&scriptedAnalyzer{err: errors.New("missing required field \"category\"")}, &scriptedResponder{})

	res := orch.Resolve(context.Background(), urgentAccessTicket)

	assert.Equal(t, ticket.StatusError, res.Status)
	assert.Nil(t, res.Analysis, "no partial analysis on the error path")
	assert.Nil(t, res.Response)
	assert.NotEmpty(t, res.Error)
	assert.GreaterOrEqual(t, res.ProcessingTime, 0.0)
	assert.False(t, res.ProcessedAt.IsZero())
}

func TestResolveConvertsGenerationErrorToErrorRecord(t *testing.T) {
	orch := New(&scriptedAnalyzer{}, &scriptedResponder{err: errors.New("malformed arguments")})

	res := orch.Resolve(context.Background(), billingTicket)

	assert.Equal(t, ticket.StatusError, res.Status)
	assert.Nil(t, res.Analysis)
	assert.Nil(t, res.Response)
	assert.Contains(t, res.Error, "malformed arguments")
}

// failSecondAnalyzer fails only the ticket with the given id.
type failSecondAnalyzer struct {
	scriptedAnalyzer
	failID string
}

func (a *failSecondAnalyzer) Analyze(ctx context.Context, ticketText string, customerInfo map[string]any) (ticket.Analysis, error) {
	if strings.Contains(ticketText, a.failID) {
		return ticket.Analysis{}, errors.New("injected failure")
	}
	return a.scriptedAnalyzer.Analyze(ctx, ticketText, customerInfo)
}

func TestResolveBatchIsolatesFailures(t *testing.T) {
	tickets := []ticket.SupportTicket{
		urgentAccessTicket,
		{ID: "TKT-BAD", Subject: "TKT-BAD broken ticket", Content: "anything"},
		billingTicket,
	}
	orch := New(&failSecondAnalyzer{failID: "TKT-BAD"}, &scriptedResponder{})

	resolutions := orch.ResolveBatch(context.Background(), tickets)

	require.Len(t, resolutions, 3)
	assert.Equal(t, "TKT-001", resolutions[0].TicketID)
	assert.Equal(t, "TKT-BAD", resolutions[1].TicketID)
	assert.Equal(t, "TKT-002", resolutions[2].TicketID)

	assert.Equal(t, ticket.StatusCompleted, resolutions[0].Status)
	assert.Equal(t, ticket.StatusError, resolutions[1].Status)
	assert.Equal(t, ticket.StatusCompleted, resolutions[2].Status)
	assert.Contains(t, resolutions[1].Error, "injected failure")
}

func TestResolveBatchPreservesOrderWithLimit(t *testing.T) {
	var tickets []ticket.SupportTicket
	for i := 0; i < 8; i++ {
		tkt := billingTicket
		tkt.ID = string(rune('A' + i))
		tickets = append(tickets, tkt)
	}
	orch := New(&scriptedAnalyzer{}, &scriptedResponder{}, WithBatchConcurrency(2))

	resolutions := orch.ResolveBatch(context.Background(), tickets)

	require.Len(t, resolutions, 8)
	for i, res := range resolutions {
		assert.Equal(t, string(rune('A'+i)), res.TicketID)
		assert.Equal(t, ticket.StatusCompleted, res.Status)
	}
}

func TestResponseStepSeesOwnTicketContext(t *testing.T) {
	responder := &scriptedResponder{}
	orch := New(&scriptedAnalyzer{}, responder)

	orch.ResolveBatch(context.Background(), []ticket.SupportTicket{urgentAccessTicket, billingTicket})

	require.Len(t, responder.contexts, 2)
	seen := map[string]map[string]any{}
	for _, c := range responder.contexts {
		seen[c["ticket_id"].(string)] = c
	}
	require.Contains(t, seen, "TKT-001")
	require.Contains(t, seen, "TKT-002")
	assert.Equal(t, "access", seen["TKT-001"]["category"])
	assert.Equal(t, "billing", seen["TKT-002"]["category"])
}

func TestStatsCountsEveryResolution(t *testing.T) {
	orch := New(&failSecondAnalyzer{failID: "TKT-BAD"}, &scriptedResponder{})

	assert.Zero(t, orch.Stats().TotalProcessed)
	assert.Zero(t, orch.Stats().ContextSize)

	orch.Resolve(context.Background(), billingTicket)
	orch.Resolve(context.Background(), ticket.SupportTicket{ID: "TKT-BAD", Subject: "TKT-BAD", Content: "x"})

	stats := orch.Stats()
	assert.Equal(t, int64(2), stats.TotalProcessed)
	assert.NotEmpty(t, stats.LastProcessed)
	assert.Greater(t, stats.ContextSize, 0)
}
