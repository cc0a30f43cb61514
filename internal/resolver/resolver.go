// Package resolver orchestrates the per-ticket pipeline: analysis, context
// snapshot, response generation, and assembly of a terminal resolution
// record. Resolve never fails; every error becomes an error-status record.
package resolver

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tickethub/ticket-resolver/internal/templates"
	"github.com/tickethub/ticket-resolver/internal/ticket"
)

// Analyzer is the analysis-stage contract.
type Analyzer interface {
	Analyze(ctx context.Context, ticketText string, customerInfo map[string]any) (ticket.Analysis, error)
}

// Responder is the generation-stage contract.
type Responder interface {
	Generate(ctx context.Context, analysis ticket.Analysis, templates map[string]string, contextData map[string]any) (ticket.ResponseSuggestion, error)
}

// Stats is a best-effort snapshot of orchestrator state.
type Stats struct {
	// TotalProcessed counts every resolution produced over the orchestrator's
	// lifetime, success or failure.
	TotalProcessed int64 `json:"total_processed"`

	// LastProcessed is the analysis timestamp of the most recent ticket,
	// empty until a ticket completes analysis.
	LastProcessed string `json:"last_processed,omitempty"`

	// ContextSize is the byte length of the last context snapshot serialized
	// as JSON.
	ContextSize int `json:"context_size"`
}

// Orchestrator sequences the two agents and isolates per-ticket failures in
// batch mode.
type Orchestrator struct {
	analyzer  Analyzer
	responder Responder

	// batchLimit caps concurrent resolutions in ResolveBatch; zero means
	// unlimited.
	batchLimit int

	mu             sync.Mutex
	totalProcessed int64
	lastContext    map[string]any
}

type Option func(*Orchestrator)

// WithBatchConcurrency caps the number of tickets resolved concurrently in
// batch mode.
func WithBatchConcurrency(n int) Option {
	return func(o *Orchestrator) { o.batchLimit = n }
}

func New(analyzer Analyzer, responder Responder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		analyzer:  analyzer,
		responder: responder,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Resolve processes one ticket end to end. It never returns an error: any
// agent failure is converted into an error-status resolution, and processing
// time is measured on both paths.
func (o *Orchestrator) Resolve(ctx context.Context, t ticket.SupportTicket) ticket.Resolution {
	start := time.Now()
	slog.Info("Starting analysis", "ticket_id", t.ID)

	ticketText := "Subject: " + t.Subject + "\n\nContent: " + t.Content

	analysis, err := o.analyzer.Analyze(ctx, ticketText, t.CustomerInfo)
	if err != nil {
		return o.fail(t, start, err)
	}

	// Each resolution carries its own context snapshot so concurrent batch
	// resolutions never observe each other's values. The orchestrator only
	// records the snapshot for stats.
	snapshot := map[string]any{
		"ticket_id":          t.ID,
		"analysis_timestamp": time.Now().Format(time.RFC3339),
		"category":           string(analysis.Category),
		"priority":           int(analysis.Priority),
		"customer_info":      t.CustomerInfo,
	}
	o.recordContext(snapshot)

	slog.Info("Generating response", "ticket_id", t.ID)
	response, err := o.responder.Generate(ctx, analysis, templates.Catalog(), snapshot)
	if err != nil {
		return o.fail(t, start, err)
	}

	elapsed := time.Since(start).Seconds()
	slog.Info("Successfully processed ticket", "ticket_id", t.ID, "processing_time", elapsed)

	o.countProcessed()
	return ticket.Resolution{
		TicketID:       t.ID,
		Analysis:       &analysis,
		Response:       &response,
		ProcessedAt:    time.Now(),
		ProcessingTime: elapsed,
		Status:         ticket.StatusCompleted,
	}
}

func (o *Orchestrator) fail(t ticket.SupportTicket, start time.Time, err error) ticket.Resolution {
	slog.Error("Error processing ticket", "ticket_id", t.ID, "error", err)
	o.countProcessed()
	return ticket.Resolution{
		TicketID:       t.ID,
		ProcessedAt:    time.Now(),
		ProcessingTime: time.Since(start).Seconds(),
		Status:         ticket.StatusError,
		Error:          err.Error(),
	}
}

// ResolveBatch resolves all tickets concurrently and returns one resolution
// per input ticket in input order. A failed ticket never aborts its siblings.
func (o *Orchestrator) ResolveBatch(ctx context.Context, tickets []ticket.SupportTicket) []ticket.Resolution {
	slog.Info("Starting batch processing", "tickets", len(tickets))

	resolutions := make([]ticket.Resolution, len(tickets))

	g := new(errgroup.Group)
	if o.batchLimit > 0 {
		g.SetLimit(o.batchLimit)
	}
	for i, t := range tickets {
		i, t := i, t
		g.Go(func() error {
			resolutions[i] = o.Resolve(ctx, t)
			return nil
		})
	}
	// Resolve never errors, so Wait only synchronizes.
	_ = g.Wait()

	successful := 0
	for _, r := range resolutions {
		if r.Status == ticket.StatusCompleted {
			successful++
		}
	}
	slog.Info("Batch processing completed", "successful", successful, "total", len(tickets))

	return resolutions
}

func (o *Orchestrator) recordContext(snapshot map[string]any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastContext = snapshot
}

func (o *Orchestrator) countProcessed() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.totalProcessed++
}

// Stats returns a best-effort snapshot of orchestrator state.
func (o *Orchestrator) Stats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()

	stats := Stats{TotalProcessed: o.totalProcessed}
	if o.lastContext != nil {
		if ts, ok := o.lastContext["analysis_timestamp"].(string); ok {
			stats.LastProcessed = ts
		}
		if serialized, err := json.Marshal(o.lastContext); err == nil {
			stats.ContextSize = len(serialized)
		}
	}
	return stats
}
