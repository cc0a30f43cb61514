package apimodels

import "github.com/tickethub/ticket-resolver/internal/ticket"

type ResolveRequest struct {
	// Ticket is the support request to resolve
	Ticket ticket.SupportTicket `json:"ticket"`
}

type BatchResolveRequest struct {
	// Tickets are resolved concurrently; the response preserves input order
	Tickets []ticket.SupportTicket `json:"tickets"`
}

type BatchResolveResponse struct {
	// Resolutions, one per submitted ticket, in input order
	Resolutions []ticket.Resolution `json:"resolutions"`

	// Completed counts resolutions with status "completed"
	Completed int `json:"completed"`

	// Total is the number of submitted tickets
	Total int `json:"total"`
}
