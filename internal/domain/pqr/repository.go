package pqr

import (
	"context"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	// FindByID finds a ticket by its ID within a complex
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Ticket, error)

	// FindByNumber finds a ticket by its human-readable number
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Ticket, error)

	// FindAll finds all tickets in a complex matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Ticket, error)

	// FindByStatus finds tickets by status
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status TicketStatus, filter shared.Filter) ([]Ticket, error)

	// FindByReporter finds tickets opened by a user
	FindByReporter(ctx context.Context, tenantID, reporterID uuid.UUID, filter shared.Filter) ([]Ticket, error)

	// FindByAssignee finds tickets assigned to a staff member
	FindByAssignee(ctx context.Context, tenantID, assigneeID uuid.UUID, filter shared.Filter) ([]Ticket, error)

	// Save creates or updates a ticket
	Save(ctx context.Context, ticket *Ticket) error

	// Count counts tickets in a complex matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// FindByID finds a comment by its ID within a complex
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Comment, error)

	// FindByTicket finds all comments on a ticket in creation order
	FindByTicket(ctx context.Context, tenantID, ticketID uuid.UUID) ([]Comment, error)

	// Save creates a comment
	Save(ctx context.Context, comment *Comment) error
}
