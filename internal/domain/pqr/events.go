package pqr

import (
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeTicket = "Ticket"

const (
	EventTypeTicketCreated       = "TicketCreated"
	EventTypeTicketAssigned      = "TicketAssigned"
	EventTypeTicketStatusChanged = "TicketStatusChanged"
)

// TicketCreatedEvent is published when a ticket is submitted
type TicketCreatedEvent struct {
	shared.BaseDomainEvent
	Number   string         `json:"number"`
	Type     TicketType     `json:"type"`
	Priority TicketPriority `json:"priority"`
	Reporter uuid.UUID      `json:"reporter_id"`
}

// NewTicketCreatedEvent creates a new TicketCreatedEvent
func NewTicketCreatedEvent(t *Ticket) *TicketCreatedEvent {
	return &TicketCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketCreated, AggregateTypeTicket, t.ID, t.TenantID),
		Number:          t.Number,
		Type:            t.Type,
		Priority:        t.Priority,
		Reporter:        t.ReporterID,
	}
}

// TicketAssignedEvent is published when a ticket gets an assignee
type TicketAssignedEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	AssigneeID uuid.UUID `json:"assignee_id"`
}

// NewTicketAssignedEvent creates a new TicketAssignedEvent
func NewTicketAssignedEvent(t *Ticket) *TicketAssignedEvent {
	evt := &TicketAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketAssigned, AggregateTypeTicket, t.ID, t.TenantID),
		Number:          t.Number,
	}
	if t.AssigneeID != nil {
		evt.AssigneeID = *t.AssigneeID
	}
	return evt
}

// TicketStatusChangedEvent is published on every successful transition
type TicketStatusChangedEvent struct {
	shared.BaseDomainEvent
	Number         string       `json:"number"`
	PreviousStatus TicketStatus `json:"previous_status"`
	NewStatus      TicketStatus `json:"new_status"`
}

// NewTicketStatusChangedEvent creates a new TicketStatusChangedEvent
func NewTicketStatusChangedEvent(t *Ticket, previous, next TicketStatus) *TicketStatusChangedEvent {
	return &TicketStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketStatusChanged, AggregateTypeTicket, t.ID, t.TenantID),
		Number:          t.Number,
		PreviousStatus:  previous,
		NewStatus:       next,
	}
}
