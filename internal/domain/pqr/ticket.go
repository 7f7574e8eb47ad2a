package pqr

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TicketType classifies a PQR submission
type TicketType string

const (
	TicketTypePetition   TicketType = "PETITION"
	TicketTypeComplaint  TicketType = "COMPLAINT"
	TicketTypeClaim      TicketType = "CLAIM"
	TicketTypeSuggestion TicketType = "SUGGESTION"
)

// IsValid checks if the ticket type is known
func (t TicketType) IsValid() bool {
	switch t {
	case TicketTypePetition, TicketTypeComplaint, TicketTypeClaim, TicketTypeSuggestion:
		return true
	}
	return false
}

// TicketPriority represents the urgency of a ticket
type TicketPriority string

const (
	PriorityLow      TicketPriority = "LOW"
	PriorityMedium   TicketPriority = "MEDIUM"
	PriorityHigh     TicketPriority = "HIGH"
	PriorityUrgent   TicketPriority = "URGENT"
	PriorityCritical TicketPriority = "CRITICAL"
)

// IsValid checks if the priority is known
func (p TicketPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent, PriorityCritical:
		return true
	}
	return false
}

// TicketStatus represents where a ticket sits in its lifecycle
type TicketStatus string

const (
	StatusDraft       TicketStatus = "DRAFT"
	StatusSubmitted   TicketStatus = "SUBMITTED"
	StatusOpen        TicketStatus = "OPEN"
	StatusInReview    TicketStatus = "IN_REVIEW"
	StatusAssigned    TicketStatus = "ASSIGNED"
	StatusInProgress  TicketStatus = "IN_PROGRESS"
	StatusWaitingInfo TicketStatus = "WAITING_INFO"
	StatusResolved    TicketStatus = "RESOLVED"
	StatusClosed      TicketStatus = "CLOSED"
	StatusCancelled   TicketStatus = "CANCELLED"
	StatusReopened    TicketStatus = "REOPENED"
	StatusRejected    TicketStatus = "REJECTED"
)

// IsValid checks if the status is known
func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusOpen, StatusInReview, StatusAssigned,
		StatusInProgress, StatusWaitingInfo, StatusResolved, StatusClosed,
		StatusCancelled, StatusReopened, StatusRejected:
		return true
	}
	return false
}

// StringSlice stores a list of tags as JSONB
type StringSlice []string

// Value implements driver.Valuer for JSONB storage
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringSlice: unsupported type")
	}
	if len(bytes) == 0 {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Ticket is a resident-submitted petition, complaint or claim tracked
// through a role-gated status lifecycle.
type Ticket struct {
	shared.TenantAggregateRoot
	Number           string
	Title            string
	Description      string
	Category         string
	Type             TicketType
	Priority         TicketPriority
	Status           TicketStatus
	ReporterID       uuid.UUID
	ReporterName     string
	ReporterRole     string
	PropertyID       *uuid.UUID
	AssigneeID       *uuid.UUID
	AssigneeName     string
	Resolution       string
	RootCause        string
	PreventiveAction string
	Public           bool
	Tags             StringSlice
	ClosedAt         *time.Time
	ReopenedAt       *time.Time
}

// NewTicket creates a new ticket in SUBMITTED status
func NewTicket(tenantID uuid.UUID, title, description string, ticketType TicketType, priority TicketPriority, reporterID uuid.UUID, reporterName, reporterRole string) (*Ticket, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID is required")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Ticket title cannot be empty")
	}
	if len(title) > 300 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Ticket title cannot exceed 300 characters")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Ticket description cannot be empty")
	}
	if !ticketType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TICKET_TYPE", "Invalid ticket type")
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Invalid ticket priority")
	}
	if reporterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REPORTER", "Reporter ID is required")
	}

	t := &Ticket{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, reporterID),
		Number:              generateTicketNumber(),
		Title:               title,
		Description:         description,
		Type:                ticketType,
		Priority:            priority,
		Status:              StatusSubmitted,
		ReporterID:          reporterID,
		ReporterName:        reporterName,
		ReporterRole:        reporterRole,
		Public:              false,
		Tags:                StringSlice{},
	}

	t.AddDomainEvent(NewTicketCreatedEvent(t))

	return t, nil
}

func generateTicketNumber() string {
	now := time.Now()
	return fmt.Sprintf("PQR-%d%02d-%s", now.Year(), int(now.Month()), uuid.New().String()[:8])
}

// Assign assigns the ticket to a staff member and moves it to ASSIGNED
func (t *Ticket) Assign(assigneeID uuid.UUID, assigneeName string) error {
	if assigneeID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee ID is required")
	}
	if t.Status == StatusClosed || t.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot assign a closed or cancelled ticket")
	}

	t.AssigneeID = &assigneeID
	t.AssigneeName = assigneeName
	if t.Status == StatusSubmitted || t.Status == StatusOpen || t.Status == StatusInReview {
		t.Status = StatusAssigned
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTicketAssignedEvent(t))

	return nil
}

// IsAssignedTo reports whether the given user is the current assignee
func (t *Ticket) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// IsReportedBy reports whether the given user opened the ticket
func (t *Ticket) IsReportedBy(userID uuid.UUID) bool {
	return t.ReporterID == userID
}

// ApplyTransition moves the ticket to the target status after the decision
// table has authorized the request, persisting any supplied resolution text.
func (t *Ticket) ApplyTransition(target TicketStatus, input TransitionInput) {
	previous := t.Status
	t.Status = target

	if input.Resolution != "" {
		t.Resolution = input.Resolution
	}
	if input.RootCause != "" {
		t.RootCause = input.RootCause
	}
	if input.PreventiveAction != "" {
		t.PreventiveAction = input.PreventiveAction
	}

	now := time.Now()
	switch target {
	case StatusClosed:
		t.ClosedAt = &now
	case StatusReopened:
		t.ReopenedAt = &now
		t.ClosedAt = nil
	}

	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTicketStatusChangedEvent(t, previous, target))
}

// SetTags replaces the ticket's tag set
func (t *Ticket) SetTags(tags []string) {
	t.Tags = tags
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// MakePublic marks the ticket visible to all residents of the complex
func (t *Ticket) MakePublic() {
	t.Public = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}
