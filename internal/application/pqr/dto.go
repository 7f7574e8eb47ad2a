package pqr

import (
	"time"

	"github.com/armonia/backend/internal/domain/pqr"
	"github.com/google/uuid"
)

// ==================== Ticket DTOs ====================

// CreateTicketRequest represents a request to open a PQR ticket
type CreateTicketRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=300"`
	Description string     `json:"description" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Priority    string     `json:"priority" binding:"required"`
	PropertyID  *uuid.UUID `json:"property_id"`
	Tags        []string   `json:"tags"`
}

// ChangeStatusRequest represents a request to move a ticket to a new status
type ChangeStatusRequest struct {
	Status           string `json:"status" binding:"required"`
	Reason           string `json:"reason"`
	Resolution       string `json:"resolution"`
	RootCause        string `json:"root_cause"`
	PreventiveAction string `json:"preventive_action"`
}

// AssignTicketRequest represents a request to assign a ticket to staff
type AssignTicketRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" binding:"required"`
}

// TicketListFilter carries the query parameters for listing tickets
type TicketListFilter struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	Type      string `form:"type"`
	Priority  string `form:"priority"`
	Mine      bool   `form:"mine"`
	Assigned  bool   `form:"assigned"`
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	ID               uuid.UUID  `json:"id"`
	Number           string     `json:"number"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Type             string     `json:"type"`
	Priority         string     `json:"priority"`
	Status           string     `json:"status"`
	ReporterID       uuid.UUID  `json:"reporter_id"`
	ReporterName     string     `json:"reporter_name"`
	PropertyID       *uuid.UUID `json:"property_id,omitempty"`
	AssigneeID       *uuid.UUID `json:"assignee_id,omitempty"`
	AssigneeName     string     `json:"assignee_name,omitempty"`
	Resolution       string     `json:"resolution,omitempty"`
	RootCause        string     `json:"root_cause,omitempty"`
	PreventiveAction string     `json:"preventive_action,omitempty"`
	Public           bool       `json:"public"`
	Tags             []string   `json:"tags"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
	ReopenedAt       *time.Time `json:"reopened_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToTicketResponse converts a ticket aggregate to its response representation
func ToTicketResponse(t *pqr.Ticket) TicketResponse {
	return TicketResponse{
		ID:               t.ID,
		Number:           t.Number,
		Title:            t.Title,
		Description:      t.Description,
		Type:             string(t.Type),
		Priority:         string(t.Priority),
		Status:           string(t.Status),
		ReporterID:       t.ReporterID,
		ReporterName:     t.ReporterName,
		PropertyID:       t.PropertyID,
		AssigneeID:       t.AssigneeID,
		AssigneeName:     t.AssigneeName,
		Resolution:       t.Resolution,
		RootCause:        t.RootCause,
		PreventiveAction: t.PreventiveAction,
		Public:           t.Public,
		Tags:             t.Tags,
		ClosedAt:         t.ClosedAt,
		ReopenedAt:       t.ReopenedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// ==================== Comment DTOs ====================

// AddCommentRequest represents a request to comment on a ticket
type AddCommentRequest struct {
	Content  string     `json:"content" binding:"required"`
	Internal bool       `json:"internal"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID         uuid.UUID  `json:"id"`
	TicketID   uuid.UUID  `json:"ticket_id"`
	AuthorID   uuid.UUID  `json:"author_id"`
	AuthorName string     `json:"author_name"`
	AuthorRole string     `json:"author_role"`
	Content    string     `json:"content"`
	Internal   bool       `json:"internal"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToCommentResponse converts a comment to its response representation
func ToCommentResponse(c *pqr.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		TicketID:   c.TicketID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		AuthorRole: c.AuthorRole,
		Content:    c.Content,
		Internal:   c.Internal,
		ParentID:   c.ParentID,
		CreatedAt:  c.CreatedAt,
	}
}
