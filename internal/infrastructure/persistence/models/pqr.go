package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/armonia/backend/internal/domain/pqr"
)

// TicketModel is the persistence model for a PQR ticket.
type TicketModel struct {
	TenantAggregateModel
	Number           string             `gorm:"type:varchar(30);not null;uniqueIndex:idx_ticket_tenant_number,priority:2"`
	Title            string             `gorm:"type:varchar(200);not null"`
	Description      string             `gorm:"type:text;not null"`
	Category         string             `gorm:"type:varchar(100)"`
	Type             pqr.TicketType     `gorm:"type:varchar(20);not null"`
	Priority         pqr.TicketPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'"`
	Status           pqr.TicketStatus   `gorm:"type:varchar(20);not null;default:'SUBMITTED';index"`
	ReporterID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	ReporterName     string             `gorm:"type:varchar(100)"`
	ReporterRole     string             `gorm:"type:varchar(30)"`
	PropertyID       *uuid.UUID         `gorm:"type:uuid;index"`
	AssigneeID       *uuid.UUID         `gorm:"type:uuid;index"`
	AssigneeName     string             `gorm:"type:varchar(100)"`
	Resolution       string             `gorm:"type:text"`
	RootCause        string             `gorm:"type:text"`
	PreventiveAction string             `gorm:"type:text"`
	Public           bool               `gorm:"not null;default:false"`
	Tags             pqr.StringSlice    `gorm:"type:jsonb"`
	ClosedAt         *time.Time
	ReopenedAt       *time.Time
}

// TableName returns the table name for GORM
func (TicketModel) TableName() string {
	return "pqr_tickets"
}

// ToDomain converts the persistence model to a domain Ticket.
func (m *TicketModel) ToDomain() *pqr.Ticket {
	return &pqr.Ticket{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		Title:               m.Title,
		Description:         m.Description,
		Category:            m.Category,
		Type:                m.Type,
		Priority:            m.Priority,
		Status:              m.Status,
		ReporterID:          m.ReporterID,
		ReporterName:        m.ReporterName,
		ReporterRole:        m.ReporterRole,
		PropertyID:          m.PropertyID,
		AssigneeID:          m.AssigneeID,
		AssigneeName:        m.AssigneeName,
		Resolution:          m.Resolution,
		RootCause:           m.RootCause,
		PreventiveAction:    m.PreventiveAction,
		Public:              m.Public,
		Tags:                m.Tags,
		ClosedAt:            m.ClosedAt,
		ReopenedAt:          m.ReopenedAt,
	}
}

// TicketModelFromDomain builds the persistence model from a domain Ticket.
func TicketModelFromDomain(t *pqr.Ticket) *TicketModel {
	m := &TicketModel{
		Number:           t.Number,
		Title:            t.Title,
		Description:      t.Description,
		Category:         t.Category,
		Type:             t.Type,
		Priority:         t.Priority,
		Status:           t.Status,
		ReporterID:       t.ReporterID,
		ReporterName:     t.ReporterName,
		ReporterRole:     t.ReporterRole,
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
	}
	m.FromTenantAggregateRoot(t.TenantAggregateRoot)
	return m
}

// CommentModel is the persistence model for a ticket comment.
type CommentModel struct {
	BaseModel
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	TicketID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AuthorID    uuid.UUID       `gorm:"type:uuid;not null"`
	AuthorName  string          `gorm:"type:varchar(100)"`
	AuthorRole  string          `gorm:"type:varchar(30)"`
	Content     string          `gorm:"type:text;not null"`
	Internal    bool            `gorm:"not null;default:false"`
	ParentID    *uuid.UUID      `gorm:"type:uuid"`
	Attachments pqr.Attachments `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "pqr_comments"
}

// ToDomain converts the persistence model to a domain Comment.
func (m *CommentModel) ToDomain() *pqr.Comment {
	return &pqr.Comment{
		BaseEntity:  m.ToBaseEntity(),
		TenantID:    m.TenantID,
		TicketID:    m.TicketID,
		AuthorID:    m.AuthorID,
		AuthorName:  m.AuthorName,
		AuthorRole:  m.AuthorRole,
		Content:     m.Content,
		Internal:    m.Internal,
		ParentID:    m.ParentID,
		Attachments: m.Attachments,
	}
}

// CommentModelFromDomain builds the persistence model from a domain Comment.
func CommentModelFromDomain(c *pqr.Comment) *CommentModel {
	m := &CommentModel{
		TenantID:    c.TenantID,
		TicketID:    c.TicketID,
		AuthorID:    c.AuthorID,
		AuthorName:  c.AuthorName,
		AuthorRole:  c.AuthorRole,
		Content:     c.Content,
		Internal:    c.Internal,
		ParentID:    c.ParentID,
		Attachments: c.Attachments,
	}
	m.FromBaseEntity(c.BaseEntity)
	return m
}
