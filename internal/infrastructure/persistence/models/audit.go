package models

import (
	"github.com/google/uuid"

	"github.com/armonia/backend/internal/domain/audit"
)

// ActivityLogModel is the persistence model for an audit log entry.
// Entries are append only; nothing in the codebase updates or deletes them.
type ActivityLogModel struct {
	BaseModel
	TenantID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	ActorName  string        `gorm:"type:varchar(100)"`
	ActorRole  string        `gorm:"type:varchar(30)"`
	EntityType string        `gorm:"type:varchar(50);not null;index:idx_activity_entity,priority:1"`
	EntityID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_activity_entity,priority:2"`
	Action     string        `gorm:"type:varchar(100);not null"`
	Details    audit.Details `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain ActivityLog.
func (m *ActivityLogModel) ToDomain() *audit.ActivityLog {
	return &audit.ActivityLog{
		BaseEntity: m.ToBaseEntity(),
		TenantID:   m.TenantID,
		ActorID:    m.ActorID,
		ActorName:  m.ActorName,
		ActorRole:  m.ActorRole,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     m.Action,
		Details:    m.Details,
	}
}

// ActivityLogModelFromDomain builds the persistence model from a domain ActivityLog.
func ActivityLogModelFromDomain(l *audit.ActivityLog) *ActivityLogModel {
	m := &ActivityLogModel{
		TenantID:   l.TenantID,
		ActorID:    l.ActorID,
		ActorName:  l.ActorName,
		ActorRole:  l.ActorRole,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		Details:    l.Details,
	}
	m.FromBaseEntity(l.BaseEntity)
	return m
}
