package audit

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Details holds free-form structured context for a log entry, stored as JSONB
type Details map[string]interface{}

// Value implements driver.Valuer for JSONB storage
func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(map[string]interface{}{})
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB retrieval
func (d *Details) Scan(value interface{}) error {
	if value == nil {
		*d = Details{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Details: unsupported type")
	}
	if len(bytes) == 0 {
		*d = Details{}
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// ActivityLog is an append-only record of a user action on an entity.
// Entries are never updated or deleted.
type ActivityLog struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	ActorID    uuid.UUID
	ActorName  string
	ActorRole  string
	EntityType string
	EntityID   uuid.UUID
	Action     string
	Details    Details
}

// NewActivityLog creates an activity log entry
func NewActivityLog(tenantID, actorID uuid.UUID, actorName, actorRole, entityType string, entityID uuid.UUID, action string, details Details) (*ActivityLog, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID is required")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID is required")
	}
	if entityType == "" || action == "" {
		return nil, shared.NewDomainError("INVALID_LOG", "Entity type and action are required")
	}

	if details == nil {
		details = Details{}
	}

	return &ActivityLog{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ActorID:    actorID,
		ActorName:  actorName,
		ActorRole:  actorRole,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	}, nil
}

// Repository defines the interface for activity log persistence
type Repository interface {
	// Save appends a log entry
	Save(ctx context.Context, entry *ActivityLog) error

	// FindByEntity finds entries for a specific entity, newest first
	FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]ActivityLog, error)

	// FindByActor finds entries produced by a user, newest first
	FindByActor(ctx context.Context, tenantID, actorID uuid.UUID, filter shared.Filter) ([]ActivityLog, error)
}
