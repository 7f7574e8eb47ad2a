package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/audit"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/persistence/models"
)

// GormActivityLogRepository implements audit.Repository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Save appends a log entry
func (r *GormActivityLogRepository) Save(ctx context.Context, entry *audit.ActivityLog) error {
	model := models.ActivityLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByEntity finds entries for a specific entity, newest first
func (r *GormActivityLogRepository) FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLogModel{}).
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ?", tenantID, entityType, entityID).
		Order("created_at DESC")
	return r.list(applyPagination(query, filter))
}

// FindByActor finds entries produced by a user, newest first
func (r *GormActivityLogRepository) FindByActor(ctx context.Context, tenantID, actorID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLogModel{}).
		Where("tenant_id = ? AND actor_id = ?", tenantID, actorID).
		Order("created_at DESC")
	return r.list(applyPagination(query, filter))
}

func (r *GormActivityLogRepository) list(query *gorm.DB) ([]audit.ActivityLog, error) {
	var logModels []models.ActivityLogModel
	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	entries := make([]audit.ActivityLog, len(logModels))
	for i, model := range logModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}
