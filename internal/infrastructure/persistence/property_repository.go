package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/property"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/persistence/models"
)

// GormPropertyRepository implements property.Repository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID within a complex
func (r *GormPropertyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a property by its unit number within a complex
func (r *GormPropertyRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND number = ?", tenantID, strings.ToUpper(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all properties in a complex matching the filter
func (r *GormPropertyRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]property.Property, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	return r.list(applyListFilter(query, filter, PropertySortFields, "number"))
}

// FindActive finds all active properties in a complex
func (r *GormPropertyRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]property.Property, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("number ASC")
	return r.list(query)
}

// FindByResident finds properties where the given user lives or owns.
// Residents are stored as a JSONB array of UUIDs on the property row.
func (r *GormPropertyRepository) FindByResident(ctx context.Context, tenantID, userID uuid.UUID) ([]property.Property, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Where("tenant_id = ? AND (owner_id = ? OR resident_ids @> ?)",
			tenantID, userID, `["`+userID.String()+`"]`).
		Order("number ASC")
	return r.list(query)
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, prop *property.Property) error {
	model := models.PropertyModelFromDomain(prop)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts properties in a complex matching the filter
func (r *GormPropertyRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a unit number is already registered in the complex
func (r *GormPropertyRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PropertyModel{}).
		Where("tenant_id = ? AND number = ?", tenantID, strings.ToUpper(number)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormPropertyRepository) list(query *gorm.DB) ([]property.Property, error) {
	var propertyModels []models.PropertyModel
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	properties := make([]property.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}
