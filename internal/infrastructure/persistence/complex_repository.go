package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/persistence/models"
)

// GormComplexRepository implements ComplexRepository using GORM
type GormComplexRepository struct {
	db *gorm.DB
}

// NewGormComplexRepository creates a new GormComplexRepository
func NewGormComplexRepository(db *gorm.DB) *GormComplexRepository {
	return &GormComplexRepository{db: db}
}

// FindByID finds a complex by its ID
func (r *GormComplexRepository) FindByID(ctx context.Context, id uuid.UUID) (*complexes.ResidentialComplex, error) {
	var model models.ComplexModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a complex by its unique code
func (r *GormComplexRepository) FindByCode(ctx context.Context, code string) (*complexes.ResidentialComplex, error) {
	var model models.ComplexModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all complexes matching the filter
func (r *GormComplexRepository) FindAll(ctx context.Context, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	query := r.db.WithContext(ctx).Model(&models.ComplexModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR city ILIKE ?", pattern, pattern, pattern)
	}
	return r.list(applyListFilter(query, filter, ComplexSortFields, "created_at"))
}

// FindByStatus finds complexes by status
func (r *GormComplexRepository) FindByStatus(ctx context.Context, status complexes.ComplexStatus, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	query := r.db.WithContext(ctx).Model(&models.ComplexModel{}).Where("status = ?", status)
	return r.list(applyListFilter(query, filter, ComplexSortFields, "created_at"))
}

// FindByPlan finds complexes by subscription plan
func (r *GormComplexRepository) FindByPlan(ctx context.Context, plan complexes.PlanTier, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	query := r.db.WithContext(ctx).Model(&models.ComplexModel{}).Where("plan = ?", plan)
	return r.list(applyListFilter(query, filter, ComplexSortFields, "created_at"))
}

// FindTrialExpiring finds complexes whose trial expires within the given days
func (r *GormComplexRepository) FindTrialExpiring(ctx context.Context, withinDays int) ([]complexes.ResidentialComplex, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, withinDays)
	query := r.db.WithContext(ctx).Model(&models.ComplexModel{}).
		Where("status = ? AND trial_ends_at IS NOT NULL AND trial_ends_at BETWEEN ? AND ?",
			complexes.ComplexStatusTrial, now, cutoff).
		Order("trial_ends_at ASC")
	return r.list(query)
}

// Save creates or updates a complex
func (r *GormComplexRepository) Save(ctx context.Context, complex *complexes.ResidentialComplex) error {
	model := models.ComplexModelFromDomain(complex)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a complex
func (r *GormComplexRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ComplexModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts complexes matching the filter
func (r *GormComplexRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ComplexModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR city ILIKE ?", pattern, pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a complex with the given code exists
func (r *GormComplexRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ComplexModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormComplexRepository) list(query *gorm.DB) ([]complexes.ResidentialComplex, error) {
	var complexModels []models.ComplexModel
	if err := query.Find(&complexModels).Error; err != nil {
		return nil, err
	}
	result := make([]complexes.ResidentialComplex, len(complexModels))
	for i, model := range complexModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}
