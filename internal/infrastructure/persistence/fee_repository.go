package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/billing"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/persistence/models"
)

// GormFeeRepository implements FeeRepository using GORM
type GormFeeRepository struct {
	db *gorm.DB
}

// NewGormFeeRepository creates a new GormFeeRepository
func NewGormFeeRepository(db *gorm.DB) *GormFeeRepository {
	return &GormFeeRepository{db: db}
}

// FindByID finds a fee by its ID within a complex
func (r *GormFeeRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Fee, error) {
	var model models.FeeModel
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

// FindAll finds all fees in a complex matching the filter
func (r *GormFeeRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Fee, error) {
	query := r.db.WithContext(ctx).Model(&models.FeeModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	return r.list(applyListFilter(query, filter, FeeSortFields, "name"))
}

// FindActive finds all active fees in a complex
func (r *GormFeeRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]billing.Fee, error) {
	query := r.db.WithContext(ctx).Model(&models.FeeModel{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name ASC")
	return r.list(query)
}

// Save creates or updates a fee
func (r *GormFeeRepository) Save(ctx context.Context, fee *billing.Fee) error {
	model := models.FeeModelFromDomain(fee)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a fee
func (r *GormFeeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FeeModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormFeeRepository) list(query *gorm.DB) ([]billing.Fee, error) {
	var feeModels []models.FeeModel
	if err := query.Find(&feeModels).Error; err != nil {
		return nil, err
	}
	fees := make([]billing.Fee, len(feeModels))
	for i, model := range feeModels {
		fees[i] = *model.ToDomain()
	}
	return fees, nil
}
