package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/persistence/models"
)

// GormPlanFeatureRepository implements PlanFeatureRepository using GORM
type GormPlanFeatureRepository struct {
	db *gorm.DB
}

// NewGormPlanFeatureRepository creates a new GormPlanFeatureRepository
func NewGormPlanFeatureRepository(db *gorm.DB) *GormPlanFeatureRepository {
	return &GormPlanFeatureRepository{db: db}
}

// FindByPlan finds all features for a specific plan
func (r *GormPlanFeatureRepository) FindByPlan(ctx context.Context, planID complexes.PlanTier) ([]complexes.PlanFeature, error) {
	var featureModels []models.PlanFeatureModel
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("feature_key ASC").
		Find(&featureModels).Error; err != nil {
		return nil, err
	}

	features := make([]complexes.PlanFeature, len(featureModels))
	for i, model := range featureModels {
		features[i] = *model.ToDomain()
	}
	return features, nil
}

// FindByPlanAndFeature finds a specific feature for a plan
func (r *GormPlanFeatureRepository) FindByPlanAndFeature(ctx context.Context, planID complexes.PlanTier, featureKey complexes.FeatureKey) (*complexes.PlanFeature, error) {
	var model models.PlanFeatureModel
	if err := r.db.WithContext(ctx).
		Where("plan_id = ? AND feature_key = ?", planID, featureKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// HasFeature checks if a plan has a specific feature enabled.
// A feature with no row is treated as disabled.
func (r *GormPlanFeatureRepository) HasFeature(ctx context.Context, planID complexes.PlanTier, featureKey complexes.FeatureKey) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PlanFeatureModel{}).
		Where("plan_id = ? AND feature_key = ? AND enabled = ?", planID, featureKey, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a plan feature
func (r *GormPlanFeatureRepository) Save(ctx context.Context, feature *complexes.PlanFeature) error {
	model := models.PlanFeatureModelFromDomain(feature)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch upserts a batch of plan features. Used when seeding entitlements.
func (r *GormPlanFeatureRepository) SaveBatch(ctx context.Context, features []complexes.PlanFeature) error {
	if len(features) == 0 {
		return nil
	}
	featureModels := make([]*models.PlanFeatureModel, len(features))
	for i := range features {
		featureModels[i] = models.PlanFeatureModelFromDomain(&features[i])
	}
	return r.db.WithContext(ctx).Save(featureModels).Error
}

// DeleteByPlan deletes all features for a plan
func (r *GormPlanFeatureRepository) DeleteByPlan(ctx context.Context, planID complexes.PlanTier) error {
	return r.db.WithContext(ctx).
		Delete(&models.PlanFeatureModel{}, "plan_id = ?", planID).Error
}
