package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/billing"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/persistence/models"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by its ID within a complex
func (r *GormBillRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
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

// billFilterColumns are the Filters map keys FindAll and Count accept
var billFilterColumns = map[string]bool{
	"status":       true,
	"period_year":  true,
	"period_month": true,
}

func applyBillFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		if billFilterColumns[key] {
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}

// FindAll finds bills in a complex matching the filter
func (r *GormBillRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("tenant_id = ?", tenantID)
	query = applyBillFilters(query, filter)
	return r.list(applyListFilter(query, filter, BillSortFields, "due_date"))
}

// FindByProperty finds bills for a property
func (r *GormBillRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID)
	return r.list(applyListFilter(query, filter, BillSortFields, "due_date"))
}

// FindByPeriod finds all bills for a billing period
func (r *GormBillRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, year, month int) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("tenant_id = ? AND period_year = ? AND period_month = ?", tenantID, year, month).
		Order("property_number ASC")
	return r.list(query)
}

// FindByStatus finds bills by status
func (r *GormBillRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status billing.BillStatus, filter shared.Filter) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status)
	return r.list(applyListFilter(query, filter, BillSortFields, "due_date"))
}

// FindOverdue finds unpaid bills whose due date has passed
func (r *GormBillRepository) FindOverdue(ctx context.Context, tenantID uuid.UUID) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("tenant_id = ? AND status IN ? AND due_date < ?",
			tenantID, []billing.BillStatus{billing.BillStatusPending, billing.BillStatusPartial}, time.Now()).
		Order("due_date ASC")
	return r.list(query)
}

// ExistsForPeriod checks if any bill exists for the period in the complex
func (r *GormBillRepository) ExistsForPeriod(ctx context.Context, tenantID uuid.UUID, year, month int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND period_year = ? AND period_month = ?", tenantID, year, month).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a bill
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return billing.ErrDuplicatePeriod
		}
		return err
	}
	return nil
}

// SaveBatch persists a batch of bills. Callers wrap this in a transaction so
// a period's generation is all-or-nothing. A unique index collision means a
// concurrent generation won the race for the same period.
func (r *GormBillRepository) SaveBatch(ctx context.Context, bills []*billing.Bill) error {
	if len(bills) == 0 {
		return nil
	}
	billModels := make([]*models.BillModel, len(bills))
	for i, b := range bills {
		billModels[i] = models.BillModelFromDomain(b)
	}
	if err := r.db.WithContext(ctx).Create(billModels).Error; err != nil {
		if isUniqueViolation(err) {
			return billing.ErrDuplicatePeriod
		}
		return err
	}
	return nil
}

// SaveWithLock updates a bill guarded by its version for optimistic locking.
// Returns a concurrency conflict when another transaction got there first.
func (r *GormBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", bill.ID, bill.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts bills in a complex matching the filter
func (r *GormBillRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).Where("tenant_id = ?", tenantID)
	query = applyBillFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBillRepository) list(query *gorm.DB) ([]billing.Bill, error) {
	var billModels []models.BillModel
	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}
	bills := make([]billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// isUniqueViolation reports whether the error is a PostgreSQL unique index
// violation, either as translated by GORM or as a raw driver error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
