package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/pqr"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/persistence/models"
)

// GormTicketRepository implements TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by its ID within a complex
func (r *GormTicketRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*pqr.Ticket, error) {
	var model models.TicketModel
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

// FindByNumber finds a ticket by its human-readable number
func (r *GormTicketRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*pqr.Ticket, error) {
	var model models.TicketModel
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

// FindAll finds all tickets in a complex matching the filter
func (r *GormTicketRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pqr.Ticket, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)
	return r.list(applyListFilter(query, filter, TicketSortFields, "created_at"))
}

// FindByStatus finds tickets by status
func (r *GormTicketRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status pqr.TicketStatus, filter shared.Filter) ([]pqr.Ticket, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status)
	return r.list(applyListFilter(query, filter, TicketSortFields, "created_at"))
}

// FindByReporter finds tickets opened by a user
func (r *GormTicketRepository) FindByReporter(ctx context.Context, tenantID, reporterID uuid.UUID, filter shared.Filter) ([]pqr.Ticket, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("tenant_id = ? AND reporter_id = ?", tenantID, reporterID)
	return r.list(applyListFilter(query, filter, TicketSortFields, "created_at"))
}

// FindByAssignee finds tickets assigned to a staff member
func (r *GormTicketRepository) FindByAssignee(ctx context.Context, tenantID, assigneeID uuid.UUID, filter shared.Filter) ([]pqr.Ticket, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("tenant_id = ? AND assignee_id = ?", tenantID, assigneeID)
	return r.list(applyListFilter(query, filter, TicketSortFields, "created_at"))
}

// Save creates or updates a ticket
func (r *GormTicketRepository) Save(ctx context.Context, ticket *pqr.Ticket) error {
	model := models.TicketModelFromDomain(ticket)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts tickets in a complex matching the filter
func (r *GormTicketRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTicketRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR number ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if ticketType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", ticketType)
	}
	if priority, ok := filter.Filters["priority"]; ok {
		query = query.Where("priority = ?", priority)
	}
	return query
}

func (r *GormTicketRepository) list(query *gorm.DB) ([]pqr.Ticket, error) {
	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	tickets := make([]pqr.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		tickets[i] = *model.ToDomain()
	}
	return tickets, nil
}
