package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/pqr"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/persistence/models"
)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID finds a comment by its ID within a complex
func (r *GormCommentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*pqr.Comment, error) {
	var model models.CommentModel
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

// FindByTicket finds all comments on a ticket in creation order
func (r *GormCommentRepository) FindByTicket(ctx context.Context, tenantID, ticketID uuid.UUID) ([]pqr.Comment, error) {
	var commentModels []models.CommentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND ticket_id = ?", tenantID, ticketID).
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return nil, err
	}

	comments := make([]pqr.Comment, len(commentModels))
	for i, model := range commentModels {
		comments[i] = *model.ToDomain()
	}
	return comments, nil
}

// Save creates a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *pqr.Comment) error {
	model := models.CommentModelFromDomain(comment)
	return r.db.WithContext(ctx).Save(model).Error
}
