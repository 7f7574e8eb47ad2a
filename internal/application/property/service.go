package property

import (
	"context"

	"github.com/armonia/backend/internal/domain/property"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles property registry operations for a complex
type Service struct {
	propertyRepo property.Repository
	logger       *zap.Logger
}

// NewService creates a new property Service
func NewService(propertyRepo property.Repository, logger *zap.Logger) *Service {
	return &Service{propertyRepo: propertyRepo, logger: logger}
}

// Register adds a unit to the complex's registry. Unit numbers are unique
// within a complex, case-insensitively.
func (s *Service) Register(ctx context.Context, tenantID uuid.UUID, req RegisterPropertyRequest) (*PropertyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PropertyService", "Register")
	defer span.End()
	telemetry.SetAttributes(span, "tenant.id", tenantID.String(), "property.number", req.Number)

	exists, err := s.propertyRepo.ExistsByNumber(ctx, tenantID, req.Number)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("NUMBER_TAKEN", "Ya existe una unidad con ese número")
	}

	prop, err := property.NewProperty(tenantID, req.Number, property.PropertyType(req.Type), req.Area)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !req.Coefficient.IsZero() || req.Notes != "" {
		if err := prop.Update(prop.Type, prop.Area, req.Coefficient, req.Notes); err != nil {
			return nil, err
		}
	}
	if req.OwnerID != nil {
		if err := prop.SetOwner(*req.OwnerID); err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToPropertyResponse(prop)
	return &resp, nil
}

// Update changes a unit's type, area, coefficient or notes
func (s *Service) Update(ctx context.Context, tenantID, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PropertyService", "Update")
	defer span.End()

	prop, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	if err := prop.Update(property.PropertyType(req.Type), req.Area, req.Coefficient, req.Notes); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToPropertyResponse(prop)
	return &resp, nil
}

// SetOwner assigns the unit's owner
func (s *Service) SetOwner(ctx context.Context, tenantID, propertyID uuid.UUID, req SetOwnerRequest) (*PropertyResponse, error) {
	prop, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	if err := prop.SetOwner(req.OwnerID); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		return nil, err
	}
	resp := ToPropertyResponse(prop)
	return &resp, nil
}

// AddResident records a user as living in the unit
func (s *Service) AddResident(ctx context.Context, tenantID, propertyID uuid.UUID, req ResidentRequest) error {
	prop, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return err
	}
	if err := prop.AddResident(req.UserID); err != nil {
		return err
	}
	return s.propertyRepo.Save(ctx, prop)
}

// RemoveResident removes a user from the unit's resident list
func (s *Service) RemoveResident(ctx context.Context, tenantID, propertyID uuid.UUID, req ResidentRequest) error {
	prop, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return err
	}
	if err := prop.RemoveResident(req.UserID); err != nil {
		return err
	}
	return s.propertyRepo.Save(ctx, prop)
}

// Activate returns a unit to the billable registry
func (s *Service) Activate(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	prop, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return err
	}
	if err := prop.Activate(); err != nil {
		return err
	}
	return s.propertyRepo.Save(ctx, prop)
}

// Deactivate takes a unit out of the billable registry
func (s *Service) Deactivate(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	prop, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return err
	}
	if err := prop.Deactivate(); err != nil {
		return err
	}
	return s.propertyRepo.Save(ctx, prop)
}

// GetByID retrieves a unit
func (s *Service) GetByID(ctx context.Context, tenantID, propertyID uuid.UUID) (*PropertyResponse, error) {
	prop, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	resp := ToPropertyResponse(prop)
	return &resp, nil
}

// List retrieves units matching the filter with pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[PropertyResponse], error) {
	properties, err := s.propertyRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.propertyRepo.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = ToPropertyResponse(&properties[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByResident retrieves the units a user owns or lives in
func (s *Service) ListByResident(ctx context.Context, tenantID, userID uuid.UUID) ([]PropertyResponse, error) {
	properties, err := s.propertyRepo.FindByResident(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = ToPropertyResponse(&properties[i])
	}
	return responses, nil
}
