package billing

import (
	"context"

	"github.com/armonia/backend/internal/domain/billing"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/armonia/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// FeeService handles fee definition management
type FeeService struct {
	feeRepo billing.FeeRepository
}

// NewFeeService creates a new FeeService
func NewFeeService(feeRepo billing.FeeRepository) *FeeService {
	return &FeeService{feeRepo: feeRepo}
}

// Create defines a new fee for the complex
func (s *FeeService) Create(ctx context.Context, tenantID uuid.UUID, req CreateFeeRequest) (*FeeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "FeeService", "Create")
	defer span.End()

	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = valueobject.COP
	}
	amount, err := valueobject.NewMoney(req.BaseAmount, currency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	fee, err := billing.NewFee(tenantID, req.Name, amount, billing.FeeType(req.FeeType), req.PerUnit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	fee.Description = req.Description

	if err := s.feeRepo.Save(ctx, fee); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToFeeResponse(fee)
	return &resp, nil
}

// Update changes the name, description or amount of an existing fee
func (s *FeeService) Update(ctx context.Context, tenantID, feeID uuid.UUID, req UpdateFeeRequest) (*FeeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "FeeService", "Update")
	defer span.End()

	fee, err := s.feeRepo.FindByID(ctx, tenantID, feeID)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.BaseAmount, fee.BaseAmount.Currency())
	if err != nil {
		return nil, err
	}
	if err := fee.Update(req.Name, req.Description, amount); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.feeRepo.Save(ctx, fee); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToFeeResponse(fee)
	return &resp, nil
}

// Activate re-enables a deactivated fee
func (s *FeeService) Activate(ctx context.Context, tenantID, feeID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "FeeService", "Activate")
	defer span.End()

	fee, err := s.feeRepo.FindByID(ctx, tenantID, feeID)
	if err != nil {
		return err
	}
	if err := fee.Activate(); err != nil {
		return err
	}
	return s.feeRepo.Save(ctx, fee)
}

// Deactivate removes a fee from future bill generation without deleting it
func (s *FeeService) Deactivate(ctx context.Context, tenantID, feeID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "FeeService", "Deactivate")
	defer span.End()

	fee, err := s.feeRepo.FindByID(ctx, tenantID, feeID)
	if err != nil {
		return err
	}
	if err := fee.Deactivate(); err != nil {
		return err
	}
	return s.feeRepo.Save(ctx, fee)
}

// GetByID retrieves a fee definition
func (s *FeeService) GetByID(ctx context.Context, tenantID, feeID uuid.UUID) (*FeeResponse, error) {
	fee, err := s.feeRepo.FindByID(ctx, tenantID, feeID)
	if err != nil {
		return nil, err
	}
	resp := ToFeeResponse(fee)
	return &resp, nil
}

// List retrieves fee definitions for the complex
func (s *FeeService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FeeResponse, error) {
	fees, err := s.feeRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]FeeResponse, len(fees))
	for i := range fees {
		responses[i] = ToFeeResponse(&fees[i])
	}
	return responses, nil
}
