package complexes

import (
	"context"

	"github.com/armonia/backend/internal/domain/audit"
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/infrastructure/cache"
	"github.com/armonia/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles complex onboarding, plan management and feature access
// resolution. It is the platform's authority on what a tenant may do.
type Service struct {
	complexRepo  complexes.ComplexRepository
	featureRepo  complexes.PlanFeatureRepository
	accessCache  cache.FeatureAccessCache
	activityRepo audit.Repository
	trialDays    int
	logger       *zap.Logger
}

// NewService creates a new complexes Service
func NewService(
	complexRepo complexes.ComplexRepository,
	featureRepo complexes.PlanFeatureRepository,
	accessCache cache.FeatureAccessCache,
	activityRepo audit.Repository,
	trialDays int,
	logger *zap.Logger,
) *Service {
	return &Service{
		complexRepo:  complexRepo,
		featureRepo:  featureRepo,
		accessCache:  accessCache,
		activityRepo: activityRepo,
		trialDays:    trialDays,
		logger:       logger,
	}
}

// Onboard registers a new complex on a trial of the full feature set
func (s *Service) Onboard(ctx context.Context, req OnboardComplexRequest) (*ComplexResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ComplexService", "Onboard")
	defer span.End()
	telemetry.SetAttributes(span, "complex.code", req.Code)

	exists, err := s.complexRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CODE_TAKEN", "Ya existe un conjunto con ese código")
	}

	complex, err := complexes.NewTrialComplex(req.Code, req.Name, s.trialDays)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := complex.Update(req.Name, req.Address, req.City); err != nil {
		return nil, err
	}
	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := complex.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}

	if err := s.complexRepo.Save(ctx, complex); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("complex onboarded",
		zap.String("complex_id", complex.ID.String()),
		zap.String("code", complex.Code))

	resp := ToComplexResponse(complex)
	return &resp, nil
}

// SeedPlanFeatures writes the default plan/feature matrix for every tier.
// Run once at startup; existing rows are replaced.
func (s *Service) SeedPlanFeatures(ctx context.Context) error {
	for _, tier := range []complexes.PlanTier{complexes.PlanTierBasic, complexes.PlanTierStandard, complexes.PlanTierPremium} {
		if err := s.featureRepo.DeleteByPlan(ctx, tier); err != nil {
			return err
		}
		if err := s.featureRepo.SaveBatch(ctx, complexes.DefaultPlanFeatures(tier)); err != nil {
			return err
		}
	}
	s.logger.Info("plan feature matrix seeded")
	return nil
}

// SetPlan changes a complex's subscription tier and evicts its cached
// feature access decisions.
func (s *Service) SetPlan(ctx context.Context, complexID uuid.UUID, actorID uuid.UUID, actorName, actorRole string, req SetPlanRequest) (*ComplexResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ComplexService", "SetPlan")
	defer span.End()
	telemetry.SetAttributes(span, "complex.id", complexID.String(), "plan", req.Plan)

	complex, err := s.complexRepo.FindByID(ctx, complexID)
	if err != nil {
		return nil, err
	}

	oldPlan := complex.Plan
	if err := complex.SetPlan(complexes.PlanTier(req.Plan)); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.complexRepo.Save(ctx, complex); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.accessCache.InvalidateTenant(ctx, complexID); err != nil {
		s.logger.Warn("feature access cache invalidation failed",
			zap.String("complex_id", complexID.String()), zap.Error(err))
	}

	if entry, logErr := audit.NewActivityLog(complexID, actorID, actorName, actorRole,
		complexes.AggregateTypeComplex, complexID, "plan.changed",
		audit.Details{"old_plan": string(oldPlan), "new_plan": req.Plan}); logErr == nil {
		if saveErr := s.activityRepo.Save(ctx, entry); saveErr != nil {
			s.logger.Warn("activity log write failed", zap.Error(saveErr))
		}
	}

	resp := ToComplexResponse(complex)
	return &resp, nil
}

// HasAccess reports whether the complex can use the feature right now.
// Active trials unlock everything; otherwise the plan matrix decides.
// Decisions are cached per tenant and evicted on plan changes.
func (s *Service) HasAccess(ctx context.Context, tenantID uuid.UUID, key complexes.FeatureKey) (bool, error) {
	if enabled, hit := s.accessCache.Get(ctx, tenantID, string(key)); hit {
		return enabled, nil
	}

	complex, err := s.complexRepo.FindByID(ctx, tenantID)
	if err != nil {
		return false, err
	}

	var enabled bool
	if complex.IsTrialActive() {
		enabled = true
	} else {
		enabled, err = s.featureRepo.HasFeature(ctx, complex.Plan, key)
		if err != nil {
			return false, err
		}
	}

	s.accessCache.Set(ctx, tenantID, string(key), enabled)
	return enabled, nil
}

// FeatureAccess resolves the full feature list for a complex
func (s *Service) FeatureAccess(ctx context.Context, tenantID uuid.UUID) ([]FeatureAccessResponse, error) {
	complex, err := s.complexRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	keys := complexes.GetAllFeatureKeys()
	responses := make([]FeatureAccessResponse, 0, len(keys))
	trial := complex.IsTrialActive()
	for _, key := range keys {
		enabled := trial
		if !trial {
			enabled, err = s.featureRepo.HasFeature(ctx, complex.Plan, key)
			if err != nil {
				return nil, err
			}
		}
		responses = append(responses, FeatureAccessResponse{FeatureKey: string(key), Enabled: enabled})
	}
	return responses, nil
}

// ResolveCode resolves a complex code to its tenant ID
func (s *Service) ResolveCode(ctx context.Context, code string) (uuid.UUID, error) {
	complex, err := s.complexRepo.FindByCode(ctx, code)
	if err != nil {
		return uuid.Nil, err
	}
	return complex.ID, nil
}

// GetByID retrieves a complex
func (s *Service) GetByID(ctx context.Context, complexID uuid.UUID) (*ComplexResponse, error) {
	complex, err := s.complexRepo.FindByID(ctx, complexID)
	if err != nil {
		return nil, err
	}
	resp := ToComplexResponse(complex)
	return &resp, nil
}

// List retrieves complexes matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ComplexResponse], error) {
	items, err := s.complexRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.complexRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ComplexResponse, len(items))
	for i := range items {
		responses[i] = ToComplexResponse(&items[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes a complex's details
func (s *Service) Update(ctx context.Context, complexID uuid.UUID, req UpdateComplexRequest) (*ComplexResponse, error) {
	complex, err := s.complexRepo.FindByID(ctx, complexID)
	if err != nil {
		return nil, err
	}
	if err := complex.Update(req.Name, req.Address, req.City); err != nil {
		return nil, err
	}
	if err := s.complexRepo.Save(ctx, complex); err != nil {
		return nil, err
	}
	resp := ToComplexResponse(complex)
	return &resp, nil
}

// UpdatePQRSettings replaces the complex's incident workflow switches
func (s *Service) UpdatePQRSettings(ctx context.Context, complexID uuid.UUID, req UpdatePQRSettingsRequest) (*ComplexResponse, error) {
	complex, err := s.complexRepo.FindByID(ctx, complexID)
	if err != nil {
		return nil, err
	}
	complex.UpdatePQRSettings(complexes.PQRSettings{
		ResidentCanClose:  req.ResidentCanClose,
		AutoAssignEnabled: req.AutoAssignEnabled,
	})
	if err := s.complexRepo.Save(ctx, complex); err != nil {
		return nil, err
	}
	resp := ToComplexResponse(complex)
	return &resp, nil
}

// Deactivate takes a complex out of service
func (s *Service) Deactivate(ctx context.Context, complexID uuid.UUID) error {
	complex, err := s.complexRepo.FindByID(ctx, complexID)
	if err != nil {
		return err
	}
	if err := complex.Deactivate(); err != nil {
		return err
	}
	if err := s.complexRepo.Save(ctx, complex); err != nil {
		return err
	}
	return s.accessCache.InvalidateTenant(ctx, complexID)
}
