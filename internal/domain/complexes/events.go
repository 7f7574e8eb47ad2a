package complexes

import (
	"github.com/armonia/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeComplex = "ResidentialComplex"

// Event type constants
const (
	EventTypeComplexCreated     = "ComplexCreated"
	EventTypeComplexPlanChanged = "ComplexPlanChanged"
)

// ComplexCreatedEvent is published when a new residential complex is onboarded
type ComplexCreatedEvent struct {
	shared.BaseDomainEvent
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Status ComplexStatus `json:"status"`
	Plan   PlanTier      `json:"plan"`
}

// NewComplexCreatedEvent creates a new ComplexCreatedEvent
func NewComplexCreatedEvent(c *ResidentialComplex) *ComplexCreatedEvent {
	return &ComplexCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplexCreated, AggregateTypeComplex, c.ID, c.ID),
		Code:            c.Code,
		Name:            c.Name,
		Status:          c.Status,
		Plan:            c.Plan,
	}
}

// ComplexPlanChangedEvent is published when a complex's subscription tier changes
type ComplexPlanChangedEvent struct {
	shared.BaseDomainEvent
	Code    string   `json:"code"`
	OldPlan PlanTier `json:"old_plan"`
	NewPlan PlanTier `json:"new_plan"`
}

// NewComplexPlanChangedEvent creates a new ComplexPlanChangedEvent
func NewComplexPlanChangedEvent(c *ResidentialComplex, oldPlan, newPlan PlanTier) *ComplexPlanChangedEvent {
	return &ComplexPlanChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplexPlanChanged, AggregateTypeComplex, c.ID, c.ID),
		Code:            c.Code,
		OldPlan:         oldPlan,
		NewPlan:         newPlan,
	}
}
