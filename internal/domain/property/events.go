package property

import (
	"github.com/armonia/backend/internal/domain/shared"
)

const AggregateTypeProperty = "Property"

const (
	EventTypePropertyRegistered = "PropertyRegistered"
)

// PropertyRegisteredEvent is published when a property is registered in a complex
type PropertyRegisteredEvent struct {
	shared.BaseDomainEvent
	Number string       `json:"number"`
	Type   PropertyType `json:"type"`
	Area   string       `json:"area"`
}

// NewPropertyRegisteredEvent creates a new PropertyRegisteredEvent
func NewPropertyRegisteredEvent(p *Property) *PropertyRegisteredEvent {
	return &PropertyRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyRegistered, AggregateTypeProperty, p.ID, p.TenantID),
		Number:          p.Number,
		Type:            p.Type,
		Area:            p.Area.String(),
	}
}
