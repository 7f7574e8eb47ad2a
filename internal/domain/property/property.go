package property

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyType represents the kind of unit within a complex
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
	PropertyTypeParking    PropertyType = "PARKING"
)

// IsValid checks if the property type is known
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeCommercial, PropertyTypeParking:
		return true
	}
	return false
}

// UUIDSlice stores a list of user IDs as JSONB
type UUIDSlice []uuid.UUID

// Value implements driver.Valuer for JSONB storage
func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval
func (s *UUIDSlice) Scan(value interface{}) error {
	if value == nil {
		*s = UUIDSlice{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan UUIDSlice: unsupported type")
	}
	if len(bytes) == 0 {
		*s = UUIDSlice{}
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Contains reports whether the slice holds the given ID
func (s UUIDSlice) Contains(id uuid.UUID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Property is a billable unit inside a residential complex. The area and
// coefficient feed per-unit fee calculation; only active properties are billed.
type Property struct {
	shared.TenantAggregateRoot
	Number      string
	Type        PropertyType
	Area        decimal.Decimal
	Coefficient decimal.Decimal
	Active      bool
	OwnerID     *uuid.UUID
	ResidentIDs UUIDSlice
	Notes       string
}

// NewProperty creates a new property within a complex
func NewProperty(tenantID uuid.UUID, number string, propType PropertyType, area decimal.Decimal) (*Property, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID is required")
	}
	if err := validatePropertyNumber(number); err != nil {
		return nil, err
	}
	if !propType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Invalid property type")
	}
	if area.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AREA", "Area cannot be negative")
	}

	p := &Property{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              strings.ToUpper(number),
		Type:                propType,
		Area:                area,
		Coefficient:         decimal.Zero,
		Active:              true,
		ResidentIDs:         UUIDSlice{},
	}

	p.AddDomainEvent(NewPropertyRegisteredEvent(p))

	return p, nil
}

// Update updates the property's details
func (p *Property) Update(propType PropertyType, area, coefficient decimal.Decimal, notes string) error {
	if !propType.IsValid() {
		return shared.NewDomainError("INVALID_PROPERTY_TYPE", "Invalid property type")
	}
	if area.IsNegative() {
		return shared.NewDomainError("INVALID_AREA", "Area cannot be negative")
	}
	if coefficient.IsNegative() {
		return shared.NewDomainError("INVALID_COEFFICIENT", "Coefficient cannot be negative")
	}

	p.Type = propType
	p.Area = area
	p.Coefficient = coefficient
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetOwner assigns the owner user
func (p *Property) SetOwner(ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return shared.NewDomainError("INVALID_OWNER", "Owner ID is required")
	}

	p.OwnerID = &ownerID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AddResident adds a resident user to the property
func (p *Property) AddResident(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_RESIDENT", "Resident ID is required")
	}
	if p.ResidentIDs.Contains(userID) {
		return shared.NewDomainError("RESIDENT_EXISTS", "Resident is already registered on this property")
	}

	p.ResidentIDs = append(p.ResidentIDs, userID)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveResident removes a resident user from the property
func (p *Property) RemoveResident(userID uuid.UUID) error {
	for i, id := range p.ResidentIDs {
		if id == userID {
			p.ResidentIDs = append(p.ResidentIDs[:i], p.ResidentIDs[i+1:]...)
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("RESIDENT_NOT_FOUND", "Resident is not registered on this property")
}

// Deactivate removes the property from billing
func (p *Property) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Property is already inactive")
	}

	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate restores the property to billing
func (p *Property) Activate() error {
	if p.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Property is already active")
	}

	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsBillable reports whether bills should be generated for this property
func (p *Property) IsBillable() bool {
	return p.Active
}

func validatePropertyNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Property number cannot be empty")
	}
	if len(number) > 20 {
		return shared.NewDomainError("INVALID_NUMBER", "Property number cannot exceed 20 characters")
	}
	return nil
}
