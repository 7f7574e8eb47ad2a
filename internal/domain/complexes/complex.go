package complexes

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/armonia/backend/internal/domain/shared"
)

// ComplexStatus represents the status of a residential complex
type ComplexStatus string

const (
	ComplexStatusActive   ComplexStatus = "active"
	ComplexStatusInactive ComplexStatus = "inactive"
	ComplexStatusTrial    ComplexStatus = "trial"
)

// PlanTier represents the subscription tier of a residential complex
type PlanTier string

const (
	PlanTierBasic    PlanTier = "BASIC"
	PlanTierStandard PlanTier = "STANDARD"
	PlanTierPremium  PlanTier = "PREMIUM"
)

// IsValid checks if the plan tier is a known tier
func (p PlanTier) IsValid() bool {
	switch p {
	case PlanTierBasic, PlanTierStandard, PlanTierPremium:
		return true
	}
	return false
}

// String returns the string representation of the plan tier
func (p PlanTier) String() string {
	return string(p)
}

// PQRSettings holds per-complex policy switches for the PQR workflow.
// Stored as JSONB on the complex record.
type PQRSettings struct {
	ResidentCanClose  bool `json:"resident_can_close"`
	AutoAssignEnabled bool `json:"auto_assign_enabled"`
}

// Value implements driver.Valuer for JSONB storage
func (s PQRSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval
func (s *PQRSettings) Scan(value interface{}) error {
	if value == nil {
		*s = PQRSettings{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PQRSettings: unsupported type")
	}
	if len(bytes) == 0 {
		*s = PQRSettings{}
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// DefaultPQRSettings returns PQR settings for a newly onboarded complex
func DefaultPQRSettings() PQRSettings {
	return PQRSettings{
		ResidentCanClose:  false,
		AutoAssignEnabled: false,
	}
}

// ResidentialComplex is the tenant root of the platform. Every property,
// bill and PQR ticket belongs to exactly one complex, and the complex's
// plan tier decides which platform features its users may reach.
type ResidentialComplex struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	Status       ComplexStatus
	Plan         PlanTier
	Address      string
	City         string
	ContactName  string
	ContactPhone string
	ContactEmail string
	TrialEndsAt  *time.Time
	PQRSettings  PQRSettings
	Notes        string
}

// NewResidentialComplex creates a new complex on the BASIC tier
func NewResidentialComplex(code, name string) (*ResidentialComplex, error) {
	if err := validateComplexCode(code); err != nil {
		return nil, err
	}
	if err := validateComplexName(name); err != nil {
		return nil, err
	}

	c := &ResidentialComplex{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            ComplexStatusActive,
		Plan:              PlanTierBasic,
		PQRSettings:       DefaultPQRSettings(),
	}

	c.AddDomainEvent(NewComplexCreatedEvent(c))

	return c, nil
}

// NewTrialComplex creates a new complex with an active trial window.
// During the trial the complex behaves as if it were on PREMIUM.
func NewTrialComplex(code, name string, trialDays int) (*ResidentialComplex, error) {
	if trialDays <= 0 {
		return nil, shared.NewDomainError("INVALID_TRIAL_DAYS", "Trial days must be positive")
	}

	c, err := NewResidentialComplex(code, name)
	if err != nil {
		return nil, err
	}

	c.Status = ComplexStatusTrial
	trialEnds := time.Now().AddDate(0, 0, trialDays)
	c.TrialEndsAt = &trialEnds

	return c, nil
}

// Update updates the complex's basic information
func (c *ResidentialComplex) Update(name, address, city string) error {
	if err := validateComplexName(name); err != nil {
		return err
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Name = name
	c.Address = address
	c.City = city
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the administrator contact information
func (c *ResidentialComplex) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	c.ContactName = contactName
	c.ContactPhone = phone
	c.ContactEmail = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetPlan changes the subscription tier
func (c *ResidentialComplex) SetPlan(plan PlanTier) error {
	if !plan.IsValid() {
		return shared.NewDomainError("INVALID_PLAN", "Invalid plan tier")
	}

	oldPlan := c.Plan
	c.Plan = plan
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	// Upgrading out of trial ends the trial window
	if c.Status == ComplexStatusTrial && plan != PlanTierBasic {
		c.Status = ComplexStatusActive
		c.TrialEndsAt = nil
	}

	c.AddDomainEvent(NewComplexPlanChangedEvent(c, oldPlan, plan))

	return nil
}

// UpdatePQRSettings replaces the PQR policy switches
func (c *ResidentialComplex) UpdatePQRSettings(settings PQRSettings) {
	c.PQRSettings = settings
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate deactivates the complex
func (c *ResidentialComplex) Deactivate() error {
	if c.Status == ComplexStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Complex is already inactive")
	}

	c.Status = ComplexStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate activates the complex
func (c *ResidentialComplex) Activate() error {
	if c.Status == ComplexStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Complex is already active")
	}

	c.Status = ComplexStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsTrialActive returns true if the complex is in trial and the window has not elapsed
func (c *ResidentialComplex) IsTrialActive() bool {
	if c.Status != ComplexStatusTrial {
		return false
	}
	if c.TrialEndsAt == nil {
		return false
	}
	return time.Now().Before(*c.TrialEndsAt)
}

// HasBillingAccess reports whether billing operations are available for the
// complex: plan tier STANDARD or above, or an active trial window.
func (c *ResidentialComplex) HasBillingAccess() bool {
	if c.IsTrialActive() {
		return true
	}
	return PlanHasFeature(c.Plan, FeatureBillingEngine)
}

// Validation functions

func validateComplexCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Complex code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Complex code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Complex code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateComplexName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Complex name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Complex name cannot exceed 200 characters")
	}
	return nil
}
