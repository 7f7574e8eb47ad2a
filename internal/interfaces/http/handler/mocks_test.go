package handler

import (
	"context"

	"github.com/armonia/backend/internal/domain/audit"
	"github.com/armonia/backend/internal/domain/billing"
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/identity"
	"github.com/armonia/backend/internal/domain/pqr"
	"github.com/armonia/backend/internal/domain/property"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBillRepository implements billing.BillRepository for testing
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID, propertyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, year, month int) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status billing.BillStatus, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindOverdue(ctx context.Context, tenantID uuid.UUID) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) ExistsForPeriod(ctx context.Context, tenantID uuid.UUID, year, month int) (bool, error) {
	args := m.Called(ctx, tenantID, year, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) SaveBatch(ctx context.Context, bills []*billing.Bill) error {
	args := m.Called(ctx, bills)
	return args.Error(0)
}

func (m *MockBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository implements billing.PaymentRepository for testing
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, tenantID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockFeeRepository implements billing.FeeRepository for testing
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Fee, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Fee), args.Error(1)
}

func (m *MockFeeRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Fee, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Fee), args.Error(1)
}

func (m *MockFeeRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]billing.Fee, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Fee), args.Error(1)
}

func (m *MockFeeRepository) Save(ctx context.Context, fee *billing.Fee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockPropertyRepository implements property.Repository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*property.Property, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]property.Property, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]property.Property, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByResident(ctx context.Context, tenantID, userID uuid.UUID) ([]property.Property, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	args := m.Called(ctx, tenantID, number)
	return args.Bool(0), args.Error(1)
}

// MockActivityRepository implements audit.Repository for testing
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Save(ctx context.Context, entry *audit.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	args := m.Called(ctx, tenantID, entityType, entityID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) FindByActor(ctx context.Context, tenantID, actorID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	args := m.Called(ctx, tenantID, actorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.ActivityLog), args.Error(1)
}

// MockTicketRepository implements pqr.TicketRepository for testing
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status pqr.TicketStatus, filter shared.Filter) ([]pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByReporter(ctx context.Context, tenantID, reporterID uuid.UUID, filter shared.Filter) ([]pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, reporterID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByAssignee(ctx context.Context, tenantID, assigneeID uuid.UUID, filter shared.Filter) ([]pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, assigneeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Save(ctx context.Context, ticket *pqr.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository implements pqr.CommentRepository for testing
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*pqr.Comment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pqr.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByTicket(ctx context.Context, tenantID, ticketID uuid.UUID) ([]pqr.Comment, error) {
	args := m.Called(ctx, tenantID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pqr.Comment), args.Error(1)
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *pqr.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// MockComplexRepository implements complexes.ComplexRepository for testing
type MockComplexRepository struct {
	mock.Mock
}

func (m *MockComplexRepository) FindByID(ctx context.Context, id uuid.UUID) (*complexes.ResidentialComplex, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) FindByCode(ctx context.Context, code string) (*complexes.ResidentialComplex, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) FindAll(ctx context.Context, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) FindByStatus(ctx context.Context, status complexes.ComplexStatus, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) FindByPlan(ctx context.Context, plan complexes.PlanTier, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	args := m.Called(ctx, plan, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) FindTrialExpiring(ctx context.Context, withinDays int) ([]complexes.ResidentialComplex, error) {
	args := m.Called(ctx, withinDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) Save(ctx context.Context, complex *complexes.ResidentialComplex) error {
	args := m.Called(ctx, complex)
	return args.Error(0)
}

func (m *MockComplexRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockComplexRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplexRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, tenantID uuid.UUID, role identity.Role, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, role, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

// MockFeatureGate grants or denies feature access for testing
type MockFeatureGate struct {
	mock.Mock
}

func (m *MockFeatureGate) HasAccess(ctx context.Context, tenantID uuid.UUID, key complexes.FeatureKey) (bool, error) {
	args := m.Called(ctx, tenantID, key)
	return args.Bool(0), args.Error(1)
}
