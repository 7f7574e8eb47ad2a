package pqr

import (
	"context"
	"testing"

	"github.com/armonia/backend/internal/domain/audit"
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/identity"
	"github.com/armonia/backend/internal/domain/pqr"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTicketRepository is a mock implementation of pqr.TicketRepository
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
	return args.Get(0).([]pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status pqr.TicketStatus, filter shared.Filter) ([]pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByReporter(ctx context.Context, tenantID, reporterID uuid.UUID, filter shared.Filter) ([]pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, reporterID, filter)
	return args.Get(0).([]pqr.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByAssignee(ctx context.Context, tenantID, assigneeID uuid.UUID, filter shared.Filter) ([]pqr.Ticket, error) {
	args := m.Called(ctx, tenantID, assigneeID, filter)
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

// MockCommentRepository is a mock implementation of pqr.CommentRepository
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
	return args.Get(0).([]pqr.Comment), args.Error(1)
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *pqr.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// MockComplexRepository is a mock implementation of complexes.ComplexRepository
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
	return args.Get(0).([]complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) FindByStatus(ctx context.Context, status complexes.ComplexStatus, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) FindByPlan(ctx context.Context, plan complexes.PlanTier, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	args := m.Called(ctx, plan, filter)
	return args.Get(0).([]complexes.ResidentialComplex), args.Error(1)
}

func (m *MockComplexRepository) FindTrialExpiring(ctx context.Context, withinDays int) ([]complexes.ResidentialComplex, error) {
	args := m.Called(ctx, withinDays)
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

// MockUserRepository is a mock implementation of identity.UserRepository
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
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, tenantID uuid.UUID, role identity.Role, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, role, filter)
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

// MockActivityRepository is a mock implementation of audit.Repository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Save(ctx context.Context, entry *audit.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	args := m.Called(ctx, tenantID, entityType, entityID, filter)
	return args.Get(0).([]audit.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) FindByActor(ctx context.Context, tenantID, actorID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	args := m.Called(ctx, tenantID, actorID, filter)
	return args.Get(0).([]audit.ActivityLog), args.Error(1)
}

// MockFeatureGate is a mock implementation of FeatureGate
type MockFeatureGate struct {
	mock.Mock
}

func (m *MockFeatureGate) HasAccess(ctx context.Context, tenantID uuid.UUID, key complexes.FeatureKey) (bool, error) {
	args := m.Called(ctx, tenantID, key)
	return args.Bool(0), args.Error(1)
}

type serviceMocks struct {
	tickets  *MockTicketRepository
	comments *MockCommentRepository
	complxs  *MockComplexRepository
	users    *MockUserRepository
	activity *MockActivityRepository
	features *MockFeatureGate
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		tickets:  new(MockTicketRepository),
		comments: new(MockCommentRepository),
		complxs:  new(MockComplexRepository),
		users:    new(MockUserRepository),
		activity: new(MockActivityRepository),
		features: new(MockFeatureGate),
	}
	svc := NewService(m.tickets, m.comments, m.complxs, m.users, m.activity, m.features, zap.NewNop())
	return svc, m
}

// userWithRole builds a user without going through bcrypt
func userWithRole(tenantID uuid.UUID, name string, role identity.Role) *identity.User {
	return &identity.User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               "user@armonia.co",
		Name:                name,
		Role:                role,
		Active:              true,
	}
}

func testTicket(t *testing.T, tenantID uuid.UUID, reporter *identity.User) *pqr.Ticket {
	t.Helper()
	ticket, err := pqr.NewTicket(tenantID, "Humedad en el techo", "Mancha de humedad en el parqueadero",
		pqr.TicketTypeComplaint, pqr.PriorityMedium, reporter.ID, reporter.Name, string(reporter.Role))
	require.NoError(t, err)
	return ticket
}

func testComplex(t *testing.T, residentCanClose bool) *complexes.ResidentialComplex {
	t.Helper()
	c, err := complexes.NewResidentialComplex("TORRES01", "Torres del Parque")
	require.NoError(t, err)
	c.UpdatePQRSettings(complexes.PQRSettings{ResidentCanClose: residentCanClose})
	return c
}

func TestChangeStatus_StaffMovesToInProgress(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	staff := userWithRole(tenantID, "Luisa Gómez", identity.RoleStaff)
	ticket := testTicket(t, tenantID, reporter)

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, staff.ID).Return(staff, nil)
	m.complxs.On("FindByID", mock.Anything, tenantID).Return(testComplex(t, false), nil)
	m.tickets.On("Save", mock.Anything, ticket).Return(nil)
	m.activity.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, staff.ID, ChangeStatusRequest{Status: string(pqr.StatusInProgress)})

	require.NoError(t, err)
	assert.Equal(t, string(pqr.StatusInProgress), resp.Status)
	m.activity.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(e *audit.ActivityLog) bool {
		return e.Action == "ticket.status_changed" && e.Details["to"] == string(pqr.StatusInProgress)
	}))
}

func TestChangeStatus_ResidentCannotMoveStates(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	ticket := testTicket(t, tenantID, reporter)

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, reporter.ID).Return(reporter, nil)
	m.complxs.On("FindByID", mock.Anything, tenantID).Return(testComplex(t, false), nil)

	_, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, reporter.ID, ChangeStatusRequest{Status: string(pqr.StatusInProgress)})

	assert.ErrorIs(t, err, pqr.ErrStatusNotAllowed)
	m.tickets.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChangeStatus_ResolveRequiresResolution(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	staff := userWithRole(tenantID, "Luisa Gómez", identity.RoleStaff)
	ticket := testTicket(t, tenantID, reporter)

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, staff.ID).Return(staff, nil)
	m.complxs.On("FindByID", mock.Anything, tenantID).Return(testComplex(t, false), nil)

	_, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, staff.ID, ChangeStatusRequest{Status: string(pqr.StatusResolved)})
	assert.ErrorIs(t, err, pqr.ErrResolutionMissing)

	m.tickets.On("Save", mock.Anything, ticket).Return(nil)
	m.activity.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, staff.ID, ChangeStatusRequest{
		Status:     string(pqr.StatusResolved),
		Resolution: "Se reparó la filtración",
	})
	require.NoError(t, err)
	assert.Equal(t, string(pqr.StatusResolved), resp.Status)
	assert.Equal(t, "Se reparó la filtración", resp.Resolution)
}

func TestChangeStatus_ReporterClosesWhenPolicyAllows(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	ticket := testTicket(t, tenantID, reporter)
	ticket.ApplyTransition(pqr.StatusResolved, pqr.TransitionInput{Resolution: "Listo"})

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, reporter.ID).Return(reporter, nil)
	m.complxs.On("FindByID", mock.Anything, tenantID).Return(testComplex(t, true), nil)
	m.tickets.On("Save", mock.Anything, ticket).Return(nil)
	m.activity.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, reporter.ID, ChangeStatusRequest{Status: string(pqr.StatusClosed)})

	require.NoError(t, err)
	assert.Equal(t, string(pqr.StatusClosed), resp.Status)
	assert.NotNil(t, resp.ClosedAt)
}

func TestChangeStatus_ReporterCloseDeniedByPolicy(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	ticket := testTicket(t, tenantID, reporter)
	ticket.ApplyTransition(pqr.StatusResolved, pqr.TransitionInput{Resolution: "Listo"})

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, reporter.ID).Return(reporter, nil)
	m.complxs.On("FindByID", mock.Anything, tenantID).Return(testComplex(t, false), nil)

	_, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, reporter.ID, ChangeStatusRequest{Status: string(pqr.StatusClosed)})

	assert.ErrorIs(t, err, pqr.ErrCloseNotAllowed)
}

func TestChangeStatus_CloseRequiresResolvedState(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	admin := userWithRole(tenantID, "Diana Torres", identity.RoleComplexAdmin)
	ticket := testTicket(t, tenantID, reporter)

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, admin.ID).Return(admin, nil)
	m.complxs.On("FindByID", mock.Anything, tenantID).Return(testComplex(t, false), nil)

	_, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, admin.ID, ChangeStatusRequest{Status: string(pqr.StatusClosed)})

	assert.ErrorIs(t, err, pqr.ErrCloseNotResolved)
}

func TestChangeStatus_ReporterReopensClosedTicket(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	ticket := testTicket(t, tenantID, reporter)
	ticket.ApplyTransition(pqr.StatusResolved, pqr.TransitionInput{Resolution: "Listo"})
	ticket.ApplyTransition(pqr.StatusClosed, pqr.TransitionInput{})

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, reporter.ID).Return(reporter, nil)
	m.complxs.On("FindByID", mock.Anything, tenantID).Return(testComplex(t, false), nil)
	m.tickets.On("Save", mock.Anything, ticket).Return(nil)
	m.activity.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, reporter.ID, ChangeStatusRequest{Status: string(pqr.StatusReopened)})

	require.NoError(t, err)
	assert.Equal(t, string(pqr.StatusReopened), resp.Status)
	assert.Nil(t, resp.ClosedAt)
}

func TestChangeStatus_CancelOnlyAdminOrReporter(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	staff := userWithRole(tenantID, "Luisa Gómez", identity.RoleStaff)
	ticket := testTicket(t, tenantID, reporter)

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, staff.ID).Return(staff, nil)
	m.complxs.On("FindByID", mock.Anything, tenantID).Return(testComplex(t, false), nil)

	_, err := svc.ChangeStatus(context.Background(), tenantID, ticket.ID, staff.ID, ChangeStatusRequest{Status: string(pqr.StatusCancelled)})

	assert.ErrorIs(t, err, pqr.ErrCancelNotAllowed)
}

func TestAssignTicket_PlanGated(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()

	m.features.On("HasAccess", mock.Anything, tenantID, complexes.FeatureAdvancedPQR).Return(false, nil)

	_, err := svc.AssignTicket(context.Background(), tenantID, uuid.New(), uuid.New(), AssignTicketRequest{AssigneeID: uuid.New()})

	assert.ErrorIs(t, err, shared.ErrFeatureNotInPlan)
}

func TestAssignTicket(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	admin := userWithRole(tenantID, "Diana Torres", identity.RoleComplexAdmin)
	staff := userWithRole(tenantID, "Luisa Gómez", identity.RoleStaff)
	ticket := testTicket(t, tenantID, reporter)

	m.features.On("HasAccess", mock.Anything, tenantID, complexes.FeatureAdvancedPQR).Return(true, nil)
	m.users.On("FindByID", mock.Anything, tenantID, admin.ID).Return(admin, nil)
	m.users.On("FindByID", mock.Anything, tenantID, staff.ID).Return(staff, nil)
	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.tickets.On("Save", mock.Anything, ticket).Return(nil)
	m.activity.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.AssignTicket(context.Background(), tenantID, ticket.ID, admin.ID, AssignTicketRequest{AssigneeID: staff.ID})

	require.NoError(t, err)
	assert.Equal(t, string(pqr.StatusAssigned), resp.Status)
	require.NotNil(t, resp.AssigneeID)
	assert.Equal(t, staff.ID, *resp.AssigneeID)
}

func TestAddComment_InternalRejectedForResident(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	ticket := testTicket(t, tenantID, reporter)

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, reporter.ID).Return(reporter, nil)
	m.features.On("HasAccess", mock.Anything, tenantID, complexes.FeatureAdvancedPQR).Return(true, nil)

	_, err := svc.AddComment(context.Background(), tenantID, ticket.ID, reporter.ID, AddCommentRequest{
		Content:  "Nota privada",
		Internal: true,
	})

	assert.ErrorIs(t, err, pqr.ErrInternalCommentForbidden)
	m.comments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddComment_StaffInternal(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	staff := userWithRole(tenantID, "Luisa Gómez", identity.RoleStaff)
	ticket := testTicket(t, tenantID, reporter)

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.users.On("FindByID", mock.Anything, tenantID, staff.ID).Return(staff, nil)
	m.features.On("HasAccess", mock.Anything, tenantID, complexes.FeatureAdvancedPQR).Return(true, nil)
	m.comments.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.AddComment(context.Background(), tenantID, ticket.ID, staff.ID, AddCommentRequest{
		Content:  "Esperando repuesto del proveedor",
		Internal: true,
	})

	require.NoError(t, err)
	assert.True(t, resp.Internal)
}

func TestListComments_FiltersInternalForResidents(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)
	staff := userWithRole(tenantID, "Luisa Gómez", identity.RoleStaff)
	ticket := testTicket(t, tenantID, reporter)

	public, err := pqr.NewComment(tenantID, ticket.ID, reporter.ID, reporter.Name, string(reporter.Role), "Sigue la humedad", false, false)
	require.NoError(t, err)
	internal, err := pqr.NewComment(tenantID, ticket.ID, staff.ID, staff.Name, string(staff.Role), "Proveedor no responde", true, true)
	require.NoError(t, err)
	thread := []pqr.Comment{*public, *internal}

	m.tickets.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	m.comments.On("FindByTicket", mock.Anything, tenantID, ticket.ID).Return(thread, nil)

	m.users.On("FindByID", mock.Anything, tenantID, reporter.ID).Return(reporter, nil)
	visible, err := svc.ListComments(context.Background(), tenantID, ticket.ID, reporter.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.False(t, visible[0].Internal)

	m.users.On("FindByID", mock.Anything, tenantID, staff.ID).Return(staff, nil)
	visible, err = svc.ListComments(context.Background(), tenantID, ticket.ID, staff.ID)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestCreateTicket(t *testing.T) {
	svc, m := newTestService()
	tenantID := uuid.New()
	reporter := userWithRole(tenantID, "Carlos Pérez", identity.RoleResident)

	m.users.On("FindByID", mock.Anything, tenantID, reporter.ID).Return(reporter, nil)
	m.tickets.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.activity.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateTicket(context.Background(), tenantID, reporter.ID, CreateTicketRequest{
		Title:       "Ruido excesivo",
		Description: "Fiesta hasta las 3am en el apartamento 502",
		Type:        string(pqr.TicketTypeComplaint),
		Priority:    string(pqr.PriorityHigh),
	})

	require.NoError(t, err)
	assert.Equal(t, string(pqr.StatusSubmitted), resp.Status)
	assert.NotEmpty(t, resp.Number)
	assert.Equal(t, reporter.ID, resp.ReporterID)
}
