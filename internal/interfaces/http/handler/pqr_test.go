package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pqrapp "github.com/armonia/backend/internal/application/pqr"
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/identity"
	"github.com/armonia/backend/internal/domain/pqr"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pqrHandlerEnv struct {
	ticketRepo   *MockTicketRepository
	commentRepo  *MockCommentRepository
	complexRepo  *MockComplexRepository
	userRepo     *MockUserRepository
	activityRepo *MockActivityRepository
	features     *MockFeatureGate
	router       *gin.Engine
}

func newPQRHandlerEnv(t *testing.T, tenantID, userID uuid.UUID, role string) *pqrHandlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &pqrHandlerEnv{
		ticketRepo:   new(MockTicketRepository),
		commentRepo:  new(MockCommentRepository),
		complexRepo:  new(MockComplexRepository),
		userRepo:     new(MockUserRepository),
		activityRepo: new(MockActivityRepository),
		features:     new(MockFeatureGate),
	}

	service := pqrapp.NewService(
		env.ticketRepo,
		env.commentRepo,
		env.complexRepo,
		env.userRepo,
		env.activityRepo,
		env.features,
		zap.NewNop(),
	)

	handler := NewPQRHandler(service)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(authAs(tenantID, userID, role))
	handler.RegisterRoutes(api)
	env.router = r
	return env
}

func newTicket(t *testing.T, tenantID, reporterID uuid.UUID) *pqr.Ticket {
	t.Helper()
	ticket, err := pqr.NewTicket(tenantID, "Gotera en parqueadero",
		"Filtración de agua en el sótano", pqr.TicketTypeComplaint,
		pqr.PriorityMedium, reporterID, "Laura Gómez", "RESIDENT")
	require.NoError(t, err)
	return ticket
}

func testComplexSettings(tenantID uuid.UUID, residentCanClose bool) *complexes.ResidentialComplex {
	complex, _ := complexes.NewResidentialComplex("CONJ-01", "Conjunto Los Cedros")
	complex.ID = tenantID
	complex.PQRSettings.ResidentCanClose = residentCanClose
	return complex
}

func changeStatus(env *pqrHandlerEnv, ticketID uuid.UUID, req pqrapp.ChangeStatusRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/api/v1/pqr/tickets/"+ticketID.String()+"/status", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, r)
	return w
}

func TestPQRHandler_ResidentCannotStartProgress(t *testing.T) {
	tenantID := uuid.New()
	reporterID := uuid.New()
	env := newPQRHandlerEnv(t, tenantID, reporterID, "RESIDENT")

	ticket := newTicket(t, tenantID, reporterID)
	reporter := &identity.User{Role: identity.RoleResident, Name: "Laura Gómez"}
	reporter.ID = reporterID
	reporter.TenantID = tenantID

	env.ticketRepo.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	env.userRepo.On("FindByID", mock.Anything, tenantID, reporterID).Return(reporter, nil)
	env.complexRepo.On("FindByID", mock.Anything, tenantID).Return(testComplexSettings(tenantID, false), nil)

	w := changeStatus(env, ticket.ID, pqrapp.ChangeStatusRequest{Status: "IN_PROGRESS"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "TRANSITION_FORBIDDEN")
	env.ticketRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPQRHandler_StaffResolvesWithResolution(t *testing.T) {
	tenantID := uuid.New()
	staffID := uuid.New()
	env := newPQRHandlerEnv(t, tenantID, staffID, "STAFF")

	ticket := newTicket(t, tenantID, uuid.New())
	staff := &identity.User{Role: identity.RoleStaff, Name: "Pedro Rojas"}
	staff.ID = staffID
	staff.TenantID = tenantID

	env.ticketRepo.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	env.userRepo.On("FindByID", mock.Anything, tenantID, staffID).Return(staff, nil)
	env.complexRepo.On("FindByID", mock.Anything, tenantID).Return(testComplexSettings(tenantID, false), nil)
	env.ticketRepo.On("Save", mock.Anything, ticket).Return(nil)
	env.activityRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	w := changeStatus(env, ticket.ID, pqrapp.ChangeStatusRequest{
		Status:     "RESOLVED",
		Resolution: "Se reparó la filtración y se selló la junta",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pqr.StatusResolved, ticket.Status)
}

func TestPQRHandler_ResolveWithoutResolution(t *testing.T) {
	tenantID := uuid.New()
	staffID := uuid.New()
	env := newPQRHandlerEnv(t, tenantID, staffID, "STAFF")

	ticket := newTicket(t, tenantID, uuid.New())
	staff := &identity.User{Role: identity.RoleStaff, Name: "Pedro Rojas"}
	staff.ID = staffID
	staff.TenantID = tenantID

	env.ticketRepo.On("FindByID", mock.Anything, tenantID, ticket.ID).Return(ticket, nil)
	env.userRepo.On("FindByID", mock.Anything, tenantID, staffID).Return(staff, nil)
	env.complexRepo.On("FindByID", mock.Anything, tenantID).Return(testComplexSettings(tenantID, false), nil)

	w := changeStatus(env, ticket.ID, pqrapp.ChangeStatusRequest{Status: "RESOLVED"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "RESOLUTION_REQUIRED")
	assert.Contains(t, w.Body.String(), "Se requiere una resolución para marcar como resuelto")
}

func TestPQRHandler_AssignRequiresStaffRole(t *testing.T) {
	tenantID := uuid.New()
	env := newPQRHandlerEnv(t, tenantID, uuid.New(), "RESIDENT")

	body, _ := json.Marshal(pqrapp.AssignTicketRequest{AssigneeID: uuid.New()})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/api/v1/pqr/tickets/"+uuid.NewString()+"/assign", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPQRHandler_CreateTicket(t *testing.T) {
	tenantID := uuid.New()
	reporterID := uuid.New()
	env := newPQRHandlerEnv(t, tenantID, reporterID, "RESIDENT")

	reporter := &identity.User{Role: identity.RoleResident, Name: "Laura Gómez"}
	reporter.ID = reporterID
	reporter.TenantID = tenantID

	env.userRepo.On("FindByID", mock.Anything, tenantID, reporterID).Return(reporter, nil)
	env.ticketRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	env.activityRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(pqrapp.CreateTicketRequest{
		Title:       "Ruido excesivo en zonas comunes",
		Description: "Fiestas después de las 11pm en el salón social",
		Type:        "COMPLAINT",
		Priority:    "MEDIUM",
	})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/pqr/tickets", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "SUBMITTED")
}
