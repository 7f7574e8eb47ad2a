package handler

import (
	pqrapp "github.com/armonia/backend/internal/application/pqr"
	"github.com/armonia/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PQRHandler handles petition/complaint/claim ticket endpoints
type PQRHandler struct {
	BaseHandler
	pqrService *pqrapp.Service
}

// NewPQRHandler creates a new PQR handler
func NewPQRHandler(pqrService *pqrapp.Service) *PQRHandler {
	return &PQRHandler{pqrService: pqrService}
}

// Create godoc
// @Summary      Create a ticket
// @Description  Opens a petition, complaint, claim or suggestion reported by
// @Description  the authenticated user
// @Tags         pqr
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body pqrapp.CreateTicketRequest true "New ticket"
// @Success      201 {object} dto.Response{data=pqrapp.TicketResponse}
// @Router       /pqr/tickets [post]
func (h *PQRHandler) Create(c *gin.Context) {
	var req pqrapp.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	ticket, err := h.pqrService.CreateTicket(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ticket)
}

// List godoc
// @Summary      List tickets
// @Description  Staff see every ticket in the complex; residents only see
// @Description  their own reports.
// @Tags         pqr
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Ticket status"
// @Param        type query string false "Ticket type"
// @Param        priority query string false "Priority"
// @Param        assigned query bool false "Only tickets assigned to the caller"
// @Success      200 {object} dto.Response{data=[]pqrapp.TicketResponse}
// @Router       /pqr/tickets [get]
func (h *PQRHandler) List(c *gin.Context) {
	var filter pqrapp.TicketListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Parámetros de consulta inválidos")
		return
	}

	result, err := h.pqrService.ListTickets(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get a ticket
// @Tags         pqr
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket ID"
// @Success      200 {object} dto.Response{data=pqrapp.TicketResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /pqr/tickets/{id} [get]
func (h *PQRHandler) Get(c *gin.Context) {
	ticketID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	ticket, err := h.pqrService.GetTicket(c.Request.Context(), middleware.GetTenantID(c), ticketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// ChangeStatus godoc
// @Summary      Change the status of a ticket
// @Description  Transitions the ticket through its lifecycle. Who may move a
// @Description  ticket depends on the target status, the caller's role and
// @Description  the complex's PQR policies.
// @Tags         pqr
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket ID"
// @Param        request body pqrapp.ChangeStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=pqrapp.TicketResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /pqr/tickets/{id}/status [put]
func (h *PQRHandler) ChangeStatus(c *gin.Context) {
	ticketID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req pqrapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	ticket, err := h.pqrService.ChangeStatus(c.Request.Context(), middleware.GetTenantID(c), ticketID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// Assign godoc
// @Summary      Assign a ticket to a staff member
// @Tags         pqr
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket ID"
// @Param        request body pqrapp.AssignTicketRequest true "Assignee"
// @Success      200 {object} dto.Response{data=pqrapp.TicketResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /pqr/tickets/{id}/assign [put]
func (h *PQRHandler) Assign(c *gin.Context) {
	ticketID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req pqrapp.AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	ticket, err := h.pqrService.AssignTicket(c.Request.Context(), middleware.GetTenantID(c), ticketID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// AddComment godoc
// @Summary      Comment on a ticket
// @Description  Internal notes are only available to staff and require the
// @Description  advanced PQR plan feature.
// @Tags         pqr
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket ID"
// @Param        request body pqrapp.AddCommentRequest true "Comment"
// @Success      201 {object} dto.Response{data=pqrapp.CommentResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /pqr/tickets/{id}/comments [post]
func (h *PQRHandler) AddComment(c *gin.Context) {
	ticketID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req pqrapp.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	comment, err := h.pqrService.AddComment(c.Request.Context(), middleware.GetTenantID(c), ticketID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, comment)
}

// ListComments godoc
// @Summary      List comments of a ticket
// @Description  Internal notes are filtered out for viewers without staff
// @Description  privileges on the ticket.
// @Tags         pqr
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket ID"
// @Success      200 {object} dto.Response{data=[]pqrapp.CommentResponse}
// @Router       /pqr/tickets/{id}/comments [get]
func (h *PQRHandler) ListComments(c *gin.Context) {
	ticketID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.pqrService.ListComments(c.Request.Context(), middleware.GetTenantID(c), ticketID, middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comments)
}

// AuditTrail godoc
// @Summary      Status history of a ticket
// @Tags         pqr
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket ID"
// @Success      200 {object} dto.Response{data=[]audit.ActivityLog}
// @Router       /pqr/tickets/{id}/history [get]
func (h *PQRHandler) AuditTrail(c *gin.Context) {
	ticketID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	trail, err := h.pqrService.AuditTrail(c.Request.Context(), middleware.GetTenantID(c), ticketID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trail)
}

// RegisterRoutes registers PQR routes
func (h *PQRHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tickets := rg.Group("/pqr/tickets")
	tickets.POST("", h.Create)
	tickets.GET("", h.List)
	tickets.GET("/:id", h.Get)
	tickets.PUT("/:id/status", h.ChangeStatus)
	tickets.POST("/:id/comments", h.AddComment)
	tickets.GET("/:id/comments", h.ListComments)
	tickets.GET("/:id/history", h.AuditTrail)

	staff := tickets.Group("")
	staff.Use(middleware.RequireStaff())
	staff.PUT("/:id/assign", h.Assign)
}
