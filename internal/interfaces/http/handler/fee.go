package handler

import (
	billingapp "github.com/armonia/backend/internal/application/billing"
	"github.com/armonia/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// FeeHandler handles fee catalog endpoints
type FeeHandler struct {
	BaseHandler
	feeService *billingapp.FeeService
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeService *billingapp.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// Create godoc
// @Summary      Create a fee
// @Description  Registers a flat or per-square-meter fee in the complex catalog
// @Tags         fees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body billingapp.CreateFeeRequest true "New fee"
// @Success      201 {object} dto.Response{data=billingapp.FeeResponse}
// @Router       /fees [post]
func (h *FeeHandler) Create(c *gin.Context) {
	var req billingapp.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	fee, err := h.feeService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, fee)
}

// List godoc
// @Summary      List fees of the complex
// @Tags         fees
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]billingapp.FeeResponse}
// @Router       /fees [get]
func (h *FeeHandler) List(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	fees, err := h.feeService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fees)
}

// Get godoc
// @Summary      Get a fee
// @Tags         fees
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Fee ID"
// @Success      200 {object} dto.Response{data=billingapp.FeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fees/{id} [get]
func (h *FeeHandler) Get(c *gin.Context) {
	feeID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	fee, err := h.feeService.GetByID(c.Request.Context(), middleware.GetTenantID(c), feeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fee)
}

// Update godoc
// @Summary      Update a fee
// @Tags         fees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Fee ID"
// @Param        request body billingapp.UpdateFeeRequest true "Fee data"
// @Success      200 {object} dto.Response{data=billingapp.FeeResponse}
// @Router       /fees/{id} [put]
func (h *FeeHandler) Update(c *gin.Context) {
	feeID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req billingapp.UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	fee, err := h.feeService.Update(c.Request.Context(), middleware.GetTenantID(c), feeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fee)
}

// Activate godoc
// @Summary      Activate a fee
// @Tags         fees
// @Security     BearerAuth
// @Param        id path string true "Fee ID"
// @Success      204
// @Router       /fees/{id}/activate [post]
func (h *FeeHandler) Activate(c *gin.Context) {
	feeID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.feeService.Activate(c.Request.Context(), middleware.GetTenantID(c), feeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate godoc
// @Summary      Deactivate a fee
// @Tags         fees
// @Security     BearerAuth
// @Param        id path string true "Fee ID"
// @Success      204
// @Router       /fees/{id}/deactivate [post]
func (h *FeeHandler) Deactivate(c *gin.Context) {
	feeID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.feeService.Deactivate(c.Request.Context(), middleware.GetTenantID(c), feeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers fee catalog routes
func (h *FeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	fees := rg.Group("/fees")
	fees.Use(middleware.RequireAdmin())
	fees.POST("", h.Create)
	fees.GET("", h.List)
	fees.GET("/:id", h.Get)
	fees.PUT("/:id", h.Update)
	fees.POST("/:id/activate", h.Activate)
	fees.POST("/:id/deactivate", h.Deactivate)
}
