package handler

import (
	complexapp "github.com/armonia/backend/internal/application/complexes"
	"github.com/armonia/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ComplexHandler handles residential complex endpoints
type ComplexHandler struct {
	BaseHandler
	complexService *complexapp.Service
}

// NewComplexHandler creates a new complex handler
func NewComplexHandler(complexService *complexapp.Service) *ComplexHandler {
	return &ComplexHandler{complexService: complexService}
}

// Onboard godoc
// @Summary      Onboard a new residential complex
// @Description  Creates a complex in trial mode with full feature access
// @Tags         complexes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body complexapp.OnboardComplexRequest true "New complex"
// @Success      201 {object} dto.Response{data=complexapp.ComplexResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /complexes [post]
func (h *ComplexHandler) Onboard(c *gin.Context) {
	var req complexapp.OnboardComplexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	complex, err := h.complexService.Onboard(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, complex)
}

// List godoc
// @Summary      List residential complexes
// @Tags         complexes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]complexapp.ComplexResponse}
// @Router       /complexes [get]
func (h *ComplexHandler) List(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	result, err := h.complexService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get a residential complex
// @Tags         complexes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Complex ID"
// @Success      200 {object} dto.Response{data=complexapp.ComplexResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /complexes/{id} [get]
func (h *ComplexHandler) Get(c *gin.Context) {
	complexID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	complex, err := h.complexService.GetByID(c.Request.Context(), complexID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, complex)
}

// Update godoc
// @Summary      Update a residential complex
// @Tags         complexes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Complex ID"
// @Param        request body complexapp.UpdateComplexRequest true "Complex data"
// @Success      200 {object} dto.Response{data=complexapp.ComplexResponse}
// @Router       /complexes/{id} [put]
func (h *ComplexHandler) Update(c *gin.Context) {
	complexID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req complexapp.UpdateComplexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	complex, err := h.complexService.Update(c.Request.Context(), complexID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, complex)
}

// SetPlan godoc
// @Summary      Change the subscription plan of a complex
// @Tags         complexes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Complex ID"
// @Param        request body complexapp.SetPlanRequest true "New plan"
// @Success      200 {object} dto.Response{data=complexapp.ComplexResponse}
// @Router       /complexes/{id}/plan [put]
func (h *ComplexHandler) SetPlan(c *gin.Context) {
	complexID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req complexapp.SetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	complex, err := h.complexService.SetPlan(
		c.Request.Context(),
		complexID,
		middleware.GetUserID(c),
		middleware.GetEmail(c),
		string(middleware.GetRole(c)),
		req,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, complex)
}

// UpdatePQRSettings godoc
// @Summary      Update PQR policies of a complex
// @Tags         complexes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Complex ID"
// @Param        request body complexapp.UpdatePQRSettingsRequest true "PQR settings"
// @Success      200 {object} dto.Response{data=complexapp.ComplexResponse}
// @Router       /complexes/{id}/pqr-settings [put]
func (h *ComplexHandler) UpdatePQRSettings(c *gin.Context) {
	complexID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req complexapp.UpdatePQRSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	complex, err := h.complexService.UpdatePQRSettings(c.Request.Context(), complexID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, complex)
}

// Deactivate godoc
// @Summary      Deactivate a residential complex
// @Tags         complexes
// @Security     BearerAuth
// @Param        id path string true "Complex ID"
// @Success      204
// @Router       /complexes/{id} [delete]
func (h *ComplexHandler) Deactivate(c *gin.Context) {
	complexID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.complexService.Deactivate(c.Request.Context(), complexID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Features godoc
// @Summary      Feature access of the caller's complex
// @Description  Lists every feature key with its availability under the
// @Description  current plan or trial
// @Tags         complexes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]complexapp.FeatureAccessResponse}
// @Router       /complexes/features [get]
func (h *ComplexHandler) Features(c *gin.Context) {
	features, err := h.complexService.FeatureAccess(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, features)
}

// RegisterRoutes registers complex routes
func (h *ComplexHandler) RegisterRoutes(rg *gin.RouterGroup) {
	complexes := rg.Group("/complexes")
	complexes.GET("/features", h.Features)

	admin := complexes.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.POST("", h.Onboard)
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.PUT("/:id", h.Update)
	admin.PUT("/:id/plan", h.SetPlan)
	admin.PUT("/:id/pqr-settings", h.UpdatePQRSettings)
	admin.DELETE("/:id", h.Deactivate)
}
