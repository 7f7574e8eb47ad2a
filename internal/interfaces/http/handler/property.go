package handler

import (
	propertyapp "github.com/armonia/backend/internal/application/property"
	"github.com/armonia/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PropertyHandler handles property (unit) endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.Service
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *propertyapp.Service) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Register godoc
// @Summary      Register a property in the complex
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body propertyapp.RegisterPropertyRequest true "New property"
// @Success      201 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /properties [post]
func (h *PropertyHandler) Register(c *gin.Context) {
	var req propertyapp.RegisterPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	property, err := h.propertyService.Register(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, property)
}

// List godoc
// @Summary      List properties of the complex
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]propertyapp.PropertyResponse}
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	result, err := h.propertyService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Mine godoc
// @Summary      Properties where the caller is owner or resident
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]propertyapp.PropertyResponse}
// @Router       /properties/mine [get]
func (h *PropertyHandler) Mine(c *gin.Context) {
	properties, err := h.propertyService.ListByResident(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, properties)
}

// Get godoc
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	propertyID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), middleware.GetTenantID(c), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

// Update godoc
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body propertyapp.UpdatePropertyRequest true "Property data"
// @Success      200 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	propertyID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req propertyapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), middleware.GetTenantID(c), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

// SetOwner godoc
// @Summary      Set the owner of a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body propertyapp.SetOwnerRequest true "Owner"
// @Success      200 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Router       /properties/{id}/owner [put]
func (h *PropertyHandler) SetOwner(c *gin.Context) {
	propertyID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req propertyapp.SetOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	property, err := h.propertyService.SetOwner(c.Request.Context(), middleware.GetTenantID(c), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

// AddResident godoc
// @Summary      Add a resident to a property
// @Tags         properties
// @Accept       json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body propertyapp.ResidentRequest true "Resident"
// @Success      204
// @Router       /properties/{id}/residents [post]
func (h *PropertyHandler) AddResident(c *gin.Context) {
	propertyID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req propertyapp.ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	if err := h.propertyService.AddResident(c.Request.Context(), middleware.GetTenantID(c), propertyID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RemoveResident godoc
// @Summary      Remove a resident from a property
// @Tags         properties
// @Accept       json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body propertyapp.ResidentRequest true "Resident"
// @Success      204
// @Router       /properties/{id}/residents [delete]
func (h *PropertyHandler) RemoveResident(c *gin.Context) {
	propertyID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req propertyapp.ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	if err := h.propertyService.RemoveResident(c.Request.Context(), middleware.GetTenantID(c), propertyID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate godoc
// @Summary      Activate a property
// @Tags         properties
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      204
// @Router       /properties/{id}/activate [post]
func (h *PropertyHandler) Activate(c *gin.Context) {
	propertyID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.propertyService.Activate(c.Request.Context(), middleware.GetTenantID(c), propertyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate godoc
// @Summary      Deactivate a property
// @Tags         properties
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      204
// @Router       /properties/{id}/deactivate [post]
func (h *PropertyHandler) Deactivate(c *gin.Context) {
	propertyID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.propertyService.Deactivate(c.Request.Context(), middleware.GetTenantID(c), propertyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers property routes
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	properties.GET("/mine", h.Mine)
	properties.GET("", h.List)
	properties.GET("/:id", h.Get)

	admin := properties.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.POST("", h.Register)
	admin.PUT("/:id", h.Update)
	admin.PUT("/:id/owner", h.SetOwner)
	admin.POST("/:id/residents", h.AddResident)
	admin.DELETE("/:id/residents", h.RemoveResident)
	admin.POST("/:id/activate", h.Activate)
	admin.POST("/:id/deactivate", h.Deactivate)
}
