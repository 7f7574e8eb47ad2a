package handler

import (
	billingapp "github.com/armonia/backend/internal/application/billing"
	"github.com/armonia/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BillingHandler handles bill generation and payment endpoints
type BillingHandler struct {
	BaseHandler
	billingService *billingapp.Service
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *billingapp.Service) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

func (h *BillingHandler) actor(c *gin.Context) billingapp.Actor {
	return billingapp.Actor{
		ID:   middleware.GetUserID(c),
		Name: middleware.GetEmail(c),
		Role: string(middleware.GetRole(c)),
	}
}

// Generate godoc
// @Summary      Generate the monthly billing run
// @Description  Creates one bill per billable property for the given period.
// @Description  A period can only be billed once per complex.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body billingapp.GenerateBillsRequest true "Billing period"
// @Success      201 {object} dto.Response{data=billingapp.GenerateBillsResult}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/generate [post]
func (h *BillingHandler) Generate(c *gin.Context) {
	var req billingapp.GenerateBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	result, err := h.billingService.GenerateBills(c.Request.Context(), middleware.GetTenantID(c), h.actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListBills godoc
// @Summary      List bills of the complex
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Bill status"
// @Param        property_id query string false "Property ID"
// @Param        year query int false "Period year"
// @Param        month query int false "Period month"
// @Success      200 {object} dto.Response{data=[]billingapp.BillResponse}
// @Router       /billing/bills [get]
func (h *BillingHandler) ListBills(c *gin.Context) {
	var filter billingapp.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Parámetros de consulta inválidos")
		return
	}

	result, err := h.billingService.ListBills(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetBill godoc
// @Summary      Get a bill
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill ID"
// @Success      200 {object} dto.Response{data=billingapp.BillResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/bills/{id} [get]
func (h *BillingHandler) GetBill(c *gin.Context) {
	billID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), middleware.GetTenantID(c), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// RegisterPayment godoc
// @Summary      Register a payment against a bill
// @Description  Applies the amount to the bill's outstanding balance and
// @Description  reports whether the bill was settled. Overpayments are
// @Description  recorded as a credit.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill ID"
// @Param        request body billingapp.RegisterPaymentRequest true "Payment"
// @Success      201 {object} dto.Response{data=billingapp.PaymentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/bills/{id}/payments [post]
func (h *BillingHandler) RegisterPayment(c *gin.Context) {
	billID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req billingapp.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	payment, err := h.billingService.RegisterPayment(c.Request.Context(), middleware.GetTenantID(c), billID, h.actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// ListPayments godoc
// @Summary      List payments applied to a bill
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill ID"
// @Success      200 {object} dto.Response{data=[]billingapp.PaymentResponse}
// @Router       /billing/bills/{id}/payments [get]
func (h *BillingHandler) ListPayments(c *gin.Context) {
	billID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.billingService.ListPayments(c.Request.Context(), middleware.GetTenantID(c), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// RunLateFees godoc
// @Summary      Assess late fees on overdue bills
// @Description  Adds the monthly interest charge to every overdue bill past
// @Description  the grace period that does not carry one yet.
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=billingapp.LateFeeRunResult}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/late-fees/run [post]
func (h *BillingHandler) RunLateFees(c *gin.Context) {
	result, err := h.billingService.AssessLateFees(c.Request.Context(), middleware.GetTenantID(c), h.actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CurrentPeriod godoc
// @Summary      Current billing period
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /billing/period [get]
func (h *BillingHandler) CurrentPeriod(c *gin.Context) {
	period := h.billingService.CurrentPeriod()
	h.Success(c, gin.H{
		"year":  period.Year,
		"month": period.Month,
		"label": period.Label(),
	})
}

// RegisterRoutes registers billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	billing.Use(middleware.RequireStaff())
	billing.GET("/period", h.CurrentPeriod)
	billing.GET("/bills", h.ListBills)
	billing.GET("/bills/:id", h.GetBill)
	billing.GET("/bills/:id/payments", h.ListPayments)
	billing.POST("/bills/:id/payments", h.RegisterPayment)

	admin := billing.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.POST("/generate", h.Generate)
	admin.POST("/late-fees/run", h.RunLateFees)
}
