package billing

import (
	"context"
	"errors"
	"time"

	"github.com/armonia/backend/internal/domain/audit"
	"github.com/armonia/backend/internal/domain/billing"
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/property"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/armonia/backend/internal/infrastructure/config"
	"github.com/armonia/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FeatureGate answers whether a complex currently has access to a feature,
// through its plan or an active trial window.
type FeatureGate interface {
	HasAccess(ctx context.Context, tenantID uuid.UUID, key complexes.FeatureKey) (bool, error)
}

// Actor identifies the user performing an operation, for audit logging
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
}

// Service orchestrates bill generation, payment application and late fee
// assessment for a complex.
type Service struct {
	billRepo     billing.BillRepository
	paymentRepo  billing.PaymentRepository
	feeRepo      billing.FeeRepository
	propertyRepo property.Repository
	activityRepo audit.Repository
	txScope      TransactionScope
	features     FeatureGate
	cfg          config.BillingConfig
	logger       *zap.Logger
}

// NewService creates a new billing Service
func NewService(
	billRepo billing.BillRepository,
	paymentRepo billing.PaymentRepository,
	feeRepo billing.FeeRepository,
	propertyRepo property.Repository,
	activityRepo audit.Repository,
	txScope TransactionScope,
	features FeatureGate,
	cfg config.BillingConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		billRepo:     billRepo,
		paymentRepo:  paymentRepo,
		feeRepo:      feeRepo,
		propertyRepo: propertyRepo,
		activityRepo: activityRepo,
		txScope:      txScope,
		features:     features,
		cfg:          cfg,
		logger:       logger,
	}
}

// CurrentPeriod returns the billing period covering the current moment
func (s *Service) CurrentPeriod() billing.BillingPeriod {
	return billing.CurrentPeriod(time.Now())
}

// GenerateBills creates one bill per active property for the requested
// period, charging every active fee. Generation is rejected when the plan
// lacks billing access or the period already has bills. A complex with no
// properties or no active fees generates nothing and is not an error.
func (s *Service) GenerateBills(ctx context.Context, tenantID uuid.UUID, actor Actor, req GenerateBillsRequest) (*GenerateBillsResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "BillingService", "GenerateBills")
	defer span.End()
	telemetry.SetAttributes(span, "tenant.id", tenantID.String(), "billing.year", req.Year, "billing.month", req.Month)

	allowed, err := s.features.HasAccess(ctx, tenantID, complexes.FeatureBillingEngine)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !allowed {
		return nil, shared.ErrFeatureNotInPlan
	}

	period, err := billing.ParsePeriod(req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	exists, err := s.billRepo.ExistsForPeriod(ctx, tenantID, period.Year, period.Month)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, billing.ErrDuplicatePeriod
	}

	properties, err := s.propertyRepo.FindActive(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	dueDate := s.dueDateFor(period)
	result := &GenerateBillsResult{
		Period:      period.Label(),
		TotalAmount: decimal.Zero,
		Currency:    string(valueobject.DefaultCurrency),
		DueDate:     dueDate,
	}
	if len(properties) == 0 {
		return result, nil
	}

	fees, err := s.feeRepo.FindActive(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(fees) == 0 {
		return result, nil
	}

	bills := make([]*billing.Bill, 0, len(properties))
	total := decimal.Zero
	for i := range properties {
		p := &properties[i]
		if !p.IsBillable() {
			continue
		}
		lines := make([]billing.LineItem, 0, len(fees))
		for _, f := range fees {
			lines = append(lines, billing.LineItem{
				FeeID:   f.ID,
				FeeName: f.Name,
				FeeType: f.Type,
				Amount:  f.AmountFor(p.Area),
			})
		}
		bill, err := billing.NewBill(tenantID, p.ID, p.Number, period, dueDate, lines)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		bills = append(bills, bill)
		total = total.Add(bill.TotalAmount.Amount())
	}

	if err := s.billRepo.SaveBatch(ctx, bills); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.recordActivity(ctx, tenantID, actor, billing.AggregateTypeBill, uuid.Nil, "bills.generated", audit.Details{
		"period":     period.Label(),
		"bill_count": len(bills),
		"total":      total.String(),
	})

	s.logger.Info("bills generated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("period", period.Label()),
		zap.Int("bill_count", len(bills)))

	result.BillCount = len(bills)
	result.TotalAmount = total
	return result, nil
}

// RegisterPayment applies a payment to a bill and records it. The response
// reports whether the payment settled the bill; an excess over the
// outstanding balance is kept on the payment as overpayment.
func (s *Service) RegisterPayment(ctx context.Context, tenantID, billID uuid.UUID, actor Actor, req RegisterPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "BillingService", "RegisterPayment")
	defer span.End()
	telemetry.SetAttributes(span, "tenant.id", tenantID.String(), "bill.id", billID.String())

	bill, err := s.billRepo.FindByID(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.Amount, bill.TotalAmount.Currency())
	if err != nil {
		return nil, err
	}

	// The excess has to be captured before ApplyPayment zeroes the balance.
	excess := valueobject.Zero(amount.Currency())
	if over, cmpErr := amount.GreaterThanOrEqual(bill.OutstandingAmount); cmpErr == nil && over {
		excess, _ = amount.Subtract(bill.OutstandingAmount)
	}

	settled, err := bill.ApplyPayment(amount)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	payment, err := billing.NewPayment(tenantID, billID, amount, billing.PaymentMethod(req.Method), req.Reference)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if excess.IsPositive() {
		if err := payment.RecordOverpayment(excess); err != nil {
			return nil, err
		}
	}
	if actor.ID != uuid.Nil {
		payment.ReceivedBy = &actor.ID
	}

	// The bill update and the payment record commit or roll back together.
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.BillRepo().SaveWithLock(ctx, bill); err != nil {
			return err
		}
		return repos.PaymentRepo().Save(ctx, payment)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.recordActivity(ctx, tenantID, actor, billing.AggregateTypeBill, billID, "payment.registered", audit.Details{
		"payment_id": payment.ID.String(),
		"amount":     amount.String(),
		"settled":    settled,
	})

	resp := ToPaymentResponse(payment, bill, settled)
	return &resp, nil
}

// AssessLateFees sweeps overdue bills past the grace window and charges a
// late fee prorated by days overdue. Bills that already carry a late fee are
// skipped, as are bills another process updated mid-sweep.
func (s *Service) AssessLateFees(ctx context.Context, tenantID uuid.UUID, actor Actor) (*LateFeeRunResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "BillingService", "AssessLateFees")
	defer span.End()
	telemetry.SetAttributes(span, "tenant.id", tenantID.String())

	allowed, err := s.features.HasAccess(ctx, tenantID, complexes.FeatureLateFees)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !allowed {
		return nil, shared.ErrFeatureNotInPlan
	}

	overdue, err := s.billRepo.FindOverdue(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	rate := decimal.NewFromFloat(s.cfg.LateFeeMonthlyRate)
	now := time.Now()
	result := &LateFeeRunResult{}

	for i := range overdue {
		bill := &overdue[i]
		if bill.HasLateFee() {
			result.Skipped++
			continue
		}
		daysLate := bill.DaysLate(now)
		if daysLate <= s.cfg.GraceDays {
			result.Skipped++
			continue
		}

		fee, err := billing.CalculateLateFee(bill.OutstandingAmount, daysLate, rate)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if !fee.IsPositive() {
			result.Skipped++
			continue
		}
		if err := bill.AddLateFee(fee, "Interés de mora"); err != nil {
			result.Skipped++
			continue
		}
		if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				s.logger.Warn("late fee skipped, bill changed concurrently",
					zap.String("bill_id", bill.ID.String()))
				result.Skipped++
				continue
			}
			telemetry.RecordError(span, err)
			return nil, err
		}
		result.Assessed++
	}

	if result.Assessed > 0 {
		s.recordActivity(ctx, tenantID, actor, billing.AggregateTypeBill, uuid.Nil, "late_fees.assessed", audit.Details{
			"assessed": result.Assessed,
			"skipped":  result.Skipped,
		})
	}

	return result, nil
}

// GetBill retrieves a bill by ID
func (s *Service) GetBill(ctx context.Context, tenantID, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}
	resp := ToBillResponse(bill)
	return &resp, nil
}

// ListBills retrieves bills matching the filter with pagination
func (s *Service) ListBills(ctx context.Context, tenantID uuid.UUID, filter BillListFilter) (*shared.Paginated[BillResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		repoFilter.OrderBy = filter.SortBy
	}
	if filter.SortOrder != "" {
		repoFilter.OrderDir = filter.SortOrder
	}
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}
	if filter.Year > 0 {
		repoFilter.Filters["period_year"] = filter.Year
	}
	if filter.Month > 0 {
		repoFilter.Filters["period_month"] = filter.Month
	}

	var (
		bills []billing.Bill
		err   error
	)
	if filter.PropertyID != nil {
		bills, err = s.billRepo.FindByProperty(ctx, tenantID, *filter.PropertyID, repoFilter)
	} else {
		bills, err = s.billRepo.FindAll(ctx, tenantID, repoFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.billRepo.Count(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	page := shared.NewPaginated(responses, total, repoFilter.Page, repoFilter.PageSize)
	return &page, nil
}

// ListPayments retrieves the payments applied to a bill in application order
func (s *Service) ListPayments(ctx context.Context, tenantID, billID uuid.UUID) ([]PaymentResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByBill(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i], bill, bill.Status == billing.BillStatusPaid)
	}
	return responses, nil
}

// dueDateFor anchors the due date on the configured day of the period month,
// clamped to the month's last day.
func (s *Service) dueDateFor(period billing.BillingPeriod) time.Time {
	day := s.cfg.DueDayOfMonth
	lastDay := time.Date(period.Year, time.Month(period.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(period.Year, time.Month(period.Month), day, 0, 0, 0, 0, time.UTC)
}

func (s *Service) recordActivity(ctx context.Context, tenantID uuid.UUID, actor Actor, entityType string, entityID uuid.UUID, action string, details audit.Details) {
	entry, err := audit.NewActivityLog(tenantID, actor.ID, actor.Name, actor.Role, entityType, entityID, action, details)
	if err != nil {
		s.logger.Warn("activity log entry rejected", zap.String("action", action), zap.Error(err))
		return
	}
	if err := s.activityRepo.Save(ctx, entry); err != nil {
		s.logger.Warn("activity log write failed", zap.String("action", action), zap.Error(err))
	}
}
