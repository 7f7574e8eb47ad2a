package persistence

import (
	"context"

	appbilling "github.com/armonia/backend/internal/application/billing"
	"github.com/armonia/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormBillingTransactionScope implements the billing TransactionScope using
// GORM transactions. It provides atomic execution of multiple repository
// operations.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope.
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormBillingTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormBillingTransactionalRepositories provides access to the billing
// repositories within a transaction.
type gormBillingTransactionalRepositories struct {
	tx *gorm.DB
}

// BillRepo returns the bill repository scoped to the current transaction.
func (r *gormBillingTransactionalRepositories) BillRepo() billing.BillRepository {
	return NewGormBillRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction.
func (r *gormBillingTransactionalRepositories) PaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Ensure GormBillingTransactionScope implements TransactionScope
var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)

// Ensure gormBillingTransactionalRepositories implements TransactionalRepositories
var _ appbilling.TransactionalRepositories = (*gormBillingTransactionalRepositories)(nil)
