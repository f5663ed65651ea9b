package persistence

import (
	"context"

	"github.com/bookkeeping/backend/internal/application/reconcile"
	"github.com/bookkeeping/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements reconcile.TransactionScope using GORM
// transactions. Each Execute call is one unit of work: all expense, payment,
// supplier and account writes inside it commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos reconcile.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to the ledger repositories
// scoped to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Expenses returns the expense repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Expenses() ledger.ExpenseRepository {
	return NewGormExpenseRepository(r.tx)
}

// Payments returns the payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Payments() ledger.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Suppliers returns the supplier repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Suppliers() ledger.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

// AccountNames returns the account name repository scoped to the current transaction.
func (r *gormTransactionalRepositories) AccountNames() ledger.AccountNameRepository {
	return NewGormAccountNameRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ reconcile.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ reconcile.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
