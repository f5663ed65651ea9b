package reconcile

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the ledger repositories.
// Each record reconciled forms one unit of work: every repository operation
// performed inside Execute is committed or rolled back atomically, so a
// failing record never leaves partial writes behind.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories within
// a transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	Expenses() ledger.ExpenseRepository
	Payments() ledger.PaymentRepository
	Suppliers() ledger.SupplierRepository
	AccountNames() ledger.AccountNameRepository
}

// NoOpTransactionScope runs the unit of work without a real transaction.
// It backs unit tests that use in-memory repositories.
type NoOpTransactionScope struct {
	expenses ledger.ExpenseRepository
	payments ledger.PaymentRepository
	supplier ledger.SupplierRepository
	accounts ledger.AccountNameRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	expenses ledger.ExpenseRepository,
	payments ledger.PaymentRepository,
	suppliers ledger.SupplierRepository,
	accounts ledger.AccountNameRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		expenses: expenses,
		payments: payments,
		supplier: suppliers,
		accounts: accounts,
	}
}

// Execute runs the function directly against the wrapped repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Expenses returns the expense repository.
func (s *NoOpTransactionScope) Expenses() ledger.ExpenseRepository { return s.expenses }

// Payments returns the payment repository.
func (s *NoOpTransactionScope) Payments() ledger.PaymentRepository { return s.payments }

// Suppliers returns the supplier repository.
func (s *NoOpTransactionScope) Suppliers() ledger.SupplierRepository { return s.supplier }

// AccountNames returns the account name repository.
func (s *NoOpTransactionScope) AccountNames() ledger.AccountNameRepository { return s.accounts }
