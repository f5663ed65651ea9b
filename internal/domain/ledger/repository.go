package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseFilter holds query options for listing expenses
type ExpenseFilter struct {
	Search     string
	Status     *PaymentStatus
	SupplierID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
	OrderBy    string
	OrderDir   string
	Page       int
	PageSize   int
}

// ExpenseRepository persists Expense aggregates together with their owned
// lines and tax totals.
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Expense, error)
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)
	Save(ctx context.Context, expense *Expense) error

	FindLines(ctx context.Context, expenseID uuid.UUID) ([]ExpenseLine, error)
	CreateLines(ctx context.Context, lines []*ExpenseLine) error
	DeleteLines(ctx context.Context, expenseID uuid.UUID) error

	FindTaxes(ctx context.Context, expenseID uuid.UUID) ([]ExpenseTax, error)
	CreateTaxes(ctx context.Context, taxes []*ExpenseTax) error
	DeleteTaxes(ctx context.Context, expenseID uuid.UUID) error
}

// PaymentRepository persists append-only payment entries
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]Payment, error)
	// SumByExpense returns the cumulative total paid for an expense,
	// excluding reversed payments.
	SumByExpense(ctx context.Context, expenseID uuid.UUID) (decimal.Decimal, error)
	// LatestPaymentDate returns the date of the most recent non-reversed
	// payment, or nil when the expense has none.
	LatestPaymentDate(ctx context.Context, expenseID uuid.UUID) (*time.Time, error)
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context) ([]Supplier, error)
	Create(ctx context.Context, supplier *Supplier) error
}

// AccountNameRepository persists account names
type AccountNameRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountName, error)
	FindAll(ctx context.Context) ([]AccountName, error)
	Create(ctx context.Context, account *AccountName) error
}
