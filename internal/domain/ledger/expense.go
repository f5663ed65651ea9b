package ledger

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents how much of an expense has been collected
type PaymentStatus string

const (
	StatusUnpaid        PaymentStatus = "UNPAID"
	StatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	StatusPaid          PaymentStatus = "PAID"
	StatusOverpaid      PaymentStatus = "OVERPAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPartiallyPaid, StatusPaid, StatusOverpaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// StatusFor derives the payment status from the expense amount and the
// cumulative total paid. The status is recomputed from scratch on every
// reconciliation; there are no guarded transitions between statuses.
func StatusFor(amount, totalPaid decimal.Decimal) PaymentStatus {
	switch {
	case totalPaid.LessThanOrEqual(decimal.Zero):
		return StatusUnpaid
	case totalPaid.LessThan(amount):
		return StatusPartiallyPaid
	case totalPaid.Equal(amount):
		return StatusPaid
	default:
		return StatusOverpaid
	}
}

// Remaining returns amount minus totalPaid quantized to 2 fractional digits.
func Remaining(amount, totalPaid decimal.Decimal) decimal.Decimal {
	return amount.Sub(totalPaid).Round(2)
}

// Expense is the ledger aggregate for one supplier invoice. It is created once
// per unique invoice number and afterwards only updated or referenced by new
// payments; the reconciliation engine never deletes it.
type Expense struct {
	shared.BaseEntity
	InvoiceNumber   string          `json:"invoice_number"`
	InvoiceName     string          `json:"invoice_name"`
	ExpenseDate     *time.Time      `json:"expense_date"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          PaymentStatus   `json:"status"`
	SupplierID      *uuid.UUID      `json:"supplier_id"`
	AccountNameID   *uuid.UUID      `json:"account_name_id"`
	RegionID        *uuid.UUID      `json:"region_id"`
	PaymentTypeID   *uuid.UUID      `json:"payment_type_id"`
	BudgetItemID    *uuid.UUID      `json:"budget_item_id"`
	CompletedAt     *time.Time      `json:"completed_at"`
}

// NewExpense creates a new expense for an invoice
func NewExpense(invoiceNumber, invoiceName string, amount decimal.Decimal, expenseDate *time.Time) (*Expense, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 100 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 100 characters")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	return &Expense{
		BaseEntity:      shared.NewBaseEntity(),
		InvoiceNumber:   invoiceNumber,
		InvoiceName:     invoiceName,
		ExpenseDate:     expenseDate,
		Amount:          amount.Round(2),
		RemainingAmount: amount.Round(2),
		Status:          StatusUnpaid,
	}, nil
}

// ApplyTotals recomputes remaining amount and status from the current amount
// and the given cumulative total paid. completionDate is recorded as
// CompletedAt when the expense becomes fully collected; when the expense drops
// back below fully collected, CompletedAt is cleared.
func (e *Expense) ApplyTotals(totalPaid decimal.Decimal, completionDate *time.Time) {
	e.RemainingAmount = Remaining(e.Amount, totalPaid)
	e.Status = StatusFor(e.Amount, totalPaid)

	if e.Status == StatusPaid || e.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		if completionDate != nil {
			e.CompletedAt = completionDate
		} else if e.CompletedAt == nil {
			e.CompletedAt = e.ExpenseDate
		}
	} else {
		e.CompletedAt = nil
	}
	e.Touch()
}

// SetAmount replaces the invoice amount
func (e *Expense) SetAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	e.Amount = amount.Round(2)
	e.Touch()
	return nil
}

// SetReferences attaches master data references to the expense
func (e *Expense) SetReferences(regionID, paymentTypeID, budgetItemID *uuid.UUID) {
	e.RegionID = regionID
	e.PaymentTypeID = paymentTypeID
	e.BudgetItemID = budgetItemID
	e.Touch()
}

// IsCompleted returns true if the expense is fully collected
func (e *Expense) IsCompleted() bool {
	return e.CompletedAt != nil
}
