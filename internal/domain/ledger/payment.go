package ledger

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an append-only ledger entry recording money collected against an
// expense. The engine creates payments and never mutates or deletes them; the
// sum of a non-reversed expense's payments is its cumulative total paid.
type Payment struct {
	shared.BaseEntity
	ExpenseID   uuid.UUID       `json:"expense_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAt      time.Time       `json:"paid_at"`
	Description string          `json:"description"`
	Reversed    bool            `json:"reversed"`
}

// NewPayment creates a payment entry. A negative amount is only legal for an
// explicitly authorized downward adjustment of the cumulative total.
func NewPayment(expenseID uuid.UUID, amount decimal.Decimal, paidAt time.Time, description string, allowNegative bool) (*Payment, error) {
	if expenseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPENSE", "Payment must reference an expense")
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount cannot be zero")
	}
	if amount.IsNegative() && !allowNegative {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount cannot be negative")
	}
	if paidAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date is required")
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		ExpenseID:   expenseID,
		Amount:      amount.Round(2),
		PaidAt:      paidAt,
		Description: description,
	}, nil
}
