package ledger

import (
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseLine is one imported invoice line item owned by an expense. Lines are
// immutable once written except when an update explicitly replaces the whole
// set.
type ExpenseLine struct {
	shared.BaseEntity
	ExpenseID      uuid.UUID       `json:"expense_id"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Discount       decimal.Decimal `json:"discount"`
	KDVAmount      decimal.Decimal `json:"kdv_amount"`
	TevkifatAmount decimal.Decimal `json:"tevkifat_amount"`
	OTVAmount      decimal.Decimal `json:"otv_amount"`
	OIVAmount      decimal.Decimal `json:"oiv_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
}

// NewExpenseLine creates a line item for an expense
func NewExpenseLine(expenseID uuid.UUID, description string) *ExpenseLine {
	return &ExpenseLine{
		BaseEntity:  shared.NewBaseEntity(),
		ExpenseID:   expenseID,
		Description: description,
	}
}
