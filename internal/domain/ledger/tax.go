package ledger

import (
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxCategory identifies one of the four fixed tax categories carried on
// invoice lines.
type TaxCategory string

const (
	TaxKDV      TaxCategory = "KDV"      // value-added tax
	TaxTevkifat TaxCategory = "TEVKIFAT" // withholding
	TaxOTV      TaxCategory = "OTV"      // special consumption tax
	TaxOIV      TaxCategory = "OIV"      // special communication tax
)

// TaxCategories lists all categories in persistence order
var TaxCategories = []TaxCategory{TaxKDV, TaxTevkifat, TaxOTV, TaxOIV}

// IsValid checks if the category is one of the fixed tax categories
func (c TaxCategory) IsValid() bool {
	switch c {
	case TaxKDV, TaxTevkifat, TaxOTV, TaxOIV:
		return true
	}
	return false
}

// String returns the string representation of TaxCategory
func (c TaxCategory) String() string {
	return string(c)
}

// ExpenseTax is one per-category tax total row for an expense. Tax rows are
// replaced as a set, never partially patched, and only non-zero totals are
// persisted.
type ExpenseTax struct {
	shared.BaseEntity
	ExpenseID uuid.UUID       `json:"expense_id"`
	Category  TaxCategory     `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewExpenseTax creates a tax total row for an expense
func NewExpenseTax(expenseID uuid.UUID, category TaxCategory, amount decimal.Decimal) (*ExpenseTax, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_TAX_CATEGORY", "Tax category is not valid")
	}
	return &ExpenseTax{
		BaseEntity: shared.NewBaseEntity(),
		ExpenseID:  expenseID,
		Category:   category,
		Amount:     amount.Round(2),
	}, nil
}
