package reconcile

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImportLine is one normalized invoice line produced by the spreadsheet
// normalizer. All figures arrive as decimal strings; missing or unparseable
// tax figures are treated as zero.
type ImportLine struct {
	Description    string `json:"description"`
	Quantity       string `json:"quantity"`
	UnitPrice      string `json:"unit_price"`
	Discount       string `json:"discount"`
	KDVAmount      string `json:"kdv_amount"`
	TevkifatAmount string `json:"tevkifat_amount"`
	OTVAmount      string `json:"otv_amount"`
	OIVAmount      string `json:"oiv_amount"`
	NetAmount      string `json:"net_amount"`
}

// ImportRecord is one normalized invoice record to reconcile against the
// ledger. InvoiceNumber is the sole identity used to decide create vs update;
// TotalPaid is the cumulative amount collected as of this import, not a delta.
type ImportRecord struct {
	InvoiceNumber   string       `json:"invoice_number"`
	InvoiceName     string       `json:"invoice_name"`
	Date            string       `json:"date"`
	Supplier        string       `json:"supplier"`
	AccountName     string       `json:"account_name"`
	Amount          string       `json:"amount"`
	TotalPaid       string       `json:"total_paid"`
	LastPaymentDate string       `json:"last_payment_date"`
	Lines           []ImportLine `json:"lines"`
}

// Defaults carries the master data references stamped onto every expense the
// batch creates.
type Defaults struct {
	RegionID      *uuid.UUID `json:"region_id"`
	PaymentTypeID *uuid.UUID `json:"payment_type_id"`
	BudgetItemID  *uuid.UUID `json:"budget_item_id"`
}

// Options controls update-path behavior for a batch run.
type Options struct {
	AllowNegativeAdjustment bool `json:"allow_negative_adjustment"`
	UpdateAmountIfChanged   bool `json:"update_amount_if_changed"`
	UpdateTaxesOnUpsert     bool `json:"update_taxes_on_upsert"`
}

// dateLayouts are the date formats the normalizer is known to emit.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a date string in any of the accepted layouts. An empty
// string yields nil without error.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, NewValidationError("unrecognized date %q", s)
}

// ParseAmount parses a required decimal string and quantizes it to 2
// fractional digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, NewValidationError("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewValidationError("invalid decimal %q", s)
	}
	return d.Round(2), nil
}

// ParseOptionalAmount parses a decimal string defaulting to zero when empty.
func ParseOptionalAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewValidationError("invalid decimal %q", s)
	}
	return d.Round(2), nil
}

// lenientDecimal parses a decimal string treating blanks and garbage as zero.
// Line-level figures are best effort; only record-level amounts are strict.
func lenientDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
