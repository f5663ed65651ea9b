package reconcile

import (
	"strings"

	"github.com/google/uuid"
)

// Override is a caller-supplied correction for one invoice number, merged onto
// the import record before parsing and validation. Name fields replace the
// record's textual names; id fields bypass name resolution entirely and always
// win over lookup and creation.
type Override struct {
	InvoiceNumber   string     `json:"invoice_number"`
	SupplierID      *uuid.UUID `json:"supplier_id"`
	SupplierName    *string    `json:"supplier_name"`
	AccountID       *uuid.UUID `json:"account_id"`
	AccountName     *string    `json:"account_name"`
	TotalPaid       *string    `json:"total_paid"`
	LastPaymentDate *string    `json:"last_payment_date"`
}

// Apply merges the override onto a copy of the record. It is a pure function;
// the input record is not modified. A nil override returns the record as is.
func (o *Override) Apply(record ImportRecord) ImportRecord {
	if o == nil {
		return record
	}
	if o.SupplierName != nil {
		record.Supplier = *o.SupplierName
	}
	if o.AccountName != nil {
		record.AccountName = *o.AccountName
	}
	if o.TotalPaid != nil {
		record.TotalPaid = *o.TotalPaid
	}
	if o.LastPaymentDate != nil {
		record.LastPaymentDate = *o.LastPaymentDate
	}
	return record
}

// BuildOverrideIndex builds the per-batch lookup map keyed by trimmed invoice
// number. Later overrides for the same invoice number win.
func BuildOverrideIndex(overrides []Override) map[string]*Override {
	index := make(map[string]*Override, len(overrides))
	for i := range overrides {
		key := strings.TrimSpace(overrides[i].InvoiceNumber)
		if key == "" {
			continue
		}
		index[key] = &overrides[i]
	}
	return index
}
