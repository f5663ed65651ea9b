package reconcile

import (
	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// TaxTotals holds the aggregated per-category tax figures for one import
// record. All four categories are present, including zero totals; the
// reconciler persists only the non-zero ones.
type TaxTotals map[ledger.TaxCategory]decimal.Decimal

// AggregateTaxes sums the per-line tax figures into category totals quantized
// to 2 fractional digits. Missing or unparseable line values count as zero.
func AggregateTaxes(lines []ImportLine) TaxTotals {
	totals := TaxTotals{
		ledger.TaxKDV:      decimal.Zero,
		ledger.TaxTevkifat: decimal.Zero,
		ledger.TaxOTV:      decimal.Zero,
		ledger.TaxOIV:      decimal.Zero,
	}
	for i := range lines {
		totals[ledger.TaxKDV] = totals[ledger.TaxKDV].Add(lenientDecimal(lines[i].KDVAmount))
		totals[ledger.TaxTevkifat] = totals[ledger.TaxTevkifat].Add(lenientDecimal(lines[i].TevkifatAmount))
		totals[ledger.TaxOTV] = totals[ledger.TaxOTV].Add(lenientDecimal(lines[i].OTVAmount))
		totals[ledger.TaxOIV] = totals[ledger.TaxOIV].Add(lenientDecimal(lines[i].OIVAmount))
	}
	for category, total := range totals {
		totals[category] = total.Round(2)
	}
	return totals
}

// NonZero returns the categories with a non-zero total, in persistence order.
func (t TaxTotals) NonZero() []ledger.TaxCategory {
	var categories []ledger.TaxCategory
	for _, category := range ledger.TaxCategories {
		if !t[category].IsZero() {
			categories = append(categories, category)
		}
	}
	return categories
}
