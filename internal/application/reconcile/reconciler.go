package reconcile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Action describes what one record's reconciliation did to the ledger.
type Action string

const (
	ActionCreated            Action = "created"
	ActionCreatedWithPayment Action = "created_with_payment"
	ActionDeltaPayment       Action = "delta_payment"
	ActionNegativeAdjustment Action = "negative_adjustment"
	ActionNoop               Action = "noop"
)

// RecordResult is the metadata returned for one successfully reconciled record.
type RecordResult struct {
	InvoiceNumber        string               `json:"invoice_number"`
	ExpenseID            uuid.UUID            `json:"expense_id"`
	Action               Action               `json:"action"`
	DeltaPayment         decimal.Decimal      `json:"delta_payment"`
	FinalPaid            decimal.Decimal      `json:"final_paid"`
	RemainingAmount      decimal.Decimal      `json:"remaining_amount"`
	FinalStatus          ledger.PaymentStatus `json:"final_status"`
	UsedOverrideSupplier bool                 `json:"used_override_supplier"`
	UsedOverrideAccount  bool                 `json:"used_override_account"`
	PaymentIDs           []uuid.UUID          `json:"payment_ids,omitempty"`
	LineIDs              []uuid.UUID          `json:"line_ids,omitempty"`
	TaxIDs               []uuid.UUID          `json:"tax_ids,omitempty"`
}

// Reconciler applies one normalized import record to the ledger: it creates a
// new expense for an unseen invoice number or updates the existing one by
// computing the payment delta against the recorded cumulative total.
type Reconciler struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewReconciler creates a Reconciler over the given transaction scope
func NewReconciler(scope TransactionScope, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{scope: scope, logger: logger}
}

// parsedRecord is an import record after override merge and parsing
type parsedRecord struct {
	invoiceNumber   string
	invoiceName     string
	supplier        string
	accountName     string
	amount          decimal.Decimal
	totalPaid       decimal.Decimal
	expenseDate     *time.Time
	lastPaymentDate *time.Time
	lines           []ImportLine
}

// ReconcileRecord reconciles one record inside its own transaction. It either
// returns a complete, consistent result or an error with every write for the
// record rolled back. Validation failures are *ValidationError; persistence
// failures are wrapped in *StoreError.
func (r *Reconciler) ReconcileRecord(
	ctx context.Context,
	record ImportRecord,
	defaults Defaults,
	opts Options,
	resolver *EntityResolver,
	override *Override,
) (*RecordResult, error) {
	parsed, err := parseRecord(override.Apply(record))
	if err != nil {
		return nil, err
	}

	if resolver != nil {
		resolver.beginRecord()
	}
	var result *RecordResult
	err = r.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.Expenses().FindByInvoiceNumber(ctx, parsed.invoiceNumber)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return storeErr("looking up expense", err)
			}
			result, err = r.create(ctx, repos, parsed, defaults, resolver, override)
			return err
		}
		result, err = r.update(ctx, repos, existing, parsed, opts, override)
		return err
	})
	if err != nil {
		if resolver != nil {
			resolver.evictPending()
		}
		return nil, err
	}
	return result, nil
}

// parseRecord validates and parses the merged record
func parseRecord(record ImportRecord) (*parsedRecord, error) {
	invoiceNumber := strings.TrimSpace(record.InvoiceNumber)
	if invoiceNumber == "" {
		return nil, NewValidationError("invoice number is required")
	}

	amount, err := ParseAmount(record.Amount)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("amount must be positive for invoice %s", invoiceNumber)
	}

	totalPaid, err := ParseOptionalAmount(record.TotalPaid)
	if err != nil {
		return nil, err
	}
	expenseDate, err := ParseDate(record.Date)
	if err != nil {
		return nil, err
	}
	lastPaymentDate, err := ParseDate(record.LastPaymentDate)
	if err != nil {
		return nil, err
	}

	return &parsedRecord{
		invoiceNumber:   invoiceNumber,
		invoiceName:     strings.TrimSpace(record.InvoiceName),
		supplier:        strings.TrimSpace(record.Supplier),
		accountName:     strings.TrimSpace(record.AccountName),
		amount:          amount,
		totalPaid:       totalPaid,
		expenseDate:     expenseDate,
		lastPaymentDate: lastPaymentDate,
		lines:           record.Lines,
	}, nil
}

// create handles the create path: no expense exists for the invoice number yet.
func (r *Reconciler) create(
	ctx context.Context,
	repos TransactionalRepositories,
	parsed *parsedRecord,
	defaults Defaults,
	resolver *EntityResolver,
	override *Override,
) (*RecordResult, error) {
	var overrideSupplier, overrideAccount *uuid.UUID
	if override != nil {
		overrideSupplier = override.SupplierID
		overrideAccount = override.AccountID
	}

	supplierID, err := resolver.ResolveSupplier(ctx, repos.Suppliers(), parsed.supplier, overrideSupplier)
	if err != nil {
		return nil, err
	}
	accountID, err := resolver.ResolveAccount(ctx, repos.AccountNames(), parsed.accountName, defaults.PaymentTypeID, overrideAccount)
	if err != nil {
		return nil, err
	}

	expense, err := ledger.NewExpense(parsed.invoiceNumber, parsed.invoiceName, parsed.amount, parsed.expenseDate)
	if err != nil {
		return nil, asValidation(err)
	}
	expense.SupplierID = supplierID
	expense.AccountNameID = accountID
	expense.SetReferences(defaults.RegionID, defaults.PaymentTypeID, defaults.BudgetItemID)

	action := ActionCreated
	var paymentDate *time.Time
	if parsed.totalPaid.IsPositive() {
		paymentDate = coalesceDate(parsed.lastPaymentDate, parsed.expenseDate)
		if paymentDate == nil {
			return nil, NewValidationError("payment date required: invoice %s reports collected money but has neither last_payment_date nor date", parsed.invoiceNumber)
		}
		action = ActionCreatedWithPayment
	}

	expense.ApplyTotals(parsed.totalPaid, paymentDate)
	if err := repos.Expenses().Save(ctx, expense); err != nil {
		return nil, storeErr("saving expense", err)
	}

	lineIDs, taxIDs, err := persistLinesAndTaxes(ctx, repos, expense.ID, parsed.lines)
	if err != nil {
		return nil, err
	}

	result := &RecordResult{
		InvoiceNumber:        parsed.invoiceNumber,
		ExpenseID:            expense.ID,
		Action:               action,
		DeltaPayment:         decimal.Zero,
		FinalPaid:            parsed.totalPaid,
		RemainingAmount:      expense.RemainingAmount,
		FinalStatus:          expense.Status,
		UsedOverrideSupplier: overrideSupplier != nil,
		UsedOverrideAccount:  overrideAccount != nil,
		LineIDs:              lineIDs,
		TaxIDs:               taxIDs,
	}

	if parsed.totalPaid.IsPositive() {
		payment, err := ledger.NewPayment(expense.ID, parsed.totalPaid, *paymentDate, "Cumulative total from invoice import", false)
		if err != nil {
			return nil, asValidation(err)
		}
		if err := repos.Payments().Create(ctx, payment); err != nil {
			return nil, storeErr("creating payment", err)
		}
		result.DeltaPayment = parsed.totalPaid
		result.PaymentIDs = append(result.PaymentIDs, payment.ID)
	}

	r.logger.Debug("created expense from import",
		zap.String("invoice_number", parsed.invoiceNumber),
		zap.String("expense_id", expense.ID.String()),
		zap.String("action", string(action)))
	return result, nil
}

// update handles the update path: the invoice number already has an expense.
func (r *Reconciler) update(
	ctx context.Context,
	repos TransactionalRepositories,
	expense *ledger.Expense,
	parsed *parsedRecord,
	opts Options,
	override *Override,
) (*RecordResult, error) {
	if opts.UpdateAmountIfChanged && !parsed.amount.Equal(expense.Amount) {
		if err := expense.SetAmount(parsed.amount); err != nil {
			return nil, asValidation(err)
		}
	}

	existingPaid, err := repos.Payments().SumByExpense(ctx, expense.ID)
	if err != nil {
		return nil, storeErr("summing payments", err)
	}
	delta := parsed.totalPaid.Sub(existingPaid).Round(2)

	result := &RecordResult{
		InvoiceNumber: parsed.invoiceNumber,
		ExpenseID:     expense.ID,
		Action:        ActionNoop,
		DeltaPayment:  delta,
		FinalPaid:     parsed.totalPaid,
	}

	var completionDate *time.Time
	switch {
	case delta.IsPositive():
		result.Action = ActionDeltaPayment
		payment, err := r.appendPayment(ctx, repos, expense, parsed, delta, "Delta payment from invoice import", false)
		if err != nil {
			return nil, err
		}
		completionDate = &payment.PaidAt
		result.PaymentIDs = append(result.PaymentIDs, payment.ID)
	case delta.IsNegative():
		if !opts.AllowNegativeAdjustment {
			return nil, NewValidationError(
				"reported total_paid %s for invoice %s is lower than the %s already recorded; enable allow_negative_adjustment to record the decrease",
				parsed.totalPaid.StringFixed(2), parsed.invoiceNumber, existingPaid.StringFixed(2))
		}
		result.Action = ActionNegativeAdjustment
		payment, err := r.appendPayment(ctx, repos, expense, parsed, delta, "Negative adjustment from invoice import", true)
		if err != nil {
			return nil, err
		}
		completionDate = &payment.PaidAt
		result.PaymentIDs = append(result.PaymentIDs, payment.ID)
	}

	if override != nil {
		if override.SupplierID != nil {
			expense.SupplierID = override.SupplierID
			result.UsedOverrideSupplier = true
		}
		if override.AccountID != nil {
			expense.AccountNameID = override.AccountID
			result.UsedOverrideAccount = true
		}
	}

	// When replacement is enabled but the import carries no lines, the
	// existing lines and taxes are deliberately left untouched.
	if opts.UpdateTaxesOnUpsert && len(parsed.lines) > 0 {
		if err := repos.Expenses().DeleteLines(ctx, expense.ID); err != nil {
			return nil, storeErr("deleting lines", err)
		}
		if err := repos.Expenses().DeleteTaxes(ctx, expense.ID); err != nil {
			return nil, storeErr("deleting taxes", err)
		}
		result.LineIDs, result.TaxIDs, err = persistLinesAndTaxes(ctx, repos, expense.ID, parsed.lines)
		if err != nil {
			return nil, err
		}
	}

	if completionDate == nil {
		completionDate, err = repos.Payments().LatestPaymentDate(ctx, expense.ID)
		if err != nil {
			return nil, storeErr("finding latest payment date", err)
		}
	}
	expense.ApplyTotals(parsed.totalPaid, completionDate)
	if err := repos.Expenses().Save(ctx, expense); err != nil {
		return nil, storeErr("saving expense", err)
	}

	result.RemainingAmount = expense.RemainingAmount
	result.FinalStatus = expense.Status

	r.logger.Debug("reconciled existing expense",
		zap.String("invoice_number", parsed.invoiceNumber),
		zap.String("expense_id", expense.ID.String()),
		zap.String("action", string(result.Action)),
		zap.String("delta", delta.StringFixed(2)))
	return result, nil
}

// appendPayment creates one payment for the delta, dated at the record's last
// payment date, its invoice date, or the expense date, in that order.
func (r *Reconciler) appendPayment(
	ctx context.Context,
	repos TransactionalRepositories,
	expense *ledger.Expense,
	parsed *parsedRecord,
	amount decimal.Decimal,
	description string,
	allowNegative bool,
) (*ledger.Payment, error) {
	paymentDate := coalesceDate(parsed.lastPaymentDate, parsed.expenseDate, expense.ExpenseDate)
	if paymentDate == nil {
		return nil, NewValidationError("payment date required: invoice %s reports a payment change but has no usable date", parsed.invoiceNumber)
	}
	payment, err := ledger.NewPayment(expense.ID, amount, *paymentDate, description, allowNegative)
	if err != nil {
		return nil, asValidation(err)
	}
	if err := repos.Payments().Create(ctx, payment); err != nil {
		return nil, storeErr("creating payment", err)
	}
	return payment, nil
}

// persistLinesAndTaxes writes the record's lines and the non-zero aggregated
// tax totals for an expense.
func persistLinesAndTaxes(ctx context.Context, repos TransactionalRepositories, expenseID uuid.UUID, lines []ImportLine) ([]uuid.UUID, []uuid.UUID, error) {
	var lineIDs, taxIDs []uuid.UUID

	if len(lines) > 0 {
		entities := make([]*ledger.ExpenseLine, 0, len(lines))
		for i := range lines {
			line := ledger.NewExpenseLine(expenseID, strings.TrimSpace(lines[i].Description))
			line.Quantity = lenientDecimal(lines[i].Quantity)
			line.UnitPrice = lenientDecimal(lines[i].UnitPrice)
			line.Discount = lenientDecimal(lines[i].Discount)
			line.KDVAmount = lenientDecimal(lines[i].KDVAmount)
			line.TevkifatAmount = lenientDecimal(lines[i].TevkifatAmount)
			line.OTVAmount = lenientDecimal(lines[i].OTVAmount)
			line.OIVAmount = lenientDecimal(lines[i].OIVAmount)
			line.NetAmount = lenientDecimal(lines[i].NetAmount)
			entities = append(entities, line)
			lineIDs = append(lineIDs, line.ID)
		}
		if err := repos.Expenses().CreateLines(ctx, entities); err != nil {
			return nil, nil, storeErr("creating lines", err)
		}
	}

	totals := AggregateTaxes(lines)
	nonZero := totals.NonZero()
	if len(nonZero) > 0 {
		taxes := make([]*ledger.ExpenseTax, 0, len(nonZero))
		for _, category := range nonZero {
			tax, err := ledger.NewExpenseTax(expenseID, category, totals[category])
			if err != nil {
				return nil, nil, asValidation(err)
			}
			taxes = append(taxes, tax)
			taxIDs = append(taxIDs, tax.ID)
		}
		if err := repos.Expenses().CreateTaxes(ctx, taxes); err != nil {
			return nil, nil, storeErr("creating taxes", err)
		}
	}
	return lineIDs, taxIDs, nil
}

// coalesceDate returns the first non-nil date
func coalesceDate(dates ...*time.Time) *time.Time {
	for _, d := range dates {
		if d != nil {
			return d
		}
	}
	return nil
}

// asValidation converts a domain validation error into a ValidationError so
// batch classification reports it with the VALIDATION_ERROR code.
func asValidation(err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return &ValidationError{Message: de.Message}
	}
	return err
}
