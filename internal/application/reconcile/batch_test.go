package reconcile

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookkeeping/backend/internal/domain/shared"
)

func newBatchFixture() (*BatchService, *ledgerFixture) {
	f := newLedgerFixture()
	reconciler := NewReconciler(f.scope, nil)
	return NewBatchService(reconciler, f.supplier, f.accounts, nil), f
}

func TestReconcileBatch_EmptyBatch(t *testing.T) {
	service, _ := newBatchFixture()

	_, err := service.ReconcileBatch(context.Background(), nil, Defaults{}, Options{}, nil)
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "EMPTY_BATCH", de.Code)
}

func TestReconcileBatch_AllRecordsSucceed(t *testing.T) {
	service, f := newBatchFixture()

	summary, err := service.ReconcileBatch(context.Background(), []ImportRecord{
		{InvoiceNumber: "INV-1", Date: "2026-03-10", Supplier: "Acme Ltd", Amount: "100.00"},
		{InvoiceNumber: "INV-2", Date: "2026-03-11", Supplier: "acme ltd", Amount: "50.00"},
		{InvoiceNumber: "INV-3", Date: "2026-03-12", Supplier: "Other Co", Amount: "25.00"},
	}, Defaults{}, Options{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalProcessed)
	assert.Equal(t, 3, summary.InsertedOrUpserted)
	assert.Equal(t, 0, summary.Failed)
	assert.Len(t, summary.ExpenseIDs, 3)
	assert.Len(t, summary.Results, 3)
	assert.Empty(t, summary.Errors)

	// the shared resolver cache deduplicates supplier spellings across records
	assert.Len(t, f.supplier.suppliers, 2)
	assert.Equal(t,
		f.expenses.expenses["INV-1"].SupplierID,
		f.expenses.expenses["INV-2"].SupplierID)
}

func TestReconcileBatch_RecordIsolation(t *testing.T) {
	service, f := newBatchFixture()

	summary, err := service.ReconcileBatch(context.Background(), []ImportRecord{
		{InvoiceNumber: "INV-1", Date: "2026-03-10", Amount: "100.00"},
		{InvoiceNumber: "INV-BAD", Date: "2026-03-10", Amount: "not a number"},
		{InvoiceNumber: "INV-2", Date: "2026-03-11", Amount: "50.00"},
	}, Defaults{}, Options{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalProcessed)
	assert.Equal(t, 2, summary.InsertedOrUpserted)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)

	entry := summary.Errors[0]
	assert.Equal(t, 1, entry.Index)
	require.NotNil(t, entry.InvoiceNumber)
	assert.Equal(t, "INV-BAD", *entry.InvoiceNumber)
	assert.Equal(t, CodeValidation, entry.Code)
	assert.NotEmpty(t, entry.Message)

	// the bad record left nothing behind, the good ones landed
	assert.Len(t, f.expenses.expenses, 2)
	assert.Contains(t, f.expenses.expenses, "INV-1")
	assert.Contains(t, f.expenses.expenses, "INV-2")
}

func TestReconcileBatch_ErrorEntryCarriesHints(t *testing.T) {
	service, _ := newBatchFixture()

	summary, err := service.ReconcileBatch(context.Background(), []ImportRecord{
		{Amount: "100.00"},
	}, Defaults{}, Options{}, nil)
	require.NoError(t, err)

	require.Len(t, summary.Errors, 1)
	entry := summary.Errors[0]
	assert.Nil(t, entry.InvoiceNumber)
	assert.Equal(t, CodeValidation, entry.Code)
	assert.NotEmpty(t, entry.Hints)
}

func TestReconcileBatch_OverridesMatchedByInvoiceNumber(t *testing.T) {
	service, f := newBatchFixture()
	corrected := "Corrected Supplier"

	summary, err := service.ReconcileBatch(context.Background(), []ImportRecord{
		{InvoiceNumber: "INV-1", Date: "2026-03-10", Supplier: "Wrong Name", Amount: "100.00"},
		{InvoiceNumber: "INV-2", Date: "2026-03-10", Supplier: "Untouched Co", Amount: "50.00"},
	}, Defaults{}, Options{}, []Override{
		{InvoiceNumber: "INV-1", SupplierName: &corrected},
	})
	require.NoError(t, err)
	require.Equal(t, 2, summary.InsertedOrUpserted)

	names := make([]string, 0, len(f.supplier.suppliers))
	for _, s := range f.supplier.suppliers {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"Corrected Supplier", "Untouched Co"}, names)
}

func TestReconcileBatch_OversizedSupplierNameIsValidation(t *testing.T) {
	service, f := newBatchFixture()

	summary, err := service.ReconcileBatch(context.Background(), []ImportRecord{
		{InvoiceNumber: "INV-1", Date: "2026-03-10", Supplier: strings.Repeat("x", 201), Amount: "100.00"},
	}, Defaults{}, Options{}, nil)
	require.NoError(t, err)

	require.Len(t, summary.Errors, 1)
	assert.Equal(t, CodeValidation, summary.Errors[0].Code)
	assert.Contains(t, summary.Errors[0].Message, "200 characters")
	assert.Empty(t, f.supplier.suppliers)
}

func TestReconcileBatch_FailedRecordDoesNotPoisonCaches(t *testing.T) {
	f := newLedgerFixture()
	scope := &rollbackScope{f: f}
	service := NewBatchService(NewReconciler(scope, nil), f.supplier, f.accounts, nil)

	// the first record creates the supplier, then fails saving its expense;
	// the rollback takes the supplier row with it
	f.expenses.saveErrOnce = errFakeStore

	summary, err := service.ReconcileBatch(context.Background(), []ImportRecord{
		{InvoiceNumber: "INV-1", Date: "2026-03-10", Supplier: "NewCo", Amount: "100.00"},
		{InvoiceNumber: "INV-2", Date: "2026-03-11", Supplier: "NewCo", Amount: "50.00"},
	}, Defaults{}, Options{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.InsertedOrUpserted)

	// the second record must re-create the supplier instead of reusing the
	// rolled-back id from the first record
	require.Len(t, f.supplier.suppliers, 1)
	expense := f.expenses.expenses["INV-2"]
	require.NotNil(t, expense)
	require.NotNil(t, expense.SupplierID)
	assert.Equal(t, f.supplier.suppliers[0].ID, *expense.SupplierID)
}

func TestReconcileBatch_WarmFailureAbortsBatch(t *testing.T) {
	f := newLedgerFixture()
	brokenSuppliers := &failingSupplierRepo{}
	reconciler := NewReconciler(f.scope, nil)
	service := NewBatchService(reconciler, brokenSuppliers, f.accounts, nil)

	_, err := service.ReconcileBatch(context.Background(), []ImportRecord{
		{InvoiceNumber: "INV-1", Date: "2026-03-10", Amount: "100.00"},
	}, Defaults{}, Options{}, nil)
	require.Error(t, err)
	assert.Empty(t, f.expenses.expenses)
}
