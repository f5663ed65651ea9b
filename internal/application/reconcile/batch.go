package reconcile

import (
	"context"
	"strings"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BatchError is the per-record failure entry in a batch summary.
type BatchError struct {
	Index         int      `json:"index"`
	InvoiceNumber *string  `json:"invoice_number"`
	Code          string   `json:"code"`
	Message       string   `json:"message"`
	Hints         []string `json:"hints,omitempty"`
}

// Summary aggregates the outcome of one batch run.
type Summary struct {
	InsertedOrUpserted int            `json:"inserted_or_upserted"`
	TotalProcessed     int            `json:"total_processed"`
	Failed             int            `json:"failed"`
	ExpenseIDs         []uuid.UUID    `json:"expense_ids"`
	Results            []RecordResult `json:"results"`
	Errors             []BatchError   `json:"errors"`
}

// BatchService reconciles many import records in input order, sharing one set
// of resolver caches and one override map across the run. Records are
// processed strictly sequentially; the shared caches carry no locking.
type BatchService struct {
	reconciler   *Reconciler
	supplierRepo ledger.SupplierRepository
	accountRepo  ledger.AccountNameRepository
	logger       *zap.Logger
}

// NewBatchService creates a BatchService. The supplier and account
// repositories are only used to warm the resolver caches before the first
// record; all per-record writes go through the reconciler's transaction scope.
func NewBatchService(
	reconciler *Reconciler,
	supplierRepo ledger.SupplierRepository,
	accountRepo ledger.AccountNameRepository,
	logger *zap.Logger,
) *BatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{
		reconciler:   reconciler,
		supplierRepo: supplierRepo,
		accountRepo:  accountRepo,
		logger:       logger,
	}
}

// ReconcileBatch reconciles every record and returns the aggregate summary.
// A failing record is recorded with a stable error code and the batch moves
// on; only an empty record list or a cache-warming failure aborts the batch.
func (s *BatchService) ReconcileBatch(
	ctx context.Context,
	records []ImportRecord,
	defaults Defaults,
	opts Options,
	overrides []Override,
) (*Summary, error) {
	if len(records) == 0 {
		return nil, shared.NewDomainError("EMPTY_BATCH", "Batch must contain at least one record")
	}

	resolver := NewEntityResolver(s.logger)
	if err := resolver.Warm(ctx, s.supplierRepo, s.accountRepo); err != nil {
		return nil, err
	}
	overrideIndex := BuildOverrideIndex(overrides)

	summary := &Summary{
		TotalProcessed: len(records),
		ExpenseIDs:     []uuid.UUID{},
		Results:        []RecordResult{},
		Errors:         []BatchError{},
	}

	for i, record := range records {
		override := overrideIndex[strings.TrimSpace(record.InvoiceNumber)]
		result, err := s.reconciler.ReconcileRecord(ctx, record, defaults, opts, resolver, override)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, newBatchError(i, record.InvoiceNumber, err))
			s.logger.Warn("record failed to reconcile",
				zap.Int("index", i),
				zap.String("invoice_number", record.InvoiceNumber),
				zap.String("code", Classify(err)),
				zap.Error(err))
			continue
		}
		summary.InsertedOrUpserted++
		summary.ExpenseIDs = append(summary.ExpenseIDs, result.ExpenseID)
		summary.Results = append(summary.Results, *result)
	}

	s.logger.Info("batch reconciliation finished",
		zap.Int("total", summary.TotalProcessed),
		zap.Int("reconciled", summary.InsertedOrUpserted),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// newBatchError classifies a record failure into its summary entry
func newBatchError(index int, invoiceNumber string, err error) BatchError {
	entry := BatchError{
		Index:   index,
		Code:    Classify(err),
		Message: err.Error(),
		Hints:   HintsFor(err.Error()),
	}
	if trimmed := strings.TrimSpace(invoiceNumber); trimmed != "" {
		entry.InvoiceNumber = &trimmed
	}
	return entry
}
