package dto

import "github.com/bookkeeping/backend/internal/application/reconcile"

// ReconcileBatchRequest is the request body for a batch reconciliation run
// @Description One normalized import batch with optional defaults, options and overrides
type ReconcileBatchRequest struct {
	Records   []reconcile.ImportRecord `json:"records" binding:"required"`
	Defaults  reconcile.Defaults       `json:"defaults"`
	Options   reconcile.Options        `json:"options"`
	Overrides []reconcile.Override     `json:"overrides"`
}

// ReconcileBatchResponse is the batch summary returned to the caller
// @Description Outcome of a batch reconciliation run
type ReconcileBatchResponse struct {
	InsertedOrUpserted int                      `json:"inserted_or_upserted" example:"95"`
	TotalProcessed     int                      `json:"total_processed" example:"100"`
	Failed             int                      `json:"failed" example:"5"`
	ExpenseIDs         []string                 `json:"expense_ids"`
	Results            []reconcile.RecordResult `json:"results"`
	Errors             []reconcile.BatchError   `json:"errors"`
}

// NewReconcileBatchResponse converts a summary into its wire representation
func NewReconcileBatchResponse(summary *reconcile.Summary) ReconcileBatchResponse {
	ids := make([]string, len(summary.ExpenseIDs))
	for i, id := range summary.ExpenseIDs {
		ids[i] = id.String()
	}
	return ReconcileBatchResponse{
		InsertedOrUpserted: summary.InsertedOrUpserted,
		TotalProcessed:     summary.TotalProcessed,
		Failed:             summary.Failed,
		ExpenseIDs:         ids,
		Results:            summary.Results,
		Errors:             summary.Errors,
	}
}
