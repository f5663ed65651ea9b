package handler

import (
	"github.com/bookkeeping/backend/internal/application/reconcile"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReconcileHandler handles invoice import reconciliation endpoints
type ReconcileHandler struct {
	BaseHandler
	batchService *reconcile.BatchService
	maxRecords   int
}

// NewReconcileHandler creates a new ReconcileHandler. maxRecords caps the
// number of records accepted in one batch; zero disables the cap.
func NewReconcileHandler(batchService *reconcile.BatchService, maxRecords int) *ReconcileHandler {
	return &ReconcileHandler{
		batchService: batchService,
		maxRecords:   maxRecords,
	}
}

// ReconcileBatch reconciles a batch of normalized invoice records against the
// ledger. Individual record failures are reported inside the 200 summary; the
// whole request fails only for malformed input or a batch-level precondition.
func (h *ReconcileHandler) ReconcileBatch(c *gin.Context) {
	var req dto.ReconcileBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Records) == 0 {
		h.BadRequest(c, "Batch must contain at least one record")
		return
	}
	if h.maxRecords > 0 && len(req.Records) > h.maxRecords {
		h.BadRequest(c, "Batch exceeds the maximum number of records")
		return
	}

	summary, err := h.batchService.ReconcileBatch(
		c.Request.Context(),
		req.Records,
		req.Defaults,
		req.Options,
		req.Overrides,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewReconcileBatchResponse(summary))
}
