package handler

import (
	"time"

	appexpense "github.com/bookkeeping/backend/internal/application/expense"
	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExpenseHandler handles expense read endpoints
type ExpenseHandler struct {
	BaseHandler
	service *appexpense.Service
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *appexpense.Service) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// List returns expenses matching the query filter, paginated
func (h *ExpenseHandler) List(c *gin.Context) {
	req := dto.ExpenseListRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filter := ledger.ExpenseFilter{
		Search:   req.Search,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := ledger.PaymentStatus(req.Status)
		filter.Status = &status
	}
	if req.SupplierID != "" {
		id, err := uuid.Parse(req.SupplierID)
		if err != nil {
			h.BadRequest(c, "Invalid supplier_id")
			return
		}
		filter.SupplierID = &id
	}
	if req.FromDate != "" {
		from, err := time.Parse("2006-01-02", req.FromDate)
		if err != nil {
			h.BadRequest(c, "Invalid from_date")
			return
		}
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, err := time.Parse("2006-01-02", req.ToDate)
		if err != nil {
			h.BadRequest(c, "Invalid to_date")
			return
		}
		filter.ToDate = &to
	}

	expenses, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, expenses, total, req.Page, req.PageSize)
}

// Get returns one expense with its lines, tax totals and payment history
func (h *ExpenseHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}
