package handler

import (
	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupplierHandler exposes the reference entities the import resolver creates:
// suppliers and account names. Both are created implicitly during
// reconciliation; the create endpoints exist for pre-seeding.
type SupplierHandler struct {
	BaseHandler
	suppliers ledger.SupplierRepository
	accounts  ledger.AccountNameRepository
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(suppliers ledger.SupplierRepository, accounts ledger.AccountNameRepository) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, accounts: accounts}
}

// ListSuppliers returns all suppliers ordered by name
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.suppliers.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// CreateSupplier pre-seeds a supplier so imports resolve to it by name
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	supplier, err := ledger.NewSupplier(req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.suppliers.Create(c.Request.Context(), supplier); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// ListAccountNames returns all account names ordered by name
func (h *SupplierHandler) ListAccountNames(c *gin.Context) {
	accounts, err := h.accounts.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// CreateAccountName pre-seeds an account name within an optional payment-type scope
func (h *SupplierHandler) CreateAccountName(c *gin.Context) {
	var req dto.AccountNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var paymentTypeID *uuid.UUID
	if req.PaymentTypeID != "" {
		id, err := uuid.Parse(req.PaymentTypeID)
		if err != nil {
			h.BadRequest(c, "Invalid payment_type_id")
			return
		}
		paymentTypeID = &id
	}

	account, err := ledger.NewAccountName(req.Name, paymentTypeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.accounts.Create(c.Request.Context(), account); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}
