package handler

import (
	appmasterdata "github.com/bookkeeping/backend/internal/application/masterdata"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MasterDataHandler handles CRUD for the master data entities referenced by
// expenses: regions, payment types and budget items.
type MasterDataHandler struct {
	BaseHandler
	service *appmasterdata.Service
}

// NewMasterDataHandler creates a new MasterDataHandler
func NewMasterDataHandler(service *appmasterdata.Service) *MasterDataHandler {
	return &MasterDataHandler{service: service}
}

func (h *MasterDataHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *MasterDataHandler) bindName(c *gin.Context) (string, bool) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return "", false
	}
	return req.Name, true
}

// ListRegions returns all regions
func (h *MasterDataHandler) ListRegions(c *gin.Context) {
	regions, err := h.service.ListRegions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, regions)
}

// CreateRegion creates a region
func (h *MasterDataHandler) CreateRegion(c *gin.Context) {
	name, ok := h.bindName(c)
	if !ok {
		return
	}
	region, err := h.service.CreateRegion(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, region)
}

// RenameRegion renames a region
func (h *MasterDataHandler) RenameRegion(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	name, ok := h.bindName(c)
	if !ok {
		return
	}
	region, err := h.service.RenameRegion(c.Request.Context(), id, name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, region)
}

// DeleteRegion deletes a region
func (h *MasterDataHandler) DeleteRegion(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRegion(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPaymentTypes returns all payment types
func (h *MasterDataHandler) ListPaymentTypes(c *gin.Context) {
	types, err := h.service.ListPaymentTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, types)
}

// CreatePaymentType creates a payment type
func (h *MasterDataHandler) CreatePaymentType(c *gin.Context) {
	name, ok := h.bindName(c)
	if !ok {
		return
	}
	paymentType, err := h.service.CreatePaymentType(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, paymentType)
}

// RenamePaymentType renames a payment type
func (h *MasterDataHandler) RenamePaymentType(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	name, ok := h.bindName(c)
	if !ok {
		return
	}
	paymentType, err := h.service.RenamePaymentType(c.Request.Context(), id, name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, paymentType)
}

// DeletePaymentType deletes a payment type
func (h *MasterDataHandler) DeletePaymentType(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePaymentType(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListBudgetItems returns all budget items
func (h *MasterDataHandler) ListBudgetItems(c *gin.Context) {
	items, err := h.service.ListBudgetItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreateBudgetItem creates a budget item
func (h *MasterDataHandler) CreateBudgetItem(c *gin.Context) {
	name, ok := h.bindName(c)
	if !ok {
		return
	}
	item, err := h.service.CreateBudgetItem(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// RenameBudgetItem renames a budget item
func (h *MasterDataHandler) RenameBudgetItem(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	name, ok := h.bindName(c)
	if !ok {
		return
	}
	item, err := h.service.RenameBudgetItem(c.Request.Context(), id, name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteBudgetItem deletes a budget item
func (h *MasterDataHandler) DeleteBudgetItem(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBudgetItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
