package masterdata

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Region is a master data entity grouping expenses geographically
type Region struct {
	shared.BaseEntity
	Name string `json:"name"`
}

// NewRegion creates a region
func NewRegion(name string) (*Region, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Region name cannot be empty")
	}
	return &Region{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Rename changes the region name
func (r *Region) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Region name cannot be empty")
	}
	r.Name = name
	r.Touch()
	return nil
}

// PaymentType is a master data entity describing how money is collected
// (bank transfer, credit card, cash and so on)
type PaymentType struct {
	shared.BaseEntity
	Name string `json:"name"`
}

// NewPaymentType creates a payment type
func NewPaymentType(name string) (*PaymentType, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Payment type name cannot be empty")
	}
	return &PaymentType{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Rename changes the payment type name
func (p *PaymentType) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Payment type name cannot be empty")
	}
	p.Name = name
	p.Touch()
	return nil
}

// BudgetItem is a master data entity attaching expenses to a budget line
type BudgetItem struct {
	shared.BaseEntity
	Name string `json:"name"`
}

// NewBudgetItem creates a budget item
func NewBudgetItem(name string) (*BudgetItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Budget item name cannot be empty")
	}
	return &BudgetItem{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Rename changes the budget item name
func (b *BudgetItem) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Budget item name cannot be empty")
	}
	b.Name = name
	b.Touch()
	return nil
}

// RegionRepository persists regions
type RegionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Region, error)
	FindAll(ctx context.Context) ([]Region, error)
	Save(ctx context.Context, region *Region) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentTypeRepository persists payment types
type PaymentTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentType, error)
	FindAll(ctx context.Context) ([]PaymentType, error)
	Save(ctx context.Context, paymentType *PaymentType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetItemRepository persists budget items
type BudgetItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BudgetItem, error)
	FindAll(ctx context.Context) ([]BudgetItem, error)
	Save(ctx context.Context, item *BudgetItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
