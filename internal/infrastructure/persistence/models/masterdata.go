package models

import (
	"github.com/bookkeeping/backend/internal/domain/masterdata"
)

// RegionModel is the persistence model for Region.
type RegionModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (RegionModel) TableName() string {
	return "regions"
}

// ToDomain converts the persistence model to a domain Region.
func (m *RegionModel) ToDomain() *masterdata.Region {
	return &masterdata.Region{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// RegionModelFromDomain creates a new persistence model from domain.
func RegionModelFromDomain(r *masterdata.Region) *RegionModel {
	m := &RegionModel{}
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	return m
}

// PaymentTypeModel is the persistence model for PaymentType.
type PaymentTypeModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (PaymentTypeModel) TableName() string {
	return "payment_types"
}

// ToDomain converts the persistence model to a domain PaymentType.
func (m *PaymentTypeModel) ToDomain() *masterdata.PaymentType {
	return &masterdata.PaymentType{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// PaymentTypeModelFromDomain creates a new persistence model from domain.
func PaymentTypeModelFromDomain(p *masterdata.PaymentType) *PaymentTypeModel {
	m := &PaymentTypeModel{}
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	return m
}

// BudgetItemModel is the persistence model for BudgetItem.
type BudgetItemModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (BudgetItemModel) TableName() string {
	return "budget_items"
}

// ToDomain converts the persistence model to a domain BudgetItem.
func (m *BudgetItemModel) ToDomain() *masterdata.BudgetItem {
	return &masterdata.BudgetItem{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// BudgetItemModelFromDomain creates a new persistence model from domain.
func BudgetItemModelFromDomain(b *masterdata.BudgetItem) *BudgetItemModel {
	m := &BudgetItemModel{}
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	return m
}
