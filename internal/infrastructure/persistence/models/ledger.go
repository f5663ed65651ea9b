package models

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense aggregate.
type ExpenseModel struct {
	BaseModel
	InvoiceNumber   string               `gorm:"type:varchar(100);not null;uniqueIndex"`
	InvoiceName     string               `gorm:"type:varchar(255)"`
	ExpenseDate     *time.Time           `gorm:"index"`
	Amount          decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	RemainingAmount decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Status          ledger.PaymentStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	SupplierID      *uuid.UUID           `gorm:"type:uuid;index"`
	AccountNameID   *uuid.UUID           `gorm:"type:uuid;index"`
	RegionID        *uuid.UUID           `gorm:"type:uuid"`
	PaymentTypeID   *uuid.UUID           `gorm:"type:uuid"`
	BudgetItemID    *uuid.UUID           `gorm:"type:uuid"`
	CompletedAt     *time.Time
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense.
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	return &ledger.Expense{
		BaseEntity:      m.BaseModel.ToDomain(),
		InvoiceNumber:   m.InvoiceNumber,
		InvoiceName:     m.InvoiceName,
		ExpenseDate:     m.ExpenseDate,
		Amount:          m.Amount,
		RemainingAmount: m.RemainingAmount,
		Status:          m.Status,
		SupplierID:      m.SupplierID,
		AccountNameID:   m.AccountNameID,
		RegionID:        m.RegionID,
		PaymentTypeID:   m.PaymentTypeID,
		BudgetItemID:    m.BudgetItemID,
		CompletedAt:     m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain Expense.
func (m *ExpenseModel) FromDomain(e *ledger.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.InvoiceNumber = e.InvoiceNumber
	m.InvoiceName = e.InvoiceName
	m.ExpenseDate = e.ExpenseDate
	m.Amount = e.Amount
	m.RemainingAmount = e.RemainingAmount
	m.Status = e.Status
	m.SupplierID = e.SupplierID
	m.AccountNameID = e.AccountNameID
	m.RegionID = e.RegionID
	m.PaymentTypeID = e.PaymentTypeID
	m.BudgetItemID = e.BudgetItemID
	m.CompletedAt = e.CompletedAt
}

// ExpenseModelFromDomain creates a new persistence model from domain.
func ExpenseModelFromDomain(e *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// PaymentModel is the persistence model for the append-only Payment entry.
type PaymentModel struct {
	BaseModel
	ExpenseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAt      time.Time       `gorm:"not null;index"`
	Description string          `gorm:"type:varchar(255)"`
	Reversed    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		ExpenseID:   m.ExpenseID,
		Amount:      m.Amount,
		PaidAt:      m.PaidAt,
		Description: m.Description,
		Reversed:    m.Reversed,
	}
}

// PaymentModelFromDomain creates a new persistence model from domain.
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ExpenseID = p.ExpenseID
	m.Amount = p.Amount
	m.PaidAt = p.PaidAt
	m.Description = p.Description
	m.Reversed = p.Reversed
	return m
}

// ExpenseLineModel is the persistence model for one imported invoice line.
type ExpenseLineModel struct {
	BaseModel
	ExpenseID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description    string          `gorm:"type:varchar(500)"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4)"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4)"`
	Discount       decimal.Decimal `gorm:"type:decimal(18,2)"`
	KDVAmount      decimal.Decimal `gorm:"type:decimal(18,2)"`
	TevkifatAmount decimal.Decimal `gorm:"type:decimal(18,2)"`
	OTVAmount      decimal.Decimal `gorm:"type:decimal(18,2)"`
	OIVAmount      decimal.Decimal `gorm:"type:decimal(18,2)"`
	NetAmount      decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName returns the table name for GORM
func (ExpenseLineModel) TableName() string {
	return "expense_lines"
}

// ToDomain converts the persistence model to a domain ExpenseLine.
func (m *ExpenseLineModel) ToDomain() *ledger.ExpenseLine {
	return &ledger.ExpenseLine{
		BaseEntity:     m.BaseModel.ToDomain(),
		ExpenseID:      m.ExpenseID,
		Description:    m.Description,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
		Discount:       m.Discount,
		KDVAmount:      m.KDVAmount,
		TevkifatAmount: m.TevkifatAmount,
		OTVAmount:      m.OTVAmount,
		OIVAmount:      m.OIVAmount,
		NetAmount:      m.NetAmount,
	}
}

// ExpenseLineModelFromDomain creates a new persistence model from domain.
func ExpenseLineModelFromDomain(l *ledger.ExpenseLine) *ExpenseLineModel {
	m := &ExpenseLineModel{}
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ExpenseID = l.ExpenseID
	m.Description = l.Description
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.Discount = l.Discount
	m.KDVAmount = l.KDVAmount
	m.TevkifatAmount = l.TevkifatAmount
	m.OTVAmount = l.OTVAmount
	m.OIVAmount = l.OIVAmount
	m.NetAmount = l.NetAmount
	return m
}

// ExpenseTaxModel is the persistence model for one per-category tax total.
type ExpenseTaxModel struct {
	BaseModel
	ExpenseID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_expense_tax_category,priority:1"`
	Category  ledger.TaxCategory `gorm:"type:varchar(20);not null;uniqueIndex:idx_expense_tax_category,priority:2"`
	Amount    decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (ExpenseTaxModel) TableName() string {
	return "expense_taxes"
}

// ToDomain converts the persistence model to a domain ExpenseTax.
func (m *ExpenseTaxModel) ToDomain() *ledger.ExpenseTax {
	return &ledger.ExpenseTax{
		BaseEntity: m.BaseModel.ToDomain(),
		ExpenseID:  m.ExpenseID,
		Category:   m.Category,
		Amount:     m.Amount,
	}
}

// ExpenseTaxModelFromDomain creates a new persistence model from domain.
func ExpenseTaxModelFromDomain(t *ledger.ExpenseTax) *ExpenseTaxModel {
	m := &ExpenseTaxModel{}
	m.FromDomainBaseEntity(t.BaseEntity)
	m.ExpenseID = t.ExpenseID
	m.Category = t.Category
	m.Amount = t.Amount
	return m
}

// SupplierModel is the persistence model for the Supplier reference entity.
type SupplierModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;index"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier.
func (m *SupplierModel) ToDomain() *ledger.Supplier {
	return &ledger.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// SupplierModelFromDomain creates a new persistence model from domain.
func SupplierModelFromDomain(s *ledger.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	return m
}

// AccountNameModel is the persistence model for the AccountName reference entity.
type AccountNameModel struct {
	BaseModel
	Name          string     `gorm:"type:varchar(200);not null;index"`
	PaymentTypeID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (AccountNameModel) TableName() string {
	return "account_names"
}

// ToDomain converts the persistence model to a domain AccountName.
func (m *AccountNameModel) ToDomain() *ledger.AccountName {
	return &ledger.AccountName{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		PaymentTypeID: m.PaymentTypeID,
	}
}

// AccountNameModelFromDomain creates a new persistence model from domain.
func AccountNameModelFromDomain(a *ledger.AccountName) *AccountNameModel {
	m := &AccountNameModel{}
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Name = a.Name
	m.PaymentTypeID = a.PaymentTypeID
	return m
}
