package persistence

import (
	"context"
	"fmt"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ledger.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByInvoiceNumber finds an expense by its unique invoice number
func (r *GormExpenseRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*ledger.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("invoice_number = ?", invoiceNumber).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds expenses matching the filter, paginated
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter ledger.ExpenseFilter) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter)

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, translateError(err)
	}
	expenses := make([]ledger.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter ledger.ExpenseFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *ledger.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// FindLines returns the line items of an expense
func (r *GormExpenseRepository) FindLines(ctx context.Context, expenseID uuid.UUID) ([]ledger.ExpenseLine, error) {
	var lineModels []models.ExpenseLineModel
	if err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, translateError(err)
	}
	lines := make([]ledger.ExpenseLine, len(lineModels))
	for i, model := range lineModels {
		lines[i] = *model.ToDomain()
	}
	return lines, nil
}

// CreateLines inserts line items in one statement
func (r *GormExpenseRepository) CreateLines(ctx context.Context, lines []*ledger.ExpenseLine) error {
	if len(lines) == 0 {
		return nil
	}
	lineModels := make([]models.ExpenseLineModel, len(lines))
	for i, line := range lines {
		lineModels[i] = *models.ExpenseLineModelFromDomain(line)
	}
	return translateError(r.db.WithContext(ctx).Create(&lineModels).Error)
}

// DeleteLines removes all line items of an expense
func (r *GormExpenseRepository) DeleteLines(ctx context.Context, expenseID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Delete(&models.ExpenseLineModel{}).Error)
}

// FindTaxes returns the tax totals of an expense
func (r *GormExpenseRepository) FindTaxes(ctx context.Context, expenseID uuid.UUID) ([]ledger.ExpenseTax, error) {
	var taxModels []models.ExpenseTaxModel
	if err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("category ASC").
		Find(&taxModels).Error; err != nil {
		return nil, translateError(err)
	}
	taxes := make([]ledger.ExpenseTax, len(taxModels))
	for i, model := range taxModels {
		taxes[i] = *model.ToDomain()
	}
	return taxes, nil
}

// CreateTaxes inserts tax totals in one statement
func (r *GormExpenseRepository) CreateTaxes(ctx context.Context, taxes []*ledger.ExpenseTax) error {
	if len(taxes) == 0 {
		return nil
	}
	taxModels := make([]models.ExpenseTaxModel, len(taxes))
	for i, tax := range taxes {
		taxModels[i] = *models.ExpenseTaxModelFromDomain(tax)
	}
	return translateError(r.db.WithContext(ctx).Create(&taxModels).Error)
}

// DeleteTaxes removes all tax totals of an expense
func (r *GormExpenseRepository) DeleteTaxes(ctx context.Context, expenseID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Delete(&models.ExpenseTaxModel{}).Error)
}

func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter ledger.ExpenseFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR invoice_name ILIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.FromDate != nil {
		query = query.Where("expense_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("expense_date <= ?", *filter.ToDate)
	}
	return query
}
