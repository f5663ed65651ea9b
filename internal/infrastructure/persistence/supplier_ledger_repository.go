package persistence

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierRepository implements ledger.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns all suppliers ordered by name
func (r *GormSupplierRepository) FindAll(ctx context.Context) ([]ledger.Supplier, error) {
	var supplierModels []models.SupplierModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&supplierModels).Error; err != nil {
		return nil, translateError(err)
	}
	suppliers := make([]ledger.Supplier, len(supplierModels))
	for i, model := range supplierModels {
		suppliers[i] = *model.ToDomain()
	}
	return suppliers, nil
}

// Create inserts a supplier
func (r *GormSupplierRepository) Create(ctx context.Context, supplier *ledger.Supplier) error {
	model := models.SupplierModelFromDomain(supplier)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// GormAccountNameRepository implements ledger.AccountNameRepository using GORM
type GormAccountNameRepository struct {
	db *gorm.DB
}

// NewGormAccountNameRepository creates a new GormAccountNameRepository
func NewGormAccountNameRepository(db *gorm.DB) *GormAccountNameRepository {
	return &GormAccountNameRepository{db: db}
}

// FindByID finds an account name by its ID
func (r *GormAccountNameRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountName, error) {
	var model models.AccountNameModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns all account names ordered by name
func (r *GormAccountNameRepository) FindAll(ctx context.Context) ([]ledger.AccountName, error) {
	var accountModels []models.AccountNameModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&accountModels).Error; err != nil {
		return nil, translateError(err)
	}
	accounts := make([]ledger.AccountName, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Create inserts an account name
func (r *GormAccountNameRepository) Create(ctx context.Context, account *ledger.AccountName) error {
	model := models.AccountNameModelFromDomain(account)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}
