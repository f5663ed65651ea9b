package persistence

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/masterdata"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRegionRepository implements masterdata.RegionRepository using GORM
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GormRegionRepository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// FindByID finds a region by its ID
func (r *GormRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Region, error) {
	var model models.RegionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns all regions ordered by name
func (r *GormRegionRepository) FindAll(ctx context.Context) ([]masterdata.Region, error) {
	var regionModels []models.RegionModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&regionModels).Error; err != nil {
		return nil, translateError(err)
	}
	regions := make([]masterdata.Region, len(regionModels))
	for i, model := range regionModels {
		regions[i] = *model.ToDomain()
	}
	return regions, nil
}

// Save creates or updates a region
func (r *GormRegionRepository) Save(ctx context.Context, region *masterdata.Region) error {
	model := models.RegionModelFromDomain(region)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a region
func (r *GormRegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RegionModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// GormPaymentTypeRepository implements masterdata.PaymentTypeRepository using GORM
type GormPaymentTypeRepository struct {
	db *gorm.DB
}

// NewGormPaymentTypeRepository creates a new GormPaymentTypeRepository
func NewGormPaymentTypeRepository(db *gorm.DB) *GormPaymentTypeRepository {
	return &GormPaymentTypeRepository{db: db}
}

// FindByID finds a payment type by its ID
func (r *GormPaymentTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.PaymentType, error) {
	var model models.PaymentTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns all payment types ordered by name
func (r *GormPaymentTypeRepository) FindAll(ctx context.Context) ([]masterdata.PaymentType, error) {
	var typeModels []models.PaymentTypeModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&typeModels).Error; err != nil {
		return nil, translateError(err)
	}
	types := make([]masterdata.PaymentType, len(typeModels))
	for i, model := range typeModels {
		types[i] = *model.ToDomain()
	}
	return types, nil
}

// Save creates or updates a payment type
func (r *GormPaymentTypeRepository) Save(ctx context.Context, paymentType *masterdata.PaymentType) error {
	model := models.PaymentTypeModelFromDomain(paymentType)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a payment type
func (r *GormPaymentTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentTypeModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// GormBudgetItemRepository implements masterdata.BudgetItemRepository using GORM
type GormBudgetItemRepository struct {
	db *gorm.DB
}

// NewGormBudgetItemRepository creates a new GormBudgetItemRepository
func NewGormBudgetItemRepository(db *gorm.DB) *GormBudgetItemRepository {
	return &GormBudgetItemRepository{db: db}
}

// FindByID finds a budget item by its ID
func (r *GormBudgetItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.BudgetItem, error) {
	var model models.BudgetItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns all budget items ordered by name
func (r *GormBudgetItemRepository) FindAll(ctx context.Context) ([]masterdata.BudgetItem, error) {
	var itemModels []models.BudgetItemModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&itemModels).Error; err != nil {
		return nil, translateError(err)
	}
	items := make([]masterdata.BudgetItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save creates or updates a budget item
func (r *GormBudgetItemRepository) Save(ctx context.Context, item *masterdata.BudgetItem) error {
	model := models.BudgetItemModelFromDomain(item)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a budget item
func (r *GormBudgetItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetItemModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}
