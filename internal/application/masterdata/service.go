package masterdata

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/masterdata"
	"github.com/google/uuid"
)

// Service exposes CRUD over the master data entities that supply
// reconciliation defaults: regions, payment types and budget items.
type Service struct {
	regions      masterdata.RegionRepository
	paymentTypes masterdata.PaymentTypeRepository
	budgetItems  masterdata.BudgetItemRepository
}

// NewService creates a master data service
func NewService(
	regions masterdata.RegionRepository,
	paymentTypes masterdata.PaymentTypeRepository,
	budgetItems masterdata.BudgetItemRepository,
) *Service {
	return &Service{
		regions:      regions,
		paymentTypes: paymentTypes,
		budgetItems:  budgetItems,
	}
}

// ListRegions returns all regions
func (s *Service) ListRegions(ctx context.Context) ([]masterdata.Region, error) {
	return s.regions.FindAll(ctx)
}

// CreateRegion creates a region
func (s *Service) CreateRegion(ctx context.Context, name string) (*masterdata.Region, error) {
	region, err := masterdata.NewRegion(name)
	if err != nil {
		return nil, err
	}
	if err := s.regions.Save(ctx, region); err != nil {
		return nil, err
	}
	return region, nil
}

// RenameRegion renames an existing region
func (s *Service) RenameRegion(ctx context.Context, id uuid.UUID, name string) (*masterdata.Region, error) {
	region, err := s.regions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := region.Rename(name); err != nil {
		return nil, err
	}
	if err := s.regions.Save(ctx, region); err != nil {
		return nil, err
	}
	return region, nil
}

// DeleteRegion deletes a region
func (s *Service) DeleteRegion(ctx context.Context, id uuid.UUID) error {
	return s.regions.Delete(ctx, id)
}

// ListPaymentTypes returns all payment types
func (s *Service) ListPaymentTypes(ctx context.Context) ([]masterdata.PaymentType, error) {
	return s.paymentTypes.FindAll(ctx)
}

// CreatePaymentType creates a payment type
func (s *Service) CreatePaymentType(ctx context.Context, name string) (*masterdata.PaymentType, error) {
	paymentType, err := masterdata.NewPaymentType(name)
	if err != nil {
		return nil, err
	}
	if err := s.paymentTypes.Save(ctx, paymentType); err != nil {
		return nil, err
	}
	return paymentType, nil
}

// RenamePaymentType renames an existing payment type
func (s *Service) RenamePaymentType(ctx context.Context, id uuid.UUID, name string) (*masterdata.PaymentType, error) {
	paymentType, err := s.paymentTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := paymentType.Rename(name); err != nil {
		return nil, err
	}
	if err := s.paymentTypes.Save(ctx, paymentType); err != nil {
		return nil, err
	}
	return paymentType, nil
}

// DeletePaymentType deletes a payment type
func (s *Service) DeletePaymentType(ctx context.Context, id uuid.UUID) error {
	return s.paymentTypes.Delete(ctx, id)
}

// ListBudgetItems returns all budget items
func (s *Service) ListBudgetItems(ctx context.Context) ([]masterdata.BudgetItem, error) {
	return s.budgetItems.FindAll(ctx)
}

// CreateBudgetItem creates a budget item
func (s *Service) CreateBudgetItem(ctx context.Context, name string) (*masterdata.BudgetItem, error) {
	item, err := masterdata.NewBudgetItem(name)
	if err != nil {
		return nil, err
	}
	if err := s.budgetItems.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RenameBudgetItem renames an existing budget item
func (s *Service) RenameBudgetItem(ctx context.Context, id uuid.UUID, name string) (*masterdata.BudgetItem, error) {
	item, err := s.budgetItems.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := s.budgetItems.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteBudgetItem deletes a budget item
func (s *Service) DeleteBudgetItem(ctx context.Context, id uuid.UUID) error {
	return s.budgetItems.Delete(ctx, id)
}
