package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements ledger.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a payment entry. Payments are append-only and never updated.
func (r *GormPaymentRepository) Create(ctx context.Context, payment *ledger.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// FindByExpense returns all payments of an expense, oldest first
func (r *GormPaymentRepository) FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("paid_at ASC, created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, translateError(err)
	}
	payments := make([]ledger.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// SumByExpense returns the cumulative total paid, excluding reversed payments
func (r *GormPaymentRepository) SumByExpense(ctx context.Context, expenseID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("expense_id = ? AND reversed = false", expenseID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, translateError(err)
	}
	return total, nil
}

// LatestPaymentDate returns the most recent non-reversed payment date, or nil
func (r *GormPaymentRepository) LatestPaymentDate(ctx context.Context, expenseID uuid.UUID) (*time.Time, error) {
	var model models.PaymentModel
	err := r.db.WithContext(ctx).
		Where("expense_id = ? AND reversed = false", expenseID).
		Order("paid_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err)
	}
	return &model.PaidAt, nil
}
