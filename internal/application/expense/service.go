package expense

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// Detail is an expense with its owned lines, tax totals and payments.
type Detail struct {
	Expense  ledger.Expense       `json:"expense"`
	Lines    []ledger.ExpenseLine `json:"lines"`
	Taxes    []ledger.ExpenseTax  `json:"taxes"`
	Payments []ledger.Payment     `json:"payments"`
}

// Service exposes read access to the expense ledger.
type Service struct {
	expenses ledger.ExpenseRepository
	payments ledger.PaymentRepository
}

// NewService creates an expense query service
func NewService(expenses ledger.ExpenseRepository, payments ledger.PaymentRepository) *Service {
	return &Service{expenses: expenses, payments: payments}
}

// List returns expenses matching the filter together with the total count.
func (s *Service) List(ctx context.Context, filter ledger.ExpenseFilter) ([]ledger.Expense, int64, error) {
	items, err := s.expenses.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenses.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get returns one expense with its lines, taxes and payments.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	exp, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.expenses.FindLines(ctx, id)
	if err != nil {
		return nil, err
	}
	taxes, err := s.expenses.FindTaxes(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.FindByExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Expense:  *exp,
		Lines:    lines,
		Taxes:    taxes,
		Payments: payments,
	}, nil
}
