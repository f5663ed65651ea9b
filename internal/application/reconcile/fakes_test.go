package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/bookkeeping/backend/internal/domain/shared"
)

var errFakeStore = errors.New("store unavailable")

// fakeExpenseRepo is an in-memory ExpenseRepository keyed by invoice number.
type fakeExpenseRepo struct {
	expenses map[string]*ledger.Expense
	lines    map[uuid.UUID][]ledger.ExpenseLine
	taxes    map[uuid.UUID][]ledger.ExpenseTax

	saveErr     error
	saveErrOnce error
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{
		expenses: make(map[string]*ledger.Expense),
		lines:    make(map[uuid.UUID][]ledger.ExpenseLine),
		taxes:    make(map[uuid.UUID][]ledger.ExpenseTax),
	}
}

func (r *fakeExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Expense, error) {
	for _, e := range r.expenses {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeExpenseRepo) FindByInvoiceNumber(_ context.Context, invoiceNumber string) (*ledger.Expense, error) {
	e, ok := r.expenses[invoiceNumber]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeExpenseRepo) FindAll(_ context.Context, _ ledger.ExpenseFilter) ([]ledger.Expense, error) {
	var out []ledger.Expense
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeExpenseRepo) Count(_ context.Context, _ ledger.ExpenseFilter) (int64, error) {
	return int64(len(r.expenses)), nil
}

func (r *fakeExpenseRepo) Save(_ context.Context, expense *ledger.Expense) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if r.saveErrOnce != nil {
		err := r.saveErrOnce
		r.saveErrOnce = nil
		return err
	}
	copied := *expense
	r.expenses[expense.InvoiceNumber] = &copied
	return nil
}

func (r *fakeExpenseRepo) FindLines(_ context.Context, expenseID uuid.UUID) ([]ledger.ExpenseLine, error) {
	return r.lines[expenseID], nil
}

func (r *fakeExpenseRepo) CreateLines(_ context.Context, lines []*ledger.ExpenseLine) error {
	for _, line := range lines {
		r.lines[line.ExpenseID] = append(r.lines[line.ExpenseID], *line)
	}
	return nil
}

func (r *fakeExpenseRepo) DeleteLines(_ context.Context, expenseID uuid.UUID) error {
	delete(r.lines, expenseID)
	return nil
}

func (r *fakeExpenseRepo) FindTaxes(_ context.Context, expenseID uuid.UUID) ([]ledger.ExpenseTax, error) {
	return r.taxes[expenseID], nil
}

func (r *fakeExpenseRepo) CreateTaxes(_ context.Context, taxes []*ledger.ExpenseTax) error {
	for _, tax := range taxes {
		r.taxes[tax.ExpenseID] = append(r.taxes[tax.ExpenseID], *tax)
	}
	return nil
}

func (r *fakeExpenseRepo) DeleteTaxes(_ context.Context, expenseID uuid.UUID) error {
	delete(r.taxes, expenseID)
	return nil
}

// fakePaymentRepo is an in-memory append-only PaymentRepository.
type fakePaymentRepo struct {
	payments []ledger.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *ledger.Payment) error {
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) FindByExpense(_ context.Context, expenseID uuid.UUID) ([]ledger.Payment, error) {
	var out []ledger.Payment
	for _, p := range r.payments {
		if p.ExpenseID == expenseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByExpense(_ context.Context, expenseID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.ExpenseID == expenseID && !p.Reversed {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) LatestPaymentDate(_ context.Context, expenseID uuid.UUID) (*time.Time, error) {
	var latest *time.Time
	for i := range r.payments {
		p := &r.payments[i]
		if p.ExpenseID != expenseID || p.Reversed {
			continue
		}
		if latest == nil || p.PaidAt.After(*latest) {
			paidAt := p.PaidAt
			latest = &paidAt
		}
	}
	return latest, nil
}

// fakeSupplierRepo is an in-memory SupplierRepository.
type fakeSupplierRepo struct {
	suppliers []ledger.Supplier
	createErr error
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{}
}

func (r *fakeSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Supplier, error) {
	for i := range r.suppliers {
		if r.suppliers[i].ID == id {
			copied := r.suppliers[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSupplierRepo) FindAll(_ context.Context) ([]ledger.Supplier, error) {
	return r.suppliers, nil
}

func (r *fakeSupplierRepo) Create(_ context.Context, supplier *ledger.Supplier) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.suppliers = append(r.suppliers, *supplier)
	return nil
}

// failingSupplierRepo fails every read, for cache warming failure tests.
type failingSupplierRepo struct{}

func (r *failingSupplierRepo) FindByID(_ context.Context, _ uuid.UUID) (*ledger.Supplier, error) {
	return nil, shared.ErrNotFound
}

func (r *failingSupplierRepo) FindAll(_ context.Context) ([]ledger.Supplier, error) {
	return nil, errFakeStore
}

func (r *failingSupplierRepo) Create(_ context.Context, _ *ledger.Supplier) error {
	return errFakeStore
}

// fakeAccountRepo is an in-memory AccountNameRepository.
type fakeAccountRepo struct {
	accounts []ledger.AccountName
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.AccountName, error) {
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			copied := r.accounts[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeAccountRepo) FindAll(_ context.Context) ([]ledger.AccountName, error) {
	return r.accounts, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, account *ledger.AccountName) error {
	r.accounts = append(r.accounts, *account)
	return nil
}

// ledgerFixture bundles the fakes and the scope over them for reconciler tests.
type ledgerFixture struct {
	expenses *fakeExpenseRepo
	payments *fakePaymentRepo
	supplier *fakeSupplierRepo
	accounts *fakeAccountRepo
	scope    *NoOpTransactionScope
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		expenses: newFakeExpenseRepo(),
		payments: newFakePaymentRepo(),
		supplier: newFakeSupplierRepo(),
		accounts: newFakeAccountRepo(),
	}
	f.scope = NewNoOpTransactionScope(f.expenses, f.payments, f.supplier, f.accounts)
	return f
}

// rollbackScope behaves like a real transaction over the fixture fakes: it
// snapshots every repository before the unit of work and restores the
// snapshot when the unit of work fails.
type rollbackScope struct {
	f *ledgerFixture
}

func (s *rollbackScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	expenses := make(map[string]*ledger.Expense, len(s.f.expenses.expenses))
	for k, v := range s.f.expenses.expenses {
		expenses[k] = v
	}
	lines := copyLineMap(s.f.expenses.lines)
	taxes := copyTaxMap(s.f.expenses.taxes)
	payments := append([]ledger.Payment(nil), s.f.payments.payments...)
	suppliers := append([]ledger.Supplier(nil), s.f.supplier.suppliers...)
	accounts := append([]ledger.AccountName(nil), s.f.accounts.accounts...)

	if err := fn(s.f.scope); err != nil {
		s.f.expenses.expenses = expenses
		s.f.expenses.lines = lines
		s.f.expenses.taxes = taxes
		s.f.payments.payments = payments
		s.f.supplier.suppliers = suppliers
		s.f.accounts.accounts = accounts
		return err
	}
	return nil
}

func copyLineMap(m map[uuid.UUID][]ledger.ExpenseLine) map[uuid.UUID][]ledger.ExpenseLine {
	out := make(map[uuid.UUID][]ledger.ExpenseLine, len(m))
	for k, v := range m {
		out[k] = append([]ledger.ExpenseLine(nil), v...)
	}
	return out
}

func copyTaxMap(m map[uuid.UUID][]ledger.ExpenseTax) map[uuid.UUID][]ledger.ExpenseTax {
	out := make(map[uuid.UUID][]ledger.ExpenseTax, len(m))
	for k, v := range m {
		out[k] = append([]ledger.ExpenseTax(nil), v...)
	}
	return out
}
