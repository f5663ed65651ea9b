package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookkeeping/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var nameFolder = cases.Fold()

// NormalizeName produces the cache key form of a reference entity name:
// trimmed, Unicode-normalized and case-folded.
func NormalizeName(name string) string {
	return nameFolder.String(norm.NFKC.String(strings.TrimSpace(name)))
}

// EntityResolver maintains the per-batch name → id caches for suppliers and
// account names. The caches are plain maps with no internal synchronization;
// one resolver serves exactly one sequential batch run and must not be shared
// across concurrent batches.
type EntityResolver struct {
	suppliers map[string]uuid.UUID
	accounts  map[string]uuid.UUID

	// keys cached since the last beginRecord call; evicted if the record's
	// transaction rolls back, because the created rows roll back with it
	pendingSuppliers []string
	pendingAccounts  []string

	logger *zap.Logger
}

// NewEntityResolver creates an empty resolver
func NewEntityResolver(logger *zap.Logger) *EntityResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityResolver{
		suppliers: make(map[string]uuid.UUID),
		accounts:  make(map[string]uuid.UUID),
		logger:    logger,
	}
}

// Warm builds both caches once from all existing entities of each kind.
// A failure here is a batch-wide precondition failure.
func (r *EntityResolver) Warm(ctx context.Context, suppliers ledger.SupplierRepository, accounts ledger.AccountNameRepository) error {
	existing, err := suppliers.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("loading supplier cache: %w", err)
	}
	for i := range existing {
		r.suppliers[NormalizeName(existing[i].Name)] = existing[i].ID
	}

	accts, err := accounts.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("loading account name cache: %w", err)
	}
	for i := range accts {
		r.accounts[accountKey(accts[i].PaymentTypeID, accts[i].Name)] = accts[i].ID
	}
	return nil
}

// ResolveSupplier resolves a supplier name to an id, creating the supplier on
// a cache miss. An explicit overrideID wins without lookup or creation. An
// empty name resolves to nil.
func (r *EntityResolver) ResolveSupplier(ctx context.Context, repo ledger.SupplierRepository, name string, overrideID *uuid.UUID) (*uuid.UUID, error) {
	if overrideID != nil {
		return overrideID, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	key := NormalizeName(name)
	if id, ok := r.suppliers[key]; ok {
		return &id, nil
	}

	supplier, err := ledger.NewSupplier(name)
	if err != nil {
		return nil, asValidation(err)
	}
	if err := repo.Create(ctx, supplier); err != nil {
		return nil, storeErr("creating supplier", err)
	}
	r.suppliers[key] = supplier.ID
	r.pendingSuppliers = append(r.pendingSuppliers, key)
	r.logger.Info("created supplier during import",
		zap.String("name", name),
		zap.String("supplier_id", supplier.ID.String()))
	return &supplier.ID, nil
}

// ResolveAccount resolves an account name within a payment-type scope,
// creating the account on a cache miss. An explicit overrideID wins without
// lookup or creation. An empty name resolves to nil.
func (r *EntityResolver) ResolveAccount(ctx context.Context, repo ledger.AccountNameRepository, name string, paymentTypeID *uuid.UUID, overrideID *uuid.UUID) (*uuid.UUID, error) {
	if overrideID != nil {
		return overrideID, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	key := accountKey(paymentTypeID, name)
	if id, ok := r.accounts[key]; ok {
		return &id, nil
	}

	account, err := ledger.NewAccountName(name, paymentTypeID)
	if err != nil {
		return nil, asValidation(err)
	}
	if err := repo.Create(ctx, account); err != nil {
		return nil, storeErr("creating account name", err)
	}
	r.accounts[key] = account.ID
	r.pendingAccounts = append(r.pendingAccounts, key)
	r.logger.Info("created account name during import",
		zap.String("name", name),
		zap.String("account_name_id", account.ID.String()))
	return &account.ID, nil
}

// beginRecord starts tracking the cache entries one record adds. The entries
// are created inside that record's transaction, so they are only durable once
// the transaction commits.
func (r *EntityResolver) beginRecord() {
	r.pendingSuppliers = r.pendingSuppliers[:0]
	r.pendingAccounts = r.pendingAccounts[:0]
}

// evictPending removes the cache entries added since beginRecord. Called after
// a record's transaction rolled back; without the eviction, later records in
// the batch would reuse ids whose rows no longer exist.
func (r *EntityResolver) evictPending() {
	for _, key := range r.pendingSuppliers {
		delete(r.suppliers, key)
	}
	for _, key := range r.pendingAccounts {
		delete(r.accounts, key)
	}
	r.pendingSuppliers = r.pendingSuppliers[:0]
	r.pendingAccounts = r.pendingAccounts[:0]
}

// accountKey scopes the account cache by payment type
func accountKey(paymentTypeID *uuid.UUID, name string) string {
	scope := ""
	if paymentTypeID != nil {
		scope = paymentTypeID.String()
	}
	return scope + "|" + NormalizeName(name)
}
