package reconcile

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookkeeping/backend/internal/domain/ledger"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  Acme Ltd  ", "acme ltd"},
		{"case folds", "ACME Ltd", "acme ltd"},
		{"folds beyond ascii", "ÜNAL GIDA", "ünal gida"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}

	// two spellings of the same name normalize to the same key
	assert.Equal(t, NormalizeName("Acme LTD"), NormalizeName("  acme ltd"))
}

func TestEntityResolver_Warm(t *testing.T) {
	ctx := context.Background()
	suppliers := newFakeSupplierRepo()
	accounts := newFakeAccountRepo()

	existing, err := ledger.NewSupplier("Acme Ltd")
	require.NoError(t, err)
	require.NoError(t, suppliers.Create(ctx, existing))

	resolver := NewEntityResolver(nil)
	require.NoError(t, resolver.Warm(ctx, suppliers, accounts))

	// cache hit: resolving a different spelling returns the same id and
	// creates nothing
	id, err := resolver.ResolveSupplier(ctx, suppliers, "  ACME LTD ", nil)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, existing.ID, *id)
	assert.Len(t, suppliers.suppliers, 1)
}

func TestEntityResolver_ResolveSupplier(t *testing.T) {
	ctx := context.Background()

	t.Run("creates on cache miss and caches it", func(t *testing.T) {
		suppliers := newFakeSupplierRepo()
		resolver := NewEntityResolver(nil)

		first, err := resolver.ResolveSupplier(ctx, suppliers, "Fresh Supplier", nil)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Len(t, suppliers.suppliers, 1)

		second, err := resolver.ResolveSupplier(ctx, suppliers, "fresh supplier", nil)
		require.NoError(t, err)
		assert.Equal(t, *first, *second)
		assert.Len(t, suppliers.suppliers, 1)
	})

	t.Run("override id wins without lookup or creation", func(t *testing.T) {
		suppliers := newFakeSupplierRepo()
		resolver := NewEntityResolver(nil)
		overrideID := uuid.New()

		id, err := resolver.ResolveSupplier(ctx, suppliers, "Ignored Name", &overrideID)
		require.NoError(t, err)
		assert.Equal(t, overrideID, *id)
		assert.Empty(t, suppliers.suppliers)
	})

	t.Run("empty name resolves to nil", func(t *testing.T) {
		suppliers := newFakeSupplierRepo()
		resolver := NewEntityResolver(nil)

		id, err := resolver.ResolveSupplier(ctx, suppliers, "   ", nil)
		require.NoError(t, err)
		assert.Nil(t, id)
		assert.Empty(t, suppliers.suppliers)
	})

	t.Run("create failure is a store error", func(t *testing.T) {
		suppliers := newFakeSupplierRepo()
		suppliers.createErr = assert.AnError
		resolver := NewEntityResolver(nil)

		_, err := resolver.ResolveSupplier(ctx, suppliers, "Broken", nil)
		require.Error(t, err)
		assert.Equal(t, CodeDBError, Classify(err))
	})

	t.Run("oversized name is a validation error", func(t *testing.T) {
		suppliers := newFakeSupplierRepo()
		resolver := NewEntityResolver(nil)

		_, err := resolver.ResolveSupplier(ctx, suppliers, strings.Repeat("x", 201), nil)
		require.Error(t, err)
		assert.Equal(t, CodeValidation, Classify(err))
		assert.Empty(t, suppliers.suppliers)
	})
}

func TestEntityResolver_EvictPending(t *testing.T) {
	ctx := context.Background()
	suppliers := newFakeSupplierRepo()
	accounts := newFakeAccountRepo()

	warmed, err := ledger.NewSupplier("Warmed Supplier")
	require.NoError(t, err)
	require.NoError(t, suppliers.Create(ctx, warmed))

	resolver := NewEntityResolver(nil)
	require.NoError(t, resolver.Warm(ctx, suppliers, accounts))

	resolver.beginRecord()
	created, err := resolver.ResolveSupplier(ctx, suppliers, "Rolled Back Co", nil)
	require.NoError(t, err)
	_, err = resolver.ResolveAccount(ctx, accounts, "Rolled Back Account", nil, nil)
	require.NoError(t, err)

	resolver.evictPending()

	// entries added during the record are gone, warmed entries survive
	again, err := resolver.ResolveSupplier(ctx, suppliers, "Rolled Back Co", nil)
	require.NoError(t, err)
	assert.NotEqual(t, *created, *again)
	assert.Len(t, accounts.accounts, 1)
	_, err = resolver.ResolveAccount(ctx, accounts, "Rolled Back Account", nil, nil)
	require.NoError(t, err)
	assert.Len(t, accounts.accounts, 2)

	id, err := resolver.ResolveSupplier(ctx, suppliers, "warmed supplier", nil)
	require.NoError(t, err)
	assert.Equal(t, warmed.ID, *id)
}

func TestEntityResolver_ResolveAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("scopes the cache by payment type", func(t *testing.T) {
		accounts := newFakeAccountRepo()
		resolver := NewEntityResolver(nil)
		cardType := uuid.New()
		wireType := uuid.New()

		cardID, err := resolver.ResolveAccount(ctx, accounts, "Main Account", &cardType, nil)
		require.NoError(t, err)
		wireID, err := resolver.ResolveAccount(ctx, accounts, "Main Account", &wireType, nil)
		require.NoError(t, err)

		assert.NotEqual(t, *cardID, *wireID)
		assert.Len(t, accounts.accounts, 2)

		// same scope, same name: cache hit
		again, err := resolver.ResolveAccount(ctx, accounts, "MAIN ACCOUNT", &cardType, nil)
		require.NoError(t, err)
		assert.Equal(t, *cardID, *again)
		assert.Len(t, accounts.accounts, 2)
	})

	t.Run("nil payment type is its own scope", func(t *testing.T) {
		accounts := newFakeAccountRepo()
		resolver := NewEntityResolver(nil)
		typed := uuid.New()

		unscoped, err := resolver.ResolveAccount(ctx, accounts, "Main Account", nil, nil)
		require.NoError(t, err)
		scoped, err := resolver.ResolveAccount(ctx, accounts, "Main Account", &typed, nil)
		require.NoError(t, err)
		assert.NotEqual(t, *unscoped, *scoped)
	})

	t.Run("override id wins", func(t *testing.T) {
		accounts := newFakeAccountRepo()
		resolver := NewEntityResolver(nil)
		overrideID := uuid.New()

		id, err := resolver.ResolveAccount(ctx, accounts, "Ignored", nil, &overrideID)
		require.NoError(t, err)
		assert.Equal(t, overrideID, *id)
		assert.Empty(t, accounts.accounts)
	})

	t.Run("empty name resolves to nil", func(t *testing.T) {
		accounts := newFakeAccountRepo()
		resolver := NewEntityResolver(nil)

		id, err := resolver.ResolveAccount(ctx, accounts, "", nil, nil)
		require.NoError(t, err)
		assert.Nil(t, id)
	})
}
