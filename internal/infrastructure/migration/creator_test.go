package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Payments Table", "payments per expense")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_payments_table.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_payments_table.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Payments Table")
	assert.Contains(t, string(up), "payments per expense")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "rollback")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	_, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"add payments table", "add_payments_table"},
		{"Add-Expense  Taxes", "add_expense_taxes"},
		{"trailing space ", "trailing_space"},
		{"weird!@#chars", "weirdchars"},
		{"v2 schema", "v2_schema"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("lists up migrations only once", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"001_create_expenses.up.sql",
			"001_create_expenses.down.sql",
			"002_create_payments.up.sql",
			"002_create_payments.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql"), 0644))
		}

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"001_create_expenses", "002_create_payments"}, names)
	})

	t.Run("missing directory is empty", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
