package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	expenseID := uuid.New()
	paidAt := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates valid payment", func(t *testing.T) {
		payment, err := NewPayment(expenseID, d("40.005"), paidAt, "first installment", false)
		require.NoError(t, err)
		assert.Equal(t, expenseID, payment.ExpenseID)
		assert.Equal(t, "40.01", payment.Amount.StringFixed(2))
		assert.Equal(t, paidAt, payment.PaidAt)
		assert.Equal(t, "first installment", payment.Description)
		assert.False(t, payment.Reversed)
	})

	t.Run("rejects nil expense reference", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, d("40.00"), paidAt, "", false)
		assert.Error(t, err)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewPayment(expenseID, d("0"), paidAt, "", false)
		assert.Error(t, err)
	})

	t.Run("rejects negative amount by default", func(t *testing.T) {
		_, err := NewPayment(expenseID, d("-10.00"), paidAt, "", false)
		assert.Error(t, err)
	})

	t.Run("allows negative amount when authorized", func(t *testing.T) {
		payment, err := NewPayment(expenseID, d("-10.00"), paidAt, "adjustment", true)
		require.NoError(t, err)
		assert.Equal(t, "-10.00", payment.Amount.StringFixed(2))
	})

	t.Run("rejects zero payment date", func(t *testing.T) {
		_, err := NewPayment(expenseID, d("40.00"), time.Time{}, "", false)
		assert.Error(t, err)
	})
}
