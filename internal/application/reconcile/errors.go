package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bookkeeping/backend/internal/domain/shared"
)

// Stable error codes reported per record in a batch summary.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeDBIntegrity = "DB_INTEGRITY"
	CodeDBError     = "DB_ERROR"
	CodeUnknown     = "UNKNOWN_ERROR"
)

// ValidationError marks bad or missing input on one record. In batch mode it
// is recorded and the record skipped; in single-record mode it propagates to
// the caller.
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a persistence failure so the batch orchestrator can tell
// failures of the store apart from unexpected ones.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying persistence error
func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Classify maps a reconciliation failure to its stable error code.
func Classify(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return CodeValidation
	}
	if errors.Is(err, shared.ErrIntegrityViolation) {
		return CodeDBIntegrity
	}
	var se *StoreError
	if errors.As(err, &se) {
		return CodeDBError
	}
	return CodeUnknown
}

// HintsFor derives actionable hints from known failure message substrings.
func HintsFor(message string) []string {
	var hints []string
	lower := strings.ToLower(message)
	if strings.Contains(lower, "payment date") {
		hints = append(hints, "Supply last_payment_date for the record, or set its invoice date so it can be used as the payment date.")
	}
	if strings.Contains(lower, "lower than") || strings.Contains(lower, "negative") {
		hints = append(hints, "Re-check the reported total_paid; if the decrease is intentional, enable allow_negative_adjustment.")
	}
	if strings.Contains(lower, "invoice number") {
		hints = append(hints, "Every record needs a non-empty invoice_number; it is the reconciliation key.")
	}
	if strings.Contains(lower, "amount") && strings.Contains(lower, "positive") {
		hints = append(hints, "The invoice amount must be a decimal greater than zero.")
	}
	if strings.Contains(lower, "duplicate") || strings.Contains(lower, "unique") {
		hints = append(hints, "The invoice number was written by a concurrent run; re-run the import so the record reconciles as an update.")
	}
	if strings.Contains(lower, "unrecognized date") {
		hints = append(hints, "Dates must be in YYYY-MM-DD, DD.MM.YYYY or DD/MM/YYYY form.")
	}
	return hints
}
