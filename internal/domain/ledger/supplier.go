package ledger

import (
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Supplier is a reference entity resolved by normalized name and created on
// first encounter during an import.
type Supplier struct {
	shared.BaseEntity
	Name string `json:"name"`
}

// NewSupplier creates a supplier
func NewSupplier(name string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// AccountName is a reference entity for the bank account an invoice was
// collected into, scoped by an optional payment type.
type AccountName struct {
	shared.BaseEntity
	Name          string     `json:"name"`
	PaymentTypeID *uuid.UUID `json:"payment_type_id"`
}

// NewAccountName creates an account name within a payment-type scope
func NewAccountName(name string, paymentTypeID *uuid.UUID) (*AccountName, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot exceed 200 characters")
	}
	return &AccountName{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		PaymentTypeID: paymentTypeID,
	}, nil
}
