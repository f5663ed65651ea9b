package persistence

import (
	"errors"
	"fmt"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// translateError maps driver-level errors onto domain error sentinels so
// the layers above never import gorm or pq. Unique and foreign key
// violations become shared.ErrIntegrityViolation; everything else passes
// through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", shared.ErrIntegrityViolation, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %w", shared.ErrIntegrityViolation, err)
	}
	return err
}
