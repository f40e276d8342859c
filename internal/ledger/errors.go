package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrValidation means a required field was absent or empty.
	ErrValidation = errors.New("missing required field")
	// ErrNotFound means a referenced entity does not exist, or no listing
	// matched that is still available.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means a natural key (address, email, location)
	// collided with an existing row.
	ErrAlreadyExists = errors.New("already exists")
	// ErrConstraint means the store itself rejected a write.
	ErrConstraint = errors.New("constraint violation")
)

// storeError converts a raw store failure into the ledger taxonomy so that
// nothing below gorm leaks past the operation boundary.
func storeError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	}
	return fmt.Errorf("%w: %v", ErrConstraint, err)
}
