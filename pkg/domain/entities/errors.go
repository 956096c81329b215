package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification with errors.Is across layers.
var (
	// ErrDataInconsistency marks a snapshot whose BOM references a missing material.
	ErrDataInconsistency = errors.New("data inconsistency")

	// ErrInvalidInput marks input that should have been rejected upstream.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a lookup for an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCode marks a create/update that would reuse an existing code.
	ErrDuplicateCode = errors.New("duplicate code")

	// ErrMaterialInUse marks a material delete blocked by a referencing BOM line.
	ErrMaterialInUse = errors.New("material in use")
)

// DataInconsistencyError reports a BOM line whose material is absent from the
// snapshot it was read with. It always aborts the whole computation.
type DataInconsistencyError struct {
	ProductID  string
	MaterialID string
}

func (e *DataInconsistencyError) Error() string {
	return fmt.Sprintf("product %s references material %s not present in snapshot", e.ProductID, e.MaterialID)
}

func (e *DataInconsistencyError) Unwrap() error {
	return ErrDataInconsistency
}

// InvalidInputError reports a field value the engine refuses to compute with.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
