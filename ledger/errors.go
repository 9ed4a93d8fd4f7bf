/*
errors.go - Centralized error types for the stock ledger

ERROR CATEGORIES:
  1. Referential errors  - unknown product id
  2. Validation errors   - bad quantity, insufficient clean stock
  3. Export errors       - nothing to export

PROPAGATION POLICY:
  Persistence failures never appear here: blob-store write errors are
  logged and swallowed at the boundary (see persist.go), and read
  failures fall back to default state. Only caller-input problems
  surface as errors.
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrProductNotFound is returned when a mutation or lookup references
	// a product id that is not in the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuantity is returned when a quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInsufficientCleanStock is returned when an outbound or damaged
	// quantity exceeds the product's current clean stock.
	ErrInsufficientCleanStock = errors.New("quantity exceeds available clean stock")

	// ErrNothingToExport is returned when a CSV export is requested for an
	// empty filtered history.
	ErrNothingToExport = errors.New("no records to export")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientStockError details a clean-stock shortage.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient clean stock for %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientCleanStock
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInsufficientCleanStock) ||
		errors.Is(err, ErrNothingToExport)
}

// IsNotFound returns true if the error indicates an unknown product.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}
