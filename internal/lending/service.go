// internal/lending/service.go
package lending

import (
	"context"
)

// Service defines the interface for the lending ledger. Inputs are raw field
// maps (pre-parsed JSON objects); failures are fault.List values.
type Service interface {
	// Checkout lends one copy of a book to a patron.
	Checkout(ctx context.Context, in map[string]any) error
	// Return ends a patron's checkout of a book.
	Return(ctx context.Context, in map[string]any) error
	// Holdings reports the identifiers a patron currently holds, sorted.
	Holdings(ctx context.Context, patron string) ([]string, error)
}
