// internal/catalog/service.go
package catalog

import (
	"context"
)

// Service defines the interface for the catalog service. Inputs are raw
// field maps (pre-parsed JSON objects); failures are fault.List values.
type Service interface {
	// Register validates and stores a book record. Re-registering an
	// existing identifier with identical required fields adds its copy
	// count to the stored record.
	Register(ctx context.Context, in map[string]any) (*Book, error)
	// Search returns the records matching every token of the query, sorted
	// ascending by title.
	Search(ctx context.Context, in map[string]any) ([]*Book, error)
	// Get looks up a single record by identifier.
	Get(ctx context.Context, isbn string) (*Book, error)
}
