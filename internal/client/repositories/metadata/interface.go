// Package metadata stores small key/value items in the local cache database:
// the last resolved identity snapshot and refresh bookkeeping. The identity
// gate wipes these values whenever resolution fails closed.
package metadata

import "context"

// Well-known metadata keys.
const (
	KeyIdentity    = "identity"
	KeyLastRefresh = "last_refresh"
)

// Repository describes key/value operations over the metadata table.
type Repository interface {
	// Get returns the value for name, or common.ErrorNotFound.
	Get(ctx context.Context, name string) (string, error)

	// Set inserts or replaces the value for name.
	Set(ctx context.Context, name, value string) error

	// Delete removes the value for name. Deleting a missing key is a no-op.
	Delete(ctx context.Context, name string) error
}
