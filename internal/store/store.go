// Package store provides key/collection-addressed persistence of JSON
// documents. It knows nothing about business rules; higher layers build
// "create if absent" and "update only existing" on top of its exclusive
// create and must-exist update semantics.
package store

import "context"

// Collection names in use.
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
	CollectionChecks = "checks"
)

// Store persists one document per (collection, key) pair.
type Store interface {
	// Exists never fails; any error reads as false.
	Exists(ctx context.Context, collection, key string) bool

	// Create serializes record and commits it durably. It fails with
	// ErrConflict if a record already occupies the key; exactly one of two
	// racing creates succeeds.
	Create(ctx context.Context, collection, key string, record any) error

	// Read decodes the stored document into out, which the caller owns as a
	// mutable scratch copy. ErrNotFound if no record exists.
	Read(ctx context.Context, collection, key string, out any) error

	// Update replaces the stored document. ErrNotFound if the record does
	// not already exist; there is no implicit upsert. A concurrent reader
	// never observes a partially written record.
	Update(ctx context.Context, collection, key string, record any) error

	// Delete removes the document. ErrNotFound if no record exists.
	Delete(ctx context.Context, collection, key string) error
}
