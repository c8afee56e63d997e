package store

import "errors"

var (
	// ErrConflict reports an exclusive create against an occupied key.
	ErrConflict = errors.New("store: record already exists")

	// ErrNotFound reports a read, update or delete against an absent key.
	ErrNotFound = errors.New("store: record not found")

	// ErrInvalidKey reports a key or collection name unsafe to address.
	ErrInvalidKey = errors.New("store: invalid key")
)
