// Package repository declares persistence boundaries for domain data.
package repository

import "context"

// StorageRepository is a string-keyed blob store, the local equivalent of
// extension storage. Values are opaque JSON documents.
type StorageRepository interface {
	// Get returns the value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)
}
