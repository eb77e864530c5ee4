// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrStoreUnavailable is returned when the document store cannot be reached.
var ErrStoreUnavailable = errors.New("document store unavailable")

// DocumentStore reads and writes whole subtrees of a path-addressed document tree.
type DocumentStore interface {
	// Get decodes the subtree at path into dest. A missing path leaves dest
	// untouched and is not an error.
	Get(ctx context.Context, path string, dest any) error

	// Set replaces the subtree at path with value.
	Set(ctx context.Context, path string, value any) error

	// Delete removes the subtree at path.
	Delete(ctx context.Context, path string) error
}

// Loader is implemented by every repository that mirrors one store root in memory.
type Loader interface {
	// Topic names the change topic the repository emits on.
	Topic() string

	// Load fetches the root once; later calls are no-ops.
	Load(ctx context.Context) error

	// Refresh fetches the root again and replaces the in-memory map.
	Refresh(ctx context.Context) error

	// Count returns the number of records currently held.
	Count() int

	// LastRefreshed returns when the map was last fetched, zero if never.
	LastRefreshed() time.Time
}

// Collection is the common shape of a repository keyed by record id.
type Collection[T any] interface {
	Loader

	// List returns copies of every record ordered by id.
	List(ctx context.Context) ([]*T, error)

	// FindByID returns a copy of one record.
	FindByID(ctx context.Context, id string) (*T, error)

	// Save writes the record and, once the write succeeded, updates the map.
	Save(ctx context.Context, item *T) error

	// Delete removes the record remotely and then from the map.
	Delete(ctx context.Context, id string) error
}
