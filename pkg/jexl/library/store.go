package library

import (
	"errors"
	"time"
)

// Store persists named expressions. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put stores an expression under a name, overwriting any existing
	// entry.
	Put(name, source string) error

	// Get retrieves an expression's source text.
	// Returns ErrNotFound if no entry exists.
	Get(name string) (string, error)

	// List returns all entries ordered by name.
	// Returns an empty slice (not an error) when the store is empty.
	List() ([]Entry, error)

	// Delete removes an entry. Returns nil if it doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is one stored expression with its metadata.
type Entry struct {
	Name      string
	Source    string
	UpdatedAt time.Time
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates the named expression doesn't exist.
	ErrNotFound = errors.New("expression not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("expression store closed")
)
