// Package store persists game documents and serializes concurrent mutations.
// Every engine operation runs inside RunTransaction: the callback sees a fresh
// private copy of the document and its result is committed atomically with an
// optimistic version check, so two racing operations can never interleave
// partial writes.
package store

import (
	"context"
	"errors"

	"github.com/Daniangio/golem/internal/models"
)

// ErrNotFound is returned when no document exists for the requested id.
var ErrNotFound = errors.New("store: game not found")

// ErrConflict is returned when a transaction lost the version race more times
// than the store is willing to retry.
var ErrConflict = errors.New("store: too many commit conflicts")

// TxFunc mutates the document in place. Returning deleteDoc drops the
// document instead of committing it; returning an error aborts the
// transaction with no write at all.
type TxFunc func(doc *models.GameDoc) (deleteDoc bool, err error)

// Filter narrows List results. Zero-valued fields match everything.
type Filter struct {
	Status     models.Status
	Visibility models.Visibility
	PlayerUID  string
}

func (f Filter) matches(doc *models.GameDoc) bool {
	if f.Status != "" && doc.Status != f.Status {
		return false
	}
	if f.Visibility != "" && doc.Visibility != f.Visibility {
		return false
	}
	if f.PlayerUID != "" && doc.SeatOf(f.PlayerUID) == "" {
		return false
	}
	return true
}

// Store is the persistence port the service layer is written against.
type Store interface {
	// Create inserts a brand-new document.
	Create(ctx context.Context, doc *models.GameDoc) error
	// Get returns a private copy of the document.
	Get(ctx context.Context, id string) (*models.GameDoc, error)
	// List returns private copies of every document matching the filter.
	List(ctx context.Context, f Filter) ([]*models.GameDoc, error)
	// RunTransaction applies fn to a fresh copy of the document and commits
	// the result atomically. The committed document is returned (nil when fn
	// asked for deletion).
	RunTransaction(ctx context.Context, id string, fn TxFunc) (*models.GameDoc, error)
	// Put overwrites the document unconditionally, last write wins. Reserved
	// for terminal status flips where losing a race is acceptable.
	Put(ctx context.Context, doc *models.GameDoc) error
	// Close releases the underlying resources.
	Close() error
}
