package store

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows a store listing. Zero fields match everything.
type Filter struct {
	City     string
	OwnerID  uuid.UUID
	OpenOnly bool
}

// StoreRepository defines persistence operations for stores.
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	List(ctx context.Context, filter Filter) ([]*Store, error)
	Save(ctx context.Context, store *Store) error
	// Update persists an edited store with optimistic locking.
	Update(ctx context.Context, store *Store) error
}
