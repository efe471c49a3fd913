package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Methods that change an order's held capacity take the capacity delta and
// apply it to the store in the same transaction. A positive delta is only
// applied while the store has that much capacity left; otherwise nothing is
// written and an insufficient-capacity error is returned.
type OrderRepository interface {
	// FindByID retrieves an order by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIdempotencyKey retrieves the order a user created with key.
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Order, error)

	// FindByUserID retrieves a user's orders with pagination, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Order, int64, error)

	// FindByStoreID retrieves a store's orders with pagination, newest first.
	FindByStoreID(ctx context.Context, storeID uuid.UUID, page, limit int) ([]*Order, int64, error)

	// ListAll retrieves all orders with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Order, int64, error)

	// CountByStatus returns order counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// CreateWithReservation inserts a new order and takes its bags from the store.
	CreateWithReservation(ctx context.Context, order *Order) error

	// UpdateWithCapacity persists an edited order with optimistic locking and
	// applies capacityDelta to its store.
	UpdateWithCapacity(ctx context.Context, order *Order, capacityDelta int) error
}
