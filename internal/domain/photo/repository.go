package photo

import (
	"context"

	"github.com/google/uuid"
)

// PhotoRepository defines persistence operations for luggage photos.
type PhotoRepository interface {
	Save(ctx context.Context, photo *LuggagePhoto) error
	// FindByOrderID returns an order's photos, oldest first.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*LuggagePhoto, error)
}
