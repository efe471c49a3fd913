package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// adjustCapacity takes delta bags from a store (or returns them when delta
// is negative) with a single conditional update. It must run inside the
// transaction that changes the orders holding those bags.
func adjustCapacity(tx *gorm.DB, storeID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}

	q := tx.Model(&StoreModel{}).Where("id = ?", storeID)
	if delta > 0 {
		q = q.Where("capacity >= ?", delta)
	}
	result := q.Updates(map[string]interface{}{
		"capacity":   gorm.Expr("capacity - ?", delta),
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to adjust store capacity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if delta > 0 {
			return domain.NewInsufficientCapacityError(storeDomain.InsufficientCapacityMessage)
		}
		return domain.NewNotFoundError("Store", storeID.String())
	}
	return nil
}
