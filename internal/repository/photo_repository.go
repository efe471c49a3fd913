package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	photoDomain "github.com/Stashly-Luggage/service-storage/internal/domain/photo"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// PhotoModel is the GORM model for the luggage_photos table.
type PhotoModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null"`
	PhotoType  string    `gorm:"type:varchar(20);not null"`
	PhotoURL   string    `gorm:"type:text;not null"`
	Caption    string    `gorm:"type:text"`
	TakenAt    time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (PhotoModel) TableName() string { return "luggage_photos" }

// GormPhotoRepository implements PhotoRepository using GORM.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Save persists a new luggage photo. A photo for an order that no longer
// exists is reported as not found.
func (r *GormPhotoRepository) Save(ctx context.Context, photo *photoDomain.LuggagePhoto) error {
	model := toPhotoModel(photo)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.NewNotFoundError("Order", photo.OrderID().String())
		}
		return fmt.Errorf("failed to save luggage photo: %w", err)
	}
	return nil
}

// FindByOrderID returns an order's photos, oldest first; photos taken at
// the same instant keep their upload order.
func (r *GormPhotoRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*photoDomain.LuggagePhoto, error) {
	var models []PhotoModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("taken_at ASC").
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for order %s: %w", orderID, err)
	}

	photos := make([]*photoDomain.LuggagePhoto, len(models))
	for i := range models {
		photos[i] = toPhotoDomain(&models[i])
	}
	return photos, nil
}

func toPhotoModel(p *photoDomain.LuggagePhoto) PhotoModel {
	return PhotoModel{
		ID:         p.ID(),
		OrderID:    p.OrderID(),
		UploadedBy: p.UploadedBy(),
		PhotoType:  string(p.PhotoType()),
		PhotoURL:   p.PhotoURL(),
		Caption:    p.Caption(),
		TakenAt:    p.TakenAt(),
		CreatedAt:  p.CreatedAt(),
	}
}

func toPhotoDomain(m *PhotoModel) *photoDomain.LuggagePhoto {
	return photoDomain.Reconstruct(
		m.ID,
		m.OrderID,
		m.UploadedBy,
		photoDomain.PhotoType(m.PhotoType),
		m.PhotoURL,
		m.Caption,
		m.TakenAt,
		m.CreatedAt,
	)
}
