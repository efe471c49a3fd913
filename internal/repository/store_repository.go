package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// StoreModel is the GORM model for the stores table.
type StoreModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Address       string          `gorm:"type:text;not null"`
	City          string          `gorm:"type:varchar(100);not null;index"`
	Pincode       string          `gorm:"type:varchar(10)"`
	OwnerName     string          `gorm:"type:varchar(100)"`
	Timings       string          `gorm:"type:varchar(100)"`
	IsOpen        bool            `gorm:"not null;default:true"`
	PricePerDay   float64         `gorm:"type:numeric(10,2);not null;default:0"`
	PricePerMonth json.RawMessage `gorm:"type:jsonb"`
	ContactNumber string          `gorm:"type:varchar(20)"`
	Description   string          `gorm:"type:text"`
	Latitude      *float64        `gorm:""`
	Longitude     *float64        `gorm:""`
	Capacity      int             `gorm:"not null;check:chk_stores_capacity,capacity >= 0"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt     time.Time       `gorm:"type:timestamptz;not null;default:now()"`
}

func (StoreModel) TableName() string { return "stores" }

// GormStoreRepository implements StoreRepository using GORM.
type GormStoreRepository struct {
	db *gorm.DB
}

func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*storeDomain.Store, error) {
	var model StoreModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Store", id.String())
		}
		return nil, err
	}
	return toStoreDomain(&model)
}

func (r *GormStoreRepository) List(ctx context.Context, filter storeDomain.Filter) ([]*storeDomain.Store, error) {
	q := r.db.WithContext(ctx)
	if filter.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.OwnerID != uuid.Nil {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.OpenOnly {
		q = q.Where("is_open = ?", true)
	}

	var models []StoreModel
	if err := q.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	stores := make([]*storeDomain.Store, len(models))
	for i := range models {
		s, err := toStoreDomain(&models[i])
		if err != nil {
			return nil, err
		}
		stores[i] = s
	}
	return stores, nil
}

func (r *GormStoreRepository) Save(ctx context.Context, s *storeDomain.Store) error {
	model, err := toStoreModel(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *GormStoreRepository) Update(ctx context.Context, s *storeDomain.Store) error {
	model, err := toStoreModel(s)
	if err != nil {
		return err
	}
	previousVersion := s.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&StoreModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Select("*").
		Omit("id", "owner_id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("store was modified by another transaction")
	}
	return nil
}

// --- Conversions ---

func toStoreModel(s *storeDomain.Store) (*StoreModel, error) {
	d := s.Details()
	var prices json.RawMessage
	if len(d.PricePerMonth) > 0 {
		data, err := json.Marshal(d.PricePerMonth)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal monthly prices: %w", err)
		}
		prices = data
	}

	model := &StoreModel{
		ID:            s.ID(),
		OwnerID:       s.OwnerID(),
		Name:          d.Name,
		Address:       d.Address,
		City:          d.City,
		Pincode:       d.Pincode,
		OwnerName:     d.OwnerName,
		Timings:       d.Timings,
		IsOpen:        d.IsOpen,
		PricePerDay:   d.PricePerDay,
		PricePerMonth: prices,
		ContactNumber: d.ContactNumber,
		Description:   d.Description,
		Capacity:      s.Capacity(),
		Version:       s.Version(),
		CreatedAt:     s.CreatedAt(),
		UpdatedAt:     s.UpdatedAt(),
	}
	if d.Location != nil {
		lat, lng := d.Location.Latitude, d.Location.Longitude
		model.Latitude, model.Longitude = &lat, &lng
	}
	return model, nil
}

func toStoreDomain(m *StoreModel) (*storeDomain.Store, error) {
	var prices map[string]float64
	if len(m.PricePerMonth) > 0 {
		if err := json.Unmarshal(m.PricePerMonth, &prices); err != nil {
			return nil, fmt.Errorf("failed to unmarshal monthly prices: %w", err)
		}
	}
	var loc *storeDomain.Location
	if m.Latitude != nil && m.Longitude != nil {
		loc = &storeDomain.Location{Latitude: *m.Latitude, Longitude: *m.Longitude}
	}

	return storeDomain.Reconstruct(
		m.ID, m.OwnerID,
		storeDomain.Details{
			Name:          m.Name,
			Address:       m.Address,
			City:          m.City,
			Pincode:       m.Pincode,
			OwnerName:     m.OwnerName,
			Timings:       m.Timings,
			IsOpen:        m.IsOpen,
			PricePerDay:   m.PricePerDay,
			PricePerMonth: prices,
			ContactNumber: m.ContactNumber,
			Description:   m.Description,
			Location:      loc,
		},
		m.Capacity,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
