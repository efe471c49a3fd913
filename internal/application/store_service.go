package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// CreateStoreRequest holds the data needed to list a new store.
type CreateStoreRequest struct {
	Name          string                `json:"name" binding:"required"`
	Address       string                `json:"address" binding:"required"`
	City          string                `json:"city" binding:"required"`
	Pincode       string                `json:"pincode"`
	OwnerName     string                `json:"ownerName"`
	Timings       string                `json:"timings"`
	IsOpen        *bool                 `json:"isOpen"`
	PricePerDay   float64               `json:"pricePerDay"`
	PricePerMonth map[string]float64    `json:"pricePerMonth"`
	Capacity      *int                  `json:"capacity" binding:"required"`
	ContactNumber string                `json:"contactNumber"`
	Description   string                `json:"description"`
	Location      *storeDomain.Location `json:"location"`
}

// UpdateStoreRequest is an owner patch. Absent fields are left unchanged.
type UpdateStoreRequest struct {
	Name          *string               `json:"name"`
	Address       *string               `json:"address"`
	City          *string               `json:"city"`
	Pincode       *string               `json:"pincode"`
	OwnerName     *string               `json:"ownerName"`
	Timings       *string               `json:"timings"`
	IsOpen        *bool                 `json:"isOpen"`
	PricePerDay   *float64              `json:"pricePerDay"`
	PricePerMonth map[string]float64    `json:"pricePerMonth"`
	Capacity      *int                  `json:"capacity"`
	ContactNumber *string               `json:"contactNumber"`
	Description   *string               `json:"description"`
	Location      *storeDomain.Location `json:"location"`
}

func (r UpdateStoreRequest) apply(d storeDomain.Details) storeDomain.Details {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&d.Name, r.Name)
	setString(&d.Address, r.Address)
	setString(&d.City, r.City)
	setString(&d.Pincode, r.Pincode)
	setString(&d.OwnerName, r.OwnerName)
	setString(&d.Timings, r.Timings)
	setString(&d.ContactNumber, r.ContactNumber)
	setString(&d.Description, r.Description)
	if r.IsOpen != nil {
		d.IsOpen = *r.IsOpen
	}
	if r.PricePerDay != nil {
		d.PricePerDay = *r.PricePerDay
	}
	if r.PricePerMonth != nil {
		d.PricePerMonth = r.PricePerMonth
	}
	if r.Location != nil {
		d.Location = r.Location
	}
	return d
}

// StoreDTO is the response representation of a store.
type StoreDTO struct {
	ID            uuid.UUID             `json:"id"`
	OwnerID       uuid.UUID             `json:"ownerId"`
	Name          string                `json:"name"`
	Address       string                `json:"address"`
	City          string                `json:"city"`
	Pincode       string                `json:"pincode,omitempty"`
	OwnerName     string                `json:"ownerName,omitempty"`
	Timings       string                `json:"timings,omitempty"`
	IsOpen        bool                  `json:"isOpen"`
	PricePerDay   float64               `json:"pricePerDay"`
	PricePerMonth map[string]float64    `json:"pricePerMonth,omitempty"`
	Capacity      int                   `json:"capacity"`
	ContactNumber string                `json:"contactNumber,omitempty"`
	Description   string                `json:"description,omitempty"`
	Location      *storeDomain.Location `json:"location,omitempty"`
	Version       int64                 `json:"version"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// StoreService handles store catalogue use cases.
type StoreService struct {
	repo   storeDomain.StoreRepository
	logger *zap.Logger
}

// NewStoreService creates a new StoreService.
func NewStoreService(repo storeDomain.StoreRepository, logger *zap.Logger) *StoreService {
	return &StoreService{repo: repo, logger: logger}
}

// ListStores returns all stores, optionally limited to a city.
func (s *StoreService) ListStores(ctx context.Context, city string) ([]StoreDTO, error) {
	stores, err := s.repo.List(ctx, storeDomain.Filter{City: city})
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	dtos := make([]StoreDTO, len(stores))
	for i, st := range stores {
		dtos[i] = toStoreDTO(st)
	}
	return dtos, nil
}

// GetStore returns a single store.
func (s *StoreService) GetStore(ctx context.Context, storeID uuid.UUID) (*StoreDTO, error) {
	st, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	result := toStoreDTO(st)
	return &result, nil
}

// CreateStore lists a new store owned by the caller.
func (s *StoreService) CreateStore(ctx context.Context, caller Caller, req CreateStoreRequest) (*StoreDTO, error) {
	isOpen := true
	if req.IsOpen != nil {
		isOpen = *req.IsOpen
	}
	capacity := 0
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	st, err := storeDomain.NewStore(caller.UserID, storeDomain.Details{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Pincode:       req.Pincode,
		OwnerName:     req.OwnerName,
		Timings:       req.Timings,
		IsOpen:        isOpen,
		PricePerDay:   req.PricePerDay,
		PricePerMonth: req.PricePerMonth,
		ContactNumber: req.ContactNumber,
		Description:   req.Description,
		Location:      req.Location,
	}, capacity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to save store: %w", err)
	}

	s.logger.Info("store created",
		zap.String("store_id", st.ID().String()),
		zap.String("owner_id", caller.UserID.String()),
		zap.Int("capacity", capacity),
	)

	result := toStoreDTO(st)
	return &result, nil
}

// UpdateStore patches a store on behalf of its owner or an admin.
func (s *StoreService) UpdateStore(ctx context.Context, caller Caller, storeID uuid.UUID, req UpdateStoreRequest) (*StoreDTO, error) {
	st, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !st.IsOwnedBy(caller.UserID) {
		return nil, domain.NewForbiddenError("Forbidden: You do not own this store")
	}

	if err := st.Update(req.apply(st.Details()), req.Capacity); err != nil {
		return nil, err
	}

	st.IncrementVersion()
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("store updated", zap.String("store_id", st.ID().String()))
	result := toStoreDTO(st)
	return &result, nil
}

func toStoreDTO(st *storeDomain.Store) StoreDTO {
	d := st.Details()
	return StoreDTO{
		ID:            st.ID(),
		OwnerID:       st.OwnerID(),
		Name:          d.Name,
		Address:       d.Address,
		City:          d.City,
		Pincode:       d.Pincode,
		OwnerName:     d.OwnerName,
		Timings:       d.Timings,
		IsOpen:        d.IsOpen,
		PricePerDay:   d.PricePerDay,
		PricePerMonth: d.PricePerMonth,
		Capacity:      st.Capacity(),
		ContactNumber: d.ContactNumber,
		Description:   d.Description,
		Location:      d.Location,
		Version:       st.Version(),
		CreatedAt:     st.CreatedAt(),
		UpdatedAt:     st.UpdatedAt(),
	}
}
