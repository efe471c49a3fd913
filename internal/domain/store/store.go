package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// InsufficientCapacityMessage is reported when a store cannot take more bags.
const InsufficientCapacityMessage = "Not enough storage capacity"

// Location is a store's position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Details are the descriptive, owner-editable fields of a store.
type Details struct {
	Name          string
	Address       string
	City          string
	Pincode       string
	OwnerName     string
	Timings       string
	IsOpen        bool
	PricePerDay   float64
	PricePerMonth map[string]float64
	ContactNumber string
	Description   string
	Location      *Location
}

// Store is the aggregate root for a storage location.
type Store struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	details  Details
	capacity int

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewStore creates a new store with validated fields.
func NewStore(ownerID uuid.UUID, details Details, capacity int) (*Store, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if err := validateDetails(details); err != nil {
		return nil, err
	}
	if capacity < 0 {
		return nil, domain.NewValidationError("capacity cannot be negative")
	}

	now := time.Now().UTC()
	return &Store{
		id:        uuid.New(),
		ownerID:   ownerID,
		details:   details,
		capacity:  capacity,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Store from persistence data (no validation).
func Reconstruct(id, ownerID uuid.UUID, details Details, capacity int, version int64, createdAt, updatedAt time.Time) *Store {
	return &Store{
		id:        id,
		ownerID:   ownerID,
		details:   details,
		capacity:  capacity,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters.
func (s *Store) ID() uuid.UUID        { return s.id }
func (s *Store) OwnerID() uuid.UUID   { return s.ownerID }
func (s *Store) Details() Details     { return s.details }
func (s *Store) Capacity() int        { return s.capacity }
func (s *Store) Version() int64       { return s.version }
func (s *Store) CreatedAt() time.Time { return s.createdAt }
func (s *Store) UpdatedAt() time.Time { return s.updatedAt }

// IsOwnedBy reports whether userID owns the store.
func (s *Store) IsOwnedBy(userID uuid.UUID) bool { return s.ownerID == userID }

// CanAccommodate reports whether bags more bags fit.
func (s *Store) CanAccommodate(bags int) bool {
	return bags >= 0 && s.capacity-bags >= 0
}

// Update replaces the editable fields. A nil capacity leaves it unchanged.
func (s *Store) Update(details Details, capacity *int) error {
	if err := validateDetails(details); err != nil {
		return err
	}
	if capacity != nil {
		if *capacity < 0 {
			return domain.NewValidationError("capacity cannot be negative")
		}
		s.capacity = *capacity
	}
	s.details = details
	s.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (s *Store) IncrementVersion() {
	s.version++
	s.updatedAt = time.Now().UTC()
}

func validateDetails(d Details) error {
	if d.Name == "" {
		return domain.NewValidationError("store name is required")
	}
	if d.Address == "" {
		return domain.NewValidationError("store address is required")
	}
	if d.City == "" {
		return domain.NewValidationError("store city is required")
	}
	if d.PricePerDay < 0 {
		return domain.NewValidationError("price per day cannot be negative")
	}
	for size, price := range d.PricePerMonth {
		if price < 0 {
			return domain.NewValidationError(fmt.Sprintf("monthly price for %s cannot be negative", size))
		}
	}
	if loc := d.Location; loc != nil {
		if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
			return domain.NewValidationError("store coordinates are out of range")
		}
	}
	return nil
}
