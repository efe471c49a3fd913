package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	photoDomain "github.com/Stashly-Luggage/service-storage/internal/domain/photo"
	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// UploadPhotoRequest holds the data to attach a luggage photo.
type UploadPhotoRequest struct {
	PhotoType string `json:"photoType" binding:"required"`
	PhotoURL  string `json:"photoUrl" binding:"required"`
	Caption   string `json:"caption"`
}

// PhotoDTO is the API response representation of a luggage photo.
type PhotoDTO struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"orderId"`
	UploadedBy uuid.UUID `json:"uploadedBy"`
	PhotoType  string    `json:"photoType"`
	PhotoURL   string    `json:"photoUrl"`
	Caption    string    `json:"caption"`
	TakenAt    time.Time `json:"takenAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PhotoService handles luggage photo use cases.
type PhotoService struct {
	repo   photoDomain.PhotoRepository
	orders orderDomain.OrderRepository
	stores storeDomain.StoreRepository
	logger *zap.Logger
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(
	repo photoDomain.PhotoRepository,
	orders orderDomain.OrderRepository,
	stores storeDomain.StoreRepository,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{repo: repo, orders: orders, stores: stores, logger: logger}
}

// UploadPhoto records a check-in or check-out photo. Only the owner of the
// order's store or an admin may upload.
func (s *PhotoService) UploadPhoto(ctx context.Context, caller Caller, orderID uuid.UUID, req UploadPhotoRequest) (*PhotoDTO, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	ownsStore, err := s.ownsStore(ctx, caller, o.StoreID())
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !ownsStore {
		return nil, domain.NewForbiddenError("Forbidden: Only the store can upload luggage photos")
	}

	photo, err := photoDomain.NewLuggagePhoto(
		orderID,
		caller.UserID,
		photoDomain.PhotoType(req.PhotoType),
		req.PhotoURL,
		req.Caption,
	)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, photo); err != nil {
		return nil, err
	}

	s.logger.Info("photo uploaded",
		zap.String("order_id", orderID.String()),
		zap.String("photo_type", req.PhotoType),
	)

	return toPhotoDTO(photo), nil
}

// GetOrderPhotos returns the photos of an order to its owner, the store owner or an admin.
func (s *PhotoService) GetOrderPhotos(ctx context.Context, caller Caller, orderID uuid.UUID) ([]*PhotoDTO, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !o.IsOwnedBy(caller.UserID) {
		ownsStore, err := s.ownsStore(ctx, caller, o.StoreID())
		if err != nil {
			return nil, err
		}
		if !ownsStore {
			return nil, domain.NewForbiddenError("Forbidden: You are not authorized to access this order")
		}
	}

	photos, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*PhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = toPhotoDTO(p)
	}
	return dtos, nil
}

func (s *PhotoService) ownsStore(ctx context.Context, caller Caller, storeID uuid.UUID) (bool, error) {
	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return false, err
	}
	return st.IsOwnedBy(caller.UserID), nil
}

func toPhotoDTO(p *photoDomain.LuggagePhoto) *PhotoDTO {
	return &PhotoDTO{
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
