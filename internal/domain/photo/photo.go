package photo

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// PhotoType says when a luggage photo was taken.
type PhotoType string

const (
	PhotoTypeCheckIn  PhotoType = "checkin"
	PhotoTypeCheckOut PhotoType = "checkout"
)

// IsValid returns true if the photo type is recognized.
func (p PhotoType) IsValid() bool {
	return p == PhotoTypeCheckIn || p == PhotoTypeCheckOut
}

// LuggagePhoto records the condition of an order's bags at hand-over.
type LuggagePhoto struct {
	id         uuid.UUID
	orderID    uuid.UUID
	uploadedBy uuid.UUID
	photoType  PhotoType
	photoURL   string
	caption    string
	takenAt    time.Time
	createdAt  time.Time
}

// NewLuggagePhoto creates a photo for an order.
func NewLuggagePhoto(orderID, uploadedBy uuid.UUID, photoType PhotoType, photoURL, caption string) (*LuggagePhoto, error) {
	if !photoType.IsValid() {
		return nil, fmt.Errorf("invalid photo type: %s", photoType)
	}
	u, err := url.Parse(photoURL)
	if photoURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("photo URL must be an http(s) URL")
	}

	now := time.Now().UTC()
	return &LuggagePhoto{
		id:         uuid.New(),
		orderID:    orderID,
		uploadedBy: uploadedBy,
		photoType:  photoType,
		photoURL:   photoURL,
		caption:    caption,
		takenAt:    now,
		createdAt:  now,
	}, nil
}

// Reconstruct rebuilds a LuggagePhoto from persistence.
func Reconstruct(id, orderID, uploadedBy uuid.UUID, photoType PhotoType, photoURL, caption string, takenAt, createdAt time.Time) *LuggagePhoto {
	return &LuggagePhoto{
		id:         id,
		orderID:    orderID,
		uploadedBy: uploadedBy,
		photoType:  photoType,
		photoURL:   photoURL,
		caption:    caption,
		takenAt:    takenAt,
		createdAt:  createdAt,
	}
}

// Getters.
func (p *LuggagePhoto) ID() uuid.UUID         { return p.id }
func (p *LuggagePhoto) OrderID() uuid.UUID    { return p.orderID }
func (p *LuggagePhoto) UploadedBy() uuid.UUID { return p.uploadedBy }
func (p *LuggagePhoto) PhotoType() PhotoType  { return p.photoType }
func (p *LuggagePhoto) PhotoURL() string      { return p.photoURL }
func (p *LuggagePhoto) Caption() string       { return p.caption }
func (p *LuggagePhoto) TakenAt() time.Time    { return p.takenAt }
func (p *LuggagePhoto) CreatedAt() time.Time  { return p.createdAt }
