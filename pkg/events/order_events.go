package events

import (
	"time"

	"github.com/google/uuid"
)

// OrderCreatedEvent is published once an order and its capacity hold are committed.
type OrderCreatedEvent struct {
	OrderID       uuid.UUID `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	UserID        uuid.UUID `json:"userId"`
	StoreID       uuid.UUID `json:"storeId"`
	BookingType   string    `json:"bookingType"`
	Plan          string    `json:"plan"`
	TotalBags     int       `json:"totalBags"`
	Duration      int       `json:"duration"`
	QuotedPrice   float64   `json:"quotedPrice"`
	TotalAmount   float64   `json:"totalAmount"`
	Currency      string    `json:"currency"`
	PickupDate    time.Time `json:"pickupDate"`
	ReturnDate    time.Time `json:"returnDate"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// OrderUpdatedEvent is published after an admin edit.
type OrderUpdatedEvent struct {
	OrderID       uuid.UUID `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	StoreID       uuid.UUID `json:"storeId"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CapacityDelta int       `json:"capacityDelta"`
	UpdatedBy     uuid.UUID `json:"updatedBy"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// OrderCancelledEvent is published when an order is cancelled and its bags released.
type OrderCancelledEvent struct {
	OrderID      uuid.UUID `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	StoreID      uuid.UUID `json:"storeId"`
	ReleasedBags int       `json:"releasedBags"`
	CancelledBy  uuid.UUID `json:"cancelledBy"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// OrderPaymentRecordedEvent is published after a payment result is applied to an order.
type OrderPaymentRecordedEvent struct {
	OrderID       uuid.UUID `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}
