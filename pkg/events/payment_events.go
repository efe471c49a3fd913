package events

import (
	"time"

	"github.com/google/uuid"
)

// PaymentCapturedEvent reports a successful charge for an order.
type PaymentCapturedEvent struct {
	PaymentID     uuid.UUID `json:"paymentId"`
	OrderID       uuid.UUID `json:"orderId"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaidAt        time.Time `json:"paidAt"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// PaymentFailedEvent reports a declined or errored charge.
type PaymentFailedEvent struct {
	PaymentID  uuid.UUID `json:"paymentId"`
	OrderID    uuid.UUID `json:"orderId"`
	Method     string    `json:"method"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}
