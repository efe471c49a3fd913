package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/Stashly-Luggage/service-storage/internal/domain/schedule"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/dto"
)

const orderNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Payment is the settlement record of an order.
type Payment struct {
	Method        string        `json:"paymentMethod,omitempty"`
	Status        PaymentStatus `json:"paymentStatus"`
	TransactionID string        `json:"transactionId,omitempty"`
	PaidAt        *time.Time    `json:"paymentDate,omitempty"`
}

// Order is the aggregate root for a luggage storage booking.
type Order struct {
	id          uuid.UUID
	orderNumber string
	userID      uuid.UUID
	storeID     uuid.UUID
	bookingType BookingType
	plan        Plan
	luggage     Luggage
	duration    int

	price        float64
	pickupCharge float64
	discount     float64
	totalAmount  float64
	currency     string

	status OrderStatus

	pickupDate time.Time
	pickupTime string
	returnDate time.Time
	returnTime string

	pickupAddress  *dto.AddressDTO
	customer       dto.CustomerDTO
	receiveUpdates bool

	payment        Payment
	idempotencyKey string
	cancelledAt    *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewOrderParams holds the inputs of NewOrder.
type NewOrderParams struct {
	UserID         uuid.UUID
	StoreID        uuid.UUID
	BookingType    BookingType
	Plan           Plan
	Luggage        Luggage
	Duration       int
	Quote          Quote
	TotalAmount    float64
	Discount       float64
	PickupDate     time.Time
	PickupTime     string
	ReturnDate     time.Time
	ReturnTime     string
	PickupAddress  *dto.AddressDTO
	Customer       dto.CustomerDTO
	ReceiveUpdates bool
	PaymentMethod  string
	IdempotencyKey string
}

// generateOrderNumber creates an order number in the format "LG-XXXXXX".
func generateOrderNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate order number: %w", err)
		}
		result[i] = orderNumberChars[n.Int64()]
	}
	return "LG-" + string(result), nil
}

// NewOrder creates a new pending Order.
func NewOrder(p NewOrderParams) (*Order, error) {
	if p.UserID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if p.StoreID == uuid.Nil {
		return nil, domain.NewValidationError("store ID is required")
	}
	if !p.BookingType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid booking type: %s", p.BookingType))
	}
	if !p.Plan.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid plan: %s", p.Plan))
	}
	if err := p.Luggage.Validate(p.BookingType, p.Plan); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if p.Duration < 1 {
		return nil, domain.NewValidationError("duration must be at least one day")
	}
	if err := validateSlots(p.PickupDate, p.PickupTime, p.ReturnDate, p.ReturnTime); err != nil {
		return nil, err
	}
	if p.BookingType == BookingPickup && (p.PickupAddress == nil || p.PickupAddress.Address == "") {
		return nil, domain.NewValidationError("pickup address is required for pickup bookings")
	}
	if p.TotalAmount < 0 || p.Discount < 0 {
		return nil, domain.NewValidationError("amounts cannot be negative")
	}

	number, err := generateOrderNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		id:             uuid.New(),
		orderNumber:    number,
		userID:         p.UserID,
		storeID:        p.StoreID,
		bookingType:    p.BookingType,
		plan:           p.Plan,
		luggage:        p.Luggage.Normalized(),
		duration:       p.Duration,
		price:          float64(p.Quote.Total),
		pickupCharge:   float64(p.Quote.PickupCharge),
		discount:       p.Discount,
		totalAmount:    p.TotalAmount,
		currency:       domain.CurrencyINR,
		status:         StatusPending,
		pickupDate:     p.PickupDate,
		pickupTime:     p.PickupTime,
		returnDate:     p.ReturnDate,
		returnTime:     p.ReturnTime,
		pickupAddress:  p.PickupAddress,
		customer:       p.Customer,
		receiveUpdates: p.ReceiveUpdates,
		payment:        Payment{Method: p.PaymentMethod, Status: PaymentPending},
		idempotencyKey: p.IdempotencyKey,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructParams holds persisted Order state.
type ReconstructParams struct {
	ID             uuid.UUID
	OrderNumber    string
	UserID         uuid.UUID
	StoreID        uuid.UUID
	BookingType    BookingType
	Plan           Plan
	Luggage        Luggage
	Duration       int
	Price          float64
	PickupCharge   float64
	Discount       float64
	TotalAmount    float64
	Currency       string
	Status         OrderStatus
	PickupDate     time.Time
	PickupTime     string
	ReturnDate     time.Time
	ReturnTime     string
	PickupAddress  *dto.AddressDTO
	Customer       dto.CustomerDTO
	ReceiveUpdates bool
	Payment        Payment
	IdempotencyKey string
	CancelledAt    *time.Time
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructOrder rebuilds an Order from persistence data (no validation).
func ReconstructOrder(p ReconstructParams) *Order {
	return &Order{
		id:             p.ID,
		orderNumber:    p.OrderNumber,
		userID:         p.UserID,
		storeID:        p.StoreID,
		bookingType:    p.BookingType,
		plan:           p.Plan,
		luggage:        p.Luggage,
		duration:       p.Duration,
		price:          p.Price,
		pickupCharge:   p.PickupCharge,
		discount:       p.Discount,
		totalAmount:    p.TotalAmount,
		currency:       p.Currency,
		status:         p.Status,
		pickupDate:     p.PickupDate,
		pickupTime:     p.PickupTime,
		returnDate:     p.ReturnDate,
		returnTime:     p.ReturnTime,
		pickupAddress:  p.PickupAddress,
		customer:       p.Customer,
		receiveUpdates: p.ReceiveUpdates,
		payment:        p.Payment,
		idempotencyKey: p.IdempotencyKey,
		cancelledAt:    p.CancelledAt,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

// --- Getters ---

func (o *Order) ID() uuid.UUID                 { return o.id }
func (o *Order) OrderNumber() string           { return o.orderNumber }
func (o *Order) UserID() uuid.UUID             { return o.userID }
func (o *Order) StoreID() uuid.UUID            { return o.storeID }
func (o *Order) BookingType() BookingType      { return o.bookingType }
func (o *Order) Plan() Plan                    { return o.plan }
func (o *Order) Luggage() Luggage              { return o.luggage }
func (o *Order) Duration() int                 { return o.duration }
func (o *Order) Price() float64                { return o.price }
func (o *Order) PickupCharge() float64         { return o.pickupCharge }
func (o *Order) Discount() float64             { return o.discount }
func (o *Order) TotalAmount() float64          { return o.totalAmount }
func (o *Order) Currency() string              { return o.currency }
func (o *Order) Status() OrderStatus           { return o.status }
func (o *Order) PickupDate() time.Time         { return o.pickupDate }
func (o *Order) PickupTime() string            { return o.pickupTime }
func (o *Order) ReturnDate() time.Time         { return o.returnDate }
func (o *Order) ReturnTime() string            { return o.returnTime }
func (o *Order) PickupAddress() *dto.AddressDTO { return o.pickupAddress }
func (o *Order) Customer() dto.CustomerDTO     { return o.customer }
func (o *Order) ReceiveUpdates() bool          { return o.receiveUpdates }
func (o *Order) Payment() Payment              { return o.payment }
func (o *Order) IdempotencyKey() string        { return o.idempotencyKey }
func (o *Order) CancelledAt() *time.Time       { return o.cancelledAt }
func (o *Order) Version() int64                { return o.version }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) UpdatedAt() time.Time          { return o.updatedAt }

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID uuid.UUID) bool { return o.userID == userID }

// HeldCapacity is the number of store slots the order occupies: its bag
// count while active, zero once completed or cancelled.
func (o *Order) HeldCapacity() int {
	if o.status.IsTerminal() {
		return 0
	}
	return o.luggage.Count()
}

// --- Behavior ---

// Cancel moves the order to cancelled. The returned delta is the capacity
// change the store must apply (negative: bags released).
func (o *Order) Cancel() (int, error) {
	if !o.status.CanBeCancelled() {
		return 0, domain.NewInvalidStateError(string(o.status), string(StatusCancelled))
	}
	before := o.HeldCapacity()
	now := time.Now().UTC()
	o.status = StatusCancelled
	o.cancelledAt = &now
	o.updatedAt = now
	return o.HeldCapacity() - before, nil
}

// RecordPayment marks the payment completed and confirms a pending order.
// Replaying the same transaction is a no-op.
func (o *Order) RecordPayment(method, transactionID string, paidAt time.Time) error {
	if o.payment.Status == PaymentCompleted && o.payment.TransactionID == transactionID {
		return nil
	}
	if o.status == StatusCancelled {
		return domain.NewInvalidStateError(string(o.status), "paid")
	}
	paid := paidAt.UTC()
	o.payment = Payment{
		Method:        method,
		Status:        PaymentCompleted,
		TransactionID: transactionID,
		PaidAt:        &paid,
	}
	if o.status == StatusPending {
		o.status = StatusConfirmed
	}
	o.updatedAt = time.Now().UTC()
	return nil
}

// RecordPaymentFailure marks the payment failed. The order itself stays pending.
func (o *Order) RecordPaymentFailure(method string) {
	if o.payment.Status == PaymentCompleted {
		return
	}
	if method != "" {
		o.payment.Method = method
	}
	o.payment.Status = PaymentFailed
	o.updatedAt = time.Now().UTC()
}

// IncrementVersion bumps the version for optimistic locking.
func (o *Order) IncrementVersion() {
	o.version++
	o.updatedAt = time.Now().UTC()
}

func validateSlots(pickupDate time.Time, pickupTime string, returnDate time.Time, returnTime string) error {
	if pickupDate.IsZero() || returnDate.IsZero() {
		return domain.NewValidationError("pickup and return dates are required")
	}
	if !schedule.IsValidSlot(pickupTime) {
		return domain.NewValidationError(fmt.Sprintf("invalid pickup time: %q", pickupTime))
	}
	if !schedule.IsValidSlot(returnTime) {
		return domain.NewValidationError(fmt.Sprintf("invalid return time: %q", returnTime))
	}
	if returnDate.Before(schedule.StartOfDay(pickupDate)) {
		return domain.NewValidationError(schedule.ErrPickUpBeforeDropOff.Error())
	}
	return nil
}
