package order

import (
	"fmt"
	"time"

	"github.com/Stashly-Luggage/service-storage/internal/domain/schedule"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// Patch is an admin edit. A nil field is left unchanged; a non-nil field is
// applied even when it holds a zero value.
type Patch struct {
	Luggage       *Luggage
	Duration      *int
	Price         *float64
	Status        *OrderStatus
	PickupDate    *time.Time
	PickupTime    *string
	ReturnDate    *time.Time
	ReturnTime    *string
	PaymentMethod *string
	PaymentStatus *PaymentStatus
	TransactionID *string
	PaymentDate   *time.Time
	Discount      *float64
	TotalAmount   *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply validates and applies p. It returns the change in held capacity the
// store must absorb: positive takes more slots, negative releases them.
// On error the order is left untouched.
func (o *Order) Apply(p Patch) (int, error) {
	next := *o
	before := o.HeldCapacity()

	if p.Status != nil && *p.Status != o.status {
		if !p.Status.IsValid() {
			return 0, domain.NewValidationError(fmt.Sprintf("invalid order status: %s", *p.Status))
		}
		if !o.status.CanTransitionTo(*p.Status) {
			return 0, domain.NewValidationError(fmt.Sprintf("cannot change order status from %s to %s", o.status, *p.Status))
		}
		next.status = *p.Status
		if next.status == StatusCancelled {
			now := time.Now().UTC()
			next.cancelledAt = &now
		}
	}
	if p.Luggage != nil {
		if err := p.Luggage.Validate(o.bookingType, o.plan); err != nil {
			return 0, domain.NewValidationError(err.Error())
		}
		next.luggage = p.Luggage.Normalized()
	}
	if p.Duration != nil {
		if *p.Duration < 1 {
			return 0, domain.NewValidationError("duration must be at least one day")
		}
		next.duration = *p.Duration
	}
	if p.Price != nil {
		next.price = *p.Price
	}
	if p.PickupDate != nil {
		next.pickupDate = *p.PickupDate
	}
	if p.PickupTime != nil {
		next.pickupTime = *p.PickupTime
	}
	if p.ReturnDate != nil {
		next.returnDate = *p.ReturnDate
	}
	if p.ReturnTime != nil {
		next.returnTime = *p.ReturnTime
	}
	if p.PickupDate != nil || p.PickupTime != nil || p.ReturnDate != nil || p.ReturnTime != nil {
		if err := validateSlots(next.pickupDate, next.pickupTime, next.returnDate, next.returnTime); err != nil {
			return 0, err
		}
		if p.Duration == nil {
			days, err := schedule.DurationDays(&next.pickupDate, &next.returnDate)
			if err != nil {
				return 0, domain.NewValidationError(err.Error())
			}
			next.duration = days
		}
	}
	if p.PaymentMethod != nil {
		next.payment.Method = *p.PaymentMethod
	}
	if p.PaymentStatus != nil {
		if !p.PaymentStatus.IsValid() {
			return 0, domain.NewValidationError(fmt.Sprintf("invalid payment status: %s", *p.PaymentStatus))
		}
		next.payment.Status = *p.PaymentStatus
	}
	if p.TransactionID != nil {
		next.payment.TransactionID = *p.TransactionID
	}
	if p.PaymentDate != nil {
		paid := p.PaymentDate.UTC()
		next.payment.PaidAt = &paid
	}
	if p.Discount != nil {
		if *p.Discount < 0 {
			return 0, domain.NewValidationError("discount cannot be negative")
		}
		next.discount = *p.Discount
	}
	if p.TotalAmount != nil {
		if *p.TotalAmount < 0 {
			return 0, domain.NewValidationError("total amount cannot be negative")
		}
		next.totalAmount = *p.TotalAmount
	}

	next.updatedAt = time.Now().UTC()
	*o = next
	return o.HeldCapacity() - before, nil
}
