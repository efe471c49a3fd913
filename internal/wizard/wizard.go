// Package wizard drives a booking from contact details to a placed order.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	"github.com/Stashly-Luggage/service-storage/internal/domain/schedule"
	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	"github.com/Stashly-Luggage/service-storage/internal/geo"
	"github.com/Stashly-Luggage/service-storage/pkg/dto"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed in the current state.
	ErrInvalidTransition = errors.New("wizard: action not allowed in current state")
	// ErrIncomplete is wrapped by guard failures; the message names the missing input.
	ErrIncomplete = errors.New("wizard: step incomplete")
)

// Submitter places the order. The idempotency key is stable for the life
// of a wizard so a retried submission never books twice.
type Submitter func(ctx context.Context, idempotencyKey string, req application.CreateOrderRequest) (*application.OrderDTO, error)

// Config configures a Wizard.
type Config struct {
	StoreID       uuid.UUID
	StoreLocation *storeDomain.Location
	Pricing       orderDomain.PricingStrategy
	Distance      geo.DistanceProvider
	// FallbackKm is charged for pickups when a location is unknown.
	FallbackKm float64
	Submit     Submitter
	// Now defaults to time.Now.
	Now func() time.Time
}

// Wizard is one customer's booking in progress.
type Wizard struct {
	cfg   Config
	state State

	contact        dto.CustomerDTO
	receiveUpdates bool
	bookingType    orderDomain.BookingType
	plan           orderDomain.Plan
	bagCount       int
	bagSizes       []orderDomain.BagSize
	bagImages      []string
	selection      *schedule.Selection
	address        *dto.AddressDTO
	pickupKm       float64

	idempotencyKey string
	order          *application.OrderDTO
	lastErr        error
}

// New starts a wizard at the contact step with a self drop-off, daily plan and one bag.
func New(cfg Config) *Wizard {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Wizard{
		cfg:            cfg,
		state:          StateContactInfo,
		bookingType:    orderDomain.BookingSelf,
		plan:           orderDomain.PlanDaily,
		bagCount:       1,
		selection:      schedule.NewSelection(schedule.NewValidatorAt(cfg.Now)),
		pickupKm:       cfg.FallbackKm,
		idempotencyKey: uuid.NewString(),
	}
}

func (w *Wizard) State() State                         { return w.state }
func (w *Wizard) Selection() *schedule.Selection       { return w.selection }
func (w *Wizard) Order() *application.OrderDTO         { return w.order }
func (w *Wizard) Err() error                           { return w.lastErr }
func (w *Wizard) PickupKm() float64                    { return w.pickupKm }
func (w *Wizard) BookingType() orderDomain.BookingType { return w.bookingType }

// Days is the billable duration of the chosen dates.
func (w *Wizard) Days() int { return w.selection.Days() }

// --- Inputs ---

// SetContact records the customer's contact details.
func (w *Wizard) SetContact(c dto.CustomerDTO, receiveUpdates bool) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.contact = c
	w.receiveUpdates = receiveUpdates
	return nil
}

// SetBookingType switches between self drop-off and doorstep pickup.
func (w *Wizard) SetBookingType(t orderDomain.BookingType) error {
	if err := w.editable(); err != nil {
		return err
	}
	if !t.IsValid() {
		return fmt.Errorf("invalid booking type: %s", t)
	}
	w.bookingType = t
	return nil
}

// SetPlan switches the billing plan.
func (w *Wizard) SetPlan(p orderDomain.Plan) error {
	if err := w.editable(); err != nil {
		return err
	}
	if !p.IsValid() {
		return fmt.Errorf("invalid plan: %s", p)
	}
	w.plan = p
	return nil
}

// SetBagCount sets the number of bags for count-only bookings.
func (w *Wizard) SetBagCount(n int) error {
	if err := w.editable(); err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("at least one bag is required")
	}
	w.bagCount = n
	return nil
}

// SetBags itemizes the bags. images may be shorter than sizes until uploads finish.
func (w *Wizard) SetBags(sizes []orderDomain.BagSize, images []string) error {
	if err := w.editable(); err != nil {
		return err
	}
	for _, s := range sizes {
		if !s.IsValid() {
			return fmt.Errorf("invalid bag size: %s", s)
		}
	}
	w.bagSizes = append([]orderDomain.BagSize(nil), sizes...)
	w.bagImages = append([]string(nil), images...)
	if len(sizes) > 0 {
		w.bagCount = len(sizes)
	}
	return nil
}

// SetPickupLocation records the doorstep address and recomputes the trip
// distance. Without coordinates on either end the fallback distance is used.
// On a lookup failure the previous distance is kept.
func (w *Wizard) SetPickupLocation(ctx context.Context, addr dto.AddressDTO) error {
	if err := w.editable(); err != nil {
		return err
	}
	km := w.cfg.FallbackKm
	if addr.Coordinates != nil && w.cfg.StoreLocation != nil && w.cfg.Distance != nil {
		meters, err := w.cfg.Distance.Distance(ctx,
			geo.Point{Lat: addr.Coordinates.Latitude, Lng: addr.Coordinates.Longitude},
			geo.Point{Lat: w.cfg.StoreLocation.Latitude, Lng: w.cfg.StoreLocation.Longitude},
		)
		if err != nil {
			return fmt.Errorf("distance lookup: %w", err)
		}
		km = geo.Kilometers(meters)
	}
	w.address = &addr
	w.pickupKm = km
	return nil
}

// SelectDropOff, SelectPickUp and the slot setters delegate to the date selection.
func (w *Wizard) SelectDropOff(d time.Time) error {
	if err := w.editable(); err != nil {
		return err
	}
	return w.selection.SelectDropOff(d)
}

func (w *Wizard) SelectPickUp(d time.Time) error {
	if err := w.editable(); err != nil {
		return err
	}
	return w.selection.SelectPickUp(d)
}

func (w *Wizard) SelectDropOffTime(label string) error {
	if err := w.editable(); err != nil {
		return err
	}
	return w.selection.SelectDropOffTime(label)
}

func (w *Wizard) SelectPickupTime(label string) error {
	if err := w.editable(); err != nil {
		return err
	}
	return w.selection.SelectPickupTime(label)
}

// --- Pricing ---

// Quote is the running price for the current inputs. GrandTotal, which
// includes the booking fee, is the amount shown and submitted.
func (w *Wizard) Quote() (orderDomain.Quote, error) {
	var charge int64
	if w.bookingType == orderDomain.BookingPickup {
		charge = orderDomain.PickupCharge(w.pickupKm)
	}
	return w.cfg.Pricing.Calculate(orderDomain.PricingParams{
		Plan:         w.plan,
		BookingType:  w.bookingType,
		NumberOfBags: w.bagCount,
		BagSizes:     w.bagSizes,
		Days:         w.Days(),
		PickupCharge: charge,
	})
}

// --- Transitions ---

// Next advances one step once the current step's inputs are complete.
func (w *Wizard) Next() error {
	switch w.state {
	case StateContactInfo:
		if w.contact.Email == "" || w.contact.PhoneNumber == "" {
			return fmt.Errorf("%w: email and phone number are required", ErrIncomplete)
		}
		return w.transition(StateBookingDetails)
	case StateBookingDetails:
		if err := w.checkDetails(); err != nil {
			return err
		}
		return w.transition(StateReview)
	default:
		return ErrInvalidTransition
	}
}

// Back returns to the previous step. A failed submission goes back to review.
func (w *Wizard) Back() error {
	switch w.state {
	case StateBookingDetails:
		return w.transition(StateContactInfo)
	case StateReview, StateFailed:
		target := StateBookingDetails
		if w.state == StateFailed {
			target = StateReview
		}
		return w.transition(target)
	default:
		return ErrInvalidTransition
	}
}

// Submit places the order from the review step, ending in Confirmed or Failed.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.state != StateReview && w.state != StateFailed {
		return ErrInvalidTransition
	}
	if err := w.checkDetails(); err != nil {
		return err
	}
	req, err := w.Payload()
	if err != nil {
		return err
	}

	if err := w.transition(StateSubmitting); err != nil {
		return err
	}
	order, err := w.cfg.Submit(ctx, w.idempotencyKey, req)
	if err != nil {
		w.lastErr = err
		w.state = StateFailed
		return err
	}
	w.order = order
	w.lastErr = nil
	w.state = StateConfirmed
	return nil
}

// Retry resubmits after a failure with the same idempotency key.
func (w *Wizard) Retry(ctx context.Context) error {
	if w.state != StateFailed {
		return ErrInvalidTransition
	}
	return w.Submit(ctx)
}

// Payload builds the order request from the current inputs.
func (w *Wizard) Payload() (application.CreateOrderRequest, error) {
	quote, err := w.Quote()
	if err != nil {
		return application.CreateOrderRequest{}, err
	}
	total := float64(quote.GrandTotal)
	luggage := w.luggage()

	req := application.CreateOrderRequest{
		StoreID:        w.cfg.StoreID.String(),
		BookingType:    string(w.bookingType),
		Plan:           string(w.plan),
		Luggage:        &luggage,
		PickupTime:     w.selection.DropOffTime(),
		ReturnTime:     w.selection.PickupTime(),
		TotalAmount:    &total,
		CustomerInfo:   w.contact,
		ReceiveUpdates: w.receiveUpdates,
	}
	if d := w.selection.DropOff(); d != nil {
		req.PickupDate = d.Format(time.DateOnly)
	}
	if d := w.selection.PickUp(); d != nil {
		req.ReturnDate = d.Format(time.DateOnly)
	}
	if w.bookingType == orderDomain.BookingPickup {
		req.Address = w.address
	}
	return req, nil
}

func (w *Wizard) luggage() orderDomain.Luggage {
	if orderDomain.RequiresItemized(w.bookingType, w.plan) {
		return orderDomain.NewItemizedLuggage(w.bagSizes, w.bagImages)
	}
	return orderDomain.Luggage{TotalBags: w.bagCount}
}

func (w *Wizard) checkDetails() error {
	if !w.selection.Complete() {
		return fmt.Errorf("%w: drop-off and pick-up dates and times are required", ErrIncomplete)
	}
	if err := w.luggage().Validate(w.bookingType, w.plan); err != nil {
		return fmt.Errorf("%w: %v", ErrIncomplete, err)
	}
	if w.bookingType == orderDomain.BookingPickup && (w.address == nil || w.address.Address == "") {
		return fmt.Errorf("%w: pickup address is required", ErrIncomplete)
	}
	if _, err := w.Quote(); err != nil {
		return fmt.Errorf("%w: %v", ErrIncomplete, err)
	}
	return nil
}

// editable rejects input changes once the booking is being or has been placed.
func (w *Wizard) editable() error {
	if w.state == StateSubmitting || w.state.IsTerminal() {
		return ErrInvalidTransition
	}
	return nil
}

func (w *Wizard) transition(target State) error {
	if !w.state.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	w.state = target
	return nil
}
