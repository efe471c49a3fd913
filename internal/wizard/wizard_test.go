package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	"github.com/Stashly-Luggage/service-storage/internal/geo"
	"github.com/Stashly-Luggage/service-storage/pkg/dto"
)

type recordingSubmitter struct {
	keys     []string
	requests []application.CreateOrderRequest
	errs     []error
}

func (r *recordingSubmitter) submit(_ context.Context, key string, req application.CreateOrderRequest) (*application.OrderDTO, error) {
	r.keys = append(r.keys, key)
	r.requests = append(r.requests, req)
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &application.OrderDTO{ID: uuid.New(), OrderNumber: "LG-ABC234", Status: "pending"}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newWizard(sub *recordingSubmitter, distance geo.DistanceProvider) *Wizard {
	return New(Config{
		StoreID:       uuid.MustParse("6f1c1b7e-3c1a-4d7e-9a55-0a8f4c1d2e3f"),
		StoreLocation: &storeDomain.Location{Latitude: 12.9756, Longitude: 77.6050},
		Pricing:       orderDomain.NewStandardPricingStrategy(orderDomain.DefaultRateCard()),
		Distance:      distance,
		FallbackKm:    3.5,
		Submit:        sub.submit,
		Now:           func() time.Time { return time.Date(2024, 1, 1, 8, 15, 0, 0, time.UTC) },
	})
}

func fillContact(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.SetContact(dto.CustomerDTO{FirstName: "Asha", Email: "asha@example.com", PhoneNumber: "9999999999"}, true))
}

func TestWizard_DailyRoundTrip(t *testing.T) {
	sub := &recordingSubmitter{}
	w := newWizard(sub, geo.HaversineProvider{})
	assert.Equal(t, StateContactInfo, w.State())
	assert.Equal(t, "9:00 AM", w.Selection().DropOffTime())

	fillContact(t, w)
	require.NoError(t, w.Next())
	assert.Equal(t, StateBookingDetails, w.State())

	require.NoError(t, w.SetBagCount(1))
	require.NoError(t, w.SelectDropOff(date(2024, 1, 1)))
	require.NoError(t, w.SelectPickUp(date(2024, 1, 3)))
	require.NoError(t, w.Next())
	assert.Equal(t, StateReview, w.State())

	assert.Equal(t, 2, w.Days())
	q, err := w.Quote()
	require.NoError(t, err)
	assert.Equal(t, int64(250), q.GrandTotal)

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StateConfirmed, w.State())
	assert.Equal(t, "LG-ABC234", w.Order().OrderNumber)

	require.Len(t, sub.requests, 1)
	req := sub.requests[0]
	assert.Equal(t, "self", req.BookingType)
	assert.Equal(t, "daily", req.Plan)
	assert.Equal(t, "2024-01-01", req.PickupDate)
	assert.Equal(t, "2024-01-03", req.ReturnDate)
	assert.Equal(t, "9:00 AM", req.PickupTime)
	assert.Equal(t, "10:00 AM", req.ReturnTime)
	assert.Equal(t, 250.0, *req.TotalAmount)
	assert.Equal(t, 1, req.Luggage.Count())
	assert.False(t, req.Luggage.Itemized())
	assert.Nil(t, req.Address)
	assert.True(t, req.ReceiveUpdates)

	assert.ErrorIs(t, w.SetBagCount(3), ErrInvalidTransition, "confirmed bookings are frozen")
}

func TestWizard_ContactGuard(t *testing.T) {
	w := newWizard(&recordingSubmitter{}, nil)

	require.NoError(t, w.SetContact(dto.CustomerDTO{Email: "asha@example.com"}, false))
	assert.ErrorIs(t, w.Next(), ErrIncomplete)
	assert.Equal(t, StateContactInfo, w.State())
	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, w.Submit(context.Background()), ErrInvalidTransition)
}

func TestWizard_DetailsGuard(t *testing.T) {
	w := newWizard(&recordingSubmitter{}, nil)
	fillContact(t, w)
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.Next(), ErrIncomplete, "dates missing")

	require.NoError(t, w.SelectDropOff(date(2024, 1, 5)))
	require.NoError(t, w.SelectPickUp(date(2024, 1, 6)))
	require.NoError(t, w.SetPlan(orderDomain.PlanMonthly))
	assert.ErrorIs(t, w.Next(), ErrIncomplete, "monthly needs sizes")

	require.NoError(t, w.SetBags([]orderDomain.BagSize{orderDomain.BagMedium}, nil))
	assert.ErrorIs(t, w.Next(), ErrIncomplete, "self monthly needs images")

	require.NoError(t, w.SetBags([]orderDomain.BagSize{orderDomain.BagMedium}, []string{"https://cdn/bag.jpg"}))
	require.NoError(t, w.Next())
	assert.Equal(t, StateReview, w.State())

	q, err := w.Quote()
	require.NoError(t, err)
	assert.Equal(t, int64(750), q.Total)

	require.NoError(t, w.Back())
	assert.Equal(t, StateBookingDetails, w.State())
	require.NoError(t, w.Back())
	assert.Equal(t, StateContactInfo, w.State())
}

func TestWizard_PickUpBeforeDropOffIsCleared(t *testing.T) {
	w := newWizard(&recordingSubmitter{}, nil)

	require.NoError(t, w.SelectDropOff(date(2024, 1, 5)))
	require.NoError(t, w.SelectPickUp(date(2024, 1, 8)))
	assert.Error(t, w.SelectPickUp(date(2024, 1, 4)))
	assert.Nil(t, w.Selection().PickUp())
	assert.Equal(t, 1, w.Days())

	q, err := w.Quote()
	require.NoError(t, err)
	assert.Equal(t, int64(150), q.GrandTotal)
}

func TestWizard_PickupSurcharge(t *testing.T) {
	sub := &recordingSubmitter{}
	w := newWizard(sub, geo.StaticProvider{Meters: 10000})
	fillContact(t, w)
	require.NoError(t, w.Next())

	require.NoError(t, w.SetBookingType(orderDomain.BookingPickup))
	require.NoError(t, w.SetBags([]orderDomain.BagSize{orderDomain.BagSmall}, []string{"https://cdn/a.jpg"}))
	require.NoError(t, w.SelectDropOff(date(2024, 1, 2)))
	require.NoError(t, w.SelectPickUp(date(2024, 1, 3)))
	assert.ErrorIs(t, w.Next(), ErrIncomplete, "pickup needs an address")

	q, err := w.Quote()
	require.NoError(t, err)
	assert.Equal(t, int64(255), q.PickupCharge, "fallback distance before a location is set")

	addr := dto.AddressDTO{Address: "HSR Layout", Coordinates: &dto.CoordinatesDTO{Latitude: 12.91, Longitude: 77.64}}
	require.NoError(t, w.SetPickupLocation(context.Background(), addr))
	assert.Equal(t, 10.0, w.PickupKm())

	q, err = w.Quote()
	require.NoError(t, err)
	assert.Equal(t, int64(390), q.PickupCharge)
	assert.Equal(t, int64(100+390), q.Total)

	require.NoError(t, w.Next())
	require.NoError(t, w.Submit(context.Background()))
	req := sub.requests[0]
	assert.Equal(t, "pickup", req.BookingType)
	require.NotNil(t, req.Address)
	assert.Equal(t, "HSR Layout", req.Address.Address)
	assert.True(t, req.Luggage.Itemized())
	assert.Equal(t, 10, req.Luggage.Bags[0].Weight)
}

func TestWizard_DistanceFailureKeepsPreviousCharge(t *testing.T) {
	w := newWizard(&recordingSubmitter{}, geo.StaticProvider{Err: errors.New("no route")})
	require.NoError(t, w.SetBookingType(orderDomain.BookingPickup))

	addr := dto.AddressDTO{Address: "Whitefield", Coordinates: &dto.CoordinatesDTO{Latitude: 12.97, Longitude: 77.75}}
	assert.Error(t, w.SetPickupLocation(context.Background(), addr))
	assert.Equal(t, 3.5, w.PickupKm())
}

func TestWizard_FailedThenRetry(t *testing.T) {
	sub := &recordingSubmitter{errs: []error{errors.New("Not enough storage capacity")}}
	w := newWizard(sub, nil)
	fillContact(t, w)
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectDropOff(date(2024, 1, 1)))
	require.NoError(t, w.SelectPickUp(date(2024, 1, 2)))
	require.NoError(t, w.Next())

	require.Error(t, w.Submit(context.Background()))
	assert.Equal(t, StateFailed, w.State())
	assert.EqualError(t, w.Err(), "Not enough storage capacity")

	require.NoError(t, w.Back())
	assert.Equal(t, StateReview, w.State())
	require.Error(t, w.Retry(context.Background()), "retry only from failed")

	sub.errs = []error{errors.New("timeout")}
	require.Error(t, w.Submit(context.Background()))
	require.NoError(t, w.Retry(context.Background()))
	assert.Equal(t, StateConfirmed, w.State())
	assert.Nil(t, w.Err())

	require.Len(t, sub.keys, 3)
	assert.Equal(t, sub.keys[0], sub.keys[1])
	assert.Equal(t, sub.keys[0], sub.keys[2])
}

func TestState_Transitions(t *testing.T) {
	assert.True(t, StateReview.CanTransitionTo(StateSubmitting))
	assert.True(t, StateFailed.CanTransitionTo(StateReview))
	assert.False(t, StateContactInfo.CanTransitionTo(StateReview))
	assert.False(t, StateConfirmed.CanTransitionTo(StateReview))
	assert.True(t, StateConfirmed.IsTerminal())
}
