package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	"github.com/Stashly-Luggage/service-storage/internal/domain/schedule"
	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	"github.com/Stashly-Luggage/service-storage/internal/geo"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/dto"
)

// QuoteRequest holds the inputs of a price quote.
type QuoteRequest struct {
	StoreID        string                `json:"storeId"`
	Plan           string                `json:"plan"`
	BookingType    string                `json:"bookingType"`
	Bags           []orderDomain.BagSize `json:"bags"`
	NumberOfBags   int                   `json:"numberOfBags"`
	DropOffDate    string                `json:"dropOffDate"`
	PickUpDate     string                `json:"pickUpDate"`
	PickupLocation *dto.CoordinatesDTO   `json:"pickupLocation"`
}

// QuoteDTO is a priced quote.
type QuoteDTO struct {
	orderDomain.Quote
	DistanceKm float64 `json:"distanceKm"`
}

// SlotsDTO lists the bookable hourly slots and today's defaults.
type SlotsDTO struct {
	Slots              []string `json:"slots"`
	NextAvailable      string   `json:"nextAvailable,omitempty"`
	DefaultDropOffDate string   `json:"defaultDropOffDate"`
	DefaultDropOffTime string   `json:"defaultDropOffTime"`
	DefaultPickupTime  string   `json:"defaultPickupTime"`
}

// PricingService prices bookings and resolves pickup surcharges.
type PricingService struct {
	strategy   orderDomain.PricingStrategy
	distance   geo.DistanceProvider
	stores     storeDomain.StoreRepository
	fallbackKm float64
	now        func() time.Time
	logger     *zap.Logger
}

// NewPricingService creates a new PricingService. fallbackKm is charged for
// pickups when either end of the trip has no coordinates.
func NewPricingService(
	strategy orderDomain.PricingStrategy,
	distance geo.DistanceProvider,
	stores storeDomain.StoreRepository,
	fallbackKm float64,
	logger *zap.Logger,
) *PricingService {
	return &PricingService{
		strategy:   strategy,
		distance:   distance,
		stores:     stores,
		fallbackKm: fallbackKm,
		now:        time.Now,
		logger:     logger,
	}
}

// Quote prices a prospective booking.
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*QuoteDTO, error) {
	plan := orderDomain.Plan(defaultString(req.Plan, string(orderDomain.PlanDaily)))
	bookingType := orderDomain.BookingType(defaultString(req.BookingType, string(orderDomain.BookingSelf)))

	days := 1
	if req.DropOffDate != "" && req.PickUpDate != "" {
		dropOff, err := schedule.ParseDate(req.DropOffDate)
		if err != nil {
			return nil, domain.NewValidationError("invalid dropOffDate")
		}
		pickUp, err := schedule.ParseDate(req.PickUpDate)
		if err != nil {
			return nil, domain.NewValidationError("invalid pickUpDate")
		}
		if days, err = schedule.DurationDays(&dropOff, &pickUp); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
	}

	var (
		km     float64
		charge int64
	)
	if bookingType == orderDomain.BookingPickup {
		var st *storeDomain.Store
		if req.StoreID != "" {
			storeID, err := uuid.Parse(req.StoreID)
			if err != nil {
				return nil, domain.NewValidationError("invalid storeId")
			}
			if st, err = s.stores.FindByID(ctx, storeID); err != nil {
				return nil, err
			}
		}
		var err error
		if km, charge, err = s.PickupCharge(ctx, st, req.PickupLocation); err != nil {
			return nil, err
		}
	}

	q, err := s.strategy.Calculate(orderDomain.PricingParams{
		Plan:         plan,
		BookingType:  bookingType,
		NumberOfBags: req.NumberOfBags,
		BagSizes:     req.Bags,
		Days:         days,
		PickupCharge: charge,
	})
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}
	return &QuoteDTO{Quote: q, DistanceKm: km}, nil
}

// Calculate prices params with the configured strategy.
func (s *PricingService) Calculate(params orderDomain.PricingParams) (orderDomain.Quote, error) {
	return s.strategy.Calculate(params)
}

// PickupCharge returns the one-way distance from the customer to the store
// and the surcharge for it. st and from may be nil, in which case the
// fallback distance is used.
func (s *PricingService) PickupCharge(ctx context.Context, st *storeDomain.Store, from *dto.CoordinatesDTO) (float64, int64, error) {
	km := s.fallbackKm
	if st != nil && st.Details().Location != nil && from != nil {
		loc := st.Details().Location
		meters, err := s.distance.Distance(ctx,
			geo.Point{Lat: from.Latitude, Lng: from.Longitude},
			geo.Point{Lat: loc.Latitude, Lng: loc.Longitude},
		)
		if err != nil {
			s.logger.Error("distance lookup failed",
				zap.String("store_id", st.ID().String()),
				zap.Error(err),
			)
			return 0, 0, domain.NewUpstreamError("distance lookup failed", err)
		}
		km = geo.Kilometers(meters)
	}
	return km, orderDomain.PickupCharge(km), nil
}

// Slots returns the slot list and the defaults for the current time.
func (s *PricingService) Slots() SlotsDTO {
	now := s.now()
	d := schedule.DefaultsAt(now)
	next, _ := schedule.NextAvailable(now)
	return SlotsDTO{
		Slots:              append([]string(nil), schedule.Slots...),
		NextAvailable:      next,
		DefaultDropOffDate: d.DropOffDate.Format(time.DateOnly),
		DefaultDropOffTime: d.DropOffTime,
		DefaultPickupTime:  d.PickupTime,
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
