package order

import "fmt"

// PricingStrategy defines the interface for calculating order prices.
type PricingStrategy interface {
	// Calculate returns the itemized quote for the given parameters.
	Calculate(params PricingParams) (Quote, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	Plan        Plan
	BookingType BookingType
	// NumberOfBags drives the daily plan. Zero means len(BagSizes).
	NumberOfBags int
	// BagSizes drives the monthly plan.
	BagSizes []BagSize
	Days     int
	// PickupCharge is the distance surcharge; it is ignored unless BookingType is pickup.
	PickupCharge int64
}

// QuoteItem is one line of a quote.
type QuoteItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Amount      int64  `json:"amount"`
}

// Quote is a computed price in whole rupees.
type Quote struct {
	Plan         Plan        `json:"plan"`
	Days         int         `json:"days"`
	Bags         int         `json:"bags"`
	Items        []QuoteItem `json:"items"`
	BasePrice    int64       `json:"basePrice"`
	PickupCharge int64       `json:"pickupCharge"`
	// Total is the plan price plus the pickup charge.
	Total int64 `json:"total"`
	// BookingFee is the platform fee shown at checkout on top of Total.
	BookingFee int64 `json:"bookingFee"`
	GrandTotal int64 `json:"grandTotal"`
}

// RateCard holds the platform prices in whole rupees.
type RateCard struct {
	DailyPerBag  int64
	MonthlyTiers map[BagSize]int64
	BookingFee   int64
}

// DefaultRateCard returns the standard prices: ₹100 per bag per day,
// ₹500/750/1000 per small/medium/large bag per 30-day block and a ₹50 booking fee.
func DefaultRateCard() RateCard {
	return RateCard{
		DailyPerBag: 100,
		MonthlyTiers: map[BagSize]int64{
			BagSmall:  500,
			BagMedium: 750,
			BagLarge:  1000,
		},
		BookingFee: 50,
	}
}

// StandardPricingStrategy implements the platform pricing rules over a rate card.
type StandardPricingStrategy struct {
	rates RateCard
}

// NewStandardPricingStrategy creates a StandardPricingStrategy with the given rates.
func NewStandardPricingStrategy(rates RateCard) *StandardPricingStrategy {
	return &StandardPricingStrategy{rates: rates}
}

// Calculate computes the quote.
//
// Pricing formula:
//   - Daily: bags * daily rate * days, regardless of size
//   - Monthly: per bag, ceil(days/30) * tier rate of its size
//   - Pickup bookings add the distance surcharge
func (s *StandardPricingStrategy) Calculate(params PricingParams) (Quote, error) {
	if params.Days < 1 {
		return Quote{}, fmt.Errorf("duration must be at least one day")
	}
	if params.PickupCharge < 0 {
		return Quote{}, fmt.Errorf("pickup charge cannot be negative")
	}
	if params.BookingType != "" && !params.BookingType.IsValid() {
		return Quote{}, fmt.Errorf("unknown booking type: %s", params.BookingType)
	}

	q := Quote{Plan: params.Plan, Days: params.Days, BookingFee: s.rates.BookingFee}

	switch params.Plan {
	case PlanDaily:
		bags := params.NumberOfBags
		if bags == 0 {
			bags = len(params.BagSizes)
		}
		if bags < 1 {
			return Quote{}, fmt.Errorf("at least one bag is required")
		}
		amount := int64(bags) * s.rates.DailyPerBag * int64(params.Days)
		q.Bags = bags
		q.Items = []QuoteItem{{
			Description: fmt.Sprintf("Daily storage, %d day(s)", params.Days),
			Quantity:    bags,
			UnitPrice:   s.rates.DailyPerBag * int64(params.Days),
			Amount:      amount,
		}}
		q.BasePrice = amount

	case PlanMonthly:
		if len(params.BagSizes) == 0 {
			return Quote{}, fmt.Errorf("bag sizes are required for the monthly plan")
		}
		blocks := int64((params.Days + 29) / 30)
		for _, size := range params.BagSizes {
			rate, ok := s.rates.MonthlyTiers[size]
			if !ok {
				return Quote{}, fmt.Errorf("unknown bag size for pricing: %s", size)
			}
			amount := blocks * rate
			q.Items = append(q.Items, QuoteItem{
				Description: fmt.Sprintf("Monthly storage, %s bag, %d month(s)", size, blocks),
				Quantity:    1,
				UnitPrice:   amount,
				Amount:      amount,
			})
			q.BasePrice += amount
		}
		q.Bags = len(params.BagSizes)

	default:
		return Quote{}, fmt.Errorf("unknown plan: %s", params.Plan)
	}

	if params.BookingType == BookingPickup {
		q.PickupCharge = params.PickupCharge
	}
	q.Total = q.BasePrice + q.PickupCharge
	q.GrandTotal = q.Total + q.BookingFee
	return q, nil
}
