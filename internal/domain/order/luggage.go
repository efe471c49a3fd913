package order

import (
	"encoding/json"
	"fmt"
)

// BookingType is how the bags reach the store.
type BookingType string

const (
	BookingSelf   BookingType = "self"
	BookingPickup BookingType = "pickup"
)

// IsValid returns true if the booking type is recognized.
func (b BookingType) IsValid() bool {
	return b == BookingSelf || b == BookingPickup
}

// Plan is the billing plan of an order.
type Plan string

const (
	PlanDaily   Plan = "daily"
	PlanMonthly Plan = "monthly"
)

// IsValid returns true if the plan is recognized.
func (p Plan) IsValid() bool {
	return p == PlanDaily || p == PlanMonthly
}

// BagSize is the size class of a bag.
type BagSize string

const (
	BagSmall  BagSize = "small"
	BagMedium BagSize = "medium"
	BagLarge  BagSize = "large"
)

// IsValid returns true if the bag size is recognized.
func (s BagSize) IsValid() bool {
	switch s {
	case BagSmall, BagMedium, BagLarge:
		return true
	}
	return false
}

// WeightKg returns the nominal weight recorded for a bag of this size.
func (s BagSize) WeightKg() int {
	switch s {
	case BagSmall:
		return 10
	case BagMedium:
		return 15
	case BagLarge:
		return 20
	default:
		return 0
	}
}

// Bag is one itemized bag.
type Bag struct {
	Size   BagSize `json:"size"`
	Weight int     `json:"weight"`
	Image  string  `json:"image,omitempty"`
}

// Luggage is what the customer stores: either a bare bag count or an
// itemized list. When Bags is non-empty its length is the count.
type Luggage struct {
	TotalBags int   `json:"totalBags"`
	Bags      []Bag `json:"bags,omitempty"`
}

// NewItemizedLuggage builds Luggage from bag sizes and image URLs, filling
// in the nominal weights. images may be shorter than sizes.
func NewItemizedLuggage(sizes []BagSize, images []string) Luggage {
	bags := make([]Bag, len(sizes))
	for i, size := range sizes {
		bags[i] = Bag{Size: size, Weight: size.WeightKg()}
		if i < len(images) {
			bags[i].Image = images[i]
		}
	}
	return Luggage{TotalBags: len(bags), Bags: bags}
}

// UnmarshalJSON accepts a bag array, or an object with totalBags or
// numberOfBags and an optional bags array.
func (l *Luggage) UnmarshalJSON(data []byte) error {
	var bags []Bag
	if err := json.Unmarshal(data, &bags); err == nil {
		*l = Luggage{TotalBags: len(bags), Bags: bags}
		return nil
	}

	var obj struct {
		TotalBags    *int  `json:"totalBags"`
		NumberOfBags *int  `json:"numberOfBags"`
		Bags         []Bag `json:"bags"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("luggage must be a bag list or an object: %w", err)
	}

	out := Luggage{Bags: obj.Bags}
	switch {
	case len(obj.Bags) > 0:
		out.TotalBags = len(obj.Bags)
	case obj.TotalBags != nil:
		out.TotalBags = *obj.TotalBags
	case obj.NumberOfBags != nil:
		out.TotalBags = *obj.NumberOfBags
	}
	*l = out
	return nil
}

// Count returns the number of bags.
func (l Luggage) Count() int {
	if len(l.Bags) > 0 {
		return len(l.Bags)
	}
	return l.TotalBags
}

// Itemized reports whether bag sizes are known.
func (l Luggage) Itemized() bool {
	return len(l.Bags) > 0
}

// Sizes returns the size of each itemized bag.
func (l Luggage) Sizes() []BagSize {
	sizes := make([]BagSize, len(l.Bags))
	for i, b := range l.Bags {
		sizes[i] = b.Size
	}
	return sizes
}

// RequiresImages reports whether every bag must carry a photo: always for
// pickup bookings, and for self drop-off on the monthly plan.
func RequiresImages(bookingType BookingType, plan Plan) bool {
	return bookingType == BookingPickup || (bookingType == BookingSelf && plan == PlanMonthly)
}

// RequiresItemized reports whether bag sizes must be listed. Monthly prices
// depend on size, and images are attached per bag.
func RequiresItemized(bookingType BookingType, plan Plan) bool {
	return plan == PlanMonthly || RequiresImages(bookingType, plan)
}

// Validate checks the luggage against the booking type and plan.
func (l Luggage) Validate(bookingType BookingType, plan Plan) error {
	if l.Count() <= 0 {
		return fmt.Errorf("at least one bag is required")
	}
	if RequiresItemized(bookingType, plan) && !l.Itemized() {
		return fmt.Errorf("bag sizes are required for %s bookings on the %s plan", bookingType, plan)
	}
	needImages := RequiresImages(bookingType, plan)
	for i, b := range l.Bags {
		if !b.Size.IsValid() {
			return fmt.Errorf("bag %d: invalid size %q", i+1, b.Size)
		}
		if needImages && b.Image == "" {
			return fmt.Errorf("bag %d: image is required", i+1)
		}
	}
	return nil
}

// Normalized returns a copy whose TotalBags matches the bag list and whose
// bags without a weight carry their size's nominal weight.
func (l Luggage) Normalized() Luggage {
	if !l.Itemized() {
		return Luggage{TotalBags: l.TotalBags}
	}
	bags := make([]Bag, len(l.Bags))
	for i, b := range l.Bags {
		if b.Weight == 0 {
			b.Weight = b.Size.WeightKg()
		}
		bags[i] = b
	}
	return Luggage{TotalBags: len(bags), Bags: bags}
}
