package order

import "github.com/shopspring/decimal"

var (
	pickupBaseFare   = decimal.NewFromInt(181)
	pickupRateNear   = decimal.RequireFromString("20.9")
	pickupRateFar    = decimal.RequireFromString("14.9")
	pickupNearLimitK = decimal.NewFromInt(10)
)

// PickupCharge returns the doorstep pickup fee in whole rupees for a one-way
// distance in km: ₹181 base, ₹20.9/km for the first 10 km and ₹14.9/km
// beyond, rounded up. Non-positive distances cost nothing.
func PickupCharge(distanceKm float64) int64 {
	if distanceKm <= 0 {
		return 0
	}

	d := decimal.NewFromFloat(distanceKm)
	total := pickupBaseFare
	if d.LessThanOrEqual(pickupNearLimitK) {
		total = total.Add(d.Mul(pickupRateNear))
	} else {
		total = total.
			Add(pickupNearLimitK.Mul(pickupRateNear)).
			Add(d.Sub(pickupNearLimitK).Mul(pickupRateFar))
	}
	return total.Ceil().IntPart()
}
