package geo

import (
	"context"
	"fmt"
	"math"
)

// Point is a WGS84 position in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Validate checks that the point lies within WGS84 bounds.
func (p Point) Validate() error {
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("coordinates out of range: %f,%f", p.Lat, p.Lng)
	}
	return nil
}

// DistanceProvider returns the travel distance in meters between two points.
type DistanceProvider interface {
	Distance(ctx context.Context, from, to Point) (float64, error)
}

// Kilometers converts meters to kilometers.
func Kilometers(meters float64) float64 {
	return meters / 1000
}

// HaversineProvider computes great-circle distances offline.
type HaversineProvider struct{}

// Distance returns the great-circle distance between from and to in meters.
func (HaversineProvider) Distance(_ context.Context, from, to Point) (float64, error) {
	if err := from.Validate(); err != nil {
		return 0, err
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}
	return haversineKm(from.Lat, from.Lng, to.Lat, to.Lng) * 1000, nil
}

// haversineKm calculates the distance between two coordinates in kilometers.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// StaticProvider always answers with the same distance or error. It stands
// in for a routing service in development and tests.
type StaticProvider struct {
	Meters float64
	Err    error
}

// Distance returns the configured answer.
func (p StaticProvider) Distance(ctx context.Context, _, _ Point) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if p.Err != nil {
		return 0, p.Err
	}
	return p.Meters, nil
}
