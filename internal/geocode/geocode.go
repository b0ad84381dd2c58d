// Package geocode resolves a decoded coordinate to a street address.
//
// The fix pipeline only ever sees the Lookup interface; the Nominatim HTTP
// client is injected when reverse geocoding is enabled and Noop otherwise.
package geocode

import "context"

// Lookup is the reverse-geocoding capability.
type Lookup interface {
	// Reverse returns a display address for the coordinate, or an error
	// when the service is unreachable or knows no address for it.
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// Noop is the disabled implementation: no address, no error.
type Noop struct{}

func (Noop) Reverse(context.Context, float64, float64) (string, error) {
	return "", nil
}
