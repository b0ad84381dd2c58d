package gps

import (
	"fmt"
	"strings"
)

// Report renders the fix as the human-readable block printed by the CLI.
// address is the reverse-geocoded location; pass "" when geocoding is
// disabled or failed. Unset fields are omitted rather than shown stale.
func (f Fix) Report(address string) string {
	if !f.Valid {
		if f.Satellites != nil {
			return fmt.Sprintf("GPS not located, connected satellites: %d", *f.Satellites)
		}
		return "GPS not located"
	}

	var b strings.Builder
	if f.Local != nil {
		fmt.Fprintf(&b, "time: %s\n", f.Local)
	}
	if f.Lat != nil && f.Lon != nil {
		fmt.Fprintf(&b, "latitude: %.6f\n", *f.Lat)
		fmt.Fprintf(&b, "longitude: %.6f\n", *f.Lon)
	}
	if f.SpeedKmh != nil {
		fmt.Fprintf(&b, "velocity: %.1f km/h\n", *f.SpeedKmh)
	}
	if f.CourseDeg != nil {
		fmt.Fprintf(&b, "course: %.1f deg\n", *f.CourseDeg)
	}
	if f.AltitudeM != nil {
		fmt.Fprintf(&b, "altitude: %.1f metre(s)\n", *f.AltitudeM)
	}
	if f.GeoidSepM != nil {
		fmt.Fprintf(&b, "geoid separation: %.1f metre(s)\n", *f.GeoidSepM)
	}
	if f.HDOP != nil {
		fmt.Fprintf(&b, "horizontal precision: %.1f metre(s)\n", *f.HDOP)
	}
	if f.Satellites != nil {
		fmt.Fprintf(&b, "number of connected satellites: %d\n", *f.Satellites)
	}
	if address != "" {
		fmt.Fprintf(&b, "location: %s\n", address)
	}
	return strings.TrimRight(b.String(), "\n")
}
