package gps

import "neogps/internal/nmea"

// Fix is the aggregated telemetry record built up from successive sentences.
// Nil fields have not been reported by any sentence since the last reset;
// they are never backfilled with stale data.
type Fix struct {
	UTC   *nmea.TimeOfDay `json:"utc,omitempty"`
	Local *nmea.TimeOfDay `json:"local,omitempty"`

	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	SpeedKmh  *float64 `json:"speed_kmh,omitempty"`
	CourseDeg *float64 `json:"course_deg,omitempty"`

	AltitudeM *float64 `json:"altitude_m,omitempty"`
	GeoidSepM *float64 `json:"geoid_sep_m,omitempty"`

	HDOP *float64 `json:"hdop,omitempty"`
	VDOP *float64 `json:"vdop,omitempty"`

	Satellites *int `json:"satellites,omitempty"`

	// Valid flips true once at least one sentence carrying an actual
	// position fix has been decoded.
	Valid bool `json:"valid"`
}

// Complete reports whether the fix carries the full set a caller usually
// waits for: time, position, velocity and satellite count.
func (f Fix) Complete() bool {
	return f.Valid &&
		f.UTC != nil &&
		f.Lat != nil && f.Lon != nil &&
		f.SpeedKmh != nil &&
		f.Satellites != nil
}

// UpdateSummary reports which parts of the fix one accepted line changed.
type UpdateSummary struct {
	Kind nmea.Kind

	Time       bool
	Position   bool
	Velocity   bool
	Altitude   bool
	Precision  bool
	Satellites bool
}

// Any reports whether the line changed the fix at all.
func (u UpdateSummary) Any() bool {
	return u.Time || u.Position || u.Velocity || u.Altitude || u.Precision || u.Satellites
}
