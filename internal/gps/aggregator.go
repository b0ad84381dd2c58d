package gps

import (
	"math"

	"neogps/internal/nmea"
)

// Aggregator owns one Fix and merges successfully decoded sentences into it.
// One instance serves one receiver; it is not safe for concurrent use.
type Aggregator struct {
	offsetHours float64
	fix         Fix
}

// NewAggregator returns an empty aggregator. utcOffsetHours is the signed
// (possibly fractional) hour offset applied to UTC for local display time;
// it is fixed for the lifetime of the aggregator.
func NewAggregator(utcOffsetHours float64) *Aggregator {
	return &Aggregator{offsetHours: utcOffsetHours}
}

// Accept runs one raw line through tokenize, classify and decode, then
// merges the result. On any parse error the fix is left exactly as it was;
// the error is informational and never fatal to the aggregator.
func (a *Aggregator) Accept(line string) (UpdateSummary, error) {
	s, err := nmea.Parse(line)
	if err != nil {
		return UpdateSummary{}, err
	}
	kind := s.Kind()
	if kind == nmea.Unsupported {
		return UpdateSummary{Kind: kind}, nil
	}
	pf, err := nmea.Decode(s)
	if err != nil {
		return UpdateSummary{Kind: kind}, err
	}
	return a.merge(kind, pf), nil
}

// Fix returns a snapshot of the current aggregate state.
func (a *Aggregator) Fix() Fix {
	return a.fix
}

// Reset clears the aggregate back to the empty state.
func (a *Aggregator) Reset() {
	a.fix = Fix{}
}

// merge overwrites only the fields the partial fix explicitly supplies.
func (a *Aggregator) merge(kind nmea.Kind, pf nmea.PartialFix) UpdateSummary {
	sum := UpdateSummary{Kind: kind}

	if pf.Time != nil {
		a.fix.UTC = pf.Time
		local := localTime(*pf.Time, a.offsetHours)
		a.fix.Local = &local
		sum.Time = true
	}
	if pf.PositionValid && pf.Lat != nil && pf.Lon != nil {
		a.fix.Lat = pf.Lat
		a.fix.Lon = pf.Lon
		a.fix.Valid = true
		sum.Position = true
	}
	if pf.SpeedKmh != nil {
		a.fix.SpeedKmh = pf.SpeedKmh
		sum.Velocity = true
	}
	if pf.CourseDeg != nil {
		a.fix.CourseDeg = pf.CourseDeg
		sum.Velocity = true
	}
	if pf.AltitudeM != nil {
		a.fix.AltitudeM = pf.AltitudeM
		sum.Altitude = true
	}
	if pf.GeoidSepM != nil {
		a.fix.GeoidSepM = pf.GeoidSepM
		sum.Altitude = true
	}
	if pf.HDOP != nil {
		a.fix.HDOP = pf.HDOP
		sum.Precision = true
	}
	if pf.VDOP != nil {
		a.fix.VDOP = pf.VDOP
		sum.Precision = true
	}
	if pf.Satellites != nil {
		a.fix.Satellites = pf.Satellites
		sum.Satellites = true
	}
	return sum
}

// localTime shifts a UTC time-of-day by offsetHours, wrapping at 24 hours.
// The sentence subset carries no date, so rollover is not tracked.
func localTime(t nmea.TimeOfDay, offsetHours float64) nmea.TimeOfDay {
	sec := math.Mod(t.Seconds()+offsetHours*3600, 86400)
	if sec < 0 {
		sec += 86400
	}
	h := int(sec) / 3600
	m := (int(sec) % 3600) / 60
	s := sec - float64(h*3600+m*60)
	return nmea.TimeOfDay{Hour: h, Minute: m, Second: s}
}
