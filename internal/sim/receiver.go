// Package sim generates a deterministic NMEA sentence stream in place of a
// physical receiver, for demos and tests without hardware.
package sim

import (
	"fmt"
	"math"
	"time"

	"neogps/internal/nmea"
)

// Receiver emits GGA, VTG and GSA sentences for a vehicle driving a circle
// around a configured center. It implements gps.LineSource and never runs
// dry; callers bound it with a read budget.
type Receiver struct {
	CenterLatDeg float64
	CenterLonDeg float64
	AltitudeM    float64
	SpeedKmh     float64
	RadiusKm     float64
	Satellites   int
	Period       time.Duration

	// Now is the clock; defaults to time.Now. Tests pin it.
	Now func() time.Time

	seq int
}

func (r *Receiver) defaults() {
	if r.Period <= 0 {
		r.Period = 120 * time.Second
	}
	if r.RadiusKm <= 0 {
		r.RadiusKm = 0.5
	}
	if r.Satellites <= 0 {
		r.Satellites = 8
	}
	if r.Now == nil {
		r.Now = time.Now
	}
}

// Position returns the simulated coordinate and course at the given time.
func (r *Receiver) Position(now time.Time) (latDeg, lonDeg, courseDeg float64) {
	r.defaults()

	// ~111 km per degree of latitude.
	radiusDeg := r.RadiusKm / 111.0
	phase := float64(now.UnixNano()%r.Period.Nanoseconds()) / float64(r.Period.Nanoseconds())
	w := 2 * math.Pi * phase

	latDeg = r.CenterLatDeg + radiusDeg*math.Sin(w)
	lonDeg = r.CenterLonDeg + radiusDeg*math.Cos(w)/math.Cos(r.CenterLatDeg*math.Pi/180)

	// Instantaneous velocity direction as a compass course.
	courseDeg = math.Mod(math.Atan2(-math.Sin(w), math.Cos(w))*180/math.Pi+360, 360)
	return latDeg, lonDeg, courseDeg
}

// NextLine emits the next sentence, cycling GGA, VTG, GSA.
func (r *Receiver) NextLine() (string, bool) {
	r.defaults()

	now := r.Now().UTC()
	lat, lon, course := r.Position(now)

	var payload string
	switch r.seq % 3 {
	case 0:
		payload = r.ggaPayload(now, lat, lon)
	case 1:
		payload = r.vtgPayload(course)
	default:
		payload = r.gsaPayload()
	}
	r.seq++
	return nmea.Format(payload), true
}

func (r *Receiver) ggaPayload(now time.Time, lat, lon float64) string {
	latStr, latHemi := nmea.FormatLat(lat)
	lonStr, lonHemi := nmea.FormatLon(lon)
	return fmt.Sprintf("GPGGA,%s,%s,%s,%s,%s,1,%02d,0.9,%.1f,M,46.9,M,,",
		now.Format("150405.00"), latStr, latHemi, lonStr, lonHemi,
		r.Satellites, r.AltitudeM)
}

func (r *Receiver) vtgPayload(course float64) string {
	knots := r.SpeedKmh / 1.852
	return fmt.Sprintf("GPVTG,%05.1f,T,,M,%05.1f,N,%05.1f,K,A", course, knots, r.SpeedKmh)
}

func (r *Receiver) gsaPayload() string {
	ids := ""
	for i := 0; i < 12; i++ {
		if i < r.Satellites {
			ids += fmt.Sprintf("%02d,", i+1)
		} else {
			ids += ","
		}
	}
	return fmt.Sprintf("GPGSA,A,3,%s2.1,0.9,1.8", ids)
}
