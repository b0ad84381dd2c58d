package gps

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"neogps/internal/nmea"
)

const (
	ggaFix   = "GPGGA,184700.00,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"
	ggaNoFix = "GPGGA,110324.00,,,,,0,03,,,,,,,"
	vtgValid = "GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,A"
	vtgVoid  = "GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,N"
	gsaFull  = "GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1"
)

func accept(t *testing.T, a *Aggregator, payload string) UpdateSummary {
	t.Helper()
	sum, err := a.Accept(nmea.Format(payload))
	if err != nil {
		t.Fatalf("Accept(%q) error: %v", payload, err)
	}
	return sum
}

func TestAccept_GGAPopulatesFix(t *testing.T) {
	a := NewAggregator(2)
	sum := accept(t, a, ggaFix)

	if !sum.Time || !sum.Position || !sum.Altitude {
		t.Fatalf("summary=%+v want time+position+altitude", sum)
	}
	fix := a.Fix()
	if !fix.Valid {
		t.Fatalf("expected valid fix")
	}
	if fix.Lat == nil || math.Abs(*fix.Lat-48.1173) > 1e-4 {
		t.Fatalf("lat=%v want ~48.1173", fix.Lat)
	}
	if fix.Lon == nil || math.Abs(*fix.Lon-11.516667) > 1e-4 {
		t.Fatalf("lon=%v want ~11.5167", fix.Lon)
	}
	if fix.AltitudeM == nil || *fix.AltitudeM != 545.4 {
		t.Fatalf("altitude=%v want 545.4", fix.AltitudeM)
	}
	if fix.GeoidSepM == nil || *fix.GeoidSepM != 46.9 {
		t.Fatalf("geoid separation=%v want 46.9", fix.GeoidSepM)
	}
}

func TestAccept_LocalTimeOffset(t *testing.T) {
	cases := []struct {
		name    string
		offset  float64
		payload string
		want    string
	}{
		{"plus two", 2, "GPGGA,085756.00,,,,,0,,,,,,,,", "10:57:56.0"},
		{"minus three wraps", -3, "GPGGA,010000.00,,,,,0,,,,,,,,", "22:00:00.0"},
		{"fractional", 5.5, "GPGGA,120000.00,,,,,0,,,,,,,,", "17:30:00.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAggregator(tc.offset)
			accept(t, a, tc.payload)
			fix := a.Fix()
			if fix.Local == nil {
				t.Fatalf("expected local time")
			}
			if got := fix.Local.String(); got != tc.want {
				t.Fatalf("local=%q want %q", got, tc.want)
			}
		})
	}
}

func TestAccept_ChecksumCorruptionLeavesFixUnchanged(t *testing.T) {
	a := NewAggregator(0)
	accept(t, a, ggaFix)
	before := a.Fix()

	// Flip the last checksum digit.
	good := nmea.Format("GPGGA,190000.00,5000.000,N,00500.000,E,1,09,1.1,100.0,M,40.0,M,,")
	flipped := byte('0')
	if good[len(good)-1] == '0' {
		flipped = '1'
	}
	corrupt := good[:len(good)-1] + string(flipped)

	_, err := a.Accept(corrupt)
	var ck *nmea.ChecksumError
	if !errors.As(err, &ck) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
	if !reflect.DeepEqual(a.Fix(), before) {
		t.Fatalf("fix changed after corrupt line:\nbefore %+v\nafter  %+v", before, a.Fix())
	}
}

func TestAccept_VoidVTGDoesNotTouchVelocity(t *testing.T) {
	a := NewAggregator(0)
	accept(t, a, vtgValid)
	want := *a.Fix().SpeedKmh

	sum := accept(t, a, vtgVoid)
	if sum.Velocity {
		t.Fatalf("void VTG reported a velocity update")
	}
	if got := *a.Fix().SpeedKmh; got != want {
		t.Fatalf("speed=%v want unchanged %v", got, want)
	}
}

func TestAccept_TruncatedGGALeavesFixUntouched(t *testing.T) {
	a := NewAggregator(0)
	accept(t, a, ggaFix)
	before := a.Fix()

	_, err := a.Accept(nmea.Format("GPGGA,184700.00,4807.038,N,01131.000"))
	var fc *nmea.FieldCountError
	if !errors.As(err, &fc) {
		t.Fatalf("expected FieldCountError, got %v", err)
	}
	if !reflect.DeepEqual(a.Fix(), before) {
		t.Fatalf("fix changed after truncated sentence")
	}
}

func TestAccept_MergeAcrossSentenceTypes(t *testing.T) {
	a := NewAggregator(0)
	accept(t, a, ggaFix)
	accept(t, a, vtgValid)
	accept(t, a, gsaFull)

	fix := a.Fix()
	if !fix.Complete() {
		t.Fatalf("expected complete fix, got %+v", fix)
	}
	if fix.SpeedKmh == nil || math.Abs(*fix.SpeedKmh-5.5*1.852) > 1e-6 {
		t.Fatalf("speed=%v want %v", fix.SpeedKmh, 5.5*1.852)
	}
	if fix.VDOP == nil || *fix.VDOP != 2.1 {
		t.Fatalf("vdop=%v want 2.1", fix.VDOP)
	}
	// GSA saw 5 satellites in the solution; it overwrites GGA's count.
	if fix.Satellites == nil || *fix.Satellites != 5 {
		t.Fatalf("satellites=%v want 5", fix.Satellites)
	}
}

func TestAccept_NoFixGGAKeepsPreviousPosition(t *testing.T) {
	a := NewAggregator(0)
	accept(t, a, ggaFix)
	lat := *a.Fix().Lat

	sum := accept(t, a, ggaNoFix)
	if sum.Position {
		t.Fatalf("no-fix GGA reported a position update")
	}
	fix := a.Fix()
	if fix.Lat == nil || *fix.Lat != lat {
		t.Fatalf("previous position lost: %v", fix.Lat)
	}
	if !fix.Valid {
		t.Fatalf("validity must persist across no-fix sentences")
	}
	// Time still advances from the no-fix sentence.
	if fix.UTC == nil || fix.UTC.Hour != 11 {
		t.Fatalf("utc=%+v want 11:03:24", fix.UTC)
	}
}

func TestAccept_UnsupportedSentenceIsNoOp(t *testing.T) {
	a := NewAggregator(0)
	sum, err := a.Accept(nmea.Format("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"))
	if err != nil {
		t.Fatalf("Accept() error: %v", err)
	}
	if sum.Any() {
		t.Fatalf("unsupported sentence changed the fix: %+v", sum)
	}
}

func TestReset(t *testing.T) {
	a := NewAggregator(0)
	accept(t, a, ggaFix)
	a.Reset()
	if a.Fix().Valid || a.Fix().Lat != nil {
		t.Fatalf("expected empty fix after reset")
	}
}
