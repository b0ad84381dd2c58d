package nmea

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Ground speed conversion, knots to km/h.
const knotsToKmh = 1.852

// TimeOfDay is a UTC wall-clock time without a date; the supported sentence
// subset carries no date information.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second float64
}

// Seconds returns the time as seconds since midnight.
func (t TimeOfDay) Seconds() float64 {
	return float64(t.Hour)*3600 + float64(t.Minute)*60 + t.Second
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%04.1f", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// PartialFix holds the fields one successfully decoded sentence contributes.
// Nil means the sentence did not report that field; the aggregate fix must
// leave the corresponding value untouched.
type PartialFix struct {
	Time *TimeOfDay

	Lat *float64
	Lon *float64
	// PositionValid is true only when the sentence carried an actual fix
	// (GGA quality indicator non-zero with usable coordinates).
	PositionValid bool

	SpeedKmh  *float64
	CourseDeg *float64

	AltitudeM *float64
	GeoidSepM *float64

	HDOP       *float64
	VDOP       *float64
	Satellites *int
}

// Decode runs the field decoder for the sentence's kind. Unsupported
// sentences decode to an empty PartialFix with no error; a decode failure
// means the whole sentence is discarded, never a partial field update.
func Decode(s Sentence) (PartialFix, error) {
	switch s.Kind() {
	case PositionFix:
		return decodeGGA(s.Fields)
	case VelocityCourse:
		return decodeVTG(s.Fields)
	case SatelliteInfo:
		return decodeGSA(s.Fields)
	default:
		return PartialFix{}, nil
	}
}

// GGA: Global Positioning System Fix Data
// Fields (after the identifier):
//
//	 0: time (hhmmss.sss)
//	 1: latitude (ddmm.mmmm)
//	 2: N/S
//	 3: longitude (dddmm.mmmm)
//	 4: E/W
//	 5: fix quality (0 = no fix)
//	 6: satellites in use
//	 7: HDOP
//	 8: altitude MSL
//	 9: altitude units (M)
//	10: geoid separation
//	11: separation units (M)
//	12: DGPS age (optional)
//	13: DGPS station (optional)
const minGGAFields = 12

func decodeGGA(f []string) (PartialFix, error) {
	if len(f) < minGGAFields {
		return PartialFix{}, &FieldCountError{Kind: PositionFix, Want: minGGAFields, Got: len(f)}
	}

	var out PartialFix
	t, err := parseTimeField(PositionFix, 0, f[0])
	if err != nil {
		return PartialFix{}, err
	}
	out.Time = t

	quality, err := parseOptInt(PositionFix, 5, f[5])
	if err != nil {
		return PartialFix{}, err
	}
	if out.Satellites, err = parseOptInt(PositionFix, 6, f[6]); err != nil {
		return PartialFix{}, err
	}
	if out.HDOP, err = parseOptFloat(PositionFix, 7, f[7]); err != nil {
		return PartialFix{}, err
	}
	if out.AltitudeM, err = parseOptFloat(PositionFix, 8, f[8]); err != nil {
		return PartialFix{}, err
	}
	if out.GeoidSepM, err = parseOptFloat(PositionFix, 10, f[10]); err != nil {
		return PartialFix{}, err
	}

	// Quality 0 is a valid sentence that simply carries no fix; the receiver
	// leaves the coordinate fields empty in that state.
	if quality == nil || *quality == 0 {
		return out, nil
	}

	lat, err := parseCoord(PositionFix, 1, f[1], f[2])
	if err != nil {
		return PartialFix{}, err
	}
	lon, err := parseCoord(PositionFix, 3, f[3], f[4])
	if err != nil {
		return PartialFix{}, err
	}
	out.Lat = &lat
	out.Lon = &lon
	out.PositionValid = true
	return out, nil
}

// VTG: Course Over Ground and Ground Speed
// Fields:
//
//	0: course over ground, true (degrees)
//	1: 'T'
//	2: course over ground, magnetic
//	3: 'M'
//	4: speed over ground (knots)
//	5: 'N'
//	6: speed over ground (km/h)
//	7: 'K'
//	8: FAA mode indicator (optional; 'N' = data not valid)
const minVTGFields = 6

func decodeVTG(f []string) (PartialFix, error) {
	if len(f) < minVTGFields {
		return PartialFix{}, &FieldCountError{Kind: VelocityCourse, Want: minVTGFields, Got: len(f)}
	}

	course, err := parseOptFloat(VelocityCourse, 0, f[0])
	if err != nil {
		return PartialFix{}, err
	}
	knots, err := parseOptFloat(VelocityCourse, 4, f[4])
	if err != nil {
		return PartialFix{}, err
	}

	// NMEA 2.3 mode indicator 'N' marks the whole sentence as not valid;
	// the numeric fields may still look plausible and must be ignored.
	if len(f) > 8 && strings.TrimSpace(f[8]) == "N" {
		return PartialFix{}, nil
	}

	var out PartialFix
	out.CourseDeg = course
	if knots != nil {
		kmh := *knots * knotsToKmh
		out.SpeedKmh = &kmh
	}
	return out, nil
}

// GSA: GNSS DOP and Active Satellites
// Fields:
//
//	 0: selection mode (A/M)
//	 1: fix type (1 = none, 2 = 2D, 3 = 3D)
//	 2..13: IDs of satellites used in fix (blank when unused)
//	14: PDOP
//	15: HDOP
//	16: VDOP
//
// Receivers differ in how many trailing fields they emit, so everything
// past the fix type is optional.
const minGSAFields = 2

func decodeGSA(f []string) (PartialFix, error) {
	if len(f) < minGSAFields {
		return PartialFix{}, &FieldCountError{Kind: SatelliteInfo, Want: minGSAFields, Got: len(f)}
	}

	var out PartialFix
	used := 0
	for i := 2; i < len(f) && i < 14; i++ {
		if strings.TrimSpace(f[i]) != "" {
			used++
		}
	}
	if len(f) > 2 {
		out.Satellites = &used
	}

	var err error
	if len(f) > 15 {
		if out.HDOP, err = parseOptFloat(SatelliteInfo, 15, f[15]); err != nil {
			return PartialFix{}, err
		}
	}
	if len(f) > 16 {
		if out.VDOP, err = parseOptFloat(SatelliteInfo, 16, f[16]); err != nil {
			return PartialFix{}, err
		}
	}
	return out, nil
}

// parseCoord converts an NMEA ddmm.mmmm (latitude) or dddmm.mmmm (longitude)
// value plus hemisphere letter into signed decimal degrees.
func parseCoord(kind Kind, index int, v, hemi string) (float64, error) {
	v = strings.TrimSpace(v)
	hemi = strings.TrimSpace(strings.ToUpper(hemi))
	if v == "" {
		return 0, &FieldFormatError{Kind: kind, Index: index, Value: v}
	}
	if hemi != "N" && hemi != "S" && hemi != "E" && hemi != "W" {
		return 0, &FieldFormatError{Kind: kind, Index: index + 1, Value: hemi}
	}

	// The final two digits of the integer part are whole minutes.
	dot := strings.IndexByte(v, '.')
	intPart := v
	if dot != -1 {
		intPart = v[:dot]
	}
	if len(intPart) < 3 {
		return 0, &FieldFormatError{Kind: kind, Index: index, Value: v}
	}

	deg, err := strconv.Atoi(intPart[:len(intPart)-2])
	if err != nil {
		return 0, &FieldFormatError{Kind: kind, Index: index, Value: v}
	}
	mins, err := strconv.ParseFloat(v[len(intPart)-2:], 64)
	if err != nil || mins >= 60 {
		return 0, &FieldFormatError{Kind: kind, Index: index, Value: v}
	}

	dec := float64(deg) + mins/60.0
	if hemi == "S" || hemi == "W" {
		dec = -dec
	}
	return dec, nil
}

// parseTimeField parses hhmmss or hhmmss.sss. An empty field means the
// receiver has no time yet and yields nil.
func parseTimeField(kind Kind, index int, v string) (*TimeOfDay, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	dot := strings.IndexByte(v, '.')
	intPart := v
	if dot != -1 {
		intPart = v[:dot]
	}
	if len(intPart) != 6 {
		return nil, &FieldFormatError{Kind: kind, Index: index, Value: v}
	}
	h, err1 := strconv.Atoi(intPart[0:2])
	m, err2 := strconv.Atoi(intPart[2:4])
	s, err3 := strconv.ParseFloat(v[4:], 64)
	if err1 != nil || err2 != nil || err3 != nil || h > 23 || m > 59 || s >= 61 {
		return nil, &FieldFormatError{Kind: kind, Index: index, Value: v}
	}
	return &TimeOfDay{Hour: h, Minute: m, Second: s}, nil
}

func parseOptFloat(kind Kind, index int, v string) (*float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, &FieldFormatError{Kind: kind, Index: index, Value: v}
	}
	return &f, nil
}

func parseOptInt(kind Kind, index int, v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, &FieldFormatError{Kind: kind, Index: index, Value: v}
	}
	return &n, nil
}
