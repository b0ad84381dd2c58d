package nmea

import (
	"errors"
	"testing"
)

func TestParse_ValidSentence(t *testing.T) {
	line := Format("GPGGA,184700.00,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")
	s, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Talker != "GP" {
		t.Fatalf("talker=%q want GP", s.Talker)
	}
	if s.Type != "GGA" {
		t.Fatalf("type=%q want GGA", s.Type)
	}
	if len(s.Fields) != 14 {
		t.Fatalf("fields=%d want 14", len(s.Fields))
	}
	// Empty trailing fields must survive as empty strings.
	if s.Fields[12] != "" || s.Fields[13] != "" {
		t.Fatalf("expected empty DGPS fields, got %q %q", s.Fields[12], s.Fields[13])
	}
}

func TestParse_TalkerPrefixIgnoredForKind(t *testing.T) {
	for _, talker := range []string{"GP", "GN", "GL"} {
		s, err := Parse(Format(talker + "GGA,,,,,,0,,,,,,,,"))
		if err != nil {
			t.Fatalf("Parse(%s) error: %v", talker, err)
		}
		if s.Kind() != PositionFix {
			t.Fatalf("kind=%v want PositionFix", s.Kind())
		}
	}
}

func TestParse_ChecksumMismatch(t *testing.T) {
	good := Format("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K")
	bad := good[:len(good)-2] + "00"
	_, err := Parse(bad)
	var ck *ChecksumError
	if !errors.As(err, &ck) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
}

func TestParse_Framing(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"missing start", "GPGGA,123519*6A"},
		{"missing terminator", "$GPGGA,123519"},
		{"short checksum", "$GPGGA,123519*6"},
		{"non-hex checksum", "$GPGGA,123519*ZZ"},
		{"short identifier", Format("GP,1,2")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.line)
			var fr *FramingError
			if !errors.As(err, &fr) {
				t.Fatalf("expected FramingError, got %v", err)
			}
		})
	}
}

func TestKind_Unsupported(t *testing.T) {
	s, err := Parse(Format("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Kind() != Unsupported {
		t.Fatalf("kind=%v want Unsupported", s.Kind())
	}
	// Unsupported decodes to an empty contribution, not an error.
	pf, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if pf != (PartialFix{}) {
		t.Fatalf("expected empty PartialFix, got %+v", pf)
	}
}
