// Package nmea decodes the NMEA 0183 sentence subset emitted by u-blox
// NEO-6M class GNSS receivers.
//
// The package is pure: it turns one ASCII line into typed fields and never
// touches I/O. Supported sentence types are GGA (position fix), VTG (ground
// velocity and course) and GSA (active satellites and precision). Everything
// else classifies as Unsupported, which callers treat as a no-op rather than
// an error.
package nmea

import (
	"encoding/hex"
	"strings"
)

// Kind is the closed set of sentence classifications.
type Kind int

const (
	Unsupported    Kind = iota
	PositionFix         // GGA
	VelocityCourse      // VTG
	SatelliteInfo       // GSA
)

func (k Kind) String() string {
	switch k {
	case PositionFix:
		return "GGA"
	case VelocityCourse:
		return "VTG"
	case SatelliteInfo:
		return "GSA"
	default:
		return "unsupported"
	}
}

// Sentence is a tokenized NMEA line that passed framing and checksum
// verification.
type Sentence struct {
	// Talker is the device-class prefix of the identifier ("GP", "GN", ...).
	Talker string
	// Type is the 3-character sentence type code ("GGA", "VTG", ...).
	Type string
	// Fields is the comma-split payload after the identifier. Empty strings
	// mean "not reported" and are preserved in place.
	Fields []string
}

// Kind classifies the sentence by its type code alone; the talker prefix
// varies across receiver vendors and is ignored.
func (s Sentence) Kind() Kind {
	switch s.Type {
	case "GGA":
		return PositionFix
	case "VTG":
		return VelocityCourse
	case "GSA":
		return SatelliteInfo
	default:
		return Unsupported
	}
}

// Parse tokenizes one line. The line must start with '$', end with '*' plus
// two hex checksum digits (trailing CR/LF tolerated), and the checksum must
// equal the XOR of all bytes between '$' and '*'.
func Parse(line string) (Sentence, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$") {
		return Sentence{}, &FramingError{Reason: "missing '$' start marker"}
	}
	star := strings.LastIndexByte(line, '*')
	if star == -1 {
		return Sentence{}, &FramingError{Reason: "missing '*' checksum marker"}
	}
	payload := line[1:star]
	ck := line[star+1:]
	if len(ck) != 2 {
		return Sentence{}, &FramingError{Reason: "checksum must be exactly two hex digits"}
	}
	want, err := hex.DecodeString(ck)
	if err != nil {
		return Sentence{}, &FramingError{Reason: "checksum digits are not hex"}
	}
	if got := Checksum(payload); got != want[0] {
		return Sentence{}, &ChecksumError{Want: want[0], Got: got}
	}

	parts := strings.Split(payload, ",")
	ident := parts[0]
	if len(ident) < 3 {
		return Sentence{}, &FramingError{Reason: "sentence identifier too short"}
	}
	return Sentence{
		Talker: strings.ToUpper(ident[:len(ident)-3]),
		Type:   strings.ToUpper(ident[len(ident)-3:]),
		Fields: parts[1:],
	}, nil
}
