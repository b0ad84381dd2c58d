package nmea

import (
	"fmt"
	"math"
)

// Checksum is the XOR of every payload byte between '$' and '*'.
func Checksum(payload string) byte {
	var ck byte
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return ck
}

// Format frames a payload as a complete sentence: "$<payload>*<hh>".
func Format(payload string) string {
	return fmt.Sprintf("$%s*%02X", payload, Checksum(payload))
}

// FormatLat renders decimal degrees as the GGA latitude pair
// ("ddmm.mmmm", hemisphere letter).
func FormatLat(deg float64) (string, string) {
	hemi := "N"
	if deg < 0 {
		hemi = "S"
	}
	d, m := splitMinutes(deg)
	return fmt.Sprintf("%02d%07.4f", d, m), hemi
}

// FormatLon renders decimal degrees as the GGA longitude pair
// ("dddmm.mmmm", hemisphere letter).
func FormatLon(deg float64) (string, string) {
	hemi := "E"
	if deg < 0 {
		hemi = "W"
	}
	d, m := splitMinutes(deg)
	return fmt.Sprintf("%03d%07.4f", d, m), hemi
}

func splitMinutes(deg float64) (int, float64) {
	abs := math.Abs(deg)
	d := int(abs)
	return d, (abs - float64(d)) * 60
}
