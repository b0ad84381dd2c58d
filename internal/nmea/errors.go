package nmea

import "fmt"

// FramingError reports a line that is not a well-formed NMEA sentence:
// missing '$', missing '*', or a checksum suffix that is not two hex digits.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("nmea: bad framing: %s", e.Reason)
}

// ChecksumError reports a sentence whose transmitted checksum does not match
// the XOR of the payload bytes. The sentence must be discarded.
type ChecksumError struct {
	Want byte
	Got  byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("nmea: checksum mismatch: computed %02X, sentence says %02X", e.Got, e.Want)
}

// FieldCountError reports a recognized sentence that is truncated before its
// required leading fields.
type FieldCountError struct {
	Kind Kind
	Want int
	Got  int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("nmea: %s sentence has %d fields, need at least %d", e.Kind, e.Got, e.Want)
}

// FieldFormatError reports a field that is present but does not parse.
// Field indices are zero-based and count from the first field after the
// sentence identifier.
type FieldFormatError struct {
	Kind  Kind
	Index int
	Value string
}

func (e *FieldFormatError) Error() string {
	return fmt.Sprintf("nmea: %s field %d: cannot parse %q", e.Kind, e.Index, e.Value)
}
