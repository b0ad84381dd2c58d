// Package ubx encodes and decodes u-blox UBX binary protocol frames.
//
// A frame is: 0xB5 0x62, message class, message ID, little-endian 16-bit
// payload length, payload, and a two-byte 8-bit Fletcher checksum computed
// over class through payload. Only the small command surface the NEO-6M
// reader needs is modelled: receiver power management (RXM-PMREQ) and the
// ACK/NAK replies that configuration commands produce.
package ubx

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	sync1 = 0xB5
	sync2 = 0x62
)

// Message classes.
const (
	ClassNAV = 0x01
	ClassRXM = 0x02
	ClassACK = 0x05
	ClassCFG = 0x06
)

// Message IDs within their class.
const (
	IDNak   = 0x00 // ACK-NAK
	IDAck   = 0x01 // ACK-ACK
	IDPMReq = 0x41 // RXM-PMREQ
)

// Frame is one UBX message.
type Frame struct {
	Class   byte
	ID      byte
	Payload []byte
}

// Encode renders the frame as wire bytes including sync chars and checksum.
func (f Frame) Encode() []byte {
	body := make([]byte, 0, 4+len(f.Payload))
	body = append(body, f.Class, f.ID)
	body = binary.LittleEndian.AppendUint16(body, uint16(len(f.Payload)))
	body = append(body, f.Payload...)

	ckA, ckB := checksum(body)
	out := make([]byte, 0, 2+len(body)+2)
	out = append(out, sync1, sync2)
	out = append(out, body...)
	out = append(out, ckA, ckB)
	return out
}

// Decode parses one complete frame, verifying sync characters, declared
// length and checksum.
func Decode(b []byte) (Frame, error) {
	if len(b) < 8 {
		return Frame{}, fmt.Errorf("ubx: frame too short (%d bytes)", len(b))
	}
	if b[0] != sync1 || b[1] != sync2 {
		return Frame{}, fmt.Errorf("ubx: bad sync characters %02X %02X", b[0], b[1])
	}
	length := int(binary.LittleEndian.Uint16(b[4:6]))
	if len(b) != 8+length {
		return Frame{}, fmt.Errorf("ubx: declared payload length %d does not match frame size %d", length, len(b))
	}
	body := b[2 : len(b)-2]
	ckA, ckB := checksum(body)
	if ckA != b[len(b)-2] || ckB != b[len(b)-1] {
		return Frame{}, fmt.Errorf("ubx: checksum mismatch")
	}
	f := Frame{Class: b[2], ID: b[3]}
	if length > 0 {
		f.Payload = append([]byte(nil), b[6:6+length]...)
	}
	return f, nil
}

// checksum is the 8-bit Fletcher algorithm over class, ID, length and
// payload bytes.
func checksum(body []byte) (byte, byte) {
	var ckA, ckB byte
	for _, b := range body {
		ckA += b
		ckB += ckA
	}
	return ckA, ckB
}

// PMReq builds an RXM-PMREQ frame that puts the receiver into backup mode
// for the given duration. Zero means it stays down until an external wakeup.
func PMReq(duration time.Duration) Frame {
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint32(payload[0:4], uint32(duration.Milliseconds()))
	// Flags bit 1: enter backup mode.
	binary.LittleEndian.PutUint32(payload[4:8], 0x00000002)
	return Frame{Class: ClassRXM, ID: IDPMReq, Payload: payload}
}

// Ack reports whether the frame is an ACK-ACK or ACK-NAK and for which
// class/ID the acknowledgement applies.
func Ack(f Frame) (acked bool, cls, id byte, ok bool) {
	if f.Class != ClassACK || len(f.Payload) != 2 {
		return false, 0, 0, false
	}
	switch f.ID {
	case IDAck:
		return true, f.Payload[0], f.Payload[1], true
	case IDNak:
		return false, f.Payload[0], f.Payload[1], true
	default:
		return false, 0, 0, false
	}
}
