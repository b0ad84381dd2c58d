package gps

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ScannerSource adapts a line-oriented reader into a LineSource. NextLine
// reports false once the reader errors or hits EOF, which for a serial port
// in timed read mode means the receiver went quiet.
type ScannerSource struct {
	scanner *bufio.Scanner
}

func NewScannerSource(r io.Reader) *ScannerSource {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 256), 4096)
	return &ScannerSource{scanner: s}
}

func (s *ScannerSource) NextLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

// OpenSerialSource opens the serial device (auto-detecting when empty) and
// returns a line source over it plus the closer for the port.
func OpenSerialSource(device string, baud int) (*ScannerSource, io.Closer, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			return nil, nil, fmt.Errorf("gps auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
		}
	}
	if baud == 0 {
		baud = 9600
	}
	f, err := openSerial(device, baud)
	if err != nil {
		return nil, nil, fmt.Errorf("gps open failed device=%s baud=%d: %w", device, baud, err)
	}
	return NewScannerSource(f), f, nil
}
