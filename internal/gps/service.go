package gps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"neogps/internal/ubx"
)

// Config controls background acquisition from a serial NMEA receiver.
//
// The NEO-6M typically appears as /dev/ttyACM* or /dev/ttyUSB* and emits
// NMEA at 9600 baud by default. Device may be empty to auto-detect.
type Config struct {
	Device string
	Baud   int

	// UTCOffsetHours shifts decoded UTC times for local display.
	UTCOffsetHours float64

	// OnUpdate, when set, is called with a fix snapshot after every line
	// that changed the aggregate. Called from the reader goroutine.
	OnUpdate func(Fix)
}

// Status is the externally visible service state.
type Status struct {
	Device string `json:"device"`
	Baud   int    `json:"baud"`

	Fix Fix `json:"fix"`

	LastError string `json:"last_error,omitempty"`
}

// Service reads the serial port on a background goroutine and keeps the
// latest fix available as an atomic snapshot. Failures are recorded, never
// fatal; a corrupt line leaves the previous aggregate intact.
type Service struct {
	cfg Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	last atomic.Value // Status

	mu   sync.Mutex
	port *os.File
}

func New(cfg Config) *Service {
	s := &Service{cfg: cfg}
	s.last.Store(Status{Device: cfg.Device, Baud: cfg.Baud})
	return s
}

// Start opens the port and launches the reader. Calling Start on an
// already-started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("gps service is nil")
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	device := strings.TrimSpace(s.cfg.Device)
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			return fmt.Errorf("gps auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
		}
	}
	baud := s.cfg.Baud
	if baud == 0 {
		baud = 9600
	}

	f, err := openSerial(device, baud)
	if err != nil {
		return fmt.Errorf("gps open failed device=%s baud=%d: %w", device, baud, err)
	}
	s.port = f
	s.last.Store(Status{Device: device, Baud: baud})

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() { _ = f.Close() }()

		log.Printf("gps reading device=%s baud=%d", device, baud)
		s.run(childCtx, f, device, baud)
	}()
	return nil
}

func (s *Service) run(ctx context.Context, r io.Reader, device string, baud int) {
	scanner := bufio.NewScanner(r)
	// NMEA sentences are < 82 chars; allow headroom for chatter.
	scanner.Buffer(make([]byte, 0, 256), 4096)

	agg := NewAggregator(s.cfg.UTCOffsetHours)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			err := scanner.Err()
			if err == nil {
				err = io.EOF
			}
			s.setError(device, baud, agg.Fix(), fmt.Sprintf("gps read stopped: %v", err))
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "$") {
			continue
		}

		sum, err := agg.Accept(line)
		if err != nil {
			// Noise happens; record it and keep the previous aggregate.
			s.setError(device, baud, agg.Fix(), err.Error())
			continue
		}
		if sum.Any() {
			fix := agg.Fix()
			s.last.Store(Status{Device: device, Baud: baud, Fix: fix})
			if s.cfg.OnUpdate != nil {
				s.cfg.OnUpdate(fix)
			}
		}
	}
}

// PowerDown sends a UBX RXM-PMREQ frame putting the receiver into backup
// mode for the given duration (zero means until an external wakeup). The
// service must have been started.
func (s *Service) PowerDown(duration time.Duration) error {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()
	if port == nil {
		return fmt.Errorf("gps serial port not open")
	}
	_, err := port.Write(ubx.PMReq(duration).Encode())
	return err
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	port := s.port
	s.cancel = nil
	s.port = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if port != nil {
		_ = port.Close()
	}
	s.wg.Wait()
}

// Snapshot returns the latest status.
func (s *Service) Snapshot() Status {
	if s == nil {
		return Status{}
	}
	v := s.last.Load()
	if v == nil {
		return Status{}
	}
	return v.(Status)
}

func (s *Service) setError(device string, baud int, fix Fix, msg string) {
	// Transient parse issues must not flip fix validity.
	s.last.Store(Status{Device: device, Baud: baud, Fix: fix, LastError: msg})
}

func autoDetectDevice() string {
	candidates := make([]string, 0, 20)
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
