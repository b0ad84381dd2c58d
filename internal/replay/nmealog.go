// Package replay feeds recorded NMEA logs through the fix pipeline.
//
// Log format: one sentence per line, exactly as captured from the receiver.
// Blank lines and lines starting with '#' are skipped, so annotated captures
// remain valid input. Replay sources are used for offline decoding and for
// deterministic regression tests against real receiver output.
package replay

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Source replays lines from a recorded log. It implements gps.LineSource.
type Source struct {
	lines []string
	next  int
}

// Open reads an entire log file into a replay source.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return NewSource(f)
}

// NewSource reads all lines from r.
func NewSource(r io.Reader) (*Source, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 64*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Source{lines: lines}, nil
}

// NextLine returns the next recorded sentence, or false once the log is
// exhausted.
func (s *Source) NextLine() (string, bool) {
	if s.next >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.next]
	s.next++
	return line, true
}

// Len reports the number of replayable lines.
func (s *Source) Len() int {
	return len(s.lines)
}
