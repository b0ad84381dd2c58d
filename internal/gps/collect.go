package gps

import (
	"errors"
	"strings"
)

// ErrNoFix is returned when a read budget is exhausted without ever
// decoding a position.
var ErrNoFix = errors.New("gps: no position fix obtained")

// LineSource is the boundary to the I/O collaborator feeding raw lines.
// NextLine reports false on timeout or disconnect, which stops collection
// early; blocking and timeouts are entirely the source's concern.
type LineSource interface {
	NextLine() (string, bool)
}

// Collect feeds up to budget lines from src into the aggregator and returns
// the resulting fix snapshot. It stops early once the fix is complete or the
// source runs dry. Per-line parse errors are recovered locally: the corrupt
// line contributes nothing and collection moves on.
//
// ErrNoFix is returned only when no position was obtained at all.
func (a *Aggregator) Collect(src LineSource, budget int) (Fix, error) {
	for i := 0; i < budget; i++ {
		line, ok := src.NextLine()
		if !ok {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := a.Accept(line); err != nil {
			continue
		}
		if a.fix.Complete() {
			break
		}
	}
	if !a.fix.Valid {
		return Fix{}, ErrNoFix
	}
	return a.fix, nil
}
