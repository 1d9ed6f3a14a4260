package interp

import (
	"fmt"
	"strings"
)

// EOFPolicy selects what ',' does when the input stream is exhausted.
type EOFPolicy string

const (
	// EOFUnchanged leaves the current cell as it was. This is the default.
	EOFUnchanged EOFPolicy = "unchanged"
	// EOFZero stores 0 into the current cell.
	EOFZero EOFPolicy = "zero"
	// EOFValue stores 255 into the current cell.
	EOFValue EOFPolicy = "eof-value"
)

// ParseEOFPolicy parses a policy name as written in flags and config files.
func ParseEOFPolicy(value string) (EOFPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(EOFUnchanged):
		return EOFUnchanged, nil
	case string(EOFZero):
		return EOFZero, nil
	case string(EOFValue):
		return EOFValue, nil
	default:
		return EOFUnchanged, fmt.Errorf("unknown eof policy '%s' (expected unchanged, zero, or eof-value)", value)
	}
}

// Options configures a single interpreter run.
type Options struct {
	// TapeSize bounds the tape to a fixed cell count; 0 means unbounded.
	TapeSize int
	// EOF selects the ',' end-of-input behavior.
	EOF EOFPolicy
	// Trace logs every dispatched instruction.
	Trace bool
}

func (o Options) normalized() Options {
	if o.TapeSize < 0 {
		o.TapeSize = 0
	}
	if o.EOF == "" {
		o.EOF = EOFUnchanged
	}
	return o
}
