// Package mode defines the explicit classification enum AutoMap's builder
// takes in place of the source's runtime polymorphism-guard sentinel
// (ErrorBool): a caller appending a multi-key range must say up front
// whether it belongs in the compressed (equal-value run) or delta
// (arithmetic-progression) child, since a direct range append can't try
// both the way single-key append does.
package mode

import "github.com/cfbs-go/cfbs/internal/fault"

// Mode selects which compressed child a multi-key AppendRange targets.
type Mode int

const (
	Compressed Mode = iota
	Delta
)

func (m Mode) String() string {
	switch m {
	case Compressed:
		return "Compressed"
	case Delta:
		return "Delta"
	default:
		return "Mode(invalid)"
	}
}

// RequireValid panics with a SentinelError if m isn't one of the two
// defined modes. Defensive only: every call site in this module constructs
// Mode from one of the two constants, so this path is never taken by
// production code, but it keeps the SentinelMisuse error kind exercised and
// reachable for an API-completeness test rather than dead code entirely.
func RequireValid(m Mode) {
	if m != Compressed && m != Delta {
		fault.SentinelMisuse("mode: %d is neither Compressed nor Delta", int(m))
	}
}
