package cfbs

import (
	"errors"
	"fmt"

	"github.com/cfbs-go/cfbs/internal/fault"
)

// PreconditionError is the panic value raised for contract violations: an
// out-of-order append, a mutation attempted on a frozen container, or an
// index outside its documented range. These are programming bugs and must
// never be recovered as control flow.
type PreconditionError = fault.PreconditionError

// SentinelError is the panic value raised when AutoMapBuilder.AppendRange
// receives a Mode that is neither mode.Compressed nor mode.Delta; it takes
// the place of the source's dispatch-sentinel misuse error. See DESIGN.md
// (internal/mode).
type SentinelError = fault.SentinelError

// ErrKeyMissing is returned (wrapped with the offending key) from every Get
// that can miss. Contains/Has never return an error; a miss there is just
// false.
var ErrKeyMissing = errors.New("cfbs: key missing")

// keyMissing wraps ErrKeyMissing with the offending key for diagnostics,
// while remaining matchable via errors.Is(err, ErrKeyMissing).
func keyMissing(key any) error {
	return fmt.Errorf("%w: %v", ErrKeyMissing, key)
}
