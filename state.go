package cfbs

import "github.com/cfbs-go/cfbs/internal/fault"

// requireTrue panics with a PreconditionError unless cond holds.
func requireTrue(cond bool, format string, args ...any) {
	fault.RequireTrue(cond, format, args...)
}

// requireNotFrozen panics with a PreconditionError if frozen is true: it
// guards every builder mutation against being called after Freeze.
func requireNotFrozen(frozen bool, op string) {
	fault.RequireTrue(!frozen, "%s: called after Freeze", op)
}
