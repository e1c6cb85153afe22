// Package fault defines the panic-carrying error types for contract
// violations shared between the index algebra and the containers built on
// top of it. Both sides panic with these types rather than returning an
// error, since a violation here is a programming bug, not a runtime
// condition a caller can usefully recover from (spec: PreconditionViolated,
// SentinelMisuse are contract bugs, not control flow).
package fault

import "fmt"

// PreconditionError marks an out-of-order append, a mutation attempted on a
// frozen container, or an index outside its documented range.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return "cfbs: precondition violated: " + e.Msg
}

// Precondition panics with a PreconditionError built from format/args.
func Precondition(format string, args ...any) {
	panic(&PreconditionError{Msg: fmt.Sprintf(format, args...)})
}

// RequireTrue panics with a PreconditionError unless cond holds.
func RequireTrue(cond bool, format string, args ...any) {
	if !cond {
		Precondition(format, args...)
	}
}

// SentinelError marks a classifier dispatch value that is neither of the
// two defined modes. Kept for API completeness (spec §6, §7): the
// classifier takes an explicit Mode enum instead of a polymorphism-guard
// sentinel (spec §9 Design Note 1), so the only code path that raises it is
// mode.RequireValid rejecting an out-of-range Mode.
type SentinelError struct {
	Msg string
}

func (e *SentinelError) Error() string {
	return "cfbs: sentinel misuse: " + e.Msg
}

// SentinelMisuse panics with a SentinelError built from format/args.
func SentinelMisuse(format string, args ...any) {
	panic(&SentinelError{Msg: fmt.Sprintf(format, args...)})
}
