// Package tgerrors collects the structured error kinds raised across the
// synthesis pipeline. Each kind carries both a technical Error() message for
// logs and an operator-facing Diagnostic() message for the CLI.
package tgerrors

import "fmt"

// Kind identifies which of the error taxonomy's members a synthError belongs
// to. It is exported so that callers that need to distinguish error kinds
// (the test harness, in particular) can do so with errors.As plus a type
// switch on Kind() rather than string-matching messages.
type Kind int

const (
	// KindConstraint marks an invalid clock-constraint comparator.
	KindConstraint Kind = iota
	// KindUnknownName marks an unknown clock, location, or symbol referenced
	// by a transition.
	KindUnknownName
	// KindInvalidTimedWord marks a timed word whose first timestamp is
	// nonzero or that contains a negative time delta.
	KindInvalidTimedWord
	// KindATATransition marks an ATA run that took two consecutive symbol
	// steps without an intervening time step, or a time step on an empty
	// run.
	KindATATransition
	// KindReservedName marks an MTL alphabet that uses one of the names
	// reserved by the translator (ℓ₀, sink).
	KindReservedName
	// KindInvalidCanonicalWord marks a canonical AB-word that violates the
	// well-formedness invariants. This indicates an implementation bug, not
	// a user error, and is normally only ever seen wrapped in a panic via
	// MustValid.
	KindInvalidCanonicalWord
	// KindParse marks a malformed plant, specification, or manifest file.
	KindParse
	// KindQueueClosed marks an attempt to submit a task to a closed
	// expansion queue.
	KindQueueClosed
	// KindPoolAlreadyStarted marks an attempt to start a worker pool twice.
	KindPoolAlreadyStarted
)

func (k Kind) String() string {
	switch k {
	case KindConstraint:
		return "constraint"
	case KindUnknownName:
		return "unknown-name"
	case KindInvalidTimedWord:
		return "invalid-timed-word"
	case KindATATransition:
		return "ata-transition"
	case KindReservedName:
		return "reserved-name"
	case KindInvalidCanonicalWord:
		return "invalid-canonical-word"
	case KindParse:
		return "parse"
	case KindQueueClosed:
		return "queue-closed"
	case KindPoolAlreadyStarted:
		return "pool-already-started"
	default:
		return "unknown"
	}
}

// synthError is the single sum-of-kinds error type used by the core
// algorithms. Every error returned across a package boundary in this module
// either is, or wraps, a *synthError.
type synthError struct {
	kind  Kind
	msg   string
	diag  string
	wrap  error
	name  string
}

func (e *synthError) Error() string {
	return e.msg
}

// Diagnostic shows the message that should be printed to an operator to
// describe the error, as opposed to the technical Error() string.
func (e *synthError) Diagnostic() string {
	return e.diag
}

// Kind returns which member of the error taxonomy this error belongs to.
func (e *synthError) Kind() Kind {
	return e.kind
}

// Name returns the offending clock/location/symbol name for a
// KindUnknownName error, or "" otherwise.
func (e *synthError) Name() string {
	return e.name
}

func (e *synthError) Unwrap() error {
	return e.wrap
}

func newErr(kind Kind, diag, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("%s: %s", kind, diag)
	}
	return &synthError{kind: kind, msg: technical, diag: diag}
}

// Constraint returns an error for an invalid clock-constraint comparator.
func Constraint(diag string) error {
	return newErr(KindConstraint, diag, "")
}

// Constraintf is Constraint with fmt.Sprintf applied to the diagnostic.
func Constraintf(format string, a ...interface{}) error {
	return Constraint(fmt.Sprintf(format, a...))
}

// UnknownName returns an error for a transition that references an unknown
// clock, location, or symbol. kindOfName should be one of "clock",
// "location", or "symbol".
func UnknownName(kindOfName, name string) error {
	return &synthError{
		kind: KindUnknownName,
		msg:  fmt.Sprintf("unknown %s %q", kindOfName, name),
		diag: fmt.Sprintf("plant references unknown %s %q", kindOfName, name),
		name: name,
	}
}

// InvalidTimedWord returns an error for a timed word that does not start at
// time zero or that contains a negative delta.
func InvalidTimedWord(diag string) error {
	return newErr(KindInvalidTimedWord, diag, "")
}

// ATATransition returns an error for an ATA run that violates the
// alternation-of-symbol-and-time-step invariant.
func ATATransition(diag string) error {
	return newErr(KindATATransition, diag, "")
}

// ReservedName returns an error for an MTL alphabet that collides with a
// name reserved by the translator.
func ReservedName(name string) error {
	return &synthError{
		kind: KindReservedName,
		msg:  fmt.Sprintf("reserved name %q used in alphabet", name),
		diag: fmt.Sprintf("%q is reserved by the MTL-to-ATA translator and cannot appear in the alphabet", name),
		name: name,
	}
}

// InvalidCanonicalWord returns an error describing a canonical-word
// well-formedness violation. Core code should not return this directly;
// use MustValid to panic instead, since this indicates an implementation
// bug rather than a user-correctable condition.
func InvalidCanonicalWord(diag string) error {
	return newErr(KindInvalidCanonicalWord, diag, "")
}

// MustValid panics with an InvalidCanonicalWord error if ok is false. It is
// used at the boundary of canonical-word construction to assert the §3
// invariants; a failure here is a bug in the successor generator or region
// abstraction, never user input.
func MustValid(ok bool, diag string) {
	if !ok {
		panic(InvalidCanonicalWord(diag))
	}
}

// Parse returns an error for a malformed plant, specification, or manifest
// file.
func Parse(diag string) error {
	return newErr(KindParse, diag, "")
}

// WrapParse wraps err as a KindParse error with an additional diagnostic.
func WrapParse(err error, diag string) error {
	return &synthError{
		kind: KindParse,
		msg:  fmt.Sprintf("%s: %v", diag, err),
		diag: diag,
		wrap: err,
	}
}

// QueueClosed returns the error returned by a closed expansion queue when a
// new task is submitted.
func QueueClosed() error {
	return newErr(KindQueueClosed, "expansion queue is closed", "")
}

// PoolAlreadyStarted returns the error returned when a worker pool is
// started more than once.
func PoolAlreadyStarted() error {
	return newErr(KindPoolAlreadyStarted, "worker pool was already started", "")
}

// Diagnostic gets the message to display to an operator for the given
// error. If it is one of the kinds defined in this package, the operator
// diagnostic is returned (if one exists); otherwise err.Error() is
// returned.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	if sErr, ok := err.(*synthError); ok && sErr.diag != "" {
		return sErr.diag
	}
	var unwrappable interface{ Unwrap() error }
	if ok := asUnwrap(err, &unwrappable); ok {
		return Diagnostic(unwrappable.Unwrap())
	}
	return err.Error()
}

func asUnwrap(err error, target *interface{ Unwrap() error }) bool {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return false
	}
	*target = u
	return true
}

// KindOf returns the Kind of err if it is, or wraps, a *synthError, and
// false otherwise.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if sErr, ok := err.(*synthError); ok {
			return sErr.kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}
