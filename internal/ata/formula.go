// Package ata implements alternating timed automaton (ATA) formulas and
// ATAs (component C4): the four-constructor formula AST, minimal-model
// computation, and the alternating symbol/time step.
package ata

import (
	"fmt"

	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/setutil"
)

// Kind is the outermost constructor of a Formula.
type Kind int

const (
	KindTrue Kind = iota
	KindFalse
	KindLocation
	KindConstraint
	KindAnd
	KindOr
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindTrue:
		return "TRUE"
	case KindFalse:
		return "FALSE"
	case KindLocation:
		return "LOCATION"
	case KindConstraint:
		return "CONSTRAINT"
	case KindAnd:
		return "AND"
	case KindOr:
		return "OR"
	case KindReset:
		return "RESET"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Formula is an ATA formula over locations of type L: the sum type
// TRUE, FALSE, location(L), clock-constraint(c), conjunction, disjunction,
// and reset. L must be comparable so that States built from it can be held
// in a setutil.Set.
type Formula[L comparable] struct {
	kind       Kind
	location   L
	constraint clock.Constraint
	left       *Formula[L]
	right      *Formula[L]
}

// True returns the TRUE formula.
func True[L comparable]() Formula[L] { return Formula[L]{kind: KindTrue} }

// False returns the FALSE formula.
func False[L comparable]() Formula[L] { return Formula[L]{kind: KindFalse} }

// AtLocation returns the formula satisfied by a configuration containing
// the state (loc, currentClockValue).
func AtLocation[L comparable](loc L) Formula[L] {
	return Formula[L]{kind: KindLocation, location: loc}
}

// WithConstraint returns the formula satisfied iff the single ATA clock
// satisfies c.
func WithConstraint[L comparable](c clock.Constraint) Formula[L] {
	return Formula[L]{kind: KindConstraint, constraint: c}
}

// And returns the conjunction of f and g.
func And[L comparable](f, g Formula[L]) Formula[L] {
	return Formula[L]{kind: KindAnd, left: &f, right: &g}
}

// Or returns the disjunction of f and g.
func Or[L comparable](f, g Formula[L]) Formula[L] {
	return Formula[L]{kind: KindOr, left: &f, right: &g}
}

// Reset returns r.f: f evaluated with the single ATA clock reset to zero.
func Reset[L comparable](f Formula[L]) Formula[L] {
	return Formula[L]{kind: KindReset, left: &f}
}

// Kind returns the outermost constructor of f.
func (f Formula[L]) Kind() Kind { return f.kind }

// Location returns the location referenced by f. Panics unless
// f.Kind() == KindLocation.
func (f Formula[L]) Location() L {
	if f.kind != KindLocation {
		panic(fmt.Sprintf("Location called on formula of kind %s", f.kind))
	}
	return f.location
}

// Constraint returns the clock constraint guarding f. Panics unless
// f.Kind() == KindConstraint.
func (f Formula[L]) Constraint() clock.Constraint {
	if f.kind != KindConstraint {
		panic(fmt.Sprintf("Constraint called on formula of kind %s", f.kind))
	}
	return f.constraint
}

// Left returns the first (or, for Reset, the only) operand. Panics for
// TRUE/FALSE/LOCATION/CONSTRAINT.
func (f Formula[L]) Left() Formula[L] {
	if f.left == nil {
		panic(fmt.Sprintf("Left called on formula of kind %s with no operand", f.kind))
	}
	return *f.left
}

// Right returns the second operand. Panics unless f.Kind() is And or Or.
func (f Formula[L]) Right() Formula[L] {
	if f.right == nil {
		panic(fmt.Sprintf("Right called on formula of kind %s with no right operand", f.kind))
	}
	return *f.right
}

// State is a pair (location, clock value), one element of an ATA
// configuration.
type State[L comparable] struct {
	Location L
	Clock    clock.Value
}

// Configuration is a set of States, interpreted conjunctively.
type Configuration[L comparable] = setutil.Set[State[L]]

// MinimalModels returns the minimal configurations that satisfy f when the
// single ATA clock holds value v, per §3:
//
//	TRUE      -> {∅}
//	FALSE     -> ∅
//	location  -> {{(L, v)}}
//	constraint-> {∅} if satisfied, else ∅
//	and(f,g)  -> pointwise union over the Cartesian product of operand models
//	or(f,g)   -> union of operand models
//	reset(f)  -> minimal models of f at v = 0
func MinimalModels[L comparable](f Formula[L], v clock.Value) []Configuration[L] {
	switch f.kind {
	case KindTrue:
		return []Configuration[L]{setutil.New[State[L]]()}
	case KindFalse:
		return nil
	case KindLocation:
		return []Configuration[L]{setutil.Of(State[L]{Location: f.location, Clock: v})}
	case KindConstraint:
		if f.constraint.Satisfies(v) {
			return []Configuration[L]{setutil.New[State[L]]()}
		}
		return nil
	case KindAnd:
		return setutil.CartesianUnion(MinimalModels(f.Left(), v), MinimalModels(f.Right(), v))
	case KindOr:
		return append(MinimalModels(f.Left(), v), MinimalModels(f.Right(), v)...)
	case KindReset:
		return MinimalModels(f.Left(), 0)
	default:
		return nil
	}
}
