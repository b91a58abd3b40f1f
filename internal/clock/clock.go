// Package clock implements the clock-constraint and region-index algebra
// (component C1): atomic constraints over a clock vs. an integer, and the
// Alur-Dill region abstraction of a clock value given a maximal constant K.
package clock

import (
	"fmt"
	"math"
)

// Value is a non-negative real-valued clock reading. Clocks in this system
// are always non-negative; callers must not construct a negative Value.
type Value float64

// Tick returns v advanced by delta.
func (v Value) Tick(delta Value) Value {
	return v + delta
}

// Reset returns the zero clock value, provided as a method for symmetry with
// Tick.
func (v Value) Reset() Value {
	return 0
}

// IntPart returns the integer part of v.
func (v Value) IntPart() int {
	return int(math.Floor(float64(v)))
}

// FracPart returns the fractional part of v, always in [0, 1).
func (v Value) FracPart() float64 {
	return float64(v) - math.Floor(float64(v))
}

// Comparator is one of the six relational operators a clock constraint may
// use.
type Comparator int

const (
	Less Comparator = iota
	LessEqual
	Equal
	NotEqual
	GreaterEqual
	Greater
)

// String renders the comparator using its mathematical symbol.
func (c Comparator) String() string {
	switch c {
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case GreaterEqual:
		return ">="
	case Greater:
		return ">"
	default:
		return fmt.Sprintf("Comparator(%d)", int(c))
	}
}

// ParseComparator maps the conventional operator spellings to a Comparator,
// for use by the plant/specification text-format loader.
func ParseComparator(s string) (Comparator, bool) {
	switch s {
	case "<":
		return Less, true
	case "<=", "≤":
		return LessEqual, true
	case "=", "==":
		return Equal, true
	case "!=", "≠":
		return NotEqual, true
	case ">=", "≥":
		return GreaterEqual, true
	case ">":
		return Greater, true
	default:
		return 0, false
	}
}

// Constraint is an immutable atomic constraint `clock op k` for a
// non-negative integer k. Constraints are value objects: comparable with
// ==, and totally ordered via Less, so they can serve as map keys and be
// sorted for deterministic output.
type Constraint struct {
	Clock string
	Op    Comparator
	K     int
}

// New constructs a Constraint, validating that k is non-negative.
func New(clockName string, op Comparator, k int) (Constraint, error) {
	if k < 0 {
		return Constraint{}, fmt.Errorf("clock constraint constant must be non-negative, got %d", k)
	}
	return Constraint{Clock: clockName, Op: op, K: k}, nil
}

// Satisfies reports whether the clock value v satisfies the constraint.
func (c Constraint) Satisfies(v Value) bool {
	fv := float64(v)
	k := float64(c.K)
	switch c.Op {
	case Less:
		return fv < k
	case LessEqual:
		return fv <= k
	case Equal:
		return fv == k
	case NotEqual:
		return fv != k
	case GreaterEqual:
		return fv >= k
	case Greater:
		return fv > k
	default:
		return false
	}
}

// String renders the constraint as "clock op k", e.g. "x >= 2".
func (c Constraint) String() string {
	return fmt.Sprintf("%s %s %d", c.Clock, c.Op, c.K)
}

// Less gives a total order over Constraints, used to keep guard multimaps
// and rendered output deterministic.
func (c Constraint) Less(o Constraint) bool {
	if c.Clock != o.Clock {
		return c.Clock < o.Clock
	}
	if c.Op != o.Op {
		return c.Op < o.Op
	}
	return c.K < o.K
}
