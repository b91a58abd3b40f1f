package clock

import "fmt"

// RegionIndex is the non-negative integer index of the Alur-Dill region a
// clock value falls into, parameterized by a maximal constant K. Even
// indices correspond to integer points, odd indices to open fractional
// intervals, and 2K+1 is the saturated "beyond-K" region.
type RegionIndex int

// Saturated returns the index 2K+1, the "beyond-K" region, for the given
// maximal constant K.
func Saturated(k int) RegionIndex {
	return RegionIndex(2*k + 1)
}

// Regionalize computes the region index of v under maximal constant K.
func Regionalize(v Value, k int) RegionIndex {
	if float64(v) > float64(k) {
		return Saturated(k)
	}
	if v.FracPart() == 0 {
		return RegionIndex(2 * v.IntPart())
	}
	return RegionIndex(2*v.IntPart() + 1)
}

// IsMaxed reports whether idx is the saturated region 2K+1.
func (idx RegionIndex) IsMaxed(k int) bool {
	return idx == Saturated(k)
}

// IsInteger reports whether idx corresponds to an integer clock value (an
// even index).
func (idx RegionIndex) IsInteger() bool {
	return idx%2 == 0
}

// IntValue returns n such that idx == 2n (even) or idx == 2n+1 (odd); this
// is the integer part shared by every concrete clock value in the region.
func (idx RegionIndex) IntValue() int {
	return int(idx) / 2
}

// BoundType selects which half of a region's characterizing constraints
// constraints_from_region should emit.
type BoundType int

const (
	// Both requests the constraint(s) that exactly characterize the region.
	Both BoundType = iota
	// Lower requests only the region's lower-bound constraint.
	Lower
	// Upper requests only the region's upper-bound constraint.
	Upper
)

// ConstraintsFromRegion returns, for a region index and a maximal constant
// K, the minimal set of clock constraints on clockName characterizing that
// region, per §4.1:
//
//   - even index 2n with n <= K: "=n" (Both), ">=n" (Lower), "<=n" (Upper);
//   - odd index 2n+1 with n < K: ">n ∧ <n+1" (Both), ">n" (Lower), "<n+1" (Upper);
//   - saturated 2K+1: ">K" regardless of bound type.
func ConstraintsFromRegion(clockName string, idx RegionIndex, k int, bound BoundType) ([]Constraint, error) {
	sat := Saturated(k)
	if idx > sat {
		return nil, fmt.Errorf("region index %d exceeds saturated region %d for K=%d", idx, sat, k)
	}
	if idx == sat {
		c, err := New(clockName, Greater, k)
		if err != nil {
			return nil, err
		}
		return []Constraint{c}, nil
	}

	n := idx.IntValue()
	if idx.IsInteger() {
		switch bound {
		case Lower:
			c, err := New(clockName, GreaterEqual, n)
			return []Constraint{c}, err
		case Upper:
			c, err := New(clockName, LessEqual, n)
			return []Constraint{c}, err
		default:
			c, err := New(clockName, Equal, n)
			return []Constraint{c}, err
		}
	}

	// odd index, open interval (n, n+1)
	switch bound {
	case Lower:
		c, err := New(clockName, Greater, n)
		return []Constraint{c}, err
	case Upper:
		c, err := New(clockName, Less, n+1)
		return []Constraint{c}, err
	default:
		lower, err := New(clockName, Greater, n)
		if err != nil {
			return nil, err
		}
		upper, err := New(clockName, Less, n+1)
		if err != nil {
			return nil, err
		}
		return []Constraint{lower, upper}, nil
	}
}
