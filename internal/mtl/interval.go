package mtl

import "fmt"

// Endpoint is one bound of an Interval: a non-negative integer value and
// whether the bound is strict (open) or weak (closed).
type Endpoint struct {
	Value  int
	Strict bool
}

// Interval is a closed/open/unbounded interval with integer endpoints,
// attached to until and dual-until formulas. A nil Lower means "from zero";
// a nil Upper means unbounded above.
type Interval struct {
	Lower *Endpoint
	Upper *Endpoint
}

// Unbounded is the interval [0, ∞).
func Unbounded() Interval {
	return Interval{}
}

// Closed returns the interval [lower, upper].
func Closed(lower, upper int) Interval {
	l := Endpoint{Value: lower}
	u := Endpoint{Value: upper}
	return Interval{Lower: &l, Upper: &u}
}

// AtLeast returns the interval [lower, ∞).
func AtLeast(lower int) Interval {
	l := Endpoint{Value: lower}
	return Interval{Lower: &l}
}

func (i Interval) String() string {
	lowerSym, upperSym := "[", "]"
	lowerVal, upperVal := "0", "∞"
	if i.Lower != nil {
		lowerVal = fmt.Sprintf("%d", i.Lower.Value)
		if i.Lower.Strict {
			lowerSym = "("
		}
	}
	if i.Upper != nil {
		upperVal = fmt.Sprintf("%d", i.Upper.Value)
		if i.Upper.Strict {
			upperSym = ")"
		}
	}
	return fmt.Sprintf("%s%s,%s%s", lowerSym, lowerVal, upperVal, upperSym)
}

func (i Interval) equal(o Interval) bool {
	eqEndpoint := func(a, b *Endpoint) bool {
		if a == nil || b == nil {
			return a == b
		}
		return *a == *b
	}
	return eqEndpoint(i.Lower, o.Lower) && eqEndpoint(i.Upper, o.Upper)
}

// largestConstant returns the largest finite endpoint value in i, or -1 if
// neither endpoint is present.
func (i Interval) largestConstant() int {
	max := -1
	if i.Lower != nil && i.Lower.Value > max {
		max = i.Lower.Value
	}
	if i.Upper != nil && i.Upper.Value > max {
		max = i.Upper.Value
	}
	return max
}
