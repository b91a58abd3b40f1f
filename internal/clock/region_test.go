package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Regionalize(t *testing.T) {
	testCases := []struct {
		name   string
		v      Value
		k      int
		expect RegionIndex
	}{
		{name: "zero", v: 0, k: 3, expect: 0},
		{name: "integer within K", v: 2, k: 3, expect: 4},
		{name: "fractional within K", v: 2.5, k: 3, expect: 5},
		{name: "integer at K", v: 3, k: 3, expect: 6},
		{name: "just over K", v: 3.5, k: 3, expect: 7},
		{name: "far over K", v: 100, k: 3, expect: 7},
		{name: "K is zero, at boundary", v: 0, k: 0, expect: 0},
		{name: "K is zero, over boundary", v: 0.1, k: 0, expect: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := Regionalize(tc.v, tc.k)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

// Test_Regionalize_Property checks the universal region-mapping property
// from the testable-properties list: for all v >= 0 and integer K >= 0,
// v > K => idx = 2K+1; v integral and v <= K => idx = 2v; otherwise
// idx = 2*floor(v)+1.
func Test_Regionalize_Property(t *testing.T) {
	for k := 0; k <= 5; k++ {
		for tenths := 0; tenths <= (k+2)*10; tenths++ {
			v := Value(float64(tenths) / 10.0)
			idx := Regionalize(v, k)

			switch {
			case float64(v) > float64(k):
				assert.EqualValues(t, 2*k+1, idx, "v=%v k=%v", v, k)
			case v.FracPart() == 0:
				assert.EqualValues(t, 2*v.IntPart(), idx, "v=%v k=%v", v, k)
			default:
				assert.EqualValues(t, 2*v.IntPart()+1, idx, "v=%v k=%v", v, k)
			}
		}
	}
}

func Test_ConstraintsFromRegion(t *testing.T) {
	testCases := []struct {
		name   string
		idx    RegionIndex
		k      int
		bound  BoundType
		expect []Constraint
	}{
		{
			name:   "even both",
			idx:    4,
			k:      3,
			bound:  Both,
			expect: []Constraint{{Clock: "x", Op: Equal, K: 2}},
		},
		{
			name:   "even lower",
			idx:    4,
			k:      3,
			bound:  Lower,
			expect: []Constraint{{Clock: "x", Op: GreaterEqual, K: 2}},
		},
		{
			name:   "even upper",
			idx:    4,
			k:      3,
			bound:  Upper,
			expect: []Constraint{{Clock: "x", Op: LessEqual, K: 2}},
		},
		{
			name:  "odd both",
			idx:   5,
			k:     3,
			bound: Both,
			expect: []Constraint{
				{Clock: "x", Op: Greater, K: 2},
				{Clock: "x", Op: Less, K: 3},
			},
		},
		{
			name:   "saturated",
			idx:    Saturated(3),
			k:      3,
			bound:  Both,
			expect: []Constraint{{Clock: "x", Op: Greater, K: 3}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ConstraintsFromRegion("x", tc.idx, tc.k, tc.bound)
			assert.NoError(t, err)
			assert.ElementsMatch(t, tc.expect, actual)
		})
	}
}
