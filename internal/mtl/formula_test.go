package mtl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ToPositiveNormalForm(t *testing.T) {
	a := Atom("a")
	b := Atom("b")

	testCases := []struct {
		name   string
		input  Formula
		expect Formula
	}{
		{
			name:   "double negation",
			input:  Not(Not(a)),
			expect: a,
		},
		{
			name:   "negated conjunction",
			input:  Not(And(a, b)),
			expect: Or(Not(a), Not(b)),
		},
		{
			name:   "negated until becomes dual-until",
			input:  Not(Until(a, b, Closed(1, 2))),
			expect: DualUntil(Not(a), Not(b), Closed(1, 2)),
		},
		{
			name:   "negated dual-until becomes until",
			input:  Not(DualUntil(a, b, Unbounded())),
			expect: Until(Not(a), Not(b), Unbounded()),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := tc.input.ToPositiveNormalForm()
			assert.True(t, tc.expect.Equal(actual), "expected %s, got %s", tc.expect, actual)
		})
	}
}

// Test_ToPositiveNormalForm_Idempotent checks the universal property that
// ToPNF is idempotent.
func Test_ToPositiveNormalForm_Idempotent(t *testing.T) {
	a, b, c := Atom("a"), Atom("b"), Atom("c")
	formulas := []Formula{
		True(),
		False(),
		a,
		Not(a),
		Not(Not(Not(a))),
		Not(And(a, Or(b, Not(c)))),
		Not(Until(a, Not(b), Closed(0, 3))),
		Globally(a, AtLeast(1)),
	}

	for _, f := range formulas {
		once := f.ToPositiveNormalForm()
		twice := once.ToPositiveNormalForm()
		assert.True(t, once.Equal(twice), "not idempotent for %s: once=%s twice=%s", f, once, twice)
	}
}

func Test_LargestConstant(t *testing.T) {
	a, b := Atom("a"), Atom("b")
	f := And(Until(a, b, Closed(1, 5)), DualUntil(a, b, AtLeast(2)))
	assert.Equal(t, 5, f.LargestConstant())
}

func Test_SubformulasOfKind(t *testing.T) {
	a, b := Atom("a"), Atom("b")
	u1 := Until(a, b, Closed(0, 1))
	u2 := Until(b, a, Closed(2, 3))
	f := And(u1, u2)

	subs := f.SubformulasOfKind(KindUntil)
	assert.Len(t, subs, 2)
	assert.True(t, subs[0].Equal(u1))
	assert.True(t, subs[1].Equal(u2))
}
