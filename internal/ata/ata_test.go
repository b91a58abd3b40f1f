package ata

import (
	"testing"

	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/stretchr/testify/assert"
)

type loc string

const action = "a"

func word(pairs ...float64) []TimedSymbol[string] {
	out := make([]TimedSymbol[string], len(pairs))
	for i, ts := range pairs {
		out[i] = TimedSymbol[string]{Symbol: action, Timestamp: clock.Value(ts)}
	}
	return out
}

// Test_AlwaysA_AcceptsRepeats grounds scenario 1 of the end-to-end tests: an
// ATA with one self-loop on "a" requiring the location s0 accepts both a
// single "a" and two consecutive "a"s at the same time.
func Test_AlwaysA_AcceptsRepeats(t *testing.T) {
	s0 := loc("s0")
	transitions := []Transition[loc, string]{
		{Source: s0, Symbol: action, Formula: AtLocation[loc](s0)},
	}
	a := New[loc, string](setutil.Of(action), s0, setutil.Of(s0), transitions)

	ok, err := Accepts(a, word(0))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = Accepts(a, word(0, 0))
	assert.NoError(t, err)
	assert.True(t, ok)
}

// Test_NoCoincidentA grounds scenario 2: s0 -a-> s0 ∧ x.s1; s1 -a-> s1 ∧
// x != 1. Rejects two "a"s exactly 1 apart, accepts them 0.5 apart, accepts
// a third sequence, then rejects a fourth occurrence exactly 1 after the
// third.
func Test_NoCoincidentA(t *testing.T) {
	s0, s1 := loc("s0"), loc("s1")
	neqOne, err := clock.New("x", clock.NotEqual, 1)
	assert.NoError(t, err)

	transitions := []Transition[loc, string]{
		{Source: s0, Symbol: action, Formula: And(AtLocation[loc](s0), Reset(AtLocation[loc](s1)))},
		{Source: s1, Symbol: action, Formula: And(AtLocation[loc](s1), WithConstraint[loc](neqOne))},
	}
	a := New[loc, string](setutil.Of(action), s0, setutil.Of(s0, s1), transitions)

	ok, err := Accepts(a, word(0, 1))
	assert.NoError(t, err)
	assert.False(t, ok, "exactly 1 apart should be rejected")

	ok, err = Accepts(a, word(0, 0.5))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = Accepts(a, word(0, 1.1, 2))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = Accepts(a, word(0, 1.1, 2, 3))
	assert.NoError(t, err)
	assert.False(t, ok, "fourth occurrence exactly 1 after the third should be rejected")
}

func Test_MinimalModels(t *testing.T) {
	s0 := loc("s0")
	c, _ := clock.New("x", clock.GreaterEqual, 2)

	testCases := []struct {
		name   string
		f      Formula[loc]
		v      clock.Value
		expect int
	}{
		{name: "true", f: True[loc](), v: 0, expect: 1},
		{name: "false", f: False[loc](), v: 0, expect: 0},
		{name: "location", f: AtLocation[loc](s0), v: 1, expect: 1},
		{name: "satisfied constraint", f: WithConstraint[loc](c), v: 3, expect: 1},
		{name: "unsatisfied constraint", f: WithConstraint[loc](c), v: 1, expect: 0},
		{name: "or", f: Or(True[loc](), False[loc]()), v: 0, expect: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			models := MinimalModels(tc.f, tc.v)
			assert.Len(t, models, tc.expect)
		})
	}
}
