package translate

import (
	"testing"

	"github.com/brightwell/tgsynth/internal/ata"
	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/tgerrors"
	"github.com/stretchr/testify/assert"
)

// Test_Translate_BareAtom grounds the simplest translation: a lone atomic
// proposition becomes a single ℓ₀ transition that accepts on a matching
// symbol (an empty successor configuration) and lands in the unaccepting
// sink otherwise.
func Test_Translate_BareAtom(t *testing.T) {
	phi := mtl.Atom("a")
	a, err := Translate(phi, []string{"a", "b"})
	assert.NoError(t, err)

	ok, err := ata.Accepts(a, []ata.TimedSymbol[string]{{Symbol: "a", Timestamp: 0}})
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = ata.Accepts(a, []ata.TimedSymbol[string]{{Symbol: "b", Timestamp: 0}})
	assert.NoError(t, err)
	assert.False(t, ok)
}

// Test_Translate_Until grounds the until transition formula of §4.4: φ = a
// U_[0,2] b accepts a word where b arrives within the window after a holds,
// and rejects when b arrives after the window has closed.
func Test_Translate_Until(t *testing.T) {
	phi := mtl.Until(mtl.Atom("a"), mtl.Atom("b"), mtl.Closed(0, 2))
	a, err := Translate(phi, []string{"a", "b"})
	assert.NoError(t, err)

	ok, err := ata.Accepts(a, []ata.TimedSymbol[string]{
		{Symbol: "a", Timestamp: 0},
		{Symbol: "b", Timestamp: 1},
	})
	assert.NoError(t, err)
	assert.True(t, ok, "b within [0,2] of a should be accepted")

	ok, err = ata.Accepts(a, []ata.TimedSymbol[string]{
		{Symbol: "a", Timestamp: 0},
		{Symbol: "a", Timestamp: 1},
		{Symbol: "a", Timestamp: 2},
		{Symbol: "b", Timestamp: 3},
	})
	assert.NoError(t, err)
	assert.False(t, ok, "b arriving after the window closed should be rejected")
}

// Test_Translate_DualUntil_IsAccepting checks that dual-until subformulas
// become accepting locations (the ATA can end a run parked there and still
// accept).
func Test_Translate_DualUntil_IsAccepting(t *testing.T) {
	phi := mtl.DualUntil(mtl.Atom("a"), mtl.Atom("b"), mtl.Unbounded())
	a, err := Translate(phi, []string{"a", "b"})
	assert.NoError(t, err)
	assert.Equal(t, 1, a.Accepting.Len())
}

func Test_Translate_RejectsReservedAlphabetSymbol(t *testing.T) {
	_, err := Translate(mtl.Atom("a"), []string{"sink"})
	assert.Error(t, err)
	kind, ok := tgerrors.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, tgerrors.KindReservedName, kind)
}

func Test_Translate_RejectsReservedAtom(t *testing.T) {
	_, err := Translate(mtl.Atom("ℓ₀"), []string{"a"})
	assert.Error(t, err)
}

func Test_Location_SinkAndInitialPredicates(t *testing.T) {
	assert.True(t, Sink().IsSink())
	assert.False(t, Initial().IsSink())
	assert.True(t, Initial().IsInitial())
}
