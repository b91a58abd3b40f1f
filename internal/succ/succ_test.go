package succ

import (
	"testing"

	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/translate"
	"github.com/stretchr/testify/assert"
)

// buildPlant returns a two-location automaton: l0 --a--> l1, l1 --b--> l0
// (resetting x), over a single clock x.
func buildPlant(t *testing.T) *plant.TimedAutomaton {
	t.Helper()
	locs := []plant.Location{"l0", "l1"}
	alpha := setutil.Of[plant.Action]("a", "b")
	ta, err := plant.NewTimedAutomaton(
		locs, alpha, "l0", setutil.Of[plant.Location]("l1"), []string{"x"},
		[]plant.Transition{
			{Source: "l0", Symbol: "a", Target: "l1"},
			{Source: "l1", Symbol: "b", Target: "l0", Resets: []string{"x"}},
		},
	)
	assert.NoError(t, err)
	return ta
}

// Test_Next_GroupsByActionAndDropsDisabledActions grounds the core shape of
// ta_adapter.h's get_next_canonical_words: only actions enabled in the plant
// appear in the result, each mapped to the canonicalized plant×ATA successor
// pairs for that action.
func Test_Next_GroupsByActionAndDropsDisabledActions(t *testing.T) {
	ta := buildPlant(t)
	automaton, err := translate.Translate[plant.Action](mtl.Atom("a"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	plantConfig := ta.InitialConfiguration()
	ataConfig := automaton.InitialConfiguration()

	words := Next(ta, automaton, plantConfig, ataConfig, 1)

	assert.Len(t, words, 1, "only 'a' is enabled from l0")
	aWords, ok := words["a"]
	assert.True(t, ok)
	assert.Len(t, aWords, 1)

	_, ok = words["b"]
	assert.False(t, ok)
}

// Test_Next_SinkBranchStillProducesAWord checks that an action the plant
// enables but whose atom mismatches the formula does not drop out of the
// result: with phi = b, "a" fires in the plant and the ATA still produces a
// (non-accepting, sink-bound) successor rather than none.
func Test_Next_SinkBranchStillProducesAWord(t *testing.T) {
	ta := buildPlant(t)
	// phi = b: reading "a" should route the ATA into its sink location,
	// not drop the transition, since init(b,a) is FALSE->sink, not
	// unsatisfiable as a whole transition formula.
	automaton, err := translate.Translate[plant.Action](mtl.Atom("b"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	plantConfig := ta.InitialConfiguration()
	ataConfig := automaton.InitialConfiguration()

	words := Next(ta, automaton, plantConfig, ataConfig, 1)

	aWords, ok := words["a"]
	assert.True(t, ok)
	assert.Len(t, aWords, 1)
}
