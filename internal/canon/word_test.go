package canon

import (
	"testing"

	"github.com/brightwell/tgsynth/internal/ata"
	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/stretchr/testify/assert"
)

// ataLoc is a stand-in for the translator's Location type in tests that do
// not need the translator itself.
type ataLoc string

func Test_GetCanonicalWord_GroupsByFractionalPart(t *testing.T) {
	plantConfig := plant.NewConfiguration("l0", map[string]clock.Value{"x": 0.5})
	ataConfig := setutil.Of(ata.State[ataLoc]{Location: "s0", Clock: 0.5})

	w := GetCanonicalWord[ataLoc](plantConfig, ataConfig, 2)
	assert.NoError(t, Validate(w))
	assert.Len(t, w, 1, "equal fractional parts should land in one partition")
	assert.Equal(t, 2, w[0].Len())
}

func Test_GetCanonicalWord_SeparatesDistinctFractions(t *testing.T) {
	plantConfig := plant.NewConfiguration("l0", map[string]clock.Value{"x": 0, "y": 1.5})
	w := GetCanonicalWord[ataLoc](plantConfig, setutil.New[ata.State[ataLoc]](), 2)
	assert.NoError(t, Validate(w))
	assert.Len(t, w, 2)
	// the fractional-zero partition must come first.
	assert.True(t, isEvenPartition(w[0]))
}

// Test_RoundTrip grounds the round-trip property of §8: get_canonical_word
// of get_candidate of a word reproduces that word.
func Test_RoundTrip(t *testing.T) {
	plantConfig := plant.NewConfiguration("l0", map[string]clock.Value{"x": 0, "y": 2.0 / 3.0})
	w := GetCanonicalWord[ataLoc](plantConfig, setutil.New[ata.State[ataLoc]](), 2)
	assert.Len(t, w, 2)

	candidatePlant, candidateATA := GetCandidate(w)
	assert.True(t, candidateATA.Empty())

	w2 := GetCanonicalWord[ataLoc](candidatePlant, setutil.New[ata.State[ataLoc]](), 2)
	assert.Equal(t, w.String(), w2.String())
}

func Test_GetTimeSuccessor_SaturatedIsFixedPoint(t *testing.T) {
	sat := clock.Saturated(2)
	w := Word[ataLoc]{
		setutil.Of(PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "x", Region: sat})),
	}
	succ := GetTimeSuccessor(w, 2)
	assert.Equal(t, w.String(), succ.String())
}

func Test_GetNthTimeSuccessor_ReachesSaturation(t *testing.T) {
	w := Word[ataLoc]{
		setutil.Of(PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "x", Region: 0})),
	}
	k := 2
	maxSteps := 4*k + 4
	succ := GetNthTimeSuccessor(w, maxSteps, k)
	for _, sym := range succ[len(succ)-1].Elements() {
		assert.Equal(t, clock.Saturated(k), sym.RegionIndex())
	}
	// idempotent once saturated.
	again := GetTimeSuccessor(succ, k)
	assert.Equal(t, succ.String(), again.String())
}

func Test_GetTimeSuccessors_EndsAtFixedPoint(t *testing.T) {
	w := Word[ataLoc]{
		setutil.Of(PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "x", Region: 0})),
	}
	k := 2
	successors := GetTimeSuccessors(w, k)

	assert.Equal(t, 0, successors[0].Increment)
	assert.Equal(t, w.String(), successors[0].Word.String())
	for i, ts := range successors {
		assert.Equal(t, i, ts.Increment)
	}
	last := successors[len(successors)-1].Word
	assert.Equal(t, last.String(), GetTimeSuccessor(last, k).String())
}

func Test_RegA_DropsATASymbolsAndEmptyPartitions(t *testing.T) {
	w := Word[ataLoc]{
		setutil.Of(ATASymbol[ataLoc](ATARegionState[ataLoc]{Location: "s0", Region: 1})),
		setutil.Of(
			PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "x", Region: 1}),
			ATASymbol[ataLoc](ATARegionState[ataLoc]{Location: "s0", Region: 1}),
		),
	}
	projected := RegA(w)
	assert.Len(t, projected, 1)
	assert.True(t, projected[0].Elements()[0].IsPlant())
}

func Test_IsMonotonicallyDominated(t *testing.T) {
	small := Word[ataLoc]{
		setutil.Of(PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "x", Region: 1})),
	}
	big := Word[ataLoc]{
		setutil.Of(
			PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "x", Region: 1}),
			PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "y", Region: 1}),
		),
	}
	assert.True(t, IsMonotonicallyDominated(small, big))
	assert.False(t, IsMonotonicallyDominated(big, small))
}

func Test_Validate_RejectsMixedParity(t *testing.T) {
	w := Word[ataLoc]{
		setutil.Of(
			PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "x", Region: 0}),
			PlantSymbol[ataLoc](PlantRegionState{Location: "l0", Clock: "y", Region: 1}),
		),
	}
	assert.Error(t, Validate(w))
}
