package search

import (
	"testing"

	"github.com/brightwell/tgsynth/internal/canon"
	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/translate"
	"github.com/stretchr/testify/assert"
)

// buildPlant returns the same two-location automaton used elsewhere in this
// module's tests: l0 --a--> l1, l1 --b--> l0 (resetting x), with l1 the
// sole accepting location.
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

func Test_New_BuildsUnlabeledRoot(t *testing.T) {
	ta := buildPlant(t)
	automaton, err := translate.Translate[plant.Action](mtl.Atom("a"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	e, err := New[translate.Location](ta, automaton, Config{
		ControllerActions:  setutil.Of[plant.Action]("b"),
		EnvironmentActions: setutil.Of[plant.Action]("a"),
		K:                  1,
	})
	assert.NoError(t, err)
	assert.NotNil(t, e.Root)
	assert.Equal(t, StateUnknown, e.Root.State())
	assert.Equal(t, LabelUnlabeled, e.Root.Label())
	assert.Len(t, e.Root.Words(), 1)
}

func Test_New_RejectsOverlappingActionOwnership(t *testing.T) {
	ta := buildPlant(t)
	automaton, err := translate.Translate[plant.Action](mtl.Atom("a"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	_, err = New[translate.Location](ta, automaton, Config{
		ControllerActions:  setutil.Of[plant.Action]("a"),
		EnvironmentActions: setutil.Of[plant.Action]("a"),
		K:                  1,
	})
	assert.Error(t, err)
}

// Test_Step_PropagatesBottomWhenEnvironmentForcesBadNode hand-traces a
// one-move game: phi = a DualUntil b (unbounded) gives the ATA a single
// accepting location reachable directly from the initial one on "a"; the
// plant's only move from l0 is "a", landing in the accepting location l1.
// Since "a" is environment-owned and is root's only available move, the
// environment forces a jointly-accepting (bad) configuration in one step,
// so incremental labeling should mark the root BOTTOM after two Step calls:
// one to expand the root into its single child, one to expand that child
// and discover it is bad.
func Test_Step_PropagatesBottomWhenEnvironmentForcesBadNode(t *testing.T) {
	ta := buildPlant(t)
	phi := mtl.DualUntil(mtl.Atom("a"), mtl.Atom("b"), mtl.Unbounded())
	automaton, err := translate.Translate(phi, []plant.Action{"a", "b"})
	assert.NoError(t, err)

	e, err := New[translate.Location](ta, automaton, Config{
		ControllerActions:   setutil.Of[plant.Action]("b"),
		EnvironmentActions:  setutil.Of[plant.Action]("a"),
		K:                   1,
		IncrementalLabeling: true,
	})
	assert.NoError(t, err)

	assert.True(t, e.Step(), "first step expands the root")
	assert.True(t, e.Step(), "second step expands root's only child")
	assert.False(t, e.Step(), "queue should now be drained")

	assert.Equal(t, LabelBottom, e.Root.Label())
	assert.NotEmpty(t, e.Root.LabelReason())

	children := e.Root.Children()
	assert.Len(t, children, 1)
	assert.Equal(t, StateBad, children[0].Child.State())
}

func Test_HasSatisfiableATAConfiguration_TreatsZeroATASymbolsAsSatisfiable(t *testing.T) {
	ta := buildPlant(t)
	automaton, err := translate.Translate(mtl.Atom("a"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	e, err := New[translate.Location](ta, automaton, Config{
		ControllerActions:  setutil.Of[plant.Action]("b"),
		EnvironmentActions: setutil.Of[plant.Action]("a"),
		K:                  1,
	})
	assert.NoError(t, err)

	plantOnly := canon.Word[translate.Location]{
		setutil.Of[canon.RegionSymbol[translate.Location]](
			canon.PlantSymbol[translate.Location](canon.PlantRegionState{Location: "l0", Clock: "x", Region: 0}),
		),
	}
	n := newNode[translate.Location]([]canon.Word[translate.Location]{plantOnly})
	assert.True(t, e.hasSatisfiableATAConfiguration(n))
}

// Test_HasSatisfiableATAConfiguration_OneSinkConjunctKillsTheWord builds a
// word whose single partition sequence has one live (non-sink) ATA symbol
// and one sink ATA symbol. An ATA configuration is a conjunction of its
// region symbols, so the sink conjunct alone already makes the whole word
// dead; the still-live conjunct cannot rescue it.
func Test_HasSatisfiableATAConfiguration_OneSinkConjunctKillsTheWord(t *testing.T) {
	ta := buildPlant(t)
	automaton, err := translate.Translate(mtl.Atom("a"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	e, err := New[translate.Location](ta, automaton, Config{
		ControllerActions:  setutil.Of[plant.Action]("b"),
		EnvironmentActions: setutil.Of[plant.Action]("a"),
		K:                  1,
	})
	assert.NoError(t, err)

	mixed := canon.Word[translate.Location]{
		setutil.Of[canon.RegionSymbol[translate.Location]](
			canon.ATASymbol[translate.Location](canon.ATARegionState[translate.Location]{Location: translate.Initial(), Region: 0}),
		),
		setutil.Of[canon.RegionSymbol[translate.Location]](
			canon.ATASymbol[translate.Location](canon.ATARegionState[translate.Location]{Location: translate.Sink(), Region: 1}),
		),
	}
	n := newNode[translate.Location]([]canon.Word[translate.Location]{mixed})
	assert.False(t, e.hasSatisfiableATAConfiguration(n),
		"a word mixing a live and a sink ATA conjunct must register as dead")
}

func Test_DominatesAncestor_DisabledByDefault(t *testing.T) {
	ta := buildPlant(t)
	automaton, err := translate.Translate(mtl.Atom("a"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	e, err := New[translate.Location](ta, automaton, Config{
		ControllerActions:  setutil.Of[plant.Action]("b"),
		EnvironmentActions: setutil.Of[plant.Action]("a"),
		K:                  1,
	})
	assert.NoError(t, err)

	child := newNode[translate.Location](e.Root.Words())
	child.addParent(e.Root)
	assert.False(t, e.dominatesAncestor(child), "domination pruning is off unless EnableDomination is set")
}
