package extract

import (
	"testing"

	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/search"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/translate"
	"github.com/stretchr/testify/assert"
)

// buildLoopPlant is a single-location automaton with one self-loop action
// that always resets its only clock: a plant that can never reach an
// accepting configuration, so any specification violation monitored
// against an atom disjoint from its alphabet is permanently unsatisfiable.
func buildLoopPlant(t *testing.T) *plant.TimedAutomaton {
	t.Helper()
	ta, err := plant.NewTimedAutomaton(
		[]plant.Location{"l0"},
		setutil.Of[plant.Action]("a"),
		"l0",
		setutil.New[plant.Location](),
		[]string{"x"},
		[]plant.Transition{
			{Source: "l0", Symbol: "a", Target: "l0", Resets: []string{"x"}},
		},
	)
	assert.NoError(t, err)
	return ta
}

// Test_Extract_SelfLoopRootProducesSingleLocationController hand-traces the
// simplest possible winning strategy: a plant whose only action resets its
// clock every time it fires collapses the entire search DAG onto its own
// root (every successor's reg_A projection coincides with the root's), so
// the fixed-point labeling pass marks the root TOP (it can never be forced
// bad, vacuously), and the extracted controller is a single self-looping
// location with two region-disjoint guards covering all elapsed time.
func Test_Extract_SelfLoopRootProducesSingleLocationController(t *testing.T) {
	ta := buildLoopPlant(t)
	automaton, err := translate.Translate(mtl.Atom("never"), []plant.Action{"a"})
	assert.NoError(t, err)

	e, err := search.New[translate.Location](ta, automaton, search.Config{
		ControllerActions:  setutil.Of[plant.Action]("a"),
		EnvironmentActions: setutil.New[plant.Action](),
		K:                  0,
	})
	assert.NoError(t, err)

	assert.True(t, e.Step(), "expands the root into its self-loop")
	assert.False(t, e.Step(), "no new nodes to expand")

	e.Label(nil)
	assert.Equal(t, search.LabelTop, e.Root.Label())

	controller, err := Extract(e.Root, 0)
	assert.NoError(t, err)

	assert.Len(t, controller.Locations, 1)
	assert.Len(t, controller.Transitions, 2)
	assert.Equal(t, controller.Initial, controller.Locations[0])
	assert.True(t, controller.Final.Has(controller.Initial), "the root's only reachable state is itself")

	var sawZero, sawPositive bool
	for _, tr := range controller.Transitions {
		assert.Equal(t, controller.Initial, tr.Source)
		assert.Equal(t, controller.Initial, tr.Target)
		assert.Equal(t, plant.Action("a"), tr.Symbol)
		assert.Len(t, tr.Guards, 1)
		switch tr.Guards[0].Op {
		case clock.Equal:
			sawZero = true
		case clock.Greater:
			sawPositive = true
		}
	}
	assert.True(t, sawZero, "one transition should guard the exact-zero region")
	assert.True(t, sawPositive, "one transition should guard the saturated region")
}

func Test_Extract_RejectsNonTopRoot(t *testing.T) {
	ta := buildLoopPlant(t)
	automaton, err := translate.Translate(mtl.Atom("never"), []plant.Action{"a"})
	assert.NoError(t, err)

	e, err := search.New[translate.Location](ta, automaton, search.Config{
		ControllerActions:  setutil.Of[plant.Action]("a"),
		EnvironmentActions: setutil.New[plant.Action](),
		K:                  0,
	})
	assert.NoError(t, err)

	_, err = Extract(e.Root, 0)
	assert.Error(t, err)
}
