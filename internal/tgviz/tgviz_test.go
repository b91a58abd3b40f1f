package tgviz

import (
	"strings"
	"testing"

	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/search"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/translate"
	"github.com/stretchr/testify/assert"
)

func buildPlant(t *testing.T) *plant.TimedAutomaton {
	t.Helper()
	ta, err := plant.NewTimedAutomaton(
		[]plant.Location{"l0", "l1"},
		setutil.Of[plant.Action]("a", "b"),
		"l0",
		setutil.Of[plant.Location]("l1"),
		[]string{"x"},
		[]plant.Transition{
			{Source: "l0", Symbol: "a", Target: "l1"},
			{Source: "l1", Symbol: "b", Target: "l0", Resets: []string{"x"}},
		},
	)
	assert.NoError(t, err)
	return ta
}

func Test_RenderSearchTree_CoversEveryReachableNode(t *testing.T) {
	ta := buildPlant(t)
	automaton, err := translate.Translate(mtl.Atom("a"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	e, err := search.New[translate.Location](ta, automaton, search.Config{
		ControllerActions:   setutil.Of[plant.Action]("b"),
		EnvironmentActions:  setutil.Of[plant.Action]("a"),
		K:                   1,
		IncrementalLabeling: true,
	})
	assert.NoError(t, err)
	for e.Step() {
	}

	dot := RenderSearchTree(e.Root)
	assert.True(t, strings.HasPrefix(dot, "digraph search_tree {"))
	assert.Contains(t, dot, "state=")
	assert.Contains(t, dot, "->")
}

func Test_RenderController_HidesLabelsWhenRequested(t *testing.T) {
	ta, err := plant.NewTimedAutomaton(
		[]plant.Location{"c0", "c1"},
		setutil.Of[plant.Action]("a"),
		"c0",
		setutil.Of[plant.Location]("c1"),
		[]string{"x"},
		[]plant.Transition{
			{Source: "c0", Symbol: "a", Target: "c1", Guards: []clock.Constraint{mustConstraint(t, "x", clock.GreaterEqual, 2)}},
		},
	)
	assert.NoError(t, err)

	withLabels := RenderController(ta, false)
	assert.Contains(t, withLabels, "x >= 2")

	hidden := RenderController(ta, true)
	assert.NotContains(t, hidden, "x >= 2")
	assert.Contains(t, hidden, `"c0" -> "c1" [label="a"]`)
}

func mustConstraint(t *testing.T, name string, op clock.Comparator, k int) clock.Constraint {
	t.Helper()
	c, err := clock.New(name, op, k)
	assert.NoError(t, err)
	return c
}
