package tgdebug

import (
	"strings"
	"testing"

	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/search"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/translate"
	"github.com/stretchr/testify/assert"
)

// Only engineAdapter's non-interactive logic is exercised here; Run by
// default drives a real readline.Instance and so, like the original
// internal/input package, is left untested by unit tests.
func Test_EngineAdapter_StepNodeDescription(t *testing.T) {
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

	automaton, err := translate.Translate(mtl.Atom("a"), []plant.Action{"a", "b"})
	assert.NoError(t, err)

	eng, err := search.New[translate.Location](ta, automaton, search.Config{
		ControllerActions:  setutil.Of[plant.Action]("b"),
		EnvironmentActions: setutil.Of[plant.Action]("a"),
		K:                  1,
	})
	assert.NoError(t, err)

	s := Wrap(eng)

	done, desc := s.StepNodeDescription()
	assert.False(t, done)
	assert.True(t, strings.Contains(desc, "seq=") && strings.Contains(desc, "state="))

	// drain whatever remains; eventually the queue reports done.
	for {
		done, _ = s.StepNodeDescription()
		if done {
			break
		}
	}
	s.Stop()
}
