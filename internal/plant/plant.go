// Package plant defines the abstract timed-plant contract (component C2)
// and its default timed-automaton instantiation, including products of
// timed automata.
package plant

import (
	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/setutil"
)

// Location names a plant control state. The text-format loader and the CLI
// both deal exclusively in named locations, so Location is a plain string
// rather than a generic type parameter.
type Location string

// Action names a symbol in the plant's alphabet, shared with the ATA
// alphabet during search.
type Action string

// Configuration is a plant state: a control location paired with a clock
// valuation. Plants are observed read-only by the successor generator;
// Configuration is an immutable value type and every mutator returns a new
// Configuration.
type Configuration struct {
	Location   Location
	Valuations map[string]clock.Value
}

// NewConfiguration builds a Configuration, copying the given valuations so
// the caller's map may be reused.
func NewConfiguration(loc Location, valuations map[string]clock.Value) Configuration {
	cp := make(map[string]clock.Value, len(valuations))
	for k, v := range valuations {
		cp[k] = v
	}
	return Configuration{Location: loc, Valuations: cp}
}

// Tick returns a Configuration with every clock advanced by delta.
func (c Configuration) Tick(delta clock.Value) Configuration {
	next := make(map[string]clock.Value, len(c.Valuations))
	for name, v := range c.Valuations {
		next[name] = v.Tick(delta)
	}
	return Configuration{Location: c.Location, Valuations: next}
}

// Reset returns a Configuration with the named clocks reset to zero and the
// location changed to loc.
func (c Configuration) Reset(loc Location, clocks []string) Configuration {
	next := make(map[string]clock.Value, len(c.Valuations))
	for k, v := range c.Valuations {
		next[k] = v
	}
	for _, name := range clocks {
		next[name] = 0
	}
	return Configuration{Location: loc, Valuations: next}
}

// ClockNames returns the names of every clock tracked by c, in unspecified
// order.
func (c Configuration) ClockNames() []string {
	names := make([]string, 0, len(c.Valuations))
	for name := range c.Valuations {
		names = append(names, name)
	}
	return names
}

// Plant is the abstract contract the search engine and successor generator
// consume. Both ordinary timed automata (TimedAutomaton) and a richer
// procedural action language are legal instantiations.
type Plant interface {
	// InitialConfiguration returns the plant's starting configuration.
	InitialConfiguration() Configuration

	// IsAccepting reports whether cfg is an accepting configuration.
	IsAccepting(cfg Configuration) bool

	// Alphabet returns the set of actions the plant may take.
	Alphabet() setutil.Set[Action]

	// Step returns every configuration reachable by taking action a from
	// cfg; empty if a is not enabled in cfg. Plants may be non-deterministic,
	// hence the set-valued result.
	Step(cfg Configuration, a Action) []Configuration

	// LargestConstant returns the largest integer constant occurring in any
	// clock constraint of the plant, used to compute the maximal constant K.
	LargestConstant() int

	// Clocks returns the names of every clock in the plant.
	Clocks() []string
}
