package plant

import (
	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

// Transition is one edge of a TimedAutomaton: taking Symbol from Source
// moves to Target, provided every guard is satisfied by the current clock
// valuation; applying it resets every clock in Resets to zero.
type Transition struct {
	Source Location
	Symbol Action
	Target Location
	Guards []clock.Constraint
	Resets []string
}

// enabled reports whether t fires from cfg on symbol a.
func (t Transition) enabled(cfg Configuration, a Action) bool {
	if t.Symbol != a {
		return false
	}
	for _, g := range t.Guards {
		v, ok := cfg.Valuations[g.Clock]
		if !ok {
			return false
		}
		if !g.Satisfies(v) {
			return false
		}
	}
	return true
}

// TimedAutomaton is the default Plant instantiation: an ordinary timed
// automaton given as an explicit transition relation.
type TimedAutomaton struct {
	Locations   []Location
	Alpha       setutil.Set[Action]
	Initial     Location
	Final       setutil.Set[Location]
	ClockNames  []string
	Transitions []Transition
}

var _ Plant = (*TimedAutomaton)(nil)

// NewTimedAutomaton validates and constructs a TimedAutomaton. It rejects
// any transition that names a location, clock, or symbol outside the
// automaton's declared sets, per §7.
func NewTimedAutomaton(locations []Location, alphabet setutil.Set[Action], initial Location, final setutil.Set[Location], clockNames []string, transitions []Transition) (*TimedAutomaton, error) {
	locSet := setutil.Of(locations...)
	clockSet := setutil.Of(clockNames...)

	if !locSet.Has(initial) {
		return nil, tgerrors.UnknownName("location", string(initial))
	}
	for loc := range final {
		if !locSet.Has(loc) {
			return nil, tgerrors.UnknownName("location", string(loc))
		}
	}
	for _, tr := range transitions {
		if !locSet.Has(tr.Source) {
			return nil, tgerrors.UnknownName("location", string(tr.Source))
		}
		if !locSet.Has(tr.Target) {
			return nil, tgerrors.UnknownName("location", string(tr.Target))
		}
		if !alphabet.Has(tr.Symbol) {
			return nil, tgerrors.UnknownName("symbol", string(tr.Symbol))
		}
		for _, g := range tr.Guards {
			if !clockSet.Has(g.Clock) {
				return nil, tgerrors.UnknownName("clock", g.Clock)
			}
		}
		for _, c := range tr.Resets {
			if !clockSet.Has(c) {
				return nil, tgerrors.UnknownName("clock", c)
			}
		}
	}

	return &TimedAutomaton{
		Locations:   locations,
		Alpha:       alphabet,
		Initial:     initial,
		Final:       final,
		ClockNames:  clockNames,
		Transitions: transitions,
	}, nil
}

// InitialConfiguration returns the automaton's start location with every
// clock at zero.
func (ta *TimedAutomaton) InitialConfiguration() Configuration {
	vals := make(map[string]clock.Value, len(ta.ClockNames))
	for _, c := range ta.ClockNames {
		vals[c] = 0
	}
	return Configuration{Location: ta.Initial, Valuations: vals}
}

// IsAccepting reports whether cfg.Location is a final location.
func (ta *TimedAutomaton) IsAccepting(cfg Configuration) bool {
	return ta.Final.Has(cfg.Location)
}

// Alphabet returns the automaton's action alphabet.
func (ta *TimedAutomaton) Alphabet() setutil.Set[Action] {
	return ta.Alpha
}

// Step returns every configuration reached by firing an enabled transition
// on action a from cfg.
func (ta *TimedAutomaton) Step(cfg Configuration, a Action) []Configuration {
	var out []Configuration
	for _, tr := range ta.Transitions {
		if tr.Source != cfg.Location {
			continue
		}
		if !tr.enabled(cfg, a) {
			continue
		}
		out = append(out, cfg.Reset(tr.Target, tr.Resets))
	}
	return out
}

// LargestConstant returns the largest integer constant occurring in any
// guard of the automaton.
func (ta *TimedAutomaton) LargestConstant() int {
	max := 0
	for _, tr := range ta.Transitions {
		for _, g := range tr.Guards {
			if g.K > max {
				max = g.K
			}
		}
	}
	return max
}

// Clocks returns the automaton's clock names.
func (ta *TimedAutomaton) Clocks() []string {
	return ta.ClockNames
}
