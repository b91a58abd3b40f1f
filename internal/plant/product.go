package plant

import (
	"strconv"
	"strings"

	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/setutil"
)

// componentClock prefixes a component's clock name with its index so the
// disjoint union of clocks across components never collides.
func componentClock(component int, name string) string {
	return strconv.Itoa(component) + ":" + name
}

// Product is a Plant built from a vector of component automata, synchronized
// on a given set of shared actions. Its location is the tuple of component
// locations (rendered as a single string), and its clocks are the disjoint
// union of the components' clocks. Non-synchronized actions step exactly one
// component; synchronized actions step, simultaneously, every component
// whose alphabet contains the action, leaving the other components
// unchanged.
type Product struct {
	Components []*TimedAutomaton
	Synced     setutil.Set[Action]
}

var _ Plant = (*Product)(nil)

// NewProduct builds a Product over the given components, synchronized on
// syncedActions.
func NewProduct(components []*TimedAutomaton, syncedActions setutil.Set[Action]) *Product {
	return &Product{Components: components, Synced: syncedActions}
}

func (p *Product) tupleLocation(locs []Location) Location {
	parts := make([]string, len(locs))
	for i, l := range locs {
		parts[i] = string(l)
	}
	return Location(strings.Join(parts, "|"))
}

func splitTuple(loc Location, n int) []string {
	parts := strings.SplitN(string(loc), "|", n)
	return parts
}

// InitialConfiguration returns the tuple of each component's initial
// configuration, with clocks renamed into the disjoint union.
func (p *Product) InitialConfiguration() Configuration {
	locs := make([]Location, len(p.Components))
	vals := make(map[string]clock.Value)
	for i, c := range p.Components {
		init := c.InitialConfiguration()
		locs[i] = init.Location
		for name, v := range init.Valuations {
			vals[componentClock(i, name)] = v
		}
	}
	return Configuration{Location: p.tupleLocation(locs), Valuations: vals}
}

// IsAccepting reports whether every component's slice of the tuple location
// is one of that component's final locations.
func (p *Product) IsAccepting(cfg Configuration) bool {
	locs := splitTuple(cfg.Location, len(p.Components))
	if len(locs) != len(p.Components) {
		return false
	}
	for i, c := range p.Components {
		if !c.Final.Has(Location(locs[i])) {
			return false
		}
	}
	return true
}

// Alphabet returns the union of every component's alphabet.
func (p *Product) Alphabet() setutil.Set[Action] {
	all := setutil.New[Action]()
	for _, c := range p.Components {
		all.AddAll(c.Alpha)
	}
	return all
}

// Step fires a synchronized action a on every component whose alphabet
// contains a, and a non-synchronized action on exactly the one component
// whose alphabet contains it. The result is the Cartesian product of each
// stepped component's successor set.
func (p *Product) Step(cfg Configuration, a Action) []Configuration {
	locs := splitTuple(cfg.Location, len(p.Components))
	if len(locs) != len(p.Components) {
		return nil
	}

	componentConfig := func(i int) Configuration {
		vals := make(map[string]clock.Value)
		prefix := componentClock(i, "")
		for name, v := range cfg.Valuations {
			if strings.HasPrefix(name, prefix) {
				vals[strings.TrimPrefix(name, prefix)] = v
			}
		}
		return Configuration{Location: Location(locs[i]), Valuations: vals}
	}

	if p.Synced.Has(a) {
		// Every component that has a in its alphabet must step; components
		// that don't have a in their alphabet are left unchanged.
		perComponent := make([][]Configuration, len(p.Components))
		for i, c := range p.Components {
			if !c.Alpha.Has(a) {
				perComponent[i] = []Configuration{componentConfig(i)}
				continue
			}
			perComponent[i] = c.Step(componentConfig(i), a)
			if len(perComponent[i]) == 0 {
				return nil
			}
		}
		return p.combine(perComponent)
	}

	// Non-synchronized: exactly one component owns a.
	var owner = -1
	for i, c := range p.Components {
		if c.Alpha.Has(a) {
			owner = i
			break
		}
	}
	if owner < 0 {
		return nil
	}
	successors := p.Components[owner].Step(componentConfig(owner), a)
	out := make([]Configuration, 0, len(successors))
	for _, succ := range successors {
		locsCopy := append([]Location(nil), toLocations(locs)...)
		locsCopy[owner] = succ.Location
		vals := make(map[string]clock.Value)
		for i := range p.Components {
			var src map[string]clock.Value
			if i == owner {
				src = succ.Valuations
			} else {
				src = componentConfig(i).Valuations
			}
			for name, v := range src {
				vals[componentClock(i, name)] = v
			}
		}
		out = append(out, Configuration{Location: p.tupleLocation(locsCopy), Valuations: vals})
	}
	return out
}

func toLocations(ss []string) []Location {
	out := make([]Location, len(ss))
	for i, s := range ss {
		out[i] = Location(s)
	}
	return out
}

// combine takes the Cartesian product of per-component successor lists and
// merges each tuple into a single joint Configuration.
func (p *Product) combine(perComponent [][]Configuration) []Configuration {
	results := []Configuration{{Location: "", Valuations: map[string]clock.Value{}}}
	locsAcc := make([][]Location, 1)
	locsAcc[0] = nil

	for i, options := range perComponent {
		var nextResults []Configuration
		var nextLocs [][]Location
		for ri, r := range results {
			for _, opt := range options {
				vals := make(map[string]clock.Value, len(r.Valuations)+len(opt.Valuations))
				for k, v := range r.Valuations {
					vals[k] = v
				}
				for name, v := range opt.Valuations {
					vals[componentClock(i, name)] = v
				}
				newLocs := append(append([]Location(nil), locsAcc[ri]...), opt.Location)
				nextResults = append(nextResults, Configuration{Valuations: vals})
				nextLocs = append(nextLocs, newLocs)
			}
		}
		results = nextResults
		locsAcc = nextLocs
	}

	for i := range results {
		results[i].Location = p.tupleLocation(locsAcc[i])
	}
	return results
}

// LargestConstant returns the largest constant across every component.
func (p *Product) LargestConstant() int {
	max := 0
	for _, c := range p.Components {
		if lc := c.LargestConstant(); lc > max {
			max = lc
		}
	}
	return max
}

// Clocks returns the disjoint union of every component's clocks, renamed
// with their component-index prefix.
func (p *Product) Clocks() []string {
	var out []string
	for i, c := range p.Components {
		for _, name := range c.ClockNames {
			out = append(out, componentClock(i, name))
		}
	}
	return out
}
