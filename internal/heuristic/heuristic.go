// Package heuristic implements the search engine's pluggable node-priority
// functions (component C9): lower cost means higher expansion priority.
//
// Grounded on
// _examples/original_source/src/search/include/search/heuristics.h's
// Heuristic<CostType, Location, ActionType> hierarchy (BfsHeuristic,
// DfsHeuristic, TimeHeuristic, NumCanonicalWordsHeuristic,
// PreferEnvironmentActionHeuristic, RandomHeuristic, CompositeHeuristic); the
// search engine (internal/search) supplies the per-node Info rather than
// handing heuristics the node itself, so this package stays free of a
// dependency back on internal/search/internal/canon.
package heuristic

// Info is the per-node summary a Heuristic computes a cost from. The search
// engine fills this in once, at the moment a node is first pushed onto the
// expansion queue, from data already known about how the node was reached.
type Info struct {
	// Sequence is the order in which the node was discovered, assigned by a
	// monotonic counter. BFS and DFS are expressed purely in terms of it.
	Sequence int64
	// PathCost is the sum of the minimum incoming region increment along the
	// path through which the node was first discovered: the discovering
	// parent's PathCost plus the smallest increment on its edges to the node.
	// It is fixed when the node is created; a cheaper path found later does
	// not lower it.
	PathCost int64
	// NumWords is the number of canonical words merged into the node.
	NumWords int
	// EnvironmentIncoming reports whether any edge reaching the node was
	// labeled with an environment action.
	EnvironmentIncoming bool
}

// Heuristic assigns an expansion cost to a node; the engine's priority queue
// pops the lowest-cost task first.
type Heuristic interface {
	Cost(Info) int64
}

type funcHeuristic func(Info) int64

func (f funcHeuristic) Cost(i Info) int64 { return f(i) }

// BFS expands nodes in discovery order (a FIFO queue).
func BFS() Heuristic {
	return funcHeuristic(func(i Info) int64 { return i.Sequence })
}

// DFS expands the most recently discovered node first (a LIFO stack).
func DFS() Heuristic {
	return funcHeuristic(func(i Info) int64 { return -i.Sequence })
}

// Time prioritizes nodes reachable sooner in simulated time.
func Time() Heuristic {
	return funcHeuristic(func(i Info) int64 { return i.PathCost })
}

// NumCanonicalWords prioritizes nodes with fewer merged canonical words,
// preferring to resolve simpler nodes first.
func NumCanonicalWords() Heuristic {
	return funcHeuristic(func(i Info) int64 { return int64(i.NumWords) })
}

// PreferEnvironment prioritizes nodes reached via an environment action,
// exploring how the environment can attack before exhausting controller
// branches.
func PreferEnvironment() Heuristic {
	return funcHeuristic(func(i Info) int64 {
		if i.EnvironmentIncoming {
			return 0
		}
		return 1
	})
}

// Random assigns a deterministic pseudo-random cost derived from seed and
// the node's discovery sequence, using splitmix64 so that two engines built
// with the same seed explore nodes in the same order.
func Random(seed int64) Heuristic {
	return funcHeuristic(func(i Info) int64 {
		x := uint64(seed) + uint64(i.Sequence)*0x9E3779B97F4A7C15
		x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
		x = (x ^ (x >> 27)) * 0x94D049BB133111EB
		x ^= x >> 31
		return int64(x >> 1) // keep non-negative; cost ordering only cares about relative magnitude
	})
}

// Weighted is one term of a Composite heuristic.
type Weighted struct {
	Weight int64
	H      Heuristic
}

// Composite combines several heuristics into a single weighted-sum cost.
func Composite(terms ...Weighted) Heuristic {
	return funcHeuristic(func(i Info) int64 {
		var sum int64
		for _, t := range terms {
			sum += t.Weight * t.H.Cost(i)
		}
		return sum
	})
}
