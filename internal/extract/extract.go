// Package extract implements the controller-extraction pass (component
// C10): walking a TOP-labeled search DAG and emitting a deterministic timed
// automaton that replays the winning strategy the search discovered.
//
// Grounded on
// _examples/original_source/src/search/include/search/create_controller.h
// (create_controller, add_node_to_controller,
// get_constraints_from_outgoing_action, get_constraints_from_time_successor).
package extract

import (
	"sort"

	"github.com/brightwell/tgsynth/internal/canon"
	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/search"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

// nodeKey is the controller's location name for a search node: the string
// rendering of the reg_A projection of one of its words. Every word a node
// holds shares the same reg_A projection by construction, and this is the
// same identity the search engine itself uses to merge nodes, so two
// distinct search.Node values that happen to represent the same abstract
// state collapse onto the same controller location automatically.
func nodeKey[T comparable](n *search.Node[T]) plant.Location {
	return plant.Location(canon.RegA(n.Words()[0]).String())
}

type builder[T comparable] struct {
	k int

	locations setutil.Set[plant.Location]
	finals    setutil.Set[plant.Location]
	clocks    setutil.Set[string]
	actions   setutil.Set[plant.Action]

	transitions []plant.Transition
}

// Extract builds the timed-automaton controller for the winning strategy
// rooted at root, per create_controller. root must already be labeled TOP;
// extracting from anything else is a contradiction, since there would be no
// winning strategy to report.
func Extract[T comparable](root *search.Node[T], k int) (*plant.TimedAutomaton, error) {
	if root.Label() != search.LabelTop {
		return nil, tgerrors.Constraintf("cannot extract a controller from a node not labeled TOP (got %s)", root.Label())
	}

	b := &builder[T]{
		k:         k,
		locations: setutil.New[plant.Location](),
		finals:    setutil.New[plant.Location](),
		clocks:    setutil.New[string](),
		actions:   setutil.New[plant.Action](),
	}
	rootKey := nodeKey(root)
	b.locations.Add(rootKey)
	b.addNode(root)

	guardClocks := make([]string, 0, b.clocks.Len())
	for _, c := range b.clocks.Elements() {
		guardClocks = append(guardClocks, c)
	}
	sort.Strings(guardClocks)

	locs := b.locations.Elements()
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })

	sort.Slice(b.transitions, func(i, j int) bool {
		ti, tj := b.transitions[i], b.transitions[j]
		if ti.Source != tj.Source {
			return ti.Source < tj.Source
		}
		if ti.Symbol != tj.Symbol {
			return ti.Symbol < tj.Symbol
		}
		return ti.Target < tj.Target
	})

	return plant.NewTimedAutomaton(locs, b.actions, rootKey, b.finals, guardClocks, b.transitions)
}

// addNode walks n's outgoing edges, adding a controller location and
// transition for every successor still labeled TOP. To break cycles in the
// search DAG, it only recurses into a successor the first time that
// successor's location is added — on every later encounter the location (and
// its own outgoing edges) has already been or will already be processed via
// that first visit.
func (b *builder[T]) addNode(n *search.Node[T]) {
	source := nodeKey(n)
	for _, edge := range n.Children() {
		if edge.Child.Label() != search.LabelTop {
			continue
		}
		target := nodeKey(edge.Child)
		isNew := !b.locations.Has(target)
		b.locations.Add(target)
		b.finals.Add(target)
		b.actions.Add(edge.Action)

		guard := guardFor(n, edge.Increment, b.k)
		for _, c := range guard {
			b.clocks.Add(c.Clock)
		}

		b.transitions = append(b.transitions, plant.Transition{
			Source: source,
			Symbol: edge.Action,
			Target: target,
			Guards: guard,
		})

		if isNew {
			b.addNode(edge.Child)
		}
	}
}

// guardFor computes the clock guard for taking the edge reached after
// increment pure-time-passage steps from n, per
// get_constraints_from_outgoing_action/get_constraints_from_time_successor:
// project n onto its plant-only region word, advance it increment times,
// and characterize every resulting plant region with the constraint(s) that
// exactly pin it down (BoundType Both, since this pass considers one
// increment at a time rather than merging a contiguous run of them).
func guardFor[T comparable](n *search.Node[T], increment, k int) []clock.Constraint {
	regionWord := canon.GetNthTimeSuccessor(canon.RegA(n.Words()[0]), increment, k)

	var guard []clock.Constraint
	for _, partition := range regionWord {
		for _, sym := range partition.Elements() {
			p := sym.Plant()
			constraints, err := clock.ConstraintsFromRegion(p.Clock, sym.RegionIndex(), k, clock.Both)
			tgerrors.MustValid(err == nil, errString(err))
			guard = append(guard, constraints...)
		}
	}
	sort.Slice(guard, func(i, j int) bool { return guard[i].Less(guard[j]) })
	return guard
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
