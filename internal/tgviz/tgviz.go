// Package tgviz renders search trees and controller automata as Graphviz
// ".dot" source, the same plain-text-emission texture used by this module's
// own pretty-printers (String() methods throughout internal/canon and
// internal/search): no third-party Graphviz binding is needed since the
// format itself is just indented text.
//
// Grounded on _examples/original_source's utilities/graphviz/graphviz.h,
// which renders the same two artifacts (search tree, controller) from the
// same two inputs (a search node graph, a timed automaton) in the original
// implementation.
package tgviz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/search"
	"github.com/dekarrin/rosed"
)

// labelWrapWidth bounds how wide a single node's label box grows before
// wrapping (through rosed), keeping a node with many merged canonical words
// legible.
const labelWrapWidth = 48

// RenderSearchTree walks every node reachable from root and renders it as a
// Graphviz digraph: one box per search node (its state, label, and merged
// words) and one edge per outgoing transition (its time increment and
// action). The search DAG can contain cycles (a region successor can map
// back onto an already-visited node), so traversal tracks visited nodes by
// pointer identity rather than assuming a tree shape.
func RenderSearchTree[T comparable](root *search.Node[T]) string {
	var b strings.Builder
	b.WriteString("digraph search_tree {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [shape=box, fontname=\"monospace\"];\n")

	visited := make(map[*search.Node[T]]string)
	var ids []string
	var nodes []*search.Node[T]
	var walk func(n *search.Node[T])
	walk = func(n *search.Node[T]) {
		if _, ok := visited[n]; ok {
			return
		}
		id := fmt.Sprintf("n%d", len(visited))
		visited[n] = id
		ids = append(ids, id)
		nodes = append(nodes, n)
		for _, e := range n.Children() {
			walk(e.Child)
		}
	}
	walk(root)

	for i, n := range nodes {
		b.WriteString(fmt.Sprintf("  %s [label=%q%s];\n", ids[i], nodeLabel(n), nodeStyle(n)))
	}
	for i, n := range nodes {
		for _, e := range n.Children() {
			target := visited[e.Child]
			edgeLabel := fmt.Sprintf("t+%d, %s", e.Increment, e.Action)
			b.WriteString(fmt.Sprintf("  %s -> %s [label=%q];\n", ids[i], target, edgeLabel))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeLabel[T comparable](n *search.Node[T]) string {
	var words []string
	for _, w := range n.Words() {
		words = append(words, w.String())
	}
	sort.Strings(words)
	body := fmt.Sprintf("state=%s label=%s\n%s", n.State(), n.Label(), strings.Join(words, "\n"))
	return rosed.Edit(body).Wrap(labelWrapWidth).String()
}

func nodeStyle[T comparable](n *search.Node[T]) string {
	switch n.Label() {
	case search.LabelTop:
		return ", style=filled, fillcolor=palegreen"
	case search.LabelBottom:
		return ", style=filled, fillcolor=lightpink"
	case search.LabelCanceled:
		return ", style=filled, fillcolor=lightgray"
	default:
		return ""
	}
}

// RenderController renders a controller timed automaton as a Graphviz
// digraph: one node per location (the initial location gets an incoming
// arrow from a synthetic start point, final locations are drawn as
// doublecircle), one edge per transition. If hideLabels is set, transition
// edges carry no guard/reset text, only the action symbol — useful once a
// controller has been visually verified and only its shape matters.
func RenderController(ta *plant.TimedAutomaton, hideLabels bool) string {
	var b strings.Builder
	b.WriteString("digraph controller {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=circle, fontname=\"monospace\"];\n")
	b.WriteString("  __start [shape=point];\n")
	b.WriteString(fmt.Sprintf("  __start -> %q;\n", ta.Initial))

	for _, loc := range ta.Locations {
		shape := "circle"
		if ta.Final.Has(loc) {
			shape = "doublecircle"
		}
		b.WriteString(fmt.Sprintf("  %q [shape=%s];\n", loc, shape))
	}

	for _, tr := range ta.Transitions {
		label := string(tr.Symbol)
		if !hideLabels {
			label = transitionLabel(tr)
		}
		b.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n", tr.Source, tr.Target, label))
	}

	b.WriteString("}\n")
	return b.String()
}

func transitionLabel(tr plant.Transition) string {
	var sb strings.Builder
	sb.WriteString(string(tr.Symbol))
	if len(tr.Guards) > 0 {
		var guards []string
		for _, g := range tr.Guards {
			guards = append(guards, g.String())
		}
		sort.Strings(guards)
		sb.WriteString(" [" + strings.Join(guards, " ∧ ") + "]")
	}
	if len(tr.Resets) > 0 {
		resets := append([]string(nil), tr.Resets...)
		sort.Strings(resets)
		sb.WriteString(" / " + strings.Join(resets, ",") + ":=0")
	}
	return sb.String()
}
