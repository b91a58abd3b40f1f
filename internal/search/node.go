// Package search implements the concurrent DAG-based game-tree search
// engine (component C8): node expansion, incremental min-max labeling, a
// priority-queued worker pool, and the fixed-point labeling fallback.
//
// Grounded on
// _examples/original_source/src/search/include/search/search_tree.h
// (SearchTreeNode, set_label, label_propagate) and
// _examples/original_source/src/search/include/search/search.h
// (has_satisfiable_ata_configuration, TreeSearch::expand_node,
// TreeSearch::label).
package search

import (
	"sync"
	"sync/atomic"

	"github.com/brightwell/tgsynth/internal/canon"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/google/uuid"
)

// State is a search node's verdict about the subtree rooted at it, derived
// from the node's own content rather than its children's labels.
type State int32

const (
	StateUnknown State = iota
	StateGood
	StateBad
	StateDead
)

func (s State) String() string {
	switch s {
	case StateGood:
		return "GOOD"
	case StateBad:
		return "BAD"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Label is the outcome of the min-max game at a search node.
type Label int32

const (
	LabelUnlabeled Label = iota
	LabelTop
	LabelBottom
	LabelCanceled
)

func (l Label) String() string {
	switch l {
	case LabelTop:
		return "TOP"
	case LabelBottom:
		return "BOTTOM"
	case LabelCanceled:
		return "CANCELED"
	default:
		return "UNLABELED"
	}
}

// Edge is one outgoing transition of a node: taking Action after Increment
// region-successor steps of pure time passage leads to Child.
type Edge[T comparable] struct {
	Increment int
	Action    plant.Action
	Child     *Node[T]
}

// Node is one vertex of the search DAG: a set of canonical words that all
// share the same reg_A projection, plus the mutable state/label/edge data
// the engine builds up as it expands the graph. State and Label are atomic
// so a worker can read another node's verdict without taking its lock;
// every other field is protected by mu, including words — a later expansion
// elsewhere in the graph can discover a fresh word variant sharing this
// node's reg_A projection and merge it in, so reads must go through Words().
type Node[T comparable] struct {
	// pathCost, environmentIncoming, sequence and jobID are write-once, set
	// before the node is published into the engine's node map or expansion
	// queue, so they need no synchronization of their own.
	pathCost            int64
	environmentIncoming bool
	sequence            int64
	jobID               uuid.UUID

	state atomic.Int32
	label atomic.Int32

	expanded atomic.Bool

	mu          sync.Mutex
	words       []canon.Word[T]
	labelReason string
	parents     []*Node[T]
	children    []Edge[T]
}

func newNode[T comparable](words []canon.Word[T]) *Node[T] {
	return &Node[T]{words: words}
}

// JobID returns the correlation id assigned when n was submitted to the
// expansion queue, for tying together trace log lines emitted by whichever
// worker goroutine ends up expanding n. It carries no meaning beyond
// logging: node identity is reg_A projection plus merged word set, not this
// id.
func (n *Node[T]) JobID() uuid.UUID { return n.jobID }

func (n *Node[T]) setJobID(id uuid.UUID) { n.jobID = id }

// Sequence returns the creation order index assigned when n was first
// discovered, for display purposes (e.g. internal/tgdebug's step shell).
func (n *Node[T]) Sequence() int64 { return n.sequence }

// Words returns a snapshot of the canonical words currently merged into n.
func (n *Node[T]) Words() []canon.Word[T] {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]canon.Word[T](nil), n.words...)
}

// mergeWords adds every word in ws not already present (by string rendering)
// into n's word set, reporting whether anything new was added. Used when the
// search engine discovers a fresh word variant that shares an existing
// node's reg_A projection.
func (n *Node[T]) mergeWords(ws []canon.Word[T]) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	added := false
	for _, w := range ws {
		s := w.String()
		found := false
		for _, existing := range n.words {
			if existing.String() == s {
				found = true
				break
			}
		}
		if !found {
			n.words = append(n.words, w)
			added = true
		}
	}
	return added
}

// State returns the node's current state.
func (n *Node[T]) State() State { return State(n.state.Load()) }

func (n *Node[T]) setState(s State) { n.state.Store(int32(s)) }

// Label returns the node's current label.
func (n *Node[T]) Label() Label { return Label(n.label.Load()) }

// LabelReason returns the diagnostic tag recorded when the label was set.
func (n *Node[T]) LabelReason() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.labelReason
}

// setLabel sets the node's label if and only if it is still UNLABELED,
// mirroring SearchTreeNode::set_label's "first label wins" rule. It reports
// whether this call actually set the label. If cancelChildren is set and the
// label was applied, every child is recursively labeled CANCELED.
func (n *Node[T]) setLabel(label Label, reason string, cancelChildren bool) bool {
	if !n.label.CompareAndSwap(int32(LabelUnlabeled), int32(label)) {
		return false
	}
	n.mu.Lock()
	n.labelReason = reason
	children := append([]Edge[T](nil), n.children...)
	n.mu.Unlock()
	if cancelChildren {
		for _, e := range children {
			e.Child.setLabel(LabelCanceled, "ancestor canceled", true)
		}
	}
	return true
}

// tryExpand reports whether the caller won the race to expand this node: it
// succeeds exactly once per node, the same guard the engine's
// is_expanded compare-and-swap provides.
func (n *Node[T]) tryExpand() bool { return n.expanded.CompareAndSwap(false, true) }

func (n *Node[T]) addParent(p *Node[T]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.parents = append(n.parents, p)
}

// Parents returns a snapshot of the node's parent list.
func (n *Node[T]) Parents() []*Node[T] {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*Node[T](nil), n.parents...)
}

func (n *Node[T]) addChild(increment int, action plant.Action, child *Node[T]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = append(n.children, Edge[T]{Increment: increment, Action: action, Child: child})
}

// Children returns a snapshot of the node's outgoing edges.
func (n *Node[T]) Children() []Edge[T] {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Edge[T](nil), n.children...)
}
