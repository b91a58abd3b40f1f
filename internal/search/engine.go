package search

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/brightwell/tgsynth/internal/ata"
	"github.com/brightwell/tgsynth/internal/canon"
	"github.com/brightwell/tgsynth/internal/heuristic"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/succ"
	"github.com/brightwell/tgsynth/internal/tgerrors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SinkLocation is the constraint the engine needs on an ATA location type:
// the ability to recognize the translator's designated trap location, used
// by hasSatisfiableATAConfiguration. translate.Location satisfies it.
type SinkLocation interface {
	comparable
	IsSink() bool
}

// Config bundles everything the engine needs beyond the plant and ATA
// themselves.
type Config struct {
	ControllerActions   setutil.Set[plant.Action]
	EnvironmentActions  setutil.Set[plant.Action]
	K                   int
	IncrementalLabeling bool
	TerminateEarly      bool
	// EnableDomination turns on ancestor monotonic-domination pruning. It
	// defaults to off: the original's own dominates_ancestor check is
	// permanently disabled upstream (see internal/canon's ledger entry), so
	// this expansion keeps the same default even though the check itself is
	// implemented and correct.
	EnableDomination bool
	Heuristic        heuristic.Heuristic
	// Workers is the worker-pool size for Run's concurrent mode; ignored by
	// Step.
	Workers int
	// Logger receives trace-level node-expansion lines and pool lifecycle
	// events. A nil Logger falls back to zerolog's disabled logger, so a
	// caller that leaves this unset pays no logging overhead.
	Logger *zerolog.Logger
}

// Engine owns the search DAG and drives its expansion.
type Engine[T SinkLocation] struct {
	plant     plant.Plant
	automaton *ata.ATA[T, plant.Action]
	k         int

	controllerActions  setutil.Set[plant.Action]
	environmentActions setutil.Set[plant.Action]

	incrementalLabeling bool
	terminateEarly      bool
	enableDomination    bool

	heuristic heuristic.Heuristic
	sequence  atomic.Int64
	logger    zerolog.Logger

	mu      sync.Mutex
	nodeMap map[string]*Node[T]

	Root  *Node[T]
	queue *taskQueue[T]
	pool  *pool[T]
}

// New builds an engine whose root is the canonical word of the plant and
// ATA's initial configurations. It fails if an action is listed as both
// controller- and environment-owned.
func New[T SinkLocation](p plant.Plant, automaton *ata.ATA[T, plant.Action], cfg Config) (*Engine[T], error) {
	for a := range cfg.ControllerActions {
		if cfg.EnvironmentActions.Has(a) {
			return nil, tgerrors.Constraintf("action %q cannot be both controller- and environment-owned", a)
		}
	}

	h := cfg.Heuristic
	if h == nil {
		h = heuristic.BFS()
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	rootWord := canon.GetCanonicalWord[T](p.InitialConfiguration(), automaton.InitialConfiguration(), cfg.K)
	root := newNode[T]([]canon.Word[T]{rootWord})

	e := &Engine[T]{
		plant:               p,
		automaton:           automaton,
		k:                   cfg.K,
		controllerActions:   cfg.ControllerActions,
		environmentActions:  cfg.EnvironmentActions,
		incrementalLabeling: cfg.IncrementalLabeling,
		terminateEarly:      cfg.TerminateEarly,
		enableDomination:    cfg.EnableDomination,
		heuristic:           h,
		logger:              logger,
		nodeMap:             map[string]*Node[T]{regAKey(rootWord): root},
		Root:                root,
		queue:               newTaskQueue[T](),
	}
	e.pool = newPool[T](e.queue, cfg.Workers, e.expand)
	e.enqueue(root)
	return e, nil
}

// regAKey is the search engine's node-merge key: the string rendering of
// the reg_A projection of a representative word of the node. Every word
// inside one node shares the same reg_A by construction, so any one of them
// determines the key.
func regAKey[T comparable](w canon.Word[T]) string {
	return canon.RegA(w).String()
}

// Run starts the worker pool (returning the pool's error if it was already
// started) and blocks until the queue drains, matching
// TreeSearch::build_tree(multi_threaded=true).
func (e *Engine[T]) Run() error {
	e.logger.Debug().Int("workers", e.pool.workers).Msg("starting worker pool")
	if err := e.pool.Start(); err != nil {
		return err
	}
	e.pool.Finish()
	e.logger.Debug().Msg("worker pool drained")
	return nil
}

// Step pops and synchronously expands the single lowest-cost pending node,
// for single-threaded driving. It reports whether there was a node to
// expand.
func (e *Engine[T]) Step() bool {
	_, ok := e.StepNode()
	return ok
}

// StepNode is Step's debug-shell-facing counterpart: it also returns the
// node that was popped and expanded, so a caller like internal/tgdebug can
// report its job id, sequence number, word count, and resulting state/label
// after the step completes.
func (e *Engine[T]) StepNode() (*Node[T], bool) {
	node, ok := e.queue.tryPop()
	if !ok {
		return nil, false
	}
	e.expand(node)
	return node, true
}

// Stop cooperatively cancels the worker pool.
func (e *Engine[T]) Stop() {
	e.logger.Debug().Msg("stopping worker pool")
	e.pool.Stop()
}

func (e *Engine[T]) nextSequence() int64 { return e.sequence.Add(1) }

func (e *Engine[T]) enqueue(n *Node[T]) {
	n.setJobID(uuid.New())
	info := heuristic.Info{
		Sequence:            n.sequence,
		PathCost:            n.pathCost,
		NumWords:            len(n.Words()),
		EnvironmentIncoming: n.environmentIncoming,
	}
	cost := e.heuristic.Cost(info)
	e.logger.Trace().
		Stringer("job", n.JobID()).
		Int64("sequence", n.sequence).
		Int64("cost", cost).
		Msg("submitting node for expansion")
	_ = e.queue.submit(n, cost)
}

// isBadNode reports whether any word in the node's candidate concretization
// is jointly accepting in both the plant and the ATA: the undesired
// behavior has occurred.
func (e *Engine[T]) isBadNode(n *Node[T]) bool {
	for _, w := range n.Words() {
		plantCfg, ataCfg := canon.GetCandidate(w)
		if e.plant.IsAccepting(plantCfg) && e.automaton.IsAccepting(ataCfg) {
			return true
		}
	}
	return false
}

// hasSatisfiableATAConfiguration reports whether some word in the node
// still has a live (non-sink) ATA branch. A word with no ATA symbols at all
// (the ATA configuration has gone empty, which is itself always accepting)
// counts as live too, since the path remains one the environment could
// still exploit at a later node. An ATA configuration is a conjunction of
// its region symbols, so a single symbol that has settled into the sink
// location already poisons the whole word (sink self-loops forever and is
// never accepting) regardless of what its other, still-live conjuncts are
// doing — a word is dead as soon as any one of its ATA symbols is sink.
func (e *Engine[T]) hasSatisfiableATAConfiguration(n *Node[T]) bool {
	for _, w := range n.Words() {
		hasATA := false
		anySink := false
		for _, part := range w {
			for _, sym := range part.Elements() {
				if sym.IsPlant() {
					continue
				}
				hasATA = true
				if sym.ATA().Location.IsSink() {
					anySink = true
				}
			}
		}
		if !hasATA || !anySink {
			return true
		}
	}
	return false
}

// dominatesAncestor reports whether some ancestor's word set monotonically
// dominates n's, a termination hint for otherwise-infinite behaviors.
// Disabled unless e.enableDomination, matching the upstream default (see
// internal/canon's ledger entry on dominates_ancestor).
func (e *Engine[T]) dominatesAncestor(n *Node[T]) bool {
	if !e.enableDomination {
		return false
	}
	visited := make(map[*Node[T]]bool)
	var walk func(*Node[T]) bool
	walk = func(p *Node[T]) bool {
		if visited[p] {
			return false
		}
		visited[p] = true
		if canon.IsSetMonotonicallyDominated(p.Words(), n.Words()) {
			return true
		}
		for _, pp := range p.Parents() {
			if walk(pp) {
				return true
			}
		}
		return false
	}
	for _, p := range n.Parents() {
		if walk(p) {
			return true
		}
	}
	return false
}

type successorEntry[T comparable] struct {
	increment int
	word      canon.Word[T]
}

type edgeKey struct {
	increment int
	action    plant.Action
}

// expand runs the node expansion protocol, mirroring search.h's
// expand_node: an atomic is-expanded guard, the bad/unsatisfiable/dominance
// short-circuits, successor generation grouped into (possibly merged)
// children, and the dead-node fallback.
func (e *Engine[T]) expand(n *Node[T]) {
	if n.Label() != LabelUnlabeled {
		return
	}
	if !n.tryExpand() {
		return
	}

	e.logger.Trace().
		Stringer("job", n.JobID()).
		Int64("sequence", n.sequence).
		Int("words", len(n.Words())).
		Msg("processing node")

	if e.isBadNode(n) {
		n.setState(StateBad)
		if e.incrementalLabeling {
			if n.setLabel(LabelBottom, "bad node: target property violated", e.terminateEarly) {
				e.propagate(n)
			}
		}
		return
	}
	if !e.hasSatisfiableATAConfiguration(n) {
		n.setState(StateGood)
		if e.incrementalLabeling {
			if n.setLabel(LabelTop, "no satisfiable ATA successor", e.terminateEarly) {
				e.propagate(n)
			}
		}
		return
	}
	if e.dominatesAncestor(n) {
		n.setState(StateGood)
		if e.incrementalLabeling {
			if n.setLabel(LabelTop, "dominates an ancestor", e.terminateEarly) {
				e.propagate(n)
			}
		}
		return
	}

	bySymbol := make(map[plant.Action][]successorEntry[T])
	for _, w := range n.Words() {
		for _, ts := range canon.GetTimeSuccessors(w, e.k) {
			plantCfg, ataCfg := canon.GetCandidate(ts.Word)
			next := succ.Next[T](e.plant, e.automaton, plantCfg, ataCfg, e.k)
			for action, words := range next {
				for _, word := range words {
					bySymbol[action] = append(bySymbol[action], successorEntry[T]{ts.Increment, word})
				}
			}
		}
	}

	childWords := make(map[string][]canon.Word[T])
	childEdges := make(map[string]map[edgeKey]bool)
	var order []string
	for action, entries := range bySymbol {
		for _, se := range entries {
			key := regAKey(se.word)
			if _, ok := childWords[key]; !ok {
				order = append(order, key)
				childEdges[key] = make(map[edgeKey]bool)
			}
			childWords[key] = appendWordIfNew(childWords[key], se.word)
			childEdges[key][edgeKey{se.increment, action}] = true
		}
	}
	sort.Strings(order)

	e.mu.Lock()
	var newChildren []*Node[T]
	priorChildCount := len(n.Children())
	for _, key := range order {
		words := childWords[key]
		edges := childEdges[key]

		child, existing := e.nodeMap[key]
		if !existing {
			minIncrement := math.MaxInt
			envIncoming := false
			for ek := range edges {
				if ek.increment < minIncrement {
					minIncrement = ek.increment
				}
				if e.environmentActions.Has(ek.action) {
					envIncoming = true
				}
			}
			child = newNode[T](words)
			child.pathCost = n.pathCost + int64(minIncrement)
			child.environmentIncoming = envIncoming
			child.sequence = e.nextSequence()
			e.nodeMap[key] = child
		} else {
			child.mergeWords(words)
		}
		child.addParent(n)
		for ek := range edges {
			n.addChild(ek.increment, ek.action, child)
		}
		if !existing {
			newChildren = append(newChildren, child)
		}
	}
	e.mu.Unlock()

	if n.Label() == LabelCanceled {
		n.setLabel(LabelCanceled, "re-canceled after expansion", true)
		return
	}

	if e.incrementalLabeling && len(n.Children()) != priorChildCount+len(newChildren) {
		e.propagate(n)
	}

	for _, child := range newChildren {
		e.enqueue(child)
	}

	if len(n.Children()) == 0 {
		n.setState(StateDead)
		if e.incrementalLabeling {
			if n.setLabel(LabelTop, "dead node: no successors", e.terminateEarly) {
				e.propagate(n)
			}
		}
	}
}

func appendWordIfNew[T comparable](words []canon.Word[T], w canon.Word[T]) []canon.Word[T] {
	s := w.String()
	for _, existing := range words {
		if existing.String() == s {
			return words
		}
	}
	return append(words, w)
}

// propagate implements SearchTreeNode::label_propagate: push a fresh label
// up from a just-labeled node, reconsidering every ancestor whose children
// may now permit a verdict.
func (e *Engine[T]) propagate(n *Node[T]) {
	children := n.Children()
	if len(children) == 0 {
		for _, p := range n.Parents() {
			e.propagate(p)
		}
		return
	}
	if n.Label() != LabelUnlabeled {
		return
	}

	const maxStep = math.MaxInt
	firstGoodCtl := maxStep
	firstBadEnv := maxStep
	firstNonGoodEnv := maxStep
	firstNonBadCtl := maxStep
	for _, edge := range children {
		childLabel := edge.Child.Label()
		switch {
		case childLabel == LabelTop && e.controllerActions.Has(edge.Action):
			firstGoodCtl = min(firstGoodCtl, edge.Increment)
		case childLabel == LabelBottom && e.environmentActions.Has(edge.Action):
			firstBadEnv = min(firstBadEnv, edge.Increment)
		case edge.Child != n && childLabel == LabelUnlabeled && e.environmentActions.Has(edge.Action):
			firstNonGoodEnv = min(firstNonGoodEnv, edge.Increment)
		case edge.Child != n && childLabel == LabelUnlabeled && e.controllerActions.Has(edge.Action):
			firstNonBadCtl = min(firstNonBadCtl, edge.Increment)
		}
	}

	var labeled bool
	switch {
	case firstNonGoodEnv == maxStep && firstBadEnv == maxStep:
		labeled = n.setLabel(LabelTop, "no non-good or bad environment action", e.terminateEarly)
	case firstGoodCtl < firstNonGoodEnv && firstGoodCtl < firstBadEnv:
		labeled = n.setLabel(LabelTop, "good controller action first", e.terminateEarly)
	case firstBadEnv < maxStep && firstBadEnv <= firstGoodCtl && firstBadEnv <= firstNonBadCtl:
		labeled = n.setLabel(LabelBottom, "bad environment action first", e.terminateEarly)
	}
	if labeled {
		for _, p := range n.Parents() {
			e.propagate(p)
		}
	}
}

// Label performs the post-order fixed-point labeling pass of
// TreeSearch::label, for any node the incremental pass left UNLABELED (or
// when incremental labeling was off entirely). Call with nil to start at
// the root.
func (e *Engine[T]) Label(n *Node[T]) {
	if n == nil {
		n = e.Root
	}
	if n.Label() != LabelUnlabeled {
		return
	}
	switch n.State() {
	case StateGood, StateDead:
		n.setLabel(LabelTop, "fixed point: good or dead state", e.terminateEarly)
		return
	case StateBad:
		n.setLabel(LabelBottom, "fixed point: bad state", e.terminateEarly)
		return
	}

	children := n.Children()
	for _, edge := range children {
		if edge.Child != n {
			e.Label(edge.Child)
		}
	}

	const maxStep = math.MaxInt
	foundBad := false
	firstGoodCtl := maxStep
	firstBadEnv := maxStep
	for _, edge := range children {
		if edge.Child.Label() == LabelTop && e.controllerActions.Has(edge.Action) {
			firstGoodCtl = min(firstGoodCtl, edge.Increment)
		} else if edge.Child.Label() == LabelBottom && e.environmentActions.Has(edge.Action) {
			foundBad = true
			firstBadEnv = min(firstBadEnv, edge.Increment)
		}
	}
	if !foundBad || firstGoodCtl < firstBadEnv {
		n.setLabel(LabelTop, "fixed point: no bad or good-first", e.terminateEarly)
	} else {
		n.setLabel(LabelBottom, "fixed point: bad-first", e.terminateEarly)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
