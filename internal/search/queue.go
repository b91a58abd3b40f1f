package search

import (
	"container/heap"
	"sync"
	"sync/atomic"

	"github.com/brightwell/tgsynth/internal/tgerrors"
)

// taskItem is one entry of the expansion priority queue: a node together
// with the heuristic cost computed for it when it was pushed.
type taskItem[T comparable] struct {
	node *Node[T]
	cost int64
}

// taskHeap implements container/heap.Interface, following the same
// Len/Less/Swap/Push/Pop shape as other heap-backed queues in this
// ecosystem (e.g. a timer min-heap ordered by deadline); here the ordering
// key is heuristic cost instead of time.
type taskHeap[T comparable] []*taskItem[T]

func (h taskHeap[T]) Len() int            { return len(h) }
func (h taskHeap[T]) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h taskHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *taskHeap[T]) Push(x interface{}) { *h = append(*h, x.(*taskItem[T])) }
func (h *taskHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// taskQueue is the expansion queue: a cost-ordered min-heap (lowest cost
// pops first) guarded by a mutex and condition variable. Submitting after
// close fails with tgerrors.QueueClosed.
type taskQueue[T comparable] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  taskHeap[T]
	closed bool
}

func newTaskQueue[T comparable]() *taskQueue[T] {
	q := &taskQueue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// submit pushes node onto the queue at the given cost. It fails if the
// queue has already been closed.
func (q *taskQueue[T]) submit(node *Node[T], cost int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return tgerrors.QueueClosed()
	}
	heap.Push(&q.items, &taskItem[T]{node: node, cost: cost})
	q.cond.Signal()
	return nil
}

// pop blocks until a task is available or the queue is closed and drained;
// ok is false only in the latter case, the signal workers use to exit.
func (q *taskQueue[T]) pop() (*Node[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	item := heap.Pop(&q.items).(*taskItem[T])
	return item.node, true
}

// tryPop pops the lowest-cost task without blocking, for single-threaded
// step-driven mode. ok is false if the queue is currently empty.
func (q *taskQueue[T]) tryPop() (*Node[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	item := heap.Pop(&q.items).(*taskItem[T])
	return item.node, true
}

// close marks the queue closed: no further submit calls will succeed, and
// pop returns ok=false once the backlog is drained.
func (q *taskQueue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// pool is the parallel worker pool draining a taskQueue, following the
// goroutine-per-worker-plus-WaitGroup shape used for parallel tree search
// elsewhere in this ecosystem, adapted to this engine's pop/expand loop
// instead of a fixed iteration count.
type pool[T comparable] struct {
	queue   *taskQueue[T]
	expand  func(*Node[T])
	workers int

	started  atomic.Bool
	stopping atomic.Bool
	wg       sync.WaitGroup
}

func newPool[T comparable](queue *taskQueue[T], workers int, expand func(*Node[T])) *pool[T] {
	if workers < 1 {
		workers = 1
	}
	return &pool[T]{queue: queue, expand: expand, workers: workers}
}

// Start launches the worker goroutines. It fails if the pool was already
// started.
func (p *pool[T]) Start() error {
	if !p.started.CompareAndSwap(false, true) {
		return tgerrors.PoolAlreadyStarted()
	}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return nil
}

func (p *pool[T]) run() {
	defer p.wg.Done()
	for {
		node, ok := p.queue.pop()
		if !ok {
			return
		}
		if p.stopping.Load() {
			continue
		}
		p.expand(node)
	}
}

// CloseQueue stops accepting new work; running and already-queued tasks
// still complete, then workers exit once the backlog drains.
func (p *pool[T]) CloseQueue() { p.queue.close() }

// Finish closes the queue and waits for every worker to exit.
func (p *pool[T]) Finish() {
	p.CloseQueue()
	p.wg.Wait()
}

// Stop sets the cooperative cancellation flag, closes the queue, and waits
// for workers to exit; in-flight expansions finish their current node
// before observing the flag.
func (p *pool[T]) Stop() {
	p.stopping.Store(true)
	p.CloseQueue()
	p.wg.Wait()
}
