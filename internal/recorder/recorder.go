package recorder

import (
	"sync"

	"github.com/cagware/stperf/calltree"
)

// ThreadID is the small, human-readable identifier assigned to a goroutine
// the first time it records a scope. IDs are handed out in first-seen order
// and remain stable for the process lifetime, across resets.
type ThreadID uint32

// thread is one goroutine's recording state: the raw roots recorded since the
// last reset and the stack of currently open scopes. Only the owning
// goroutine mutates it; its mutex makes those mutations visible to snapshot
// walks and is uncontended in steady-state recording.
type thread struct {
	mu    sync.Mutex
	roots []*calltree.Node
	stack []*calltree.Node
}

// Registry is the process-wide table of per-goroutine recording state. The
// registry mutex covers entry lookup/creation and wholesale reset only;
// pushing and popping scopes happens outside it, under the owning thread's
// own lock, so recording on one goroutine never contends with another's.
type Registry struct {
	mu      sync.Mutex
	ids     map[uint64]ThreadID
	next    ThreadID
	threads map[ThreadID]*thread
}

func New() *Registry {
	return &Registry{
		ids:     make(map[uint64]ThreadID),
		threads: make(map[ThreadID]*thread),
	}
}

// Push opens a new scope on the calling goroutine: an unstamped node is
// appended to the children of the current top of stack, or to the root list
// when the stack is empty, and becomes the new top.
func (r *Registry) Push() {
	th := r.lookup(true)
	node := &calltree.Node{}
	th.mu.Lock()
	defer th.mu.Unlock()
	if len(th.stack) == 0 {
		th.roots = append(th.roots, node)
	} else {
		top := th.stack[len(th.stack)-1]
		top.Children = append(top.Children, node)
	}
	th.stack = append(th.stack, node)
}

// Pop closes the most recently opened scope on the calling goroutine and
// stamps it with its display name and elapsed time. Popping with no open
// scope is a silent no-op: a reset can race an in-flight scope, and
// instrumentation must never fail into the code it measures.
func (r *Registry) Pop(name string, nanos uint64) {
	th := r.lookup(false)
	if th == nil {
		return
	}
	th.mu.Lock()
	defer th.mu.Unlock()
	if len(th.stack) == 0 {
		return
	}
	depth := len(th.stack) - 1
	node := th.stack[depth]
	th.stack = th.stack[:depth]
	node.Stamp(name, nanos, depth)
}

// Reset discards every goroutine's roots and open stacks. The ThreadID remap
// is kept so identifiers stay stable across resets.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads = make(map[ThreadID]*thread)
}

// CallTrees returns the reduced, percentage-annotated call tree of every
// goroutine with recorded activity. Reduction builds new nodes, so the
// returned trees never alias live recording state.
func (r *Registry) CallTrees() map[ThreadID][]*calltree.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	trees := make(map[ThreadID][]*calltree.Node, len(r.threads))
	for id, th := range r.threads {
		th.mu.Lock()
		if len(th.roots) > 0 {
			trees[id] = calltree.Reduce(th.roots)
		}
		th.mu.Unlock()
	}
	return trees
}

// RawTrees returns an unreduced deep copy of every goroutine's root list.
func (r *Registry) RawTrees() map[ThreadID][]*calltree.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	trees := make(map[ThreadID][]*calltree.Node, len(r.threads))
	for id, th := range r.threads {
		th.mu.Lock()
		if len(th.roots) > 0 {
			roots := make([]*calltree.Node, 0, len(th.roots))
			for _, root := range th.roots {
				roots = append(roots, root.Clone())
			}
			trees[id] = roots
		}
		th.mu.Unlock()
	}
	return trees
}

// CurrentThreadID returns the identifier assigned to the calling goroutine,
// allocating the next one in first-seen order if needed.
func (r *Registry) CurrentThreadID() ThreadID {
	gid := goroutineID()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.threadID(gid)
}

// lookup finds the calling goroutine's recording state. With create set, the
// state (and the goroutine's ThreadID) is initialized on first use; without
// it, an unknown or reset goroutine yields nil.
func (r *Registry) lookup(create bool) *thread {
	gid := goroutineID()
	r.mu.Lock()
	defer r.mu.Unlock()
	id, seen := r.ids[gid]
	if !seen {
		if !create {
			return nil
		}
		id = r.threadID(gid)
	}
	th, ok := r.threads[id]
	if !ok {
		if !create {
			return nil
		}
		th = &thread{}
		r.threads[id] = th
	}
	return th
}

// threadID must be called with the lock held.
func (r *Registry) threadID(gid uint64) ThreadID {
	id, ok := r.ids[gid]
	if !ok {
		id = r.next
		r.next++
		r.ids[gid] = id
	}
	return id
}
