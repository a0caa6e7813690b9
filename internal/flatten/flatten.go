// Package flatten copies a call tree into a flat, index-based snapshot meant
// for consumers outside the profiler: nodes live in one slice per thread and
// reference their children by index instead of pointer, so a snapshot can be
// serialized or handed across a language boundary without aliasing live
// profiler state.
package flatten

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cagware/stperf/calltree"
	"github.com/cagware/stperf/internal/recorder"
)

// MaxNameLength is the name capacity of a flat node. Longer names are
// truncated, never rejected.
const MaxNameLength = 64

type (
	// Node is one call-tree node in flat form.
	Node struct {
		Name       string  `json:"name"`
		DurationNS uint64  `json:"duration_ns"`
		Value      float64 `json:"value"`
		Unit       string  `json:"unit"`
		Percent    float64 `json:"percent_of_root"`
		Depth      int     `json:"depth"`
		Hits       uint64  `json:"hits"`
		Children   []int32 `json:"children,omitempty"`
	}

	// Thread holds one goroutine's nodes. Roots and Children index into
	// Nodes.
	Thread struct {
		ID    recorder.ThreadID `json:"thread_id"`
		Roots []int32           `json:"roots"`
		Nodes []Node            `json:"nodes"`
	}

	Snapshot struct {
		ID          string    `json:"id"`
		GeneratedAt time.Time `json:"generated_at"`
		Threads     []Thread  `json:"threads"`
	}
)

// Flatten copies the tree into its flat form. Threads are ordered by ID and
// nodes are laid out in pre-order, so the copy is deterministic for a given
// input.
func Flatten(tree map[recorder.ThreadID][]*calltree.Node) Snapshot {
	s := Snapshot{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Threads:     make([]Thread, 0, len(tree)),
	}
	ids := make([]recorder.ThreadID, 0, len(tree))
	for id := range tree {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		th := Thread{ID: id}
		for _, root := range tree[id] {
			th.Roots = append(th.Roots, appendNode(&th, root))
		}
		s.Threads = append(s.Threads, th)
	}
	return s
}

// appendNode copies n and its subtree into th.Nodes and returns n's index.
// th.Nodes is re-indexed after each recursive call since appends may move the
// backing array.
func appendNode(th *Thread, n *calltree.Node) int32 {
	idx := int32(len(th.Nodes))
	th.Nodes = append(th.Nodes, Node{
		Name:       truncateName(n.Name),
		DurationNS: n.Nanos,
		Value:      n.Value,
		Unit:       n.Granularity.String(),
		Percent:    n.Percent,
		Depth:      n.Depth,
		Hits:       n.Hits,
	})
	for _, child := range n.Children {
		childIdx := appendNode(th, child)
		th.Nodes[idx].Children = append(th.Nodes[idx].Children, childIdx)
	}
	return idx
}

func truncateName(name string) string {
	if len(name) <= MaxNameLength {
		return name
	}
	return name[:MaxNameLength]
}
