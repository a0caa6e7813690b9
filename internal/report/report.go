package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cagware/stperf/calltree"
	"github.com/cagware/stperf/internal/recorder"
)

// Render writes one section per thread: a header line followed by a
// pre-order walk of the thread's roots, each node indented by one tab per
// nesting level. An empty tree renders as the empty string.
func Render(tree map[recorder.ThreadID][]*calltree.Node) string {
	if len(tree) == 0 {
		return ""
	}
	ids := make([]recorder.ThreadID, 0, len(tree))
	for id := range tree {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "Thread %d:\n", id)
		for _, root := range tree[id] {
			writeNode(&sb, root)
		}
	}
	return sb.String()
}

// writeNode emits one report line, e.g.
//
//	-> [parse() | x3] Execution time : 30.2ms (75.5%).
//
// The hit count is only shown for collapsed nodes, and the percentage is
// printed to four significant digits.
func writeNode(sb *strings.Builder, n *calltree.Node) {
	for i := 0; i < n.Depth; i++ {
		sb.WriteByte('\t')
	}
	sb.WriteString("-> [")
	sb.WriteString(n.Name)
	if n.Hits > 1 {
		fmt.Fprintf(sb, " | x%d", n.Hits)
	}
	fmt.Fprintf(sb, "] Execution time : %.6g%s (%.4g%%).\n", n.Value, n.Granularity, 100*n.Percent)
	for _, child := range n.Children {
		writeNode(sb, child)
	}
}
