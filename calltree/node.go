package calltree

type (
	// Node is one profiled scope in a call tree. Before reduction a node
	// represents a single activation (Hits == 1, Percent unset); after
	// reduction it represents every same-named sibling activation collapsed
	// into one entry with summed duration.
	Node struct {
		Name        string      `json:"name"`
		Nanos       uint64      `json:"duration_ns"`
		Granularity Granularity `json:"granularity"`
		Value       float64     `json:"value"`
		Percent     float64     `json:"percent_of_root"`
		Depth       int         `json:"depth"`
		Hits        uint64      `json:"hits"`
		Children    []*Node     `json:"children,omitempty"`
	}
)

// Stamp finalizes a raw node when its scope stops. A node that is never
// stamped keeps zero timing fields and an empty name.
func (n *Node) Stamp(name string, nanos uint64, depth int) {
	n.Name = name
	n.Nanos = nanos
	n.Granularity = Classify(nanos)
	n.Value = ValueIn(n.Granularity, nanos)
	n.Depth = depth
	n.Hits = 1
}

// Clone returns a recursive copy of the node.
func (n *Node) Clone() *Node {
	clone := *n
	if len(n.Children) == 0 {
		clone.Children = nil
		return &clone
	}
	clone.Children = make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		clone.Children = append(clone.Children, child.Clone())
	}
	return &clone
}
