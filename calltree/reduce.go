package calltree

// Reduce collapses a thread's raw root list into its aggregated form: at
// every level, siblings sharing a name become one node whose duration is the
// sum of theirs and whose hit count is their number, and the members'
// children are concatenated and collapsed the same way one level down. The
// root level itself is collapsed too, since the same top-level scope can be
// entered several times as disjoint invocations.
//
// The input nodes are never mutated; Reduce builds a new tree. Once the tree
// is fully collapsed, each node is annotated with its share of its root's
// duration: the root gets exactly 1, every other node gets the ratio of the
// two durations expressed in their common granularity.
func Reduce(roots []*Node) []*Node {
	if len(roots) == 0 {
		return nil
	}
	reduced := collapseLevel(roots)
	for _, root := range reduced {
		root.Percent = 1
		annotatePercent(root, root.Children)
	}
	return reduced
}

// collapseLevel groups one sibling level by name and collapses each group.
// Groups keep first-seen order so reports are stable run to run.
func collapseLevel(level []*Node) []*Node {
	groups := make(map[string][]*Node, len(level))
	names := make([]string, 0, len(level))
	for _, n := range level {
		if _, seen := groups[n.Name]; !seen {
			names = append(names, n.Name)
		}
		groups[n.Name] = append(groups[n.Name], n)
	}
	collapsed := make([]*Node, 0, len(names))
	for _, name := range names {
		collapsed = append(collapsed, collapseGroup(groups[name]))
	}
	return collapsed
}

// collapseGroup folds same-named siblings into one node. All members sit at
// the same tree level, so they share a depth by construction.
func collapseGroup(members []*Node) *Node {
	first := members[0]
	reduced := &Node{
		Name:  first.Name,
		Depth: first.Depth,
		Hits:  uint64(len(members)),
	}
	var children []*Node
	for _, m := range members {
		reduced.Nanos += m.Nanos
		children = append(children, m.Children...)
	}
	reduced.Granularity = Classify(reduced.Nanos)
	reduced.Value = ValueIn(reduced.Granularity, reduced.Nanos)
	if len(children) > 0 {
		reduced.Children = collapseLevel(children)
	}
	return reduced
}

func annotatePercent(root *Node, children []*Node) {
	for _, child := range children {
		child.Percent = percentOfRoot(root, child)
		annotatePercent(root, child.Children)
	}
}

// percentOfRoot converts both durations into their common granularity before
// dividing. A zero-duration root yields 0 rather than NaN.
func percentOfRoot(root, n *Node) float64 {
	g := CommonGranularity(n.Granularity, root.Granularity)
	rootValue := ValueIn(g, root.Nanos)
	if rootValue == 0 {
		return 0
	}
	return ValueIn(g, n.Nanos) / rootValue
}
