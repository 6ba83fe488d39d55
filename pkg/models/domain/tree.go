package domain

// WalkFunc is called for every node in pre-order with the chain of ancestors,
// outermost first. The ancestors slice is reused between calls; copy it to keep
// it. Returning false skips the node's children.
type WalkFunc func(node *ReportNode, ancestors []*ReportNode) bool

type walkFrame struct {
	node  *ReportNode
	depth int
}

// Walk visits the tree in pre-order (node, then its children in source order)
// without recursion.
func Walk(roots []*ReportNode, fn WalkFunc) {
	stack := make([]walkFrame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, walkFrame{node: roots[i]})
	}

	var ancestors []*ReportNode
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if frame.node == nil {
			continue
		}

		ancestors = ancestors[:frame.depth]
		if !fn(frame.node, ancestors) {
			continue
		}

		ancestors = append(ancestors, frame.node)
		children := frame.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{node: children[i], depth: frame.depth + 1})
		}
	}
}

// Index resolves nodes by id.
type Index struct {
	nodes map[string]*ReportNode
}

// NewIndex indexes every node of the tree. When ids collide the first node in
// pre-order wins.
func NewIndex(roots []*ReportNode) *Index {
	idx := &Index{nodes: make(map[string]*ReportNode)}
	Walk(roots, func(node *ReportNode, _ []*ReportNode) bool {
		if _, exists := idx.nodes[node.ID]; !exists {
			idx.nodes[node.ID] = node
		}
		return true
	})
	return idx
}

// Lookup returns the node with the given id, or false when it is absent.
func (i *Index) Lookup(id string) (*ReportNode, bool) {
	if i == nil {
		return nil, false
	}
	node, ok := i.nodes[id]
	return node, ok
}

// Len returns the number of indexed nodes.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.nodes)
}

// AnyCompare reports whether any node at any depth carries comparison data.
func AnyCompare(roots []*ReportNode) bool {
	found := false
	Walk(roots, func(node *ReportNode, _ []*ReportNode) bool {
		if node.Compare != nil {
			found = true
		}
		return !found
	})
	return found
}
