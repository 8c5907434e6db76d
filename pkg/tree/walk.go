package tree

// Visit describes the node currently being walked.
type Visit struct {
	ID     NodeID
	Parent NodeID
	Depth  int
	Index  int
	IsRoot bool

	// Ancestors lists the node's ancestors, root first. The slice is reused
	// between callbacks; copy it to retain it.
	Ancestors []NodeID
}

// PreFunc is called before a node's children. Returning false skips them.
type PreFunc func(v Visit) bool

// PostFunc is called after a node's children, including pruned nodes.
type PostFunc func(v Visit)

type frame struct {
	visit   Visit
	next    int
	entered bool
	descend bool
}

// Walk traverses the subtree at start in depth-first order, calling pre on
// the way down and post on the way up. Either callback may be nil. Children
// are visited in sibling order. Depth and Index are relative to the whole
// tree, so walking a subtree reports the same values as walking from the
// root.
func Walk(t *Tree, start NodeID, pre PreFunc, post PostFunc) {
	if start == None || !t.valid(start) {
		return
	}

	ancestors := t.ancestors(start)
	stack := []frame{{visit: Visit{
		ID:     start,
		Parent: t.nodes[start].parent,
		Depth:  len(ancestors),
		Index:  t.IndexInParent(start),
		IsRoot: t.nodes[start].parent == None,
	}}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.entered {
			top.entered = true
			top.visit.Ancestors = ancestors
			top.descend = pre == nil || pre(top.visit)
			ancestors = append(ancestors, top.visit.ID)
		}

		children := t.nodes[top.visit.ID].children
		if top.descend && top.next < len(children) {
			i := top.next
			top.next++
			depth := top.visit.Depth + 1
			parent := top.visit.ID
			stack = append(stack, frame{visit: Visit{
				ID:     children[i],
				Parent: parent,
				Depth:  depth,
				Index:  i,
			}})
			continue
		}

		ancestors = ancestors[:len(ancestors)-1]
		if post != nil {
			top.visit.Ancestors = ancestors
			post(top.visit)
		}
		stack = stack[:len(stack)-1]
	}
}

// PreOrder returns the ids reachable from the root without descending into
// collapsed nodes, in pre-order.
func (t *Tree) PreOrder() []NodeID {
	var out []NodeID
	Walk(t, t.Root(), func(v Visit) bool {
		out = append(out, v.ID)
		return t.nodes[v.ID].Expand
	}, nil)
	return out
}

func (t *Tree) ancestors(id NodeID) []NodeID {
	var chain []NodeID
	for p := t.nodes[id].parent; p != None; p = t.nodes[p].parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
