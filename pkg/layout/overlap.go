package layout

import "github.com/matzehuels/mindmap/pkg/tree"

// resolveOverlap spreads siblings apart wherever a node's children need more
// vertical room than the node itself occupies.
func (e *Engine) resolveOverlap(t *tree.Tree) {
	th := &e.theme
	tree.Walk(t, t.Root(), func(v tree.Visit) bool {
		n := t.Node(v.ID)
		if !n.Expand {
			return false
		}
		allotted := n.Height + 2*th.MarginY(v.Depth+1)
		leftExcess := n.LeftChildrenAreaHeight2 - allotted
		rightExcess := n.RightChildrenAreaHeight2 - allotted
		if leftExcess > 0 || rightExcess > 0 {
			shiftSiblings(t, v.ID, max(leftExcess, 0)/2, max(rightExcess, 0)/2)
		}
		return true
	}, nil)
}

// shiftSiblings pushes the same-direction siblings of id away from it: those
// before it up, those after it down. The correction then repeats one level up
// for every ancestor, so the whole side of the map makes room. Pinned
// siblings are left in place.
func shiftSiblings(t *tree.Tree, id tree.NodeID, leftAdd, rightAdd float64) {
	for cur := id; t.Parent(cur) != tree.None; cur = t.Parent(cur) {
		dir := t.Node(cur).Dir
		idx := 0
		var same []tree.NodeID
		for _, c := range t.Children(t.Parent(cur)) {
			if t.Node(c).Dir != dir {
				continue
			}
			if c == cur {
				idx = len(same)
			}
			same = append(same, c)
		}

		for i, s := range same {
			sn := t.Node(s)
			if sn.Custom != nil {
				continue
			}
			add := rightAdd
			if sn.Dir == tree.DirLeft {
				add = leftAdd
			}
			switch {
			case i < idx:
				t.Translate(s, -add)
			case i > idx:
				t.Translate(s, add)
			}
		}
	}
}
