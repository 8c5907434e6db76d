package layout

import "github.com/matzehuels/mindmap/pkg/tree"

// computeTop stacks each expanded node's children around its vertical
// centre, one running total per side.
func (e *Engine) computeTop(t *tree.Tree) {
	th := &e.theme
	tree.Walk(t, t.Root(), func(v tree.Visit) bool {
		n := t.Node(v.ID)
		children := t.VisibleChildren(v.ID)
		if len(children) == 0 {
			return n.Expand
		}

		marginY := th.MarginY(v.Depth + 1)
		baseTop := n.Top + n.Height/2 + marginY
		leftTop := baseTop - n.LeftChildrenAreaHeight/2
		rightTop := baseTop - n.RightChildrenAreaHeight/2
		for _, c := range children {
			cn := t.Node(c)
			running := &rightTop
			if cn.Dir == tree.DirLeft {
				running = &leftTop
			}
			cn.Top = *running
			if cn.Custom != nil {
				cn.Top = cn.Custom.Y
			}
			*running += cn.Height + marginY
		}
		return true
	}, nil)
}
