package layout

import "github.com/matzehuels/mindmap/pkg/tree"

// computeBase resolves dir and left top-down, then the children-area
// heights bottom-up.
func (e *Engine) computeBase(t *tree.Tree) {
	th := &e.theme
	tree.Walk(t, t.Root(), func(v tree.Visit) bool {
		n := t.Node(v.ID)
		n.Depth = v.Depth

		if v.IsRoot {
			n.Dir = tree.DirNone
			n.Left = (th.CanvasWidth - n.Width) / 2
			n.Top = (th.CanvasHeight - n.Height) / 2
			if n.Custom != nil {
				n.Left, n.Top = n.Custom.X, n.Custom.Y
			}
			return n.Expand
		}

		p := t.Node(v.Parent)
		switch {
		case p.Dir != tree.DirNone:
			n.Dir = p.Dir
		case n.DirOverride != tree.DirNone:
			n.Dir = n.DirOverride
		case v.Index%2 == 0:
			n.Dir = tree.DirRight
		default:
			n.Dir = tree.DirLeft
		}

		if n.Dir == tree.DirRight {
			n.Left = p.Left + p.Width + th.MarginX(v.Depth)
		} else {
			n.Left = p.Left - th.MarginX(v.Depth) - n.Width
		}
		if n.Custom != nil {
			n.Left = n.Custom.X
		}
		return n.Expand
	}, func(v tree.Visit) {
		n := t.Node(v.ID)
		if !n.Expand {
			n.LeftChildrenAreaHeight = 0
			n.RightChildrenAreaHeight = 0
			n.LeftChildrenAreaHeight2 = 0
			n.RightChildrenAreaHeight2 = 0
			return
		}

		marginY := th.MarginY(v.Depth + 1)
		var leftLen, rightLen int
		var leftSum, rightSum float64
		for _, c := range t.Children(v.ID) {
			cn := t.Node(c)
			if cn.Dir == tree.DirLeft {
				leftLen++
				leftSum += cn.Height
			} else {
				rightLen++
				rightSum += cn.Height
			}
		}
		n.LeftChildrenAreaHeight = leftSum + float64(leftLen+1)*marginY
		n.RightChildrenAreaHeight = rightSum + float64(rightLen+1)*marginY

		n.LeftChildrenAreaHeight2 = n.LeftChildrenAreaHeight
		n.RightChildrenAreaHeight2 = n.RightChildrenAreaHeight
		if n.HasGeneralization() {
			g := n.GeneralizationHeight() + marginY
			n.LeftChildrenAreaHeight2 = max(n.LeftChildrenAreaHeight, g)
			n.RightChildrenAreaHeight2 = max(n.RightChildrenAreaHeight, g)
		}
	})
}
