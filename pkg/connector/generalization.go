package connector

import (
	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// generalizationBulge is the horizontal reach of the summary bracket curve.
const generalizationBulge = 20

// Placement is a positioned generalization node and its bracket curve.
type Placement struct {
	Owner tree.NodeID
	Index int // into the owner's Generalizations
	Dir   tree.Dir
	Path  Path

	// Span is the box of the nodes the generalization summarises.
	Span Box
	Box  Box
}

// PlaceGeneralizations positions every generalization of every visible node
// and writes Left/Top back into the tree. Nodes are handled bottom-up so a
// summary's span includes the summaries nested inside it.
//
// A generalization without a range spans its owner's visible subtree and sits
// on the owner's side (the right for the root). A ranged generalization spans
// the listed children and sits on the side of the first of them. Ranged
// generalizations of collapsed owners are skipped.
func PlaceGeneralizations(t *tree.Tree, th *theme.Theme) []Placement {
	if t.Root() == tree.None {
		return nil
	}
	subtree := make(map[tree.NodeID]Box)
	var out []Placement

	tree.Walk(t, t.Root(), func(v tree.Visit) bool {
		return t.Node(v.ID).Expand
	}, func(v tree.Visit) {
		n := t.Node(v.ID)
		own := NodeBox(n)
		for _, c := range t.VisibleChildren(v.ID) {
			own = own.Union(subtree[c])
		}

		extent := own
		for i := range n.Generalizations {
			g := &n.Generalizations[i]
			span, dir, ok := generalizationSpan(t, v.ID, g, own, subtree)
			if !ok {
				continue
			}
			pl := place(th, g, span, dir)
			pl.Owner, pl.Index = v.ID, i
			g.Left, g.Top = pl.Box.Left, pl.Box.Top
			extent = extent.Union(pl.Box)
			out = append(out, pl)
		}
		subtree[v.ID] = extent
	})
	return out
}

func generalizationSpan(t *tree.Tree, owner tree.NodeID, g *tree.Generalization, own Box, subtree map[tree.NodeID]Box) (Box, tree.Dir, bool) {
	n := t.Node(owner)
	if g.Range == nil {
		dir := n.Dir
		if dir == tree.DirNone {
			dir = tree.DirRight
		}
		return own, dir, true
	}

	children := t.VisibleChildren(owner)
	lo, hi := g.Range[0], g.Range[1]
	if lo < 0 || hi < lo || hi >= len(children) {
		return Box{}, tree.DirNone, false
	}
	span := subtree[children[lo]]
	for _, c := range children[lo+1 : hi+1] {
		span = span.Union(subtree[c])
	}
	dir := t.Node(children[lo]).Dir
	if dir == tree.DirNone {
		dir = tree.DirRight
	}
	return span, dir, true
}

func place(th *theme.Theme, g *tree.Generalization, span Box, dir tree.Dir) Placement {
	x := span.Right + th.GeneralizationLineMargin
	bulge := float64(generalizationBulge)
	nodeX := x + th.GeneralizationNodeMargin
	if dir == tree.DirLeft {
		x = span.Left - th.GeneralizationLineMargin
		bulge = -bulge
		nodeX = x - th.GeneralizationNodeMargin - g.Width
	}
	top := span.Top + (span.Bottom-span.Top-g.Height)/2

	return Placement{
		Dir:  dir,
		Path: Path{}.Move(x, span.Top).Quad(x+bulge, span.CenterY(), x, span.Bottom),
		Span: span,
		Box:  Box{Left: nodeX, Top: top, Right: nodeX + g.Width, Bottom: top + g.Height},
	}
}
