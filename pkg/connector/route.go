package connector

import (
	"math"

	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Connector is the line from a parent to one of its children.
type Connector struct {
	Parent tree.NodeID
	Child  tree.NodeID
	Path   Path
}

// Route computes the connectors from parent to each of its visible children
// in the theme's line style. The result is index-aligned with
// [tree.Tree.VisibleChildren]; it is nil for collapsed or childless nodes.
func Route(t *tree.Tree, parent tree.NodeID, th *theme.Theme) []Connector {
	children := t.VisibleChildren(parent)
	if len(children) == 0 {
		return nil
	}
	out := make([]Connector, len(children))
	for i, c := range children {
		out[i] = Connector{Parent: parent, Child: c}
	}

	r := router{t: t, th: th, parent: t.Node(parent), isRoot: t.IsRoot(parent)}
	if th.ShowExpandBtn() {
		r.btn = th.ExpandBtnSize
	}

	switch th.LineStyle {
	case theme.Direct:
		r.each(out, r.direct)
	case theme.Curve:
		r.each(out, r.curve)
	case theme.Curve2:
		r.each(out, r.curve2)
	case theme.Brace:
		r.brace(out)
	default:
		r.each(out, r.straight)
	}
	return out
}

type router struct {
	t      *tree.Tree
	th     *theme.Theme
	parent *tree.Node
	isRoot bool
	btn    float64
}

func (r *router) each(out []Connector, style func(child *tree.Node) Path) {
	for i := range out {
		out[i].Path = style(r.t.Node(out[i].Child))
	}
}

// edgeBtn is the expand button size used by all styles but straight, which
// keeps the button gap when computing its fold offset.
func (r *router) edgeBtn() float64 {
	if r.isRoot {
		return 0
	}
	return r.btn
}

// anchors returns the start point on the parent's edge and the end point on
// the child's facing edge.
func (r *router) anchors(c *tree.Node, btn float64) (x1, y1, x2, y2 float64) {
	p := r.parent
	if c.Dir == tree.DirLeft {
		x1 = p.Left - btn
		x2 = c.Right()
	} else {
		x1 = p.Right() + btn
		x2 = c.Left
	}
	y1 = p.CenterY()
	y2 = c.CenterY()
	if r.th.NodeUseLineStyle {
		if !r.isRoot {
			y1 += p.Height / 2
		}
		y2 += c.Height / 2
	}
	return x1, y1, x2, y2
}

// underline extends a path along the child's bottom edge in line-style mode.
func (r *router) underline(p Path, c *tree.Node, y2 float64) Path {
	if !r.th.NodeUseLineStyle {
		return p
	}
	if c.Dir == tree.DirLeft {
		return p.Line(c.Left, y2)
	}
	return p.Line(c.Right(), y2)
}

func (r *router) straight(c *tree.Node) Path {
	btn := r.edgeBtn()
	x1, y1, x2, y2 := r.anchors(c, btn)

	s := (r.th.MarginX(r.parent.Depth+1) - r.btn) * 0.6
	ext := 0.0
	if r.th.NodeUseLineStyle {
		ext = c.Width
	}
	if c.Dir == tree.DirLeft {
		s, ext = -s, -ext
	}
	return foldLine([]tree.Point{
		{X: x1, Y: y1},
		{X: x1 + s, Y: y1},
		{X: x1 + s, Y: y2},
		{X: x2 + ext, Y: y2},
	}, r.th.LineRadius)
}

// foldLine joins pts with straight segments and rounds the last corner with
// a quadratic curve of the given radius. The radius is clamped to the shorter
// of the two segments meeting at the corner.
func foldLine(pts []tree.Point, radius float64) Path {
	p := Path{}.Move(pts[0].X, pts[0].Y)
	n := len(pts)
	if n < 3 || radius <= 0 || collinear(pts[n-3], pts[n-2], pts[n-1]) {
		for _, pt := range pts[1:] {
			p = p.Line(pt.X, pt.Y)
		}
		return p
	}

	start, corner, end := pts[n-3], pts[n-2], pts[n-1]
	radius = min(radius, dist(start, corner), dist(corner, end))
	for _, pt := range pts[1 : n-2] {
		p = p.Line(pt.X, pt.Y)
	}
	in := towards(start, corner, radius)
	out := towards(end, corner, radius)
	p = p.Line(in.X, in.Y)
	p = p.Quad(corner.X, corner.Y, out.X, out.Y)
	return p.Line(end.X, end.Y)
}

func collinear(a, b, c tree.Point) bool {
	return (a.X == b.X && b.X == c.X) || (a.Y == b.Y && b.Y == c.Y)
}

func dist(a, b tree.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// towards returns the point on segment a→b at distance d before b.
func towards(a, b tree.Point, d float64) tree.Point {
	l := dist(a, b)
	if l == 0 {
		return b
	}
	return tree.Point{X: b.X - (b.X-a.X)*d/l, Y: b.Y - (b.Y-a.Y)*d/l}
}

func (r *router) direct(c *tree.Node) Path {
	x1, y1, x2, y2 := r.anchors(c, r.edgeBtn())
	p := Path{}.Move(x1, y1).Line(x2, y2)
	return r.underline(p, c, y2)
}

func (r *router) curve(c *tree.Node) Path {
	x1, y1, x2, y2 := r.anchors(c, r.edgeBtn())
	if r.isRoot && !r.th.RootLineStartPositionKeepSameInCurve {
		x1 = r.parent.Left + r.parent.Width/2
	}

	p := Path{}.Move(x1, y1)
	if r.isRoot && !r.th.RootLineKeepSameInCurve {
		cx := x1 + (x2-x1)*r.th.QuadraticCX
		cy := y1 + (y2-y1)*r.th.QuadraticCY
		p = p.Quad(cx, cy, x2, y2)
	} else {
		cx := x1 + (x2-x1)*r.th.CubicCX
		p = p.Cubic(cx, y1, cx, y2, x2, y2)
	}
	return r.underline(p, c, y2)
}

func (r *router) curve2(c *tree.Node) Path {
	x1, y1, x2, y2 := r.anchors(c, r.edgeBtn())
	lead := math.Abs(x2-x1) * 0.2
	if c.Dir == tree.DirLeft {
		lead = -lead
	}
	sx := x1 + lead

	p := Path{}.Move(x1, y1).Line(sx, y1)
	if y1 == y2 {
		p = p.Line(x2, y2)
	} else {
		chord := math.Hypot(x2-sx, y2-y1)
		p = p.Arc(chord, (x2-sx)*(y2-y1) > 0, x2, y2)
	}
	return r.underline(p, c, y2)
}

// brace draws one bracket per side. Single children get a direct line; for
// larger groups the whole bracket lives on the last child's connector and
// the others stay empty.
func (r *router) brace(out []Connector) {
	btn := r.edgeBtn()
	for _, dir := range []tree.Dir{tree.DirLeft, tree.DirRight} {
		var group []int
		for i := range out {
			if r.t.Node(out[i].Child).Dir == dir {
				group = append(group, i)
			}
		}
		switch len(group) {
		case 0:
			continue
		case 1:
			c := r.t.Node(out[group[0]].Child)
			x1, y1, x2, y2 := r.braceAnchors(c, btn)
			out[group[0]].Path = Path{}.Move(x1, y1).Line(x2, y2)
			continue
		}

		first := r.t.Node(out[group[0]].Child)
		last := r.t.Node(out[group[len(group)-1]].Child)
		x1, y1, firstX, firstY := r.braceAnchors(first, btn)
		lastY := last.CenterY()

		midY := min(max(y1, firstY), lastY)
		braceX := x1 + (firstX-x1)*0.6
		offset := math.Abs(firstX-x1) * 0.15
		sign := 1.0
		if dir == tree.DirLeft {
			sign = -1
		}
		topX := braceX - offset*sign
		midX := braceX - offset*sign*1.5
		bottomX := topX
		topEase := (midY - firstY) * 0.3
		bottomEase := (lastY - midY) * 0.3

		p := Path{}.Move(x1, y1).Line(midX, midY).
			Move(braceX, firstY).
			Quad(topX, firstY, topX, firstY+topEase).
			Line(topX, midY-topEase).
			Quad(topX, midY, midX, midY).
			Quad(bottomX, midY, bottomX, midY+bottomEase).
			Line(bottomX, lastY-bottomEase).
			Quad(bottomX, lastY, braceX, lastY)
		out[group[len(group)-1]].Path = p
	}
}

// braceAnchors ignores line-style mode.
func (r *router) braceAnchors(c *tree.Node, btn float64) (x1, y1, x2, y2 float64) {
	p := r.parent
	if c.Dir == tree.DirLeft {
		x1, x2 = p.Left-btn, c.Right()
	} else {
		x1, x2 = p.Right()+btn, c.Left
	}
	return x1, p.CenterY(), x2, c.CenterY()
}
