package connector

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/mindmap/pkg/tree"
)

// Op is a path command.
type Op byte

const (
	MoveTo  Op = 'M'
	LineTo  Op = 'L'
	QuadTo  Op = 'Q'
	CubicTo Op = 'C'
	ArcTo   Op = 'A'
)

// Command is one path command with absolute coordinates.
//
// QuadTo uses C1, CubicTo uses C1 and C2. ArcTo draws a circular arc of
// Radius, with Sweep selecting the positive-angle direction as in SVG.
type Command struct {
	Op     Op
	C1, C2 tree.Point
	To     tree.Point
	Radius float64
	Sweep  bool
}

// Path is an ordered list of commands. A path may contain several
// subpaths, each starting with MoveTo.
type Path []Command

// Move starts a new subpath at (x, y).
func (p Path) Move(x, y float64) Path {
	return append(p, Command{Op: MoveTo, To: tree.Point{X: x, Y: y}})
}

// Line adds a straight segment to (x, y).
func (p Path) Line(x, y float64) Path {
	return append(p, Command{Op: LineTo, To: tree.Point{X: x, Y: y}})
}

// Quad adds a quadratic bezier with control (cx, cy) ending at (x, y).
func (p Path) Quad(cx, cy, x, y float64) Path {
	return append(p, Command{Op: QuadTo, C1: tree.Point{X: cx, Y: cy}, To: tree.Point{X: x, Y: y}})
}

// Cubic adds a cubic bezier ending at (x, y).
func (p Path) Cubic(c1x, c1y, c2x, c2y, x, y float64) Path {
	return append(p, Command{
		Op: CubicTo,
		C1: tree.Point{X: c1x, Y: c1y},
		C2: tree.Point{X: c2x, Y: c2y},
		To: tree.Point{X: x, Y: y},
	})
}

// Arc adds a circular arc of radius r ending at (x, y).
func (p Path) Arc(r float64, sweep bool, x, y float64) Path {
	return append(p, Command{Op: ArcTo, Radius: r, Sweep: sweep, To: tree.Point{X: x, Y: y}})
}

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool { return len(p) == 0 }

// String returns the path as SVG path data.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		b.WriteByte(' ')
		switch c.Op {
		case QuadTo:
			writePoint(&b, c.C1)
			b.WriteByte(' ')
		case CubicTo:
			writePoint(&b, c.C1)
			b.WriteByte(' ')
			writePoint(&b, c.C2)
			b.WriteByte(' ')
		case ArcTo:
			r := fmtNum(c.Radius)
			sweep := "0"
			if c.Sweep {
				sweep = "1"
			}
			b.WriteString(r + " " + r + " 0 0 " + sweep + " ")
		}
		writePoint(&b, c.To)
	}
	return b.String()
}

func writePoint(b *strings.Builder, pt tree.Point) {
	b.WriteString(fmtNum(pt.X))
	b.WriteByte(',')
	b.WriteString(fmtNum(pt.Y))
}

func fmtNum(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// curveSteps is the number of line segments per curve when flattening.
const curveSteps = 16

// Flatten approximates the path by polylines, one per subpath.
func (p Path) Flatten() [][]tree.Point {
	var (
		out [][]tree.Point
		cur []tree.Point
		pen tree.Point
	)
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, c := range p {
		switch c.Op {
		case MoveTo:
			flush()
			cur = []tree.Point{c.To}
		case LineTo:
			cur = appendStart(cur, pen)
			cur = append(cur, c.To)
		case QuadTo:
			cur = appendStart(cur, pen)
			for i := 1; i <= curveSteps; i++ {
				cur = append(cur, quadAt(pen, c.C1, c.To, float64(i)/curveSteps))
			}
		case CubicTo:
			cur = appendStart(cur, pen)
			for i := 1; i <= curveSteps; i++ {
				cur = append(cur, cubicAt(pen, c.C1, c.C2, c.To, float64(i)/curveSteps))
			}
		case ArcTo:
			cur = appendStart(cur, pen)
			cur = append(cur, arcPoints(pen, c.To, c.Radius, c.Sweep)...)
		}
		pen = c.To
	}
	flush()
	return out
}

func appendStart(cur []tree.Point, pen tree.Point) []tree.Point {
	if len(cur) == 0 {
		return []tree.Point{pen}
	}
	return cur
}

func quadAt(p0, c, p1 tree.Point, t float64) tree.Point {
	u := 1 - t
	return tree.Point{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

func cubicAt(p0, c1, c2, p1 tree.Point, t float64) tree.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return tree.Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

// arcPoints samples the small circular arc from p0 to p1, excluding p0.
// The radius is scaled up if it cannot span the chord, as SVG does.
func arcPoints(p0, p1 tree.Point, r float64, sweep bool) []tree.Point {
	x1 := (p0.X - p1.X) / 2
	y1 := (p0.Y - p1.Y) / 2
	d2 := x1*x1 + y1*y1
	if d2 == 0 {
		return nil
	}
	if r*r < d2 {
		r = math.Sqrt(d2)
	}
	coef := math.Sqrt(max(0, (r*r-d2)/d2))
	if !sweep {
		coef = -coef
	}
	cx := coef*y1 + (p0.X+p1.X)/2
	cy := -coef*x1 + (p0.Y+p1.Y)/2

	start := math.Atan2(p0.Y-cy, p0.X-cx)
	delta := math.Atan2(p1.Y-cy, p1.X-cx) - start
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	pts := make([]tree.Point, 0, curveSteps)
	for i := 1; i < curveSteps; i++ {
		a := start + delta*float64(i)/curveSteps
		pts = append(pts, tree.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return append(pts, p1)
}

// Bounds returns the bounding box of the flattened path and whether the path
// has any extent.
func (p Path) Bounds() (Box, bool) {
	var (
		box Box
		ok  bool
	)
	for _, line := range p.Flatten() {
		for _, pt := range line {
			pb := Box{Left: pt.X, Top: pt.Y, Right: pt.X, Bottom: pt.Y}
			if !ok {
				box, ok = pb, true
				continue
			}
			box = box.Union(pb)
		}
	}
	return box, ok
}
