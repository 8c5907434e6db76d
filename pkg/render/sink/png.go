package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/mindmap/pkg/connector"
	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// maxPNGSide bounds either image side before downsampling.
const maxPNGSide = 16384

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svg     svgRenderer
	scale   float64
	maxSide int
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithMaxSide caps the longest image side in pixels. Larger drawings are
// rendered at full scale and then resampled down.
func WithMaxSide(px int) PNGOption {
	return func(r *pngRenderer) { r.maxSide = px }
}

// WithPNGSVGOptions applies SVG options (padding, background, badges,
// highlight) to the raster as well.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svg = newSVGRenderer(opts...) }
}

// RenderPNG rasterises the layout. It needs no external tools.
func RenderPNG(l mapfile.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{svg: newSVGRenderer(), scale: 2.0, maxSide: maxPNGSide}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("png: scale must be positive, got %v", r.scale)
	}

	f := frameOf(l, r.svg.padding)
	w, h := int(math.Ceil(f.W*r.scale)), int(math.Ceil(f.H*r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty drawing")
	}
	if w > maxPNGSide || h > maxPNGSide {
		return nil, fmt.Errorf("png: %dx%d exceeds %dpx, lower the scale", w, h, maxPNGSide)
	}

	c := newCanvas(w, h, f, r.scale)
	defer c.close()
	if err := c.drawLayout(l, &r.svg); err != nil {
		return nil, err
	}

	img := c.img
	if r.maxSide > 0 && (w > r.maxSide || h > r.maxSide) {
		k := float64(r.maxSide) / float64(max(w, h))
		dst := image.NewRGBA(image.Rect(0, 0, max(1, int(float64(w)*k)), max(1, int(float64(h)*k))))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// canvas maps layout coordinates onto an image.
type canvas struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	f     frame
	scale float64
	faces map[float64]font.Face
}

func newCanvas(w, h int, f frame, scale float64) *canvas {
	return &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		z:     vector.NewRasterizer(w, h),
		f:     f,
		scale: scale,
		faces: map[float64]font.Face{},
	}
}

func (c *canvas) close() {
	for _, face := range c.faces {
		face.Close()
	}
}

func (c *canvas) px(p tree.Point) (float32, float32) {
	return float32((p.X - c.f.X) * c.scale), float32((p.Y - c.f.Y) * c.scale)
}

func (c *canvas) drawLayout(l mapfile.Layout, opts *svgRenderer) error {
	th := &l.Theme
	if opts.background {
		if bg := parseColor(th.Background); bg.A > 0 {
			draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		}
	}

	lineColor := parseColor(th.LineColor)
	for _, ln := range l.Lines {
		if err := c.strokePath(ln.Path, th.LineWidth, lineColor); err != nil {
			return fmt.Errorf("line %s-%s: %w", ln.From, ln.To, err)
		}
	}

	genColor := parseColor(th.GeneralizationLineColor)
	for _, g := range l.Generalizations {
		if err := c.strokePath(g.Path, th.GeneralizationLineWidth, genColor); err != nil {
			return fmt.Errorf("generalization of %s: %w", g.Owner, err)
		}
		if err := c.box(g.Left, g.Top, g.Width, g.Height, g.Text, th.Generalization, false); err != nil {
			return err
		}
	}

	for _, n := range l.Nodes {
		if err := c.box(n.Left, n.Top, n.Width, n.Height, n.Text, *th.LevelAt(n.Depth), opts.highlightIDs[n.ID]); err != nil {
			return err
		}
		if !opts.showBadges {
			continue
		}
		if b, ok := badgeFor(n, th); ok {
			if err := c.badge(b, th); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *canvas) fill(col color.NRGBA) {
	if col.A > 0 {
		c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	}
	c.z.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
}

func (c *canvas) strokePath(d string, width float64, col color.NRGBA) error {
	if d == "" || col.A == 0 {
		return nil
	}
	p, err := connector.ParsePath(d)
	if err != nil {
		return err
	}
	half := max(width, 0.5) * c.scale / 2
	for _, line := range p.Flatten() {
		c.polyline(line, half)
	}
	c.fill(col)
	return nil
}

// polyline adds one quad per segment plus a square at each joint. All
// shapes share a winding so overlaps do not cancel.
func (c *canvas) polyline(pts []tree.Point, half float64) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := c.px(pts[i-1])
		x1, y1 := c.px(pts[i])
		dx, dy := float64(x1-x0), float64(y1-y0)
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := float32(-dy/l*half), float32(dx/l*half)
		c.z.MoveTo(x0+nx, y0+ny)
		c.z.LineTo(x1+nx, y1+ny)
		c.z.LineTo(x1-nx, y1-ny)
		c.z.LineTo(x0-nx, y0-ny)
		c.z.ClosePath()
		if i < len(pts)-1 {
			h := float32(half)
			c.z.MoveTo(x1-h, y1-h)
			c.z.LineTo(x1+h, y1-h)
			c.z.LineTo(x1+h, y1+h)
			c.z.LineTo(x1-h, y1+h)
			c.z.ClosePath()
		}
	}
}

// roundRect adds a rounded rectangle. Reversed rectangles subtract from
// forward ones in the same fill.
func (c *canvas) roundRect(x, y, w, h, r float64, reverse bool) {
	if w <= 0 || h <= 0 {
		return
	}
	r = max(min(r, w/2, h/2), 0)
	k := float32(c.scale)
	x0, y0 := c.px(tree.Point{X: x, Y: y})
	x1, y1 := x0+float32(w)*k, y0+float32(h)*k
	rr := float32(r) * k
	if reverse {
		c.z.MoveTo(x0+rr, y0)
		c.z.QuadTo(x0, y0, x0, y0+rr)
		c.z.LineTo(x0, y1-rr)
		c.z.QuadTo(x0, y1, x0+rr, y1)
		c.z.LineTo(x1-rr, y1)
		c.z.QuadTo(x1, y1, x1, y1-rr)
		c.z.LineTo(x1, y0+rr)
		c.z.QuadTo(x1, y0, x1-rr, y0)
		c.z.ClosePath()
		return
	}
	c.z.MoveTo(x0+rr, y0)
	c.z.LineTo(x1-rr, y0)
	c.z.QuadTo(x1, y0, x1, y0+rr)
	c.z.LineTo(x1, y1-rr)
	c.z.QuadTo(x1, y1, x1-rr, y1)
	c.z.LineTo(x0+rr, y1)
	c.z.QuadTo(x0, y1, x0, y1-rr)
	c.z.LineTo(x0, y0+rr)
	c.z.QuadTo(x0, y0, x0+rr, y0)
	c.z.ClosePath()
}

func (c *canvas) box(x, y, w, h float64, text string, lv theme.Level, highlight bool) error {
	c.roundRect(x, y, w, h, lv.Radius, false)
	c.fill(parseColor(lv.Fill))

	border, bw := parseColor(lv.Border), lv.BorderWidth
	if highlight {
		border, bw = color.NRGBA{R: 0xe8, G: 0xa3, B: 0x3d, A: 255}, max(2, bw)
	}
	if bw > 0 && border.A > 0 {
		c.roundRect(x, y, w, h, lv.Radius, false)
		c.roundRect(x+bw, y+bw, w-2*bw, h-2*bw, lv.Radius-bw, true)
		c.fill(border)
	}

	face, err := c.face(lv.FontSize)
	if err != nil {
		return err
	}
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(parseColor(lv.Color)), Face: face}
	for _, lb := range labels(text, x, y, lv) {
		if lb.Text == "" {
			continue
		}
		px, py := c.px(tree.Point{X: lb.X, Y: lb.Y})
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(px * 64), Y: fixed.Int26_6(py * 64)}
		d.DrawString(lb.Text)
	}
	return nil
}

func (c *canvas) badge(b badge, th *theme.Theme) error {
	circle := func(r float64) {
		cx, cy := c.px(tree.Point{X: b.CX, Y: b.CY})
		rr := float32(r * c.scale)
		const k = 0.5523 // cubic approximation of a quarter circle
		kr := rr * k
		c.z.MoveTo(cx+rr, cy)
		c.z.CubeTo(cx+rr, cy+kr, cx+kr, cy+rr, cx, cy+rr)
		c.z.CubeTo(cx-kr, cy+rr, cx-rr, cy+kr, cx-rr, cy)
		c.z.CubeTo(cx-rr, cy-kr, cx-kr, cy-rr, cx, cy-rr)
		c.z.CubeTo(cx+kr, cy-rr, cx+rr, cy-kr, cx+rr, cy)
		c.z.ClosePath()
	}
	circle(b.R - 1)
	c.fill(parseColor(th.Background))
	lc := parseColor(th.LineColor)
	ring := max(th.LineWidth, 1)
	cx, cy := b.CX, b.CY
	c.polyline(circlePoints(cx, cy, b.R-1, 32), ring*c.scale/2)
	c.fill(lc)

	face, err := c.face(b.R)
	if err != nil {
		return err
	}
	s := strconv.Itoa(b.Count)
	adv := float64(font.MeasureString(face, s)) / 64
	m := face.Metrics()
	px, py := c.px(tree.Point{X: cx, Y: cy})
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(lc), Face: face}
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6((float64(px) - adv/2) * 64),
		Y: fixed.Int26_6(py*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(s)
	return nil
}

func circlePoints(cx, cy, r float64, n int) []tree.Point {
	pts := make([]tree.Point, n+1)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = tree.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

// face returns a face sized for the canvas scale. Faces belong to the
// canvas, so concurrent renders never share one.
func (c *canvas) face(size float64) (font.Face, error) {
	px := size * c.scale
	if f, ok := c.faces[px]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(px)
	if err != nil {
		return nil, err
	}
	c.faces[px] = f
	return f, nil
}
