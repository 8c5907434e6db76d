package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/theme"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	padding      float64
	background   bool
	embedFont    bool
	scale        float64
	showBadges   bool
	highlightIDs map[string]bool
}

// WithPadding sets the space around the drawing (default 20).
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithoutBackground leaves the canvas transparent.
func WithoutBackground() SVGOption { return func(r *svgRenderer) { r.background = false } }

// WithEmbeddedFont embeds Go Regular as a data URI so the SVG renders the
// same without the font installed.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithSVGScale multiplies the width and height attributes. The viewBox stays
// in layout units.
func WithSVGScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithoutBadges hides the hidden-children badges on collapsed nodes.
func WithoutBadges() SVGOption { return func(r *svgRenderer) { r.showBadges = false } }

// WithHighlight outlines the given nodes.
func WithHighlight(ids ...string) SVGOption {
	return func(r *svgRenderer) {
		r.highlightIDs = make(map[string]bool, len(ids))
		for _, id := range ids {
			r.highlightIDs[id] = true
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{padding: defaultPadding, background: true, scale: 1, showBadges: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	return r
}

// RenderSVG draws the layout as a standalone SVG document.
func RenderSVG(l mapfile.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	th := &l.Theme
	f := frameOf(l, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(f.X), num(f.Y), num(f.W), num(f.H), f.W*r.scale, f.H*r.scale)

	renderStyle(&buf, r.embedFont)
	if r.background && th.Background != "" {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(f.X), num(f.Y), num(f.W), num(f.H), escape(th.Background))
	}

	buf.WriteString(`  <g class="lines">` + "\n")
	for _, ln := range l.Lines {
		if ln.Path == "" {
			continue
		}
		fmt.Fprintf(&buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="%s" data-from="%s" data-to="%s"/>`+"\n",
			ln.Path, escape(th.LineColor), num(th.LineWidth), escape(ln.From), escape(ln.To))
	}
	buf.WriteString("  </g>\n")

	if len(l.Generalizations) > 0 {
		buf.WriteString(`  <g class="generalizations">` + "\n")
		for _, g := range l.Generalizations {
			fmt.Fprintf(&buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
				g.Path, escape(th.GeneralizationLineColor), num(th.GeneralizationLineWidth))
			renderBox(&buf, "generalization", "", g.Left, g.Top, g.Width, g.Height, g.Text, th.Generalization, false)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range l.Nodes {
		renderBox(&buf, "node depth-"+strconv.Itoa(n.Depth), n.ID, n.Left, n.Top, n.Width, n.Height,
			n.Text, *th.LevelAt(n.Depth), r.highlightIDs[n.ID])
		if !r.showBadges {
			continue
		}
		if b, ok := badgeFor(n, th); ok {
			renderBadge(&buf, b, th)
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStyle(buf *bytes.Buffer, embed bool) {
	buf.WriteString("  <style>\n")
	if embed {
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.GoRegularBase64())
	}
	fmt.Fprintf(buf, "    text { font-family: %s; white-space: pre; }\n", fonts.FallbackFontFamily)
	buf.WriteString("  </style>\n")
}

func renderBox(buf *bytes.Buffer, class, id string, x, y, w, h float64, text string, lv theme.Level, highlight bool) {
	if id != "" {
		fmt.Fprintf(buf, `    <g class="%s" id="node-%s">`+"\n", class, escape(id))
	} else {
		fmt.Fprintf(buf, `    <g class="%s">`+"\n", class)
	}
	stroke, strokeWidth := lv.Border, lv.BorderWidth
	if highlight {
		stroke, strokeWidth = "#e8a33d", max(2, strokeWidth)
	}
	fmt.Fprintf(buf, `      <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(x), num(y), num(w), num(h), num(lv.Radius), escape(lv.Fill), escape(stroke), num(strokeWidth))
	for _, lb := range labels(text, x, y, lv) {
		if lb.Text == "" {
			continue
		}
		fmt.Fprintf(buf, `      <text x="%s" y="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(lb.X), num(lb.Y), num(lv.FontSize), escape(lv.Color), escape(lb.Text))
	}
	buf.WriteString("    </g>\n")
}

func renderBadge(buf *bytes.Buffer, b badge, th *theme.Theme) {
	fmt.Fprintf(buf, `    <circle class="badge" cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(b.CX), num(b.CY), num(b.R-1), escape(th.Background), escape(th.LineColor), num(th.LineWidth))
	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="central">%d</text>`+"\n",
		num(b.CX), num(b.CY), num(b.R), escape(th.LineColor), b.Count)
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
