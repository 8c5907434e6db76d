package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmap/pkg/mapfile"
)

// pointsPerUnit converts layout pixels to Graphviz points.
const pointsPerUnit = 0.75

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds the computed box and direction to each label.
	Detailed bool
	// Free lets Graphviz place nodes itself instead of pinning them to the
	// mind-map layout.
	Free bool
}

// Engine returns the Graphviz layout engine used for opts.
func (o Options) Engine() string {
	if o.Free {
		return string(graphviz.DOT)
	}
	return string(graphviz.NEATO)
}

// ToDOT converts a mind-map layout to Graphviz DOT. Unless opts.Free is set,
// every node is pinned at its computed centre so neato reproduces the
// mind-map geometry with straight edges.
func ToDOT(l mapfile.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Free {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  splines=line;\n")
	}
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", l.Theme.Background)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontname=%q];\n", "Go")
	fmt.Fprintf(&buf, "  edge [arrowhead=none, color=%q];\n", l.Theme.LineColor)
	buf.WriteString("\n")

	bottom := l.Y + l.Height
	for _, n := range l.Nodes {
		lv := l.Theme.LevelAt(n.Depth)
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("fillcolor=%q", dotColor(lv.Fill)),
			fmt.Sprintf("fontcolor=%q", dotColor(lv.Color)),
			fmt.Sprintf("fontsize=%s", num(lv.FontSize*pointsPerUnit)),
		}
		if !opts.Free {
			cx := (n.Left + n.Width/2 - l.X) * pointsPerUnit
			cy := (bottom - n.Top - n.Height/2) * pointsPerUnit
			attrs = append(attrs,
				fmt.Sprintf("pos=\"%s,%s!\"", num(cx), num(cy)),
				fmt.Sprintf("width=%s", num(n.Width/96)),
				fmt.Sprintf("height=%s", num(n.Height/96)),
				"fixedsize=true",
			)
		}
		if !n.Expand && n.Children > 0 {
			attrs = append(attrs, "peripheries=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range l.Nodes {
		if n.Parent != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.Parent, n.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n mapfile.PlacedNode, detailed bool) string {
	if !detailed {
		return n.Text
	}
	parts := []string{fmt.Sprintf("left: %s top: %s", num(n.Left), num(n.Top))}
	if n.Dir != "" {
		parts = append(parts, "dir: "+n.Dir)
	}
	return n.Text + "\n" + strings.Join(parts, "\n")
}

// dotColor maps theme colours Graphviz does not understand.
func dotColor(c string) string {
	if c == "" || c == "none" {
		return "transparent"
	}
	return c
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz with the given
// engine ("neato" for pinned layouts, "dot" otherwise).
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	out, err := render(ctx, dot, engine, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot, engine string) ([]byte, error) {
	return render(ctx, dot, engine, graphviz.PNG)
}

func render(ctx context.Context, dot, engine string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if engine == "" {
		engine = string(graphviz.NEATO)
	}
	gv.SetLayout(graphviz.Layout(engine))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
