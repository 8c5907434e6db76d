package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/theme"
)

func sampleLayout() mapfile.Layout {
	return mapfile.Layout{
		VizType: mapfile.VizTypeMindmap,
		X:       0, Y: 0, Width: 300, Height: 100,
		LineStyle: "straight",
		Theme:     theme.Default(),
		Nodes: []mapfile.PlacedNode{
			{ID: "root", Text: "Root", Left: 100, Top: 30, Width: 80, Height: 30, Expand: true, Children: 1},
			{ID: "a", Parent: "root", Text: "a<b>", Depth: 1, Dir: "right", Left: 230, Top: 35, Width: 50, Height: 20, Children: 2},
		},
		Lines: []mapfile.Line{{From: "root", To: "a", Path: "M 180,45 L 230,45"}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleLayout()))

	for _, want := range []string{
		`viewBox="-20 -20 340 140"`,
		`width="340" height="140"`,
		`<path d="M 180,45 L 230,45" fill="none" stroke="#549688"`,
		`id="node-root"`,
		`a&lt;b&gt;</text>`,
		`class="badge"`,
		`>2</text>`,
		`fill="#fafafa"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not terminated")
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font embedded without WithEmbeddedFont")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(),
		WithPadding(0),
		WithoutBackground(),
		WithoutBadges(),
		WithEmbeddedFont(),
		WithSVGScale(2),
		WithHighlight("a"),
	))

	if !strings.Contains(svg, `viewBox="0 0 300 100" width="600" height="200"`) {
		t.Errorf("unexpected header: %s", strings.SplitN(svg, "\n", 2)[0])
	}
	if strings.Contains(svg, "#fafafa") {
		t.Error("background drawn despite WithoutBackground")
	}
	if strings.Contains(svg, "badge") {
		t.Error("badge drawn despite WithoutBadges")
	}
	if !strings.Contains(svg, "@font-face") || !strings.Contains(svg, "base64,") {
		t.Error("font not embedded")
	}
	if !strings.Contains(svg, `stroke="#e8a33d"`) {
		t.Error("highlight missing")
	}
}

func TestRenderSVGSkipsEmptyLines(t *testing.T) {
	l := sampleLayout()
	l.Lines = append(l.Lines, mapfile.Line{From: "root", To: "b"})
	svg := string(RenderSVG(l))
	if n := strings.Count(svg, `data-from="root"`); n != 1 {
		t.Errorf("got %d drawn lines, want 1", n)
	}
}

func TestRenderSVGGeneralization(t *testing.T) {
	l := sampleLayout()
	l.Generalizations = []mapfile.PlacedGeneralization{{
		Owner: "a", Text: "Summary", Dir: "right",
		Left: 320, Top: 30, Width: 60, Height: 20,
		Path: "M 285,35 Q 305,45 285,55",
	}}
	svg := string(RenderSVG(l))
	if !strings.Contains(svg, `class="generalizations"`) || !strings.Contains(svg, ">Summary</text>") {
		t.Error("generalization not drawn")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(sampleLayout())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 680, 280) {
		t.Fatalf("bounds = %v, want 680x280", got)
	}

	checks := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"background", 1, 1, color.RGBA{0xfa, 0xfa, 0xfa, 0xff}},
		{"root fill", 248, 130, color.RGBA{0x54, 0x96, 0x88, 0xff}},
		{"connector", 450, 130, color.RGBA{0x54, 0x96, 0x88, 0xff}},
	}
	for _, c := range checks {
		got := color.RGBAModel.Convert(img.At(c.x, c.y)).(color.RGBA)
		if !near(got, c.want) {
			t.Errorf("%s at (%d,%d) = %v, want %v", c.name, c.x, c.y, got, c.want)
		}
	}
}

func TestRenderPNGOptions(t *testing.T) {
	data, err := RenderPNG(sampleLayout(), WithScale(1), WithPNGSVGOptions(WithPadding(0)))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 300 || cfg.Height != 100 {
		t.Errorf("size = %dx%d, want 300x100", cfg.Width, cfg.Height)
	}

	data, err = RenderPNG(sampleLayout(), WithMaxSide(340))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, _ = png.DecodeConfig(bytes.NewReader(data))
	if cfg.Width != 340 || cfg.Height != 140 {
		t.Errorf("downsampled size = %dx%d, want 340x140", cfg.Width, cfg.Height)
	}

	if _, err := RenderPNG(sampleLayout(), WithScale(0)); err == nil {
		t.Error("expected error for zero scale")
	}
	if _, err := RenderPNG(sampleLayout(), WithScale(1000)); err == nil {
		t.Error("expected error for oversized image")
	}
}

func TestRenderPNGBadPath(t *testing.T) {
	l := sampleLayout()
	l.Lines[0].Path = "M 1,1 X 2"
	if _, err := RenderPNG(l); err == nil {
		t.Error("expected error for malformed path")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleLayout())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	back, err := mapfile.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if len(back.Nodes) != 2 || back.Nodes[1].Text != "a<b>" {
		t.Errorf("round trip lost nodes: %+v", back.Nodes)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#549688", color.NRGBA{0x54, 0x96, 0x88, 255}},
		{"#00000080", color.NRGBA{0, 0, 0, 0x80}},
		{"transparent", color.NRGBA{}},
		{"none", color.NRGBA{}},
		{"White", color.NRGBA{255, 255, 255, 255}},
		{"chartreuse", color.NRGBA{A: 255}},
		{"#zzz", color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in); got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 2 || y-x <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}
