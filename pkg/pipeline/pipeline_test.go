package pipeline

import (
	"testing"

	errs "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/theme"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"dot", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errs.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"mindmap", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestValidateLineStyle(t *testing.T) {
	for _, s := range []string{"", "straight", "Curve2", "brace"} {
		if err := ValidateLineStyle(s); err != nil {
			t.Errorf("ValidateLineStyle(%q) = %v", s, err)
		}
	}
	if err := ValidateLineStyle("zigzag"); !errs.Is(err, errs.ErrCodeInvalidLineStyle) {
		t.Errorf("ValidateLineStyle(zigzag) = %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" svg, PNG,,svg ,json")
	want := []string{"svg", "png", "json"}
	if len(got) != len(want) {
		t.Fatalf("ParseFormats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseFormats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLoad(); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("missing document: %v", err)
	}

	opts = Options{Document: &mapfile.Document{}}
	if err := opts.ValidateForLoad(); !errs.Is(err, errs.ErrCodeInvalidDocument) {
		t.Errorf("rootless document: %v", err)
	}

	opts = Options{DocumentPath: "plan.json"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("path should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default not set")
	}
}

func TestOptionsIsMindmap(t *testing.T) {
	opts := Options{}
	if !opts.IsMindmap() || opts.IsNodelink() {
		t.Error("Empty VizType should be mindmap")
	}
	opts.VizType = "nodelink"
	if opts.IsMindmap() || !opts.IsNodelink() {
		t.Error("nodelink VizType should be nodelink")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{DocumentPath: "plan.json"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	vizType, formats, scale := opts.VizType, opts.Formats, opts.Scale

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.VizType != vizType || len(opts.Formats) != len(formats) || opts.Scale != scale {
		t.Error("options changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.Padding != DefaultPadding {
		t.Errorf("Padding should be %v, got %v", DefaultPadding, opts.Padding)
	}
}

func TestValidateForRender(t *testing.T) {
	opts := Options{Formats: []string{"svg", "gif"}}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("unknown format should fail")
	}
	opts = Options{Scale: -1}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("negative scale should fail")
	}
	opts = Options{VizType: "tower"}
	if err := opts.ValidateForRender(); !errs.Is(err, errs.ErrCodeInvalidVizType) {
		t.Errorf("unknown viz type: %v", err)
	}
}

func TestResolveTheme(t *testing.T) {
	opts := Options{}
	th, err := opts.ResolveTheme()
	if err != nil {
		t.Fatal(err)
	}
	if th.LineStyle != theme.Straight {
		t.Errorf("default line style = %v", th.LineStyle)
	}

	opts = Options{ThemeTOML: "line_style = \"curve\"\nline_width = 3\n", LineStyle: "brace"}
	th, err = opts.ResolveTheme()
	if err != nil {
		t.Fatal(err)
	}
	if th.LineStyle != theme.Brace || th.LineWidth != 3 {
		t.Errorf("resolved theme = %v width %v, want brace width 3", th.LineStyle, th.LineWidth)
	}

	custom := theme.Default()
	custom.LineStyle = theme.Direct
	opts = Options{Theme: &custom, ThemeTOML: "line_style = \"curve\""}
	if th, _ = opts.ResolveTheme(); th.LineStyle != theme.Direct {
		t.Errorf("Theme should take precedence, got %v", th.LineStyle)
	}

	opts = Options{LineStyle: "zigzag"}
	if _, err := opts.ResolveTheme(); err == nil {
		t.Error("bad line style should fail")
	}
	opts = Options{ThemePath: "/does/not/exist.toml"}
	if _, err := opts.ResolveTheme(); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing theme file: %v", err)
	}
}

func TestKeyOpts(t *testing.T) {
	opts := Options{VizType: "mindmap", Scale: 2, Padding: 20}
	a := opts.LayoutKeyOpts(theme.Default())
	curve := theme.Default()
	curve.LineStyle = theme.Curve
	b := opts.LayoutKeyOpts(curve)
	if a == b {
		t.Error("theme change should change layout key options")
	}

	if opts.ArtifactKeyOpts("json").Scale != 0 {
		t.Error("json artifacts should not depend on scale")
	}
	if opts.ArtifactKeyOpts("png").Scale != 2 {
		t.Error("png artifacts should depend on scale")
	}
	plain := Options{Padding: 20}
	opts.Highlight = []string{"a"}
	if opts.ArtifactKeyOpts("svg") == plain.ArtifactKeyOpts("svg") {
		t.Error("highlight should change svg key")
	}
}
