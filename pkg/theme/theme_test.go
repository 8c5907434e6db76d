package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/mindmap/pkg/errors"
)

func TestDefaultValid(t *testing.T) {
	th := Default()
	if err := th.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestMargins(t *testing.T) {
	th := Default()
	tests := []struct {
		depth  int
		mx, my float64
	}{
		{1, 104, 44},
		{2, 54, 4},
		{5, 54, 4},
	}
	for _, tt := range tests {
		if got := th.MarginX(tt.depth); got != tt.mx {
			t.Errorf("MarginX(%d) = %v, want %v", tt.depth, got, tt.mx)
		}
		if got := th.MarginY(tt.depth); got != tt.my {
			t.Errorf("MarginY(%d) = %v, want %v", tt.depth, got, tt.my)
		}
	}

	th.HoverRectPadding = 0
	if got := th.MarginY(1); got != 40 {
		t.Errorf("MarginY(1) without padding = %v, want 40", got)
	}
}

func TestLevelAt(t *testing.T) {
	th := Default()
	if th.LevelAt(0) != &th.Root || th.LevelAt(1) != &th.Second || th.LevelAt(3) != &th.Node {
		t.Error("LevelAt returned the wrong level")
	}
}

func TestShowExpandBtn(t *testing.T) {
	tests := []struct {
		always, never, want bool
	}{
		{false, false, false},
		{true, false, true},
		{true, true, false},
		{false, true, false},
	}
	for _, tt := range tests {
		th := Theme{AlwaysShowExpandBtn: tt.always, NotShowExpandBtn: tt.never}
		if got := th.ShowExpandBtn(); got != tt.want {
			t.Errorf("always=%v never=%v: got %v, want %v", tt.always, tt.never, got, tt.want)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Theme)
		code   errs.Code
	}{
		{"zero canvas", func(th *Theme) { th.CanvasWidth = 0 }, errs.ErrCodeInvalidTheme},
		{"negative margin", func(th *Theme) { th.Second.MarginX = -1 }, errs.ErrCodeInvalidTheme},
		{"negative padding", func(th *Theme) { th.HoverRectPadding = -2 }, errs.ErrCodeInvalidTheme},
		{"zero font", func(th *Theme) { th.Node.FontSize = 0 }, errs.ErrCodeInvalidTheme},
		{"negative button", func(th *Theme) { th.ExpandBtnSize = -1 }, errs.ErrCodeInvalidTheme},
		{"bad colour", func(th *Theme) { th.LineColor = "<script>" }, errs.ErrCodeInvalidTheme},
		{"bad style", func(th *Theme) { th.LineStyle = LineStyle(42) }, errs.ErrCodeInvalidLineStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Default()
			tt.mutate(&th)
			err := th.Validate()
			if !errs.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateReportsFirstInvalidField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Theme)
		want   string
	}{
		{"level fields", func(th *Theme) {
			th.Second.Radius = -1
			th.Second.PaddingY = -1
			th.Second.MarginX = -1
			th.Second.Fill = "<bad>"
		}, "second.margin_x"},
		{"level colours", func(th *Theme) {
			th.Node.Border = "<bad>"
			th.Node.Fill = "<bad>"
		}, "node.fill"},
		{"theme colours", func(th *Theme) {
			th.GeneralizationLineColor = "<bad>"
			th.LineColor = "<bad>"
			th.Background = "<bad>"
		}, "background"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				th := Default()
				tt.mutate(&th)
				err := th.Validate()
				if err == nil || !strings.Contains(err.Error(), tt.want) {
					t.Fatalf("run %d: Validate() = %v, want error naming %s", i, err, tt.want)
				}
			}
		})
	}
}

func TestParseLineStyle(t *testing.T) {
	for i, name := range LineStyles() {
		got, err := ParseLineStyle(strings.ToUpper(name))
		if err != nil {
			t.Errorf("ParseLineStyle(%q): %v", name, err)
			continue
		}
		if got != LineStyle(i) || got.String() != name {
			t.Errorf("ParseLineStyle(%q) = %v", name, got)
		}
	}
	if _, err := ParseLineStyle("zigzag"); err == nil {
		t.Error("ParseLineStyle(zigzag) should fail")
	}
}

func TestParseLayersOverDefaults(t *testing.T) {
	data := []byte(`
line_style = "brace"
canvas_width = 1200

[second]
margin_x = 150
`)
	th, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.LineStyle != Brace {
		t.Errorf("LineStyle = %v, want brace", th.LineStyle)
	}
	if th.CanvasWidth != 1200 || th.CanvasHeight != 600 {
		t.Errorf("canvas = %vx%v", th.CanvasWidth, th.CanvasHeight)
	}
	if th.Second.MarginX != 150 || th.Second.MarginY != 40 {
		t.Errorf("second margins = %v/%v", th.Second.MarginX, th.Second.MarginY)
	}
	if th.Node.MarginX != 50 {
		t.Errorf("node margin changed: %v", th.Node.MarginX)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "line_style = "},
		{"unknown key", "line_styel = \"curve\""},
		{"unknown style", "line_style = \"zigzag\""},
		{"invalid value", "canvas_height = -5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errs.IsInvalid(err) {
				t.Errorf("Parse() = %v, want invalid error", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	th := Default()
	th.LineStyle = Curve2
	th.NodeUseLineStyle = true

	data, err := Marshal(th)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `line_style = "curve2"`) {
		t.Errorf("encoded theme missing line style:\n%s", data)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(encoded): %v", err)
	}
	if got != th {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, th)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.toml")
	if err := os.WriteFile(path, []byte("line_style = \"direct\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.LineStyle != Direct {
		t.Errorf("LineStyle = %v", th.LineStyle)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
