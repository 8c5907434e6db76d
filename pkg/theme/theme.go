// Package theme holds the layout and drawing configuration of a mind map.
//
// A [Theme] is an explicit, validated structure: every option the layout
// engine and the connector router read lives here, nothing is looked up
// dynamically. Margins are resolved per depth through [Theme.MarginX] and
// [Theme.MarginY]; depth 1 (the root's children) uses the Second level,
// every deeper node the Node level.
//
// Themes are stored as TOML. [Load] and [Parse] decode a partial document on
// top of [Default], so a file only needs the keys it changes:
//
//	line_style = "curve"
//
//	[second]
//	margin_x = 120
package theme

import (
	"fmt"

	errs "github.com/matzehuels/mindmap/pkg/errors"
)

// Level holds the spacing and colours of one node level.
type Level struct {
	MarginX     float64 `toml:"margin_x" json:"margin_x"`
	MarginY     float64 `toml:"margin_y" json:"margin_y"`
	FontSize    float64 `toml:"font_size" json:"font_size"`
	PaddingX    float64 `toml:"padding_x" json:"padding_x"`
	PaddingY    float64 `toml:"padding_y" json:"padding_y"`
	Fill        string  `toml:"fill" json:"fill"`
	Color       string  `toml:"color" json:"color"`
	Border      string  `toml:"border" json:"border"`
	BorderWidth float64 `toml:"border_width" json:"border_width"`
	Radius      float64 `toml:"radius" json:"radius"`
}

// Theme is the complete layout and drawing configuration.
type Theme struct {
	CanvasWidth  float64 `toml:"canvas_width" json:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height" json:"canvas_height"`
	Background   string  `toml:"background" json:"background"`

	Root           Level `toml:"root" json:"root"`
	Second         Level `toml:"second" json:"second"`
	Node           Level `toml:"node" json:"node"`
	Generalization Level `toml:"generalization" json:"generalization"`

	// HoverRectPadding is added on both sides of every margin.
	HoverRectPadding float64 `toml:"hover_rect_padding" json:"hover_rect_padding"`

	LineStyle  LineStyle `toml:"line_style" json:"line_style"`
	LineWidth  float64   `toml:"line_width" json:"line_width"`
	LineColor  string    `toml:"line_color" json:"line_color"`
	LineRadius float64   `toml:"line_radius" json:"line_radius"`

	ExpandBtnSize       float64 `toml:"expand_btn_size" json:"expand_btn_size"`
	AlwaysShowExpandBtn bool    `toml:"always_show_expand_btn" json:"always_show_expand_btn"`
	NotShowExpandBtn    bool    `toml:"not_show_expand_btn" json:"not_show_expand_btn"`

	NodeUseLineStyle                     bool `toml:"node_use_line_style" json:"node_use_line_style"`
	RootLineKeepSameInCurve              bool `toml:"root_line_keep_same_in_curve" json:"root_line_keep_same_in_curve"`
	RootLineStartPositionKeepSameInCurve bool `toml:"root_line_start_position_keep_same_in_curve" json:"root_line_start_position_keep_same_in_curve"`

	// Bezier control ratios for the curve style.
	QuadraticCX float64 `toml:"quadratic_cx" json:"quadratic_cx"`
	QuadraticCY float64 `toml:"quadratic_cy" json:"quadratic_cy"`
	CubicCX     float64 `toml:"cubic_cx" json:"cubic_cx"`

	GeneralizationLineMargin float64 `toml:"generalization_line_margin" json:"generalization_line_margin"`
	GeneralizationNodeMargin float64 `toml:"generalization_node_margin" json:"generalization_node_margin"`
	GeneralizationLineWidth  float64 `toml:"generalization_line_width" json:"generalization_line_width"`
	GeneralizationLineColor  string  `toml:"generalization_line_color" json:"generalization_line_color"`
}

// Default returns the stock theme.
func Default() Theme {
	return Theme{
		CanvasWidth:  800,
		CanvasHeight: 600,
		Background:   "#fafafa",
		Root: Level{
			FontSize: 16, PaddingX: 15, PaddingY: 5,
			Fill: "#549688", Color: "#ffffff", Border: "transparent",
			Radius: 5,
		},
		Second: Level{
			MarginX: 100, MarginY: 40,
			FontSize: 16, PaddingX: 15, PaddingY: 5,
			Fill: "#ffffff", Color: "#565656", Border: "#549688",
			BorderWidth: 1, Radius: 5,
		},
		Node: Level{
			MarginX: 50, MarginY: 0,
			FontSize: 14, PaddingX: 15, PaddingY: 5,
			Fill: "transparent", Color: "#6a6d6c", Border: "transparent",
			Radius: 5,
		},
		Generalization: Level{
			MarginX: 100, MarginY: 40,
			FontSize: 14, PaddingX: 15, PaddingY: 5,
			Fill: "#ffffff", Color: "#565656", Border: "#549688",
			BorderWidth: 1, Radius: 5,
		},
		HoverRectPadding:         2,
		LineStyle:                Straight,
		LineWidth:                1,
		LineColor:                "#549688",
		LineRadius:               5,
		ExpandBtnSize:            20,
		RootLineKeepSameInCurve:  true,
		QuadraticCX:              0.2,
		QuadraticCY:              0.8,
		CubicCX:                  0.5,
		GeneralizationLineMargin: 0,
		GeneralizationNodeMargin: 20,
		GeneralizationLineWidth:  1,
		GeneralizationLineColor:  "#549688",
	}
}

// LevelAt returns the level style for a node depth.
func (t *Theme) LevelAt(depth int) *Level {
	switch depth {
	case 0:
		return &t.Root
	case 1:
		return &t.Second
	}
	return &t.Node
}

// MarginX returns the horizontal gap between a node at depth and its parent.
func (t *Theme) MarginX(depth int) float64 {
	return t.spacing(depth).MarginX + 2*t.HoverRectPadding
}

// MarginY returns the vertical gap between siblings at depth.
func (t *Theme) MarginY(depth int) float64 {
	return t.spacing(depth).MarginY + 2*t.HoverRectPadding
}

func (t *Theme) spacing(depth int) *Level {
	if depth == 1 {
		return &t.Second
	}
	return &t.Node
}

// ShowExpandBtn reports whether connectors reserve room for the expand button.
func (t *Theme) ShowExpandBtn() bool {
	return t.AlwaysShowExpandBtn && !t.NotShowExpandBtn
}

// Validate checks every option once. Layout and routing assume a valid theme.
func (t *Theme) Validate() error {
	if t.CanvasWidth <= 0 || t.CanvasHeight <= 0 {
		return errs.New(errs.ErrCodeInvalidTheme, "canvas must be positive, got %vx%v", t.CanvasWidth, t.CanvasHeight)
	}
	if !t.LineStyle.Valid() {
		return errs.New(errs.ErrCodeInvalidLineStyle, "unknown line style %d", t.LineStyle)
	}
	nonNeg := []numField{
		{"hover_rect_padding", t.HoverRectPadding},
		{"line_width", t.LineWidth},
		{"line_radius", t.LineRadius},
		{"expand_btn_size", t.ExpandBtnSize},
		{"generalization_line_margin", t.GeneralizationLineMargin},
		{"generalization_node_margin", t.GeneralizationNodeMargin},
		{"generalization_line_width", t.GeneralizationLineWidth},
	}
	if err := checkNonNeg("", nonNeg); err != nil {
		return err
	}
	levels := []struct {
		name string
		l    *Level
	}{
		{"root", &t.Root}, {"second", &t.Second}, {"node", &t.Node}, {"generalization", &t.Generalization},
	}
	for _, lv := range levels {
		if err := lv.l.validate(lv.name); err != nil {
			return err
		}
	}
	return checkColors("", []colorField{
		{"background", t.Background},
		{"line_color", t.LineColor},
		{"generalization_line_color", t.GeneralizationLineColor},
	})
}

func (l *Level) validate(name string) error {
	err := checkNonNeg(name+".", []numField{
		{"margin_x", l.MarginX},
		{"margin_y", l.MarginY},
		{"padding_x", l.PaddingX},
		{"padding_y", l.PaddingY},
		{"border_width", l.BorderWidth},
		{"radius", l.Radius},
	})
	if err != nil {
		return err
	}
	if l.FontSize <= 0 {
		return errs.New(errs.ErrCodeInvalidTheme, "%s.font_size must be positive, got %v", name, l.FontSize)
	}
	return checkColors(name+".", []colorField{{"fill", l.Fill}, {"color", l.Color}, {"border", l.Border}})
}

// Fields are checked in declaration order so the first invalid one wins.
type numField struct {
	name string
	v    float64
}

type colorField struct {
	name, v string
}

func checkNonNeg(prefix string, fields []numField) error {
	for _, f := range fields {
		if f.v < 0 {
			return errs.New(errs.ErrCodeInvalidTheme, "%s%s must be >= 0, got %v", prefix, f.name, f.v)
		}
	}
	return nil
}

func checkColors(prefix string, fields []colorField) error {
	for _, f := range fields {
		if err := validColor(prefix+f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

func validColor(field, c string) error {
	if c == "" {
		return nil
	}
	if err := errs.ValidateColor(c); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidTheme, err, "%s", field)
	}
	return nil
}

// String summarises the theme for logs.
func (t Theme) String() string {
	return fmt.Sprintf("theme(%s, canvas %vx%v)", t.LineStyle, t.CanvasWidth, t.CanvasHeight)
}
