// Package pipeline runs the document → layout → render pipeline.
//
// The CLI and the HTTP API share this package so both produce identical
// layouts and artifacts for the same input.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and parse the mind-map document (JSON, YAML or TOML)
//  2. Layout: measure nodes, lay out the tree, place generalizations and
//     route connectors
//  3. Render: produce SVG, PNG, JSON or DOT
//
// Each stage can be run on its own or through [Runner.Execute], which also
// consults the cache between stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DocumentPath: "plan.json",
//	    Formats:      []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	errs "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/theme"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultPadding is the space around rendered drawings.
	DefaultPadding = 20.0

	// DefaultVizType is the default visualization type.
	DefaultVizType = mapfile.VizTypeMindmap
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	mapfile.VizTypeMindmap:  true,
	mapfile.VizTypeNodelink: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input: an inline document or a path to one.
	Document     *mapfile.Document `json:"document,omitempty"`
	DocumentPath string            `json:"-"`

	// Layout options
	VizType   string `json:"viz_type,omitempty"`
	ThemeTOML string `json:"theme,omitempty"` // TOML overrides on the default theme
	ThemePath string `json:"-"`
	LineStyle string `json:"line_style,omitempty"`
	Free      bool   `json:"free,omitempty"` // nodelink: let Graphviz place nodes

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	Padding      float64  `json:"padding,omitempty"`
	EmbedFont    bool     `json:"embed_font,omitempty"`
	NoBackground bool     `json:"no_background,omitempty"`
	Highlight    []string `json:"highlight,omitempty"`

	// Refresh skips cache reads (results are still written).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Theme  *theme.Theme `json:"-"` // takes precedence over ThemeTOML and ThemePath
	Logger *log.Logger  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded mind-map document.
	Document *mapfile.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Layout is the computed layout.
	Layout mapfile.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errs.New(errs.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: mindmap, nodelink)", vizType)
	}
	return nil
}

// ValidateLineStyle checks that a line style override is empty or valid.
func ValidateLineStyle(style string) error {
	if style == "" {
		return nil
	}
	if _, err := theme.ParseLineStyle(style); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidLineStyle, err, "line style")
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a document source is set.
func (o *Options) ValidateForLoad() error {
	if o.Document == nil && o.DocumentPath == "" {
		return errs.New(errs.ErrCodeInvalidInput, "document or document path is required")
	}
	if o.Document != nil && o.Document.Root == nil {
		return errs.New(errs.ErrCodeInvalidDocument, "document has no root node")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateLineStyle(o.LineStyle)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// IsMindmap returns true if this is a mind-map visualization.
func (o *Options) IsMindmap() bool {
	return o.VizType == "" || o.VizType == mapfile.VizTypeMindmap
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == mapfile.VizTypeNodelink
}

// ResolveTheme returns the theme for this run: Theme if set, else ThemeTOML
// or the file at ThemePath over the defaults, with LineStyle applied last.
func (o *Options) ResolveTheme() (theme.Theme, error) {
	var (
		th  theme.Theme
		err error
	)
	switch {
	case o.Theme != nil:
		th = *o.Theme
	case o.ThemeTOML != "":
		th, err = theme.Parse([]byte(o.ThemeTOML))
	case o.ThemePath != "":
		th, err = theme.Load(o.ThemePath)
	default:
		th = theme.Default()
	}
	if err != nil {
		return theme.Theme{}, err
	}
	if o.LineStyle != "" {
		style, err := theme.ParseLineStyle(o.LineStyle)
		if err != nil {
			return theme.Theme{}, errs.Wrap(errs.ErrCodeInvalidLineStyle, err, "line style")
		}
		th.LineStyle = style
	}
	if err := th.Validate(); err != nil {
		return theme.Theme{}, err
	}
	return th, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(th theme.Theme) cache.LayoutKeyOpts {
	themeData, _ := theme.Marshal(th)
	return cache.LayoutKeyOpts{
		VizType:   o.VizType,
		ThemeHash: cache.Hash(themeData),
		LineStyle: th.LineStyle.String(),
		Free:      o.Free,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG:
		k.Padding = o.Padding
		k.EmbedFont = o.EmbedFont && format == FormatSVG
		k.NoBackground = o.NoBackground
		if format == FormatPNG {
			k.Scale = o.Scale
		}
		if len(o.Highlight) > 0 {
			k.Format += "+hl:" + strings.Join(o.Highlight, ",")
		}
	}
	return k
}

func (o Options) String() string {
	src := o.DocumentPath
	if src == "" {
		src = "<inline>"
	}
	return fmt.Sprintf("%s viz=%s formats=%v", src, o.VizType, o.Formats)
}
