// Package cli implements the mindmap command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "mindmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mindmap lays out and renders mind maps",
		Long: `Mindmap computes mind-map layouts: every node's position, the space each
subtree needs on either side of its parent, the connector paths between
parents and children, and where summary brackets go. Layouts render to SVG,
PNG, JSON or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.themeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache), nil, c.Logger)
}

// newCache opens the file cache, falling back to no caching when the cache
// directory is unusable.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the flags shared by commands that compute layouts.
type layoutFlags struct {
	themePath string
	lineStyle string
	vizType   string
	free      bool
	noCache   bool
	refresh   bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.themePath, "theme", "", "theme TOML file layered over the defaults")
	cmd.Flags().StringVar(&f.lineStyle, "line-style", "", "connector style: straight, direct, curve, curve2, brace")
	cmd.Flags().StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: mindmap (default), nodelink")
	cmd.Flags().BoolVar(&f.free, "free", false, "let Graphviz place nodes (nodelink)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

func (f *layoutFlags) apply(opts *pipeline.Options) {
	opts.ThemePath = f.themePath
	opts.LineStyle = f.lineStyle
	opts.VizType = f.vizType
	opts.Free = f.free
	opts.Refresh = f.refresh
}

// renderFlags are the flags shared by commands that write artifacts.
type renderFlags struct {
	formats      string
	output       string
	scale        float64
	padding      float64
	embedFont    bool
	noBackground bool
	highlight    []string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixels per layout unit")
	cmd.Flags().Float64Var(&f.padding, "padding", pipeline.DefaultPadding, "space around the drawing")
	cmd.Flags().BoolVar(&f.embedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().BoolVar(&f.noBackground, "no-background", false, "leave the background transparent")
	cmd.Flags().StringSliceVar(&f.highlight, "highlight", nil, "node ids to outline")
}

func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	opts.Scale = f.scale
	opts.Padding = f.padding
	opts.EmbedFont = f.embedFont
	opts.NoBackground = f.noBackground
	opts.Highlight = f.highlight
	return pipeline.ValidateFormats(opts.Formats)
}

// parseFormats parses a comma-separated format string, defaulting to svg.
func parseFormats(s string) []string {
	if formats := pipeline.ParseFormats(s); len(formats) > 0 {
		return formats
	}
	return []string{pipeline.FormatSVG}
}
