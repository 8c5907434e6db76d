package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/render/sink"
)

// RenderFromLayout renders every requested format concurrently. Each format
// only reads l.
func RenderFromLayout(ctx context.Context, l mapfile.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := mapfile.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(ctx, l, opts)
}

func renderFormat(ctx context.Context, l mapfile.Layout, format string, opts Options) ([]byte, error) {
	if format == FormatJSON {
		return sink.RenderJSON(l)
	}
	if l.IsNodelink() {
		return renderNodelink(ctx, l, format)
	}

	svgOpts := buildSVGOptions(opts)
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(l, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelink.Options{Free: opts.Free})), nil
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "unsupported mindmap format: %s", format)
}

func renderNodelink(ctx context.Context, l mapfile.Layout, format string) ([]byte, error) {
	if l.DOT == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "nodelink layout missing DOT string")
	}
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, l.DOT, l.Engine)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, l.DOT, l.Engine)
	case FormatDOT:
		return []byte(l.DOT), nil
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithPadding(opts.Padding)}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	if opts.NoBackground {
		svgOpts = append(svgOpts, sink.WithoutBackground())
	}
	if len(opts.Highlight) > 0 {
		svgOpts = append(svgOpts, sink.WithHighlight(opts.Highlight...))
	}
	return svgOpts
}
