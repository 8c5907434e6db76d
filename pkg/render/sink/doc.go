// Package sink renders a computed [mapfile.Layout] into output formats.
//
// # Overview
//
// A "sink" is the last stage of the pipeline. This package provides:
//
//   - SVG: vector output drawn directly from the layout
//   - PNG: native raster output, no external tools required
//   - JSON: the layout itself, for caching and round-trip rendering
//
// Every renderer reads only the layout, including the theme it carries, so
// a layout file renders identically wherever it is loaded.
//
// # SVG Output
//
//	svg := sink.RenderSVG(l,
//	    sink.WithPadding(40),
//	    sink.WithEmbeddedFont(),
//	)
//
// Connectors are drawn first, then generalization brackets, then node boxes
// and their text, so lines never cover labels. Collapsed nodes get a small
// badge with their hidden child count.
//
// # PNG Output
//
// [RenderPNG] rasterises the same scene with golang.org/x/image/vector and
// draws text with the Go Regular font at the requested scale (2x by default).
//
// [mapfile.Layout]: github.com/matzehuels/mindmap/pkg/mapfile.Layout
package sink
