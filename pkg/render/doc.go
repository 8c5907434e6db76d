// Package render groups the output backends for computed mind map layouts.
//
// # Sinks
//
// The [sink] subpackage draws a [mapfile.Layout] directly: SVG with node
// boxes, routed connector paths and generalization braces, PNG rasterized
// in-process, and the JSON layout itself.
//
//	svg := sink.RenderSVG(l, sink.WithPadding(20))
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the same tree as a Graphviz diagram,
// ignoring the mind map placement.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, "dot")
//
// [sink]: github.com/matzehuels/mindmap/pkg/render/sink
// [nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
// [mapfile.Layout]: github.com/matzehuels/mindmap/pkg/mapfile#Layout
package render
