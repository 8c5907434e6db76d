// Package nodelink renders mind maps as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a computed [mapfile.Layout] into DOT source. By default
// each node is pinned at its mind-map position and rendered with the neato
// engine, so the diagram keeps the mind-map geometry with straight edges.
// With [Options].Free set, Graphviz's dot engine lays the tree out
// left-to-right on its own.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{}.Engine())
//
// Collapsed nodes are drawn with a double border.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz] in-process; no Graphviz
// installation is needed.
//
// [mapfile.Layout]: github.com/matzehuels/mindmap/pkg/mapfile.Layout
package nodelink
