// Package pkg provides the core libraries for mindmap layout and rendering.
//
// # Overview
//
// A mind map is a tree of text topics drawn around a central root, with
// first-level branches split between the left and right side and every
// child connected to its parent by a routed line. The pkg directory is
// organized into these areas:
//
//  1. [tree] - Arena-backed node tree with pre-order walks
//  2. [theme] - Per-level spacing, font and line style settings (TOML)
//  3. [layout] - Base and top layout passes plus the coalescing [layout.Scheduler]
//  4. [connector] - Parent/child line routing and generalization braces
//  5. [mapfile] - Document and layout file formats (JSON, YAML)
//  6. [render] - SVG, PNG and JSON sinks plus Graphviz node-link diagrams
//  7. [pipeline] - Orchestration (load → layout → render) with caching
//  8. [api] - HTTP service wrapping the pipeline
//
// # Architecture
//
//	map document (.json / .yaml)
//	         ↓
//	    [mapfile] package (parse, build tree with measured sizes)
//	         ↓
//	    [layout] package (positions, directions, overlap adjustment)
//	         ↓
//	    [connector] package (line paths, braces)
//	         ↓
//	    [mapfile.Layout] (serializable placement)
//	         ↓
//	    SVG/PNG/JSON/DOT output
//
// # Quick Start
//
//	doc, _ := mapfile.ReadDocumentFile("plan.yaml")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	l, _ := runner.GenerateLayout(ctx, doc, pipeline.Options{})
//	svg := sink.RenderSVG(l)
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/tree
// [theme]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/theme
// [layout]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/layout
// [layout.Scheduler]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/layout#Scheduler
// [connector]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/connector
// [mapfile]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/mapfile
// [mapfile.Layout]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/mapfile#Layout
// [render]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/api
package pkg
