// Package mapfile provides the serialization formats for mind-map documents
// and computed layouts.
//
// This package is the boundary between files, API payloads and cache entries
// on one side and the in-memory [tree.Tree] on the other.
//
// # Documents
//
// A document is a tree of nodes, each carrying its data and children:
//
//	{
//	  "root": {
//	    "data": {"text": "Project", "uid": "root"},
//	    "children": [
//	      {"data": {"text": "Goals", "dir": "left"}},
//	      {"data": {"text": "Risks", "generalization": [{"text": "open"}]},
//	       "children": [{"data": {"text": "budget"}}]}
//	    ]
//	  }
//	}
//
// The same structure is accepted as JSON, TOML or YAML. The "root" wrapper
// is optional; a file whose top level has "data" is read as the root node.
// Nodes without a uid get a random UUID. Nodes without an explicit
// width/height are measured from their text.
//
//	doc, _ := mapfile.ReadDocumentFile("plan.yaml")
//	t, _ := doc.Tree(measure.New(), &th)
//
// # Layouts
//
// [Layout] is the serialisable result of a layout run: every visible node's
// box, every connector path as SVG path data, and the generalization nodes.
// Layouts are discriminated by VizType:
//
//	mapfile.VizTypeMindmap    // "mindmap": Nodes, Lines, Generalizations
//	mapfile.VizTypeNodelink   // "nodelink": additionally DOT
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package mapfile
