// Package tree provides the arena-backed mind-map tree that the layout engine
// reads and writes.
//
// # Overview
//
// A mind map is a single-rooted tree. Every node has an externally measured
// size, an expand flag, and optional overrides (growth direction, a fixed
// custom position, summary "generalization" nodes). The layout passes write
// computed fields (direction, left, top, children-area heights) back into the
// nodes in place.
//
// Nodes live in a flat arena owned by [Tree] and are addressed by stable
// [NodeID] indices. Parent and child relations are stored as indices, so a
// layout pass can mutate output fields of any node without aliasing hazards
// and without touching the structure.
//
// # Building a Tree
//
//	t := tree.New()
//	root := t.SetRoot(tree.Node{ID: "root", Width: 100, Height: 40, Expand: true})
//	a, _ := t.AddChild(root, tree.Node{ID: "a", Width: 80, Height: 30, Expand: true})
//	t.AddChild(root, tree.Node{ID: "b", Width: 80, Height: 30, Expand: true})
//	t.AddChild(a, tree.Node{ID: "a1", Width: 60, Height: 24, Expand: true})
//
// # Traversal
//
// [Walk] visits nodes in combined pre-order/post-order using an explicit
// stack, so very deep trees do not grow the goroutine stack. The pre-order
// callback can prune descent (the layout passes prune at collapsed nodes).
// Each [Visit] carries the parent, depth, sibling index and ancestor chain.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. The layout engine serialises passes
// over a tree; callers must not read output fields while a pass is running.
package tree
