// Package layout computes absolute positions for every visible node of a
// mind-map tree.
//
// # Passes
//
// A layout run is three passes over the tree, each a [tree.Walk] that stops
// descending at collapsed nodes:
//
//  1. Base values: resolves each node's growth direction, its left
//     coordinate, and (bottom-up) the total height its children need on each
//     side, including margins and generalization nodes.
//  2. Top values: stacks each node's children vertically, centred on the
//     parent, separately for the left and right side.
//  3. Overlap resolution: where a node's children need more room than the
//     node itself, pushes the node's same-side siblings apart and repeats
//     the correction at every ancestor level.
//
// The root is centred on the theme's canvas. Children of the root alternate
// right/left by sibling index unless they carry a direction override; deeper
// nodes inherit their parent's direction.
//
// # Custom positions
//
// A node with a custom position is pinned there. Its subtree is laid out
// relative to it, and overlap resolution never moves it or its subtree.
//
// # Running
//
// [Engine.Layout] runs the passes synchronously. [Engine.Run] runs them as
// discrete units that yield the processor in between and then invokes a
// completion callback. [Scheduler] serialises runs on a single worker where
// a newer request replaces one that has not started yet.
package layout
