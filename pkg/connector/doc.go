// Package connector computes the vector paths that connect a laid-out
// mind-map node to its children, and places generalization (summary) nodes
// next to the subtrees they summarise.
//
// Routing reads only output fields written by the layout engine, so it must
// run after [layout.Engine.Run] has finished for the tree.
//
// # Styles
//
// The style comes from [theme.Theme.LineStyle]:
//
//   - straight: an orthogonal fold line with a rounded last corner
//   - direct: one straight segment
//   - curve: a quadratic bezier from the root, cubic elsewhere
//   - curve2: a short horizontal lead followed by a circular arc
//   - brace: same-side children grouped under one bracket
//
// [Route] returns one [Connector] per visible child, index-aligned with the
// child list. In brace mode all but one connector of a group carry an empty
// [Path]; renderers skip empty paths.
//
// [layout.Engine.Run]: github.com/matzehuels/mindmap/pkg/layout.Engine.Run
package connector
