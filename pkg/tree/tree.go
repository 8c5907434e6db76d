package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTree is returned when an operation needs a root and the tree has none.
	ErrEmptyTree = errors.New("tree has no root")

	// ErrRootExists is returned by [Tree.SetRoot] when the tree already has a root.
	ErrRootExists = errors.New("tree already has a root")

	// ErrUnknownNode is returned when a NodeID does not address a node in the arena.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidRange is returned by [Tree.Validate] when a generalization range
	// does not address existing children.
	ErrInvalidRange = errors.New("invalid generalization range")
)

// NodeID addresses a node in a Tree's arena.
type NodeID int

// None is the NodeID of the root's parent.
const None NodeID = -1

// Dir is the growth direction of a subtree.
type Dir uint8

const (
	// DirNone is the direction of the root, and of nodes with no override.
	DirNone Dir = iota
	// DirLeft grows the subtree to the left of its parent.
	DirLeft
	// DirRight grows the subtree to the right of its parent.
	DirRight
)

// String returns "left", "right" or "" for DirNone.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return ""
}

// ParseDir parses "left" or "right". The empty string yields DirNone.
func ParseDir(s string) (Dir, error) {
	switch s {
	case "":
		return DirNone, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return DirNone, fmt.Errorf("invalid direction %q (must be left or right)", s)
}

// Point is a 2-D canvas coordinate.
type Point struct {
	X, Y float64
}

// Generalization is a summary node attached to a tree node.
//
// With a nil Range it summarises its owner's whole visible subtree. With a
// Range it summarises the owner's children Range[0]..Range[1] (inclusive).
// Width and Height are measured inputs; Left and Top are written by the
// generalization placer.
type Generalization struct {
	Text   string
	Range  *[2]int
	Width  float64
	Height float64

	Left, Top float64
}

// Node is a single mind-map node.
//
// Fields in the first group are inputs owned by the data layer. Fields in the
// second group are outputs written in place by a layout pass.
type Node struct {
	ID              string
	Text            string
	Expand          bool
	Width, Height   float64
	DirOverride     Dir
	Custom          *Point
	Generalizations []Generalization

	Dir                      Dir
	Depth                    int
	Left, Top                float64
	LeftChildrenAreaHeight   float64
	RightChildrenAreaHeight  float64
	LeftChildrenAreaHeight2  float64
	RightChildrenAreaHeight2 float64

	parent   NodeID
	children []NodeID
}

// Parent returns the node's parent, or None for the root.
func (n *Node) Parent() NodeID { return n.parent }

// Children returns the node's children in sibling order.
// The returned slice must not be modified.
func (n *Node) Children() []NodeID { return n.children }

// HasCustomPosition reports whether the node is pinned at a custom position.
func (n *Node) HasCustomPosition() bool { return n.Custom != nil }

// HasGeneralization reports whether the node owns at least one generalization.
func (n *Node) HasGeneralization() bool { return len(n.Generalizations) > 0 }

// GeneralizationHeight returns the tallest generalization height, or 0.
func (n *Node) GeneralizationHeight() float64 {
	var h float64
	for _, g := range n.Generalizations {
		h = max(h, g.Height)
	}
	return h
}

// Right returns the x coordinate of the node's right edge.
func (n *Node) Right() float64 { return n.Left + n.Width }

// Bottom returns the y coordinate of the node's bottom edge.
func (n *Node) Bottom() float64 { return n.Top + n.Height }

// CenterY returns the node's vertical center.
func (n *Node) CenterY() float64 { return n.Top + n.Height/2 }

// Tree is an arena of nodes with a single root.
// The zero value is an empty tree ready for SetRoot.
type Tree struct {
	nodes []Node
	root  NodeID
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{root: None}
}

// SetRoot adds the root node and returns its id.
// It panics if the tree is not empty.
func (t *Tree) SetRoot(n Node) NodeID {
	if len(t.nodes) > 0 {
		panic(ErrRootExists)
	}
	n.parent = None
	n.children = nil
	t.nodes = append(t.nodes, n)
	t.root = NodeID(len(t.nodes) - 1)
	return t.root
}

// AddChild appends n as the last child of parent and returns its id.
func (t *Tree) AddChild(parent NodeID, n Node) (NodeID, error) {
	if !t.valid(parent) {
		return None, fmt.Errorf("add child to %d: %w", parent, ErrUnknownNode)
	}
	n.parent = parent
	n.children = nil
	t.nodes = append(t.nodes, n)
	id := NodeID(len(t.nodes) - 1)
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id, nil
}

// Root returns the root id, or None for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return None
	}
	return t.root
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node addressed by id. It panics on an unknown id, the same
// way an out-of-range slice index does.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Lookup returns the node addressed by id, reporting whether it exists.
func (t *Tree) Lookup(id NodeID) (*Node, bool) {
	if !t.valid(id) {
		return nil, false
	}
	return &t.nodes[id], true
}

// Find returns the id of the node whose ID equals uid.
func (t *Tree) Find(uid string) (NodeID, bool) {
	for i := range t.nodes {
		if t.nodes[i].ID == uid {
			return NodeID(i), true
		}
	}
	return None, false
}

// Parent returns the parent of id, or None for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// Children returns the children of id in sibling order.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].children }

// VisibleChildren returns the children of id when it is expanded, else nil.
// Collapsed subtrees stay in the arena but take no part in layout.
func (t *Tree) VisibleChildren(id NodeID) []NodeID {
	n := &t.nodes[id]
	if !n.Expand {
		return nil
	}
	return n.children
}

// IndexInParent returns the sibling index of id, or 0 for the root.
func (t *Tree) IndexInParent(id NodeID) int {
	p := t.nodes[id].parent
	if p == None {
		return 0
	}
	for i, c := range t.nodes[p].children {
		if c == id {
			return i
		}
	}
	return 0
}

// IsRoot reports whether id is the root.
func (t *Tree) IsRoot(id NodeID) bool { return t.nodes[id].parent == None }

// Validate checks the structural invariants a layout pass relies on: a root
// exists, every child index is in range and points back at its parent, every
// node is reachable exactly once, and generalization ranges address
// existing children.
func (t *Tree) Validate() error {
	if t.Root() == None {
		return ErrEmptyTree
	}
	seen := make([]bool, len(t.nodes))
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			return fmt.Errorf("node %d reached twice", id)
		}
		seen[id] = true
		n := &t.nodes[id]
		for _, c := range n.children {
			if !t.valid(c) {
				return fmt.Errorf("child %d of node %d: %w", c, id, ErrUnknownNode)
			}
			if t.nodes[c].parent != id {
				return fmt.Errorf("child %d of node %d has parent %d", c, id, t.nodes[c].parent)
			}
			stack = append(stack, c)
		}
		for _, g := range n.Generalizations {
			if g.Range == nil {
				continue
			}
			lo, hi := g.Range[0], g.Range[1]
			if lo < 0 || hi < lo || hi >= len(n.children) {
				return fmt.Errorf("node %q range [%d,%d] with %d children: %w", n.ID, lo, hi, len(n.children), ErrInvalidRange)
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("node %d is unreachable from the root", i)
		}
	}
	return nil
}

// Translate moves the visible subtree rooted at id by dy vertically.
// Custom-positioned descendants are pinned: they and their subtrees stay put.
func (t *Tree) Translate(id NodeID, dy float64) {
	if dy == 0 {
		return
	}
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.nodes[cur].Top += dy
		for _, c := range t.VisibleChildren(cur) {
			if t.nodes[c].Custom == nil {
				stack = append(stack, c)
			}
		}
	}
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
