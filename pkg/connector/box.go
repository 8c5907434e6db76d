package connector

import "github.com/matzehuels/mindmap/pkg/tree"

// Box is an axis-aligned rectangle in canvas coordinates (y grows down).
type Box struct {
	Left, Top     float64
	Right, Bottom float64
}

// NodeBox returns the rectangle a node occupies.
func NodeBox(n *tree.Node) Box {
	return Box{Left: n.Left, Top: n.Top, Right: n.Right(), Bottom: n.Bottom()}
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Left:   min(b.Left, o.Left),
		Top:    min(b.Top, o.Top),
		Right:  max(b.Right, o.Right),
		Bottom: max(b.Bottom, o.Bottom),
	}
}

// Overlaps reports whether b and o share any interior area.
func (b Box) Overlaps(o Box) bool {
	return b.Left < o.Right && o.Left < b.Right && b.Top < o.Bottom && o.Top < b.Bottom
}
