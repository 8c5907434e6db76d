package mapfile

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/mindmap/pkg/connector"
	errs "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Visualization types.
const (
	VizTypeMindmap  = "mindmap"
	VizTypeNodelink = "nodelink"
)

// =============================================================================
// Layout - Computed Mind-Map Geometry
// =============================================================================

// Layout is the serialization format of a computed mind map.
//
// X, Y, Width and Height give the bounding box of everything drawn, in canvas
// coordinates. Theme carries the drawing style so a layout renders without
// its source theme file.
type Layout struct {
	VizType string `json:"viz_type"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	LineStyle string      `json:"line_style,omitempty"`
	Theme     theme.Theme `json:"theme"`

	Nodes           []PlacedNode           `json:"nodes"`
	Lines           []Line                 `json:"lines,omitempty"`
	Generalizations []PlacedGeneralization `json:"generalizations,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty"`
	Engine string `json:"engine,omitempty"`
}

// IsMindmap returns true if this is a mind-map layout.
func (l *Layout) IsMindmap() bool { return l.VizType == VizTypeMindmap }

// IsNodelink returns true if this is a node-link layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// PlacedNode is a visible node with its computed box.
type PlacedNode struct {
	ID     string  `json:"id"`
	Parent string  `json:"parent,omitempty"`
	Text   string  `json:"text"`
	Depth  int     `json:"depth"`
	Dir    string  `json:"dir,omitempty"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Expand bool    `json:"expand"`
	Custom bool    `json:"custom,omitempty"`

	// Children count including hidden ones, so renderers can mark
	// collapsed nodes.
	Children int `json:"children,omitempty"`

	LeftChildrenAreaHeight   float64 `json:"left_children_area_height"`
	RightChildrenAreaHeight  float64 `json:"right_children_area_height"`
	LeftChildrenAreaHeight2  float64 `json:"left_children_area_height2"`
	RightChildrenAreaHeight2 float64 `json:"right_children_area_height2"`
}

// Line is a connector between two nodes as SVG path data. Path may be empty.
type Line struct {
	From string `json:"from"`
	To   string `json:"to"`
	Path string `json:"path"`
}

// PlacedGeneralization is a positioned summary node and its bracket.
type PlacedGeneralization struct {
	Owner  string  `json:"owner"`
	Text   string  `json:"text"`
	Dir    string  `json:"dir"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Path   string  `json:"path"`
}

// =============================================================================
// Export
// =============================================================================

// Export converts a laid-out tree with its connectors and generalization
// placements into a Layout. Nodes are listed in pre-order.
func Export(t *tree.Tree, lines []connector.Connector, gens []connector.Placement, th theme.Theme) Layout {
	l := Layout{
		VizType:   VizTypeMindmap,
		LineStyle: th.LineStyle.String(),
		Theme:     th,
	}

	var bounds connector.Box
	first := true
	grow := func(b connector.Box) {
		if first {
			bounds, first = b, false
			return
		}
		bounds = bounds.Union(b)
	}

	for _, id := range t.PreOrder() {
		n := t.Node(id)
		pn := PlacedNode{
			ID:                       n.ID,
			Text:                     n.Text,
			Depth:                    n.Depth,
			Dir:                      n.Dir.String(),
			Left:                     n.Left,
			Top:                      n.Top,
			Width:                    n.Width,
			Height:                   n.Height,
			Expand:                   n.Expand,
			Custom:                   n.HasCustomPosition(),
			Children:                 len(n.Children()),
			LeftChildrenAreaHeight:   n.LeftChildrenAreaHeight,
			RightChildrenAreaHeight:  n.RightChildrenAreaHeight,
			LeftChildrenAreaHeight2:  n.LeftChildrenAreaHeight2,
			RightChildrenAreaHeight2: n.RightChildrenAreaHeight2,
		}
		if p := n.Parent(); p != tree.None {
			pn.Parent = t.Node(p).ID
		}
		l.Nodes = append(l.Nodes, pn)
		grow(connector.NodeBox(n))
	}

	for _, c := range lines {
		l.Lines = append(l.Lines, Line{
			From: t.Node(c.Parent).ID,
			To:   t.Node(c.Child).ID,
			Path: c.Path.String(),
		})
		if b, ok := c.Path.Bounds(); ok {
			grow(b)
		}
	}

	for _, g := range gens {
		owner := t.Node(g.Owner)
		gen := owner.Generalizations[g.Index]
		l.Generalizations = append(l.Generalizations, PlacedGeneralization{
			Owner:  owner.ID,
			Text:   gen.Text,
			Dir:    g.Dir.String(),
			Left:   gen.Left,
			Top:    gen.Top,
			Width:  gen.Width,
			Height: gen.Height,
			Path:   g.Path.String(),
		})
		grow(g.Box)
		if b, ok := g.Path.Bounds(); ok {
			grow(b)
		}
	}

	l.X, l.Y = bounds.Left, bounds.Top
	l.Width, l.Height = bounds.Width(), bounds.Height()
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	l := Layout{Theme: theme.Default()}
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "unmarshal layout")
	}

	if l.VizType == "" {
		l.VizType = VizTypeMindmap
	}

	switch {
	case !l.IsMindmap() && !l.IsNodelink():
		return Layout{}, errs.New(errs.ErrCodeInvalidVizType, "unknown viz type %q", l.VizType)
	case len(l.Nodes) == 0:
		return Layout{}, errs.New(errs.ErrCodeInvalidInput, "layout must contain nodes")
	case l.IsNodelink() && l.DOT == "":
		return Layout{}, errs.New(errs.ErrCodeInvalidInput, "nodelink layout must contain DOT string")
	}
	if err := l.Theme.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// NodeByID returns the placed node with the given id.
func (l *Layout) NodeByID(id string) (*PlacedNode, bool) {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i], true
		}
	}
	return nil, false
}
