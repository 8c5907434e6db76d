package mapfile

import (
	"github.com/google/uuid"

	errs "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Measurer sizes a node's box from its text and level style.
type Measurer interface {
	Measure(text string, lv theme.Level) (w, h float64)
}

// Tree builds the arena tree for the document. Missing uids are generated,
// missing sizes are measured with m in the level style th assigns to the
// node's depth. m may be nil when every node carries its size; a nil th
// means the default theme.
func (d *Document) Tree(m Measurer, th *theme.Theme) (*tree.Tree, error) {
	if d == nil || d.Root == nil {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "document has no root node")
	}
	if th == nil {
		def := theme.Default()
		th = &def
	}

	type item struct {
		doc    *DocNode
		parent tree.NodeID
		depth  int
	}

	t := tree.New()
	seen := make(map[string]bool)
	stack := []item{{doc: d.Root, parent: tree.None}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, err := buildNode(it.doc, it.depth, m, th)
		if err != nil {
			return nil, err
		}
		if seen[n.ID] {
			return nil, errs.New(errs.ErrCodeInvalidDocument, "duplicate node uid %q", n.ID)
		}
		seen[n.ID] = true

		var id tree.NodeID
		if it.parent == tree.None {
			id = t.SetRoot(n)
		} else if id, err = t.AddChild(it.parent, n); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "build tree")
		}

		// Push in reverse so children are added in document order.
		for i := len(it.doc.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{doc: &it.doc.Children[i], parent: id, depth: it.depth + 1})
		}
	}
	return t, nil
}

// AssignUIDs gives every node without a uid a generated one, in place, and
// returns how many it assigned. Trees built afterwards keep stable ids.
func (d *Document) AssignUIDs() int {
	if d == nil || d.Root == nil {
		return 0
	}
	n := 0
	stack := []*DocNode{d.Root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Data.UID == "" {
			cur.Data.UID = uuid.NewString()
			n++
		}
		for i := range cur.Children {
			stack = append(stack, &cur.Children[i])
		}
	}
	return n
}

func buildNode(dn *DocNode, depth int, m Measurer, th *theme.Theme) (tree.Node, error) {
	data := dn.Data
	n := tree.Node{
		ID:     data.UID,
		Text:   data.Text,
		Expand: data.IsExpanded(),
		Width:  data.Width,
		Height: data.Height,
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	} else if err := errs.ValidateUID(n.ID); err != nil {
		return tree.Node{}, err
	}

	dir, err := tree.ParseDir(data.Dir)
	if err != nil {
		return tree.Node{}, errs.Wrap(errs.ErrCodeInvalidDocument, err, "node %q", n.ID)
	}
	n.DirOverride = dir

	if data.CustomLeft != nil && data.CustomTop != nil {
		n.Custom = &tree.Point{X: *data.CustomLeft, Y: *data.CustomTop}
	}

	if n.Width <= 0 || n.Height <= 0 {
		if m == nil {
			return tree.Node{}, errs.New(errs.ErrCodeInvalidDocument, "node %q has no size and no measurer", n.ID)
		}
		n.Width, n.Height = m.Measure(n.Text, *th.LevelAt(depth))
	}

	for i, g := range data.Generalization {
		gen := tree.Generalization{Text: g.Text, Width: g.Width, Height: g.Height}
		switch len(g.Range) {
		case 0:
		case 2:
			lo, hi := g.Range[0], g.Range[1]
			if lo < 0 || hi < lo || hi >= len(dn.Children) {
				return tree.Node{}, errs.New(errs.ErrCodeInvalidDocument,
					"node %q generalization %d: range [%d,%d] outside %d children", n.ID, i, lo, hi, len(dn.Children))
			}
			gen.Range = &[2]int{lo, hi}
		default:
			return tree.Node{}, errs.New(errs.ErrCodeInvalidDocument,
				"node %q generalization %d: range needs two indices, got %d", n.ID, i, len(g.Range))
		}
		if gen.Width <= 0 || gen.Height <= 0 {
			if m == nil {
				return tree.Node{}, errs.New(errs.ErrCodeInvalidDocument, "node %q generalization %d has no size and no measurer", n.ID, i)
			}
			gen.Width, gen.Height = m.Measure(gen.Text, th.Generalization)
		}
		n.Generalizations = append(n.Generalizations, gen)
	}
	return n, nil
}
