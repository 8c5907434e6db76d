package mapfile

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/uuid"

	errs "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// fixedMeasurer sizes text at 10px per rune by the level's font size.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text string, lv theme.Level) (float64, float64) {
	return float64(len([]rune(text)))*10 + 2*lv.PaddingX, lv.FontSize + 2*lv.PaddingY
}

const jsonDoc = `{
  "root": {
    "data": {"text": "Project", "uid": "root"},
    "children": [
      {"data": {"text": "Goals", "uid": "goals", "dir": "left"}},
      {"data": {"text": "Risks", "uid": "risks", "expand": false,
                "generalization": [{"text": "open", "range": [0, 1]}]},
       "children": [
         {"data": {"text": "budget", "uid": "budget"}},
         {"data": {"text": "time", "uid": "time", "width": 70, "height": 30}}
       ]},
      {"data": {"text": "Pinned", "uid": "pinned", "customLeft": 5, "customTop": 6}}
    ]
  }
}`

const yamlDoc = `
root:
  data: {text: Project, uid: root}
  children:
    - data: {text: Goals, uid: goals, dir: left}
    - data:
        text: Risks
        uid: risks
        expand: false
        generalization:
          - {text: open, range: [0, 1]}
      children:
        - data: {text: budget, uid: budget}
        - data: {text: time, uid: time, width: 70, height: 30}
    - data: {text: Pinned, uid: pinned, customLeft: 5, customTop: 6}
`

const tomlDoc = `
[root.data]
text = "Project"
uid = "root"

[[root.children]]
[root.children.data]
text = "Goals"
uid = "goals"
dir = "left"

[[root.children]]
[root.children.data]
text = "Risks"
uid = "risks"
expand = false
generalization = [{ text = "open", range = [0, 1] }]

[[root.children.children]]
[root.children.children.data]
text = "budget"
uid = "budget"

[[root.children.children]]
[root.children.children.data]
text = "time"
uid = "time"
width = 70.0
height = 30.0

[[root.children]]
[root.children.data]
text = "Pinned"
uid = "pinned"
customLeft = 5.0
customTop = 6.0
`

func TestParseDocumentFormats(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{FormatJSON, jsonDoc},
		{FormatYAML, yamlDoc},
		{FormatTOML, tomlDoc},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("ParseDocument: %v", err)
			}
			if got := doc.Count(); got != 6 {
				t.Errorf("Count() = %d, want 6", got)
			}
			risks := doc.Root.Children[1]
			if risks.Data.IsExpanded() {
				t.Error("risks should be collapsed")
			}
			if len(risks.Data.Generalization) != 1 || !slices.Equal(risks.Data.Generalization[0].Range, []int{0, 1}) {
				t.Errorf("generalization = %+v", risks.Data.Generalization)
			}
			pinned := doc.Root.Children[2].Data
			if pinned.CustomLeft == nil || *pinned.CustomLeft != 5 || *pinned.CustomTop != 6 {
				t.Errorf("custom position = %v,%v", pinned.CustomLeft, pinned.CustomTop)
			}
		})
	}
}

func TestParseDocumentBareRoot(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"data": {"text": "solo"}, "children": [{"data": {"text": "kid"}}]}`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.Data.Text != "solo" || len(doc.Root.Children) != 1 {
		t.Errorf("root = %+v", doc.Root)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		code   errs.Code
	}{
		{"syntax", `{"root": `, FormatJSON, errs.ErrCodeInvalidDocument},
		{"no root", `{"title": "x"}`, FormatJSON, errs.ErrCodeInvalidDocument},
		{"format", `{}`, "xml", errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data), tt.format)
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]string{
		"a.json": FormatJSON, "b.TOML": FormatTOML, "c.yaml": FormatYAML, "d.yml": FormatYAML,
	} {
		if got, err := FormatFromPath(path); err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v", path, got, err)
		}
	}
	if _, err := FormatFromPath("e.txt"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("FormatFromPath(e.txt) = %v", err)
	}
}

func TestDocumentTree(t *testing.T) {
	doc, err := ParseDocument([]byte(jsonDoc), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	th := theme.Default()
	tr, err := doc.Tree(fixedMeasurer{}, &th)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}

	var order []string
	tree.Walk(tr, tr.Root(), func(v tree.Visit) bool {
		order = append(order, tr.Node(v.ID).ID)
		return true
	}, nil)
	if want := []string{"root", "goals", "risks", "budget", "time", "pinned"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	get := func(uid string) *tree.Node {
		id, ok := tr.Find(uid)
		if !ok {
			t.Fatalf("node %q missing", uid)
		}
		return tr.Node(id)
	}

	// Root measured with root level (16px, padding 15/5).
	if r := get("root"); r.Width != 70+30 || r.Height != 16+10 {
		t.Errorf("root size = %vx%v", r.Width, r.Height)
	}
	// Depth 2 uses the node level (14px).
	if b := get("budget"); b.Width != 60+30 || b.Height != 14+10 {
		t.Errorf("budget size = %vx%v", b.Width, b.Height)
	}
	if tm := get("time"); tm.Width != 70 || tm.Height != 30 {
		t.Errorf("explicit size ignored: %vx%v", tm.Width, tm.Height)
	}
	if g := get("goals"); g.DirOverride != tree.DirLeft {
		t.Errorf("goals dir = %v", g.DirOverride)
	}
	risks := get("risks")
	if risks.Expand || len(risks.Generalizations) != 1 || *risks.Generalizations[0].Range != [2]int{0, 1} {
		t.Errorf("risks = %+v", risks)
	}
	if w := risks.Generalizations[0].Width; w != 40+30 {
		t.Errorf("generalization width = %v", w)
	}
	if p := get("pinned"); p.Custom == nil || *p.Custom != (tree.Point{X: 5, Y: 6}) {
		t.Errorf("pinned custom = %v", p.Custom)
	}
}

func TestDocumentTreeGeneratesUIDs(t *testing.T) {
	doc := &Document{Root: &DocNode{
		Data:     NodeData{Text: "a", Width: 10, Height: 10},
		Children: []DocNode{{Data: NodeData{Text: "b", Width: 10, Height: 10}}},
	}}
	tr, err := doc.Tree(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < tr.Len(); i++ {
		if _, err := uuid.Parse(tr.Node(tree.NodeID(i)).ID); err != nil {
			t.Errorf("node %d id %q is not a UUID", i, tr.Node(tree.NodeID(i)).ID)
		}
	}
}

func TestAssignUIDsKeepsTreeIDsStable(t *testing.T) {
	doc := &Document{Root: &DocNode{
		Data: NodeData{UID: "root", Text: "a", Width: 10, Height: 10},
		Children: []DocNode{
			{Data: NodeData{Text: "b", Width: 10, Height: 10}},
			{Data: NodeData{Text: "c", Width: 10, Height: 10}},
		},
	}}
	if n := doc.AssignUIDs(); n != 2 {
		t.Fatalf("AssignUIDs = %d, want 2", n)
	}
	if doc.Root.Data.UID != "root" {
		t.Errorf("existing uid changed to %q", doc.Root.Data.UID)
	}
	if n := doc.AssignUIDs(); n != 0 {
		t.Errorf("second AssignUIDs = %d, want 0", n)
	}

	ids := func() []string {
		tr, err := doc.Tree(nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		out := make([]string, tr.Len())
		for i := range out {
			out[i] = tr.Node(tree.NodeID(i)).ID
		}
		return out
	}
	first, second := ids(), ids()
	if !slices.Equal(first, second) {
		t.Errorf("tree ids differ between builds: %v vs %v", first, second)
	}
	if _, err := uuid.Parse(first[1]); err != nil {
		t.Errorf("generated id %q is not a UUID", first[1])
	}
}

func TestDocumentTreeErrors(t *testing.T) {
	sized := func(uid string) NodeData { return NodeData{UID: uid, Width: 10, Height: 10} }
	tests := []struct {
		name string
		doc  *Document
	}{
		{"nil root", &Document{}},
		{"bad dir", &Document{Root: &DocNode{Data: NodeData{UID: "r", Dir: "up", Width: 1, Height: 1}}}},
		{"bad uid", &Document{Root: &DocNode{Data: sized(`r"oot`)}}},
		{"duplicate uid", &Document{Root: &DocNode{Data: sized("r"), Children: []DocNode{{Data: sized("r")}}}}},
		{"no measurer", &Document{Root: &DocNode{Data: NodeData{UID: "r"}}}},
		{"range out of bounds", &Document{Root: &DocNode{
			Data: NodeData{UID: "r", Width: 1, Height: 1, Generalization: []GeneralizationData{{Text: "g", Range: []int{0, 3}, Width: 1, Height: 1}}},
			Children: []DocNode{{Data: sized("c")}},
		}}},
		{"range arity", &Document{Root: &DocNode{
			Data: NodeData{UID: "r", Width: 1, Height: 1, Generalization: []GeneralizationData{{Text: "g", Range: []int{0}, Width: 1, Height: 1}}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Tree(nil, nil)
			if !errs.Is(err, errs.ErrCodeInvalidDocument) {
				t.Errorf("err = %v, want INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc, err := ParseDocument([]byte(jsonDoc), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, ext := range []string{".json", ".toml", ".yaml"} {
		path := filepath.Join(dir, "map"+ext)
		if err := WriteDocumentFile(doc, path); err != nil {
			t.Fatalf("write %s: %v", ext, err)
		}
		back, err := ReadDocumentFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if back.Count() != doc.Count() || back.Root.Children[1].Data.IsExpanded() {
			t.Errorf("%s round trip lost data: %+v", ext, back.Root)
		}
	}

	if _, err := ReadDocumentFile(filepath.Join(dir, "missing.json")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}
