package connector

import (
	"testing"

	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// fixture positions nodes by hand so expected paths can be worked out on
// paper.
type fixture struct {
	t   *tree.Tree
	ids map[string]tree.NodeID
}

func newFixture() *fixture {
	return &fixture{t: tree.New(), ids: map[string]tree.NodeID{}}
}

func (f *fixture) root(name string, left, top, w, h float64) *fixture {
	f.ids[name] = f.t.SetRoot(tree.Node{ID: name, Left: left, Top: top, Width: w, Height: h, Expand: true})
	return f
}

func (f *fixture) add(parent, name string, dir tree.Dir, depth int, left, top, w, h float64) *fixture {
	id, err := f.t.AddChild(f.ids[parent], tree.Node{
		ID: name, Dir: dir, Depth: depth, Left: left, Top: top, Width: w, Height: h, Expand: true,
	})
	if err != nil {
		panic(err)
	}
	f.ids[name] = id
	return f
}

func (f *fixture) node(name string) *tree.Node { return f.t.Node(f.ids[name]) }

// parentFixture is a depth-1 node P with its vertical centre at y=120 and
// right edge at x=180, under a root R.
func parentFixture() *fixture {
	return newFixture().
		root("R", -400, 100, 100, 40).
		add("R", "P", tree.DirRight, 1, 100, 100, 80, 40)
}

func testTheme() *theme.Theme {
	th := theme.Default()
	th.HoverRectPadding = 0
	return &th
}

func routeOne(t *testing.T, f *fixture, parent string, th *theme.Theme) []string {
	t.Helper()
	conns := Route(f.t, f.ids[parent], th)
	out := make([]string, len(conns))
	for i, c := range conns {
		if c.Parent != f.ids[parent] || c.Child != f.t.Children(f.ids[parent])[i] {
			t.Errorf("connector %d misaligned: %+v", i, c)
		}
		out[i] = c.Path.String()
	}
	return out
}

func TestStraight(t *testing.T) {
	tests := []struct {
		name  string
		child func(f *fixture)
		want  string
	}{
		{
			name:  "right",
			child: func(f *fixture) { f.add("P", "c", tree.DirRight, 2, 250, 150, 60, 20) },
			want:  "M 180,120 L 210,120 L 210,155 Q 210,160 215,160 L 250,160",
		},
		{
			name:  "left",
			child: func(f *fixture) { f.add("P", "c", tree.DirLeft, 2, -100, 60, 60, 20) },
			want:  "M 100,120 L 70,120 L 70,75 Q 70,70 65,70 L -40,70",
		},
		{
			name:  "collinear",
			child: func(f *fixture) { f.add("P", "c", tree.DirRight, 2, 250, 110, 60, 20) },
			want:  "M 180,120 L 210,120 L 210,120 L 250,120",
		},
		{
			name:  "radius clamped",
			child: func(f *fixture) { f.add("P", "c", tree.DirRight, 2, 250, 112, 60, 20) },
			want:  "M 180,120 L 210,120 L 210,120 Q 210,122 212,122 L 250,122",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parentFixture()
			tt.child(f)
			got := routeOne(t, f, "P", testTheme())
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("path = %v\nwant   %s", got, tt.want)
			}
		})
	}
}

func TestStraightFromRoot(t *testing.T) {
	f := newFixture().root("R", 350, 280, 100, 40).add("R", "c", tree.DirRight, 1, 600, 200, 80, 30)
	got := routeOne(t, f, "R", testTheme())
	want := "M 450,300 L 510,300 L 510,220 Q 510,215 515,215 L 600,215"
	if got[0] != want {
		t.Errorf("path = %s\nwant   %s", got[0], want)
	}
}

func TestExpandButtonGap(t *testing.T) {
	th := testTheme()
	th.AlwaysShowExpandBtn = true

	f := parentFixture().add("P", "c", tree.DirRight, 2, 250, 150, 60, 20)
	want := "M 200,120 L 218,120 L 218,155 Q 218,160 223,160 L 250,160"
	if got := routeOne(t, f, "P", th); got[0] != want {
		t.Errorf("path = %s\nwant   %s", got[0], want)
	}

	th.NotShowExpandBtn = true
	want = "M 180,120 L 210,120 L 210,155 Q 210,160 215,160 L 250,160"
	if got := routeOne(t, f, "P", th); got[0] != want {
		t.Errorf("hidden button: path = %s\nwant   %s", got[0], want)
	}

	th.NotShowExpandBtn = false
	th.LineStyle = theme.Direct
	r := newFixture().root("R", 350, 280, 100, 40).add("R", "c", tree.DirRight, 1, 600, 200, 80, 30)
	if got := routeOne(t, r, "R", th); got[0] != "M 450,300 L 600,215" {
		t.Errorf("root ignores button: path = %s", got[0])
	}
}

func TestDirect(t *testing.T) {
	th := testTheme()
	th.LineStyle = theme.Direct
	f := parentFixture().
		add("P", "r", tree.DirRight, 2, 250, 150, 60, 20).
		add("P", "l", tree.DirLeft, 2, -100, 60, 60, 20)

	got := routeOne(t, f, "P", th)
	want := []string{"M 180,120 L 250,160", "M 100,120 L -40,70"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d = %s, want %s", i, got[i], want[i])
		}
	}

	th.NodeUseLineStyle = true
	got = routeOne(t, f, "P", th)
	want = []string{"M 180,140 L 250,170 L 310,170", "M 100,140 L -40,80 L -100,80"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line style path %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCurve(t *testing.T) {
	th := testTheme()
	th.LineStyle = theme.Curve

	f := parentFixture().add("P", "c", tree.DirRight, 2, 250, 150, 60, 20)
	if got := routeOne(t, f, "P", th); got[0] != "M 180,120 C 215,120 215,160 250,160" {
		t.Errorf("cubic = %s", got[0])
	}

	r := newFixture().root("R", 350, 280, 100, 40).add("R", "c", tree.DirRight, 1, 600, 200, 80, 30)
	tests := []struct {
		name              string
		keepSame, keepPos bool
		want              string
	}{
		{"root cubic from centre", true, false, "M 400,300 C 500,300 500,215 600,215"},
		{"root quadratic", false, false, "M 400,300 Q 440,232 600,215"},
		{"root cubic from edge", true, true, "M 450,300 C 525,300 525,215 600,215"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th.RootLineKeepSameInCurve = tt.keepSame
			th.RootLineStartPositionKeepSameInCurve = tt.keepPos
			if got := routeOne(t, r, "R", th); got[0] != tt.want {
				t.Errorf("path = %s\nwant   %s", got[0], tt.want)
			}
		})
	}
}

func TestCurve2(t *testing.T) {
	th := testTheme()
	th.LineStyle = theme.Curve2

	f := parentFixture().
		add("P", "down", tree.DirRight, 2, 230, 140, 60, 20).
		add("P", "level", tree.DirRight, 2, 230, 110, 60, 20).
		add("P", "up", tree.DirRight, 2, 230, 80, 60, 20)

	got := routeOne(t, f, "P", th)
	want := []string{
		"M 180,120 L 190,120 A 50 50 0 0 1 230,150",
		"M 180,120 L 190,120 L 230,120",
		"M 180,120 L 190,120 A 50 50 0 0 0 230,90",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBraceGroup(t *testing.T) {
	th := testTheme()
	th.LineStyle = theme.Brace

	f := parentFixture().
		add("P", "c0", tree.DirLeft, 2, -100, 40, 60, 20).
		add("P", "c1", tree.DirLeft, 2, -100, 110, 60, 20).
		add("P", "c2", tree.DirLeft, 2, -100, 180, 60, 20)

	conns := Route(f.t, f.ids["P"], th)
	if len(conns) != 3 {
		t.Fatalf("got %d connectors, want 3", len(conns))
	}
	nonEmpty := 0
	for _, c := range conns {
		if !c.Path.Empty() {
			nonEmpty++
		}
	}
	if nonEmpty != 1 || !conns[0].Path.Empty() || !conns[1].Path.Empty() {
		t.Fatalf("want exactly one path on the last child, got %v", conns)
	}

	want := "M 100,120 L 47.5,120 " +
		"M 16,50 Q 37,50 37,71 L 37,99 Q 37,120 47.5,120 " +
		"Q 37,120 37,141 L 37,169 Q 37,190 16,190"
	if got := conns[2].Path.String(); got != want {
		t.Errorf("brace = %s\nwant    %s", got, want)
	}

	b, ok := conns[2].Path.Bounds()
	if !ok || b.Top != 50 || b.Bottom != 190 {
		t.Errorf("brace spans %v..%v, want 50..190", b.Top, b.Bottom)
	}
}

func TestBraceMixedSides(t *testing.T) {
	th := testTheme()
	th.LineStyle = theme.Brace
	th.NodeUseLineStyle = true

	f := newFixture().root("R", 350, 280, 100, 40).
		add("R", "r0", tree.DirRight, 1, 600, 200, 80, 30).
		add("R", "l0", tree.DirLeft, 1, 100, 285, 80, 30).
		add("R", "r1", tree.DirRight, 1, 600, 350, 80, 30)

	got := routeOne(t, f, "R", th)
	if got[1] != "M 350,300 L 180,300" {
		t.Errorf("single left child = %s", got[1])
	}
	if got[0] != "" || got[2] == "" {
		t.Errorf("right group: %q", got)
	}
}

func TestRouteEmpty(t *testing.T) {
	f := parentFixture()
	if conns := Route(f.t, f.ids["P"], testTheme()); conns != nil {
		t.Errorf("childless: %v", conns)
	}

	f.add("P", "c", tree.DirRight, 2, 250, 150, 60, 20)
	f.node("P").Expand = false
	if conns := Route(f.t, f.ids["P"], testTheme()); conns != nil {
		t.Errorf("collapsed: %v", conns)
	}
}
