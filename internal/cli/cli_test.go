package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/theme"
)

const planDoc = `{"root": {"data": {"uid": "root", "text": "Plan"}, "children": [
  {"data": {"uid": "goals", "text": "Goals"}, "children": [
    {"data": {"uid": "g1", "text": "ship"}},
    {"data": {"uid": "g2", "text": "learn"}}
  ]},
  {"data": {"uid": "risks", "text": "Risks", "expand": false}, "children": [
    {"data": {"uid": "r1", "text": "time"}}
  ]}
]}}`

func writePlan(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte(planDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"layout", "render", "visualize", "inspect", "serve", "theme", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writePlan(t)
	output := filepath.Join(filepath.Dir(input), "out.layout.json")

	if _, err := execute(t, "layout", input, "-o", output, "--line-style", "curve"); err != nil {
		t.Fatal(err)
	}
	l, err := mapfile.ReadLayoutFile(output)
	if err != nil {
		t.Fatal(err)
	}
	// risks is collapsed, so r1 is hidden.
	if len(l.Nodes) != 5 {
		t.Errorf("nodes = %d, want 5", len(l.Nodes))
	}
	if l.LineStyle != "curve" {
		t.Errorf("LineStyle = %q, want curve", l.LineStyle)
	}
}

func TestRenderAndVisualizeCommands(t *testing.T) {
	input := writePlan(t)
	dir := filepath.Dir(input)

	if _, err := execute(t, "render", input, "-f", "svg,json", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"plan.svg", "plan.layout.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := mapfile.ReadDocumentFile(input); err != nil {
		t.Errorf("source document was overwritten: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "plan.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("plan.svg does not start with <svg")
	}

	layoutPath := filepath.Join(dir, "plan.layout.json")
	if _, err := execute(t, "layout", input); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "vis.png")
	if _, err := execute(t, "visualize", layoutPath, "-f", "png", "-o", out, "--scale", "1"); err != nil {
		t.Fatal(err)
	}
	png, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("vis.png is not a PNG")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writePlan(t)
	if _, err := execute(t, "render", input, "-f", "gif"); err == nil {
		t.Error("unknown format should fail")
	}
	if _, err := execute(t, "render", input, "-t", "tower"); err == nil {
		t.Error("unknown viz type should fail")
	}
	if _, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing input should fail")
	}
}

func TestThemeCommand(t *testing.T) {
	out, err := execute(t, "theme", "--line-style", "brace")
	if err != nil {
		t.Fatal(err)
	}
	th, err := theme.Parse([]byte(out))
	if err != nil {
		t.Fatalf("theme output does not parse: %v\n%s", err, out)
	}
	if th.LineStyle != theme.Brace {
		t.Errorf("LineStyle = %v, want brace", th.LineStyle)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("line_width = -2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "theme", "--theme", bad); err == nil {
		t.Error("invalid theme file should fail")
	}
}

func TestCachePathCommand(t *testing.T) {
	xdg := t.TempDir()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	t.Setenv("XDG_CACHE_HOME", xdg)
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != filepath.Join(xdg, appName) {
		t.Errorf("cache path = %q, want %q", got, filepath.Join(xdg, appName))
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "mindmap") {
		t.Error("bash completion should mention the command name")
	}
}
