package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

var (
	inspectHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	inspectSelectedStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	inspectNumberStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	inspectErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// inspectCommand opens an interactive browser over a laid-out document.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "inspect [map.json|map.yaml|map.toml]",
		Short: "Browse a layout interactively",
		Long: `Browse a layout interactively.

Lists every visible node with its side, position, size and the heights its
subtrees occupy on each side. Space collapses or expands the selected node
and lays the map out again; rapid toggles replace the waiting layout rather
than queueing behind it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{DocumentPath: args[0]}
			flags.apply(&opts)
			return c.runInspect(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&flags.themePath, "theme", "", "theme TOML file layered over the defaults")
	cmd.Flags().StringVar(&flags.lineStyle, "line-style", "", "connector style: straight, direct, curve, curve2, brace")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options) error {
	doc, err := pipeline.Load(opts)
	if err != nil {
		return err
	}
	th, err := opts.ResolveTheme()
	if err != nil {
		return err
	}
	engine, err := layout.New(th)
	if err != nil {
		return err
	}
	sched := layout.NewScheduler(engine)
	defer sched.Close()

	m := newInspectModel(opts.DocumentPath, doc, th, sched)
	defer m.close()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// inspectModel - bubbletea model
// =============================================================================

// inspectRow is a snapshot of one laid-out node. Rows are built on the
// scheduler's worker from a tree nothing else touches.
type inspectRow struct {
	uid, text, dir      string
	depth, children     int
	expand              bool
	left, top, w, h     float64
	areaLeft, areaRight float64
}

type layoutDoneMsg struct {
	seq  int
	rows []inspectRow
	err  error
}

type inspectModel struct {
	title    string
	doc      *mapfile.Document
	th       theme.Theme
	measurer *measure.Measurer
	sched    *layout.Scheduler

	results chan layoutDoneMsg
	quit    chan struct{}

	// expand holds the user's toggles by node uid.
	expand map[string]bool

	rows           []inspectRow
	cursor, offset int
	height         int
	seq, applied   int
	superseded     int
	err            error
}

func newInspectModel(title string, doc *mapfile.Document, th theme.Theme, sched *layout.Scheduler) *inspectModel {
	// Toggles are keyed by uid, so every rebuilt tree must carry the same ids.
	doc.AssignUIDs()
	return &inspectModel{
		title:    title,
		doc:      doc,
		th:       th,
		measurer: measure.New(),
		sched:    sched,
		results:  make(chan layoutDoneMsg, 1),
		quit:     make(chan struct{}),
		expand:   make(map[string]bool),
		height:   20,
	}
}

func (m *inspectModel) close() {
	select {
	case <-m.quit:
	default:
		close(m.quit)
	}
}

// submit builds a fresh tree with the current toggles and hands it to the
// scheduler.
func (m *inspectModel) submit() {
	t, err := m.doc.Tree(m.measurer, &m.th)
	if err != nil {
		m.err = err
		return
	}
	for uid, expand := range m.expand {
		if id, ok := t.Find(uid); ok {
			t.Node(id).Expand = expand
		}
	}

	m.seq++
	seq := m.seq
	replaced, err := m.sched.Submit(t, func(res layout.Result) {
		msg := layoutDoneMsg{seq: seq, err: res.Err}
		if res.Err == nil {
			msg.rows = snapshot(res.Tree)
		}
		select {
		case m.results <- msg:
		case <-m.quit:
		}
	})
	if err != nil {
		m.err = err
		return
	}
	if replaced {
		m.superseded++
	}
}

func (m *inspectModel) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.results:
			return msg
		case <-m.quit:
			return nil
		}
	}
}

func snapshot(t *tree.Tree) []inspectRow {
	ids := t.PreOrder()
	rows := make([]inspectRow, 0, len(ids))
	for _, id := range ids {
		n := t.Node(id)
		rows = append(rows, inspectRow{
			uid:       n.ID,
			text:      n.Text,
			dir:       n.Dir.String(),
			depth:     n.Depth,
			children:  len(n.Children()),
			expand:    n.Expand,
			left:      n.Left,
			top:       n.Top,
			w:         n.Width,
			h:         n.Height,
			areaLeft:  n.LeftChildrenAreaHeight,
			areaRight: n.RightChildrenAreaHeight,
		})
	}
	return rows
}

func (m *inspectModel) Init() tea.Cmd {
	m.submit()
	return m.wait()
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case layoutDoneMsg:
		if msg.seq >= m.applied {
			m.apply(msg)
		}
		return m, m.wait()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.close()
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case " ", "space", "enter":
			m.toggle()
		case "r":
			clear(m.expand)
			m.submit()
		}

	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

// apply swaps in a finished layout, keeping the cursor on the same node.
func (m *inspectModel) apply(msg layoutDoneMsg) {
	m.applied = msg.seq
	m.err = msg.err
	if msg.err != nil {
		return
	}
	var selected string
	if m.cursor < len(m.rows) {
		selected = m.rows[m.cursor].uid
	}
	m.rows = msg.rows
	m.cursor = 0
	for i, r := range m.rows {
		if r.uid == selected {
			m.cursor = i
			break
		}
	}
	m.move(0)
}

func (m *inspectModel) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *inspectModel) toggle() {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	if r.children == 0 {
		return
	}
	m.expand[r.uid] = !r.expand
	m.submit()
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect " + m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  space toggle  r reset  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.row(i))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("", "Node", "Dir", "Left", "Top", "Size", "Area L/R").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return inspectHeaderStyle
			case m.offset+row == m.cursor:
				return inspectSelectedStyle
			case col >= 3:
				return inspectNumberStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	status := fmt.Sprintf("  layout %d/%d · %d superseded · %d visible", m.applied, m.seq, m.superseded, len(m.rows))
	b.WriteString(StyleDim.Render(status))
	if m.err != nil {
		b.WriteString("\n  " + inspectErrorStyle.Render(m.err.Error()))
	}
	return b.String()
}

func (m *inspectModel) row(i int) []string {
	r := m.rows[i]
	cursor := "  "
	if i == m.cursor {
		cursor = "▸ "
	}
	marker := "  "
	if r.children > 0 {
		marker = "▾ "
		if !r.expand {
			marker = fmt.Sprintf("▸ (+%d) ", r.children)
		}
	}
	name := strings.Repeat("  ", r.depth) + marker + r.text
	areas := "-"
	if r.expand && r.children > 0 {
		areas = fmt.Sprintf("%.0f/%.0f", r.areaLeft, r.areaRight)
	}
	return []string{
		cursor,
		name,
		r.dir,
		fmt.Sprintf("%.0f", r.left),
		fmt.Sprintf("%.0f", r.top),
		fmt.Sprintf("%.0f×%.0f", r.w, r.h),
		areas,
	}
}
