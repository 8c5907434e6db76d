package sink

import (
	"strings"
	"sync"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/theme"
)

const defaultPadding = 20

// frame is the drawn area in layout coordinates.
type frame struct {
	X, Y, W, H float64
}

func frameOf(l mapfile.Layout, padding float64) frame {
	return frame{
		X: l.X - padding,
		Y: l.Y - padding,
		W: l.Width + 2*padding,
		H: l.Height + 2*padding,
	}
}

// label is one line of text positioned at its baseline.
type label struct {
	Text string
	X, Y float64
}

type lineMetrics struct {
	ascent, height float64
}

var (
	metricsMu sync.Mutex
	metrics   = map[float64]lineMetrics{}
)

func metricsFor(size float64) lineMetrics {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if m, ok := metrics[size]; ok {
		return m
	}
	m := lineMetrics{ascent: size * 0.8, height: size * 1.2}
	if face, err := fonts.NewFace(size); err == nil {
		fm := face.Metrics()
		m = lineMetrics{ascent: float64(fm.Ascent) / 64, height: float64(fm.Height) / 64}
		face.Close()
	}
	metrics[size] = m
	return m
}

// labels lays out the text of a box the way measure.Measurer sized it.
func labels(text string, left, top float64, lv theme.Level) []label {
	m := metricsFor(lv.FontSize)
	lines := strings.Split(text, "\n")
	out := make([]label, len(lines))
	for i, line := range lines {
		out[i] = label{
			Text: line,
			X:    left + lv.PaddingX,
			Y:    top + lv.PaddingY + m.height*float64(i) + m.ascent,
		}
	}
	return out
}

// badge is the collapsed-subtree marker beside a node.
type badge struct {
	CX, CY, R float64
	Count     int
}

func badgeFor(n mapfile.PlacedNode, th *theme.Theme) (badge, bool) {
	if n.Expand || n.Children == 0 || th.ExpandBtnSize <= 0 {
		return badge{}, false
	}
	r := th.ExpandBtnSize / 2
	b := badge{CX: n.Left + n.Width + r, CY: n.Top + n.Height/2, R: r, Count: n.Children}
	if n.Dir == "left" {
		b.CX = n.Left - r
	}
	return b, true
}
