// Package measure sizes node boxes from their text.
//
// Documents may carry explicit node sizes; nodes without them are measured
// here with the same font the renderers draw with.
package measure

import (
	"strings"
	"sync"

	"golang.org/x/image/font"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/theme"
)

// Measurer measures text in the Go Regular font.
type Measurer struct {
	mu sync.Mutex // faces keep per-face scratch buffers
}

// New returns a measurer. It is safe for concurrent use.
func New() *Measurer { return &Measurer{} }

// Measure returns the box size for text drawn in the level's font, including
// the level padding on both sides. Lines are split on '\n'. An empty text
// still occupies one line.
func (m *Measurer) Measure(text string, lv theme.Level) (w, h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := fonts.Face(lv.FontSize)
	if err != nil {
		return m.estimate(text, lv)
	}
	lines := strings.Split(text, "\n")
	var widest float64
	for _, line := range lines {
		adv := font.MeasureString(face, line)
		widest = max(widest, float64(adv)/64)
	}
	lineHeight := float64(face.Metrics().Height) / 64
	return widest + 2*lv.PaddingX, lineHeight*float64(len(lines)) + 2*lv.PaddingY
}

// estimate falls back to average glyph metrics if the font cannot load.
func (m *Measurer) estimate(text string, lv theme.Level) (w, h float64) {
	lines := strings.Split(text, "\n")
	var widest int
	for _, line := range lines {
		widest = max(widest, len([]rune(line)))
	}
	return float64(widest)*lv.FontSize*0.6 + 2*lv.PaddingX,
		lv.FontSize*1.2*float64(len(lines)) + 2*lv.PaddingY
}
