// Package fonts provides the font used to measure and draw node text.
//
// The Go Regular font ships with golang.org/x/image, so measurement, the
// native PNG renderer and the SVG output all agree on glyph metrics without
// any system fonts installed.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name the SVG output declares for the
// embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers that ignore @font-face.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// GoRegularTTF returns the TTF font data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoRegularBase64 returns the TTF font data as a base64 string, computed
// once on first access.
func GoRegularBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

var (
	parsed    *opentype.Font
	parseErr  error
	parseOnce sync.Once

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// Face returns a face of the given pixel size (72 DPI, so points equal
// pixels). Faces are cached per size and shared, so callers must not use
// them from several goroutines at once; see NewFace.
func Face(size float64) (font.Face, error) {
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f, nil
	}
	f, err := NewFace(size)
	if err != nil {
		return nil, err
	}
	faces[size] = f
	return f, nil
}

// NewFace returns an uncached face, for callers that draw from several
// goroutines at once.
func NewFace(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, fmt.Errorf("parse font: %w", parseErr)
	}
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %vpx: %w", size, err)
	}
	return f, nil
}
