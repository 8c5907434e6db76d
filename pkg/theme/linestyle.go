package theme

import (
	"fmt"
	"strings"
)

// LineStyle selects how connectors between a parent and its children are drawn.
type LineStyle uint8

const (
	// Straight draws an orthogonal fold line with a rounded last corner.
	Straight LineStyle = iota
	// Direct draws a single straight segment.
	Direct
	// Curve draws a quadratic (root) or cubic bezier.
	Curve
	// Curve2 draws a short horizontal lead followed by a circular arc.
	Curve2
	// Brace groups same-side children under one bracket.
	Brace
)

var lineStyleNames = [...]string{
	Straight: "straight",
	Direct:   "direct",
	Curve:    "curve",
	Curve2:   "curve2",
	Brace:    "brace",
}

// LineStyles lists every supported style name.
func LineStyles() []string {
	return append([]string(nil), lineStyleNames[:]...)
}

func (s LineStyle) String() string {
	if int(s) < len(lineStyleNames) {
		return lineStyleNames[s]
	}
	return fmt.Sprintf("LineStyle(%d)", s)
}

// Valid reports whether s is one of the defined styles.
func (s LineStyle) Valid() bool { return int(s) < len(lineStyleNames) }

// ParseLineStyle parses a style name, case-insensitively.
func ParseLineStyle(name string) (LineStyle, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range lineStyleNames {
		if n == name {
			return LineStyle(i), nil
		}
	}
	return 0, fmt.Errorf("unknown line style %q (valid: %s)", name, strings.Join(lineStyleNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (s LineStyle) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid line style %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LineStyle) UnmarshalText(b []byte) error {
	v, err := ParseLineStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
