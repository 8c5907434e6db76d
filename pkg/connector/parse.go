package connector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/mindmap/pkg/tree"
)

// ParsePath reads path data in the form produced by [Path.String]: absolute
// M, L, Q, C and A commands with comma-separated points.
func ParsePath(s string) (Path, error) {
	toks := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	var (
		p Path
		i int
	)
	num := func() (float64, error) {
		if i >= len(toks) {
			return 0, fmt.Errorf("path: unexpected end")
		}
		v, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return 0, fmt.Errorf("path: %w", err)
		}
		i++
		return v, nil
	}
	nums := func(n int) ([]float64, error) {
		out := make([]float64, n)
		for k := range out {
			v, err := num()
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}

	for i < len(toks) {
		tok := toks[i]
		if len(tok) != 1 {
			return nil, fmt.Errorf("path: unexpected token %q", tok)
		}
		i++
		switch op := Op(tok[0]); op {
		case MoveTo, LineTo:
			v, err := nums(2)
			if err != nil {
				return nil, err
			}
			p = append(p, Command{Op: op, To: tree.Point{X: v[0], Y: v[1]}})
		case QuadTo:
			v, err := nums(4)
			if err != nil {
				return nil, err
			}
			p = p.Quad(v[0], v[1], v[2], v[3])
		case CubicTo:
			v, err := nums(6)
			if err != nil {
				return nil, err
			}
			p = p.Cubic(v[0], v[1], v[2], v[3], v[4], v[5])
		case ArcTo:
			v, err := nums(7)
			if err != nil {
				return nil, err
			}
			p = p.Arc(v[0], v[4] != 0, v[5], v[6])
		default:
			return nil, fmt.Errorf("path: unsupported command %q", tok)
		}
	}
	if len(p) > 0 && p[0].Op != MoveTo {
		return nil, fmt.Errorf("path: must start with M")
	}
	return p, nil
}
