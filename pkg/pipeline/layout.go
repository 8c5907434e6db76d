package pipeline

import (
	"github.com/matzehuels/mindmap/pkg/connector"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

var measurer = measure.New()

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes a complete layout for any visualization type:
// node boxes, area heights, connector paths and generalization placements.
// Nodelink layouts additionally carry the DOT source.
func GenerateLayout(doc *mapfile.Document, opts Options) (mapfile.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return mapfile.Layout{}, err
	}
	th, err := opts.ResolveTheme()
	if err != nil {
		return mapfile.Layout{}, err
	}

	t, err := doc.Tree(measurer, &th)
	if err != nil {
		return mapfile.Layout{}, err
	}
	engine, err := layout.New(th)
	if err != nil {
		return mapfile.Layout{}, err
	}
	if err := engine.Layout(t); err != nil {
		return mapfile.Layout{}, err
	}

	gens := connector.PlaceGeneralizations(t, &th)
	lines := RouteAll(t, &th)
	l := mapfile.Export(t, lines, gens, th)

	if opts.IsNodelink() {
		nl := nodelink.Options{Free: opts.Free}
		l.VizType = mapfile.VizTypeNodelink
		l.DOT = nodelink.ToDOT(l, nl)
		l.Engine = nl.Engine()
	}
	return l, nil
}

// RouteAll routes the connectors of every visible parent in pre-order.
func RouteAll(t *tree.Tree, th *theme.Theme) []connector.Connector {
	var lines []connector.Connector
	for _, id := range t.PreOrder() {
		lines = append(lines, connector.Route(t, id, th)...)
	}
	return lines
}
