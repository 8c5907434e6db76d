package sink

import "github.com/matzehuels/mindmap/pkg/mapfile"

// RenderJSON exports the layout as pretty-printed JSON. The output reads back
// with [mapfile.UnmarshalLayout].
func RenderJSON(l mapfile.Layout) ([]byte, error) {
	return mapfile.MarshalLayout(l)
}
