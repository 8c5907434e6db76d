package pipeline

import (
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/mapfile"
)

// Load returns the document named by opts: the inline Document if set,
// otherwise the file at DocumentPath.
func Load(opts Options) (*mapfile.Document, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Document != nil {
		return opts.Document, nil
	}
	return mapfile.ReadDocumentFile(opts.DocumentPath)
}

// hashDocument returns the content hash of a document in canonical JSON.
func hashDocument(doc *mapfile.Document) (string, error) {
	data, err := mapfile.MarshalDocument(doc, mapfile.FormatJSON)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
