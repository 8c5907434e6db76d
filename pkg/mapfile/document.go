package mapfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/mindmap/pkg/errors"
)

// Document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// =============================================================================
// Document - Mind-Map Source Tree
// =============================================================================

// Document is a mind-map source tree.
type Document struct {
	Root *DocNode `json:"root" toml:"root" yaml:"root"`
}

// DocNode is one node of a document.
type DocNode struct {
	Data     NodeData  `json:"data" toml:"data" yaml:"data"`
	Children []DocNode `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

// NodeData holds a node's content and overrides. Width and Height are
// measured when zero. CustomLeft and CustomTop pin the node only when both
// are set.
type NodeData struct {
	UID            string               `json:"uid,omitempty" toml:"uid,omitempty" yaml:"uid,omitempty"`
	Text           string               `json:"text" toml:"text" yaml:"text"`
	Expand         *bool                `json:"expand,omitempty" toml:"expand,omitempty" yaml:"expand,omitempty"`
	Dir            string               `json:"dir,omitempty" toml:"dir,omitempty" yaml:"dir,omitempty"`
	Width          float64              `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height         float64              `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	CustomLeft     *float64             `json:"customLeft,omitempty" toml:"customLeft,omitempty" yaml:"customLeft,omitempty"`
	CustomTop      *float64             `json:"customTop,omitempty" toml:"customTop,omitempty" yaml:"customTop,omitempty"`
	Generalization []GeneralizationData `json:"generalization,omitempty" toml:"generalization,omitempty" yaml:"generalization,omitempty"`
}

// IsExpanded reports the expand flag, which defaults to true.
func (d NodeData) IsExpanded() bool { return d.Expand == nil || *d.Expand }

// GeneralizationData is a summary attached to a node. Range selects the
// summarised children by index (inclusive); without it the summary covers the
// node's whole subtree.
type GeneralizationData struct {
	Text   string  `json:"text" toml:"text" yaml:"text"`
	Range  []int   `json:"range,omitempty" toml:"range,omitempty" yaml:"range,omitempty"`
	Width  float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
}

// Count returns the number of nodes in the document.
func (d *Document) Count() int {
	if d.Root == nil {
		return 0
	}
	n := 0
	stack := []*DocNode{d.Root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		for i := range cur.Children {
			stack = append(stack, &cur.Children[i])
		}
	}
	return n
}

// =============================================================================
// Decoding
// =============================================================================

// rawDocument accepts both the wrapped form and a bare root node.
type rawDocument struct {
	Root     *DocNode  `json:"root" toml:"root" yaml:"root"`
	Data     *NodeData `json:"data" toml:"data" yaml:"data"`
	Children []DocNode `json:"children" toml:"children" yaml:"children"`
}

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown document extension %q (want .json, .toml, .yaml or .yml)", filepath.Ext(path))
}

// ReadDocumentFile reads a document, choosing the decoder by extension.
func ReadDocumentFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseDocument(data, format)
}

// ParseDocument decodes a document in the given format.
func ParseDocument(data []byte, format string) (*Document, error) {
	var raw rawDocument
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "decode %s document", format)
	}

	doc := &Document{Root: raw.Root}
	if doc.Root == nil && raw.Data != nil {
		doc.Root = &DocNode{Data: *raw.Data, Children: raw.Children}
	}
	if doc.Root == nil {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "document has no root node")
	}
	return doc, nil
}

// =============================================================================
// Encoding
// =============================================================================

// MarshalDocument encodes a document in the given format.
func MarshalDocument(d *Document, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(d); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(d)
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown document format %q", format)
}

// WriteDocumentFile writes a document, choosing the encoder by extension.
func WriteDocumentFile(d *Document, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := MarshalDocument(d, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
