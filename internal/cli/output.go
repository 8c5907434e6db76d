package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// nopCloser makes os.Stdout usable as an io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput creates the file at path, or returns stdout when path is "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// basePath derives the output base from -o or, failing that, the input
// path. Known format extensions and the .layout suffix are stripped.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodes     int
	lines     int
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to -o
// verbatim; several formats share the base path with their own extensions.
// JSON artifacts are layouts and get .layout.json so they never replace a
// JSON source document.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	formats := append([]string(nil), p.formats...)
	sort.Strings(formats)

	var paths []string
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s artifact produced", format)
		}
		path := basePath(p.output, p.input) + extension(format)
		if len(formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, data); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func extension(format string) string {
	if format == pipeline.FormatJSON {
		return ".layout.json"
	}
	return "." + format
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// printArtifacts reports written files in the usual success block.
func printArtifacts(title string, paths []string, p artifactWriteParams) {
	printSuccess("%s", title)
	for _, path := range paths {
		if path != "-" {
			printFile(path)
		}
	}
	printStats(p.nodes, p.lines, p.cacheHit)
}
