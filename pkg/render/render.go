// Package render turns ownership query results into user-facing output.
// Renderers expose a fixed capability set selected by an explicit format
// value; every renderer writes to the sink it is handed and keeps no global
// console state.
package render

import (
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/gitowners/pkg/ownership"
)

// Format selects a concrete renderer.
type Format string

// Supported output formats.
const (
	FormatTree  Format = "tree"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHTML  Format = "html"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTree, FormatTable, FormatCSV, FormatJSON, FormatYAML, FormatHTML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", ownership.ErrInvalidArgument, s)
	}
}

// Entry is one rendered path with its selected owners, delivered in
// traversal order, root first.
type Entry struct {
	Path   string
	Depth  int
	IsDir  bool
	Total  int
	Owners []ownership.Ownership
}

// Renderer renders a sequence of entries to a writer.
type Renderer interface {
	Render(w io.Writer, entries []Entry) error
}

// New returns the renderer for a format.
func New(format Format, noColor bool) (Renderer, error) {
	switch format {
	case FormatTree:
		return &TreeRenderer{NoColor: noColor}, nil
	case FormatTable:
		return &TableRenderer{}, nil
	case FormatCSV:
		return &TableRenderer{CSV: true}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatYAML:
		return &YAMLRenderer{}, nil
	case FormatHTML:
		return &HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ownership.ErrInvalidArgument, format)
	}
}

// DisplayPath maps the empty repository root onto something printable.
func DisplayPath(p string) string {
	if p == "" {
		return "."
	}

	return p
}
