package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/wighawag/zel2wez/pkg/kdl"
)

// Format identifies a layout input format.
type Format string

const (
	FormatKDL  Format = "kdl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks a format from the file extension. Unknown extensions
// default to KDL, the primary format.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatKDL
	}
}

// Parse parses layout source in the given format into a pane tree. The builder
// is optional; nil uses a default one.
func Parse(data []byte, format Format, b *Builder) (*Pane, error) {
	switch format {
	case FormatYAML:
		return treeFromYAML(data)
	case FormatJSON:
		return treeFromJSON(data)
	default:
		doc, err := kdl.Parse(string(data))
		if err != nil {
			return nil, err
		}
		if b == nil {
			b = NewBuilder()
		}
		return b.FromDocument(doc)
	}
}

// LoadFile reads and parses a layout file, dispatching on extension.
func LoadFile(path string) (*Pane, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatForPath(path), nil)
}
