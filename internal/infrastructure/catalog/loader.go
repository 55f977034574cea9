// Package catalog loads the icon-name to codepoint catalog.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "embed"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

// DefaultSource names the embedded catalog.
const DefaultSource = "embedded:mdi"

//go:embed data/mdi.yaml
var defaultCatalog []byte

// metaEntry is one element of a Material Design Icons meta.json list.
type metaEntry struct {
	Name      string `yaml:"name" json:"name"`
	Codepoint string `yaml:"codepoint" json:"codepoint"`
}

// LoadDefault parses the embedded catalog.
func LoadDefault() (*entities.Catalog, error) {
	return Parse(DefaultSource, defaultCatalog)
}

// LoadFile reads a catalog from a YAML or JSON file.
func LoadFile(path string) (*entities.Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, entities.NewCatalogLoadError(path, err)
	}
	return Parse(path, data)
}

// Parse decodes catalog metadata. Two layouts are accepted: a mapping of icon
// name to hex codepoint, or a list of {name, codepoint} objects as found in
// the upstream meta.json. JSON is read through the YAML decoder.
func Parse(source string, data []byte) (*entities.Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, entities.NewCatalogLoadError(source, fmt.Errorf("malformed catalog: %w", err))
	}

	raw := make(map[string]string)
	switch v := doc.(type) {
	case map[string]any:
		for name, value := range v {
			hex, ok := value.(string)
			if !ok {
				return nil, entities.NewCatalogLoadError(source,
					fmt.Errorf("icon %q: codepoint must be a quoted hex string, got %T", name, value))
			}
			raw[name] = hex
		}

	case []any:
		var entries []metaEntry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, entities.NewCatalogLoadError(source, fmt.Errorf("malformed catalog list: %w", err))
		}
		for i, e := range entries {
			if _, dup := raw[e.Name]; dup {
				return nil, entities.NewCatalogLoadError(source, fmt.Errorf("entry %d: duplicate icon %q", i, e.Name))
			}
			raw[e.Name] = e.Codepoint
		}

	case nil:
		return nil, entities.NewCatalogLoadError(source, fmt.Errorf("catalog is empty"))

	default:
		return nil, entities.NewCatalogLoadError(source, fmt.Errorf("unsupported catalog layout %T", doc))
	}

	return entities.ParseCatalog(source, raw)
}

// Entry is one catalog row, used by listing commands.
type Entry struct {
	Name      string `json:"name" yaml:"name"`
	Codepoint string `json:"codepoint" yaml:"codepoint"`
}

// Entries lists the named icons with formatted codepoints, sorted by name.
// Names absent from the catalog are skipped.
func Entries(c *entities.Catalog, names []string) []Entry {
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		cp, ok := c.Codepoint(name)
		if !ok {
			continue
		}
		out = append(out, Entry{Name: name, Codepoint: entities.FormatCodepoint(cp)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
