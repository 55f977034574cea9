package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Catalog is the immutable icon name → codepoint table.
// It is loaded once per process and shared read-only by every compilation.
type Catalog struct {
	codepoints map[string]rune
	source     string
}

// NewCatalog builds a catalog from already-parsed entries. The map is copied.
func NewCatalog(source string, entries map[string]rune) *Catalog {
	cp := make(map[string]rune, len(entries))
	for name, r := range entries {
		cp[name] = r
	}
	return &Catalog{codepoints: cp, source: source}
}

// ParseCatalog builds a catalog from raw name → hexadecimal codepoint entries,
// as found in icon metadata files ("F0A0", "0xF0A0" and "U+F0A0" are accepted).
func ParseCatalog(source string, raw map[string]string) (*Catalog, error) {
	if len(raw) == 0 {
		return nil, NewCatalogLoadError(source, fmt.Errorf("catalog is empty"))
	}

	entries := make(map[string]rune, len(raw))
	for name, hex := range raw {
		if strings.TrimSpace(name) == "" {
			return nil, NewCatalogLoadError(source, fmt.Errorf("icon with empty name"))
		}
		r, err := ParseCodepoint(hex)
		if err != nil {
			return nil, NewCatalogLoadError(source, fmt.Errorf("icon %q: %w", name, err))
		}
		entries[name] = r
	}
	return NewCatalog(source, entries), nil
}

// ParseCodepoint parses a hexadecimal codepoint string.
func ParseCodepoint(hex string) (rune, error) {
	s := strings.TrimSpace(hex)
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"),
		strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"):
		s = s[2:]
	}
	if s == "" {
		return 0, fmt.Errorf("codepoint %q is not valid hexadecimal", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("codepoint %q is not valid hexadecimal", hex)
	}
	if v > 0x10FFFF {
		return 0, fmt.Errorf("codepoint %q is outside the unicode range", hex)
	}
	return rune(v), nil
}

// Contains reports whether the catalog knows the icon.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.codepoints[name]
	return ok
}

// Codepoint returns the codepoint of a catalog icon.
func (c *Catalog) Codepoint(name string) (rune, bool) {
	r, ok := c.codepoints[name]
	return r, ok
}

// Len returns the number of icons in the catalog.
func (c *Catalog) Len() int {
	return len(c.codepoints)
}

// Source returns where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Names returns every icon name, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.codepoints))
	for name := range c.codepoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search returns the sorted icon names containing substr.
func (c *Catalog) Search(substr string) []string {
	substr = strings.ToLower(substr)
	var out []string
	for _, name := range c.Names() {
		if strings.Contains(name, substr) {
			out = append(out, name)
		}
	}
	return out
}
