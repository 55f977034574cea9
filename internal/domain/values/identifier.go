// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches identifiers the downstream runtime accepts as
// variable names.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Identifier names one object in the emitted graph (font, controller, group,
// widget or derived entity).
type Identifier string

// NewIdentifier creates a new Identifier with validation
func NewIdentifier(id string) (Identifier, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("identifier cannot be empty")
	}
	if !identifierPattern.MatchString(id) {
		return "", fmt.Errorf("identifier %q is invalid (letters, digits and underscores, not starting with a digit)", id)
	}
	return Identifier(id), nil
}

// MustNewIdentifier creates an Identifier or panics (for tests/constants)
func MustNewIdentifier(id string) Identifier {
	ident, err := NewIdentifier(id)
	if err != nil {
		panic(err)
	}
	return ident
}

// String returns the string representation
func (i Identifier) String() string {
	return string(i)
}

// IsEmpty returns true if this is the zero value
func (i Identifier) IsEmpty() bool {
	return i == ""
}

// WithSuffix returns the identifier with "_" + suffix appended.
func (i Identifier) WithSuffix(suffix string) Identifier {
	return Identifier(string(i) + "_" + suffix)
}

// WithIndex returns the identifier with a bare numeric index appended.
func (i Identifier) WithIndex(index int) Identifier {
	return Identifier(fmt.Sprintf("%s%d", i, index))
}
