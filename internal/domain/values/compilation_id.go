package values

import (
	"fmt"

	"github.com/google/uuid"
)

// compilationNamespace scopes compilation IDs so that they never collide with
// UUIDs generated for unrelated purposes.
var compilationNamespace = uuid.MustParse("6f1c3a52-8e0d-4b7a-9f57-1d2e3c4b5a69")

// CompilationID identifies one top-level compilation. It is derived from the
// configuration content, so compiling the same bytes twice yields the same ID
// and the emitted stream stays reproducible.
type CompilationID struct {
	value uuid.UUID
}

// NewCompilationID derives a CompilationID from the raw configuration bytes.
func NewCompilationID(source []byte) CompilationID {
	return CompilationID{value: uuid.NewSHA1(compilationNamespace, source)}
}

// ParseCompilationID parses a string into a CompilationID
func ParseCompilationID(s string) (CompilationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CompilationID{}, fmt.Errorf("invalid compilation ID: %w", err)
	}
	return CompilationID{value: id}, nil
}

// String returns the string representation
func (c CompilationID) String() string {
	return c.value.String()
}

// IsZero returns true if this is the zero value
func (c CompilationID) IsZero() bool {
	return c.value == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler
func (c CompilationID) MarshalText() ([]byte, error) {
	return []byte(c.value.String()), nil
}
