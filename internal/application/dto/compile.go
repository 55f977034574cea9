// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// CompileRequest encapsulates all inputs needed to compile one configuration.
type CompileRequest struct {
	ConfigPath string
	Options    CompileOptions
}

// CompileOptions controls a compilation.
type CompileOptions struct {
	// FilterExpression prunes groups that do not match (expr syntax).
	FilterExpression string

	// StrictIdentifiers fails instead of renaming colliding derived identifiers.
	StrictIdentifiers bool

	// FontSizeOverride replaces the configured font size when > 0.
	FontSizeOverride int

	// FontFileOverride replaces the configured font file when set.
	FontFileOverride string
}

// CompileResponse is the result of one successful compilation.
type CompileResponse struct {
	CompilationID values.CompilationID
	ConfigPath    string

	// Instructions are in emission order.
	Instructions []entities.Instruction
	Font         *entities.FontHandle
	Selection    []string
	Pruned       []values.Identifier
	Registered   []entities.RegisteredHandle
	Diagnostics  []entities.Diagnostic
}
