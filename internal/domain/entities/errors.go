package entities

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// ConfigError indicates the configuration has the wrong shape or references
// something that does not exist. Compilation never starts.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
	return fmt.Sprintf("configuration error at %s: %s", e.Path, e.Message)
}

// NewConfigError creates a new configuration error.
func NewConfigError(path, message string) *ConfigError {
	return &ConfigError{Path: path, Message: message}
}

// UnknownIconError indicates an icon name is absent from the catalog.
type UnknownIconError struct {
	Name     string
	Location string
}

func (e *UnknownIconError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("unknown icon %q", e.Name)
	}
	return fmt.Sprintf("unknown icon %q at %s", e.Name, e.Location)
}

// CatalogLoadError indicates the icon catalog is missing or malformed.
type CatalogLoadError struct {
	Cause  error
	Source string
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("failed to load icon catalog %s: %v", e.Source, e.Cause)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Cause
}

// NewCatalogLoadError creates a new catalog load error.
func NewCatalogLoadError(source string, cause error) *CatalogLoadError {
	return &CatalogLoadError{Source: source, Cause: cause}
}

// IdentifierCollisionError indicates disambiguation could not produce a
// free identifier.
type IdentifierCollisionError struct {
	Original      values.Identifier
	Disambiguated values.Identifier
	Location      string
}

func (e *IdentifierCollisionError) Error() string {
	if e.Disambiguated.IsEmpty() {
		return fmt.Sprintf("identifier collision at %s: %s is already in use", e.Location, e.Original)
	}
	return fmt.Sprintf("identifier collision at %s: %s is already in use and %s cannot be used instead",
		e.Location, e.Original, e.Disambiguated)
}

// FontBuildError indicates the font collaborator could not map every
// selected icon. Resolution already validated catalog membership, so this
// points at an internal inconsistency.
type FontBuildError struct {
	Cause    error
	Unmapped []string
}

func (e *FontBuildError) Error() string {
	if len(e.Unmapped) > 0 {
		return fmt.Sprintf("font build failed: unmapped icons: %s", strings.Join(e.Unmapped, ", "))
	}
	return fmt.Sprintf("font build failed: %v", e.Cause)
}

func (e *FontBuildError) Unwrap() error {
	return e.Cause
}

// DependencyOrderingFault indicates the instruction list cannot be ordered.
// This is an assembler bug, never a user error.
type DependencyOrderingFault struct {
	Instruction string
	Missing     Key
	Reason      string
}

func (e *DependencyOrderingFault) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("internal error: instruction %q requires %s: %s", e.Instruction, e.Missing, e.Reason)
	}
	return fmt.Sprintf("internal error: instruction %q: %s", e.Instruction, e.Reason)
}
