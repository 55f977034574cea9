// Package config loads glyph compiler configurations.
// This package handles YAML parsing, file I/O, schema validation and the
// translation of the document into domain types.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

// maxConfigSize caps the size of a configuration file.
const maxConfigSize = 4 << 20

// ConfigurationLoader loads configurations from YAML files.
type ConfigurationLoader struct {
	validator *SchemaValidator
}

// NewConfigurationLoader creates a loader with the embedded schema.
func NewConfigurationLoader() (*ConfigurationLoader, error) {
	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, err
	}
	return &ConfigurationLoader{validator: validator}, nil
}

// LoadConfiguration loads, validates and translates a configuration file.
func (l *ConfigurationLoader) LoadConfiguration(path string) (*entities.Configuration, error) {
	// Security: Use os.OpenRoot to prevent path traversal attacks
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return l.LoadConfigurationFromReader(file)
}

// LoadConfigurationFromReader loads a configuration from an io.Reader.
func (l *ConfigurationLoader) LoadConfigurationFromReader(r io.Reader) (*entities.Configuration, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxConfigSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if len(data) > maxConfigSize {
		return nil, entities.NewConfigError("", fmt.Sprintf("configuration exceeds %d bytes", maxConfigSize))
	}
	return l.LoadConfigurationFromBytes(data)
}

// LoadConfigurationFromBytes validates and translates raw YAML.
func (l *ConfigurationLoader) LoadConfigurationFromBytes(data []byte) (*entities.Configuration, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, entities.NewConfigError("", "configuration is empty")
	}

	if err := l.validator.ValidateYAML(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, entities.NewConfigError("", fmt.Sprintf("failed to decode configuration YAML: %v", err))
	}

	return newTranslator().translate(&doc, data)
}
