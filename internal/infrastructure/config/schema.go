package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

//go:embed schema/configuration.schema.json
var configurationSchema []byte

const schemaResource = "configuration.schema.json"

// SchemaValidator checks the shape of a configuration document before it is
// translated to domain types.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles the embedded configuration schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaResource, bytes.NewReader(configurationSchema)); err != nil {
		return nil, fmt.Errorf("failed to add configuration schema: %w", err)
	}

	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile configuration schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// ValidateYAML checks raw YAML bytes against the schema. Shape problems are
// returned as *entities.ConfigError.
func (v *SchemaValidator) ValidateYAML(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return entities.NewConfigError("", fmt.Sprintf("invalid YAML: %v", err))
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return entities.NewConfigError("", fmt.Sprintf("invalid document: %v", err))
	}

	if err := v.schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return formatSchemaValidationError(validationErr)
		}
		return entities.NewConfigError("", fmt.Sprintf("schema validation failed: %v", err))
	}
	return nil
}

// formatSchemaValidationError turns the leaf causes of a validation error into
// one ConfigError located at the first failing instance.
func formatSchemaValidationError(err *jsonschema.ValidationError) *entities.ConfigError {
	var leaves []*jsonschema.ValidationError

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			leaves = append(leaves, e)
			return
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(leaves) == 0 {
		return entities.NewConfigError("", "validation failed")
	}

	messages := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		location := pointerToPath(leaf.InstanceLocation)
		if location == "" {
			location = "(root)"
		}
		messages = append(messages, fmt.Sprintf("%s: %s", location, leaf.Message))
	}

	return entities.NewConfigError(pointerToPath(leaves[0].InstanceLocation), strings.Join(messages, "; "))
}

// pointerToPath converts a JSON pointer such as /groups/0/widgets/1 into
// groups[0].widgets[1].
func pointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}

	var b strings.Builder
	for _, token := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		if isIndex(token) {
			b.WriteString("[" + token + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}

func isIndex(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
