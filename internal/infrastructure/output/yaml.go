package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/glyphc/internal/application/dto"
)

// YAMLFormatter formats a compiled stream as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the compiled stream as YAML.
func (f *YAMLFormatter) Format(result *dto.CompileResponse) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(newStreamDocument(result)); err != nil {
		return err
	}

	return encoder.Close()
}
