package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/reglet-dev/glyphc/internal/application/dto"
)

// TextFormatter writes one instruction per line, preceded by a header naming
// the compilation. Identical inputs produce identical output.
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the instruction stream.
func (f *TextFormatter) Format(result *dto.CompileResponse) error {
	w := bufio.NewWriter(f.writer)

	fmt.Fprintf(w, "# compilation %s", result.CompilationID)
	if result.ConfigPath != "" {
		fmt.Fprintf(w, " (%s)", result.ConfigPath)
	}
	w.WriteString("\n")

	for _, d := range result.Diagnostics {
		fmt.Fprintf(w, "# %s %s: %s", d.Severity, d.Code, d.Message)
		if d.Location != "" {
			fmt.Fprintf(w, " [%s]", d.Location)
		}
		w.WriteString("\n")
	}

	for _, in := range result.Instructions {
		w.WriteString(in.String())
		w.WriteString("\n")
	}

	return w.Flush()
}
