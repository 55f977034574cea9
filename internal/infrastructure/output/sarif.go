package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/reglet-dev/glyphc/internal/application/dto"
	"github.com/reglet-dev/glyphc/internal/application/ports"
)

// Ensure interface compliance
var _ ports.DiagnosticsWriter = (*SARIFWriter)(nil)

// SARIFWriter exports compile diagnostics as SARIF 2.1.0 JSON so that
// identifier renames show up in code-scanning tools next to the
// configuration file that caused them.
//
// Usage:
//
//	writer := output.NewSARIFWriter(file, version.Get().Version)
//	if err := writer.Write(results); err != nil {
//	    log.Fatal(err)
//	}
type SARIFWriter struct {
	writer  io.Writer
	version string
}

// NewSARIFWriter creates a new SARIF writer.
func NewSARIFWriter(writer io.Writer, version string) *SARIFWriter {
	return &SARIFWriter{
		writer:  writer,
		version: version,
	}
}

// Write writes one SARIF run covering every compilation in results.
func (w *SARIFWriter) Write(results []*dto.CompileResponse) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("glyphc", "https://github.com/reglet-dev/glyphc")
	run.Tool.Driver.Version = &w.version

	newSARIFMapper(results).mapToRun(run)

	report.AddRun(run)

	if err := report.Write(w.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := w.writer.Write([]byte("\n"))
	return err
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}
