package output

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/reglet-dev/glyphc/internal/application/dto"
	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

// ruleDescriptions documents every diagnostic code the compiler emits.
var ruleDescriptions = map[string]string{
	entities.CodeIdentifierDisambiguated: "A derived entity identifier was already in use and was suffixed with the widget index.",
	entities.CodeUnknownDeviceClass:      "A sensor declares a device class that implies no icons.",
}

type sarifMapper struct {
	results   []*dto.CompileResponse
	cwd       string
	artifacts map[string]*sarif.Artifact
}

func newSARIFMapper(results []*dto.CompileResponse) *sarifMapper {
	cwd, _ := os.Getwd() // Best effort, ignore error
	return &sarifMapper{
		results:   results,
		cwd:       cwd,
		artifacts: make(map[string]*sarif.Artifact),
	}
}

// mapToRun populates the SARIF run with rules, results, artifacts and the invocation.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addRules(run)
	m.addResults(run)
	m.addArtifacts(run)
	m.addInvocation(run)
}

// addRules adds one rule per diagnostic code that occurs in the results.
func (m *sarifMapper) addRules(run *sarif.Run) {
	seen := make(map[string]entities.DiagnosticSeverity)
	for _, r := range m.results {
		for _, d := range r.Diagnostics {
			if _, ok := seen[d.Code]; !ok {
				seen[d.Code] = d.Severity
			}
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		desc, ok := ruleDescriptions[code]
		if !ok {
			desc = code
		}

		rule := sarif.NewReportingDescriptor().WithID(code)
		rule.WithName(code)
		rule.WithShortDescription(&sarif.MultiformatMessageString{Text: ptrString(desc)})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{
			Level: mapSeverityToLevel(seen[code]),
		})
		run.Tool.Driver.AddRule(rule)
	}
}

// addResults converts every diagnostic to a SARIF result located in its
// configuration file.
func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, r := range m.results {
		for _, d := range r.Diagnostics {
			result := sarif.NewRuleResult(d.Code)
			result.Level = mapSeverityToLevel(d.Severity)
			result.Message = sarif.NewTextMessage(d.Message)

			if r.ConfigPath != "" {
				result.Locations = []*sarif.Location{m.createLocation(r.ConfigPath)}
			}

			props := sarif.NewPropertyBag()
			props.Add("compilationId", r.CompilationID.String())
			if d.Location != "" {
				props.Add("configLocation", d.Location)
			}
			result.WithProperties(props)

			run.AddResult(result)
		}
	}
}

func (m *sarifMapper) createLocation(path string) *sarif.Location {
	uri := m.normalizeURI(path)
	if _, exists := m.artifacts[uri]; !exists {
		m.artifacts[uri] = sarif.NewArtifact().
			WithLocation(sarif.NewArtifactLocation().WithURI(uri))
	}

	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(uri))
	return sarif.NewLocation().WithPhysicalLocation(pLoc)
}

// normalizeURI converts a file path to a SARIF-compliant URI.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path) // Fallback to original
	}

	// Try to make relative to CWD
	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}

// addArtifacts adds the referenced configuration files in stable order.
func (m *sarifMapper) addArtifacts(run *sarif.Run) {
	uris := make([]string, 0, len(m.artifacts))
	for uri := range m.artifacts {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	for _, uri := range uris {
		run.AddArtifact(m.artifacts[uri])
	}
}

// addInvocation records which compilations contributed to the run.
func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(true)

	if m.cwd != "" {
		cwd := "file://" + filepath.ToSlash(m.cwd)
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI(cwd)
	}

	ids := make([]string, 0, len(m.results))
	for _, r := range m.results {
		ids = append(ids, r.CompilationID.String())
	}
	props := sarif.NewPropertyBag()
	props.Add("compilationIds", ids)
	invocation.WithProperties(props)

	run.AddInvocation(invocation)
}

// mapSeverityToLevel converts a diagnostic severity to a SARIF level.
func mapSeverityToLevel(severity entities.DiagnosticSeverity) string {
	switch severity {
	case entities.SeverityWarning:
		return "warning"
	case entities.SeverityNote:
		return "note"
	default:
		return "warning"
	}
}
