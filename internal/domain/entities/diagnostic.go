package entities

// DiagnosticSeverity classifies a non-fatal compile message.
type DiagnosticSeverity string

const (
	SeverityWarning DiagnosticSeverity = "warning"
	SeverityNote    DiagnosticSeverity = "note"
)

// Diagnostic codes.
const (
	CodeIdentifierDisambiguated = "identifier-disambiguated"
	CodeUnknownDeviceClass      = "unknown-device-class"
)

// Diagnostic is a non-fatal message produced during compilation.
type Diagnostic struct {
	Severity DiagnosticSeverity `json:"severity" yaml:"severity"`
	Code     string             `json:"code" yaml:"code"`
	Message  string             `json:"message" yaml:"message"`
	Location string             `json:"location,omitempty" yaml:"location,omitempty"`
}
