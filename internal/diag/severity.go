package diag

// Severity orders diagnostics from informational to fatal for the pass.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	// SevError делает результат команды неуспешным.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

// String returns the lower-case label used by the short and JSON formats.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
