package domain

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// SeverityFor maps a reporting policy onto an issue severity.
// ok is false when the policy drops the issue entirely.
func SeverityFor(policy ReportingSeverity) (sev Severity, ok bool) {
	switch policy {
	case ReportThrow:
		return SeverityError, true
	case ReportWarn:
		return SeverityWarning, true
	case ReportLog:
		return SeverityInfo, true
	case ReportIgnore:
		return "", false
	default:
		return SeverityError, true
	}
}

// Issue is one data-integrity finding over the site artifacts.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	// Location names where the problem is.
	// Example: sidebars.yaml#block, site.yaml#i18n, docs/intro.md
	Location string `json:"location"`
	Message  string `json:"message"`
}

// Report is the outcome of a validation pass.
type Report struct {
	Issues []Issue `json:"issues"`
}

// Add appends an issue.
func (r *Report) Add(sev Severity, code, location, msg string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Code: code, Location: location, Message: msg})
}

// Count returns the number of issues with severity sev.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue is an error.
func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Codes returns the issue codes in report order.
func (r *Report) Codes() []string {
	codes := make([]string, 0, len(r.Issues))
	for _, is := range r.Issues {
		codes = append(codes, is.Code)
	}
	return codes
}
