package types

import "strings"

// Severity is a failure threshold for the scan verdict. The zero value is
// not valid; use ParseSeverity.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityNone     Severity = "none"
)

var severityRanks = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityNone:     4,
}

// Rank returns the position of the severity in the total order
// critical > high > medium > low > none. Lower rank is more severe.
// ok is false for values outside the enum.
func (x Severity) Rank() (int, bool) {
	r, ok := severityRanks[x]
	return r, ok
}

func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	_, ok := severityRanks[sev]
	return sev, ok
}
