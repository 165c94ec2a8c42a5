package notify

import "strings"

// Severity selects the styling of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

var severityColors = map[Severity]string{
	SeveritySuccess: "#00b894",
	SeverityError:   "#e17055",
	SeverityWarning: "#fdcb6e",
	SeverityInfo:    "#74b9ff",
}

// ParseSeverity maps a name to a Severity. Unknown names resolve to info.
func ParseSeverity(name string) Severity {
	s := Severity(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := severityColors[s]; ok {
		return s
	}
	return SeverityInfo
}

// Color returns the background color for s, falling back to the info color.
func (s Severity) Color() string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return severityColors[SeverityInfo]
}

// Known reports whether s is one of the four defined severities.
func (s Severity) Known() bool {
	_, ok := severityColors[s]
	return ok
}

func (s Severity) String() string {
	return string(s)
}

// Severities lists the defined severities in display order.
func Severities() []Severity {
	return []Severity{SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo}
}
