package gclnum

// Severity is the Google Cloud Logging severity enumeration. Log
// entries that carry one of these strings in their "severity" key are
// classified by the backend without further parsing.
//
// https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#LogSeverity
type Severity string

const (
	// SeverityDefault means the entry has no assigned severity.
	SeverityDefault Severity = "DEFAULT"
	// SeverityDebug is debug or trace information.
	SeverityDebug Severity = "DEBUG"
	// SeverityInfo is routine information.
	SeverityInfo Severity = "INFO"
	// SeverityNotice is a normal but significant event.
	SeverityNotice Severity = "NOTICE"
	// SeverityWarning is an event that might cause problems.
	SeverityWarning Severity = "WARNING"
	// SeverityError is an event that is likely to cause problems.
	SeverityError Severity = "ERROR"
	// SeverityCritical is an event that causes severe problems.
	SeverityCritical Severity = "CRITICAL"
	// SeverityAlert means a person must take action immediately.
	SeverityAlert Severity = "ALERT"
	// SeverityEmergency means one or more systems are unusable.
	SeverityEmergency Severity = "EMERGENCY"
)

// Severity maps a level to its Cloud Logging severity. The mapping is
// total: levels outside the defined constants fall into the severity
// of the next defined level above them, and anything above ErrorLevel
// stays ERROR.
func (level Level) Severity() Severity {
	switch {
	case level <= DebugLevel:
		return SeverityDebug
	case level <= InfoLevel:
		return SeverityInfo
	case level <= WarnLevel:
		return SeverityWarning
	default:
		return SeverityError
	}
}
