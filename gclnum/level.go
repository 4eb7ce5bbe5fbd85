// Package gclnum provides the level and severity constants used across
// the gcl ecosystem.
package gclnum

import "fmt"

type Level int32

const (
	// The numeric values correspond to the OpenTelemetry log data
	// model's severity numbers so that levels survive translation
	// to and from OTEL-flavored collectors.
	// TraceLevel is OTEL's "Trace2".
	TraceLevel Level = 2  // trace
	DebugLevel Level = 5  // debug
	InfoLevel  Level = 9  // info
	WarnLevel  Level = 13 // warn
	ErrorLevel Level = 17 // error
)

const MaxLevel = ErrorLevel

func (level Level) String() string {
	switch level {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	}
	return fmt.Sprintf("Level(%d)", int32(level))
}

// LevelString turns the output of Level.String() back into a Level.
func LevelString(s string) (Level, error) {
	switch s {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	}
	return 0, fmt.Errorf("%s does not belong to Level values", s)
}
