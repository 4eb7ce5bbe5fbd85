package gcljson

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TransformKey converts one payload field name to the output schema's
// convention. Keys in the override table pass through untouched;
// everything else goes through CamelCase. With transformation turned
// off every key passes through.
func (e *Encoder) TransformKey(name string) string {
	if !e.transformKeys {
		return name
	}
	if _, ok := e.overrides[name]; ok {
		return name
	}
	return CamelCase(name)
}

// CamelCase converts a snake_cased identifier to camelCase: the first
// segment is kept verbatim, each following segment gets its first rune
// upper-cased, and the underscores are dropped. Empty segments
// (doubled or leading underscores) are collapsed. Inputs without
// underscores come back unchanged, which makes the function
// idempotent: its output never contains an underscore unless the
// input was underscores only.
func CamelCase(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}
	segments := strings.Split(name, "_")
	var b strings.Builder
	b.Grow(len(name))
	first := true
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if first {
			b.WriteString(seg)
			first = false
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	if first {
		// underscores only; nothing to camel
		return name
	}
	return b.String()
}

var reservedKeys = map[string]struct{}{
	TimeKey:           {},
	SeverityKey:       {},
	MessageKey:        {},
	SourceLocationKey: {},
	TraceKey:          {},
	SpanIDKey:         {},
	TraceSampledKey:   {},
	LabelsKey:         {},
	ServiceContextKey: {},
}

func isReservedKey(name string) bool {
	_, ok := reservedKeys[name]
	return ok
}
