package gcljson_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcllog/gcl-go/gclbase"
	"github.com/gcllog/gcl-go/gcljson"
	"github.com/gcllog/gcl-go/gclnum"
	"github.com/gcllog/gcl-go/gcltrace"
	"github.com/gcllog/gcl-go/gclutil"
)

var testTime = time.Date(2024, 1, 2, 3, 4, 5, 123456789, time.UTC)

func encode(t *testing.T, e *gcljson.Encoder, rec gcljson.Record) (string, map[string]interface{}) {
	t.Helper()
	var b gclutil.JBuilder
	e.Encode(&b, rec)
	line := string(b.B)
	require.True(t, strings.HasSuffix(line, "\n"), "line must end in newline: %q", line)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b.B, &decoded), "line must be valid JSON: %q", line)
	return line, decoded
}

func TestEncodeReservedKeys(t *testing.T) {
	e := gcljson.New()
	line, decoded := encode(t, e, gcljson.Record{
		Time:     testTime,
		Severity: gclnum.SeverityInfo,
		Message:  "hello",
	})
	assert.True(t, strings.HasPrefix(line,
		`{"time":"2024-01-02T03:04:05.123456789Z","severity":"INFO","message":"hello"`), line)
	assert.NotContains(t, decoded, gcljson.TraceKey)
	assert.NotContains(t, decoded, gcljson.SpanIDKey)
	assert.NotContains(t, decoded, gcljson.TraceSampledKey)
	assert.NotContains(t, decoded, gcljson.SourceLocationKey)
	assert.NotContains(t, decoded, gcljson.LabelsKey)
}

func TestEncodeSeverityDefault(t *testing.T) {
	_, decoded := encode(t, gcljson.New(), gcljson.Record{Time: testTime})
	assert.Equal(t, "DEFAULT", decoded[gcljson.SeverityKey])
}

func TestEncodeTimePrecision(t *testing.T) {
	cases := []struct {
		precision gcljson.TimePrecision
		want      string
	}{
		{gcljson.Nanoseconds, "2024-01-02T03:04:05.123456789Z"},
		{gcljson.Microseconds, "2024-01-02T03:04:05.123456Z"},
		{gcljson.Milliseconds, "2024-01-02T03:04:05.123Z"},
		{gcljson.Seconds, "2024-01-02T03:04:05Z"},
	}
	for _, tc := range cases {
		e := gcljson.New(gcljson.WithTimePrecision(tc.precision))
		_, decoded := encode(t, e, gcljson.Record{Time: testTime})
		assert.Equal(t, tc.want, decoded[gcljson.TimeKey])
	}
}

func TestEncodeTrace(t *testing.T) {
	traceID := gcltrace.NewHexBytes16FromString("105445aa7843bc8bf206b12000100000")
	spanID := gcltrace.NewHexBytes8FromString("0000000000000001")

	t.Run("raw without project", func(t *testing.T) {
		_, decoded := encode(t, gcljson.New(), gcljson.Record{
			Time:  testTime,
			Trace: gcltrace.Parts{TraceID: traceID, SpanID: spanID, Sampled: true},
		})
		assert.Equal(t, "105445aa7843bc8bf206b12000100000", decoded[gcljson.TraceKey])
		assert.Equal(t, "0000000000000001", decoded[gcljson.SpanIDKey])
		assert.Equal(t, true, decoded[gcljson.TraceSampledKey])
	})

	t.Run("resource name with project", func(t *testing.T) {
		e := gcljson.New(gcljson.WithProjectID("my-project"))
		_, decoded := encode(t, e, gcljson.Record{
			Time:  testTime,
			Trace: gcltrace.Parts{TraceID: traceID},
		})
		assert.Equal(t,
			"projects/my-project/traces/105445aa7843bc8bf206b12000100000",
			decoded[gcljson.TraceKey])
		assert.NotContains(t, decoded, gcljson.TraceSampledKey)
	})
}

func TestEncodeSourceLocation(t *testing.T) {
	_, decoded := encode(t, gcljson.New(), gcljson.Record{
		Time:   testTime,
		Source: &gcljson.Source{File: "svc/main.go", Line: 42},
	})
	loc, ok := decoded[gcljson.SourceLocationKey].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "svc/main.go", loc["file"])
	assert.Equal(t, float64(42), loc["line"])
	assert.NotContains(t, loc, "function")
}

func TestEncodePayloadMergeAndTransform(t *testing.T) {
	span := gclbase.NewObject()
	span.Set("cart_id", gclbase.StringValue("c-9"))
	span.Set("attempt", gclbase.IntValue(1))
	event := gclbase.NewObject()
	event.Set("attempt", gclbase.IntValue(2))
	event.Set("elapsed_ms", gclbase.FloatValue(1.5))

	line, decoded := encode(t, gcljson.New(), gcljson.Record{
		Time:        testTime,
		SpanFields:  span,
		EventFields: event,
	})
	assert.Equal(t, "c-9", decoded["cartId"])
	assert.Equal(t, float64(2), decoded["attempt"], "event wins over span")
	assert.Equal(t, 1.5, decoded["elapsedMs"])
	// insertion order: span keys first, event-only keys after
	assert.Less(t, strings.Index(line, `"cartId"`), strings.Index(line, `"attempt"`))
	assert.Less(t, strings.Index(line, `"attempt"`), strings.Index(line, `"elapsedMs"`))
}

func TestEncodeTransformCollision(t *testing.T) {
	event := gclbase.NewObject()
	event.Set("cart_id", gclbase.StringValue("raw"))
	event.Set("cartId", gclbase.StringValue("camel"))
	line, decoded := encode(t, gcljson.New(), gcljson.Record{
		Time:        testTime,
		EventFields: event,
	})
	assert.Equal(t, 1, strings.Count(line, `"cartId"`),
		"keys colliding after transformation collapse to one")
	assert.Equal(t, "camel", decoded["cartId"], "later key wins")
}

func TestEncodeReservedCollisionSkipped(t *testing.T) {
	event := gclbase.NewObject()
	event.Set("message", gclbase.StringValue("smuggled"))
	event.Set("ok", gclbase.BoolValue(true))
	_, decoded := encode(t, gcljson.New(), gcljson.Record{
		Time:        testTime,
		Message:     "real",
		EventFields: event,
	})
	assert.Equal(t, "real", decoded[gcljson.MessageKey])
	assert.Equal(t, true, decoded["ok"])
}

func TestEncodeLabels(t *testing.T) {
	labels := gclbase.NewObject()
	labels.Set("tier", gclbase.StringValue("backend"))
	labels.Set("retries", gclbase.IntValue(3))
	_, decoded := encode(t, gcljson.New(), gcljson.Record{
		Time:   testTime,
		Labels: labels,
	})
	m, ok := decoded[gcljson.LabelsKey].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "backend", m["tier"])
	assert.Equal(t, "3", m["retries"], "label values flatten to strings")
}

func TestEncodeServiceContext(t *testing.T) {
	sc := gcljson.ServiceContext{Service: "checkout"}
	_, decoded := encode(t, gcljson.New(gcljson.WithServiceContext(sc)), gcljson.Record{
		Time: testTime,
	})
	m, ok := decoded[gcljson.ServiceContextKey].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "checkout", m["service"])
	assert.NotContains(t, m, "version")
}

func TestEncodeNestedValues(t *testing.T) {
	inner := gclbase.NewObject()
	inner.Set("deep_key", gclbase.StringValue("v"))
	event := gclbase.NewObject()
	event.Set("outer_thing", gclbase.ObjectValue(inner))
	event.Set("seq", gclbase.ListValue([]gclbase.Value{
		gclbase.IntValue(1),
		gclbase.NullValue(),
		gclbase.StringValue("two"),
	}))
	_, decoded := encode(t, gcljson.New(), gcljson.Record{
		Time:        testTime,
		EventFields: event,
	})
	outer, ok := decoded["outerThing"].(map[string]interface{})
	require.True(t, ok)
	// only top-level keys are transformed
	assert.Equal(t, "v", outer["deep_key"])
	assert.Equal(t, []interface{}{float64(1), nil, "two"}, decoded["seq"])
}

func TestEncodeEscaping(t *testing.T) {
	event := gclbase.NewObject()
	event.Set("quote", gclbase.StringValue(`say "hi"`+"\n\tdone"))
	_, decoded := encode(t, gcljson.New(), gcljson.Record{
		Time:        testTime,
		Message:     "with \"quotes\" and \x00 control",
		EventFields: event,
	})
	assert.Equal(t, "with \"quotes\" and \x00 control", decoded[gcljson.MessageKey])
	assert.Equal(t, `say "hi"`+"\n\tdone", decoded["quote"])
}
