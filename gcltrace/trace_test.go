package gcltrace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcllog/gcl-go/gcltrace"
)

func TestHexBytes(t *testing.T) {
	traceID := gcltrace.NewHexBytes16FromString("105445aa7843bc8bf206b12000100000")
	assert.Equal(t, "105445aa7843bc8bf206b12000100000", traceID.String())
	assert.False(t, traceID.IsZero())

	spanID := gcltrace.NewHexBytes8FromString("00f067aa0ba902b7")
	assert.Equal(t, "00f067aa0ba902b7", spanID.String())
	assert.False(t, spanID.IsZero())
}

func TestHexBytesMalformed(t *testing.T) {
	assert.True(t, gcltrace.NewHexBytes16FromString("not hex at all").IsZero())
	assert.True(t, gcltrace.NewHexBytes16FromString("abcd").IsZero(), "wrong length")
	assert.True(t, gcltrace.NewHexBytes8FromString("zzzzzzzzzzzzzzzz").IsZero())
	var zero gcltrace.HexBytes16
	assert.True(t, zero.IsZero())
	assert.Equal(t, "00000000000000000000000000000000", zero.String())
}

func TestHexBytesFromSlice(t *testing.T) {
	raw := [16]byte{0x10, 0x54, 0x45, 0xaa}
	id := gcltrace.NewHexBytes16FromSlice(raw[:])
	assert.Equal(t, raw, id.Array())
	assert.True(t, gcltrace.NewHexBytes16FromSlice([]byte{1, 2}).IsZero(), "wrong length ignored")
}

func TestResourceName(t *testing.T) {
	traceID := gcltrace.NewHexBytes16FromString("105445aa7843bc8bf206b12000100000")
	assert.Equal(t,
		"projects/my-project/traces/105445aa7843bc8bf206b12000100000",
		gcltrace.ResourceName("my-project", traceID))
}

func TestPartsIsZero(t *testing.T) {
	assert.True(t, gcltrace.Parts{}.IsZero())
	assert.False(t, gcltrace.Parts{Sampled: true}.IsZero())
	assert.False(t, gcltrace.Parts{
		TraceID: gcltrace.NewHexBytes16FromString("105445aa7843bc8bf206b12000100000"),
	}.IsZero())
}
