// Package gcltrace carries the trace correlation identifiers that tie
// log records to distributed traces.
package gcltrace

import (
	"bytes"
	"encoding/hex"
)

// HexBytes16 is a 16-byte identifier (a trace id) that renders as 32
// lowercase hex digits.
type HexBytes16 struct {
	b [16]byte
}

// HexBytes8 is an 8-byte identifier (a span id) that renders as 16
// lowercase hex digits.
type HexBytes8 struct {
	b [8]byte
}

func NewHexBytes16FromSlice(b []byte) HexBytes16 {
	var x HexBytes16
	setBytes(x.b[:], b)
	return x
}

func NewHexBytes8FromSlice(b []byte) HexBytes8 {
	var x HexBytes8
	setBytes(x.b[:], b)
	return x
}

// NewHexBytes16FromString decodes a hex string. Malformed or
// wrong-length input produces the zero id.
func NewHexBytes16FromString(s string) HexBytes16 {
	var x HexBytes16
	setBytesFromString(x.b[:], s)
	return x
}

// NewHexBytes8FromString decodes a hex string. Malformed or
// wrong-length input produces the zero id.
func NewHexBytes8FromString(s string) HexBytes8 {
	var x HexBytes8
	setBytesFromString(x.b[:], s)
	return x
}

func (x HexBytes16) IsZero() bool    { return x.b == [16]byte{} }
func (x HexBytes8) IsZero() bool     { return x.b == [8]byte{} }
func (x HexBytes16) String() string  { return hex.EncodeToString(x.b[:]) }
func (x HexBytes8) String() string   { return hex.EncodeToString(x.b[:]) }
func (x HexBytes16) Array() [16]byte { return x.b }
func (x HexBytes8) Array() [8]byte   { return x.b }

func setBytes(dest []byte, b []byte) {
	if len(b) != len(dest) {
		return
	}
	copy(dest, b)
}

func setBytesFromString(dest []byte, s string) {
	if len(s) != len(dest)*2 {
		return
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		zero(dest)
		return
	}
	copy(dest, decoded)
}

func zero(dest []byte) {
	copy(dest, bytes.Repeat([]byte{0}, len(dest)))
}
