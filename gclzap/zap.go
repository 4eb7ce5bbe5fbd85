// Package gclzap converts zap fields for use with gcl formatters, so
// code instrumented with zap's strongly-typed fields can feed the
// Cloud Logging formatter without rewriting its call sites.
package gclzap

import (
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"

	gcl "github.com/gcllog/gcl-go"
	"github.com/gcllog/gcl-go/gclbase"
)

// Fields converts zap fields. Each zap field encodes itself into an
// adapter that assembles gclbase values; namespaces become nested
// objects.
func Fields(zapFields ...zapcore.Field) []gcl.Field {
	enc := newObjectEncoder()
	for _, field := range zapFields {
		field.AddTo(enc)
	}
	out := make([]gcl.Field, 0, enc.root.Len())
	enc.root.Range(func(k string, v gclbase.Value) bool {
		out = append(out, gcl.Value(k, v))
		return true
	})
	return out
}

type objectEncoder struct {
	root *gclbase.Object
	cur  *gclbase.Object
}

var _ zapcore.ObjectEncoder = &objectEncoder{}

func newObjectEncoder() *objectEncoder {
	root := gclbase.NewObject()
	return &objectEncoder{root: root, cur: root}
}

func (enc *objectEncoder) AddArray(key string, v zapcore.ArrayMarshaler) error {
	arr := &arrayEncoder{}
	err := v.MarshalLogArray(arr)
	enc.cur.Set(key, gclbase.ListValue(arr.items))
	return err
}

func (enc *objectEncoder) AddObject(key string, v zapcore.ObjectMarshaler) error {
	sub := newObjectEncoder()
	err := v.MarshalLogObject(sub)
	enc.cur.Set(key, gclbase.ObjectValue(sub.root))
	return err
}

func (enc *objectEncoder) AddBinary(key string, v []byte) {
	enc.cur.Set(key, gclbase.CaptureAny(v, 0))
}

func (enc *objectEncoder) AddByteString(key string, v []byte) {
	enc.cur.Set(key, gclbase.StringValue(string(v)))
}

func (enc *objectEncoder) AddBool(key string, v bool) {
	enc.cur.Set(key, gclbase.BoolValue(v))
}

func (enc *objectEncoder) AddComplex128(key string, v complex128) {
	enc.cur.Set(key, gclbase.StringValue(strconv.FormatComplex(v, 'f', -1, 128)))
}

func (enc *objectEncoder) AddComplex64(key string, v complex64) {
	enc.AddComplex128(key, complex128(v))
}

func (enc *objectEncoder) AddDuration(key string, v time.Duration) {
	enc.cur.Set(key, gclbase.StringValue(v.String()))
}

func (enc *objectEncoder) AddFloat64(key string, v float64) {
	enc.cur.Set(key, gclbase.FloatValue(v))
}

func (enc *objectEncoder) AddFloat32(key string, v float32) {
	enc.cur.Set(key, gclbase.FloatValue(float64(v)))
}

func (enc *objectEncoder) AddInt(key string, v int)     { enc.AddInt64(key, int64(v)) }
func (enc *objectEncoder) AddInt32(key string, v int32) { enc.AddInt64(key, int64(v)) }
func (enc *objectEncoder) AddInt16(key string, v int16) { enc.AddInt64(key, int64(v)) }
func (enc *objectEncoder) AddInt8(key string, v int8)   { enc.AddInt64(key, int64(v)) }

func (enc *objectEncoder) AddInt64(key string, v int64) {
	enc.cur.Set(key, gclbase.IntValue(v))
}

func (enc *objectEncoder) AddString(key, v string) {
	enc.cur.Set(key, gclbase.StringValue(v))
}

func (enc *objectEncoder) AddTime(key string, v time.Time) {
	enc.cur.Set(key, gclbase.CaptureAny(v, 0))
}

func (enc *objectEncoder) AddUint(key string, v uint)       { enc.AddUint64(key, uint64(v)) }
func (enc *objectEncoder) AddUint32(key string, v uint32)   { enc.AddUint64(key, uint64(v)) }
func (enc *objectEncoder) AddUint16(key string, v uint16)   { enc.AddUint64(key, uint64(v)) }
func (enc *objectEncoder) AddUint8(key string, v uint8)     { enc.AddUint64(key, uint64(v)) }
func (enc *objectEncoder) AddUintptr(key string, v uintptr) { enc.AddUint64(key, uint64(v)) }

func (enc *objectEncoder) AddUint64(key string, v uint64) {
	enc.cur.Set(key, gclbase.UintValue(v))
}

func (enc *objectEncoder) AddReflected(key string, v interface{}) error {
	enc.cur.Set(key, gclbase.CaptureAny(v, 0))
	return nil
}

// OpenNamespace nests all further fields under key. zap namespaces
// only ever open, never close, so the encoder just descends.
func (enc *objectEncoder) OpenNamespace(key string) {
	sub := gclbase.NewObject()
	enc.cur.Set(key, gclbase.ObjectValue(sub))
	enc.cur = sub
}

type arrayEncoder struct {
	items []gclbase.Value
}

var _ zapcore.ArrayEncoder = &arrayEncoder{}

func (arr *arrayEncoder) AppendArray(v zapcore.ArrayMarshaler) error {
	sub := &arrayEncoder{}
	err := v.MarshalLogArray(sub)
	arr.items = append(arr.items, gclbase.ListValue(sub.items))
	return err
}

func (arr *arrayEncoder) AppendObject(v zapcore.ObjectMarshaler) error {
	sub := newObjectEncoder()
	err := v.MarshalLogObject(sub)
	arr.items = append(arr.items, gclbase.ObjectValue(sub.root))
	return err
}

func (arr *arrayEncoder) AppendReflected(v interface{}) error {
	arr.items = append(arr.items, gclbase.CaptureAny(v, 0))
	return nil
}

func (arr *arrayEncoder) AppendBool(v bool) {
	arr.items = append(arr.items, gclbase.BoolValue(v))
}

func (arr *arrayEncoder) AppendByteString(v []byte) {
	arr.items = append(arr.items, gclbase.StringValue(string(v)))
}

func (arr *arrayEncoder) AppendComplex128(v complex128) {
	arr.items = append(arr.items, gclbase.StringValue(strconv.FormatComplex(v, 'f', -1, 128)))
}

func (arr *arrayEncoder) AppendComplex64(v complex64) { arr.AppendComplex128(complex128(v)) }

func (arr *arrayEncoder) AppendDuration(v time.Duration) {
	arr.items = append(arr.items, gclbase.StringValue(v.String()))
}

func (arr *arrayEncoder) AppendFloat64(v float64) {
	arr.items = append(arr.items, gclbase.FloatValue(v))
}

func (arr *arrayEncoder) AppendFloat32(v float32) { arr.AppendFloat64(float64(v)) }

func (arr *arrayEncoder) AppendInt(v int)     { arr.AppendInt64(int64(v)) }
func (arr *arrayEncoder) AppendInt32(v int32) { arr.AppendInt64(int64(v)) }
func (arr *arrayEncoder) AppendInt16(v int16) { arr.AppendInt64(int64(v)) }
func (arr *arrayEncoder) AppendInt8(v int8)   { arr.AppendInt64(int64(v)) }

func (arr *arrayEncoder) AppendInt64(v int64) {
	arr.items = append(arr.items, gclbase.IntValue(v))
}

func (arr *arrayEncoder) AppendString(v string) {
	arr.items = append(arr.items, gclbase.StringValue(v))
}

func (arr *arrayEncoder) AppendTime(v time.Time) {
	arr.items = append(arr.items, gclbase.CaptureAny(v, 0))
}

func (arr *arrayEncoder) AppendUint(v uint)       { arr.AppendUint64(uint64(v)) }
func (arr *arrayEncoder) AppendUint32(v uint32)   { arr.AppendUint64(uint64(v)) }
func (arr *arrayEncoder) AppendUint16(v uint16)   { arr.AppendUint64(uint64(v)) }
func (arr *arrayEncoder) AppendUint8(v uint8)     { arr.AppendUint64(uint64(v)) }
func (arr *arrayEncoder) AppendUintptr(v uintptr) { arr.AppendUint64(uint64(v)) }

func (arr *arrayEncoder) AppendUint64(v uint64) {
	arr.items = append(arr.items, gclbase.UintValue(v))
}
