package gcl

import (
	"time"

	"github.com/mohae/deepcopy"

	"github.com/gcllog/gcl-go/gclbase"
)

type FieldType int

const (
	UnsetType FieldType = iota
	IntType
	UintType
	BoolType
	FloatType
	StringType
	TimeType
	ErrorType
	AnyType
	ObjectType
	ListType
	ValueType
)

// Field is one captured key/value pair on its way into a record.
// Field is heavily influenced by Uber's zapcore.Field.
type Field struct {
	Key   string
	Type  FieldType
	Int   int64
	Float float64
	Str   string
	Any   interface{}
	label bool
}

func Int64(k string, v int64) Field   { return Field{Key: k, Type: IntType, Int: v} }
func Int32(k string, v int32) Field   { return Field{Key: k, Type: IntType, Int: int64(v)} }
func Int16(k string, v int16) Field   { return Field{Key: k, Type: IntType, Int: int64(v)} }
func Int8(k string, v int8) Field     { return Field{Key: k, Type: IntType, Int: int64(v)} }
func Int(k string, v int) Field       { return Field{Key: k, Type: IntType, Int: int64(v)} }
func Uint64(k string, v uint64) Field { return Field{Key: k, Type: UintType, Any: v} }
func Uint32(k string, v uint32) Field { return Field{Key: k, Type: UintType, Any: uint64(v)} }
func Uint16(k string, v uint16) Field { return Field{Key: k, Type: UintType, Any: uint64(v)} }
func Uint8(k string, v uint8) Field   { return Field{Key: k, Type: UintType, Any: uint64(v)} }
func Uint(k string, v uint) Field     { return Field{Key: k, Type: UintType, Any: uint64(v)} }
func Bool(k string, v bool) Field {
	f := Field{Key: k, Type: BoolType}
	if v {
		f.Int = 1
	}
	return f
}
func Float64(k string, v float64) Field  { return Field{Key: k, Type: FloatType, Float: v} }
func Float32(k string, v float32) Field  { return Field{Key: k, Type: FloatType, Float: float64(v)} }
func String(k string, v string) Field    { return Field{Key: k, Type: StringType, Str: v} }
func Time(k string, v time.Time) Field   { return Field{Key: k, Type: TimeType, Any: v} }
func Error(k string, v error) Field      { return Field{Key: k, Type: ErrorType, Any: v} }
func Duration(k string, v time.Duration) Field {
	return Field{Key: k, Type: StringType, Str: v.String()}
}

// AnyImmutable captures v without copying. The caller promises not to
// mutate v before the field reaches a formatter.
func AnyImmutable(k string, v interface{}) Field { return Field{Key: k, Type: AnyType, Any: v} }

// Any captures v by deep copy so that the caller is free to keep
// mutating the original between constructing the field and handing it
// to a formatter.
func Any(k string, v interface{}) Field {
	return Field{Key: k, Type: AnyType, Any: deepcopy.Copy(v)}
}

// Object captures a producer-described structured value; see gclbase.
func Object(k string, v gclbase.ObjectDescriber) Field {
	return Field{Key: k, Type: ObjectType, Any: v}
}

// List captures a producer-described sequence value; see gclbase.
func List(k string, v gclbase.ListDescriber) Field {
	return Field{Key: k, Type: ListType, Any: v}
}

// Value wraps an already-converted gclbase.Value.
func Value(k string, v gclbase.Value) Field {
	return Field{Key: k, Type: ValueType, Any: v}
}

// Label marks a field as label-class: it is routed into the record's
// labels sub-object instead of the payload. Classification is always
// the caller's call; the formatter never infers it from a field's
// shape.
func Label(f Field) Field {
	f.label = true
	return f
}

// IsLabel reports whether the field was marked with Label.
func (f Field) IsLabel() bool { return f.label }

// value runs one field through the bridge.
func (f Field) value(maxDepth int) gclbase.Value {
	switch f.Type {
	case IntType:
		return gclbase.IntValue(f.Int)
	case UintType:
		u, _ := f.Any.(uint64)
		return gclbase.UintValue(u)
	case BoolType:
		return gclbase.BoolValue(f.Int != 0)
	case FloatType:
		return gclbase.FloatValue(f.Float)
	case StringType:
		return gclbase.StringValue(f.Str)
	case TimeType, ErrorType, AnyType:
		return gclbase.CaptureAny(f.Any, maxDepth)
	case ObjectType:
		d, _ := f.Any.(gclbase.ObjectDescriber)
		return gclbase.ObjectValue(gclbase.CaptureObject(d, maxDepth))
	case ListType:
		d, _ := f.Any.(gclbase.ListDescriber)
		return gclbase.ListValue(gclbase.CaptureList(d, maxDepth))
	case ValueType:
		v, _ := f.Any.(gclbase.Value)
		return v
	}
	return gclbase.NullValue()
}
