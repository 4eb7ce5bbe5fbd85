package gclbase

import (
	"math"
	"strconv"
)

type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	UintKind
	FloatKind
	StringKind
	ListKind
	ObjectKind
)

// Value is the closed JSON-like variant that everything downstream of
// the capture boundary operates on. Values are immutable once
// constructed.
//
// Value is heavily influenced by Uber's zapcore.Field: one struct,
// a kind tag, and overlapping storage fields.
type Value struct {
	Kind  Kind
	Int   int64 // also holds BoolKind as 0 or 1
	Uint  uint64
	Float float64
	Str   string
	List  []Value
	Obj   *Object
}

// maxSafeInteger is the largest integer magnitude that survives a trip
// through an IEEE 754 double, which is what JSON consumers use for
// numbers.
const maxSafeInteger = 1 << 53

func NullValue() Value { return Value{Kind: NullKind} }

func BoolValue(v bool) Value {
	var i int64
	if v {
		i = 1
	}
	return Value{Kind: BoolKind, Int: i}
}

// IntValue degrades to the string form when the value cannot be
// represented in JSON without precision loss.
func IntValue(v int64) Value {
	if v > maxSafeInteger || v < -maxSafeInteger {
		return Value{Kind: StringKind, Str: strconv.FormatInt(v, 10)}
	}
	return Value{Kind: IntKind, Int: v}
}

// UintValue degrades to the string form when the value cannot be
// represented in JSON without precision loss.
func UintValue(v uint64) Value {
	if v > maxSafeInteger {
		return Value{Kind: StringKind, Str: strconv.FormatUint(v, 10)}
	}
	return Value{Kind: UintKind, Uint: v}
}

// FloatValue degrades NaN and the infinities to their string form
// since JSON has no way to say them.
func FloatValue(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{Kind: StringKind, Str: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return Value{Kind: FloatKind, Float: v}
}

func StringValue(v string) Value { return Value{Kind: StringKind, Str: v} }

func ListValue(v []Value) Value { return Value{Kind: ListKind, List: v} }

func ObjectValue(v *Object) Value {
	if v == nil {
		return NullValue()
	}
	return Value{Kind: ObjectKind, Obj: v}
}

func (v Value) Bool() bool { return v.Int != 0 }

// Interface converts to plain Go data. It is meant for tests and
// introspection, not for the serialization path.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case BoolKind:
		return v.Int != 0
	case IntKind:
		return v.Int
	case UintKind:
		return v.Uint
	case FloatKind:
		return v.Float
	case StringKind:
		return v.Str
	case ListKind:
		out := make([]interface{}, len(v.List))
		for i, e := range v.List {
			out[i] = e.Interface()
		}
		return out
	case ObjectKind:
		return v.Obj.Interface()
	}
	return nil
}

// Object is a keyed mapping of Values that remembers insertion order.
// Overwriting an existing key keeps the key's original position.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{
		values: make(map[string]Value),
	}
}

func (o *Object) Set(key string, value Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the key set in insertion order. The returned slice is
// shared; callers must not modify it.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Range visits key/value pairs in insertion order until f returns
// false.
func (o *Object) Range(f func(key string, value Value) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !f(k, o.values[k]) {
			return
		}
	}
}

// MergeFrom copies src's pairs into o in src's insertion order. Keys
// already present in o keep their position and take src's value.
func (o *Object) MergeFrom(src *Object) {
	src.Range(func(k string, v Value) bool {
		o.Set(k, v)
		return true
	})
}

func (o *Object) Interface() map[string]interface{} {
	if o == nil {
		return nil
	}
	out := make(map[string]interface{}, len(o.keys))
	for _, k := range o.keys {
		out[k] = o.values[k].Interface()
	}
	return out
}
