// Package gclbase defines the protocol between instrumentation
// producers and the record formatter.
//
// Producers describe their values through the ObjectSink and ListSink
// interfaces rather than handing over concrete types: a producer that
// wants a structured value in the log implements ObjectDescriber (or
// ListDescriber) and is visited field by field. The formatter never
// needs compile-time knowledge of the producer's types; everything it
// receives is reduced to the closed Value variant by the capture
// functions in this package.
package gclbase

import "time"

// ObjectSink receives the named fields of one structured value.
// Implementations must accept any call sequence; keys repeated within
// one description overwrite earlier values.
type ObjectSink interface {
	AddBool(key string, value bool)
	AddInt64(key string, value int64)
	AddUint64(key string, value uint64)
	AddFloat64(key string, value float64)
	AddString(key string, value string)
	AddBytes(key string, value []byte)
	AddTime(key string, value time.Time)
	AddError(key string, value error)
	AddAny(key string, value interface{})
	AddObject(key string, value ObjectDescriber)
	AddList(key string, value ListDescriber)
}

// ListSink receives the elements of one sequence value, in order.
type ListSink interface {
	AppendBool(value bool)
	AppendInt64(value int64)
	AppendUint64(value uint64)
	AppendFloat64(value float64)
	AppendString(value string)
	AppendBytes(value []byte)
	AppendTime(value time.Time)
	AppendError(value error)
	AppendAny(value interface{})
	AppendObject(value ObjectDescriber)
	AppendList(value ListDescriber)
}

// ObjectDescriber is implemented by producers whose values carry named
// sub-fields.
type ObjectDescriber interface {
	DescribeObject(ObjectSink)
}

// ListDescriber is implemented by producers whose values are sequences.
type ListDescriber interface {
	DescribeList(ListSink)
}
