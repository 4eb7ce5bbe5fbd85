package gclbase

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DefaultMaxDepth bounds how far capture follows nested describers
// before switching from recursion to a work list.
const DefaultMaxDepth = 32

// CaptureObject reduces a producer-described structured value to an
// Object. It never fails: values that cannot be represented degrade to
// their string form. maxDepth <= 0 selects DefaultMaxDepth.
//
// Descriptions nested deeper than maxDepth are not lost; they are
// parked on a work list and captured iteratively after the enclosing
// description returns, so pathological nesting cannot exhaust the
// goroutine stack.
func CaptureObject(d ObjectDescriber, maxDepth int) *Object {
	obj := NewObject()
	if d == nil {
		return obj
	}
	c := newCapture(maxDepth)
	d.DescribeObject(&objectBridge{capture: c, obj: obj})
	c.drain()
	return obj
}

// CaptureList is CaptureObject for sequence values.
func CaptureList(d ListDescriber, maxDepth int) []Value {
	if d == nil {
		return nil
	}
	c := newCapture(maxDepth)
	lb := &listBridge{capture: c}
	d.DescribeList(lb)
	c.drain()
	return lb.items
}

// CaptureAny reduces an arbitrary Go value to a Value. Describers are
// captured through their protocol; plain Go data is converted
// directly; everything else takes a trip through encoding/json and, if
// even that fails, degrades to its fmt form.
func CaptureAny(v interface{}, maxDepth int) Value {
	c := newCapture(maxDepth)
	out := c.anyValue(v, 0)
	c.drain()
	return out
}

type capture struct {
	maxDepth int
	work     []deferredCapture
}

// deferredCapture is a nested description that was too deep to follow
// inline. Exactly one of intoObj/intoList is set; it identifies the
// slot the captured value lands in.
type deferredCapture struct {
	intoObj  *Object
	key      string
	intoList *listBridge
	index    int
	obj      ObjectDescriber
	list     ListDescriber
	any      interface{}
	isAny    bool
}

func newCapture(maxDepth int) *capture {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &capture{maxDepth: maxDepth}
}

// drain runs the deferred work list. Each item restarts with a full
// depth budget; items it defers in turn are appended and picked up by
// the same loop, so total stack growth stays bounded by maxDepth no
// matter how deep the producer's data goes.
func (c *capture) drain() {
	for len(c.work) > 0 {
		d := c.work[0]
		c.work = c.work[1:]
		var v Value
		switch {
		case d.isAny:
			v = c.anyValue(d.any, 0)
		case d.obj != nil:
			child := NewObject()
			d.obj.DescribeObject(&objectBridge{capture: c, obj: child, depth: 0})
			v = ObjectValue(child)
		case d.list != nil:
			lb := &listBridge{capture: c}
			d.list.DescribeList(lb)
			v = ListValue(lb.items)
		}
		if d.intoObj != nil {
			d.intoObj.Set(d.key, v)
		} else if d.intoList != nil {
			d.intoList.items[d.index] = v
		}
	}
}

// objectBridge assembles an Object from visit calls.
type objectBridge struct {
	capture *capture
	obj     *Object
	depth   int
}

var _ ObjectSink = &objectBridge{}

func (b *objectBridge) AddBool(k string, v bool)       { b.obj.Set(k, BoolValue(v)) }
func (b *objectBridge) AddInt64(k string, v int64)     { b.obj.Set(k, IntValue(v)) }
func (b *objectBridge) AddUint64(k string, v uint64)   { b.obj.Set(k, UintValue(v)) }
func (b *objectBridge) AddFloat64(k string, v float64) { b.obj.Set(k, FloatValue(v)) }
func (b *objectBridge) AddString(k string, v string)   { b.obj.Set(k, StringValue(v)) }
func (b *objectBridge) AddBytes(k string, v []byte)    { b.obj.Set(k, bytesValue(v)) }
func (b *objectBridge) AddTime(k string, v time.Time)  { b.obj.Set(k, timeValue(v)) }
func (b *objectBridge) AddError(k string, v error)     { b.obj.Set(k, errorValue(v)) }

func (b *objectBridge) AddAny(k string, v interface{}) {
	b.obj.Set(k, b.capture.anyValue(v, b.depth))
}

func (b *objectBridge) AddObject(k string, v ObjectDescriber) {
	if v == nil {
		b.obj.Set(k, NullValue())
		return
	}
	if b.depth+1 >= b.capture.maxDepth {
		b.obj.Set(k, NullValue())
		b.capture.work = append(b.capture.work, deferredCapture{
			intoObj: b.obj,
			key:     k,
			obj:     v,
		})
		return
	}
	child := NewObject()
	v.DescribeObject(&objectBridge{capture: b.capture, obj: child, depth: b.depth + 1})
	b.obj.Set(k, ObjectValue(child))
}

func (b *objectBridge) AddList(k string, v ListDescriber) {
	if v == nil {
		b.obj.Set(k, NullValue())
		return
	}
	if b.depth+1 >= b.capture.maxDepth {
		b.obj.Set(k, NullValue())
		b.capture.work = append(b.capture.work, deferredCapture{
			intoObj: b.obj,
			key:     k,
			list:    v,
		})
		return
	}
	lb := &listBridge{capture: b.capture, depth: b.depth + 1}
	v.DescribeList(lb)
	b.obj.Set(k, ListValue(lb.items))
}

// listBridge assembles a []Value from visit calls. Deferred children
// write back through the bridge rather than into a slice snapshot so
// that append-driven reallocation cannot orphan them.
type listBridge struct {
	capture *capture
	items   []Value
	depth   int
}

var _ ListSink = &listBridge{}

func (b *listBridge) AppendBool(v bool)       { b.items = append(b.items, BoolValue(v)) }
func (b *listBridge) AppendInt64(v int64)     { b.items = append(b.items, IntValue(v)) }
func (b *listBridge) AppendUint64(v uint64)   { b.items = append(b.items, UintValue(v)) }
func (b *listBridge) AppendFloat64(v float64) { b.items = append(b.items, FloatValue(v)) }
func (b *listBridge) AppendString(v string)   { b.items = append(b.items, StringValue(v)) }
func (b *listBridge) AppendBytes(v []byte)    { b.items = append(b.items, bytesValue(v)) }
func (b *listBridge) AppendTime(v time.Time)  { b.items = append(b.items, timeValue(v)) }
func (b *listBridge) AppendError(v error)     { b.items = append(b.items, errorValue(v)) }

func (b *listBridge) AppendAny(v interface{}) {
	b.items = append(b.items, b.capture.anyValue(v, b.depth))
}

func (b *listBridge) AppendObject(v ObjectDescriber) {
	if v == nil {
		b.items = append(b.items, NullValue())
		return
	}
	if b.depth+1 >= b.capture.maxDepth {
		b.items = append(b.items, NullValue())
		b.capture.work = append(b.capture.work, deferredCapture{
			intoList: b,
			index:    len(b.items) - 1,
			obj:      v,
		})
		return
	}
	child := NewObject()
	v.DescribeObject(&objectBridge{capture: b.capture, obj: child, depth: b.depth + 1})
	b.items = append(b.items, ObjectValue(child))
}

func (b *listBridge) AppendList(v ListDescriber) {
	if v == nil {
		b.items = append(b.items, NullValue())
		return
	}
	if b.depth+1 >= b.capture.maxDepth {
		b.items = append(b.items, NullValue())
		b.capture.work = append(b.capture.work, deferredCapture{
			intoList: b,
			index:    len(b.items) - 1,
			list:     v,
		})
		return
	}
	lb := &listBridge{capture: b.capture, depth: b.depth + 1}
	v.DescribeList(lb)
	b.items = append(b.items, ListValue(lb.items))
}

func bytesValue(v []byte) Value {
	return StringValue(base64.StdEncoding.EncodeToString(v))
}

func timeValue(v time.Time) Value {
	return StringValue(v.Format(time.RFC3339Nano))
}

// errorValue renders an error by its display form. Structured error
// internals are deliberately not walked; they are not stable enough to
// log.
func errorValue(v error) Value {
	if v == nil {
		return NullValue()
	}
	return StringValue(v.Error())
}

func (c *capture) anyValue(v interface{}, depth int) Value {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case Value:
		return x
	case *Object:
		return ObjectValue(x)
	case bool:
		return BoolValue(x)
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint:
		return UintValue(uint64(x))
	case uint8:
		return UintValue(uint64(x))
	case uint16:
		return UintValue(uint64(x))
	case uint32:
		return UintValue(uint64(x))
	case uint64:
		return UintValue(x)
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case string:
		return StringValue(x)
	case []byte:
		return bytesValue(x)
	case time.Time:
		return timeValue(x)
	case time.Duration:
		return StringValue(x.String())
	case error:
		return errorValue(x)
	case json.Number:
		return numberValue(x)
	case ObjectDescriber:
		return c.describedObject(x, depth)
	case ListDescriber:
		return c.describedList(x, depth)
	case map[string]interface{}:
		if depth+1 >= c.maxDepth {
			return ObjectValue(c.parkMap(x))
		}
		return c.mapValue(x, depth)
	case []interface{}:
		if depth+1 >= c.maxDepth {
			return ListValue(c.parkSlice(x))
		}
		items := make([]Value, len(x))
		for i, e := range x {
			items[i] = c.anyValue(e, depth+1)
		}
		return ListValue(items)
	case []string:
		items := make([]Value, len(x))
		for i, e := range x {
			items[i] = StringValue(e)
		}
		return ListValue(items)
	}
	return c.jsonValue(v)
}

func (c *capture) describedObject(d ObjectDescriber, depth int) Value {
	if depth+1 >= c.maxDepth {
		// Parking requires a slot; anyValue callers do not have one,
		// so re-enter through a single-key capture.
		holder := NewObject()
		c.work = append(c.work, deferredCapture{intoObj: holder, key: "v", obj: d})
		c.drain()
		out, _ := holder.Get("v")
		return out
	}
	child := NewObject()
	d.DescribeObject(&objectBridge{capture: c, obj: child, depth: depth + 1})
	return ObjectValue(child)
}

func (c *capture) describedList(d ListDescriber, depth int) Value {
	if depth+1 >= c.maxDepth {
		holder := NewObject()
		c.work = append(c.work, deferredCapture{intoObj: holder, key: "v", list: d})
		c.drain()
		out, _ := holder.Get("v")
		return out
	}
	lb := &listBridge{capture: c, depth: depth + 1}
	d.DescribeList(lb)
	return ListValue(lb.items)
}

// mapValue sorts keys so that conversion of Go maps is deterministic;
// map iteration order would otherwise leak into the output.
func (c *capture) mapValue(m map[string]interface{}, depth int) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := NewObject()
	for _, k := range keys {
		obj.Set(k, c.anyValue(m[k], depth+1))
	}
	return ObjectValue(obj)
}

// parkMap defers a too-deep map to the work list, one entry per key.
// The returned object is filled in place as drain works through the
// list, so the caller can wire it into its Value tree immediately.
func (c *capture) parkMap(m map[string]interface{}) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := NewObject()
	for _, k := range keys {
		obj.Set(k, NullValue())
		c.work = append(c.work, deferredCapture{
			intoObj: obj,
			key:     k,
			any:     m[k],
			isAny:   true,
		})
	}
	return obj
}

// parkSlice is parkMap for slices. The element slots are sized up
// front so drain's write-backs cannot be orphaned by reallocation.
func (c *capture) parkSlice(s []interface{}) []Value {
	lb := &listBridge{capture: c, items: make([]Value, len(s))}
	for i, e := range s {
		c.work = append(c.work, deferredCapture{
			intoList: lb,
			index:    i,
			any:      e,
			isAny:    true,
		})
	}
	return lb.items
}

// jsonValue round-trips a value through encoding/json. The decode side
// uses json.Number so integer precision is preserved or, failing that,
// degraded to a string rather than silently truncated. The decoded
// tree (nil/bool/string/json.Number/slice/map only) feeds back through
// anyValue, which keeps the depth guard in force for it too.
func (c *capture) jsonValue(v interface{}) Value {
	data, err := json.Marshal(v)
	if err != nil {
		return StringValue(fmt.Sprintf("%+v", v))
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		return StringValue(string(data))
	}
	return c.anyValue(decoded, 0)
}

func numberValue(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return IntValue(i)
	}
	if f, err := n.Float64(); err == nil {
		return FloatValue(f)
	}
	return StringValue(n.String())
}
