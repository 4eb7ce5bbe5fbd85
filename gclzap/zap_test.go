package gclzap_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gcllog/gcl-go/gclbase"
	"github.com/gcllog/gcl-go/gclzap"
)

func fieldMap(t *testing.T, zapFields ...zapcore.Field) map[string]interface{} {
	t.Helper()
	out := make(map[string]interface{})
	for _, f := range gclzap.Fields(zapFields...) {
		v, ok := f.Any.(gclbase.Value)
		require.True(t, ok, "converted field %q should carry a value", f.Key)
		out[f.Key] = v.Interface()
	}
	return out
}

func TestFieldsScalars(t *testing.T) {
	got := fieldMap(t,
		zap.String("s", "hello"),
		zap.Int("i", -3),
		zap.Uint64("u", 7),
		zap.Float64("f", 1.5),
		zap.Bool("b", true),
	)
	assert.Equal(t, map[string]interface{}{
		"s": "hello",
		"i": int64(-3),
		"u": uint64(7),
		"f": 1.5,
		"b": true,
	}, got)
}

func TestFieldsStrings(t *testing.T) {
	got := fieldMap(t,
		zap.ByteString("bs", []byte("raw")),
		zap.Duration("d", 1500*time.Millisecond),
		zap.Complex128("c", complex(1, 2)),
	)
	assert.Equal(t, "raw", got["bs"])
	assert.Equal(t, "1.5s", got["d"])
	assert.Equal(t, "(1+2i)", got["c"])
}

type zapUser struct {
	Name string
	Age  int
}

func (u zapUser) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", u.Name)
	enc.AddInt("age", u.Age)
	return nil
}

type zapUsers []zapUser

func (uu zapUsers) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, u := range uu {
		if err := enc.AppendObject(u); err != nil {
			return err
		}
	}
	return nil
}

func TestFieldsObjectAndArray(t *testing.T) {
	got := fieldMap(t,
		zap.Object("user", zapUser{Name: "pat", Age: 30}),
		zap.Array("users", zapUsers{{Name: "a", Age: 1}, {Name: "b", Age: 2}}),
		zap.Strings("tags", []string{"x", "y"}),
	)
	assert.Equal(t, map[string]interface{}{"name": "pat", "age": int64(30)}, got["user"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"name": "a", "age": int64(1)},
		map[string]interface{}{"name": "b", "age": int64(2)},
	}, got["users"])
	assert.Equal(t, []interface{}{"x", "y"}, got["tags"])
}

func TestFieldsNamespace(t *testing.T) {
	got := fieldMap(t,
		zap.String("outside", "1"),
		zap.Namespace("inner"),
		zap.String("inside", "2"),
		zap.Int("also", 3),
	)
	assert.Equal(t, "1", got["outside"])
	assert.Equal(t, map[string]interface{}{
		"inside": "2",
		"also":   int64(3),
	}, got["inner"])
	_, leaked := got["inside"]
	assert.False(t, leaked, "namespaced fields stay inside the namespace")
}

func TestFieldsReflected(t *testing.T) {
	type payload struct {
		Kind string `json:"kind"`
	}
	got := fieldMap(t, zap.Any("p", payload{Kind: "x"}))
	assert.Equal(t, map[string]interface{}{"kind": "x"}, got["p"])
}

func TestFieldsPreserveOrder(t *testing.T) {
	fields := gclzap.Fields(
		zap.String("first", "1"),
		zap.String("second", "2"),
		zap.String("third", "3"),
	)
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	assert.Equal(t, []string{"first", "second", "third"}, keys)
}
