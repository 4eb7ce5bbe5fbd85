package gclutil_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcllog/gcl-go/gclutil"
)

func TestComma(t *testing.T) {
	var b gclutil.JBuilder
	b.Comma()
	assert.Equal(t, "", string(b.B), "no comma on empty buffer")
	b.AppendByte('{')
	b.Comma()
	assert.Equal(t, "{", string(b.B))
	b.AddKey("a")
	b.Comma()
	assert.Equal(t, `{"a":`, string(b.B), "no comma after colon")
	b.AddInt64(1)
	b.Comma()
	assert.Equal(t, `{"a":1,`, string(b.B))
}

func TestAddString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`has "quotes"`, `"has \"quotes\""`},
		{"line\nbreak", `"line\nbreak"`},
		{"tab\tand\rreturn", `"tab\tand\rreturn"`},
		{"nul\x00byte", `"nul\u0000byte"`},
		{"ctrl\x01", `"ctrl\u0001"`},
		{"back\\slash", `"back\\slash"`},
		{"unicode safe ☃", `"unicode safe ☃"`},
	}
	for _, tc := range cases {
		var b gclutil.JBuilder
		b.AddString(tc.in)
		require.Equal(t, tc.want, string(b.B))

		var back string
		require.NoError(t, json.Unmarshal(b.B, &back))
		assert.Equal(t, tc.in, back)
	}
}

func TestAddNumbers(t *testing.T) {
	var b gclutil.JBuilder
	b.AppendByte('[')
	b.AddInt64(-42)
	b.Comma()
	b.AddUint64(42)
	b.Comma()
	b.AddFloat64(1.25)
	b.Comma()
	b.AddBool(true)
	b.AppendByte(']')
	assert.Equal(t, "[-42,42,1.25,true]", string(b.B))
}

func TestFastKeys(t *testing.T) {
	b := gclutil.JBuilder{FastKeys: true}
	b.AppendByte('{')
	b.AddKey("plain_key")
	b.AddInt64(1)
	b.AppendByte('}')
	assert.Equal(t, `{"plain_key":1}`, string(b.B))
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, `"k":`, string(gclutil.BuildKey("k")))
	assert.Equal(t, `"needs \"escape\"":`, string(gclutil.BuildKey(`needs "escape"`)))
}

func TestPrealloc(t *testing.T) {
	var backing [16]byte
	p := gclutil.NewPrealloc(backing[:])
	a := p.Pack([]byte("abcd"))
	b := p.Pack([]byte("efgh"))
	assert.Equal(t, "abcd", string(a))
	assert.Equal(t, "efgh", string(b))
	// too big to pack; returned as-is
	c := p.Pack([]byte("a long key that does not fit"))
	assert.Equal(t, "a long key that does not fit", string(c))
}
