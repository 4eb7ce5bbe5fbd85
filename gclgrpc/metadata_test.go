package gclgrpc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	"github.com/gcllog/gcl-go/gclgrpc"
)

func TestParseHeader(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		ok      bool
		trace   string
		span    string
		sampled bool
	}{
		{
			name:    "full header sampled",
			header:  "105445aa7843bc8bf206b12000100000/1;o=1",
			ok:      true,
			trace:   "105445aa7843bc8bf206b12000100000",
			span:    "0000000000000001",
			sampled: true,
		},
		{
			name:   "not sampled",
			header: "105445aa7843bc8bf206b12000100000/255;o=0",
			ok:     true,
			trace:  "105445aa7843bc8bf206b12000100000",
			span:   "00000000000000ff",
		},
		{
			name:   "no options",
			header: "105445aa7843bc8bf206b12000100000/18446744073709551615",
			ok:     true,
			trace:  "105445aa7843bc8bf206b12000100000",
			span:   "ffffffffffffffff",
		},
		{
			name:   "trace id only",
			header: "105445aa7843bc8bf206b12000100000",
			ok:     true,
			trace:  "105445aa7843bc8bf206b12000100000",
			span:   "0000000000000000",
		},
		{
			name:    "bad span id keeps trace",
			header:  "105445aa7843bc8bf206b12000100000/notanumber;o=1",
			ok:      true,
			trace:   "105445aa7843bc8bf206b12000100000",
			span:    "0000000000000000",
			sampled: true,
		},
		{
			name:   "malformed trace id",
			header: "zzz/1;o=1",
		},
		{
			name:   "zero trace id",
			header: "00000000000000000000000000000000/1;o=1",
		},
		{
			name: "empty",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parts, ok := gclgrpc.ParseHeader(tc.header)
			if !tc.ok {
				assert.False(t, ok)
				assert.True(t, parts.IsZero())
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.trace, parts.TraceID.String())
			assert.Equal(t, tc.span, parts.SpanID.String())
			assert.Equal(t, tc.sampled, parts.Sampled)
		})
	}
}

func TestFromIncomingContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		gclgrpc.TraceContextHeader, "105445aa7843bc8bf206b12000100000/7;o=1",
	))
	parts, ok := gclgrpc.FromIncomingContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "105445aa7843bc8bf206b12000100000", parts.TraceID.String())
	assert.Equal(t, "0000000000000007", parts.SpanID.String())
	assert.True(t, parts.Sampled)
}

func TestFromIncomingContextMissing(t *testing.T) {
	_, ok := gclgrpc.FromIncomingContext(context.Background())
	assert.False(t, ok)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})
	_, ok = gclgrpc.FromIncomingContext(ctx)
	assert.False(t, ok)
}
