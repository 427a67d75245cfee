package snapshot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{"b": 1, "a": "x", "c": true})
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":1,"c":true}`, string(data))
}

func TestMarshalCanonical_UTF16KeyOrder(t *testing.T) {
	// U+1F600 is a surrogate pair (0xD83D...) and sorts before U+FF21 in
	// UTF-16, after it in UTF-8.
	data, err := MarshalCanonical(map[string]any{"Ａ": 1, "\U0001F600": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"Ａ\":1}", string(data))
}

func TestMarshalCanonical_NoHTMLEscape(t *testing.T) {
	data, err := MarshalCanonical("<a & b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a & b>"`, string(data))
}

func TestMarshalCanonical_NFC(t *testing.T) {
	data, err := MarshalCanonical("Cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"Caf\u00e9\"", string(data))
}

func TestMarshalCanonical_Floats(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{0.5, "0.5"},
		{-2.25, "-2.25"},
		{0.7071067811865476, "0.707106781"},
		{1e-12, "0"},
		{2e11, "200000000000"},
	}
	for _, tt := range tests {
		data, err := MarshalCanonical(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data), "input %v", tt.in)
	}
}

func TestMarshalCanonical_Rejects(t *testing.T) {
	for _, v := range []any{nil, math.NaN(), math.Inf(1), struct{}{}, []any{nil}} {
		_, err := MarshalCanonical(v)
		assert.Error(t, err, "value %#v", v)
	}
}

func TestMarshalCanonical_Nested(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"list":  []any{int64(3), []float64{1, 0.25}, []string{"x"}},
		"inner": map[string]any{"z": false},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"inner":{"z":false},"list":[3,[1,0.25],["x"]]}`, string(data))
}
