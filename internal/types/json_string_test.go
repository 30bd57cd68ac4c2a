package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStringUnmarshal(t *testing.T) {
	var body struct {
		A JSONString `json:"a"`
		B JSONString `json:"b"`
		C JSONString `json:"c"`
		D JSONString `json:"d"`
		E JSONString `json:"e"`
		F JSONString `json:"f"`
	}
	err := json.Unmarshal([]byte(`{"a":"hello","b":42,"c":null,"d":"","e":["x"],"f":{"k":"v"}}`), &body)
	require.NoError(t, err)

	assert.Equal(t, JSONString{Value: "hello"}, body.A)
	assert.False(t, body.A.Missing())

	assert.True(t, body.B.NotString)
	assert.False(t, body.B.Missing())

	assert.True(t, body.C.Missing())
	assert.True(t, body.D.Missing())
	assert.True(t, body.E.NotString)
	assert.True(t, body.F.NotString)
}

func TestJSONStringAbsentField(t *testing.T) {
	var body struct {
		A JSONString `json:"a"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.True(t, body.A.Missing())
	assert.Equal(t, "", body.A.String())
}

func TestJSONStringEscapes(t *testing.T) {
	var s JSONString
	require.NoError(t, json.Unmarshal([]byte(`"line\nbreak é"`), &s))
	assert.Equal(t, "line\nbreak é", s.String())

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"line\nbreak é"`, string(out))
}

func TestJSONStringFalsyIsMissing(t *testing.T) {
	for _, raw := range []string{`0`, `-0`, `0.0`, `false`} {
		var s JSONString
		require.NoError(t, json.Unmarshal([]byte(raw), &s), raw)
		assert.True(t, s.Missing(), raw)
		assert.False(t, s.NotString, raw)
	}

	for _, raw := range []string{`1`, `true`, `[]`, `{}`} {
		var s JSONString
		require.NoError(t, json.Unmarshal([]byte(raw), &s), raw)
		assert.False(t, s.Missing(), raw)
		assert.True(t, s.NotString, raw)
	}
}
