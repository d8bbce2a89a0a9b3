package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrMapPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	m := NewAttrMap()
	m.Set("zeta", StringValue("last alphabetically, first inserted"))
	m.Set("alpha", BoolValue(true))
	m.Set("mid", NumberValue(json.Number("42")))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())

	out, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":"last alphabetically, first inserted","alpha":true,"mid":42}`, string(out))

	// Order must be literal in the output, not just semantically equal.
	assert.Equal(t,
		`{"zeta":"last alphabetically, first inserted","alpha":true,"mid":42}`,
		string(out))
}

func TestAttrMapSetOverwritesWithoutReordering(t *testing.T) {
	t.Parallel()

	m := NewAttrMap()
	m.Set("a", StringValue("one"))
	m.Set("b", StringValue("two"))
	m.Set("a", StringValue("replaced"))

	assert.Equal(t, []string{"a", "b"}, m.Keys())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "replaced", v.Str)
}

func TestAttrMapRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "flat mixed kinds",
			input: `{"name":"trunk-1","active":true,"weight":2.5,"retries":3}`,
		},
		{
			name:  "nested object",
			input: `{"outer":"x","config":{"inner":"y","depth":{"leaf":false}}}`,
		},
		{
			name:  "big number stays verbatim",
			input: `{"id":9007199254740993}`,
		},
		{
			name:  "empty object",
			input: `{}`,
		},
		{
			name:  "null survives verbatim",
			input: `{"note":null,"name":"trunk-1"}`,
		},
		{
			name:  "nested null",
			input: `{"config":{"cleared":null}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m AttrMap
			require.NoError(t, json.Unmarshal([]byte(tt.input), &m))

			out, err := json.Marshal(&m)
			require.NoError(t, err)

			// Deterministic: the round trip reproduces the input byte for byte.
			assert.Equal(t, tt.input, string(out))

			// And again: a second round trip changes nothing.
			var m2 AttrMap
			require.NoError(t, json.Unmarshal(out, &m2))

			out2, err := json.Marshal(&m2)
			require.NoError(t, err)
			assert.Equal(t, string(out), string(out2))
		})
	}
}

func TestAttrMapRejectsUnsupportedValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "array value", input: `{"a":[1,2]}`},
		{name: "top-level array", input: `[1,2]`},
		{name: "top-level scalar", input: `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m AttrMap
			assert.Error(t, json.Unmarshal([]byte(tt.input), &m))
		})
	}
}

func TestAttrValueKinds(t *testing.T) {
	t.Parallel()

	var v AttrValue
	require.NoError(t, json.Unmarshal([]byte(`"text"`), &v))
	assert.Equal(t, AttrString, v.Kind)
	assert.Equal(t, "text", v.Str)

	require.NoError(t, json.Unmarshal([]byte(`17`), &v))
	assert.Equal(t, AttrNumber, v.Kind)
	assert.Equal(t, json.Number("17"), v.Num)

	require.NoError(t, json.Unmarshal([]byte(`false`), &v))
	assert.Equal(t, AttrBool, v.Kind)
	assert.False(t, v.Bool)

	require.NoError(t, json.Unmarshal([]byte(`{"k":"v"}`), &v))
	assert.Equal(t, AttrObject, v.Kind)
	require.NotNil(t, v.Object)

	nested, ok := v.Object.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", nested.Str)

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.Equal(t, AttrNull, v.Kind)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestAttrKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", AttrString.String())
	assert.Equal(t, "number", AttrNumber.String())
	assert.Equal(t, "bool", AttrBool.String())
	assert.Equal(t, "object", AttrObject.String())
	assert.Equal(t, "null", AttrNull.String())
}
