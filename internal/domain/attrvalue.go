package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AttrKind tags the variant held by an AttrValue.
type AttrKind int

const (
	// AttrString holds a JSON string.
	AttrString AttrKind = iota

	// AttrNumber holds a JSON number, preserved verbatim as json.Number.
	AttrNumber

	// AttrBool holds a JSON boolean.
	AttrBool

	// AttrObject holds a nested attribute map.
	AttrObject

	// AttrNull holds a JSON null. Upstreams emit null for cleared
	// attributes, and the value must survive the round trip verbatim.
	AttrNull
)

// String returns a human-readable name for the kind.
func (k AttrKind) String() string {
	switch k {
	case AttrString:
		return "string"
	case AttrNumber:
		return "number"
	case AttrBool:
		return "bool"
	case AttrObject:
		return "object"
	case AttrNull:
		return "null"
	default:
		return "unknown"
	}
}

// AttrValue is a tagged variant for loosely structured upstream fields such
// as additional_attributes and configuration blocks. Only the field matching
// Kind is meaningful.
type AttrValue struct {
	Kind   AttrKind
	Str    string
	Num    json.Number
	Bool   bool
	Object *AttrMap
}

// StringValue creates a string attribute value.
func StringValue(s string) AttrValue {
	return AttrValue{Kind: AttrString, Str: s}
}

// NumberValue creates a number attribute value.
func NumberValue(n json.Number) AttrValue {
	return AttrValue{Kind: AttrNumber, Num: n}
}

// BoolValue creates a boolean attribute value.
func BoolValue(b bool) AttrValue {
	return AttrValue{Kind: AttrBool, Bool: b}
}

// ObjectValue creates a nested object attribute value.
func ObjectValue(m *AttrMap) AttrValue {
	return AttrValue{Kind: AttrObject, Object: m}
}

// NullValue creates a null attribute value.
func NullValue() AttrValue {
	return AttrValue{Kind: AttrNull}
}

// MarshalJSON implements json.Marshaler.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AttrString:
		return json.Marshal(v.Str)
	case AttrNumber:
		if v.Num == "" {
			return []byte("0"), nil
		}
		return []byte(v.Num), nil
	case AttrBool:
		return []byte(strconv.FormatBool(v.Bool)), nil
	case AttrObject:
		if v.Object == nil {
			return []byte("{}"), nil
		}
		return v.Object.MarshalJSON()
	case AttrNull:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("attribute value has unknown kind %d", int(v.Kind))
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	parsed, err := decodeAttrValue(dec)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// AttrMap is a string-keyed map of tagged variants that preserves insertion
// order, so serialization round-trips deterministically. The zero value is
// ready to use.
type AttrMap struct {
	keys   []string
	values map[string]AttrValue
}

// NewAttrMap creates an empty attribute map.
func NewAttrMap() *AttrMap {
	return &AttrMap{values: make(map[string]AttrValue)}
}

// Set stores a value under key, appending the key on first insertion.
func (m *AttrMap) Set(key string, value AttrValue) {
	if m.values == nil {
		m.values = make(map[string]AttrValue)
	}

	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Get returns the value for key and whether it is present.
func (m *AttrMap) Get(key string) (AttrValue, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *AttrMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)

	return out
}

// Len returns the number of entries.
func (m *AttrMap) Len() int {
	return len(m.keys)
}

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (m *AttrMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("encoding attribute key %q: %w", key, err)
		}

		buf.Write(keyJSON)
		buf.WriteByte(':')

		valJSON, err := m.values[key].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding attribute %q: %w", key, err)
		}

		buf.Write(valJSON)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, recording key order as read.
func (m *AttrMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding attribute map: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attribute map must be a JSON object, got %v", tok)
	}

	parsed, err := decodeAttrObject(dec)
	if err != nil {
		return err
	}

	*m = *parsed

	return nil
}

// decodeAttrObject reads object members until the closing brace.
// The opening brace must already have been consumed.
func decodeAttrObject(dec *json.Decoder) (*AttrMap, error) {
	m := NewAttrMap()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding attribute key: %w", err)
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("attribute key must be a string, got %v", keyTok)
		}

		value, err := decodeAttrValue(dec)
		if err != nil {
			return nil, fmt.Errorf("decoding attribute %q: %w", key, err)
		}

		m.Set(key, value)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding attribute map: %w", err)
	}

	return m, nil
}

// decodeAttrValue reads one value token (or nested object) from the stream.
func decodeAttrValue(dec *json.Decoder) (AttrValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return AttrValue{}, err
	}

	switch t := tok.(type) {
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	case json.Delim:
		if t == '{' {
			obj, err := decodeAttrObject(dec)
			if err != nil {
				return AttrValue{}, err
			}

			return ObjectValue(obj), nil
		}

		return AttrValue{}, fmt.Errorf("unsupported attribute value delimiter %q", t.String())
	case nil:
		return NullValue(), nil
	default:
		return AttrValue{}, fmt.Errorf("unsupported attribute value type %T", tok)
	}
}
