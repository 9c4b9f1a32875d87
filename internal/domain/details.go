package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which member of the Value union is populated.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
	KindList
	KindMap
)

var (
	// ErrNullValue is returned when decoding a JSON null into a detail value.
	ErrNullValue = errors.New("null detail values are not supported")
	// ErrEmptyValue is returned when encoding a zero Value.
	ErrEmptyValue = errors.New("detail value has no kind")
)

// Value is a detail payload: a string, number, bool, ordered list or nested Details.
type Value struct {
	kind    Kind
	text    string
	number  float64
	boolean bool
	list    []Value
	object  Details
}

// Text wraps a string.
func Text(s string) Value { return Value{kind: KindString, text: s} }

// Number wraps a float.
func Number(f float64) Value { return Value{kind: KindNumber, number: f} }

// Int wraps an integer.
func Int[T ~int | ~int32 | ~int64 | ~uint16 | ~uint32 | ~uint64](n T) Value {
	return Value{kind: KindNumber, number: float64(n)}
}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// List wraps an ordered list of values.
func List(items ...Value) Value {
	out := make([]Value, len(items))
	copy(out, items)
	return Value{kind: KindList, list: out}
}

// Strings wraps a string slice as a list.
func Strings(items []string) Value {
	out := make([]Value, 0, len(items))
	for _, item := range items {
		out = append(out, Text(item))
	}
	return Value{kind: KindList, list: out}
}

// Object wraps nested details.
func Object(d Details) Value { return Value{kind: KindMap, object: d} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsText() (string, bool) { return v.text, v.kind == KindString }

func (v Value) AsNumber() (float64, bool) { return v.number, v.kind == KindNumber }

func (v Value) AsBool() (bool, bool) { return v.boolean, v.kind == KindBool }

// AsList returns a copy of the list members.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]Value, len(v.list))
	copy(out, v.list)
	return out, true
}

func (v Value) AsObject() (Details, bool) { return v.object, v.kind == KindMap }

// String renders the value for console output.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, item.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, 0, v.object.Len())
		for _, f := range v.object.fields {
			parts = append(parts, f.Key+": "+f.Value.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.number)
	case KindBool:
		return json.Marshal(v.boolean)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			raw, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		return v.object.MarshalJSON()
	default:
		return nil, ErrEmptyValue
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	decoded, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// Field is one key/value pair of Details.
type Field struct {
	Key   string
	Value Value
}

// Details is an insertion-ordered mapping of detail keys to values.
// The zero value is an empty mapping ready to use.
type Details struct {
	fields []Field
}

// NewDetails returns an empty mapping.
func NewDetails() Details { return Details{} }

// With returns a copy of d with key set to v. An existing key keeps its position.
func (d Details) With(key string, v Value) Details {
	fields := make([]Field, len(d.fields), len(d.fields)+1)
	copy(fields, d.fields)
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = v
			return Details{fields: fields}
		}
	}
	return Details{fields: append(fields, Field{Key: key, Value: v})}
}

// Get looks up a key.
func (d Details) Get(key string) (Value, bool) {
	for _, f := range d.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

func (d Details) Len() int { return len(d.fields) }

// Fields returns the pairs in insertion order.
func (d Details) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// MarshalJSON encodes the mapping as a JSON object preserving key order.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		raw, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("detail %q: %w", f.Key, err)
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order. null decodes to an empty mapping.
func (d *Details) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Details{}
		return nil
	}
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	obj, ok := v.AsObject()
	if !ok {
		return fmt.Errorf("details must be a JSON object")
	}
	*d = obj
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var obj Details
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, fmt.Errorf("detail %q: %w", key, err)
				}
				obj = obj.With(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Object(obj), nil
		case '[':
			items := make([]Value, 0)
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindList, list: items}, nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return Text(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Value{}, ErrNullValue
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}
