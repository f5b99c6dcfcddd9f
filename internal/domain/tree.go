package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Tree is the canonical in-memory representation of a device configuration:
// an ordered mapping of string keys to values. A value is a scalar
// (string, bool, int64, float64, nil), a nested *Tree, or a []any list
// whose elements are scalars or *Tree entries.
//
// Key order is preserved from the source document so that diff traversal
// and report output stay deterministic.
type Tree struct {
	keys   []string
	values map[string]any
}

// NewTree creates an empty configuration tree.
func NewTree() *Tree {
	return &Tree{values: make(map[string]any)}
}

// Set stores a value under key, appending the key to the order on first use.
func (t *Tree) Set(key string, value any) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Len returns the number of keys.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Equal compares two values structurally. Trees compare by key set and
// per-key value regardless of key order; lists compare element-wise in
// order; numeric scalars compare by value so that an int64 from one
// decoder equals the float64 another decoder produced for the same number.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case *Tree:
		bv, ok := b.(*Tree)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, key := range av.keys {
			bval, ok := bv.Get(key)
			if !ok || !Equal(av.values[key], bval) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return scalarEqual(a, b)
	}
}

func scalarEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// MarshalJSON renders the tree as a JSON object with keys in insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(t.values[key])
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the tree, preserving the key
// order of the document. Numbers decode to int64 when integral, float64
// otherwise.
func (t *Tree) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	t.keys = nil
	t.values = make(map[string]any)
	return decodeObjectInto(dec, t)
}

func decodeObjectInto(dec *json.Decoder, t *Tree) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("decode key %q: %w", key, err)
		}
		t.Set(key, value)
	}
	// consume closing brace
	_, err := dec.Token()
	return err
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			child := NewTree()
			if err := decodeObjectInto(dec, child); err != nil {
				return nil, err
			}
			return child, nil
		case '[':
			var list []any
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, elem)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if list == nil {
				list = []any{}
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return i, nil
		}
		return v.Float64()
	default:
		return v, nil
	}
}
