package tree

import (
	"encoding/json"
	"sort"
)

// Value is a read-only handle over one node of a decoded JSON document.
// Navigation never fails: any access that does not line up with the
// document's actual shape yields the absent Value, and navigating from an
// absent Value stays absent. Callers therefore chain freely and check the
// outcome once, at the leaf.
//
// The zero Value is absent.
type Value struct {
	raw     any
	present bool
}

// Kind enumerates the JSON value kinds a Value may hold.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

// FromAny wraps an already-decoded JSON value (maps, slices, scalars) as a
// Value. Unknown Go types are treated as absent rather than panicking.
func FromAny(v any) Value {
	switch v.(type) {
	case nil, map[string]any, []any, string, bool, float64, int, int64, json.Number:
		return Value{raw: v, present: true}
	default:
		return Value{}
	}
}

// Kind reports the kind of the underlying value.
func (v Value) Kind() Kind {
	if !v.present {
		return KindAbsent
	}
	switch v.raw.(type) {
	case nil:
		return KindNull
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case bool:
		return KindBool
	default:
		return KindNumber
	}
}

// Exists reports whether the value is present in the document. A JSON null
// exists; a failed navigation does not.
func (v Value) Exists() bool { return v.present }

// Key descends into an object field. Non-objects and missing keys yield the
// absent Value.
func (v Value) Key(name string) Value {
	obj, ok := v.raw.(map[string]any)
	if !v.present || !ok {
		return Value{}
	}
	child, ok := obj[name]
	if !ok {
		return Value{}
	}
	return Value{raw: child, present: true}
}

// Index descends into an array element. Out-of-range indexes and non-arrays
// yield the absent Value. Negative indexes count from the end, so Index(-1)
// is the last element.
func (v Value) Index(i int) Value {
	arr, ok := v.raw.([]any)
	if !v.present || !ok {
		return Value{}
	}
	if i < 0 {
		i += len(arr)
	}
	if i < 0 || i >= len(arr) {
		return Value{}
	}
	return Value{raw: arr[i], present: true}
}

// At chains Key and Index steps in one call. Each step must be a string
// (object key) or an int (array index); any other step type yields absent.
func (v Value) At(path ...any) Value {
	cur := v
	for _, step := range path {
		switch s := step.(type) {
		case string:
			cur = cur.Key(s)
		case int:
			cur = cur.Index(s)
		default:
			return Value{}
		}
		if !cur.present {
			return Value{}
		}
	}
	return cur
}

// Str returns the string value, if this node is a string.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	if !v.present || !ok {
		return "", false
	}
	return s, true
}

// Float returns the numeric value as a float64. It accepts float64, integer
// and json.Number representations, since documents arrive through both the
// JSON and YAML ingestion paths.
func (v Value) Float() (float64, bool) {
	if !v.present {
		return 0, false
	}
	switch n := v.raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Int returns the numeric value as an int64, truncating floats. Strings are
// not coerced; numeric-looking strings go through Str at the call site.
func (v Value) Int() (int64, bool) {
	if !v.present {
		return 0, false
	}
	switch n := v.raw.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return i, true
	}
	return 0, false
}

// Bool returns the boolean value, if this node is a bool.
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	if !v.present || !ok {
		return false, false
	}
	return b, true
}

// Array returns the elements of an array node, or nil for anything else.
func (v Value) Array() []Value {
	arr, ok := v.raw.([]any)
	if !v.present || !ok {
		return nil
	}
	out := make([]Value, len(arr))
	for i, e := range arr {
		out[i] = Value{raw: e, present: true}
	}
	return out
}

// Obj returns the fields of an object node as Values. Non-objects and absent
// Values return false.
func (v Value) Obj() (map[string]Value, bool) {
	obj, ok := v.raw.(map[string]any)
	if !v.present || !ok {
		return nil, false
	}
	out := make(map[string]Value, len(obj))
	for k, e := range obj {
		out[k] = Value{raw: e, present: true}
	}
	return out, true
}

// Len returns the element count of an array node, zero for anything else.
func (v Value) Len() int {
	arr, ok := v.raw.([]any)
	if !v.present || !ok {
		return 0
	}
	return len(arr)
}

// Keys returns the sorted field names of an object node. Sorting keeps
// diagnostics deterministic across parses of the same document.
func (v Value) Keys() []string {
	obj, ok := v.raw.(map[string]any)
	if !v.present || !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
