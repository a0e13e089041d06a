// Package jsonpath provides null-safe nested lookups over parsed JSON documents.
package jsonpath

import (
	"github.com/tidwall/gjson"
)

// Value lists the Go types a JSON leaf can be read as.
type Value interface {
	float64 | int64 | string | bool | []gjson.Result
}

// Lookup walks root key by key. It reports false as soon as an intermediate
// value is not a JSON object or lacks the next key. Keys are matched
// literally; no gjson path syntax is interpreted.
func Lookup(root gjson.Result, keys ...string) (gjson.Result, bool) {
	cur := root
	if !cur.Exists() {
		return gjson.Result{}, false
	}
	for _, key := range keys {
		if !cur.IsObject() {
			return gjson.Result{}, false
		}
		next, ok := cur.Map()[key]
		if !ok {
			return gjson.Result{}, false
		}
		cur = next
	}
	return cur, true
}

// Get looks up keys under root and converts the leaf to T. A missing path,
// a JSON null, or a leaf of the wrong JSON type all report false.
func Get[T Value](root gjson.Result, keys ...string) (T, bool) {
	var zero T
	r, ok := Lookup(root, keys...)
	if !ok {
		return zero, false
	}
	v, ok := convert[T](r)
	if !ok {
		return zero, false
	}
	return v, true
}

// GetOr is Get with a fallback for the absent case.
func GetOr[T Value](root gjson.Result, def T, keys ...string) T {
	if v, ok := Get[T](root, keys...); ok {
		return v
	}
	return def
}

// GetPtr is Get returning nil for the absent case.
func GetPtr[T Value](root gjson.Result, keys ...string) *T {
	v, ok := Get[T](root, keys...)
	if !ok {
		return nil
	}
	return &v
}

func convert[T Value](r gjson.Result) (T, bool) {
	var out T
	switch p := any(&out).(type) {
	case *float64:
		if r.Type != gjson.Number {
			return out, false
		}
		*p = r.Num
	case *int64:
		if r.Type != gjson.Number {
			return out, false
		}
		*p = r.Int()
	case *string:
		if r.Type != gjson.String {
			return out, false
		}
		*p = r.Str
	case *bool:
		if r.Type != gjson.True && r.Type != gjson.False {
			return out, false
		}
		*p = r.Bool()
	case *[]gjson.Result:
		if !r.IsArray() {
			return out, false
		}
		*p = r.Array()
	default:
		return out, false
	}
	return out, true
}
