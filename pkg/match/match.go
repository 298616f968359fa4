// Package match implements the structural comparison used by test expectations.
package match

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Kind classifies a value into the comparison taxonomy. Every value falls
// into exactly one category; all numeric Go types share the number category.
type Kind string

const (
	// KindNull covers nil and nil-valued pointers/interfaces.
	KindNull Kind = "null"
	// KindBool covers booleans.
	KindBool Kind = "bool"
	// KindNumber covers every integer and float type.
	KindNumber Kind = "number"
	// KindString covers strings.
	KindString Kind = "string"
	// KindArray covers slices and arrays.
	KindArray Kind = "array"
	// KindObject covers string-keyed maps.
	KindObject Kind = "object"
	// KindOther covers values outside the taxonomy (structs, funcs, channels).
	KindOther Kind = "other"
)

// KindOf returns the comparison category of v.
func KindOf(v interface{}) Kind {
	if v == nil {
		return KindNull
	}

	switch v.(type) {
	case bool:
		return KindBool
	case string:
		return KindString
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindNumber
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return KindNull
		}

		return KindArray
	case reflect.Array:
		return KindArray
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return KindOther
		}

		if rv.IsNil() {
			return KindNull
		}

		return KindObject
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}

		return KindOf(rv.Elem().Interface())
	default:
		return KindOther
	}
}

// Matches reports whether actual structurally equals expected.
//
// ignorePaths lists dotted key chains (rooted at the comparison root, e.g.
// "x.y.z") whose recursive comparison is skipped during object traversal.
// Paths match by exact string equality only.
//
// Object comparison is gated on own-key COUNT, not key set, and walks
// expected's keys only. The comparison is therefore directionally
// asymmetric: Matches(a, b) is not guaranteed to equal Matches(b, a).
// Callers rely on this, so it is preserved rather than corrected.
func Matches(expected, actual interface{}, ignorePaths []string) bool {
	return matchValue(expected, actual, ignorePaths, "")
}

func matchValue(expected, actual interface{}, ignorePaths []string, prefix string) bool {
	ek := KindOf(expected)
	if ek != KindOf(actual) {
		return false
	}

	switch ek {
	case KindNull:
		return true
	case KindNumber:
		return toFloat(expected) == toFloat(actual)
	case KindBool, KindString:
		return expected == actual
	case KindArray:
		return matchArray(expected, actual, ignorePaths, prefix)
	case KindObject:
		return matchObject(expected, actual, ignorePaths, prefix)
	default:
		return reflect.DeepEqual(expected, actual)
	}
}

// matchArray compares element-wise in index order with the full algorithm.
// Differing lengths fail immediately. The path prefix is not extended across
// indices; ignore paths address object keys only.
func matchArray(expected, actual interface{}, ignorePaths []string, prefix string) bool {
	ev, av := reflect.ValueOf(expected), reflect.ValueOf(actual)

	if ev.Len() != av.Len() {
		return false
	}

	for i := 0; i < ev.Len(); i++ {
		if !matchValue(ev.Index(i).Interface(), av.Index(i).Interface(), ignorePaths, prefix) {
			return false
		}
	}

	return true
}

// matchObject compares two string-keyed maps. The key-count gate passes two
// maps with the same number of differently named keys; a key present in
// expected but absent in actual then compares against null and fails there.
// Children recurse only when both sides are objects themselves; any other
// pairing falls back to a strict identity check, under which two distinct
// composite values are never equal.
func matchObject(expected, actual interface{}, ignorePaths []string, prefix string) bool {
	eobj, aobj := toObject(expected), toObject(actual)

	if len(eobj) != len(aobj) {
		return false
	}

	for key, ev := range eobj {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if ignored(ignorePaths, path) {
			continue
		}

		av := aobj[key]

		if KindOf(ev) == KindObject && KindOf(av) == KindObject {
			if !matchObject(ev, av, ignorePaths, path) {
				return false
			}

			continue
		}

		if !strictEqual(ev, av) {
			return false
		}
	}

	return true
}

// strictEqual is the non-recursive fallback for object children. Primitives
// compare by value, nulls are equal to each other, and composite values
// (arrays, nested non-object pairings) never compare equal here.
func strictEqual(a, b interface{}) bool {
	ka := KindOf(a)
	if ka != KindOf(b) {
		return false
	}

	switch ka {
	case KindNull:
		return true
	case KindNumber:
		return toFloat(a) == toFloat(b)
	case KindBool, KindString:
		return a == b
	default:
		return false
	}
}

func ignored(ignorePaths []string, path string) bool {
	for _, p := range ignorePaths {
		if p == path {
			return true
		}
	}

	return false
}

// toObject flattens any string-keyed map into map[string]interface{}.
func toObject(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}

	rv := reflect.ValueOf(v)
	out := make(map[string]interface{}, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out
}

// toFloat normalizes any numeric value to float64 so that cross-type numeric
// comparisons behave as a single number category.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return 0
	}
}

// Format renders a value for failure messages. Arrays and objects render as
// JSON; everything else goes through the default verb.
func Format(v interface{}) string {
	switch KindOf(v) {
	case KindArray, KindObject:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	case KindNull:
		return "null"
	}

	return fmt.Sprintf("%v", v)
}
