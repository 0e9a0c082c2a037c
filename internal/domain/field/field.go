// Package field reads values out of nested snapshot objects by path.
package field

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Split breaks a path such as "agents/consumers/coordinates" or
// "agents.consumers.coordinates" into its segments. Empty segments are dropped.
func Split(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '.'
	})
}

// Lookup follows path through root and returns the value it reaches.
// Maps are indexed by key and slices by decimal index.
func Lookup(root any, path string) (any, error) {
	segments := Split(path)
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty path %q", ErrLookup, path)
	}
	return LookupSegments(root, segments)
}

// LookupSegments is Lookup over pre-split segments.
func LookupSegments(root any, segments []string) (any, error) {
	cur := root
	for i, seg := range segments {
		next, err := step(cur, seg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s at %q: %v", ErrLookup, strings.Join(segments[:i+1], "/"), seg, err)
		}
		cur = next
	}
	return cur, nil
}

func step(cur any, seg string) (any, error) {
	switch node := cur.(type) {
	case map[string]any:
		v, ok := node[seg]
		if !ok {
			return nil, errMissingKey
		}
		return v, nil
	case nil:
		return nil, errNotTraversable
	}

	rv := reflect.ValueOf(cur)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errNotTraversable
		}
		v := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, errMissingKey
		}
		return v.Interface(), nil
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return nil, errNotTraversable
		}
		if idx < 0 || idx >= rv.Len() {
			return nil, errOutOfRange
		}
		return rv.Index(idx).Interface(), nil
	default:
		return nil, errNotTraversable
	}
}

// Float coerces a scalar of any Go numeric kind to float64.
func Float(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %T to float64", ErrNotNumeric, v)
	}
}

// Floats flattens v, a scalar or any nesting of slices and arrays of numbers,
// into a single row-major []float64. A scalar becomes a one-element slice.
func Floats(v any) ([]float64, error) {
	out := make([]float64, 0)
	if err := flatten(reflect.ValueOf(v), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(rv reflect.Value, out *[]float64) error {
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return fmt.Errorf("%w: nil value", ErrNotNumeric)
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := flatten(rv.Index(i), out); err != nil {
				return err
			}
		}
		return nil
	default:
		f, err := Float(rv.Interface())
		if err != nil {
			return err
		}
		*out = append(*out, f)
		return nil
	}
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
