package reducer

import (
	"fmt"
	"reflect"
)

// asRows turns a typed slice or array (e.g. [][]float64, [][2]float64) into
// its rows so every position layout goes through the same conversion.
func asRows(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: positions are %T, want a list of pairs", ErrMalformedField, v)
	}
	rows := make([]any, rv.Len())
	for i := range rows {
		rows[i] = rv.Index(i).Interface()
	}
	return rows, nil
}
