package interop

import (
	"fmt"
	"reflect"

	"github.com/hasbyte1/go-plex/plex"
)

// Numeric-array conversion for handing collections to math and plotting
// code that expects plain float slices.

// Floats converts a flat collection to a float64 slice. Every element must
// be numeric; nested collections are an error (use [Matrix]).
func Floats(p *plex.Plex) ([]float64, error) {
	out := make([]float64, p.Len())
	for i, el := range p.All() {
		f, err := asFloat(el)
		if err != nil {
			return nil, fmt.Errorf("interop: element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// Matrix converts a once-nested collection to a float64 matrix, one row per
// sub-collection. Rows may differ in length.
func Matrix(p *plex.Plex) ([][]float64, error) {
	out := make([][]float64, p.Len())
	for i, el := range p.All() {
		sub, ok := el.(*plex.Plex)
		if !ok {
			return nil, fmt.Errorf("interop: element %d is %T, not a row", i, el)
		}
		row, err := Floats(sub)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

// FromFloats builds a flat collection from a float64 slice.
func FromFloats(vals []float64) *plex.Plex {
	items := make([]any, len(vals))
	for i, v := range vals {
		items[i] = v
	}
	return plex.From(items)
}

// FromMatrix builds a once-nested collection from a float64 matrix.
func FromMatrix(rows [][]float64) *plex.Plex {
	items := make([]any, len(rows))
	for i, row := range rows {
		items[i] = FromFloats(row)
	}
	return plex.From(items)
}

func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return 0, fmt.Errorf("not numeric: %T", v)
}
