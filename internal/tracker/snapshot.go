package tracker

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// snapshot copies v for reporting. Maps, slices, arrays and structs are
// copied one level deep with their composite members replaced by JSON text.
// Scalars pass through.
func snapshot(v any) any {
	rv, ok := indirect(v)
	if !ok {
		return nil
	}
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = leaf(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = leaf(rv.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		decoded, err := decodeJSON(rv.Interface())
		if err != nil {
			return typeName(rv)
		}
		switch d := decoded.(type) {
		case map[string]any:
			for k, member := range d {
				d[k] = leaf(member)
			}
			return d
		default:
			return d
		}
	default:
		return scalar(rv)
	}
}

// leaf flattens composite values to JSON text.
func leaf(v any) any {
	rv, ok := indirect(v)
	if !ok {
		return nil
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		data, err := json.Marshal(rv.Interface())
		if err != nil {
			return typeName(rv)
		}
		return string(data)
	default:
		return scalar(rv)
	}
}

func scalar(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return typeName(rv)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return formatSpecialFloat(f)
		}
		return rv.Interface()
	case reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return snapshot(rv.Elem().Interface())
	default:
		if !rv.CanInterface() {
			return typeName(rv)
		}
		return rv.Interface()
	}
}

func indirect(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, true
}

func decodeJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func typeName(rv reflect.Value) string {
	return rv.Type().String()
}

func formatSpecialFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "Infinity"
	default:
		return "-Infinity"
	}
}
