package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

var (
	errNotFinite        = errors.New("tracker: value not finite")
	errUnsupportedValue = errors.New("tracker: unsupported value")
)

// Vars sets user variables. Vars(key, value) sets one; Vars(object) with no
// value flattens a string-keyed map (or struct) into one call per entry, in
// key order.
func (c *Client) Vars(k any, v ...any) {
	if !c.ready("vars") {
		return
	}
	c.vars(k, v...)
}

func (c *Client) vars(k any, v ...any) {
	if len(v) == 0 {
		entries, ok := objectEntries(k)
		if !ok {
			c.logger.Warn().Msgf("vars wrong first param %v. Should be an object.", k)
			return
		}
		keys := make([]string, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			c.vars(key, entries[key])
		}
		return
	}

	key, ok := k.(string)
	if !ok {
		c.logger.Warn().Msgf("vars wrong first param %v. Should be a string.", k)
		return
	}
	value, err := userVarValue(v[0])
	switch {
	case errors.Is(err, errNotFinite):
		c.logger.Warn().Msgf("vars wrong second param %v. Should be finite.", v[0])
		return
	case err != nil:
		c.logger.Warn().Msgf("vars wrong second param %v.", v[0])
		return
	}
	c.bundle.Messages.SetUserVar(key, value)
}

// objectEntries returns the own entries of a plain object: a map with string
// keys, or a struct viewed through its JSON encoding.
func objectEntries(v any) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		data, err := json.Marshal(rv.Interface())
		if err != nil {
			return nil, false
		}
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.UseNumber()
		var out map[string]any
		if err := dec.Decode(&out); err != nil {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}

func userVarValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return "", errNotFinite
		}
		return formatNumber(f, 64), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", errNotFinite
		}
		return formatNumber(f, rv.Type().Bits()), nil
	default:
		return "", fmt.Errorf("%w: %T", errUnsupportedValue, v)
	}
}

// formatNumber renders f like Number.prototype.toString: plain decimals in
// [1e-6, 1e21), exponent notation outside that range.
func formatNumber(f float64, bits int) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	s := strconv.FormatFloat(f, 'e', -1, bits)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
