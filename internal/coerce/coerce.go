// Package coerce extracts numbers and text from loosely typed JSON trees
// (the map[string]any / []any shapes produced by encoding/json).
package coerce

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// LocaleKeys are checked, in order, before any other key of a locale object.
var LocaleKeys = []string{"default", "en", "en_US", "en-US", "en_GB", "eng", "fr", "es"}

// Object returns v as a JSON object, or nil.
func Object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Array returns v as a JSON array, or nil.
func Array(v any) []any {
	a, _ := v.([]any)
	return a
}

// Path walks a dotted path through objects and arrays. Numeric segments index arrays.
func Path(v any, path string) any {
	if path == "" {
		return v
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[seg]
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil
			}
			cur = node[idx]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Number converts a JSON node into a finite float64.
// Strings are parsed, objects are unwrapped through value-like keys and
// single-element arrays through their element.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	case map[string]any:
		for _, key := range []string{"value", "displayValue", "total", "default"} {
			if inner, ok := n[key]; ok {
				if f, ok := Number(inner); ok {
					return f, true
				}
			}
		}
	case []any:
		if len(n) == 1 {
			return Number(n[0])
		}
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int is Number truncated to an int.
func Int(v any) (int, bool) {
	f, ok := Number(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Text converts a JSON node into a trimmed string. Numbers are formatted without
// trailing zeros, locale objects resolve through LocaleText.
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if _, ok := finite(t); !ok {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		return LocaleText(t)
	case []any:
		for _, item := range t {
			if s := Text(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// LocaleText returns the first non-empty string of a locale-keyed object, preferring
// LocaleKeys and then scanning the remaining values depth first in key order.
func LocaleText(v any) string {
	obj := Object(v)
	if obj == nil {
		return Text(v)
	}
	for _, key := range LocaleKeys {
		if s, ok := obj[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch inner := obj[k].(type) {
		case string:
			if s := strings.TrimSpace(inner); s != "" {
				return s
			}
		case map[string]any, []any:
			if s := Text(inner); s != "" {
				return s
			}
		}
	}
	return ""
}

// FirstText returns the first non-empty Text among the given paths.
func FirstText(v any, paths ...string) string {
	for _, p := range paths {
		if s := Text(Path(v, p)); s != "" {
			return s
		}
	}
	return ""
}

// FirstNumber returns the first path that resolves to a finite number, or nil.
// Absence is nil rather than zero; zero is an observed value.
func FirstNumber(v any, paths ...string) *float64 {
	for _, p := range paths {
		if f, ok := Number(Path(v, p)); ok {
			return &f
		}
	}
	return nil
}

// FirstInt is FirstNumber truncated to an int.
func FirstInt(v any, paths ...string) *int {
	f := FirstNumber(v, paths...)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}
