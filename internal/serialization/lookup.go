package serialization

import (
	"encoding/json"
	"strconv"
)

// The lookups below never fail: a missing key, a null or a value of the wrong
// type yields the neutral value for the requested type.

func String(obj Object, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// LookupString reports whether key holds a string.
func LookupString(obj Object, key string) (string, bool) {
	s, ok := obj[key].(string)
	return s, ok
}

func Bool(obj Object, key string) bool {
	switch v := obj[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func Int64(obj Object, key string) int64 {
	switch v := obj[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		i, _ := strconv.ParseInt(v, 10, 64)
		return i
	}
	return 0
}

// Child returns the nested object under key, or nil. Lookups on a nil Object
// are safe.
func Child(obj Object, key string) Object {
	if c, ok := obj[key].(map[string]any); ok {
		return c
	}
	return nil
}

// Has reports whether key is present, even when it holds null.
func Has(obj Object, key string) bool {
	_, ok := obj[key]
	return ok
}

func Items(obj Object, key string) Array {
	if a, ok := obj[key].([]any); ok {
		return a
	}
	return nil
}

// ObjectAt returns the i-th element of arr if it is an object.
func ObjectAt(arr Array, i int) Object {
	if i < 0 || i >= len(arr) {
		return nil
	}
	if o, ok := arr[i].(map[string]any); ok {
		return o
	}
	return nil
}
