package schema

import (
	"encoding/json"
	"strconv"
	"strings"
)

// numeric reports whether v is a number or a numeric string, returning its
// value. Booleans and everything else are not numeric.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// intEither returns the first present key's value as an int. A present but
// non-numeric value yields the default, as does an absent key.
func intEither(m map[string]any, def int, keys ...string) int {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if f, ok := numeric(v); ok {
				return int(f)
			}
			return def
		}
	}
	return def
}

// floatEither is intEither for float-typed fields.
func floatEither(m map[string]any, def float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if f, ok := numeric(v); ok {
				return f
			}
			return def
		}
	}
	return def
}

// stringEither returns the first present key's value as a string. Numbers
// are formatted; other non-string values yield the default.
func stringEither(m map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		if f, ok := numeric(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return def
	}
	return def
}

func boolField(m map[string]any, key string, def bool) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// stringList coerces a list field to its string elements, falling back to
// the default when the field is absent or not a list.
func stringList(m map[string]any, key string, def []string) []string {
	v, ok := m[key]
	if !ok {
		return append([]string(nil), def...)
	}
	items, ok := v.([]any)
	if !ok {
		return append([]string(nil), def...)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// anyList keeps a list field as-is, defaulting to an empty (never nil) list.
func anyList(m map[string]any, key string) []any {
	if v, ok := m[key]; ok {
		if items, ok := v.([]any); ok {
			return items
		}
	}
	return []any{}
}
