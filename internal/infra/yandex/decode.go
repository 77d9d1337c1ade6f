package yandex

import (
	"encoding/json"
	"strconv"
	"strings"
)

// lookup walks decoded JSON by object keys (string) and array indexes (int).
func lookup(v any, path ...any) (any, bool) {
	cur := v
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			next, ok := m[key]
			if !ok || next == nil {
				return nil, false
			}
			cur = next
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
	}
	return cur, true
}

func lookupString(v any, path ...any) (string, bool) {
	raw, ok := lookup(v, path...)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// toF64 reads a JSON number or a string that starts with one ("195.5 RUB").
func toF64(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		fields := strings.Fields(t)
		if len(fields) == 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toInt64(v any) int64 {
	f, ok := toF64(v)
	if !ok {
		return 0
	}
	return int64(f)
}
