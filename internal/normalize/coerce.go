package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// asFloat accepts JSON numbers and numeric strings such as "$85,000" or "70%".
func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case int:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, val)
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// maxExactInt bounds conversions so that huge model numbers saturate instead of overflowing.
const maxExactInt = 1 << 53

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	f = math.Max(-maxExactInt, math.Min(maxExactInt, math.Round(f)))
	return int(f), true
}

// percent clamps v into 0..100; non-numeric input yields 0.
func percent(v any) int {
	n, ok := asInt(v)
	if !ok {
		return 0
	}
	return max(0, min(100, n))
}

func nonNegative(v any) int {
	n, _ := asInt(v)
	return max(0, n)
}

// asList wraps a single value into a list; nil becomes an empty list.
func asList(v any) []any {
	switch val := v.(type) {
	case nil:
		return []any{}
	case []any:
		return val
	case []string:
		out := make([]any, 0, len(val))
		for _, s := range val {
			out = append(out, s)
		}
		return out
	default:
		return []any{v}
	}
}

func asStrings(v any) []string {
	items := asList(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asInts(v any) []int {
	items := asList(v)
	out := make([]int, 0, len(items))
	for _, item := range items {
		if n, ok := asInt(item); ok {
			out = append(out, n)
		}
	}
	return out
}

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
