// Package decode turns free-form model output into JSON values.
package decode

import (
	"encoding/json"
	"strings"
	"unicode"
)

const (
	fence = "```"

	// ErrInvalidJSON is the message stored in the failure payload.
	ErrInvalidJSON = "Model did not return valid JSON"
)

// Decode extracts a JSON value from raw model text. It never fails: when no
// JSON can be recovered the result is a failure payload of the form
// {"error": ErrInvalidJSON, "raw": text}. Use Failed to tell them apart.
func Decode(text string) any {
	cleaned := StripFence(text)

	if v, ok := parse(cleaned); ok {
		return v
	}

	if v, ok := parseSpan(cleaned, "{", "}"); ok {
		return v
	}

	if v, ok := parseSpan(cleaned, "[", "]"); ok {
		return v
	}

	return map[string]any{
		"error": ErrInvalidJSON,
		"raw":   text,
	}
}

// StripFence removes a surrounding markdown code fence, including an optional
// language tag after the opening backticks.
func StripFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, fence) {
		return cleaned
	}

	cleaned = strings.TrimPrefix(cleaned, fence)
	if idx := strings.IndexFunc(cleaned, unicode.IsSpace); idx > 0 && isTag(cleaned[:idx]) {
		cleaned = cleaned[idx:]
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, fence)

	return strings.TrimSpace(cleaned)
}

// Failed reports whether v is the failure payload produced by Decode.
func Failed(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok || len(obj) != 2 {
		return false
	}
	msg, ok := obj["error"].(string)
	if !ok || msg != ErrInvalidJSON {
		return false
	}
	_, ok = obj["raw"].(string)
	return ok
}

// Object returns v as a JSON object unless it is a failure payload.
func Object(v any) (map[string]any, bool) {
	if Failed(v) {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

func parseSpan(text, open, closing string) (any, bool) {
	start := strings.Index(text, open)
	end := strings.LastIndex(text, closing)
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	return parse(text[start : end+1])
}

func parse(text string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	return v, true
}

// isTag matches fence info strings such as "json" or "JSON5".
func isTag(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '_' || r == '+'):
		default:
			return false
		}
	}
	return true
}
