package decode

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	values := []any{
		map[string]any{"a": float64(1), "b": []any{"x", true, nil}},
		[]any{float64(1), float64(2), map[string]any{"nested": "yes"}},
		map[string]any{},
		[]any{},
		"plain string",
		float64(42),
		true,
	}

	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}

		if got := Decode(string(raw)); !reflect.DeepEqual(got, v) {
			t.Fatalf("round trip mismatch: want %#v, got %#v", v, got)
		}

		fenced := "```json\n" + string(raw) + "\n```"
		if got := Decode(fenced); !reflect.DeepEqual(got, v) {
			t.Fatalf("fenced mismatch: want %#v, got %#v", v, got)
		}
	}
}

func TestDecodeRecoversEmbeddedJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect any
	}{
		{
			name:   "object wrapped in prose",
			input:  `Sure! {"a":1} Hope that helps.`,
			expect: map[string]any{"a": float64(1)},
		},
		{
			name:   "array wrapped in prose",
			input:  "Here you go: [1, 2, 3]. Enjoy",
			expect: []any{float64(1), float64(2), float64(3)},
		},
		{
			name:   "untagged fence",
			input:  "```\n{\"ok\": true}\n```",
			expect: map[string]any{"ok": true},
		},
		{
			name:   "uppercase tag with surrounding whitespace",
			input:  "  ```JSON\n{\"ok\": true}\n```  ",
			expect: map[string]any{"ok": true},
		},
		{
			name:   "fence followed by prose",
			input:  "```json\n{\"ok\": true}\n```\nLet me know if you need more.",
			expect: map[string]any{"ok": true},
		},
		{
			name:   "tag glued to payload",
			input:  "```json{\"ok\": true}```",
			expect: map[string]any{"ok": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Decode(tt.input); !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %#v, got %#v", tt.expect, got)
			}
		})
	}
}

func TestDecodeFailurePayload(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"no json here",
		"{not json}",
		`{"a":1} and then {"b":2}`,
		"] backwards [",
		"```json\n{broken\n```",
	}

	for _, input := range inputs {
		got := Decode(input)
		if !Failed(got) {
			t.Fatalf("expected failure payload for %q, got %#v", input, got)
		}

		obj := got.(map[string]any)
		if obj["error"] != ErrInvalidJSON {
			t.Fatalf("unexpected error message: %v", obj["error"])
		}
		if obj["raw"] != input {
			t.Fatalf("expected raw to keep original text %q, got %q", input, obj["raw"])
		}

		if _, ok := Object(got); ok {
			t.Fatalf("failure payload must not be reported as an object")
		}
	}
}

func TestFailedIgnoresModelErrorObjects(t *testing.T) {
	t.Parallel()

	modelObject := map[string]any{"error": "rate limited"}
	if Failed(modelObject) {
		t.Fatalf("model supplied error object must not be treated as decode failure")
	}

	if _, ok := Object(modelObject); !ok {
		t.Fatalf("expected object to be returned")
	}
}

func TestStripFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{input: "plain", expect: "plain"},
		{input: "```\nbody\n```", expect: "body"},
		{input: "```json\nbody\n```", expect: "body"},
		{input: "```\n42\n```", expect: "42"},
		{input: "```json body", expect: "body"},
	}

	for _, tt := range tests {
		if got := StripFence(tt.input); got != tt.expect {
			t.Fatalf("StripFence(%q): expected %q, got %q", tt.input, tt.expect, got)
		}
	}
}
