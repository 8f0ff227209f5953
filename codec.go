package plume

import (
	"encoding/json"
	"time"
)

// isStructured reports whether the type stores parsed JSON values rather
// than scalars.
func isStructured(t FieldType) bool {
	return t == FieldTypeJSON || t == FieldTypeObject || t == FieldTypeArray
}

// DecodeWireValue converts a wire value into its form representation.
// Structured types accept values that arrive either pre-parsed or as JSON
// text; JSON text that fails to parse is kept as the raw string so the
// operator can see and fix it. Decoding never fails.
func DecodeWireValue(t FieldType, wire any) any {
	if !isStructured(t) {
		return wire
	}
	s, ok := wire.(string)
	if !ok {
		return wire
	}
	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return s
	}
	return parsed
}

// CleanValue converts one form value into its submission representation.
// Empty strings and nil collapse to nil so the backend can distinguish
// cleared from untouched. Structured types pass parsed values through and
// parse non-empty strings, falling back to the raw string when parsing
// fails. No array wrapping happens here; that behavior belongs to the
// array widget's live-edit handler only.
func CleanValue(t FieldType, v any) any {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return nil
		}
		if isStructured(t) {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err != nil {
				return s
			}
			return parsed
		}
		return s
	}
	return v
}

// CleanSubmission applies CleanValue across a whole form value map, using
// each field's declared type. Values for names without a matching field
// definition are cleaned with the structured rules disabled.
func CleanSubmission(fields []FieldDefinition, values map[string]any) map[string]any {
	types := make(map[string]FieldType, len(fields))
	for _, f := range fields {
		types[f.Name] = f.Type
	}
	cleaned := make(map[string]any, len(values))
	for name, v := range values {
		cleaned[name] = CleanValue(types[name], v)
	}
	return cleaned
}

// ArrayInput interprets live text typed into an array editor. Empty text is
// an empty array; text that parses to an array is that array; text that
// parses to any other JSON value is wrapped in a single-element array; text
// that does not parse at all is wrapped as a raw string element. The result
// is always an array so the form value never changes shape mid-edit.
func ArrayInput(text string) []any {
	if text == "" {
		return []any{}
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return []any{text}
	}
	if arr, ok := parsed.([]any); ok {
		return arr
	}
	return []any{parsed}
}

// JSONInput interprets live text typed into a JSON editor. Empty text is
// nil; valid JSON is its parsed value; invalid JSON is kept as the raw
// string so editing can continue.
func JSONInput(text string) any {
	if text == "" {
		return nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return text
	}
	return parsed
}

// Layouts accepted from datetime-local style inputs, most specific first.
var dateTimeInputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NormalizeDateTimeInput converts a local datetime input string to a full
// RFC 3339 UTC instant. Empty input stays empty; input that matches no
// accepted layout is returned unchanged and left for validation to reject.
func NormalizeDateTimeInput(text string) string {
	if text == "" {
		return ""
	}
	for _, layout := range dateTimeInputLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts.UTC().Format("2006-01-02T15:04:05.000Z")
		}
	}
	return text
}
