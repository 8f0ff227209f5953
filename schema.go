package plume

import (
	"encoding/json"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
)

// EntrySchema is the compiled validation and default-value plan for one
// collection's editable fields. Compile once per form session; the schema
// itself is immutable and safe for concurrent reads.
type EntrySchema struct {
	registry   *Registry
	fields     []FieldDefinition
	validators map[string]*fieldValidator
}

type fieldValidator struct {
	field       FieldDefinition
	config      TypeConfig
	constraints *jsonschema.Resolved
}

// Compile builds an EntrySchema from a collection's field definitions.
// Input may arrive unsorted and unfiltered; hidden and read-only fields are
// dropped and the rest ordered by SortOrder. Unknown field types compile to
// the permissive text validator. Compilation never fails: constraint maps
// that cannot be resolved into a JSON schema are skipped for that field.
func Compile(registry *Registry, fields []FieldDefinition) *EntrySchema {
	editable := make([]FieldDefinition, 0, len(fields))
	for _, f := range fields {
		if f.Editable() {
			editable = append(editable, f)
		}
	}
	// Stable insertion sort keeps definition order for equal SortOrder.
	for i := 1; i < len(editable); i++ {
		for j := i; j > 0 && editable[j].SortOrder < editable[j-1].SortOrder; j-- {
			editable[j], editable[j-1] = editable[j-1], editable[j]
		}
	}

	s := &EntrySchema{
		registry:   registry,
		fields:     editable,
		validators: make(map[string]*fieldValidator, len(editable)),
	}
	for _, f := range editable {
		cfg := registry.Config(f.Type)
		s.validators[f.Name] = &fieldValidator{
			field:       f,
			config:      cfg,
			constraints: compileConstraints(f, cfg),
		}
	}
	return s
}

// compileConstraints turns the field's validation map, filtered by the
// type's declared options, into a resolved JSON schema. Returns nil when
// the field declares no applicable constraints or the schema cannot be
// resolved.
func compileConstraints(f FieldDefinition, cfg TypeConfig) *jsonschema.Resolved {
	if len(f.Validation) == 0 || !cfg.HasValidation {
		return nil
	}

	opts := cfg.ValidationOptions
	schemaMap := map[string]any{}
	switch f.Type {
	case FieldTypeNumber:
		schemaMap["type"] = "number"
		if opts.Min {
			if v, ok := f.Validation["min"]; ok {
				schemaMap["minimum"] = v
			}
		}
		if opts.Max {
			if v, ok := f.Validation["max"]; ok {
				schemaMap["maximum"] = v
			}
		}
	default:
		schemaMap["type"] = "string"
		if opts.MinLength {
			if v, ok := f.Validation["minLength"]; ok {
				schemaMap["minLength"] = v
			}
		}
		if opts.MaxLength {
			if v, ok := f.Validation["maxLength"]; ok {
				schemaMap["maxLength"] = v
			}
		}
		if opts.Pattern {
			if v, ok := f.Validation["pattern"]; ok {
				schemaMap["pattern"] = v
			}
		}
	}
	if len(schemaMap) < 2 {
		return nil
	}

	var schema jsonschema.Schema
	schemaBytes, err := json.Marshal(schemaMap)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(schemaBytes, &schema); err != nil {
		return nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil
	}
	return resolved
}

// Fields returns the editable fields in render order.
func (s *EntrySchema) Fields() []FieldDefinition {
	out := make([]FieldDefinition, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up an editable field definition by name.
func (s *EntrySchema) Field(name string) (FieldDefinition, bool) {
	v, ok := s.validators[name]
	if !ok {
		return FieldDefinition{}, false
	}
	return v.field, true
}

// Validate checks a full value map and returns every per-field failure.
// Value map keys without a matching editable field are ignored.
func (s *EntrySchema) Validate(values map[string]any) *ValidationErrors {
	errs := NewValidationErrors()
	for _, f := range s.fields {
		if err := s.ValidateField(f.Name, values[f.Name]); err != nil {
			errs.Add(err)
		}
	}
	return errs
}

// ValidateField checks one value against its field's compiled validator.
// A nil result means the value is acceptable for submission. A required
// field rejects empty submissions outright: nil, blank text, and the empty
// collections the form seeds for untouched structured fields.
func (s *EntrySchema) ValidateField(name string, value any) *Error {
	v, ok := s.validators[name]
	if !ok {
		return nil
	}
	f := v.field

	if isEmptyValue(value) {
		if f.Required {
			return NewRequiredError(f.Name)
		}
		if value == nil {
			return nil
		}
	}

	if err := checkShape(f, value); err != nil {
		return err
	}
	return v.checkConstraints(value)
}

// isEmptyValue reports whether a form value amounts to no submission at
// all. CleanValue turns blank text into nil, so each of these reaches the
// server as null.
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

// checkShape enforces the base value shape for the field's type. Empty
// strings pass every shape check; emptiness is the required check's concern.
func checkShape(f FieldDefinition, value any) *Error {
	switch f.Type {
	case FieldTypeNumber:
		switch n := value.(type) {
		case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
			return nil
		case string:
			if n == "" {
				return nil
			}
			if _, err := strconv.ParseFloat(n, 64); err != nil {
				return NewTypeMismatchError(f.Name, "Expected a number")
			}
			return nil
		default:
			return NewTypeMismatchError(f.Name, "Expected a number")
		}
	case FieldTypeBoolean:
		if _, ok := value.(bool); !ok {
			return NewTypeMismatchError(f.Name, "Expected true or false")
		}
		return nil
	case FieldTypeMultiSelect:
		switch vs := value.(type) {
		case []string:
			return nil
		case []any:
			for _, item := range vs {
				if _, ok := item.(string); !ok {
					return NewTypeMismatchError(f.Name, "Expected a list of option values")
				}
			}
			return nil
		default:
			return NewTypeMismatchError(f.Name, "Expected a list of option values")
		}
	case FieldTypeJSON, FieldTypeObject:
		switch j := value.(type) {
		case map[string]any, []any:
			return nil
		case string:
			if j == "" {
				return nil
			}
			var parsed any
			if err := json.Unmarshal([]byte(j), &parsed); err != nil {
				return NewInvalidJSONError(f.Name)
			}
			return nil
		default:
			return NewInvalidJSONError(f.Name)
		}
	case FieldTypeArray:
		switch a := value.(type) {
		case []any, []string:
			return nil
		case string:
			if a == "" {
				return nil
			}
			var parsed any
			if err := json.Unmarshal([]byte(a), &parsed); err != nil {
				return NewInvalidJSONArrayError(f.Name)
			}
			if _, ok := parsed.([]any); !ok {
				return NewInvalidJSONArrayError(f.Name)
			}
			return nil
		default:
			return NewInvalidJSONArrayError(f.Name)
		}
	default:
		// TEXT, TEXTAREA, RICHTEXT, DATE, DATETIME, SELECT, SLUG, EMAIL,
		// URL, COLOR, PASSWORD, and any type the registry does not know.
		if _, ok := value.(string); !ok {
			return NewTypeMismatchError(f.Name, "Expected text")
		}
		return nil
	}
}

// checkConstraints evaluates the compiled JSON-schema constraints. Empty
// strings are treated as absent so an optional field left blank never trips
// a length or pattern rule.
func (v *fieldValidator) checkConstraints(value any) *Error {
	if v.constraints == nil {
		return nil
	}
	if s, ok := value.(string); ok {
		if s == "" {
			return nil
		}
		if v.field.Type == FieldTypeNumber {
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil
			}
			value = n
		}
	}
	if err := v.constraints.Validate(value); err != nil {
		return NewConstraintError(v.field.Name, err.Error()).WithCause(err)
	}
	return nil
}

// DefaultValues computes the seed value for every editable field. Exactly
// one source wins per field: the existing entry's value (parsed from JSON
// text for structured types, keeping the raw string when parsing fails),
// then the field's authored default, then the type's builtin default.
func (s *EntrySchema) DefaultValues(entry *Entry) map[string]any {
	values := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		values[f.Name] = s.defaultFor(f, entry)
	}
	return values
}

func (s *EntrySchema) defaultFor(f FieldDefinition, entry *Entry) any {
	if entry != nil {
		if v, ok := entry.Data[f.Name]; ok && v != nil {
			return DecodeWireValue(f.Type, v)
		}
	}
	if f.DefaultValue != nil {
		return DecodeWireValue(f.Type, f.DefaultValue)
	}
	switch f.Type {
	case FieldTypeBoolean:
		return false
	case FieldTypeNumber:
		return ""
	case FieldTypeMultiSelect, FieldTypeArray:
		return []any{}
	case FieldTypeObject, FieldTypeJSON:
		return map[string]any{}
	default:
		return ""
	}
}
