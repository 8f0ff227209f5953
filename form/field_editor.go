package form

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/plumeworks/plume"
)

// fieldNameRe is the shape every field name must have on the wire.
var fieldNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// OptionRow is one editable option of a SELECT or MULTISELECT field.
type OptionRow struct {
	Value string
	Label string
}

// FieldEditor is the field definition form: create when opened without an
// existing field, edit otherwise. The type is chosen once at creation;
// name and type are immutable in edit mode.
type FieldEditor struct {
	registry    *plume.Registry
	collections []plume.Collection
	siblings    []plume.FieldDefinition
	existing    *plume.FieldDefinition

	name        string
	label       string
	fieldType   plume.FieldType
	description string
	required    bool
	unique      bool

	options           []OptionRow
	relatedCollection string
	sourceField       string

	// Constraint inputs keep the empty-string sentinel of their widgets;
	// Payload parses them.
	minLength string
	maxLength string
	min       string
	max       string
	pattern   string

	nameTouched bool
}

// NewFieldEditor opens a field definition form. collections feeds the
// relationship target choices, siblings the slug source candidates. A nil
// existing field opens the editor in create mode with TEXT preselected.
func NewFieldEditor(registry *plume.Registry, collections []plume.Collection, siblings []plume.FieldDefinition, existing *plume.FieldDefinition) *FieldEditor {
	e := &FieldEditor{
		registry:    registry,
		collections: collections,
		siblings:    siblings,
		existing:    existing,
		fieldType:   plume.FieldTypeText,
		options:     []OptionRow{{}},
	}
	if existing != nil {
		e.loadExisting(*existing)
	}
	return e
}

func (e *FieldEditor) loadExisting(f plume.FieldDefinition) {
	e.name = f.Name
	e.label = f.Label
	e.fieldType = f.Type
	e.description = f.Description
	e.required = f.Required
	e.unique = f.Unique

	sel := plume.SelectConfigOf(e.registry, f)
	if len(sel.Options) > 0 {
		e.options = make([]OptionRow, 0, len(sel.Options))
		for _, o := range sel.Options {
			e.options = append(e.options, OptionRow{Value: o.Value, Label: o.Label})
		}
	}
	e.relatedCollection = plume.RelationshipConfigOf(e.registry, f).RelatedCollection
	e.sourceField = plume.SlugConfigOf(e.registry, f).SourceField

	if v, ok := f.Validation["minLength"]; ok {
		e.minLength = formatNumber(v)
	}
	if v, ok := f.Validation["maxLength"]; ok {
		e.maxLength = formatNumber(v)
	}
	if v, ok := f.Validation["min"]; ok {
		e.min = formatNumber(v)
	}
	if v, ok := f.Validation["max"]; ok {
		e.max = formatNumber(v)
	}
	if v, ok := f.Validation["pattern"].(string); ok {
		e.pattern = v
	}
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case string:
		return n
	default:
		return ""
	}
}

// IsEdit reports whether the editor modifies an existing field.
func (e *FieldEditor) IsEdit() bool {
	return e.existing != nil
}

// Name returns the current wire name.
func (e *FieldEditor) Name() string { return e.name }

// Label returns the current display label.
func (e *FieldEditor) Label() string { return e.label }

// Type returns the selected field type.
func (e *FieldEditor) Type() plume.FieldType { return e.fieldType }

// SetLabel records the label and, in create mode before the name has been
// edited directly, derives the wire name from it.
func (e *FieldEditor) SetLabel(label string) {
	e.label = label
	if !e.IsEdit() && !e.nameTouched {
		e.name = deriveName(label, '_')
	}
}

// SetName records a manually chosen wire name and stops label derivation
// for the rest of the session. Ignored in edit mode, where the name is
// immutable.
func (e *FieldEditor) SetName(name string) {
	if e.IsEdit() {
		return
	}
	e.name = name
	e.nameTouched = true
}

// SetType selects the field type. Rejected in edit mode; changing a type
// under stored values is a migration, not an edit.
func (e *FieldEditor) SetType(t plume.FieldType) error {
	if e.IsEdit() {
		return plume.NewValidationError("type", "Type cannot be changed after creation")
	}
	e.fieldType = t
	return nil
}

// SetDescription records the operator help text.
func (e *FieldEditor) SetDescription(d string) { e.description = d }

// SetRequired toggles the required flag.
func (e *FieldEditor) SetRequired(v bool) { e.required = v }

// SetUnique toggles the unique flag.
func (e *FieldEditor) SetUnique(v bool) { e.unique = v }

// deriveName lowercases text and collapses every run of characters outside
// [a-z0-9] into a single separator, trimming separators at the edges.
func deriveName(text string, sep byte) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	pending := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(sep)
			}
			pending = false
			b.WriteByte(c)
		} else {
			pending = true
		}
	}
	return b.String()
}

// ============================================================================
// Options
// ============================================================================

// Options returns the current option rows.
func (e *FieldEditor) Options() []OptionRow {
	out := make([]OptionRow, len(e.options))
	copy(out, e.options)
	return out
}

// AddOption appends an empty option row.
func (e *FieldEditor) AddOption() {
	e.options = append(e.options, OptionRow{})
}

// RemoveOption deletes an option row. The last remaining row cannot be
// removed; an option list always shows at least one row.
func (e *FieldEditor) RemoveOption(index int) error {
	if len(e.options) == 1 {
		return plume.NewValidationError("options", "At least one option row is required")
	}
	if index < 0 || index >= len(e.options) {
		return plume.NewValidationError("options", "No such option row")
	}
	e.options = append(e.options[:index], e.options[index+1:]...)
	return nil
}

// SetOptionLabel records an option's label and, while its stored value is
// still empty, derives the value from the label with hyphen separators.
func (e *FieldEditor) SetOptionLabel(index int, label string) {
	if index < 0 || index >= len(e.options) {
		return
	}
	e.options[index].Label = label
	if e.options[index].Value == "" {
		e.options[index].Value = deriveName(label, '-')
	}
}

// SetOptionValue records an option's stored value directly.
func (e *FieldEditor) SetOptionValue(index int, value string) {
	if index < 0 || index >= len(e.options) {
		return
	}
	e.options[index].Value = value
}

// ============================================================================
// Conditional sections
// ============================================================================

// ShowOptions reports whether the option list section applies to the
// selected type.
func (e *FieldEditor) ShowOptions() bool {
	return e.registry.HasOptions(e.fieldType)
}

// ShowRelationship reports whether the related-collection section applies.
func (e *FieldEditor) ShowRelationship() bool {
	return e.registry.HasRelationship(e.fieldType)
}

// ShowSlugSource reports whether the slug source section applies.
func (e *FieldEditor) ShowSlugSource() bool {
	return e.registry.HasSlugSource(e.fieldType)
}

// ShowValidation reports whether the constraint section applies: the type
// must accept validation and declare at least one constraint option.
func (e *FieldEditor) ShowValidation() bool {
	cfg := e.registry.Config(e.fieldType)
	return cfg.HasValidation && cfg.ValidationOptions.Any()
}

// CanEditType reports whether the type selector is available.
func (e *FieldEditor) CanEditType() bool {
	return !e.IsEdit()
}

// RelationshipTargets returns the collections a relationship may point at.
func (e *FieldEditor) RelationshipTargets() []plume.Collection {
	out := make([]plume.Collection, len(e.collections))
	copy(out, e.collections)
	return out
}

// SlugSourceCandidates returns the sibling fields a slug may derive from.
// Only plain TEXT siblings qualify.
func (e *FieldEditor) SlugSourceCandidates() []plume.FieldDefinition {
	var out []plume.FieldDefinition
	for _, f := range e.siblings {
		if f.Type == plume.FieldTypeText {
			out = append(out, f)
		}
	}
	return out
}

// SetRelatedCollection records the relationship target by slug.
func (e *FieldEditor) SetRelatedCollection(slug string) { e.relatedCollection = slug }

// SetSourceField records the slug source by sibling field name.
func (e *FieldEditor) SetSourceField(name string) { e.sourceField = name }

// SetMinLength records the minimum length input ("" clears it).
func (e *FieldEditor) SetMinLength(v string) { e.minLength = v }

// SetMaxLength records the maximum length input ("" clears it).
func (e *FieldEditor) SetMaxLength(v string) { e.maxLength = v }

// SetMin records the minimum value input ("" clears it).
func (e *FieldEditor) SetMin(v string) { e.min = v }

// SetMax records the maximum value input ("" clears it).
func (e *FieldEditor) SetMax(v string) { e.max = v }

// SetPattern records the regular expression constraint ("" clears it).
func (e *FieldEditor) SetPattern(v string) { e.pattern = v }

// ============================================================================
// Validation and payload
// ============================================================================

// Validate checks the editor's own inputs: a label, and a name matching
// the wire shape.
func (e *FieldEditor) Validate() *plume.ValidationErrors {
	errs := plume.NewValidationErrors()
	if e.label == "" {
		errs.Add(plume.NewValidationError("label", "Label is required"))
	}
	if e.name == "" {
		errs.Add(plume.NewValidationError("name", "Name is required"))
	} else if !fieldNameRe.MatchString(e.name) {
		errs.Add(plume.NewError(plume.ErrorTypeValidation, plume.ErrCodeInvalidFieldName,
			"Lowercase letters, numbers, and underscores only").WithField("name"))
	}
	return errs
}

// configPayload assembles the config map: only keys relevant to the
// selected type, only when non-empty. An empty map becomes nil so the
// request omits the key entirely.
func (e *FieldEditor) configPayload() map[string]any {
	config := map[string]any{}

	if e.ShowOptions() {
		var valid []plume.SelectOption
		for _, o := range e.options {
			if o.Value != "" && o.Label != "" {
				valid = append(valid, plume.SelectOption{Value: o.Value, Label: o.Label})
			}
		}
		if len(valid) > 0 {
			config["options"] = valid
		}
	}
	if e.ShowRelationship() && e.relatedCollection != "" {
		config["relatedCollection"] = e.relatedCollection
	}
	if e.ShowSlugSource() && e.sourceField != "" {
		config["sourceField"] = e.sourceField
	}

	if len(config) == 0 {
		return nil
	}
	return config
}

// validationPayload assembles the validation map from the non-empty
// constraint inputs the selected type declares. An empty map becomes nil.
func (e *FieldEditor) validationPayload() map[string]any {
	if !e.ShowValidation() {
		return nil
	}
	opts := e.registry.Config(e.fieldType).ValidationOptions
	validation := map[string]any{}

	setNumber := func(key, raw string, allowed bool) {
		if !allowed || raw == "" {
			return
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			validation[key] = n
		}
	}
	setNumber("minLength", e.minLength, opts.MinLength)
	setNumber("maxLength", e.maxLength, opts.MaxLength)
	setNumber("min", e.min, opts.Min)
	setNumber("max", e.max, opts.Max)
	if opts.Pattern && e.pattern != "" {
		validation["pattern"] = e.pattern
	}

	if len(validation) == 0 {
		return nil
	}
	return validation
}

// Payload builds the create request for the current inputs.
func (e *FieldEditor) Payload() *plume.CreateFieldRequest {
	return &plume.CreateFieldRequest{
		Name:        e.name,
		Label:       e.label,
		Type:        e.fieldType,
		Description: e.description,
		Required:    e.required,
		Unique:      e.unique,
		Config:      e.configPayload(),
		Validation:  e.validationPayload(),
	}
}

// UpdatePayload builds the edit request: label and flags plus the
// recomputed config/validation maps, never name or type.
func (e *FieldEditor) UpdatePayload() *plume.UpdateFieldRequest {
	required := e.required
	unique := e.unique
	return &plume.UpdateFieldRequest{
		Label:       e.label,
		Description: e.description,
		Required:    &required,
		Unique:      &unique,
		Config:      e.configPayload(),
		Validation:  e.validationPayload(),
	}
}

// Submit validates and dispatches the field: add in create mode, update in
// edit mode. Validation failure blocks the request.
func (e *FieldEditor) Submit(ctx context.Context, writer plume.FieldWriter) (*plume.FieldDefinition, error) {
	if errs := e.Validate(); errs.HasErrors() {
		return nil, errs
	}
	if e.IsEdit() {
		return writer.UpdateField(ctx, e.existing.ID, e.UpdatePayload())
	}
	return writer.AddField(ctx, e.Payload())
}
