// Package form models the admin console's forms as headless sessions: a
// session opens over a set of field definitions, accepts edits, validates,
// and submits through a narrow writer interface. Rendering is left to the
// caller; the session exposes widget descriptors instead of markup.
package form

import (
	"github.com/plumeworks/plume"
)

// WidgetKind names the input control a field renders as.
type WidgetKind string

const (
	WidgetText        WidgetKind = "text"
	WidgetTextArea    WidgetKind = "textarea"
	WidgetRichText    WidgetKind = "richtext"
	WidgetNumber      WidgetKind = "number"
	WidgetToggle      WidgetKind = "toggle"
	WidgetDate        WidgetKind = "date"
	WidgetDateTime    WidgetKind = "datetime"
	WidgetSelect      WidgetKind = "select"
	WidgetMultiSelect WidgetKind = "multiselect"
	WidgetJSONEditor  WidgetKind = "json"
	WidgetArrayEditor WidgetKind = "array"
	WidgetSlug        WidgetKind = "slug"
	WidgetEmail       WidgetKind = "email"
	WidgetURL         WidgetKind = "url"
	// Color renders as a swatch picker paired with a hex text input bound
	// to the same value.
	WidgetColor    WidgetKind = "color"
	WidgetPassword WidgetKind = "password"
)

// Widget describes one rendered field: which control to draw and the
// presentation attached to it. Error carries the field's current
// validation message, empty when the value is acceptable.
type Widget struct {
	Kind        WidgetKind
	Field       plume.FieldDefinition
	Label       string
	Description string
	Required    bool
	Options     []plume.SelectOption
	Error       string
}

// widgetKinds maps field types to their control. Types absent here,
// including types the registry does not know, render as plain text inputs.
var widgetKinds = map[plume.FieldType]WidgetKind{
	plume.FieldTypeText:        WidgetText,
	plume.FieldTypeTextArea:    WidgetTextArea,
	plume.FieldTypeRichText:    WidgetRichText,
	plume.FieldTypeNumber:      WidgetNumber,
	plume.FieldTypeBoolean:     WidgetToggle,
	plume.FieldTypeDate:        WidgetDate,
	plume.FieldTypeDateTime:    WidgetDateTime,
	plume.FieldTypeSelect:      WidgetSelect,
	plume.FieldTypeMultiSelect: WidgetMultiSelect,
	plume.FieldTypeJSON:        WidgetJSONEditor,
	plume.FieldTypeObject:      WidgetJSONEditor,
	plume.FieldTypeArray:       WidgetArrayEditor,
	plume.FieldTypeSlug:        WidgetSlug,
	plume.FieldTypeEmail:       WidgetEmail,
	plume.FieldTypeURL:         WidgetURL,
	plume.FieldTypeColor:       WidgetColor,
	plume.FieldTypePassword:    WidgetPassword,
}

// WidgetFor builds the widget descriptor for one field. Option lists are
// resolved from the field's config; unknown field types degrade to a text
// input rather than failing.
func WidgetFor(registry *plume.Registry, field plume.FieldDefinition) Widget {
	kind, ok := widgetKinds[field.Type]
	if !ok {
		kind = WidgetText
	}
	w := Widget{
		Kind:        kind,
		Field:       field,
		Label:       field.Label,
		Description: field.Description,
		Required:    field.Required,
	}
	if registry.HasOptions(field.Type) {
		w.Options = plume.Options(registry, field)
	}
	return w
}
