package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plumeworks/plume"
)

func TestWidgetForKinds(t *testing.T) {
	reg := plume.DefaultRegistry()

	tests := []struct {
		ft   plume.FieldType
		want WidgetKind
	}{
		{plume.FieldTypeText, WidgetText},
		{plume.FieldTypeTextArea, WidgetTextArea},
		{plume.FieldTypeRichText, WidgetRichText},
		{plume.FieldTypeNumber, WidgetNumber},
		{plume.FieldTypeBoolean, WidgetToggle},
		{plume.FieldTypeDate, WidgetDate},
		{plume.FieldTypeDateTime, WidgetDateTime},
		{plume.FieldTypeSelect, WidgetSelect},
		{plume.FieldTypeMultiSelect, WidgetMultiSelect},
		{plume.FieldTypeJSON, WidgetJSONEditor},
		{plume.FieldTypeObject, WidgetJSONEditor},
		{plume.FieldTypeArray, WidgetArrayEditor},
		{plume.FieldTypeSlug, WidgetSlug},
		{plume.FieldTypeEmail, WidgetEmail},
		{plume.FieldTypeURL, WidgetURL},
		{plume.FieldTypeColor, WidgetColor},
		{plume.FieldTypePassword, WidgetPassword},
		{plume.FieldTypeMedia, WidgetText},
		{plume.FieldTypeRelationship, WidgetText},
		{plume.FieldType("GEOPOINT"), WidgetText},
	}

	for _, tt := range tests {
		t.Run(string(tt.ft), func(t *testing.T) {
			w := WidgetFor(reg, plume.FieldDefinition{Name: "f", Type: tt.ft})
			assert.Equal(t, tt.want, w.Kind)
		})
	}
}

func TestWidgetForCarriesPresentation(t *testing.T) {
	reg := plume.DefaultRegistry()
	w := WidgetFor(reg, plume.FieldDefinition{
		Name:        "status",
		Label:       "Status",
		Description: "Editorial state",
		Required:    true,
		Type:        plume.FieldTypeSelect,
		Config: map[string]any{
			"options": []any{
				map[string]any{"value": "draft", "label": "Draft"},
			},
		},
	})

	assert.Equal(t, "Status", w.Label)
	assert.Equal(t, "Editorial state", w.Description)
	assert.True(t, w.Required)
	assert.Equal(t, []plume.SelectOption{{Value: "draft", Label: "Draft"}}, w.Options)
}

func TestWidgetForNoOptionsOutsideOptionTypes(t *testing.T) {
	reg := plume.DefaultRegistry()
	w := WidgetFor(reg, plume.FieldDefinition{
		Name: "title",
		Type: plume.FieldTypeText,
		Config: map[string]any{
			"options": []any{map[string]any{"value": "x", "label": "X"}},
		},
	})
	assert.Empty(t, w.Options)
}
