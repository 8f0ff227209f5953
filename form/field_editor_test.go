package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeworks/plume"
)

type stubFieldWriter struct {
	added     *plume.CreateFieldRequest
	updated   *plume.UpdateFieldRequest
	updatedID string
}

func (w *stubFieldWriter) AddField(_ context.Context, req *plume.CreateFieldRequest) (*plume.FieldDefinition, error) {
	w.added = req
	return &plume.FieldDefinition{ID: "f1", Name: req.Name, Type: req.Type}, nil
}

func (w *stubFieldWriter) UpdateField(_ context.Context, fieldID string, req *plume.UpdateFieldRequest) (*plume.FieldDefinition, error) {
	w.updatedID = fieldID
	w.updated = req
	return &plume.FieldDefinition{ID: fieldID}, nil
}

func newCreateEditor() *FieldEditor {
	return NewFieldEditor(plume.DefaultRegistry(), nil, nil, nil)
}

func TestNameDerivedFromLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"simple", "Title", "title"},
		{"spaces become underscores", "Published At", "published_at"},
		{"punctuation collapses", "Author's  E-Mail!", "author_s_e_mail"},
		{"edges trimmed", "  Leading & Trailing  ", "leading_trailing"},
		{"digits kept", "Line 2", "line_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newCreateEditor()
			e.SetLabel(tt.label)
			assert.Equal(t, tt.want, e.Name())
		})
	}
}

func TestManualNameStopsDerivation(t *testing.T) {
	e := newCreateEditor()
	e.SetLabel("Title")
	assert.Equal(t, "title", e.Name())

	e.SetName("headline")
	e.SetLabel("Completely Different")
	assert.Equal(t, "headline", e.Name(), "derivation stops once the name was edited")
}

func TestEditModeFreezesNameAndType(t *testing.T) {
	existing := &plume.FieldDefinition{ID: "f1", Name: "title", Label: "Title", Type: plume.FieldTypeText}
	e := NewFieldEditor(plume.DefaultRegistry(), nil, nil, existing)

	assert.True(t, e.IsEdit())
	assert.False(t, e.CanEditType())

	e.SetLabel("New Label")
	assert.Equal(t, "title", e.Name(), "label edits never rename an existing field")

	e.SetName("other")
	assert.Equal(t, "title", e.Name())

	err := e.SetType(plume.FieldTypeNumber)
	require.Error(t, err)
	assert.Equal(t, plume.FieldTypeText, e.Type())
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOK  bool
	}{
		{"valid simple", "title", true},
		{"valid with underscore and digits", "line_2_text", true},
		{"uppercase rejected", "Title", false},
		{"leading digit rejected", "2title", false},
		{"leading underscore rejected", "_title", false},
		{"hyphen rejected", "my-field", false},
		{"empty rejected", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newCreateEditor()
			e.SetLabel("Anything")
			e.SetName(tt.input)
			errs := e.Validate()
			if tt.wantOK {
				assert.False(t, errs.HasErrors(), "unexpected: %v", errs)
			} else {
				require.True(t, errs.HasErrors())
				assert.NotNil(t, errs.ByField("name"))
			}
		})
	}
}

func TestOptionRows(t *testing.T) {
	e := newCreateEditor()
	require.NoError(t, e.SetType(plume.FieldTypeSelect))

	require.Len(t, e.Options(), 1, "editor opens with one empty row")
	assert.Error(t, e.RemoveOption(0), "the last row cannot be removed")

	e.SetOptionLabel(0, "In Review")
	assert.Equal(t, "in-review", e.Options()[0].Value, "value derives from label with hyphens")

	e.SetOptionValue(0, "review")
	e.SetOptionLabel(0, "Still In Review")
	assert.Equal(t, "review", e.Options()[0].Value, "existing value is never overwritten")

	e.AddOption()
	e.SetOptionLabel(1, "Done")
	require.Len(t, e.Options(), 2)
	require.NoError(t, e.RemoveOption(1))
	assert.Len(t, e.Options(), 1)
}

func TestConditionalSections(t *testing.T) {
	tests := []struct {
		ft           plume.FieldType
		options      bool
		relationship bool
		slugSource   bool
		validation   bool
	}{
		{plume.FieldTypeText, false, false, false, true},
		{plume.FieldTypeSelect, true, false, false, false},
		{plume.FieldTypeMultiSelect, true, false, false, false},
		{plume.FieldTypeRelationship, false, true, false, false},
		{plume.FieldTypeSlug, false, false, true, true},
		{plume.FieldTypeBoolean, false, false, false, false},
		{plume.FieldTypeMedia, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.ft), func(t *testing.T) {
			e := newCreateEditor()
			require.NoError(t, e.SetType(tt.ft))
			assert.Equal(t, tt.options, e.ShowOptions())
			assert.Equal(t, tt.relationship, e.ShowRelationship())
			assert.Equal(t, tt.slugSource, e.ShowSlugSource())
			assert.Equal(t, tt.validation, e.ShowValidation())
		})
	}
}

func TestSlugSourceCandidatesOnlyTextSiblings(t *testing.T) {
	siblings := []plume.FieldDefinition{
		{Name: "title", Type: plume.FieldTypeText},
		{Name: "count", Type: plume.FieldTypeNumber},
		{Name: "summary", Type: plume.FieldTypeTextArea},
		{Name: "subtitle", Type: plume.FieldTypeText},
	}
	e := NewFieldEditor(plume.DefaultRegistry(), nil, siblings, nil)
	require.NoError(t, e.SetType(plume.FieldTypeSlug))

	var names []string
	for _, f := range e.SlugSourceCandidates() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"title", "subtitle"}, names)
}

func TestPayloadIncludesOnlyRelevantNonEmptyKeys(t *testing.T) {
	e := newCreateEditor()
	require.NoError(t, e.SetType(plume.FieldTypeSelect))
	e.SetLabel("Status")
	e.SetOptionLabel(0, "Draft")
	e.AddOption()
	// Incomplete rows are dropped from the payload.
	e.SetOptionValue(1, "orphan-value")

	// Inputs for sections the type does not show are ignored.
	e.SetRelatedCollection("authors")
	e.SetSourceField("title")
	e.SetMinLength("3")

	p := e.Payload()
	assert.Equal(t, "status", p.Name)
	assert.Equal(t, plume.FieldTypeSelect, p.Type)
	require.NotNil(t, p.Config)
	assert.Equal(t, []plume.SelectOption{{Value: "draft", Label: "Draft"}}, p.Config["options"])
	assert.NotContains(t, p.Config, "relatedCollection")
	assert.NotContains(t, p.Config, "sourceField")
	assert.Nil(t, p.Validation, "SELECT declares no constraints")
}

func TestPayloadOmitsEmptyMaps(t *testing.T) {
	e := newCreateEditor()
	e.SetLabel("Title")

	p := e.Payload()
	assert.Nil(t, p.Config, "empty config is omitted, not {}")
	assert.Nil(t, p.Validation, "empty validation is omitted, not {}")
}

func TestValidationPayloadFiltersByTypeOptions(t *testing.T) {
	e := newCreateEditor()
	e.SetLabel("Title")
	e.SetMinLength("2")
	e.SetMaxLength("80")
	e.SetPattern("^[a-z]+$")
	e.SetMin("1") // TEXT has no min/max value constraints
	e.SetMax("9")

	p := e.Payload()
	require.NotNil(t, p.Validation)
	assert.Equal(t, map[string]any{
		"minLength": float64(2),
		"maxLength": float64(80),
		"pattern":   "^[a-z]+$",
	}, p.Validation)
}

func TestNumberValidationPayload(t *testing.T) {
	e := newCreateEditor()
	require.NoError(t, e.SetType(plume.FieldTypeNumber))
	e.SetLabel("Quantity")
	e.SetMin("0")
	e.SetMax("100")
	e.SetMinLength("5") // not declared for NUMBER

	p := e.Payload()
	require.NotNil(t, p.Validation)
	assert.Equal(t, map[string]any{"min": float64(0), "max": float64(100)}, p.Validation)
}

func TestSubmitCreate(t *testing.T) {
	e := newCreateEditor()
	e.SetLabel("Title")
	e.SetRequired(true)
	writer := &stubFieldWriter{}

	created, err := e.Submit(context.Background(), writer)
	require.NoError(t, err)
	assert.Equal(t, "f1", created.ID)
	require.NotNil(t, writer.added)
	assert.Equal(t, "title", writer.added.Name)
	assert.True(t, writer.added.Required)
}

func TestSubmitUpdate(t *testing.T) {
	existing := &plume.FieldDefinition{
		ID: "f9", Name: "title", Label: "Title", Type: plume.FieldTypeText,
		Validation: map[string]any{"maxLength": float64(50)},
	}
	e := NewFieldEditor(plume.DefaultRegistry(), nil, nil, existing)
	e.SetLabel("Headline")
	e.SetMaxLength("120")
	writer := &stubFieldWriter{}

	_, err := e.Submit(context.Background(), writer)
	require.NoError(t, err)
	assert.Equal(t, "f9", writer.updatedID)
	require.NotNil(t, writer.updated)
	assert.Equal(t, "Headline", writer.updated.Label)
	assert.Equal(t, map[string]any{"maxLength": float64(120)}, writer.updated.Validation)
}

func TestSubmitBlockedByValidation(t *testing.T) {
	e := newCreateEditor()
	writer := &stubFieldWriter{}

	_, err := e.Submit(context.Background(), writer)
	require.Error(t, err)
	assert.Nil(t, writer.added)
	assert.True(t, plume.IsValidationError(err))
}

func TestEditorLoadsExistingConfigAndValidation(t *testing.T) {
	existing := &plume.FieldDefinition{
		ID: "f2", Name: "status", Label: "Status", Type: plume.FieldTypeSelect,
		Config: map[string]any{
			"options": []any{map[string]any{"value": "a", "label": "A"}},
		},
	}
	e := NewFieldEditor(plume.DefaultRegistry(), nil, nil, existing)

	require.Len(t, e.Options(), 1)
	assert.Equal(t, OptionRow{Value: "a", Label: "A"}, e.Options()[0])
}
