package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/plumeworks/plume"
)

// EntrySession is one open entry form: create when opened without an
// entry, edit otherwise. It holds the working value map, runs validation,
// and dispatches the cleaned payload on submit. A session is not safe for
// concurrent use; it models a single operator editing a single form.
type EntrySession struct {
	registry *plume.Registry
	schema   *plume.EntrySchema
	entry    *plume.Entry
	values   map[string]any
	errors   *plume.ValidationErrors

	closed           bool
	validateOnChange bool
	onSuccess        func(*plume.Entry)
}

// NewEntrySession opens a form over a collection's fields. Hidden and
// read-only fields are excluded, the rest sorted by their declared order,
// and every remaining field seeded with exactly one default value. A nil
// entry opens the form in create mode.
func NewEntrySession(registry *plume.Registry, fields []plume.FieldDefinition, entry *plume.Entry) *EntrySession {
	schema := plume.Compile(registry, fields)
	return &EntrySession{
		registry: registry,
		schema:   schema,
		entry:    entry,
		values:   schema.DefaultValues(entry),
		errors:   plume.NewValidationErrors(),
	}
}

// SetValidateOnChange toggles eager validation: when enabled, every edit
// re-checks its own field immediately instead of waiting for submit.
func (s *EntrySession) SetValidateOnChange(v bool) {
	s.validateOnChange = v
}

// OnSuccess registers the callback invoked after a successful submission.
// The callback is skipped when the session was closed while the submission
// was in flight; cache invalidation alone handles that outcome.
func (s *EntrySession) OnSuccess(fn func(*plume.Entry)) {
	s.onSuccess = fn
}

// IsEdit reports whether the session updates an existing entry.
func (s *EntrySession) IsEdit() bool {
	return s.entry != nil
}

// Closed reports whether the form has been dismissed.
func (s *EntrySession) Closed() bool {
	return s.closed
}

// Close dismisses the form. An in-flight submission keeps running; its
// response only reaches the shared cache, never this session.
func (s *EntrySession) Close() {
	s.closed = true
}

// Fields returns the editable fields in render order.
func (s *EntrySession) Fields() []plume.FieldDefinition {
	return s.schema.Fields()
}

// Widgets returns the widget descriptors in render order with current
// validation messages attached.
func (s *EntrySession) Widgets() []Widget {
	fields := s.schema.Fields()
	widgets := make([]Widget, 0, len(fields))
	for _, f := range fields {
		w := WidgetFor(s.registry, f)
		if err := s.errors.ByField(f.Name); err != nil {
			w.Error = err.Message
		}
		widgets = append(widgets, w)
	}
	return widgets
}

// Value returns the current working value of a field.
func (s *EntrySession) Value(name string) any {
	return s.values[name]
}

// Values returns a copy of the working value map.
func (s *EntrySession) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// SetValue records an edit, routing raw text through the widget-local
// input handler for the field's type: array editors keep their value an
// array at every keystroke, JSON editors parse or keep the raw text, and
// datetime inputs normalize to a UTC instant. Edits to unknown field names
// are ignored.
func (s *EntrySession) SetValue(name string, value any) {
	f, ok := s.schema.Field(name)
	if !ok {
		return
	}
	if text, isText := value.(string); isText {
		switch f.Type {
		case plume.FieldTypeArray:
			value = plume.ArrayInput(text)
		case plume.FieldTypeJSON, plume.FieldTypeObject:
			value = plume.JSONInput(text)
		case plume.FieldTypeDateTime:
			value = plume.NormalizeDateTimeInput(text)
		}
	}
	s.values[name] = value

	if s.validateOnChange {
		s.errors.Remove(name)
		if err := s.schema.ValidateField(name, value); err != nil {
			s.errors.Add(err)
		}
	}
}

// Validate runs the compiled schema over the working values, records the
// per-field messages for rendering, and reports whether submission may
// proceed.
func (s *EntrySession) Validate() *plume.ValidationErrors {
	s.errors = s.schema.Validate(s.values)
	return s.errors
}

// Errors returns the messages recorded by the last Validate or Submit.
func (s *EntrySession) Errors() *plume.ValidationErrors {
	return s.errors
}

// Submit validates, cleans the working values, and dispatches the payload:
// create with draft status for a new entry, update otherwise. Validation
// failure blocks the request entirely. On a write error the session stays
// open with its values intact so the operator can retry. On success the
// session closes and the registered callback fires, unless the form was
// already dismissed.
func (s *EntrySession) Submit(ctx context.Context, writer plume.EntryWriter) (*plume.Entry, error) {
	if errs := s.Validate(); errs.HasErrors() {
		return nil, errs
	}

	cleaned := plume.CleanSubmission(s.schema.Fields(), s.values)

	var (
		saved *plume.Entry
		err   error
	)
	if s.IsEdit() {
		saved, err = writer.UpdateEntry(ctx, s.entry.ID, &plume.UpdateEntryRequest{Data: cleaned})
	} else {
		saved, err = writer.CreateEntry(ctx, &plume.CreateEntryRequest{
			Data:   cleaned,
			Status: plume.EntryStatusDraft,
		})
	}
	if err != nil {
		zap.S().Warnw("entry submission failed", "edit", s.IsEdit(), "error", err)
		return nil, err
	}

	if s.closed {
		// Dismissed mid-flight: the write landed, cache invalidation will
		// surface it, but this session stays silent.
		return saved, nil
	}
	s.closed = true
	if s.onSuccess != nil {
		s.onSuccess(saved)
	}
	return saved, nil
}

// Reset reopens the form over a new entry (nil for create mode),
// rebuilding every value from scratch. Unsaved edits from the previous
// open never leak into the next one.
func (s *EntrySession) Reset(entry *plume.Entry) {
	s.entry = entry
	s.values = s.schema.DefaultValues(entry)
	s.errors = plume.NewValidationErrors()
	s.closed = false
}
