package plume

// ValidationOptions declares which constraint keys a field type's validation
// map may carry. Keys outside the declared set are ignored by the compiler
// and omitted from editor payloads.
type ValidationOptions struct {
	MinLength    bool
	MaxLength    bool
	Min          bool
	Max          bool
	Pattern      bool
	AllowedTypes bool
	MaxSize      bool
}

// Any reports whether at least one constraint option is declared.
func (v ValidationOptions) Any() bool {
	return v.MinLength || v.MaxLength || v.Min || v.Max || v.Pattern || v.AllowedTypes || v.MaxSize
}

// TypeConfig is the registry record for one field type: presentation
// metadata plus the capability flags that drive editor sections and
// validator selection.
type TypeConfig struct {
	Type        FieldType
	Label       string
	Description string
	Icon        string
	Color       string
	BgColor     string

	HasOptions      bool
	HasValidation   bool
	HasDefaultValue bool
	HasRelationship bool
	HasMediaConfig  bool
	HasSlugSource   bool

	ValidationOptions ValidationOptions
}

// Registry is an immutable lookup table of supported field types. It is
// constructed explicitly and passed to collaborators; nothing reads it
// through package-level state.
type Registry struct {
	configs map[FieldType]TypeConfig
	order   []FieldType
}

// NewRegistry builds a registry from the given configurations, preserving
// their order for Types(). Later duplicates overwrite earlier ones.
func NewRegistry(configs []TypeConfig) *Registry {
	r := &Registry{
		configs: make(map[FieldType]TypeConfig, len(configs)),
		order:   make([]FieldType, 0, len(configs)),
	}
	for _, c := range configs {
		if _, seen := r.configs[c.Type]; !seen {
			r.order = append(r.order, c.Type)
		}
		r.configs[c.Type] = c
	}
	return r
}

// Lookup returns the configuration for a field type. The second result is
// false when the type is unknown; callers that render or validate fall back
// to FallbackConfig rather than failing.
func (r *Registry) Lookup(t FieldType) (TypeConfig, bool) {
	c, ok := r.configs[t]
	return c, ok
}

// Config returns the configuration for a field type, or the permissive text
// fallback when the type is unknown. Unknown types degrade, never error.
func (r *Registry) Config(t FieldType) TypeConfig {
	if c, ok := r.configs[t]; ok {
		return c
	}
	return FallbackConfig(t)
}

// Types returns all registered field types in registration order.
func (r *Registry) Types() []FieldType {
	out := make([]FieldType, len(r.order))
	copy(out, r.order)
	return out
}

// TypesWithOptions returns the types whose widgets present an option list.
func (r *Registry) TypesWithOptions() []FieldType {
	return r.typesWhere(func(c TypeConfig) bool { return c.HasOptions })
}

// TypesWithValidation returns the types that accept validation constraints.
func (r *Registry) TypesWithValidation() []FieldType {
	return r.typesWhere(func(c TypeConfig) bool { return c.HasValidation })
}

func (r *Registry) typesWhere(pred func(TypeConfig) bool) []FieldType {
	var out []FieldType
	for _, t := range r.order {
		if pred(r.configs[t]) {
			out = append(out, t)
		}
	}
	return out
}

// Label returns the display label for a type, falling back to the raw type
// string for unknown types.
func (r *Registry) Label(t FieldType) string {
	if c, ok := r.configs[t]; ok {
		return c.Label
	}
	return string(t)
}

// HasOptions reports whether the type carries a predefined option list.
func (r *Registry) HasOptions(t FieldType) bool { return r.Config(t).HasOptions }

// HasValidation reports whether the type accepts validation constraints.
func (r *Registry) HasValidation(t FieldType) bool { return r.Config(t).HasValidation }

// HasDefaultValue reports whether the type supports an authored default.
func (r *Registry) HasDefaultValue(t FieldType) bool { return r.Config(t).HasDefaultValue }

// HasRelationship reports whether the type references another collection.
func (r *Registry) HasRelationship(t FieldType) bool { return r.Config(t).HasRelationship }

// HasMediaConfig reports whether the type carries upload configuration.
func (r *Registry) HasMediaConfig(t FieldType) bool { return r.Config(t).HasMediaConfig }

// HasSlugSource reports whether the type derives its value from a sibling field.
func (r *Registry) HasSlugSource(t FieldType) bool { return r.Config(t).HasSlugSource }

// FallbackConfig is the permissive configuration used for field types the
// registry does not know: rendered as plain text, no special capabilities,
// neutral presentation tokens.
func FallbackConfig(t FieldType) TypeConfig {
	return TypeConfig{
		Type:        t,
		Label:       string(t),
		Description: "Unrecognized field type",
		Icon:        "HelpCircle",
		Color:       "text-gray-800",
		BgColor:     "bg-gray-100",
	}
}

// DefaultRegistry returns the standard registry covering the 19 built-in
// field types.
func DefaultRegistry() *Registry {
	return NewRegistry([]TypeConfig{
		{
			Type:            FieldTypeText,
			Label:           "Text",
			Description:     "Single line text input",
			Icon:            "Type",
			Color:           "text-blue-800",
			BgColor:         "bg-blue-100",
			HasValidation:   true,
			HasDefaultValue: true,
			ValidationOptions: ValidationOptions{
				MinLength: true,
				MaxLength: true,
				Pattern:   true,
			},
		},
		{
			Type:            FieldTypeTextArea,
			Label:           "Text Area",
			Description:     "Multi-line text input",
			Icon:            "AlignLeft",
			Color:           "text-blue-800",
			BgColor:         "bg-blue-100",
			HasValidation:   true,
			HasDefaultValue: true,
			ValidationOptions: ValidationOptions{
				MinLength: true,
				MaxLength: true,
			},
		},
		{
			Type:            FieldTypeRichText,
			Label:           "Rich Text",
			Description:     "Rich text editor with formatting",
			Icon:            "FileText",
			Color:           "text-purple-800",
			BgColor:         "bg-purple-100",
			HasValidation:   true,
			HasDefaultValue: true,
			ValidationOptions: ValidationOptions{
				MinLength: true,
				MaxLength: true,
			},
		},
		{
			Type:            FieldTypeNumber,
			Label:           "Number",
			Description:     "Numeric input (integer or decimal)",
			Icon:            "Hash",
			Color:           "text-green-800",
			BgColor:         "bg-green-100",
			HasValidation:   true,
			HasDefaultValue: true,
			ValidationOptions: ValidationOptions{
				Min: true,
				Max: true,
			},
		},
		{
			Type:            FieldTypeBoolean,
			Label:           "Boolean",
			Description:     "True/False toggle",
			Icon:            "ToggleLeft",
			Color:           "text-yellow-800",
			BgColor:         "bg-yellow-100",
			HasDefaultValue: true,
		},
		{
			Type:            FieldTypeDate,
			Label:           "Date",
			Description:     "Date picker (without time)",
			Icon:            "Calendar",
			Color:           "text-orange-800",
			BgColor:         "bg-orange-100",
			HasDefaultValue: true,
		},
		{
			Type:            FieldTypeDateTime,
			Label:           "Date & Time",
			Description:     "Date and time picker",
			Icon:            "Clock",
			Color:           "text-orange-800",
			BgColor:         "bg-orange-100",
			HasDefaultValue: true,
		},
		{
			Type:            FieldTypeSelect,
			Label:           "Select",
			Description:     "Dropdown with predefined options",
			Icon:            "ChevronDown",
			Color:           "text-pink-800",
			BgColor:         "bg-pink-100",
			HasOptions:      true,
			HasDefaultValue: true,
		},
		{
			Type:            FieldTypeMultiSelect,
			Label:           "Multi Select",
			Description:     "Multiple selection from options",
			Icon:            "CheckSquare",
			Color:           "text-pink-800",
			BgColor:         "bg-pink-100",
			HasOptions:      true,
			HasDefaultValue: true,
		},
		{
			Type:           FieldTypeMedia,
			Label:          "Media",
			Description:    "Image, video, or file upload",
			Icon:           "Image",
			Color:          "text-indigo-800",
			BgColor:        "bg-indigo-100",
			HasValidation:  true,
			HasMediaConfig: true,
			ValidationOptions: ValidationOptions{
				AllowedTypes: true,
				MaxSize:      true,
			},
		},
		{
			Type:            FieldTypeRelationship,
			Label:           "Relationship",
			Description:     "Reference to another collection",
			Icon:            "Link",
			Color:           "text-cyan-800",
			BgColor:         "bg-cyan-100",
			HasRelationship: true,
		},
		{
			Type:            FieldTypeArray,
			Label:           "Array",
			Description:     "List of values",
			Icon:            "List",
			Color:           "text-gray-800",
			BgColor:         "bg-gray-100",
			HasDefaultValue: true,
		},
		{
			Type:            FieldTypeObject,
			Label:           "Object",
			Description:     "Nested object structure",
			Icon:            "Braces",
			Color:           "text-gray-800",
			BgColor:         "bg-gray-100",
			HasDefaultValue: true,
		},
		{
			Type:            FieldTypeJSON,
			Label:           "JSON",
			Description:     "Raw JSON data",
			Icon:            "Code",
			Color:           "text-gray-800",
			BgColor:         "bg-gray-100",
			HasDefaultValue: true,
		},
		{
			Type:          FieldTypeSlug,
			Label:         "Slug",
			Description:   "URL-friendly identifier",
			Icon:          "Link2",
			Color:         "text-gray-800",
			BgColor:       "bg-gray-100",
			HasValidation: true,
			HasSlugSource: true,
			ValidationOptions: ValidationOptions{
				MaxLength: true,
			},
		},
		{
			Type:            FieldTypeEmail,
			Label:           "Email",
			Description:     "Email address input",
			Icon:            "Mail",
			Color:           "text-teal-800",
			BgColor:         "bg-teal-100",
			HasValidation:   true,
			HasDefaultValue: true,
			ValidationOptions: ValidationOptions{
				Pattern: true,
			},
		},
		{
			Type:            FieldTypeURL,
			Label:           "URL",
			Description:     "Web address input",
			Icon:            "Globe",
			Color:           "text-teal-800",
			BgColor:         "bg-teal-100",
			HasValidation:   true,
			HasDefaultValue: true,
			ValidationOptions: ValidationOptions{
				Pattern: true,
			},
		},
		{
			Type:            FieldTypeColor,
			Label:           "Color",
			Description:     "Color picker",
			Icon:            "Palette",
			Color:           "text-rose-800",
			BgColor:         "bg-rose-100",
			HasDefaultValue: true,
		},
		{
			Type:          FieldTypePassword,
			Label:         "Password",
			Description:   "Masked password input",
			Icon:          "Lock",
			Color:         "text-red-800",
			BgColor:       "bg-red-100",
			HasValidation: true,
			ValidationOptions: ValidationOptions{
				MinLength: true,
				MaxLength: true,
				Pattern:   true,
			},
		},
	})
}
