package plume

import "encoding/json"

// Typed views over the open per-field config map. The map itself stays on
// the FieldDefinition untouched so keys this client does not know survive a
// read-modify-write cycle; these variants only interpret the keys the
// field's type declares.

// SelectConfig configures SELECT and MULTISELECT fields.
type SelectConfig struct {
	Options     []SelectOption `json:"options,omitempty"`
	AllowCustom bool           `json:"allowCustom,omitempty"`
}

// RelationshipConfig configures RELATIONSHIP fields.
type RelationshipConfig struct {
	RelatedCollection string `json:"relatedCollection,omitempty"`
	DisplayField      string `json:"displayField,omitempty"`
	Multiple          bool   `json:"multiple,omitempty"`
}

// SlugConfig configures SLUG fields.
type SlugConfig struct {
	SourceField string `json:"sourceField,omitempty"`
	Prefix      string `json:"prefix,omitempty"`
	Suffix      string `json:"suffix,omitempty"`
}

// MediaConfig configures MEDIA fields.
type MediaConfig struct {
	AllowedTypes []string `json:"allowedTypes,omitempty"`
	MaxSize      int64    `json:"maxSize,omitempty"`
	Multiple     bool     `json:"multiple,omitempty"`
}

// decodeConfig round-trips the open map through JSON into a typed variant.
// Unknown and mistyped keys are dropped from the view, never an error.
func decodeConfig(config map[string]any, out any) {
	if len(config) == 0 {
		return
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return
	}
	// Best effort: a partially decodable map still yields the good keys.
	_ = json.Unmarshal(raw, out)
}

// SelectConfigOf extracts the option configuration of a field. Fields whose
// type does not carry options yield the zero config.
func SelectConfigOf(r *Registry, f FieldDefinition) SelectConfig {
	var c SelectConfig
	if r.HasOptions(f.Type) {
		decodeConfig(f.Config, &c)
	}
	return c
}

// RelationshipConfigOf extracts the relationship configuration of a field.
func RelationshipConfigOf(r *Registry, f FieldDefinition) RelationshipConfig {
	var c RelationshipConfig
	if r.HasRelationship(f.Type) {
		decodeConfig(f.Config, &c)
	}
	return c
}

// SlugConfigOf extracts the slug configuration of a field.
func SlugConfigOf(r *Registry, f FieldDefinition) SlugConfig {
	var c SlugConfig
	if r.HasSlugSource(f.Type) {
		decodeConfig(f.Config, &c)
	}
	return c
}

// MediaConfigOf extracts the upload configuration of a field.
func MediaConfigOf(r *Registry, f FieldDefinition) MediaConfig {
	var c MediaConfig
	if r.HasMediaConfig(f.Type) {
		decodeConfig(f.Config, &c)
	}
	return c
}

// Options returns the field's declared select options, already filtered to
// rows that carry both a value and a label.
func Options(r *Registry, f FieldDefinition) []SelectOption {
	cfg := SelectConfigOf(r, f)
	out := make([]SelectOption, 0, len(cfg.Options))
	for _, o := range cfg.Options {
		if o.Value != "" && o.Label != "" {
			out = append(out, o)
		}
	}
	return out
}
