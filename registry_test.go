package plume

import "testing"

func TestDefaultRegistryCoversBuiltinTypes(t *testing.T) {
	r := DefaultRegistry()
	if got := len(r.Types()); got != 19 {
		t.Fatalf("len(Types()) = %d, want 19", got)
	}
	for _, ft := range r.Types() {
		cfg, ok := r.Lookup(ft)
		if !ok {
			t.Fatalf("Lookup(%s) missing", ft)
		}
		if cfg.Label == "" || cfg.Icon == "" || cfg.Color == "" || cfg.BgColor == "" {
			t.Fatalf("Lookup(%s) has empty presentation metadata: %+v", ft, cfg)
		}
	}
}

func TestRegistryCapabilityFlags(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name  string
		ft    FieldType
		check func(FieldType) bool
		want  bool
	}{
		{"select has options", FieldTypeSelect, r.HasOptions, true},
		{"multiselect has options", FieldTypeMultiSelect, r.HasOptions, true},
		{"text has no options", FieldTypeText, r.HasOptions, false},
		{"text has validation", FieldTypeText, r.HasValidation, true},
		{"boolean has no validation", FieldTypeBoolean, r.HasValidation, false},
		{"relationship links collections", FieldTypeRelationship, r.HasRelationship, true},
		{"media has upload config", FieldTypeMedia, r.HasMediaConfig, true},
		{"slug has source", FieldTypeSlug, r.HasSlugSource, true},
		{"media has no default", FieldTypeMedia, r.HasDefaultValue, false},
		{"password has no default", FieldTypePassword, r.HasDefaultValue, false},
		{"text has default", FieldTypeText, r.HasDefaultValue, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.ft); got != tt.want {
				t.Fatalf("capability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistryValidationOptions(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name string
		ft   FieldType
		want ValidationOptions
	}{
		{"text", FieldTypeText, ValidationOptions{MinLength: true, MaxLength: true, Pattern: true}},
		{"textarea", FieldTypeTextArea, ValidationOptions{MinLength: true, MaxLength: true}},
		{"number", FieldTypeNumber, ValidationOptions{Min: true, Max: true}},
		{"media", FieldTypeMedia, ValidationOptions{AllowedTypes: true, MaxSize: true}},
		{"slug", FieldTypeSlug, ValidationOptions{MaxLength: true}},
		{"email", FieldTypeEmail, ValidationOptions{Pattern: true}},
		{"boolean none", FieldTypeBoolean, ValidationOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := r.Lookup(tt.ft)
			if !ok {
				t.Fatalf("Lookup(%s) missing", tt.ft)
			}
			if cfg.ValidationOptions != tt.want {
				t.Fatalf("ValidationOptions = %+v, want %+v", cfg.ValidationOptions, tt.want)
			}
		})
	}
}

func TestRegistryUnknownTypeFallsBack(t *testing.T) {
	r := DefaultRegistry()

	unknown := FieldType("GEOPOINT")
	if _, ok := r.Lookup(unknown); ok {
		t.Fatal("Lookup should report unknown type")
	}

	cfg := r.Config(unknown)
	if cfg.Type != unknown {
		t.Fatalf("fallback Type = %s, want %s", cfg.Type, unknown)
	}
	if cfg.Icon != "HelpCircle" || cfg.BgColor != "bg-gray-100" || cfg.Color != "text-gray-800" {
		t.Fatalf("fallback presentation = %+v", cfg)
	}
	if cfg.HasOptions || cfg.HasValidation || cfg.HasRelationship || cfg.HasMediaConfig || cfg.HasSlugSource {
		t.Fatalf("fallback must declare no capabilities: %+v", cfg)
	}
	if got := r.Label(unknown); got != "GEOPOINT" {
		t.Fatalf("Label = %q, want raw type string", got)
	}
}

func TestRegistryFilteredTypeLists(t *testing.T) {
	r := DefaultRegistry()

	withOptions := r.TypesWithOptions()
	if len(withOptions) != 2 || withOptions[0] != FieldTypeSelect || withOptions[1] != FieldTypeMultiSelect {
		t.Fatalf("TypesWithOptions() = %v", withOptions)
	}

	for _, ft := range r.TypesWithValidation() {
		if !r.HasValidation(ft) {
			t.Fatalf("TypesWithValidation() returned %s without validation", ft)
		}
	}
}
