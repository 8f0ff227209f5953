package main

import (
	"github.com/spf13/cobra"

	"github.com/plumeworks/plume"
	"github.com/plumeworks/plume/form"
)

var (
	flagFieldLabel    string
	flagFieldName     string
	flagFieldType     string
	flagFieldDesc     string
	flagFieldRequired bool
	flagFieldUnique   bool
	flagFieldOptions  []string
	flagFieldRelated  string
	flagFieldSource   string
	flagFieldMinLen   string
	flagFieldMaxLen   string
	flagFieldMin      string
	flagFieldMax      string
	flagFieldPattern  string
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Manage the field definitions of a collection",
}

var fieldsListCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List a collection's field definitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		col, err := client.GetCollection(cmd.Context(), flagOrg, flagWorkspace, args[0])
		if err != nil {
			return err
		}
		return printJSON(col.Fields)
	},
}

var fieldsAddCmd = &cobra.Command{
	Use:   "add <collection>",
	Short: "Add a field to a collection",
	Long: `Add a field to a collection. The definition is assembled through the
same editor the admin UI uses, so name derivation, option rows, and the
config/validation payload rules apply identically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		col, err := client.GetCollection(cmd.Context(), flagOrg, flagWorkspace, args[0])
		if err != nil {
			return err
		}

		editor := form.NewFieldEditor(plume.DefaultRegistry(), nil, col.Fields, nil)
		if err := applyFieldFlags(cmd, editor); err != nil {
			return err
		}

		created, err := editor.Submit(cmd.Context(), client.Collection(flagOrg, flagWorkspace, args[0]))
		if err != nil {
			return err
		}
		return printJSON(created)
	},
}

var fieldsUpdateCmd = &cobra.Command{
	Use:   "update <collection> <field-id>",
	Short: "Update a field definition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		col, err := client.GetCollection(cmd.Context(), flagOrg, flagWorkspace, args[0])
		if err != nil {
			return err
		}
		var existing *plume.FieldDefinition
		for i := range col.Fields {
			if col.Fields[i].ID == args[1] {
				existing = &col.Fields[i]
				break
			}
		}
		if existing == nil {
			return plume.NewNotFoundError("no such field in collection")
		}

		editor := form.NewFieldEditor(plume.DefaultRegistry(), nil, col.Fields, existing)
		if err := applyFieldFlags(cmd, editor); err != nil {
			return err
		}

		updated, err := editor.Submit(cmd.Context(), client.Collection(flagOrg, flagWorkspace, args[0]))
		if err != nil {
			return err
		}
		return printJSON(updated)
	},
}

var fieldsDeleteCmd = &cobra.Command{
	Use:   "delete <collection> <field-id>",
	Short: "Delete a field definition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		return client.Collection(flagOrg, flagWorkspace, args[0]).DeleteField(cmd.Context(), args[1])
	},
}

// applyFieldFlags feeds the flag values into the editor in the order an
// operator would: type first, then label (driving name derivation), then
// an explicit name override and the rest. Only flags the operator actually
// set are applied, so an update leaves unmentioned settings alone.
func applyFieldFlags(cmd *cobra.Command, editor *form.FieldEditor) error {
	changed := cmd.Flags().Changed

	if changed("type") {
		if err := editor.SetType(plume.FieldType(flagFieldType)); err != nil {
			return err
		}
	}
	if changed("label") {
		editor.SetLabel(flagFieldLabel)
	}
	if changed("name") {
		editor.SetName(flagFieldName)
	}
	if changed("description") {
		editor.SetDescription(flagFieldDesc)
	}
	if changed("required") {
		editor.SetRequired(flagFieldRequired)
	}
	if changed("unique") {
		editor.SetUnique(flagFieldUnique)
	}

	for i, label := range flagFieldOptions {
		if i > 0 {
			editor.AddOption()
		}
		editor.SetOptionLabel(i, label)
	}
	if changed("related-collection") {
		editor.SetRelatedCollection(flagFieldRelated)
	}
	if changed("source-field") {
		editor.SetSourceField(flagFieldSource)
	}
	if changed("min-length") {
		editor.SetMinLength(flagFieldMinLen)
	}
	if changed("max-length") {
		editor.SetMaxLength(flagFieldMaxLen)
	}
	if changed("min") {
		editor.SetMin(flagFieldMin)
	}
	if changed("max") {
		editor.SetMax(flagFieldMax)
	}
	if changed("pattern") {
		editor.SetPattern(flagFieldPattern)
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{fieldsAddCmd, fieldsUpdateCmd} {
		cmd.Flags().StringVar(&flagFieldLabel, "label", "", "display label")
		cmd.Flags().StringVar(&flagFieldName, "name", "", "wire name (derived from label when omitted)")
		cmd.Flags().StringVar(&flagFieldType, "type", "", "field type (create only)")
		cmd.Flags().StringVar(&flagFieldDesc, "description", "", "help text for editors")
		cmd.Flags().BoolVar(&flagFieldRequired, "required", false, "field must have a value")
		cmd.Flags().BoolVar(&flagFieldUnique, "unique", false, "value must be unique across entries")
		cmd.Flags().StringSliceVar(&flagFieldOptions, "option", nil, "option label (repeatable; values derived)")
		cmd.Flags().StringVar(&flagFieldRelated, "related-collection", "", "relationship target collection slug")
		cmd.Flags().StringVar(&flagFieldSource, "source-field", "", "slug source sibling field name")
		cmd.Flags().StringVar(&flagFieldMinLen, "min-length", "", "minimum length constraint")
		cmd.Flags().StringVar(&flagFieldMaxLen, "max-length", "", "maximum length constraint")
		cmd.Flags().StringVar(&flagFieldMin, "min", "", "minimum value constraint")
		cmd.Flags().StringVar(&flagFieldMax, "max", "", "maximum value constraint")
		cmd.Flags().StringVar(&flagFieldPattern, "pattern", "", "regular expression constraint")
	}

	fieldsCmd.AddCommand(fieldsListCmd)
	fieldsCmd.AddCommand(fieldsAddCmd)
	fieldsCmd.AddCommand(fieldsUpdateCmd)
	fieldsCmd.AddCommand(fieldsDeleteCmd)
}
