package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plumeworks/plume"
	"github.com/plumeworks/plume/form"
	"github.com/plumeworks/plume/internal/cache"
)

var (
	flagEntryStatus string
	flagEntryLimit  int
	flagEntryOffset int
	flagEntrySort   string
	flagEntrySet    []string
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Author and manage the entries of a collection",
}

var entriesListCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List a page of entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		q := &plume.EntryQuery{
			Limit:  cfg.Form.ClampPageSize(flagEntryLimit),
			Offset: flagEntryOffset,
			Sort:   flagEntrySort,
		}
		if flagEntryStatus != "" {
			q.Status = plume.EntryStatus(flagEntryStatus)
		}
		entries, meta, err := client.Collection(flagOrg, flagWorkspace, args[0]).ListEntries(cmd.Context(), q)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Data []plume.Entry  `json:"data"`
			Meta plume.ListMeta `json:"meta"`
		}{entries, *meta})
	},
}

var entriesGetCmd = &cobra.Command{
	Use:   "get <collection> <id>",
	Short: "Show one entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		entry, err := client.Collection(flagOrg, flagWorkspace, args[0]).GetEntry(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printJSON(entry)
	},
}

var entriesCreateCmd = &cobra.Command{
	Use:   "create <collection>",
	Short: "Create a draft entry",
	Long: `Create a draft entry. Values pass through the same form session the
admin UI uses, so per-type input handling, validation, and submission
cleanup apply identically. Provide values as --set name=value; array,
JSON, and datetime fields accept the same text their widgets do.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntryForm(cmd, args[0], "")
	},
}

var entriesEditCmd = &cobra.Command{
	Use:   "edit <collection> <id>",
	Short: "Edit an entry's data",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntryForm(cmd, args[0], args[1])
	},
}

var entriesDeleteCmd = &cobra.Command{
	Use:   "delete <collection> <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		return client.Collection(flagOrg, flagWorkspace, args[0]).DeleteEntry(cmd.Context(), args[1])
	},
}

// runEntryForm drives an entry session end to end: fetch the field
// definitions, seed defaults (and the existing entry in edit mode), apply
// the --set inputs, and submit. On create the draft is staged in the
// optimistic store so the listing the command prints afterwards already
// contains it, settled against the server response.
func runEntryForm(cmd *cobra.Command, collection, entryID string) error {
	if err := requireScope(); err != nil {
		return err
	}
	col, err := client.GetCollection(cmd.Context(), flagOrg, flagWorkspace, collection)
	if err != nil {
		return err
	}
	scoped := client.Collection(flagOrg, flagWorkspace, collection)

	var existing *plume.Entry
	if entryID != "" {
		existing, err = scoped.GetEntry(cmd.Context(), entryID)
		if err != nil {
			return err
		}
	}

	session := form.NewEntrySession(plume.DefaultRegistry(), col.Fields, existing)
	session.SetValidateOnChange(cfg.Form.ValidateOnChange)
	for _, pair := range flagEntrySet {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return plume.NewValidationError("set", fmt.Sprintf("expected name=value, got %q", pair))
		}
		if _, known := fieldByName(col.Fields, name); !known {
			return plume.NewValidationError(name, "no such field in collection")
		}
		session.SetValue(name, value)
	}

	var store *cache.Store
	var handle string
	scope := cache.Scope{Org: flagOrg, Workspace: flagWorkspace, Collection: collection}
	if existing == nil && cfg.Cache.Enabled {
		store = cache.New(cfg.Cache)
		store.Put(scope, nil, plume.ListMeta{})
		handle = store.InsertTentative(scope, plume.Entry{
			Status: plume.EntryStatusDraft,
			Data:   session.Values(),
		})
	}

	saved, err := session.Submit(cmd.Context(), scoped)
	if err != nil {
		if store != nil {
			if rerr := store.Reject(scope, handle); rerr != nil {
				zap.S().Warnw("failed to roll back pending entry", "handle", handle, "error", rerr)
			}
		}
		return err
	}
	if store != nil {
		if cerr := store.Confirm(scope, handle, *saved); cerr != nil {
			store.Invalidate(scope)
		}
	}
	return printJSON(saved)
}

func fieldByName(fields []plume.FieldDefinition, name string) (*plume.FieldDefinition, bool) {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i], true
		}
	}
	return nil, false
}

var entriesPublishCmd = &cobra.Command{
	Use:   "publish <collection> <id>",
	Short: "Publish an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		entry, err := client.Collection(flagOrg, flagWorkspace, args[0]).PublishEntry(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printJSON(entry)
	},
}

var entriesUnpublishCmd = &cobra.Command{
	Use:   "unpublish <collection> <id>",
	Short: "Revert an entry to draft",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		entry, err := client.Collection(flagOrg, flagWorkspace, args[0]).UnpublishEntry(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printJSON(entry)
	},
}

var entriesArchiveCmd = &cobra.Command{
	Use:   "archive <collection> <id>",
	Short: "Archive an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		entry, err := client.Collection(flagOrg, flagWorkspace, args[0]).ArchiveEntry(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printJSON(entry)
	},
}

var entriesRestoreCmd = &cobra.Command{
	Use:   "restore <collection> <id>",
	Short: "Restore an archived entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		entry, err := client.Collection(flagOrg, flagWorkspace, args[0]).RestoreEntry(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printJSON(entry)
	},
}

var entriesDuplicateCmd = &cobra.Command{
	Use:   "duplicate <collection> <id>",
	Short: "Create a draft copy of an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		entry, err := client.Collection(flagOrg, flagWorkspace, args[0]).DuplicateEntry(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printJSON(entry)
	},
}

var entriesBulkCmd = &cobra.Command{
	Use:   "bulk <publish|unpublish|delete> <collection> <id>...",
	Short: "Apply an action to many entries at once",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		scoped := client.Collection(flagOrg, flagWorkspace, args[1])
		ids := args[2:]

		var result *plume.BulkResult
		var err error
		switch args[0] {
		case "publish":
			result, err = scoped.BulkPublish(cmd.Context(), ids)
		case "unpublish":
			result, err = scoped.BulkUnpublish(cmd.Context(), ids)
		case "delete":
			result, err = scoped.BulkDelete(cmd.Context(), ids)
		default:
			return plume.NewValidationError("action", fmt.Sprintf("unknown bulk action %q", args[0]))
		}
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	entriesListCmd.Flags().StringVar(&flagEntryStatus, "status", "", "filter by status")
	entriesListCmd.Flags().IntVar(&flagEntryLimit, "limit", 0, "page size")
	entriesListCmd.Flags().IntVar(&flagEntryOffset, "offset", 0, "page offset")
	entriesListCmd.Flags().StringVar(&flagEntrySort, "sort", "", "sort expression")

	for _, cmd := range []*cobra.Command{entriesCreateCmd, entriesEditCmd} {
		cmd.Flags().StringArrayVar(&flagEntrySet, "set", nil, "field value as name=value (repeatable)")
	}

	entriesCmd.AddCommand(entriesListCmd)
	entriesCmd.AddCommand(entriesGetCmd)
	entriesCmd.AddCommand(entriesCreateCmd)
	entriesCmd.AddCommand(entriesEditCmd)
	entriesCmd.AddCommand(entriesDeleteCmd)
	entriesCmd.AddCommand(entriesPublishCmd)
	entriesCmd.AddCommand(entriesUnpublishCmd)
	entriesCmd.AddCommand(entriesArchiveCmd)
	entriesCmd.AddCommand(entriesRestoreCmd)
	entriesCmd.AddCommand(entriesDuplicateCmd)
	entriesCmd.AddCommand(entriesBulkCmd)
}
