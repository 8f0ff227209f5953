package main

import (
	"github.com/spf13/cobra"

	"github.com/plumeworks/plume"
)

var (
	flagCollectionName string
	flagCollectionDesc string
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage collections in a workspace",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the collections of a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		cols, err := client.ListCollections(cmd.Context(), flagOrg, flagWorkspace)
		if err != nil {
			return err
		}
		return printJSON(cols)
	},
}

var collectionsGetCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Show a collection with its field definitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		col, err := client.GetCollection(cmd.Context(), flagOrg, flagWorkspace, args[0])
		if err != nil {
			return err
		}
		return printJSON(col)
	},
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create <slug>",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		name := flagCollectionName
		if name == "" {
			name = args[0]
		}
		col, err := client.CreateCollection(cmd.Context(), flagOrg, flagWorkspace, &plume.CreateCollectionRequest{
			Name:        name,
			Slug:        args[0],
			Description: flagCollectionDesc,
		})
		if err != nil {
			return err
		}
		return printJSON(col)
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a collection and its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		return client.DeleteCollection(cmd.Context(), flagOrg, flagWorkspace, args[0])
	},
}

func init() {
	collectionsCreateCmd.Flags().StringVar(&flagCollectionName, "name", "", "display name (defaults to the slug)")
	collectionsCreateCmd.Flags().StringVar(&flagCollectionDesc, "description", "", "collection description")

	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsGetCmd)
	collectionsCmd.AddCommand(collectionsCreateCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
}
