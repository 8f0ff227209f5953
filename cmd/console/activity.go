package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagActivityLimit int
	flagActivityJSON  bool
)

var activityCmd = &cobra.Command{
	Use:   "activity <collection>",
	Short: "Show a collection's recent activity feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireScope(); err != nil {
			return err
		}
		events, err := client.Collection(flagOrg, flagWorkspace, args[0]).Activity(cmd.Context(), flagActivityLimit)
		if err != nil {
			return err
		}
		if flagActivityJSON {
			return printJSON(events)
		}
		for _, ev := range events {
			fmt.Fprintf(os.Stdout, "%s  %s\n", ev.CreatedAt.Format("2006-01-02 15:04"), ev.Message())
		}
		return nil
	},
}

func init() {
	activityCmd.Flags().IntVar(&flagActivityLimit, "limit", 20, "number of events")
	activityCmd.Flags().BoolVar(&flagActivityJSON, "json", false, "print raw JSON instead of formatted lines")
}
