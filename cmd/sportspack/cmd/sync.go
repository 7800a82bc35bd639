package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"sportspack/internal/application/commands"
)

var (
	syncDays     int
	syncProvider string
	fixturesPath string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync data from providers",
}

var syncEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Sync upcoming events into a container",
	Long: `Fetch upcoming events for a container from its provider and reconcile
them into the container's children.

The provider and remote competition ID are inherited from the nearest
ancestor that sets them. Events already synced (same remote ID) are
updated, new ones are created.

Examples:
  sportspack sync events --container 3f2a...
  sportspack sync events --container 3f2a... --days 14 --provider heimspiel
  sportspack sync events --container 3f2a... --fixtures events.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		containerID, _ := cmd.Flags().GetString("container")
		c := GetContainer()

		days := syncDays
		if !cmd.Flags().Changed("days") {
			days = c.Config.DefaultDays
		}

		syncCommand := commands.NewSyncEventsCommand(c.Engine, containerID, days, syncProvider)
		result, err := syncCommand.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(result.Message))
		fmt.Println(mutedStyle.Render(fmt.Sprintf("provider %s, remote ID %s, %d fetched in %s",
			result.Provider, result.RemoteID, result.Fetched, result.Duration.Round(time.Millisecond))))

		errs := multierr.Errors(result.Errors)
		for _, e := range errs {
			fmt.Println(warningStyle.Render("  ! " + e.Error()))
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d of %d records failed", result.Failed, result.Fetched)
		}
		return nil
	},
}

func init() {
	syncEventsCmd.Flags().String("container", "", "container node ID")
	syncEventsCmd.Flags().IntVar(&syncDays, "days", commands.DefaultDays, "number of days ahead to fetch")
	syncEventsCmd.Flags().StringVar(&syncProvider, "provider", "", "provider to use instead of the inherited one")
	syncEventsCmd.Flags().StringVar(&fixturesPath, "fixtures", "", "read provider events from a YAML fixture file")
	_ = syncEventsCmd.MarkFlagRequired("container")

	syncCmd.AddCommand(syncEventsCmd)
	rootCmd.AddCommand(syncCmd)
}
