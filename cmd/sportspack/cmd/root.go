package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sportspack/internal/config"
	"sportspack/internal/di"
	"sportspack/internal/logging"
)

var (
	dbPath     string
	configPath string
	verbose    bool
	container  *di.Container
)

var rootCmd = &cobra.Command{
	Use:   "sportspack",
	Short: "Manage a sports hierarchy and sync events from data providers",
	Long: `sportspack manages a tree of sports containers (category, grouping, item)
whose logo and provider settings are inherited from the nearest ancestor
that sets them.

It can sync upcoming events from a provider into a container, creating new
child containers or updating the ones already synced.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err := logging.New(verbose)
		if err != nil {
			return err
		}

		container, err = di.NewContainer(cfg, logger, di.Options{
			DBPath:       dbPath,
			FixturesPath: fixturesPath,
		})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if container != nil {
			return container.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if container != nil {
			_ = container.Close()
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DBPath(), "path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sportspack/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// GetContainer returns the initialized dependencies
func GetContainer() *di.Container {
	return container
}
