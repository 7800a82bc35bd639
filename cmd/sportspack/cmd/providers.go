package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sportspack/internal/application/commands"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered providers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := commands.NewListProvidersCommand(GetContainer().Providers).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, p := range infos {
			status := warningStyle.Render("no credentials")
			if p.Configured {
				status = successStyle.Render("configured")
			}
			fmt.Printf("%-14s %s\n", p.Name, status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
