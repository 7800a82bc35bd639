package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sportspack/internal/adapters/editor"
	"sportspack/internal/application/commands"
)

var editCmd = &cobra.Command{
	Use:   "edit <node-id>",
	Short: "Edit a node's content in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		editCommand := commands.NewEditContentCommand(c.Store, c.Resolver, editor.New(), args[0])
		result, err := editCommand.Execute(cmd.Context())
		if err != nil {
			return err
		}
		if !result.Changed {
			fmt.Println(mutedStyle.Render(result.Message))
			return nil
		}
		fmt.Println(successStyle.Render(result.Message))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
