package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sportspack/internal/application/commands"
)

var setCmd = &cobra.Command{
	Use:   "set <node-id> <attribute> [value]",
	Short: "Set or clear an attribute on a node",
	Long: `Set an attribute on a node. Without a value the attribute is cleared and
the node inherits it again from its ancestors.

Examples:
  sportspack set 3f2a... logo https://cdn.example.com/ucl.png
  sportspack set 3f2a... remote_provider statsperform
  sportspack set 3f2a... remote_id`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value string
		if len(args) == 3 {
			value = args[2]
		}

		c := GetContainer()
		result, err := commands.NewSetAttributeCommand(c.Store, c.Resolver, args[0], args[1], value).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(result.Message))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
