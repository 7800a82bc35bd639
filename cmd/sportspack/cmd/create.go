package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sportspack/internal/application/commands"
)

var (
	createParent string
	createType   string
	createAttrs  map[string]string
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a node",
	Long: `Create a node. Without --parent a root category is created.

Examples:
  sportspack create "Football"
  sportspack create --parent 3f2a... "Champions League" --attr remote_provider=statsperform --attr remote_id=X1
  sportspack create --parent 9b1c... --type team "Ajax"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		createCommand := commands.NewCreateNodeCommand(c.Store, c.Resolver, createParent, createType, args[0], createAttrs)
		result, err := createCommand.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(result.Message))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createParent, "parent", "", "parent container ID")
	createCmd.Flags().StringVar(&createType, "type", "unit", "node type (unit, team, person, venue)")
	createCmd.Flags().StringToStringVar(&createAttrs, "attr", nil, "attribute as key=value (repeatable)")
	rootCmd.AddCommand(createCmd)
}
