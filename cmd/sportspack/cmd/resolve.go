package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sportspack/internal/application/commands"
	"sportspack/internal/domain"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <node-id> <attribute>",
	Short: "Print the effective value of an attribute",
	Long: `Print the value of an attribute on a node, inherited from the nearest
ancestor that sets it when the node does not.

Attributes: logo, remote_provider, remote_id

Examples:
  sportspack resolve 3f2a... logo
  sportspack resolve 3f2a... remote-provider`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolveCommand := commands.NewResolveAttributeCommand(GetContainer().Resolver, args[0], args[1])
		value, err := resolveCommand.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if value == "" {
			fmt.Fprintln(os.Stderr, mutedStyle.Render("(unset)"))
			return nil
		}
		fmt.Println(value)
		return nil
	},
}

var levelCmd = &cobra.Command{
	Use:   "level <node-id>",
	Short: "Print the hierarchy level of a container",
	Long: `Print the depth of a container in the hierarchy and its label:
0 Category, 1 Grouping, 2 Item. Missing nodes and non-containers
report -1 Unknown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := GetContainer().Resolver.HierarchyLevel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		label := domain.HierarchyLabel(level)
		fmt.Printf("%d %s\n", level, levelStyle(level).Render(label))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(levelCmd)
}
