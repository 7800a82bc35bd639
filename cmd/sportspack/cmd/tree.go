package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sportspack/internal/application/commands"
	"sportspack/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree [root-id]",
	Short: "Display the container hierarchy",
	Long: `Display the container hierarchy, or the subtree under root-id.

Example:
  sportspack tree`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rootID string
		if len(args) == 1 {
			rootID = args[0]
		}

		c := GetContainer()
		forest, err := commands.NewBuildTreeCommand(c.Store, c.Store, rootID).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(forest) == 0 {
			fmt.Println(mutedStyle.Render("No containers."))
			return nil
		}

		for _, root := range forest {
			printTree(root)
		}
		return nil
	},
}

func printTree(root *domain.TreeNode) {
	for _, node := range root.Flatten() {
		indent := strings.Repeat("  ", node.Depth())
		fmt.Printf("%s%s %s\n", indent, levelStyle(node.Level).Render(node.Node.Title), mutedStyle.Render(node.Node.ID))
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
