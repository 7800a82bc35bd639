package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sportspack/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <node-id>",
	Short: "Show a node with its own and inherited attributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		details, err := commands.NewShowNodeCommand(c.Store, c.Resolver, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		n := details.Node
		fmt.Println(titleStyle.Render(n.Title))
		fmt.Printf("%s %s\n", labelStyle.Render("ID:     "), n.ID)
		fmt.Printf("%s %s\n", labelStyle.Render("Type:   "), n.Type)
		if n.HasParent() {
			fmt.Printf("%s %s\n", labelStyle.Render("Parent: "), n.ParentID)
		}
		fmt.Printf("%s %d %s\n", labelStyle.Render("Level:  "), details.Level, levelStyle(details.Level).Render(details.Label))
		fmt.Println()

		for _, v := range details.Values {
			value := v.Effective
			switch {
			case value == "":
				value = mutedStyle.Render("(unset)")
			case v.Inherited():
				value += " " + inheritedStyle.Render("(inherited)")
			}
			fmt.Printf("  %-16s %s\n", v.Attribute.Key(), value)
		}

		if n.Content != "" {
			fmt.Println()
			fmt.Println(n.Content)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
