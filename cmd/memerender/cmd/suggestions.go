package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"memerender/internal/suggestions"
)

var suggestionsCmd = &cobra.Command{
	Use:     "suggestions [query]",
	Aliases: []string{"s"},
	Short:   "List prompt suggestions, optionally filtered",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		list := suggestions.Get(query)
		if len(list) == 0 {
			fmt.Println(mutedStyle().Render(fmt.Sprintf("No suggestions match %q", query)))
			return
		}
		for _, s := range list {
			fmt.Printf("%s %s\n", suggestions.Icon(s.Label), titleStyle().Render(s.Label))
			fmt.Printf("   %s\n", s.Description)
			fmt.Printf("   %s\n\n", mutedStyle().Render(s.ExamplePrompt))
		}
	},
}

func init() {
	rootCmd.AddCommand(suggestionsCmd)
}
