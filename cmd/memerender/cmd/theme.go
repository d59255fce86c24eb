package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"memerender/internal/services"
	"memerender/internal/theme"
)

func newStorage(e *env) theme.Storage {
	return services.NewPreferenceStorage(e.dbs.Preferences)
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the light/dark/system preference",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runThemeGet()
	},
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored preference and what it resolves to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runThemeGet()
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Store a new preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark), string(theme.System)},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := theme.ParsePreference(args[0])
		if err != nil {
			return err
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		store := applyTheme(e)
		defer store.Close()
		store.SetTheme(p)
		fmt.Printf("%s %s (%s)\n", okStyle().Render("Theme set to"), p, store.Appearance())
		return nil
	},
}

func runThemeGet() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	store := applyTheme(e)
	defer store.Close()
	fmt.Printf("%s %s\n", titleStyle().Render("Preference:"), store.GetInitialTheme())
	fmt.Printf("%s %s\n", titleStyle().Render("Appearance:"), store.Appearance())
	return nil
}

func init() {
	themeCmd.AddCommand(themeGetCmd, themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}
