package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var providerKey string

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage provider API keys stored in the keyring",
}

var keysSetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Store the API key for a provider (gemini, anthropic, ...)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if providerKey == "" {
			providerKey = os.Getenv("MEMERENDER_API_KEY")
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		keys, err := e.keyring()
		if err != nil {
			return err
		}
		if err := keys.SaveApiKey(args[0], providerKey); err != nil {
			return err
		}
		fmt.Println(okStyle().Render("Stored key for " + args[0]))
		return nil
	},
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Remove the API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		keys, err := e.keyring()
		if err != nil {
			return err
		}
		if err := keys.DeleteApiKey(args[0]); err != nil {
			return err
		}
		fmt.Println(okStyle().Render("Removed key for " + args[0]))
		return nil
	},
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers with a stored key",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		keys, err := e.keyring()
		if err != nil {
			return err
		}
		list, err := keys.ListApiKeys()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println(mutedStyle().Render("No keys stored"))
			return nil
		}
		for _, k := range list {
			fmt.Println(titleStyle().Render(k["provider"]))
		}
		return nil
	},
}

func init() {
	keysSetCmd.Flags().StringVar(&providerKey, "key", "", "API key (default $MEMERENDER_API_KEY)")
	keysCmd.AddCommand(keysSetCmd, keysDeleteCmd, keysListCmd)
	rootCmd.AddCommand(keysCmd)
}
