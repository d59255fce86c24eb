package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	loginName string
	loginKey  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store your Echo API key and remember you as the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginKey == "" {
			loginKey = os.Getenv("ECHO_API_KEY")
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		auth, err := e.auth(cmd.Context())
		if err != nil {
			return err
		}
		u, err := auth.SignIn(loginName, loginKey)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", okStyle().Render("Signed in as"), u.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		auth, err := e.auth(cmd.Context())
		if err != nil {
			return err
		}
		if err := auth.SignOut(); err != nil {
			return err
		}
		fmt.Println(okStyle().Render("Signed out"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		auth, err := e.auth(cmd.Context())
		if err != nil {
			return err
		}
		if u := auth.State().User; u != nil {
			fmt.Println(u.Name)
			return nil
		}
		fmt.Println(mutedStyle().Render("Not signed in. Get a key at " + auth.ServiceURL()))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginName, "name", "", "Display name")
	loginCmd.Flags().StringVar(&loginKey, "key", "", "Echo API key (default $ECHO_API_KEY)")
	_ = loginCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
