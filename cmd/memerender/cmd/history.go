package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"memerender/internal/services"
)

var (
	historyLimit  int
	historyOffset int
)

func historyService(cmd *cobra.Command) (services.HistoryService, error) {
	e, err := openEnv()
	if err != nil {
		return nil, err
	}
	applyTheme(e).Close()
	auth, err := e.auth(cmd.Context())
	if err != nil {
		return nil, err
	}
	svc := services.NewHistoryService(e.dbs.Records, auth)
	svc.Startup(cmd.Context())
	return svc, nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past generations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyListCmd.RunE(cmd, args)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := historyService(cmd)
		if err != nil {
			return err
		}
		recs, err := svc.List(historyLimit, historyOffset)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println(mutedStyle().Render("No generations yet"))
			return nil
		}
		for _, r := range recs {
			status := okStyle().Render(r.Status)
			if r.Status != "succeeded" {
				status = errorStyle().Render(r.Status)
			}
			fmt.Printf("%s  %s  %s\n", mutedStyle().Render(r.CreatedAt.Format("2006-01-02 15:04")), status, titleStyle().Render(r.ID))
			fmt.Printf("   %s\n", oneLine(r.Prompt))
			if r.Error != "" {
				fmt.Printf("   %s\n", errorStyle().Render(r.Error))
			}
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := historyService(cmd)
		if err != nil {
			return err
		}
		if err := svc.Delete(args[0]); err != nil {
			return err
		}
		fmt.Println(okStyle().Render("Deleted " + args[0]))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all of your generations",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := historyService(cmd)
		if err != nil {
			return err
		}
		if err := svc.Clear(); err != nil {
			return err
		}
		fmt.Println(okStyle().Render("History cleared"))
		return nil
	},
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 100 {
		return s[:97] + "..."
	}
	return s
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of records")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "Records to skip")
	historyCmd.Flags().AddFlagSet(historyListCmd.Flags())
	historyCmd.AddCommand(historyListCmd, historyDeleteCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
