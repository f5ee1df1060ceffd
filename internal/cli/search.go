package cli

import (
	"github.com/spf13/cobra"
)

var (
	searchGCID string
	searchDays int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List a user's daily experiment participation",
	Long: `Print, per day, the experiments a user took part in during the trailing window.

Example:
  experiment-tracker search --gcid 1234 --days 30`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchGCID, "gcid", "", "user identity to search for")
	searchCmd.Flags().IntVarP(&searchDays, "days", "d", 0, "trailing window in days (default query.default_days)")
	_ = searchCmd.MarkFlagRequired("gcid")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		days := searchDays
		if days == 0 {
			days = a.cfg.Query.DefaultDays
		}
		result, err := a.service.SearchParticipation(cmd.Context(), searchGCID, days)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	})
}
