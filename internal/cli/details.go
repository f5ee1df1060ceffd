package cli

import (
	"github.com/spf13/cobra"
)

var (
	detailsGCID       string
	detailsExperiment string
	detailsDays       int
)

var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Show the lifecycle of one experiment for a user",
	Long: `Print start and end dates, running days, variants and overlap count of one
experiment as observed for a user during the trailing window.

Example:
  experiment-tracker details --gcid 1234 --experiment checkout_v2 --days 90`,
	Args: cobra.NoArgs,
	RunE: runDetails,
}

func init() {
	detailsCmd.Flags().StringVar(&detailsGCID, "gcid", "", "user identity")
	detailsCmd.Flags().StringVarP(&detailsExperiment, "experiment", "e", "", "experiment id")
	detailsCmd.Flags().IntVarP(&detailsDays, "days", "d", 0, "trailing window in days (default query.default_days)")
	_ = detailsCmd.MarkFlagRequired("gcid")
	_ = detailsCmd.MarkFlagRequired("experiment")
	rootCmd.AddCommand(detailsCmd)
}

func runDetails(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		days := detailsDays
		if days == 0 {
			days = a.cfg.Query.DefaultDays
		}
		detail, err := a.service.GetExperimentDetails(cmd.Context(), detailsGCID, detailsExperiment, days)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), detail)
	})
}
