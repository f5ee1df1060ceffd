package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errProbeFailed = errors.New("warehouse connection check failed")

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check the warehouse connection",
	Long:  `Run SELECT 1 against the configured warehouse. Exits non-zero when the check fails.`,
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		result := a.service.CheckConnection(cmd.Context())
		if err := printJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		if !result.OK {
			return errProbeFailed
		}
		return nil
	})
}
