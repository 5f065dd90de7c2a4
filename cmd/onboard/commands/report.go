package commands

import (
	"github.com/spf13/cobra"

	"github.com/johnwards/onboard/internal/printer"
	"github.com/johnwards/onboard/internal/store"
)

var (
	reportStatus string
	reportJSON   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print onboarding summaries",
	Long: `Print one line per onboarding with its status, health, task progress
and next action. Health is coloured: green on track, yellow at risk,
red blocked. Set NO_COLOR to disable colours.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeDB, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		rows, err := s.Onboardings.List(cmd.Context(), store.OnboardingFilter{Status: reportStatus})
		if err != nil {
			return printer.Error("Cannot list onboardings", err.Error())
		}

		if reportJSON {
			return printer.ReportJSON(cmd.OutOrStdout(), rows)
		}
		printer.Report(cmd.OutOrStdout(), rows)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportStatus, "status", "Active", "status filter: Active, Completed, Paused, Archived or All")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "output JSON")
	rootCmd.AddCommand(reportCmd)
}
