package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"issueflow/internal/analysis"
	"issueflow/internal/report"
)

var flagUser string

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Break one user's tracker activity down into monthly per-label counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagUser == "" {
			return fmt.Errorf("--user is required for activity analysis")
		}
		// Activity already fans out across every label of the touched issues;
		// narrowing to one label would misrepresent the user's footprint.
		if flagLabel != "" {
			return fmt.Errorf("--label cannot be combined with activity analysis")
		}

		issues, err := loadIssues()
		if err != nil {
			return err
		}

		filters, sinceIgnored := analysis.NewFilters(flagCreator, "", flagSince)
		if sinceIgnored {
			log.Warn().Str("since", flagSince).Msg("Could not parse --since date, filter not applied")
		}
		filtered := filters.Apply(issues)

		result := analysis.AnalyzeActivity(filtered, flagUser)
		return emit(report.RenderActivity(result, reportOptions(time.Now().UTC())), result.Lines)
	},
}

func init() {
	activityCmd.Flags().StringVar(&flagUser, "user", "", "the user whose activity to analyze (required)")
	addFilterFlags(activityCmd)
	addOutputFlags(activityCmd)
	rootCmd.AddCommand(activityCmd)
}
