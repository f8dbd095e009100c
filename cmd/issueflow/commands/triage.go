package commands

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"issueflow/internal/analysis"
	"issueflow/internal/report"
)

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Analyze the time from issue creation to first assignment",
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := loadIssues()
		if err != nil {
			return err
		}

		filters, sinceIgnored := analysis.NewFilters(flagCreator, flagLabel, flagSince)
		if sinceIgnored {
			log.Warn().Str("since", flagSince).Msg("Could not parse --since date, filter not applied")
		}
		filtered := filters.Apply(issues)

		result := analysis.AnalyzeTriage(filtered, analysis.ParseUnit(flagUnit))
		return emit(report.RenderTriage(result, reportOptions(time.Now().UTC())), result.Lines)
	},
}

func init() {
	addFilterFlags(triageCmd)
	addOutputFlags(triageCmd)
	rootCmd.AddCommand(triageCmd)
}
