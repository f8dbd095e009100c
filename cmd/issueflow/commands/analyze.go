package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"issueflow/internal/analysis"
	"issueflow/internal/report"
)

var (
	flagCreator string
	flagLabel   string
	flagSince   string
	flagUnit    string
	flagOutput  string
	flagOpen    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze time-to-close for closed issues, or aging when none are closed",
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
		log.Info().Int("total", len(issues)).Int("filtered", len(filtered)).Msg("Applied filters")

		opts := analysisOptions()
		result := analysis.Analyze(filtered, opts)

		return emit(report.Render(result, reportOptions(opts.Now)), result.Lines)
	},
}

func init() {
	addFilterFlags(analyzeCmd)
	addOutputFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagCreator, "creator", "", "only issues opened by this user")
	cmd.Flags().StringVar(&flagLabel, "label", "", "only issues carrying this label")
	cmd.Flags().StringVar(&flagSince, "since", "", "only issues created on or after this date (e.g. 2023-01-01)")
	cmd.Flags().StringVar(&flagUnit, "unit", "days", "duration unit: days, hours or months")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the Markdown report to this file instead of stdout")
	cmd.Flags().BoolVar(&flagOpen, "open", false, "open the written report (requires --output)")
}

// analysisOptions merges the configured thresholds with the run's fixed
// reference instant.
func analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions(time.Now().UTC())
	opts.Unit = analysis.ParseUnit(flagUnit)
	opts.LabelMinSamples = cfg.Thresholds.LabelMinSamples
	opts.AgingLabelMinSamples = cfg.Thresholds.AgingLabelMinSamples
	opts.TrendMinSamples = cfg.Thresholds.TrendMinSamples
	opts.TopLabels = cfg.Thresholds.TopLabels
	opts.OldestLimit = cfg.Thresholds.OldestLimit
	return opts
}

func reportOptions(now time.Time) report.Options {
	return report.Options{
		Title:       repoTitle(),
		Charts:      cfg.EnableMermaidCharts,
		GeneratedAt: now,
	}
}

// emit routes a rendered report to a file or prints the plain summary lines.
func emit(doc string, lines []string) error {
	if flagOutput == "" {
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}
	path := flagOutput
	if !filepath.IsAbs(path) && cfg.ReportDir != "" && filepath.Dir(path) == "." {
		path = filepath.Join(cfg.ReportDir, path)
	}
	return report.Write(path, doc, flagOpen)
}
