package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"

	"issueflow/internal/analysis"
	"issueflow/internal/visuals"
)

// Options controls report assembly.
type Options struct {
	// Title heads the document, typically "owner/repo".
	Title string
	// Charts toggles the embedded Mermaid charts.
	Charts bool
	// GeneratedAt is the run's fixed reference instant.
	GeneratedAt time.Time
}

// Render assembles a completion or aging analysis report into a Markdown
// document.
func Render(r analysis.Report, opts Options) string {
	var sb strings.Builder
	writeHeader(&sb, opts, string(r.Mode)+" analysis")

	if r.Empty {
		sb.WriteString(r.Message + "\n")
		return sb.String()
	}

	for _, line := range r.Lines {
		sb.WriteString(line + "\n")
	}

	if opts.Charts {
		title := "Time-to-Close Distribution"
		if r.Mode == analysis.ModeAging {
			title = "Open Issue Age Distribution"
		}
		appendChart(&sb, visuals.GenerateBucketChart(r.Buckets, title))
		appendChart(&sb, visuals.GenerateTrendChart(r.Trend))
		appendChart(&sb, visuals.GenerateOldestChart(r.Oldest))
	}
	return sb.String()
}

// RenderTriage assembles a triage-time report.
func RenderTriage(r analysis.TriageReport, opts Options) string {
	var sb strings.Builder
	writeHeader(&sb, opts, "triage analysis")

	if r.Empty {
		sb.WriteString(r.Message + "\n")
		return sb.String()
	}
	for _, line := range r.Lines {
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// RenderActivity assembles a user-activity report.
func RenderActivity(r analysis.ActivityReport, opts Options) string {
	var sb strings.Builder
	writeHeader(&sb, opts, "activity analysis")

	if r.Empty {
		sb.WriteString(r.Message + "\n")
		return sb.String()
	}
	for _, line := range r.Lines {
		sb.WriteString(line + "\n")
	}
	if opts.Charts {
		appendChart(&sb, visuals.GenerateActivityChart(r))
	}
	return sb.String()
}

// Write persists a rendered report and optionally opens it in the system
// browser. A failed browser launch is logged, not fatal: the file is already
// on disk.
func Write(path, content string, open bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.Info().Str("path", path).Msg("Report written")

	if open {
		if err := browser.OpenFile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Could not open report in browser")
		}
	}
	return nil
}

func writeHeader(sb *strings.Builder, opts Options, kind string) {
	title := opts.Title
	if title == "" {
		title = "Issue Metrics"
	}
	fmt.Fprintf(sb, "# %s: %s\n\n", title, kind)
	if !opts.GeneratedAt.IsZero() {
		fmt.Fprintf(sb, "Generated %s\n\n", opts.GeneratedAt.UTC().Format(time.RFC3339))
	}
}

func appendChart(sb *strings.Builder, chart string) {
	if chart == "" {
		return
	}
	sb.WriteString("\n" + chart + "\n")
}
