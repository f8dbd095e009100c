package analysis

import (
	"fmt"
	"slices"
	"time"

	"issueflow/internal/tracker"
)

// Mode identifies which analysis path produced a report. The mode is selected
// by data availability, not by configuration: completion analysis runs
// whenever any closed issue yields a valid completion duration, and aging
// analysis is the fallback for datasets with no usable closed issues.
type Mode string

const (
	ModeCompletion Mode = "completion"
	ModeAging      Mode = "aging"
)

// Options carries the tunable parameters of one analysis run. The
// minimum-sample thresholds are deliberately configuration rather than hidden
// constants; the defaults mirror long-standing reporting practice (3 samples
// per label group for completion, 2 for aging, 3 per trend month).
type Options struct {
	Unit                 Unit
	LabelMinSamples      int
	AgingLabelMinSamples int
	TrendMinSamples      int
	TopLabels            int
	OldestLimit          int
	// Now is sampled once per run and threaded into every age computation so
	// a run is internally consistent and reproducible.
	Now time.Time
}

// DefaultOptions returns the standard analysis configuration for a run
// anchored at the given instant.
func DefaultOptions(now time.Time) Options {
	return Options{
		Unit:                 UnitDays,
		LabelMinSamples:      3,
		AgingLabelMinSamples: 2,
		TrendMinSamples:      3,
		TopLabels:            3,
		OldestLimit:          15,
		Now:                  now,
	}
}

// BucketCount pairs a distribution bucket with its population.
type BucketCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrendSeries holds the monthly median lines for the trend chart: one overall
// line plus one line per top label.
type TrendSeries struct {
	Overall []MonthPoint            `json:"overall"`
	Labels  []string                `json:"labels,omitempty"`
	ByLabel map[string][]MonthPoint `json:"by_label,omitempty"`
}

// Report is the structured outcome of one analysis run plus the
// human-readable summary lines derived from it.
type Report struct {
	Mode         Mode           `json:"mode"`
	Unit         Unit           `json:"unit"`
	Summary      Summary        `json:"summary"`
	Buckets      []BucketCount  `json:"buckets,omitempty"`
	ByLabel      []CategoryStat `json:"by_label,omitempty"`
	ByAssignment []CategoryStat `json:"by_assignment,omitempty"`
	Trend        TrendSeries    `json:"trend,omitempty"`
	Oldest       []Record       `json:"oldest,omitempty"`
	Records      []Record       `json:"-"`
	Empty        bool           `json:"empty"`
	Message      string         `json:"message,omitempty"`
	Lines        []string       `json:"-"`
}

var (
	completionBucketNames = []string{"fast (<=7d)", "normal (<=30d)", "slow (<=90d)", "stale (>90d)"}
	agingBucketNames      = []string{"recent (<=7d)", "normal (<=30d)", "old (<=90d)", "stale (>90d)"}
)

// Analyze runs the completion-time analysis over the (already filtered) issue
// collection, falling back to open-issue aging when no closed issue yields a
// usable duration. Empty input is not an error: the worst case is an empty
// report carrying a no-data message.
func Analyze(issues []tracker.Issue, opts Options) Report {
	var closed, open []tracker.Issue
	for _, issue := range issues {
		if issue.IsClosed() {
			closed = append(closed, issue)
		} else {
			open = append(open, issue)
		}
	}

	records := completionRecords(closed, opts.Unit)
	if len(records) > 0 {
		return analyzeCompletion(records, opts)
	}

	ages := agingRecords(open, opts)
	if len(ages) > 0 {
		return analyzeAging(ages, opts)
	}

	return Report{
		Empty:   true,
		Message: "no issues with usable timing data after filtering",
		Lines:   []string{"No issues with usable timing data after filtering."},
	}
}

// completionRecords derives one duration record per closed issue with a
// resolvable creation and close instant. Records with negative durations are
// absent, never clamped.
func completionRecords(closed []tracker.Issue, unit Unit) []Record {
	var records []Record
	for _, issue := range closed {
		created := tracker.NormalizeTime(issue.Created)
		closedAt := CloseInstant(issue)
		value := Between(created, closedAt, unit)
		if value == nil {
			continue
		}
		records = append(records, Record{
			Number:   issue.Number,
			Value:    *value,
			Labels:   issueLabels(issue),
			Assigned: len(issue.Assignees) > 0,
			Creator:  issue.Creator,
			Title:    issue.Title,
			URL:      issue.URL,
			Month:    closedAt.Format("2006-01"),
		})
	}
	return records
}

// agingRecords derives one age record per open issue, measured against the
// run's fixed "now".
func agingRecords(open []tracker.Issue, opts Options) []Record {
	var records []Record
	for _, issue := range open {
		created := tracker.NormalizeTime(issue.Created)
		age := AgeAt(created, opts.Now, opts.Unit)
		if age == nil {
			continue
		}
		records = append(records, Record{
			Number:   issue.Number,
			Value:    *age,
			Labels:   issueLabels(issue),
			Assigned: len(issue.Assignees) > 0,
			Creator:  issue.Creator,
			Title:    issue.Title,
			URL:      issue.URL,
			Month:    created.Format("2006-01"),
		})
	}
	return records
}

func analyzeCompletion(records []Record, opts Options) Report {
	values := recordValues(records)
	summary := Summarize(values)

	topLabels := TopLabels(records, opts.TopLabels)
	byLabel := make(map[string][]MonthPoint, len(topLabels))
	for _, label := range topLabels {
		var subset []Record
		for _, r := range records {
			if slices.Contains(r.Labels, label) {
				subset = append(subset, r)
			}
		}
		byLabel[label] = MonthlyMedianSeries(subset, opts.TrendMinSamples)
	}

	report := Report{
		Mode:         ModeCompletion,
		Unit:         opts.Unit,
		Summary:      summary,
		Buckets:      namedBuckets(BucketCounts(toDays(values, opts.Unit), DayBuckets), completionBucketNames),
		ByLabel:      GroupByLabel(records, opts.LabelMinSamples, true),
		ByAssignment: GroupByAssignment(records, 1),
		Trend: TrendSeries{
			Overall: MonthlyMedianSeries(records, opts.TrendMinSamples),
			Labels:  topLabels,
			ByLabel: byLabel,
		},
		Records: records,
	}
	report.Lines = completionLines(report)
	return report
}

func analyzeAging(records []Record, opts Options) Report {
	values := recordValues(records)

	oldest := make([]Record, len(records))
	copy(oldest, records)
	slices.SortFunc(oldest, func(a, b Record) int {
		if a.Value != b.Value {
			if a.Value > b.Value {
				return -1
			}
			return 1
		}
		return a.Number - b.Number
	})
	if len(oldest) > opts.OldestLimit {
		oldest = oldest[:opts.OldestLimit]
	}

	report := Report{
		Mode:    ModeAging,
		Unit:    opts.Unit,
		Summary: Summarize(values),
		Buckets: namedBuckets(BucketCounts(toDays(values, opts.Unit), DayBuckets), agingBucketNames),
		ByLabel: GroupByLabel(records, opts.AgingLabelMinSamples, false),
		Oldest:  oldest,
		Records: records,
	}
	report.Lines = agingLines(report)
	return report
}

func completionLines(r Report) []string {
	u := unitSuffix(r.Unit)
	lines := []string{
		fmt.Sprintf("Closed issues analyzed: %d", r.Summary.Count),
		fmt.Sprintf("Median time-to-close: %.1f %s | Mean: %.1f %s | P90: %.1f %s | P95: %.1f %s",
			r.Summary.Median, u, r.Summary.Mean, u, r.Summary.P90, u, r.Summary.P95, u),
	}
	for _, b := range r.Buckets {
		lines = append(lines, fmt.Sprintf("  %s: %d (%.1f%%)",
			b.Name, b.Count, percent(b.Count, r.Summary.Count)))
	}
	if len(r.ByLabel) > 0 {
		fastest := r.ByLabel[0]
		slowest := r.ByLabel[len(r.ByLabel)-1]
		lines = append(lines,
			fmt.Sprintf("Fastest label: %s (%.1f %s median, n=%d)", fastest.Category, fastest.Median, u, fastest.Count),
			fmt.Sprintf("Slowest label: %s (%.1f %s median, n=%d)", slowest.Category, slowest.Median, u, slowest.Count))
	}
	for _, g := range r.ByAssignment {
		lines = append(lines, fmt.Sprintf("  %s: %.1f %s median (%d issues)", g.Category, g.Median, u, g.Count))
	}
	return lines
}

func agingLines(r Report) []string {
	u := unitSuffix(r.Unit)
	lines := []string{
		"No usable closed issues; analyzing open-issue aging instead.",
		fmt.Sprintf("Open issues analyzed: %d", r.Summary.Count),
		fmt.Sprintf("Median age: %.1f %s | Mean: %.1f %s | P90: %.1f %s",
			r.Summary.Median, u, r.Summary.Mean, u, r.Summary.P90, u),
	}
	for _, b := range r.Buckets {
		lines = append(lines, fmt.Sprintf("  %s: %d (%.1f%%)",
			b.Name, b.Count, percent(b.Count, r.Summary.Count)))
	}
	for _, g := range r.ByLabel {
		lines = append(lines, fmt.Sprintf("  %s: %.1f %s median age (%d issues)", g.Category, g.Median, u, g.Count))
	}
	for _, o := range r.Oldest {
		lines = append(lines, fmt.Sprintf("  #%d: %.0f %s - %s", o.Number, o.Value, u, truncate(o.Title, 60)))
	}
	return lines
}

// toDays converts run-unit values back to days so the fixed day-threshold
// buckets stay meaningful regardless of the configured unit.
func toDays(values []float64, unit Unit) []float64 {
	if unit == UnitDays {
		return values
	}
	out := make([]float64, len(values))
	for i, v := range values {
		switch unit {
		case UnitHours:
			out[i] = v / 24.0
		case UnitMonths:
			out[i] = v * daysPerMonth
		}
	}
	return out
}

func unitSuffix(u Unit) string {
	switch u {
	case UnitHours:
		return "h"
	case UnitMonths:
		return "mo"
	default:
		return "d"
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func namedBuckets(counts []int, names []string) []BucketCount {
	out := make([]BucketCount, len(counts))
	for i, c := range counts {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		out[i] = BucketCount{Name: name, Count: c}
	}
	return out
}

func recordValues(records []Record) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Value
	}
	return values
}

// issueLabels returns an issue's labels, substituting the "unlabeled"
// sentinel so every record belongs to at least one category group.
func issueLabels(issue tracker.Issue) []string {
	if len(issue.Labels) == 0 {
		return []string{"unlabeled"}
	}
	return issue.Labels
}
