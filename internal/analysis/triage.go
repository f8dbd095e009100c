package analysis

import (
	"fmt"
	"math"

	"issueflow/internal/tracker"
)

// TriageSummary describes the distribution of creation-to-first-assignment
// durations in the configured unit.
type TriageSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Std    float64 `json:"std"`
}

// TriageReport is the outcome of a triage-time analysis run.
type TriageReport struct {
	Unit    Unit          `json:"unit"`
	Summary TriageSummary `json:"summary"`
	Records []Record      `json:"-"`
	Empty   bool          `json:"empty"`
	Message string        `json:"message,omitempty"`
	Lines   []string      `json:"-"`
}

// AnalyzeTriage computes the elapsed time from issue creation to the first
// assignment signal for every issue where both instants resolve. Issues
// without a creation date or without a dated assignment event are dropped,
// not reported.
func AnalyzeTriage(issues []tracker.Issue, unit Unit) TriageReport {
	var records []Record
	for _, issue := range issues {
		created := tracker.NormalizeTime(issue.Created)
		if created == nil {
			continue
		}
		assigned := FirstAssignmentInstant(issue)
		value := Between(created, assigned, unit)
		if value == nil {
			continue
		}
		records = append(records, Record{
			Number:  issue.Number,
			Value:   *value,
			Labels:  issueLabels(issue),
			Creator: issue.Creator,
			Title:   issue.Title,
			URL:     issue.URL,
			Month:   created.Format("2006-01"),
		})
	}

	if len(records) == 0 {
		return TriageReport{
			Unit:    unit,
			Empty:   true,
			Message: "no triage/assignment events found in dataset",
			Lines:   []string{"No triage/assignment events found in dataset."},
		}
	}

	values := recordValues(records)
	summary := TriageSummary{
		Count:  len(values),
		Mean:   mean(values),
		Median: Median(values),
		Min:    values[0],
		Max:    values[0],
	}
	for _, v := range values {
		if v < summary.Min {
			summary.Min = v
		}
		if v > summary.Max {
			summary.Max = v
		}
	}
	summary.Std = stddev(values, summary.Mean)

	report := TriageReport{
		Unit:    unit,
		Summary: summary,
		Records: records,
	}
	report.Lines = []string{
		fmt.Sprintf("Triage time summary (%s):", unit),
		fmt.Sprintf("  count: %d", summary.Count),
		fmt.Sprintf("  mean: %.2f", summary.Mean),
		fmt.Sprintf("  median: %.2f", summary.Median),
		fmt.Sprintf("  min: %.2f", summary.Min),
		fmt.Sprintf("  max: %.2f", summary.Max),
		fmt.Sprintf("  std: %.2f", summary.Std),
	}
	return report
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
