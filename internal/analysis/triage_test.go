package analysis

import (
	"math"
	"testing"

	"issueflow/internal/tracker"
)

func TestAnalyzeTriage(t *testing.T) {
	issues := []tracker.Issue{
		{
			Number:  1,
			Created: ts("2023-06-01T00:00:00Z"),
			Events: []tracker.Event{
				{Type: "assigned", Date: ts("2023-06-03T00:00:00Z")}, // 2 days
			},
		},
		{
			Number:  2,
			Created: ts("2023-06-01T00:00:00Z"),
			Events: []tracker.Event{
				{Type: "labeled", Date: ts("2023-06-02T00:00:00Z")},
				{Type: "assigned", Date: ts("2023-06-05T00:00:00Z")}, // 4 days
			},
		},
		{
			Number:  3,
			Created: ts("2023-06-01T00:00:00Z"),
			Events: []tracker.Event{
				{Type: "assigned", Date: ts("2023-06-13T00:00:00Z")}, // 12 days
			},
		},
		{Number: 4, Created: ts("2023-06-01T00:00:00Z")}, // never assigned, dropped
		{Number: 5},                                      // no created, dropped
	}

	report := AnalyzeTriage(issues, UnitDays)

	if report.Empty {
		t.Fatal("report unexpectedly empty")
	}
	s := report.Summary
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if math.Abs(s.Mean-6) > 1e-9 {
		t.Errorf("Mean = %v, want 6", s.Mean)
	}
	if s.Median != 4 {
		t.Errorf("Median = %v, want 4", s.Median)
	}
	if s.Min != 2 || s.Max != 12 {
		t.Errorf("Min/Max = %v/%v, want 2/12", s.Min, s.Max)
	}
	// sample std of {2, 4, 12}: sqrt((16+4+36)/2) = sqrt(28)
	if math.Abs(s.Std-math.Sqrt(28)) > 1e-9 {
		t.Errorf("Std = %v, want %v", s.Std, math.Sqrt(28))
	}
	if len(report.Lines) == 0 {
		t.Error("expected summary lines")
	}
}

func TestAnalyzeTriageHours(t *testing.T) {
	issues := []tracker.Issue{
		{
			Number:  1,
			Created: ts("2023-06-01T00:00:00Z"),
			Events: []tracker.Event{
				{Type: "assigned", Date: ts("2023-06-01T06:00:00Z")},
			},
		},
	}

	report := AnalyzeTriage(issues, UnitHours)
	if report.Summary.Median != 6 {
		t.Errorf("Median = %v hours, want 6", report.Summary.Median)
	}
}

func TestAnalyzeTriageEmpty(t *testing.T) {
	report := AnalyzeTriage(nil, UnitDays)
	if !report.Empty {
		t.Error("no issues should yield empty report")
	}
	if report.Message == "" {
		t.Error("empty report should carry a message")
	}

	report = AnalyzeTriage([]tracker.Issue{{Number: 1, Created: ts("2023-06-01T00:00:00Z")}}, UnitDays)
	if !report.Empty {
		t.Error("issues without assignment events should yield empty report")
	}
}

func TestStddev(t *testing.T) {
	if got := stddev([]float64{5}, 5); got != 0 {
		t.Errorf("stddev of single value = %v, want 0", got)
	}
	if got := stddev([]float64{1, 1, 1}, 1); got != 0 {
		t.Errorf("stddev of constant = %v, want 0", got)
	}
}
