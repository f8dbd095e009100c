package analysis

import (
	"slices"
	"testing"

	"issueflow/internal/tracker"
)

func TestAnalyzeActivity(t *testing.T) {
	issues := []tracker.Issue{
		{
			Number:  1,
			Creator: "alice",
			Created: ts("2023-05-10T00:00:00Z"),
			Labels:  []string{"bug"},
			Events: []tracker.Event{
				{Type: "comment", Author: "alice", Date: ts("2023-06-02T00:00:00Z")},
				{Type: "comment", Author: "bob", Date: ts("2023-06-03T00:00:00Z")},
			},
		},
		{
			Number:  2,
			Creator: "bob",
			Created: ts("2023-06-01T00:00:00Z"),
			Labels:  []string{"bug", "urgent"},
			Events: []tracker.Event{
				{Type: "labeled", Author: "alice", Date: ts("2023-06-05T00:00:00Z")},
			},
		},
		{
			Number:  3,
			Creator: "bob",
			Created: ts("2023-07-01T00:00:00Z"),
		},
	}

	report := AnalyzeActivity(issues, "alice")

	if report.Empty {
		t.Fatal("report unexpectedly empty")
	}
	// alice: opened #1 (May), commented on #1 (June), labeled #2 (June)
	if report.EventCount != 3 {
		t.Errorf("EventCount = %d, want 3", report.EventCount)
	}
	if !slices.Equal(report.Months, []string{"2023-05", "2023-06"}) {
		t.Errorf("Months = %v, want [2023-05 2023-06]", report.Months)
	}
	if !slices.Equal(report.Labels, []string{"bug", "urgent"}) {
		t.Errorf("Labels = %v, want [bug urgent]", report.Labels)
	}

	// fan-out: the event on #2 counts toward both of its labels
	if !slices.Equal(report.Series["bug"], []int{1, 2}) {
		t.Errorf("bug series = %v, want [1 2]", report.Series["bug"])
	}
	if !slices.Equal(report.Series["urgent"], []int{0, 1}) {
		t.Errorf("urgent series = %v, want [0 1]", report.Series["urgent"])
	}

	for label, series := range report.Series {
		if len(series) != len(report.Months) {
			t.Errorf("series %q has %d points, want %d", label, len(series), len(report.Months))
		}
	}
}

func TestAnalyzeActivityUnlabeledSentinel(t *testing.T) {
	issues := []tracker.Issue{
		{Number: 1, Creator: "carol", Created: ts("2023-06-01T00:00:00Z")},
	}

	report := AnalyzeActivity(issues, "carol")
	if !slices.Equal(report.Labels, []string{"unlabeled"}) {
		t.Errorf("Labels = %v, want [unlabeled]", report.Labels)
	}
}

func TestAnalyzeActivityNoMatch(t *testing.T) {
	issues := []tracker.Issue{
		{Number: 1, Creator: "alice", Created: ts("2023-06-01T00:00:00Z")},
	}

	report := AnalyzeActivity(issues, "nobody")
	if !report.Empty {
		t.Error("unknown user should yield empty report")
	}
	if report.Message == "" {
		t.Error("empty report should carry a message")
	}
}

func TestAnalyzeActivityUndatedEventsDropped(t *testing.T) {
	issues := []tracker.Issue{
		{
			Number:  1,
			Creator: "bob",
			Events: []tracker.Event{
				{Type: "comment", Author: "alice"}, // no date
			},
		},
	}

	report := AnalyzeActivity(issues, "alice")
	if !report.Empty {
		t.Error("undated-only activity should yield empty report")
	}
}
