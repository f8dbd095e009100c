package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"issueflow/internal/tracker"
)

// ActivityReport breaks a single user's tracker activity down into monthly
// per-label counts, ready for a stacked chart. Every label series has exactly
// len(Months) points.
type ActivityReport struct {
	User       string           `json:"user"`
	Months     []string         `json:"months"`
	Labels     []string         `json:"labels"`
	Series     map[string][]int `json:"series"`
	EventCount int              `json:"event_count"`
	Empty      bool             `json:"empty"`
	Message    string           `json:"message,omitempty"`
	Lines      []string         `json:"-"`
}

type activityEvent struct {
	date   time.Time
	labels []string
}

// AnalyzeActivity gathers all of a user's activity: a synthetic "opened"
// event for every issue they created, plus every dated history event they
// authored, and buckets the counts per calendar month per label. Label
// fan-out applies: an event on a multi-labeled issue counts toward every
// label of that issue.
func AnalyzeActivity(issues []tracker.Issue, user string) ActivityReport {
	var events []activityEvent
	for _, issue := range issues {
		labels := issueLabels(issue)
		if issue.Creator == user {
			if created := tracker.NormalizeTime(issue.Created); created != nil {
				events = append(events, activityEvent{date: *created, labels: labels})
			}
		}
		for _, ev := range issue.Events {
			if ev.Author != user {
				continue
			}
			if ts := tracker.NormalizeTime(ev.Date); ts != nil {
				events = append(events, activityEvent{date: *ts, labels: labels})
			}
		}
	}

	if len(events) == 0 {
		return ActivityReport{
			User:    user,
			Empty:   true,
			Message: fmt.Sprintf("no activity found for %s", user),
			Lines:   []string{fmt.Sprintf("No activity found for %s.", user)},
		}
	}

	counts := make(map[string]map[string]int) // month -> label -> count
	labelSet := make(map[string]bool)
	for _, ev := range events {
		month := ev.date.Format("2006-01")
		if counts[month] == nil {
			counts[month] = make(map[string]int)
		}
		for _, label := range ev.labels {
			counts[month][label]++
			labelSet[label] = true
		}
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	slices.Sort(months)

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	slices.SortFunc(labels, func(a, b string) int { return cmp.Compare(a, b) })

	series := make(map[string][]int, len(labels))
	for _, label := range labels {
		points := make([]int, len(months))
		for i, month := range months {
			points[i] = counts[month][label]
		}
		series[label] = points
	}

	report := ActivityReport{
		User:       user,
		Months:     months,
		Labels:     labels,
		Series:     series,
		EventCount: len(events),
	}
	report.Lines = []string{
		fmt.Sprintf("Found %d events across %d issues for %s.", len(events), len(issues), user),
		fmt.Sprintf("Activity spans %d months and %d labels.", len(months), len(labels)),
	}
	return report
}
