package analysis

import (
	"slices"
	"time"

	"issueflow/internal/tracker"
)

// Filters narrows an issue collection before analysis. All predicates
// AND-combine; zero values mean "not applied".
type Filters struct {
	Creator string
	Label   string
	Since   *time.Time
}

// NewFilters builds Filters from raw CLI parameters. An unparseable since
// string degrades to "filter not applied"; SinceIgnored reports that so the
// caller can warn about it.
func NewFilters(creator, label, since string) (Filters, bool) {
	f := Filters{Creator: creator, Label: label}
	sinceIgnored := false
	if since != "" {
		f.Since = tracker.NormalizeTime(since)
		sinceIgnored = f.Since == nil
	}
	return f, sinceIgnored
}

// Apply returns the subset of issues matching every active predicate. The
// source slice is never mutated. While a since filter is active, issues
// without a resolvable creation instant are excluded.
func (f Filters) Apply(issues []tracker.Issue) []tracker.Issue {
	out := make([]tracker.Issue, 0, len(issues))
	for _, issue := range issues {
		if f.Creator != "" && issue.Creator != f.Creator {
			continue
		}
		if f.Label != "" && !slices.Contains(issue.Labels, f.Label) {
			continue
		}
		if f.Since != nil {
			created := tracker.NormalizeTime(issue.Created)
			if created == nil || created.Before(*f.Since) {
				continue
			}
		}
		out = append(out, issue)
	}
	return out
}
