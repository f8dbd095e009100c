package analysis

import (
	"slices"
	"strings"
	"time"

	"issueflow/internal/tracker"
)

// assignmentKinds are the event types that unambiguously indicate an issue
// was picked up for work.
var assignmentKinds = map[string]bool{
	"assigned":      true,
	"assign":        true,
	"assignment":    true,
	"status_change": true,
	"state_change":  true,
}

// isAssignmentSignal classifies a single event as an assignment indicator.
// The substring heuristic on label/comment text is a weak signal kept behind
// this one function so it can be replaced by a fixed enumeration without
// touching aggregation.
func isAssignmentSignal(ev tracker.Event) bool {
	kind := strings.ToLower(strings.TrimSpace(ev.Type))
	if kind == "" {
		return false
	}
	if assignmentKinds[kind] {
		return true
	}
	if ev.Label != "" && strings.Contains(strings.ToLower(ev.Label), "assign") {
		return true
	}
	if ev.Comment != "" && strings.Contains(strings.ToLower(ev.Comment), "assign") {
		return true
	}
	return false
}

// CloseInstant resolves the instant an issue was last closed. An issue may be
// closed, reopened and closed again; the final closure is the one that
// matters, so the latest "closed" event wins. When no closed event exists but
// the issue state is closed, the updated instant serves as fallback.
func CloseInstant(issue tracker.Issue) *time.Time {
	var latest *time.Time
	for _, ev := range issue.Events {
		if !strings.EqualFold(strings.TrimSpace(ev.Type), "closed") {
			continue
		}
		ts := tracker.NormalizeTime(ev.Date)
		if ts == nil {
			continue
		}
		if latest == nil || ts.After(*latest) {
			latest = ts
		}
	}
	if latest != nil {
		return latest
	}
	if issue.IsClosed() {
		return tracker.NormalizeTime(issue.Updated)
	}
	return nil
}

// FirstAssignmentInstant resolves the instant of the earliest assignment
// signal in an issue's history. Events are ordered by event date, with the
// issue's creation instant substituting for events that carry no timestamp.
// Returns nil when the issue has no creation instant, no qualifying event, or
// the qualifying event itself is undated.
func FirstAssignmentInstant(issue tracker.Issue) *time.Time {
	created := tracker.NormalizeTime(issue.Created)
	if created == nil {
		return nil
	}

	sorted := make([]tracker.Event, len(issue.Events))
	copy(sorted, issue.Events)
	slices.SortStableFunc(sorted, func(a, b tracker.Event) int {
		return eventSortKey(a, *created).Compare(eventSortKey(b, *created))
	})

	for _, ev := range sorted {
		if !isAssignmentSignal(ev) {
			continue
		}
		return tracker.NormalizeTime(ev.Date)
	}
	return nil
}

func eventSortKey(ev tracker.Event, fallback time.Time) time.Time {
	if ts := tracker.NormalizeTime(ev.Date); ts != nil {
		return *ts
	}
	return fallback
}
