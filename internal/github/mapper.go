package github

import (
	"time"

	gh "github.com/google/go-github/v62/github"

	"issueflow/internal/tracker"
)

// MapIssue normalizes a GitHub API issue into the canonical shape. All
// downstream analysis depends on exactly one field name per concept, so this
// boundary is the only place GitHub's naming appears.
func MapIssue(item *gh.Issue, events []tracker.Event) tracker.Issue {
	issue := tracker.Issue{
		Number:  item.GetNumber(),
		Creator: item.GetUser().GetLogin(),
		Title:   item.GetTitle(),
		URL:     item.GetHTMLURL(),
		State:   mapState(item.GetState()),
		Created: timestampPtr(item.CreatedAt),
		Updated: timestampPtr(item.UpdatedAt),
		Events:  events,
	}

	for _, label := range item.Labels {
		if name := label.GetName(); name != "" {
			issue.Labels = append(issue.Labels, name)
		}
	}
	for _, assignee := range item.Assignees {
		if login := assignee.GetLogin(); login != "" {
			issue.Assignees = append(issue.Assignees, login)
		}
	}
	return issue
}

// MapEvent normalizes one timeline event.
func MapEvent(ev *gh.IssueEvent) tracker.Event {
	return tracker.Event{
		Type:   ev.GetEvent(),
		Date:   timestampPtr(ev.CreatedAt),
		Author: ev.GetActor().GetLogin(),
		Label:  ev.GetLabel().GetName(),
	}
}

func mapState(s string) tracker.State {
	if s == "closed" {
		return tracker.StateClosed
	}
	return tracker.StateOpen
}

func timestampPtr(ts *gh.Timestamp) *time.Time {
	if ts == nil || ts.Time.IsZero() {
		return nil
	}
	t := ts.Time.UTC()
	return &t
}
