package engine

import (
	"testing"
	"time"

	"issueflow/internal/tracker"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	cfg := GeneratorConfig{Scenario: "mild", Distribution: "uniform", Count: 50, Now: now, Seed: 1}

	issues := Generate(cfg)

	if len(issues) != 50 {
		t.Fatalf("generated %d issues, want 50", len(issues))
	}

	closed := 0
	for _, issue := range issues {
		if issue.Created == nil {
			t.Fatalf("issue #%d has no creation date", issue.Number)
		}
		if issue.Created.After(now) {
			t.Errorf("issue #%d created in the future", issue.Number)
		}
		if issue.IsClosed() {
			closed++
			if !hasEvent(issue, "closed") {
				t.Errorf("closed issue #%d has no closed event", issue.Number)
			}
			if len(issue.Assignees) == 0 {
				t.Errorf("closed issue #%d was never assigned", issue.Number)
			}
		} else if hasEvent(issue, "closed") {
			t.Errorf("open issue #%d carries a closed event", issue.Number)
		}
	}

	// With 50 daily arrivals and ~8.5 day mild durations most should be closed.
	if closed == 0 {
		t.Error("mild scenario produced no closed issues")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	now := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	cfg := GeneratorConfig{Scenario: "drift", Distribution: "weibull", Count: 20, Now: now, Seed: 42}

	first := Generate(cfg)
	second := Generate(cfg)

	for i := range first {
		if first[i].State != second[i].State || first[i].Creator != second[i].Creator {
			t.Fatalf("issue #%d differs between identical runs", first[i].Number)
		}
	}
}

func hasEvent(issue tracker.Issue, kind string) bool {
	for _, ev := range issue.Events {
		if ev.Type == kind {
			return true
		}
	}
	return false
}
