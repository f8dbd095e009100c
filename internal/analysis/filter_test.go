package analysis

import (
	"testing"

	"issueflow/internal/tracker"
)

func TestNewFilters(t *testing.T) {
	t.Run("ValidSince", func(t *testing.T) {
		f, ignored := NewFilters("alice", "bug", "2023-01-01")
		if ignored {
			t.Error("valid since should not be ignored")
		}
		if f.Since == nil {
			t.Fatal("Since not parsed")
		}
		if f.Creator != "alice" || f.Label != "bug" {
			t.Errorf("unexpected filters: %+v", f)
		}
	})

	t.Run("UnparseableSinceIgnored", func(t *testing.T) {
		f, ignored := NewFilters("", "", "not-a-date")
		if !ignored {
			t.Error("unparseable since should report ignored")
		}
		if f.Since != nil {
			t.Errorf("Since = %v, want nil", f.Since)
		}
	})

	t.Run("EmptySinceNotIgnored", func(t *testing.T) {
		_, ignored := NewFilters("", "", "")
		if ignored {
			t.Error("empty since is absence, not failure")
		}
	})
}

func TestFiltersApply(t *testing.T) {
	issues := []tracker.Issue{
		{Number: 1, Creator: "alice", Labels: []string{"bug"}, Created: ts("2023-01-15T00:00:00Z")},
		{Number: 2, Creator: "bob", Labels: []string{"bug", "urgent"}, Created: ts("2023-03-01T00:00:00Z")},
		{Number: 3, Creator: "alice", Labels: []string{"feature"}, Created: ts("2022-11-01T00:00:00Z")},
		{Number: 4, Creator: "carol"}, // no labels, no created
	}

	tests := []struct {
		name    string
		creator string
		label   string
		since   string
		want    []int
	}{
		{"NoFilters", "", "", "", []int{1, 2, 3, 4}},
		{"ByCreator", "alice", "", "", []int{1, 3}},
		{"ByLabel", "", "bug", "", []int{1, 2}},
		{"BySince", "", "", "2023-01-01", []int{1, 2}},
		{"SinceExcludesUndated", "carol", "", "2023-01-01", nil},
		{"Combined", "alice", "bug", "2023-01-01", []int{1}},
		{"UnparseableSinceNotApplied", "", "", "garbage", []int{1, 2, 3, 4}},
		{"NoMatch", "dave", "", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := NewFilters(tt.creator, tt.label, tt.since)
			got := f.Apply(issues)
			var nums []int
			for _, issue := range got {
				nums = append(nums, issue.Number)
			}
			if len(nums) != len(tt.want) {
				t.Fatalf("Apply() kept %v, want %v", nums, tt.want)
			}
			for i := range nums {
				if nums[i] != tt.want[i] {
					t.Errorf("Apply() kept %v, want %v", nums, tt.want)
					break
				}
			}
		})
	}

	t.Run("SourceNotMutated", func(t *testing.T) {
		f, _ := NewFilters("alice", "", "")
		f.Apply(issues)
		if len(issues) != 4 || issues[1].Creator != "bob" {
			t.Error("Apply mutated its input")
		}
	})
}
