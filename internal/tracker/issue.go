package tracker

import "time"

// State is the lifecycle state of an issue.
type State string

const (
	// StateOpen indicates the issue is still open.
	StateOpen State = "open"
	// StateClosed indicates the issue has been closed.
	StateClosed State = "closed"
)

// Issue is the canonical issue shape used by every analysis. The data source
// is responsible for normalizing field names into this shape at the boundary;
// downstream code depends on exactly one field name per concept.
type Issue struct {
	Number    int        `json:"number"`
	Creator   string     `json:"creator"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	State     State      `json:"state"`
	Created   *time.Time `json:"created,omitempty"`
	Updated   *time.Time `json:"updated,omitempty"`
	Labels    []string   `json:"labels,omitempty"`
	Assignees []string   `json:"assignees,omitempty"`
	Events    []Event    `json:"events,omitempty"`
}

// Event is a single entry in an issue's history. Type is free text and
// compared case-insensitively. Date may be missing for degraded records;
// ordering then falls back to the owning issue's creation instant.
type Event struct {
	Type    string     `json:"type"`
	Date    *time.Time `json:"date,omitempty"`
	Author  string     `json:"author,omitempty"`
	Label   string     `json:"label,omitempty"`
	Comment string     `json:"comment,omitempty"`
}

// IsClosed reports whether the issue is in the closed state.
func (i Issue) IsClosed() bool {
	return i.State == StateClosed
}
