package tracker

import "time"

// timeLayouts are tried in order when normalizing string timestamps. Layouts
// without a zone designator parse as UTC, which matches the normalization
// policy: naive timestamps are assumed UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTime converts a heterogeneous timestamp representation (nil,
// time.Time, *time.Time, or string) into a canonical UTC instant. It fails
// softly: unparseable or empty input yields nil, never an error.
func NormalizeTime(v any) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		utc := t.UTC()
		return &utc
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		utc := t.UTC()
		return &utc
	case string:
		if t == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				utc := parsed.UTC()
				return &utc
			}
		}
		return nil
	default:
		return nil
	}
}
