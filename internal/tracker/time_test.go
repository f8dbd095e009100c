package tracker

import (
	"testing"
	"time"
)

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected *time.Time
	}{
		{"Nil", nil, nil},
		{"EmptyString", "", nil},
		{"Garbage", "not-a-date", nil},
		{"RFC3339", "2023-06-15T12:30:00Z", ptr(time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC))},
		{"NaiveAssumedUTC", "2023-06-15T12:30:00", ptr(time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC))},
		{"DateOnly", "2023-06-15", ptr(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))},
		{"OffsetConvertedToUTC", "2023-06-15T14:30:00+02:00", ptr(time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC))},
		{"CompactOffsetWithMillis", "2023-06-15T12:30:00.000-0300", ptr(time.Date(2023, 6, 15, 15, 30, 0, 0, time.UTC))},
		{"UnsupportedType", 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTime(tt.input)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("NormalizeTime(%v) = %v, want %v", tt.input, got, tt.expected)
			}
			if got != nil && !got.Equal(*tt.expected) {
				t.Errorf("NormalizeTime(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTimeNativeInstant(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2023, 6, 15, 17, 0, 0, 0, loc)

	got := NormalizeTime(in)
	if got == nil {
		t.Fatal("expected non-nil instant")
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", got.Location())
	}
	if !got.Equal(in) {
		t.Errorf("conversion changed the instant: %v != %v", got, in)
	}

	if NormalizeTime(time.Time{}) != nil {
		t.Error("zero time should normalize to nil")
	}
	if NormalizeTime((*time.Time)(nil)) != nil {
		t.Error("nil pointer should normalize to nil")
	}
}

func ptr(t time.Time) *time.Time { return &t }
