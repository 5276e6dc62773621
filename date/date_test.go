package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_normalizes(t *testing.T) {
	// Day 32 of January must roll over to February 1st.
	d := New(2025, time.January, 32)
	if got, want := d.String(), "2025-02-01"; got != want {
		t.Errorf("New(2025, 1, 32) = %q, want %q", got, want)
	}
}

func TestOf_discardsTimeOfDay(t *testing.T) {
	ts := time.Date(2023, time.March, 15, 23, 59, 59, 0, time.UTC)
	if got, want := Of(ts), New(2023, time.March, 15); got != want {
		t.Errorf("Of(%v) = %v, want %v", ts, got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-31", want: New(2025, time.July, 31)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "31/07/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAdd_acrossMonth(t *testing.T) {
	d := New(2023, time.February, 27)
	if got, want := d.Add(2), New(2023, time.March, 1); got != want {
		t.Errorf("Add(2) = %v, want %v", got, want)
	}
	if got, want := d.Add(-27), New(2023, time.January, 31); got != want {
		t.Errorf("Add(-27) = %v, want %v", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2024, time.December, 24)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2024-12-24"` {
		t.Errorf("Marshal() = %s, want %q", b, `"2024-12-24"`)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
