package timezone

import (
	"testing"
	"time"
)

func TestToBeirutAddsFixedOffset(t *testing.T) {
	utc := time.Date(2025, time.March, 30, 22, 15, 0, 0, time.UTC)
	got := ToBeirut(utc)
	if got.Format(InputLayout) != "2025-03-31T01:15" {
		t.Fatalf("ToBeirut = %s", got.Format(InputLayout))
	}
	if !got.Equal(utc) {
		t.Fatal("ToBeirut must not change the instant")
	}
}

func TestRoundTripQuarterHours(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, Beirut)
	// Cover a full year including the dates on which Lebanon switches DST.
	for wall := start; wall.Year() == 2024; wall = wall.Add(15 * time.Minute * 37) {
		back := ToBeirut(ToUTC(wall))
		if !back.Equal(wall) || back.Format(time.RFC3339) != wall.Format(time.RFC3339) {
			t.Fatalf("round trip of %s gave %s", wall.Format(time.RFC3339), back.Format(time.RFC3339))
		}
	}
}

func TestToUTCIgnoresLocation(t *testing.T) {
	wall := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	got := ToUTC(wall)
	want := time.Date(2025, time.July, 1, 6, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC = %s, want %s", got, want)
	}
}

func TestInputRoundTrip(t *testing.T) {
	utc := time.Date(2025, time.October, 26, 21, 45, 0, 0, time.UTC)
	s := FormatInput(utc)
	if s != "2025-10-27T00:45" {
		t.Fatalf("FormatInput = %q", s)
	}
	back, err := ParseInput(s)
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if !back.Equal(utc) {
		t.Fatalf("ParseInput = %s, want %s", back, utc)
	}
}

func TestParseInputRejectsGarbage(t *testing.T) {
	if _, err := ParseInput("tomorrow"); err == nil {
		t.Fatal("expected error")
	}
}

func TestZeroTimesRenderEmpty(t *testing.T) {
	if FormatInput(time.Time{}) != "" || FormatDisplay(time.Time{}) != "" {
		t.Fatal("zero time should render empty")
	}
}
