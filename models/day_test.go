package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDayOfTruncatesToDate(t *testing.T) {
	d := DayOf(time.Date(2026, 8, 30, 23, 59, 58, 0, time.Local))
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
		t.Fatalf("DayOf left time-of-day components: %v", d)
	}
	if d.Year() != 2026 || d.Month() != time.August || d.Day() != 30 {
		t.Fatalf("DayOf changed the date: %v", d)
	}
}

func TestDayEqualIgnoresTimeOfDay(t *testing.T) {
	morning := DayOf(time.Date(2026, 8, 30, 1, 0, 0, 0, time.Local))
	evening := DayOf(time.Date(2026, 8, 30, 23, 0, 0, 0, time.Local))
	if !morning.Equal(evening) {
		t.Error("same calendar date must compare equal")
	}

	next := morning.AddDays(1)
	if morning.Equal(next) {
		t.Error("different dates must not compare equal")
	}
}

func TestDayAddDaysAcrossMonthBoundary(t *testing.T) {
	d := DayOf(time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local))
	if got := d.AddDays(1).String(); got != "2026-09-01" {
		t.Errorf("AddDays(1) = %s, want 2026-09-01", got)
	}
	if got := d.AddDays(-1).String(); got != "2026-08-30" {
		t.Errorf("AddDays(-1) = %s, want 2026-08-30", got)
	}
}

func TestDayJSONRoundTrip(t *testing.T) {
	d := DayOf(time.Date(2026, 8, 30, 15, 4, 5, 0, time.Local))

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2026-08-30"` {
		t.Fatalf("marshal = %s, want \"2026-08-30\"", b)
	}

	var parsed Day
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(d) {
		t.Errorf("round trip changed the date: %v != %v", parsed, d)
	}
}

func TestDayScan(t *testing.T) {
	var d Day
	if err := d.Scan(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if d.IsZero() {
		t.Error("scan from time.Time produced zero value")
	}

	var fromString Day
	if err := fromString.Scan("2026-08-30"); err != nil {
		t.Fatal(err)
	}
	if fromString.String() != "2026-08-30" {
		t.Errorf("scan from string = %s, want 2026-08-30", fromString)
	}

	if err := fromString.Scan(42); err == nil {
		t.Error("scan from int must fail")
	}
}
