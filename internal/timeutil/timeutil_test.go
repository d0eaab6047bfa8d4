package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
	if got := FormatCompact(value); got != "20240102" {
		t.Fatalf("expected compact date, got %s", got)
	}
}

func TestResolveTargetDateRolloverBoundary(t *testing.T) {
	zones := []string{"UTC", "America/New_York", "America/Los_Angeles", "Europe/Rome", "Asia/Tokyo", "Australia/Sydney"}
	for _, name := range zones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		t.Run(name, func(t *testing.T) {
			before := time.Date(2025, 3, 15, 9, 29, 0, 0, loc)
			at := time.Date(2025, 3, 15, 9, 30, 0, 0, loc)

			if got := ResolveTargetDate(loc, before); got.ISO != "2025-03-14" || got.Compact != "20250314" {
				t.Fatalf("09:29 should resolve to yesterday, got %+v", got)
			}
			if got := ResolveTargetDate(loc, at); got.ISO != "2025-03-15" || got.Compact != "20250315" {
				t.Fatalf("09:30 should resolve to today, got %+v", got)
			}
		})
	}
}

func TestResolveTargetDateConvertsInstantToZone(t *testing.T) {
	ny, _ := time.LoadLocation("America/New_York")
	// 14:00 UTC is 10:00 in New York during daylight time.
	now := time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC)
	if got := ResolveTargetDate(ny, now); got.ISO != "2025-07-01" {
		t.Fatalf("expected 2025-07-01, got %s", got.ISO)
	}
	// 03:00 UTC is 23:00 the previous evening in New York.
	now = time.Date(2025, 7, 2, 3, 0, 0, 0, time.UTC)
	if got := ResolveTargetDate(ny, now); got.ISO != "2025-07-01" {
		t.Fatalf("expected 2025-07-01, got %s", got.ISO)
	}
}

func TestResolveTargetDateAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)
	if got := ResolveTargetDate(nil, now); got.ISO != "2025-02-28" {
		t.Fatalf("expected 2025-02-28, got %s", got.ISO)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := map[string]bool{
		"2025-01-02T00:30:00Z": true,
		"2025-01-02T00:30Z":    true,
		"2025-01-02":           true,
		"":                     false,
		"not a time":           false,
	}
	for input, ok := range cases {
		if _, got := ParseTimestamp(input); got != ok {
			t.Fatalf("ParseTimestamp(%q) ok=%v, want %v", input, got, ok)
		}
	}
}
