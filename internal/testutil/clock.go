package testutil

import "time"

// FixedClock returns a now function pinned to t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseTime parses an RFC3339 instant, keeping its offset. Malformed input panics.
func MustParseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

// ClockAt pins a now function to the RFC3339 instant v.
func ClockAt(v string) func() time.Time {
	return FixedClock(MustParseTime(v))
}
