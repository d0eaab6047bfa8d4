package timeutil

import "time"

const (
	// DateLayout defines the canonical date format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// CompactLayout is the YYYYMMDD form some scoreboard APIs expect.
	CompactLayout = "20060102"
)

// Schedule days roll over at 09:30 local; earlier than that still belongs to the previous day.
const (
	rolloverHour   = 9
	rolloverMinute = 30
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatCompact formats a time as YYYYMMDD in its current location.
func FormatCompact(t time.Time) string {
	return t.Format(CompactLayout)
}

// TargetDate is the schedule date a fetch cycle should ask providers for.
type TargetDate struct {
	ISO     string
	Compact string
}

// NewTargetDate builds a TargetDate from the calendar date of t.
func NewTargetDate(t time.Time) TargetDate {
	return TargetDate{ISO: FormatDate(t), Compact: FormatCompact(t)}
}

// ResolveTargetDate returns today's schedule date in loc. Before 09:30 local the previous
// calendar day is returned so late games are still shown after midnight.
// A nil loc is treated as UTC.
func ResolveTargetDate(loc *time.Location, now time.Time) TargetDate {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc)
	if local.Hour() < rolloverHour || (local.Hour() == rolloverHour && local.Minute() < rolloverMinute) {
		day = day.AddDate(0, 0, -1)
	}
	return NewTargetDate(day)
}

// ParseTimestamp accepts the handful of timestamp layouts upstream feeds use.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04Z", "2006-01-02T15:04:05", "2006-01-02 15:04:05", DateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
