// Package nflweek resolves the NFL game week: which Thursday-to-Monday window to show and
// when the playoff bracket has moved on to the next round.
package nflweek

import (
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// Days in a game window, Thursday through Monday.
const windowDays = 5

// Wednesday from 09:00 local already belongs to the coming week.
const (
	turnoverDay  = time.Wednesday
	turnoverHour = 9
)

// advanceRule is a playoff round size and the local time after which the next round's
// schedule is published. The values track one publisher's update cadence and are not
// derived from anything; revisit them if the round stops advancing on time.
type advanceRule struct {
	count     int
	dayOffset int
	hour      int
	minute    int
}

var advanceRules = []advanceRule{
	{count: 6, dayOffset: 5, hour: 15, minute: 0},  // wild card, Tuesday 15:00
	{count: 4, dayOffset: 4, hour: 15, minute: 15}, // divisional, Monday 15:15
	{count: 2, dayOffset: 4, hour: 15, minute: 15}, // conference, Monday 15:15
}

// Range is one game window.
type Range struct {
	StartISO string
	EndISO   string
	Dates    []timeutil.TargetDate
}

// WeekStart returns local midnight of the Thursday on or before now. From Wednesday 09:00
// the following Thursday is returned instead.
func WeekStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	back := (int(day.Weekday()) - int(time.Thursday) + 7) % 7
	start := day.AddDate(0, 0, -back)
	if now.Weekday() == turnoverDay && now.Hour() >= turnoverHour {
		start = start.AddDate(0, 0, 7)
	}
	return start
}

// RangeFrom builds the five-day window beginning at start.
func RangeFrom(start time.Time) Range {
	dates := make([]timeutil.TargetDate, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		// Noon keeps DST transitions from shifting the calendar day.
		d := time.Date(start.Year(), start.Month(), start.Day()+i, 12, 0, 0, 0, start.Location())
		dates = append(dates, timeutil.NewTargetDate(d))
	}
	return Range{
		StartISO: dates[0].ISO,
		EndISO:   dates[len(dates)-1].ISO,
		Dates:    dates,
	}
}

// ShouldAdvance reports whether a finished playoff round should give way to the next
// week's window. It only applies in January and February, to round sizes with a known
// cutoff, once the cutoff has passed and no game is still to start.
func ShouldAdvance(now, weekStart time.Time, list []games.Game) bool {
	if now.Month() != time.January && now.Month() != time.February {
		return false
	}
	rule, ok := ruleFor(len(list))
	if !ok {
		return false
	}
	cutoff := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day()+rule.dayOffset,
		rule.hour, rule.minute, 0, 0, weekStart.Location())
	if now.Before(cutoff) {
		return false
	}
	for _, g := range list {
		if start, ok := g.StartTime(); ok && start.After(now) {
			return false
		}
	}
	return true
}

func ruleFor(count int) (advanceRule, bool) {
	for _, r := range advanceRules {
		if r.count == count {
			return r, true
		}
	}
	return advanceRule{}, false
}
