// Package clock provides the advancing timestamp that drives generated log
// records. Times are naive wall-clock values held in UTC; the rendered zone
// offset is fixed by the record formatter and never derived from here.
package clock

import "time"

// DefaultStart is the first timestamp of a run when none is configured.
var DefaultStart = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

// Max is the latest instant a Clock will report. Advancing past it clamps.
var Max = time.Unix(1<<63-62135596801, 0).UTC()

// Clock is a mutable cursor over time with second resolution.
// It is not safe for concurrent use; a run threads one Clock through every file.
type Clock struct {
	now time.Time
}

// New creates a clock positioned at start, truncated to whole seconds.
func New(start time.Time) *Clock {
	return &Clock{now: start.UTC().Truncate(time.Second)}
}

// Now returns the current timestamp.
func (c *Clock) Now() time.Time {
	return c.now
}

// AdvanceOneSecond moves the clock forward by exactly one second.
func (c *Clock) AdvanceOneSecond() {
	c.AdvanceBy(time.Second)
}

// AdvanceBy moves the clock forward by d, clamping at Max instead of wrapping.
// Negative durations are ignored so the clock never goes backwards.
func (c *Clock) AdvanceBy(d time.Duration) {
	if d <= 0 {
		return
	}
	c.now = saturatingAdd(c.now, d)
}

// AdvanceToNextMidnight adds one day and then resets the time of day to
// 00:00:00. Called at 23:00 it lands on the following day, not the same one.
func (c *Clock) AdvanceToNextMidnight() {
	next := c.now.AddDate(0, 0, 1)
	if next.Before(c.now) || next.After(Max) {
		c.now = Max
		return
	}
	y, m, d := next.Date()
	c.now = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func saturatingAdd(t time.Time, d time.Duration) time.Time {
	if Max.Sub(t) <= d {
		return Max
	}
	next := t.Add(d)
	if next.Before(t) {
		return Max
	}
	return next
}
