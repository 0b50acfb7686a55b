// Package availability decides whether a table slot can be booked.  It is
// pure interval arithmetic: callers load the already-booked intervals for a
// table and date from storage and probe candidate windows through the
// Checker.  All windows are half-open [start, end) in minutes since
// midnight, so back-to-back bookings (one ending exactly when the next
// starts) never conflict.
package availability

import (
    "errors"
    "fmt"
    "time"
)

// Sentinel errors returned by Check.  Callers translate these into their
// own conflict taxonomy; all four mean "this slot cannot be booked".
var (
    ErrClosedDay    = errors.New("facility is closed on the requested day")
    ErrOutsideHours = errors.New("slot is outside business hours")
    ErrPastStart    = errors.New("slot starts in the past")
    ErrSlotTaken    = errors.New("slot overlaps an existing reservation")
)

// Interval is a half-open [Start, End) window in minutes since midnight.
type Interval struct {
    Start int
    End   int
}

// Overlaps applies the half-open interval test: [a,b) and [c,d) overlap
// iff a < d && c < b.
func (i Interval) Overlaps(o Interval) bool {
    return i.Start < o.End && o.Start < i.End
}

// ParseClock converts "15:04" into minutes since midnight.
func ParseClock(s string) (int, error) {
    t, err := time.Parse("15:04", s)
    if err != nil {
        return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
    }
    return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back into "15:04".
func FormatClock(min int) string {
    return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Checker evaluates candidate slots against the facility calendar and a
// table's existing bookings.  Now is injectable for tests and defaults to
// time.Now; "today" comparisons run in UTC to match storage.
type Checker struct {
    Schedule Schedule
    Now      func() time.Time
}

// New returns a Checker over the given schedule using the real clock.
func New(s Schedule) *Checker {
    return &Checker{Schedule: s, Now: time.Now}
}

// Check reports whether the window [startMin, startMin+durationHours*60) on
// the given date ("2006-01-02") can be booked, given the intervals already
// occupying the table that day.  It returns nil when the slot is free and
// one of the sentinel errors otherwise.  An empty existing slice means the
// slot is available subject to the calendar checks.
func (c *Checker) Check(date string, startMin, durationHours int, existing []Interval) error {
    day, err := time.Parse("2006-01-02", date)
    if err != nil {
        return fmt.Errorf("invalid date %q: %w", date, err)
    }
    if c.Schedule.ClosedDates[date] {
        return ErrClosedDay
    }
    hours := c.Schedule.Hours[day.Weekday()]
    if hours == nil {
        return ErrClosedDay
    }
    candidate := Interval{Start: startMin, End: startMin + durationHours*60}
    if candidate.Start < hours.OpenMin || candidate.End > hours.CloseMin {
        return ErrOutsideHours
    }
    now := c.Now().UTC()
    today := now.Format("2006-01-02")
    if date < today {
        return ErrPastStart
    }
    if date == today && candidate.Start <= now.Hour()*60+now.Minute() {
        return ErrPastStart
    }
    for _, iv := range existing {
        if candidate.Overlaps(iv) {
            return ErrSlotTaken
        }
    }
    return nil
}

// Slot is one bookable unit in a day's enumeration.
type Slot struct {
    Start     string `json:"start"`
    End       string `json:"end"`
    Available bool   `json:"available"`
}

// DaySlots enumerates the day's one-hour slots across the open window and
// probes each one independently through Check.  On a closed day it returns
// an empty list.
func (c *Checker) DaySlots(date string, existing []Interval) ([]Slot, error) {
    day, err := time.Parse("2006-01-02", date)
    if err != nil {
        return nil, fmt.Errorf("invalid date %q: %w", date, err)
    }
    slots := []Slot{}
    if c.Schedule.ClosedDates[date] {
        return slots, nil
    }
    hours := c.Schedule.Hours[day.Weekday()]
    if hours == nil {
        return slots, nil
    }
    for start := hours.OpenMin; start+60 <= hours.CloseMin; start += 60 {
        slots = append(slots, Slot{
            Start:     FormatClock(start),
            End:       FormatClock(start + 60),
            Available: c.Check(date, start, 1, existing) == nil,
        })
    }
    return slots, nil
}
