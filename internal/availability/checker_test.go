package availability

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"
)

// fixedChecker returns a Checker over the default 10:00-22:00 calendar with
// the clock pinned to 2026-09-01 09:00 UTC (a Tuesday).
func fixedChecker() *Checker {
    return &Checker{
        Schedule: DefaultSchedule(),
        Now: func() time.Time {
            return time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
        },
    }
}

func TestOverlapsHalfOpen(t *testing.T) {
    a := Interval{Start: 600, End: 720} // 10:00-12:00

    require.True(t, a.Overlaps(Interval{Start: 660, End: 780}))
    require.True(t, a.Overlaps(Interval{Start: 540, End: 660}))
    require.True(t, a.Overlaps(Interval{Start: 630, End: 690}))

    // Back-to-back bookings never conflict.
    require.False(t, a.Overlaps(Interval{Start: 720, End: 780}))
    require.False(t, a.Overlaps(Interval{Start: 480, End: 600}))
}

func TestParseAndFormatClock(t *testing.T) {
    min, err := ParseClock("15:30")
    require.NoError(t, err)
    require.Equal(t, 15*60+30, min)
    require.Equal(t, "09:05", FormatClock(9*60+5))

    _, err = ParseClock("25:00")
    require.Error(t, err)
}

func TestCheckFreeSlot(t *testing.T) {
    c := fixedChecker()
    err := c.Check("2026-09-02", 600, 2, nil)
    require.NoError(t, err)
}

func TestCheckOverlapRejected(t *testing.T) {
    c := fixedChecker()
    existing := []Interval{{Start: 600, End: 720}}

    err := c.Check("2026-09-02", 660, 1, existing)
    require.ErrorIs(t, err, ErrSlotTaken)

    // The adjacent slot is fine.
    err = c.Check("2026-09-02", 720, 1, existing)
    require.NoError(t, err)
}

func TestCheckOutsideBusinessHours(t *testing.T) {
    c := fixedChecker()

    // Starts before opening.
    require.ErrorIs(t, c.Check("2026-09-02", 9*60, 1, nil), ErrOutsideHours)
    // Ends after closing (21:00 + 2h > 22:00).
    require.ErrorIs(t, c.Check("2026-09-02", 21*60, 2, nil), ErrOutsideHours)
    // Ends exactly at closing is allowed.
    require.NoError(t, c.Check("2026-09-02", 21*60, 1, nil))
}

func TestCheckClosedDay(t *testing.T) {
    c := fixedChecker()
    c.Schedule.ClosedDates["2026-09-02"] = true
    require.ErrorIs(t, c.Check("2026-09-02", 600, 1, nil), ErrClosedDay)

    // A closed weekday behaves the same.
    c2 := fixedChecker()
    c2.Schedule.Hours[time.Wednesday] = nil
    require.ErrorIs(t, c2.Check("2026-09-02", 600, 1, nil), ErrClosedDay)
}

func TestCheckPastStart(t *testing.T) {
    c := fixedChecker()

    // Yesterday.
    require.ErrorIs(t, c.Check("2026-08-31", 600, 1, nil), ErrPastStart)

    // Today, start equal to "now" counts as past; a later start is fine
    // (clock pinned at 09:00, facility opens 10:00).
    c.Now = func() time.Time { return time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC) }
    require.ErrorIs(t, c.Check("2026-09-01", 11*60, 1, nil), ErrPastStart)
    require.NoError(t, c.Check("2026-09-01", 12*60, 1, nil))
}

func TestDaySlots(t *testing.T) {
    c := fixedChecker()
    existing := []Interval{{Start: 600, End: 720}} // 10:00-12:00 booked

    slots, err := c.DaySlots("2026-09-02", existing)
    require.NoError(t, err)
    require.Len(t, slots, 12) // 10:00..22:00 in one-hour steps

    require.Equal(t, "10:00", slots[0].Start)
    require.False(t, slots[0].Available)
    require.False(t, slots[1].Available)
    require.True(t, slots[2].Available)
    require.Equal(t, "21:00", slots[11].Start)
    require.Equal(t, "22:00", slots[11].End)
    require.True(t, slots[11].Available)
}

func TestDaySlotsClosedDay(t *testing.T) {
    c := fixedChecker()
    c.Schedule.ClosedDates["2026-09-02"] = true
    slots, err := c.DaySlots("2026-09-02", nil)
    require.NoError(t, err)
    require.Empty(t, slots)
}

func TestParseWindow(t *testing.T) {
    dh, ok := parseWindow("08:30-23:00")
    require.True(t, ok)
    require.Equal(t, 8*60+30, dh.OpenMin)
    require.Equal(t, 23*60, dh.CloseMin)

    _, ok = parseWindow("22:00-10:00")
    require.False(t, ok)
    _, ok = parseWindow("garbage")
    require.False(t, ok)
}

func TestLoadSchedule(t *testing.T) {
    t.Setenv("BUSINESS_HOURS", "09:00-21:00")
    t.Setenv("BUSINESS_HOURS_SUN", "closed")
    t.Setenv("BUSINESS_HOURS_FRI", "09:00-23:00")
    t.Setenv("CLOSED_DATES", "2026-12-25, 2027-01-01, not-a-date")

    s := LoadSchedule()
    require.Nil(t, s.Hours[time.Sunday])
    require.Equal(t, &DayHours{OpenMin: 9 * 60, CloseMin: 21 * 60}, s.Hours[time.Monday])
    require.Equal(t, &DayHours{OpenMin: 9 * 60, CloseMin: 23 * 60}, s.Hours[time.Friday])
    require.True(t, s.ClosedDates["2026-12-25"])
    require.True(t, s.ClosedDates["2027-01-01"])
    require.False(t, s.ClosedDates["not-a-date"])
}
