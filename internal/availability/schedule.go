package availability

// This file defines the facility's opening calendar.  Business hours are
// configured per weekday through environment variables, mirroring how the
// rest of the application loads configuration:
//   BUSINESS_HOURS           – default "HH:MM-HH:MM" window for every weekday
//   BUSINESS_HOURS_SUN..SAT  – per-weekday override; the value "closed"
//                              flags that weekday as closed
//   CLOSED_DATES             – comma-separated "2006-01-02" dates (holidays)
// Invalid values fall back to the default window rather than failing
// startup, since a mis-typed holiday list should not take bookings offline.

import (
    "os"
    "strings"
    "time"
)

// DayHours is the open window of a single weekday, in minutes since
// midnight.  The window is half-open: a slot must satisfy
// Open <= start and end <= Close.
type DayHours struct {
    OpenMin  int
    CloseMin int
}

// Schedule is the facility calendar consulted by the Checker.  Hours is
// indexed by time.Weekday; a nil entry means the facility is closed on that
// weekday.  ClosedDates flags individual dates (holidays, maintenance days)
// as closed regardless of weekday.
type Schedule struct {
    Hours       [7]*DayHours
    ClosedDates map[string]bool
}

// DefaultSchedule returns a calendar open 10:00–22:00 every day with no
// closed dates.  It is used when no environment configuration is present.
func DefaultSchedule() Schedule {
    s := Schedule{ClosedDates: map[string]bool{}}
    for d := range s.Hours {
        s.Hours[d] = &DayHours{OpenMin: 10 * 60, CloseMin: 22 * 60}
    }
    return s
}

var weekdayKeys = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// LoadSchedule builds a Schedule from environment variables, starting from
// the default window and applying overrides.
func LoadSchedule() Schedule {
    s := DefaultSchedule()
    if def := os.Getenv("BUSINESS_HOURS"); def != "" {
        if dh, ok := parseWindow(def); ok {
            for d := range s.Hours {
                s.Hours[d] = &DayHours{OpenMin: dh.OpenMin, CloseMin: dh.CloseMin}
            }
        }
    }
    for d, key := range weekdayKeys {
        v := os.Getenv("BUSINESS_HOURS_" + key)
        if v == "" {
            continue
        }
        if strings.EqualFold(strings.TrimSpace(v), "closed") {
            s.Hours[d] = nil
            continue
        }
        if dh, ok := parseWindow(v); ok {
            s.Hours[d] = &dh
        }
    }
    for _, raw := range strings.Split(os.Getenv("CLOSED_DATES"), ",") {
        date := strings.TrimSpace(raw)
        if date == "" {
            continue
        }
        if _, err := time.Parse("2006-01-02", date); err == nil {
            s.ClosedDates[date] = true
        }
    }
    return s
}

// parseWindow parses "HH:MM-HH:MM" into a DayHours.  A window where the
// close does not follow the open is rejected.
func parseWindow(s string) (DayHours, bool) {
    parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
    if len(parts) != 2 {
        return DayHours{}, false
    }
    open, err1 := ParseClock(strings.TrimSpace(parts[0]))
    close_, err2 := ParseClock(strings.TrimSpace(parts[1]))
    if err1 != nil || err2 != nil || close_ <= open {
        return DayHours{}, false
    }
    return DayHours{OpenMin: open, CloseMin: close_}, true
}
