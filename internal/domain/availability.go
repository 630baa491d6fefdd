package domain

import (
	"fmt"
	"time"
)

// AvailabilityRule is a recurring weekly open-hours window for one weekday.
// Weekdays are indexed 0=Monday..4=Friday; Saturday and Sunday carry no rule
// and are implicitly closed. Times are local wall-clock "HH:MM" strings
// interpreted in Timezone.
type AvailabilityRule struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

const (
	WeekdayMin = 0 // Monday
	WeekdayMax = 4 // Friday
)

// WeekdayIndex converts Go's Sunday-based weekday to the Monday-based index
// used by availability rules (0=Monday..6=Sunday).
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func (r *AvailabilityRule) Validate() error {
	if r.Weekday < WeekdayMin || r.Weekday > WeekdayMax {
		return fmt.Errorf("weekday %d out of range", r.Weekday)
	}
	start, err := ParseWallClock(r.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time: %w", err)
	}
	end, err := ParseWallClock(r.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("start_time must be before end_time")
	}
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q", r.Timezone)
	}
	return nil
}

// ParseWallClock parses an "HH:MM" wall-clock string. Seconds-bearing values
// from the database ("09:00:00") are accepted by truncation.
func ParseWallClock(s string) (time.Time, error) {
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("invalid time string: %q", s)
	}
	return time.Parse("15:04", s[:5])
}
