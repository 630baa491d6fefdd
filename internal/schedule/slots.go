// Package schedule computes bookable time slots. Generation is a pure
// function over a day's availability window and the confirmed bookings that
// intersect it; it holds no state and is safe to call concurrently.
package schedule

import (
	"time"

	"github.com/calport/calport-bookings/internal/domain"
)

// Slot is one bookable interval, exactly one event type duration long.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Generate tiles the availability window for date with contiguous candidate
// slots of durationMinutes, left to right, and drops every candidate that
// overlaps a confirmed booking. Candidates are [cursor, cursor+D) while
// cursor+D <= windowEnd; a window not evenly divisible by the duration leaves
// a trailing unusable remainder. Suppression uses strict half-open overlap,
// so duplicate or mutually overlapping bookings in the input need no special
// handling.
//
// A nil rule, a rule for a different weekday than date (in loc), a
// non-positive duration or a degenerate window all yield an empty result.
func Generate(date time.Time, rule *domain.AvailabilityRule, durationMinutes int, bookings []domain.Booking, loc *time.Location) []Slot {
	if rule == nil || durationMinutes <= 0 {
		return nil
	}

	year, month, day := date.In(loc).Date()
	if domain.WeekdayIndex(time.Date(year, month, day, 0, 0, 0, 0, loc).Weekday()) != rule.Weekday {
		return nil
	}

	windowStart, err := atWallClock(year, month, day, rule.StartTime, loc)
	if err != nil {
		return nil
	}
	windowEnd, err := atWallClock(year, month, day, rule.EndTime, loc)
	if err != nil {
		return nil
	}

	duration := time.Duration(durationMinutes) * time.Minute

	var slots []Slot
	for cursor := windowStart; !cursor.Add(duration).After(windowEnd); cursor = cursor.Add(duration) {
		start, end := cursor, cursor.Add(duration)
		if conflicts(start, end, bookings) {
			continue
		}
		slots = append(slots, Slot{Start: start, End: end})
	}
	return slots
}

func conflicts(start, end time.Time, bookings []domain.Booking) bool {
	for _, b := range bookings {
		if domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

func atWallClock(year int, month time.Month, day int, hhmm string, loc *time.Location) (time.Time, error) {
	tod, err := domain.ParseWallClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, day, tod.Hour(), tod.Minute(), 0, 0, loc), nil
}
