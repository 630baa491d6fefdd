package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calport/calport-bookings/internal/domain"
)

// Monday 2025-06-02.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func mondayRule(start, end string) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		Weekday:   0,
		StartTime: start,
		EndTime:   end,
		Timezone:  "UTC",
	}
}

func booking(start, end time.Time) domain.Booking {
	return domain.Booking{
		Status:    domain.BookingConfirmed,
		StartTime: start,
		EndTime:   end,
	}
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestGenerateTilesWindow(t *testing.T) {
	slots := Generate(monday, mondayRule("09:00", "10:00"), 30, nil, time.UTC)

	require.Len(t, slots, 2)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(9, 30), slots[0].End)
	assert.Equal(t, at(9, 30), slots[1].Start)
	assert.Equal(t, at(10, 0), slots[1].End)
}

func TestGenerateSlotInvariants(t *testing.T) {
	rule := mondayRule("09:00", "17:00")
	duration := 45

	slots := Generate(monday, rule, duration, nil, time.UTC)
	require.NotEmpty(t, slots)

	windowStart := at(9, 0)
	windowEnd := at(17, 0)
	for i, s := range slots {
		assert.Equal(t, time.Duration(duration)*time.Minute, s.End.Sub(s.Start))
		assert.False(t, s.Start.Before(windowStart))
		assert.False(t, s.End.After(windowEnd))
		if i > 0 {
			assert.True(t, slots[i-1].Start.Before(s.Start))
			assert.False(t, s.Start.Before(slots[i-1].End))
		}
	}
}

func TestGenerateNoTrailingPartialSlot(t *testing.T) {
	// 90-minute window, 60-minute duration: one slot, 30 unusable minutes.
	slots := Generate(monday, mondayRule("09:00", "10:30"), 60, nil, time.UTC)
	require.Len(t, slots, 1)
	assert.Equal(t, at(10, 0), slots[0].End)

	// Exact multiple: last slot ends exactly at the window end.
	slots = Generate(monday, mondayRule("09:00", "11:00"), 60, nil, time.UTC)
	require.Len(t, slots, 2)
	assert.Equal(t, at(11, 0), slots[1].End)
}

func TestGenerateSuppressesOverlappingCandidates(t *testing.T) {
	// One booking straddling both 30-minute candidates empties the window.
	bookings := []domain.Booking{booking(at(9, 15), at(9, 45))}
	slots := Generate(monday, mondayRule("09:00", "10:00"), 30, bookings, time.UTC)
	assert.Empty(t, slots)
}

func TestGenerateSuppressionIsPerCandidate(t *testing.T) {
	bookings := []domain.Booking{
		booking(at(10, 0), at(10, 30)),
		// Duplicate and overlapping bookings are fine: suppression is a
		// pure predicate per candidate.
		booking(at(10, 0), at(10, 30)),
		booking(at(10, 15), at(11, 15)),
	}
	slots := Generate(monday, mondayRule("09:00", "12:00"), 30, bookings, time.UTC)

	require.Len(t, slots, 3)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(9, 30), slots[1].Start)
	assert.Equal(t, at(11, 30), slots[2].Start)

	for _, s := range slots {
		for _, b := range bookings {
			assert.False(t, domain.Overlaps(s.Start, s.End, b.StartTime, b.EndTime))
		}
	}
}

func TestGenerateBoundaryTouchingBookingDoesNotSuppress(t *testing.T) {
	// [09:30,10:00) does not overlap a booking ending exactly at 09:30.
	bookings := []domain.Booking{booking(at(9, 0), at(9, 30))}
	slots := Generate(monday, mondayRule("09:00", "10:00"), 30, bookings, time.UTC)

	require.Len(t, slots, 1)
	assert.Equal(t, at(9, 30), slots[0].Start)
}

func TestGenerateEmptyCases(t *testing.T) {
	t.Run("nil rule", func(t *testing.T) {
		assert.Empty(t, Generate(monday, nil, 30, nil, time.UTC))
	})

	t.Run("weekend", func(t *testing.T) {
		saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
		assert.Empty(t, Generate(saturday, mondayRule("09:00", "17:00"), 30, nil, time.UTC))
	})

	t.Run("zero-length window", func(t *testing.T) {
		assert.Empty(t, Generate(monday, mondayRule("09:00", "09:00"), 30, nil, time.UTC))
	})

	t.Run("inverted window", func(t *testing.T) {
		assert.Empty(t, Generate(monday, mondayRule("17:00", "09:00"), 30, nil, time.UTC))
	})

	t.Run("duration longer than window", func(t *testing.T) {
		assert.Empty(t, Generate(monday, mondayRule("09:00", "10:00"), 90, nil, time.UTC))
	})

	t.Run("non-positive duration", func(t *testing.T) {
		assert.Empty(t, Generate(monday, mondayRule("09:00", "10:00"), 0, nil, time.UTC))
		assert.Empty(t, Generate(monday, mondayRule("09:00", "10:00"), -15, nil, time.UTC))
	})
}

func TestGenerateIsIdempotent(t *testing.T) {
	rule := mondayRule("09:00", "13:00")
	bookings := []domain.Booking{booking(at(10, 0), at(10, 30))}

	first := Generate(monday, rule, 30, bookings, time.UTC)
	second := Generate(monday, rule, 30, bookings, time.UTC)
	assert.Equal(t, first, second)
}

func TestGenerateRespectsTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	rule := &domain.AvailabilityRule{
		Weekday:   0,
		StartTime: "09:00",
		EndTime:   "10:00",
		Timezone:  "America/New_York",
	}
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	slots := Generate(day, rule, 30, nil, loc)
	require.Len(t, slots, 2)

	// 09:00 Eastern on 2025-06-02 is 13:00 UTC (EDT).
	assert.Equal(t, time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC), slots[0].Start.UTC())
}
