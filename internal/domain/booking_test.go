package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func instant(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", instant(9, 0), instant(9, 30), instant(9, 0), instant(9, 30), true},
		{"partial", instant(9, 0), instant(9, 30), instant(9, 15), instant(9, 45), true},
		{"containment", instant(9, 0), instant(10, 0), instant(9, 15), instant(9, 45), true},
		{"touching at boundary", instant(9, 0), instant(9, 30), instant(9, 30), instant(10, 0), false},
		{"disjoint", instant(9, 0), instant(9, 30), instant(11, 0), instant(11, 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex(time.Monday))
	assert.Equal(t, 4, WeekdayIndex(time.Friday))
	assert.Equal(t, 5, WeekdayIndex(time.Saturday))
	assert.Equal(t, 6, WeekdayIndex(time.Sunday))
}

func TestParseBookingStatus(t *testing.T) {
	status, ok := ParseBookingStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, BookingConfirmed, status)

	status, ok = ParseBookingStatus("cancelled")
	assert.True(t, ok)
	assert.Equal(t, BookingCancelled, status)

	_, ok = ParseBookingStatus("pending")
	assert.False(t, ok)
}

func TestBookingReqValidate(t *testing.T) {
	valid := BookingReq{
		EventTypeID:  1,
		InviteeName:  "Ava",
		InviteeEmail: "ava@example.com",
		StartTime:    instant(9, 0),
		EndTime:      instant(9, 30),
	}
	assert.NoError(t, valid.Validate())

	t.Run("missing event type", func(t *testing.T) {
		req := valid
		req.EventTypeID = 0
		assert.Error(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.InviteeEmail = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("inverted interval", func(t *testing.T) {
		req := valid
		req.StartTime, req.EndTime = req.EndTime, req.StartTime
		assert.Error(t, req.Validate())
	})

	t.Run("zero times", func(t *testing.T) {
		req := valid
		req.StartTime = time.Time{}
		req.EndTime = time.Time{}
		assert.Error(t, req.Validate())
	})
}

func TestAvailabilityRuleValidate(t *testing.T) {
	valid := AvailabilityRule{Weekday: 2, StartTime: "09:00", EndTime: "17:00", Timezone: "UTC"}
	assert.NoError(t, valid.Validate())

	t.Run("weekend index rejected", func(t *testing.T) {
		rule := valid
		rule.Weekday = 5
		assert.Error(t, rule.Validate())
	})

	t.Run("start after end", func(t *testing.T) {
		rule := valid
		rule.StartTime, rule.EndTime = "17:00", "09:00"
		assert.Error(t, rule.Validate())
	})

	t.Run("equal start and end", func(t *testing.T) {
		rule := valid
		rule.EndTime = rule.StartTime
		assert.Error(t, rule.Validate())
	})

	t.Run("malformed time", func(t *testing.T) {
		rule := valid
		rule.StartTime = "9am"
		assert.Error(t, rule.Validate())
	})

	t.Run("unknown timezone", func(t *testing.T) {
		rule := valid
		rule.Timezone = "Mars/Olympus"
		assert.Error(t, rule.Validate())
	})

	t.Run("seconds tolerated", func(t *testing.T) {
		rule := valid
		rule.StartTime = "09:00:00"
		assert.NoError(t, rule.Validate())
	})
}
