package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calport/calport-bookings/internal/domain"
	"github.com/calport/calport-bookings/pkg/config"
	"github.com/calport/calport-bookings/pkg/events"
)

type mockAvailabilityRepo struct {
	rules []domain.AvailabilityRule
}

func (m *mockAvailabilityRepo) List(context.Context) ([]domain.AvailabilityRule, error) {
	return m.rules, nil
}

func (m *mockAvailabilityRepo) Replace(_ context.Context, rules []domain.AvailabilityRule) error {
	m.rules = rules
	return nil
}

func weekdayRules(tz string) []domain.AvailabilityRule {
	var rules []domain.AvailabilityRule
	for wd := 0; wd <= 4; wd++ {
		rules = append(rules, domain.AvailabilityRule{
			Weekday:   wd,
			StartTime: "09:00",
			EndTime:   "10:00",
			Timezone:  tz,
		})
	}
	return rules
}

func newScheduleFixture(rules []domain.AvailabilityRule, bookingRepo *mockBookingRepo) ScheduleService {
	return NewScheduleService(
		&mockAvailabilityRepo{rules: rules},
		newMockEventTypeRepo(introCall()),
		bookingRepo,
		&recordingBus{},
		config.Load(),
	)
}

func TestSlotsForDateOpenDay(t *testing.T) {
	svc := newScheduleFixture(weekdayRules("UTC"), newMockBookingRepo())

	slots, err := svc.SlotsForDate(context.Background(), 1, "2025-06-02")
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), slots[0].Start.UTC())
	assert.Equal(t, time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC), slots[1].Start.UTC())
}

func TestSlotsForDateExcludesBookedIntervals(t *testing.T) {
	bookingRepo := newMockBookingRepo()
	_, err := bookingRepo.CreateConfirmed(context.Background(), bookingReq(
		time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 9, 45, 0, 0, time.UTC),
	))
	require.NoError(t, err)

	svc := newScheduleFixture(weekdayRules("UTC"), bookingRepo)

	slots, err := svc.SlotsForDate(context.Background(), 1, "2025-06-02")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotsForDateWeekend(t *testing.T) {
	svc := newScheduleFixture(weekdayRules("UTC"), newMockBookingRepo())

	// 2025-06-07 is a Saturday: no rule, empty result, no error.
	slots, err := svc.SlotsForDate(context.Background(), 1, "2025-06-07")
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestSlotsForDateNoRules(t *testing.T) {
	svc := newScheduleFixture(nil, newMockBookingRepo())

	slots, err := svc.SlotsForDate(context.Background(), 1, "2025-06-02")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotsForDateUnknownEventType(t *testing.T) {
	svc := newScheduleFixture(weekdayRules("UTC"), newMockBookingRepo())

	_, err := svc.SlotsForDate(context.Background(), 42, "2025-06-02")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlotsForDateUsesRuleTimezone(t *testing.T) {
	svc := newScheduleFixture(weekdayRules("America/New_York"), newMockBookingRepo())

	slots, err := svc.SlotsForDate(context.Background(), 1, "2025-06-02")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// 09:00 Eastern (EDT) is 13:00 UTC.
	assert.Equal(t, time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC), slots[0].Start.UTC())
}

func TestReplaceAvailabilityPublishesEvent(t *testing.T) {
	availRepo := &mockAvailabilityRepo{}
	bus := &recordingBus{}
	svc := NewScheduleService(availRepo, newMockEventTypeRepo(), newMockBookingRepo(), bus, config.Load())

	rules := []domain.AvailabilityRule{
		{Weekday: 0, StartTime: "09:00", EndTime: "17:00", Timezone: "UTC"},
		{Weekday: 2, StartTime: "10:00", EndTime: "16:00", Timezone: "UTC"},
	}
	require.NoError(t, svc.ReplaceAvailability(context.Background(), rules))

	assert.Equal(t, rules, availRepo.rules)
	assert.Equal(t, []string{events.AvailabilityReplaced}, bus.published())
}
