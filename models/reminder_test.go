package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activeReminder(freq ReminderFrequency, scheduled time.Time) *Reminder {
	return &Reminder{
		Title:         "water",
		Type:          ReminderTypeWater,
		ScheduledTime: scheduled,
		Frequency:     freq,
		Status:        StatusActive,
		Enabled:       true,
	}
}

func TestNextOccurrenceDaily(t *testing.T) {
	scheduled := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	r := activeReminder(FrequencyDaily, scheduled)

	// well past several occurrences
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC), r.NextOccurrence(now))

	// just after an occurrence the occurrence still counts as current
	now = time.Date(2024, 1, 2, 8, 0, 30, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), r.NextOccurrence(now))

	// before the first occurrence nothing moves
	now = time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, scheduled, r.NextOccurrence(now))
}

func TestNextOccurrenceWeeklyWeekdaySet(t *testing.T) {
	// scheduled time-of-day is 09:00; weekdays carry the actual cadence
	scheduled := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	r := activeReminder(FrequencyWeekly, scheduled)
	r.Weekdays = "3" // Wednesday

	// Tuesday 2024-01-02 rolls to that week's Wednesday
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), r.NextOccurrence(now))

	// no weekday later this week wraps to the earliest next week
	r.Weekdays = "1" // Monday
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), r.NextOccurrence(now))

	// multiple days pick the nearest one strictly after today
	r.Weekdays = "1,4,6" // Mon, Thu, Sat
	assert.Equal(t, time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC), r.NextOccurrence(now))
}

func TestNextOccurrenceWeeklyNoWeekdays(t *testing.T) {
	scheduled := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r := activeReminder(FrequencyWeekly, scheduled)

	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), r.NextOccurrence(now))
}

func TestNextOccurrenceMonthlyClampsDay(t *testing.T) {
	scheduled := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	r := activeReminder(FrequencyMonthly, scheduled)

	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), r.NextOccurrence(now), "leap February clamps to 29")

	scheduled = time.Date(2023, 1, 31, 9, 0, 0, 0, time.UTC)
	r = activeReminder(FrequencyMonthly, scheduled)
	now = time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 2, 28, 9, 0, 0, 0, time.UTC), r.NextOccurrence(now))
}

func TestNextOccurrenceMonthlyKeepsScheduledDay(t *testing.T) {
	scheduled := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	r := activeReminder(FrequencyMonthly, scheduled)

	// past the clamped February occurrence the 31st comes back
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC), r.NextOccurrence(now))

	now = time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC), r.NextOccurrence(now))
}

func TestFollowingOccurrence(t *testing.T) {
	scheduled := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	occ := time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC)

	r := activeReminder(FrequencyDaily, scheduled)
	assert.Equal(t, occ.Add(24*time.Hour), r.FollowingOccurrence(occ))

	r = activeReminder(FrequencyWeekly, scheduled)
	assert.Equal(t, occ.AddDate(0, 0, 7), r.FollowingOccurrence(occ))

	r = activeReminder(FrequencyMonthly, scheduled)
	assert.Equal(t, time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), r.FollowingOccurrence(scheduled))
}

func TestNextOccurrenceOnceAndInactive(t *testing.T) {
	scheduled := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	r := activeReminder(FrequencyOnce, scheduled)
	assert.Equal(t, scheduled, r.NextOccurrence(now))

	r = activeReminder(FrequencyDaily, scheduled)
	r.Enabled = false
	assert.Equal(t, scheduled, r.NextOccurrence(now))

	r = activeReminder(FrequencyDaily, scheduled)
	r.Status = StatusCompleted
	assert.Equal(t, scheduled, r.NextOccurrence(now))
}

func TestShouldTriggerAtWindow(t *testing.T) {
	scheduled := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	r := activeReminder(FrequencyDaily, scheduled)

	occurrence := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	assert.True(t, r.ShouldTriggerAt(occurrence))
	assert.True(t, r.ShouldTriggerAt(occurrence.Add(30*time.Second)))
	assert.True(t, r.ShouldTriggerAt(occurrence.Add(60*time.Second)))
	assert.True(t, r.ShouldTriggerAt(occurrence.Add(-60*time.Second)))
	assert.False(t, r.ShouldTriggerAt(occurrence.Add(61*time.Second)))
	assert.False(t, r.ShouldTriggerAt(occurrence.Add(-61*time.Second)))
}

func TestShouldTriggerAtSnoozedOrDisabled(t *testing.T) {
	scheduled := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	r := activeReminder(FrequencyDaily, scheduled)
	later := now.Add(10 * time.Minute)
	r.SnoozeUntil = &later
	assert.False(t, r.ShouldTriggerAt(now), "future snooze suppresses the trigger")

	elapsed := now.Add(-10 * time.Minute)
	r.SnoozeUntil = &elapsed
	assert.True(t, r.ShouldTriggerAt(now), "an elapsed snooze no longer suppresses")

	r = activeReminder(FrequencyDaily, scheduled)
	r.Enabled = false
	assert.False(t, r.ShouldTriggerAt(now))

	r = activeReminder(FrequencyDaily, scheduled)
	r.Status = StatusSnoozed
	assert.False(t, r.ShouldTriggerAt(now))
}

func TestWeekdaySet(t *testing.T) {
	r := &Reminder{Weekdays: "1, 3,9,x,6"}
	assert.Equal(t, []int{1, 3, 6}, r.WeekdaySet())

	r.Weekdays = ""
	assert.Nil(t, r.WeekdaySet())
}
