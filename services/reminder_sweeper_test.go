package services

import (
	"errors"
	"testing"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReminderStore struct {
	reminders []models.Reminder
	actions   []models.ReminderAction

	advanced    map[uint]time.Time
	reactivated []uint

	failAppendFor uint // reminder id whose action append fails
}

func newFakeReminderStore(reminders ...models.Reminder) *fakeReminderStore {
	return &fakeReminderStore{reminders: reminders, advanced: map[uint]time.Time{}}
}

func (s *fakeReminderStore) ListSweepable() ([]models.Reminder, error) {
	var out []models.Reminder
	for _, r := range s.reminders {
		if r.Enabled && (r.Status == models.StatusActive || r.Status == models.StatusSnoozed) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReminderStore) AdvanceSchedule(reminderID uint, next time.Time) error {
	s.advanced[reminderID] = next
	for i := range s.reminders {
		if s.reminders[i].ID == reminderID {
			s.reminders[i].ScheduledTime = next
		}
	}
	return nil
}

func (s *fakeReminderStore) Reactivate(reminderID uint) error {
	s.reactivated = append(s.reactivated, reminderID)
	return nil
}

func (s *fakeReminderStore) AppendAction(action *models.ReminderAction) error {
	if s.failAppendFor != 0 && action.ReminderID == s.failAppendFor {
		return errors.New("append failed")
	}
	s.actions = append(s.actions, *action)
	return nil
}

func sweeperAt(store ReminderStore, now time.Time) *ReminderSweeper {
	s := NewReminderSweeper(store)
	s.now = func() time.Time { return now }
	return s
}

func TestSweepTriggersDueDailyReminder(t *testing.T) {
	reminder := models.Reminder{
		Title:         "drink water",
		Type:          models.ReminderTypeWater,
		ScheduledTime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Frequency:     models.FrequencyDaily,
		Status:        models.StatusActive,
		Enabled:       true,
		UserID:        7,
	}
	reminder.ID = 1

	store := newFakeReminderStore(reminder)
	sweeper := sweeperAt(store, time.Date(2024, 1, 2, 8, 0, 30, 0, time.UTC))

	sweeper.SweepOnce()

	require.Len(t, store.actions, 1)
	assert.Equal(t, models.ActionTriggered, store.actions[0].ActionType)
	assert.Equal(t, uint(1), store.actions[0].ReminderID)
	assert.Equal(t, uint(7), store.actions[0].UserID)

	next, ok := store.advanced[1]
	require.True(t, ok, "schedule advanced after trigger")
	assert.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), next)
}

func TestSweepFiresOccurrenceOnceAcrossConsecutiveTicks(t *testing.T) {
	reminder := models.Reminder{
		Title:         "drink water",
		Type:          models.ReminderTypeWater,
		ScheduledTime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Frequency:     models.FrequencyDaily,
		Status:        models.StatusActive,
		Enabled:       true,
		UserID:        7,
	}
	reminder.ID = 1

	store := newFakeReminderStore(reminder)
	sweeper := NewReminderSweeper(store)

	// one-minute ticks straddling the 08:00 occurrence; the early tick
	// fires it, the late tick must not fire it again
	for _, tick := range []time.Time{
		time.Date(2024, 1, 2, 7, 59, 30, 0, time.UTC),
		time.Date(2024, 1, 2, 8, 0, 30, 0, time.UTC),
	} {
		sweeper.now = func() time.Time { return tick }
		sweeper.SweepOnce()
	}

	require.Len(t, store.actions, 1, "one occurrence fires exactly once")
	assert.Equal(t, time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC), store.advanced[1])
}

func TestSweepSkipsNotDueReminder(t *testing.T) {
	reminder := models.Reminder{
		ScheduledTime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Frequency:     models.FrequencyDaily,
		Status:        models.StatusActive,
		Enabled:       true,
	}
	reminder.ID = 1

	store := newFakeReminderStore(reminder)
	sweeper := sweeperAt(store, time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC))

	sweeper.SweepOnce()

	assert.Empty(t, store.actions)
	assert.Empty(t, store.advanced)
}

func TestSweepDoesNotAdvanceOnceReminder(t *testing.T) {
	scheduled := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	reminder := models.Reminder{
		ScheduledTime: scheduled,
		Frequency:     models.FrequencyOnce,
		Status:        models.StatusActive,
		Enabled:       true,
	}
	reminder.ID = 1

	store := newFakeReminderStore(reminder)
	sweeper := sweeperAt(store, scheduled.Add(10*time.Second))

	sweeper.SweepOnce()

	require.Len(t, store.actions, 1)
	assert.Empty(t, store.advanced, "a once reminder keeps its scheduled time")
}

func TestSweepReactivatesElapsedSnooze(t *testing.T) {
	now := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	elapsed := now.Add(-time.Minute)
	snoozed := models.Reminder{
		ScheduledTime: now.Add(-time.Hour),
		Frequency:     models.FrequencyDaily,
		Status:        models.StatusSnoozed,
		Enabled:       true,
		SnoozeUntil:   &elapsed,
	}
	snoozed.ID = 1

	future := now.Add(time.Hour)
	stillSnoozed := models.Reminder{
		ScheduledTime: now.Add(-time.Hour),
		Frequency:     models.FrequencyDaily,
		Status:        models.StatusSnoozed,
		Enabled:       true,
		SnoozeUntil:   &future,
	}
	stillSnoozed.ID = 2

	store := newFakeReminderStore(snoozed, stillSnoozed)
	sweeper := sweeperAt(store, now)

	sweeper.SweepOnce()

	assert.Equal(t, []uint{1}, store.reactivated)
	assert.Empty(t, store.actions, "re-arming does not itself trigger")
}

func TestSweepIsolatesPerReminderFailures(t *testing.T) {
	occurrence := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	first := models.Reminder{
		ScheduledTime: occurrence.AddDate(0, 0, -1),
		Frequency:     models.FrequencyDaily,
		Status:        models.StatusActive,
		Enabled:       true,
	}
	first.ID = 1
	second := first
	second.ID = 2

	store := newFakeReminderStore(first, second)
	store.failAppendFor = 1
	sweeper := sweeperAt(store, occurrence)

	sweeper.SweepOnce()

	require.Len(t, store.actions, 1, "the healthy reminder still fires")
	assert.Equal(t, uint(2), store.actions[0].ReminderID)
}
