package services

import (
	"testing"

	"github.com/SalvereHW/SelfCoach-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildReminderStats(t *testing.T) {
	reminders := []models.Reminder{
		{Type: models.ReminderTypeWater, Frequency: models.FrequencyDaily, Status: models.StatusActive, Enabled: true},
		{Type: models.ReminderTypeWater, Frequency: models.FrequencyDaily, Status: models.StatusActive, Enabled: false},
		{Type: models.ReminderTypeMedication, Frequency: models.FrequencyOnce, Status: models.StatusCompleted, Enabled: true},
	}

	today := []models.ReminderAction{
		{ActionType: models.ActionCompleted},
		{ActionType: models.ActionCompleted},
		{ActionType: models.ActionDismissed},
		{ActionType: models.ActionTriggered},
	}

	week := []models.ReminderAction{
		{ActionType: models.ActionCompleted},
		{ActionType: models.ActionCompleted},
		{ActionType: models.ActionCompleted},
		{ActionType: models.ActionDismissed},
	}

	stats := buildReminderStats(reminders, today, week)

	assert.Equal(t, 3, stats.TotalReminders)
	assert.Equal(t, 1, stats.ActiveReminders)
	assert.Equal(t, 2, stats.CompletedToday)
	assert.Equal(t, 1, stats.MissedToday)
	assert.Equal(t, 75, stats.CompletionRate)
	assert.Equal(t, map[string]int{"water": 2, "medication": 1}, stats.TypeBreakdown)
	assert.Equal(t, map[string]int{"daily": 2, "once": 1}, stats.FrequencyBreakdown)
}

func TestBuildReminderStatsEmpty(t *testing.T) {
	stats := buildReminderStats(nil, nil, nil)

	assert.Equal(t, 0, stats.TotalReminders)
	assert.Equal(t, 0, stats.CompletionRate, "no actions means rate 0, not NaN")
	assert.Empty(t, stats.TypeBreakdown)
}
