package services

import (
	"testing"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Reminder{},
		&models.ReminderAction{},
		&models.SleepMetric{},
		&models.NutritionMetric{},
		&models.ActivityMetric{},
		&models.DailySummary{},
		&models.WellnessSession{},
		&models.SessionProgress{},
		&models.AIInsight{},
	))
	return db
}

func TestDeleteRemovesAccountAndOwnedRows(t *testing.T) {
	db := openTestDB(t)

	subject := "subject-9"
	user := models.User{SubjectID: &subject, Email: "leaving@example.com", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	reminder := models.Reminder{
		Title:         "drink water",
		Type:          models.ReminderTypeWater,
		ScheduledTime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Frequency:     models.FrequencyDaily,
		Status:        models.StatusActive,
		Enabled:       true,
		UserID:        user.ID,
	}
	require.NoError(t, db.Create(&reminder).Error)
	require.NoError(t, db.Create(&models.ReminderAction{
		ReminderID: reminder.ID,
		UserID:     user.ID,
		ActionType: models.ActionTriggered,
		ActionTime: time.Now(),
	}).Error)

	repo := NewGormUserRepo(db)
	svc := NewUserService(db, NewIdentityService(repo))
	require.NoError(t, svc.Delete(user.ID))

	_, err := svc.Get(user.ID)
	assert.ErrorIs(t, err, ErrNotFound, "profile row is gone")

	_, err = repo.FindBySubject(subject)
	assert.ErrorIs(t, err, ErrNotFound, "token subject no longer resolves")

	sweepable, err := NewGormReminderStore(db).ListSweepable()
	require.NoError(t, err)
	assert.Empty(t, sweepable, "a deleted user's reminders stop sweeping")

	var actions int64
	require.NoError(t, db.Model(&models.ReminderAction{}).Count(&actions).Error)
	assert.Zero(t, actions, "the action ledger goes with the account")

	assert.ErrorIs(t, svc.Delete(user.ID), ErrNotFound)
}
