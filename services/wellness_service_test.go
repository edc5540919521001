package services

import (
	"testing"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"

	"github.com/stretchr/testify/assert"
)

func completedAt(ts time.Time, sessionID uint, seconds, rating int) models.SessionProgress {
	return models.SessionProgress{
		SessionID:    sessionID,
		Status:       models.SessionCompleted,
		ProgressTime: seconds,
		Rating:       rating,
		CompletedAt:  &ts,
	}
}

func TestBuildWellnessStats(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	types := map[uint]models.SessionType{
		1: models.SessionMeditation,
		2: models.SessionBreathing,
	}

	completed := []models.SessionProgress{
		completedAt(now.Add(-2*time.Hour), 1, 600, 5),                // today
		completedAt(now.AddDate(0, 0, -1), 1, 900, 4),                // yesterday
		completedAt(now.AddDate(0, 0, -2), 1, 300, 0),                // two days ago
		completedAt(now.AddDate(0, 0, -5), 2, 300, 3),                // gap: breaks streak
	}

	stats := buildWellnessStats(completed, types, now)

	assert.Equal(t, 4, stats.SessionsCompleted)
	assert.Equal(t, 35, stats.TotalMinutes)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 4.0, stats.AverageRating)
	assert.Equal(t, "meditation", stats.FavoriteType)
	assert.Equal(t, map[string]int{"meditation": 3, "breathing": 1}, stats.TypeBreakdown)
}

func TestBuildWellnessStatsStreakWithoutToday(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	types := map[uint]models.SessionType{1: models.SessionYoga}

	completed := []models.SessionProgress{
		completedAt(now.AddDate(0, 0, -1), 1, 60, 0),
		completedAt(now.AddDate(0, 0, -2), 1, 60, 0),
	}

	stats := buildWellnessStats(completed, types, now)
	assert.Equal(t, 2, stats.CurrentStreak, "a quiet morning does not break yesterday's streak")
}

func TestBuildWellnessStatsEmpty(t *testing.T) {
	stats := buildWellnessStats(nil, nil, time.Now())
	assert.Equal(t, 0, stats.SessionsCompleted)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Empty(t, stats.FavoriteType)
}
