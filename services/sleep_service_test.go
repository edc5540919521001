package services

import (
	"testing"

	"github.com/SalvereHW/SelfCoach-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildSleepStats(t *testing.T) {
	metrics := []models.SleepMetric{
		{Duration: 420, Quality: models.SleepQualityGood, BedTime: "23:00", WakeTime: "07:00"},
		{Duration: 480, Quality: models.SleepQualityExcellent, BedTime: "22:00", WakeTime: "06:00"},
		{Duration: 360, Quality: models.SleepQualityFair, BedTime: "00:30", WakeTime: "07:30"},
	}

	stats := buildSleepStats(metrics)

	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 420, stats.AverageDuration)
	assert.Equal(t, 3.0, stats.AverageQuality)
	assert.NotEmpty(t, stats.AverageBedTime)
	assert.NotEmpty(t, stats.AverageWakeTime)
}

func TestBuildSleepStatsEmpty(t *testing.T) {
	stats := buildSleepStats(nil)
	assert.Equal(t, 0, stats.TotalRecords)
	assert.Empty(t, stats.AverageBedTime)
}

func TestAverageClockStraddlesMidnight(t *testing.T) {
	// 23:30 and 00:30 average to midnight, not noon
	got := averageClock([]int{23*60 + 30, 30})
	assert.Equal(t, "00:00", got)

	got = averageClock([]int{7 * 60, 9 * 60})
	assert.Equal(t, "08:00", got)
}
