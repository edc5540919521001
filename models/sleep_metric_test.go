package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSleepEfficiency(t *testing.T) {
	m := &SleepMetric{BedTime: "23:00", WakeTime: "07:00", Duration: 420}
	// 420 asleep of 480 in bed
	assert.Equal(t, 88, m.SleepEfficiency())

	// overnight wrap
	m = &SleepMetric{BedTime: "22:30", WakeTime: "06:30", Duration: 480}
	assert.Equal(t, 100, m.SleepEfficiency())

	m = &SleepMetric{Duration: 420}
	assert.Equal(t, -1, m.SleepEfficiency())

	m = &SleepMetric{BedTime: "25:00", WakeTime: "07:00", Duration: 420}
	assert.Equal(t, -1, m.SleepEfficiency(), "bad clock string")
}

func TestQualityScore(t *testing.T) {
	assert.Equal(t, 1, (&SleepMetric{Quality: SleepQualityPoor}).QualityScore())
	assert.Equal(t, 4, (&SleepMetric{Quality: SleepQualityExcellent}).QualityScore())
	assert.Equal(t, 0, (&SleepMetric{}).QualityScore())
}
