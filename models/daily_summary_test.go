package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWellnessScore(t *testing.T) {
	d := &DailySummary{Mood: 4, EnergyLevel: 4, StressLevel: 2}
	// stress 2 inverts to 4, so (4+4+4)/3
	assert.Equal(t, 4.0, d.WellnessScore())

	d = &DailySummary{Mood: 5}
	assert.Equal(t, 5.0, d.WellnessScore())

	d = &DailySummary{}
	assert.Equal(t, -1.0, d.WellnessScore())
}

func TestBloodPressureCategory(t *testing.T) {
	cases := []struct {
		sys, dia int
		want     string
	}{
		{0, 0, ""},
		{110, 70, "Normal"},
		{125, 75, "Elevated"},
		{132, 70, "Stage 1 Hypertension"},
		{118, 85, "Stage 1 Hypertension"},
		{145, 95, "Stage 2 Hypertension"},
		{185, 100, "Hypertensive Crisis"},
		{150, 125, "Hypertensive Crisis"},
	}
	for _, tc := range cases {
		d := &DailySummary{BloodPressureSystolic: tc.sys, BloodPressureDiastolic: tc.dia}
		assert.Equal(t, tc.want, d.BloodPressureCategory(), "%d/%d", tc.sys, tc.dia)
	}
}

func TestSymptomList(t *testing.T) {
	d := &DailySummary{Symptoms: "headache, fatigue ,,nausea"}
	assert.Equal(t, []string{"headache", "fatigue", "nausea"}, d.SymptomList())

	d.Symptoms = ""
	assert.Nil(t, d.SymptomList())
}
