package models

import (
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Mood, stress, and energy are 1-5 scales; zero means unreported.

// DailySummary is the singleton-per-day mood/vitals check-in.
type DailySummary struct {
	gorm.Model
	Date                   time.Time `gorm:"index:idx_summary_user_date,priority:2,unique" json:"date"`
	Mood                   int       `json:"mood,omitempty"`
	StressLevel            int       `json:"stress_level,omitempty"`
	EnergyLevel            int       `json:"energy_level,omitempty"`
	Symptoms               string    `json:"symptoms,omitempty"` // comma-sep
	BloodPressureSystolic  int       `json:"blood_pressure_systolic,omitempty"`  // mmHg
	BloodPressureDiastolic int       `json:"blood_pressure_diastolic,omitempty"` // mmHg
	Weight                 float64   `json:"weight,omitempty"`                   // kg
	Notes                  string    `json:"notes,omitempty"`
	UserID                 uint      `gorm:"index:idx_summary_user_date,priority:1,unique;not null" json:"user_id"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// WellnessScore averages mood, energy, and inverted stress on the 1-5
// scale; -1 when nothing was reported.
func (d *DailySummary) WellnessScore() float64 {
	var sum float64
	var n int

	if d.Mood > 0 {
		sum += float64(d.Mood)
		n++
	}
	if d.EnergyLevel > 0 {
		sum += float64(d.EnergyLevel)
		n++
	}
	if d.StressLevel > 0 {
		sum += float64(6 - d.StressLevel) // lower stress scores higher
		n++
	}

	if n == 0 {
		return -1
	}
	return math.Round(sum/float64(n)*100) / 100
}

func (d *DailySummary) BloodPressureCategory() string {
	sys, dia := d.BloodPressureSystolic, d.BloodPressureDiastolic
	if sys == 0 || dia == 0 {
		return ""
	}

	switch {
	case sys > 180 || dia > 120:
		return "Hypertensive Crisis"
	case sys >= 140 || dia >= 90:
		return "Stage 2 Hypertension"
	case sys >= 130 || dia >= 80:
		return "Stage 1 Hypertension"
	case sys >= 120:
		return "Elevated"
	default:
		return "Normal"
	}
}

func (d *DailySummary) SymptomList() []string {
	if d.Symptoms == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(d.Symptoms, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
