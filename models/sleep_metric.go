package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type SleepQuality string

const (
	SleepQualityPoor      SleepQuality = "poor"
	SleepQualityFair      SleepQuality = "fair"
	SleepQualityGood      SleepQuality = "good"
	SleepQualityExcellent SleepQuality = "excellent"
)

// SleepMetric holds one night of sleep per user per day. Bed/wake times are
// "HH:MM" clock strings; Duration is actual sleep in minutes.
type SleepMetric struct {
	gorm.Model
	Date             time.Time    `gorm:"index:idx_sleep_user_date,priority:2,unique" json:"date"`
	BedTime          string       `json:"bed_time,omitempty"`
	WakeTime         string       `json:"wake_time,omitempty"`
	Duration         int          `json:"duration,omitempty"` // minutes
	Quality          SleepQuality `gorm:"type:varchar(16)" json:"quality,omitempty"`
	DeepSleepMinutes int          `json:"deep_sleep_minutes,omitempty"`
	RemSleepMinutes  int          `json:"rem_sleep_minutes,omitempty"`
	AwakeDuringNight int          `gorm:"default:0" json:"awake_during_night"`
	Notes            string       `json:"notes,omitempty"`
	UserID           uint         `gorm:"index:idx_sleep_user_date,priority:1,unique;not null" json:"user_id"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// SleepEfficiency is sleep duration over time in bed, as a percentage.
// Returns -1 when duration or either clock time is missing.
func (s *SleepMetric) SleepEfficiency() int {
	if s.Duration == 0 || s.BedTime == "" || s.WakeTime == "" {
		return -1
	}

	bed, ok1 := clockToMinutes(s.BedTime)
	wake, ok2 := clockToMinutes(s.WakeTime)
	if !ok1 || !ok2 {
		return -1
	}

	inBed := wake - bed
	if inBed <= 0 {
		inBed += 24 * 60 // overnight
	}
	return int(float64(s.Duration)/float64(inBed)*100 + 0.5)
}

func (s *SleepMetric) QualityScore() int {
	switch s.Quality {
	case SleepQualityPoor:
		return 1
	case SleepQualityFair:
		return 2
	case SleepQualityGood:
		return 3
	case SleepQualityExcellent:
		return 4
	default:
		return 0
	}
}

func clockToMinutes(hhmm string) (int, bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
