package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityCardio      ActivityType = "cardio"
	ActivityStrength    ActivityType = "strength"
	ActivityFlexibility ActivityType = "flexibility"
	ActivitySports      ActivityType = "sports"
	ActivityWalking     ActivityType = "walking"
	ActivityRunning     ActivityType = "running"
	ActivityCycling     ActivityType = "cycling"
	ActivitySwimming    ActivityType = "swimming"
	ActivityYoga        ActivityType = "yoga"
	ActivityGym         ActivityType = "gym"
	ActivityPilates     ActivityType = "pilates"
	ActivityDance       ActivityType = "dance"
	ActivityHiking      ActivityType = "hiking"
	ActivityOther       ActivityType = "other"
)

type ActivityIntensity string

const (
	IntensityLow      ActivityIntensity = "low"
	IntensityModerate ActivityIntensity = "moderate"
	IntensityHigh     ActivityIntensity = "high"
	IntensityVeryHigh ActivityIntensity = "very_high"
)

type DistanceUnit string

const (
	DistanceKilometers DistanceUnit = "kilometers"
	DistanceMiles      DistanceUnit = "miles"
	DistanceMeters     DistanceUnit = "meters"
	DistanceYards      DistanceUnit = "yards"
)

type ActivityMetric struct {
	gorm.Model
	Date             time.Time         `gorm:"index:idx_activity_user_date,priority:2" json:"date"`
	ActivityType     ActivityType      `gorm:"type:varchar(16);not null" json:"activity_type"`
	ActivityName     string            `gorm:"not null" json:"activity_name"`
	Duration         int               `gorm:"not null" json:"duration"` // minutes
	Intensity        ActivityIntensity `gorm:"type:varchar(16);not null" json:"intensity"`
	CaloriesBurned   float64           `json:"calories_burned,omitempty"`
	Distance         float64           `json:"distance,omitempty"`
	DistanceUnit     DistanceUnit      `gorm:"type:varchar(16)" json:"distance_unit,omitempty"`
	Steps            int               `json:"steps,omitempty"`
	AverageHeartRate int               `json:"average_heart_rate,omitempty"` // BPM
	HeartRateMax     int               `json:"heart_rate_max,omitempty"`     // BPM
	Notes            string            `json:"notes,omitempty"`
	UserID           uint              `gorm:"index:idx_activity_user_date,priority:1;not null" json:"user_id"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (a *ActivityMetric) IntensityScore() int {
	switch a.Intensity {
	case IntensityLow:
		return 1
	case IntensityModerate:
		return 2
	case IntensityHigh:
		return 3
	case IntensityVeryHigh:
		return 4
	default:
		return 0
	}
}

// Pace in minutes per distance unit; -1 when distance or duration is missing.
func (a *ActivityMetric) Pace() float64 {
	if a.Distance == 0 || a.Duration == 0 {
		return -1
	}
	return math.Round(float64(a.Duration)/a.Distance*100) / 100
}

// AverageSpeed in distance units per hour; -1 when unavailable.
func (a *ActivityMetric) AverageSpeed() float64 {
	if a.Distance == 0 || a.Duration == 0 {
		return -1
	}
	hours := float64(a.Duration) / 60
	return math.Round(a.Distance/hours*100) / 100
}

// EstimatedCalories gives a rough MET-based estimate using the supplied
// body weight in kg (defaulted upstream when the profile has none).
func (a *ActivityMetric) EstimatedCalories(weightKg float64) int {
	if weightKg <= 0 {
		weightKg = 70
	}
	hours := float64(a.Duration) / 60
	return int(a.baseMET()*a.intensityMultiplier()*weightKg*hours + 0.5)
}

func (a *ActivityMetric) baseMET() float64 {
	switch a.ActivityType {
	case ActivityWalking:
		return 3.5
	case ActivityRunning:
		return 8.0
	case ActivityCycling:
		return 6.0
	case ActivitySwimming:
		return 7.0
	case ActivityStrength:
		return 4.5
	case ActivityYoga:
		return 2.5
	case ActivityDance:
		return 5.0
	case ActivityHiking:
		return 6.0
	case ActivityGym:
		return 5.0
	default:
		return 4.0
	}
}

func (a *ActivityMetric) intensityMultiplier() float64 {
	switch a.Intensity {
	case IntensityLow:
		return 0.8
	case IntensityHigh:
		return 1.3
	case IntensityVeryHigh:
		return 1.6
	default:
		return 1.0
	}
}
