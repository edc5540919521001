package models

import (
	"fmt"

	"gorm.io/gorm"
)

type SessionType string

const (
	SessionMeditation    SessionType = "meditation"
	SessionBreathing     SessionType = "breathing"
	SessionYoga          SessionType = "yoga"
	SessionMindfulness   SessionType = "mindfulness"
	SessionStressRelief  SessionType = "stress_relief"
	SessionSleepAid      SessionType = "sleep_aid"
	SessionFocus         SessionType = "focus"
	SessionEnergyBoost   SessionType = "energy_boost"
	SessionAnxietyRelief SessionType = "anxiety_relief"
	SessionMotivation    SessionType = "motivation"
	SessionGratitude     SessionType = "gratitude"
	SessionVisualization SessionType = "visualization"
)

type SessionDifficulty string

const (
	DifficultyBeginner     SessionDifficulty = "beginner"
	DifficultyIntermediate SessionDifficulty = "intermediate"
	DifficultyAdvanced     SessionDifficulty = "advanced"
)

// WellnessSession is a guided session in the shared catalog; it is not
// owned by any user. TotalSessions/AverageRating/RatingCount are aggregates
// maintained as users complete sessions.
type WellnessSession struct {
	gorm.Model
	Title         string            `gorm:"not null" json:"title"`
	Description   string            `json:"description"`
	Type          SessionType       `gorm:"type:varchar(32);index:idx_sessions_type_diff,priority:1;not null" json:"type"`
	Duration      int               `gorm:"not null" json:"duration"` // minutes
	Difficulty    SessionDifficulty `gorm:"type:varchar(16);index:idx_sessions_type_diff,priority:2;default:beginner" json:"difficulty"`
	AudioURL      string            `json:"audio_url,omitempty"`
	VideoURL      string            `json:"video_url,omitempty"`
	ImageURL      string            `json:"image_url,omitempty"`
	Instructions  string            `json:"instructions,omitempty"`
	Benefits      string            `json:"benefits,omitempty"`
	Metadata      string            `json:"metadata,omitempty"` // JSON blob
	IsPremium     bool              `gorm:"default:false" json:"is_premium"`
	IsActive      bool              `gorm:"default:true" json:"is_active"`
	Tags          string            `json:"tags,omitempty"` // comma-sep
	TotalSessions int               `gorm:"default:0" json:"total_sessions"`
	AverageRating float64           `gorm:"default:0" json:"average_rating"`
	RatingCount   int               `gorm:"default:0" json:"rating_count"`

	Progress []SessionProgress `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (w *WellnessSession) DurationFormatted() string {
	if w.Duration < 60 {
		return fmt.Sprintf("%d min", w.Duration)
	}
	h := w.Duration / 60
	m := w.Duration % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

func (w *WellnessSession) DifficultyLevel() int {
	switch w.Difficulty {
	case DifficultyIntermediate:
		return 2
	case DifficultyAdvanced:
		return 3
	default:
		return 1
	}
}

func (w *WellnessSession) IsPopular() bool {
	return w.TotalSessions > 100 && w.AverageRating > 4.0
}
