package models

import (
	"time"

	"gorm.io/gorm"
)

type InsightType string

const (
	InsightDailySummary  InsightType = "daily_summary"
	InsightWeeklySummary InsightType = "weekly_summary"
	InsightHealthTrend   InsightType = "health_trend"
	InsightRecommendation InsightType = "recommendation"
	InsightAnomaly       InsightType = "anomaly_detection"
	InsightGoalProgress  InsightType = "goal_progress"
)

type InsightPriority string

const (
	PriorityLow    InsightPriority = "low"
	PriorityMedium InsightPriority = "medium"
	PriorityHigh   InsightPriority = "high"
	PriorityUrgent InsightPriority = "urgent"
)

// AIInsight is one generated (or manually created) insight. InsightDate is
// the day the insight refers to, not when it was generated.
type AIInsight struct {
	gorm.Model
	Type            InsightType     `gorm:"type:varchar(32);index:idx_insights_user_type,priority:2;not null" json:"type"`
	Title           string          `gorm:"not null" json:"title"`
	Content         string          `gorm:"type:text;not null" json:"content"`
	Priority        InsightPriority `gorm:"type:varchar(16);default:medium" json:"priority"`
	Metadata        string          `json:"metadata,omitempty"`        // JSON blob
	Recommendations string          `json:"recommendations,omitempty"` // JSON array of strings
	ConfidenceScore float64         `json:"confidence_score,omitempty"` // 0-100
	InsightDate     time.Time       `json:"insight_date"`
	IsRead          bool            `gorm:"default:false" json:"is_read"`
	IsDismissed     bool            `gorm:"default:false" json:"is_dismissed"`
	UserID          uint            `gorm:"index:idx_insights_user_type,priority:1;not null" json:"user_id"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// IsNew marks insights generated within the last two days.
func (i *AIInsight) IsNew(now time.Time) bool {
	return i.CreatedAt.After(now.AddDate(0, 0, -2))
}

func (i *AIInsight) IsActionable() bool {
	return i.Recommendations != "" && i.Recommendations != "[]"
}
