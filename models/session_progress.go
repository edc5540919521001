package models

import (
	"time"

	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionPaused     SessionStatus = "paused"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

// SessionProgress tracks one user's run through a wellness session.
type SessionProgress struct {
	gorm.Model
	SessionID    uint          `gorm:"index:idx_progress_user_session,priority:2;not null" json:"session_id"`
	UserID       uint          `gorm:"index:idx_progress_user_session,priority:1;index:idx_progress_user_status,priority:1;not null" json:"user_id"`
	Status       SessionStatus `gorm:"type:varchar(16);index:idx_progress_user_status,priority:2;default:not_started" json:"status"`
	ProgressTime int           `gorm:"default:0" json:"progress_time"` // seconds spent
	StartedAt    *time.Time    `json:"started_at,omitempty"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	PausedAt     *time.Time    `json:"paused_at,omitempty"`
	Rating       int           `json:"rating,omitempty"` // 1-5, 0 = unrated
	Feedback     string        `json:"feedback,omitempty"`
	SessionData  string        `json:"session_data,omitempty"` // JSON blob

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ProgressPercent against the session duration in minutes, capped at 100.
func (p *SessionProgress) ProgressPercent(sessionMinutes int) int {
	if p.ProgressTime == 0 || sessionMinutes <= 0 {
		return 0
	}
	pct := p.ProgressTime * 100 / (sessionMinutes * 60)
	if pct > 100 {
		pct = 100
	}
	return pct
}

func (p *SessionProgress) IsCompleted() bool {
	return p.Status == SessionCompleted
}

// ElapsedSeconds between start and completion (or now for a live session).
func (p *SessionProgress) ElapsedSeconds(now time.Time) int {
	if p.StartedAt == nil {
		return 0
	}
	end := now
	if p.CompletedAt != nil {
		end = *p.CompletedAt
	}
	return int(end.Sub(*p.StartedAt).Seconds())
}
