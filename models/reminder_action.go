package models

import (
	"time"

	"gorm.io/gorm"
)

type ReminderActionType string

const (
	ActionCompleted ReminderActionType = "completed"
	ActionDismissed ReminderActionType = "dismissed"
	ActionSnoozed   ReminderActionType = "snoozed"
	ActionTriggered ReminderActionType = "triggered"
)

// ReminderAction is an append-only audit row. Rows are created by user
// mutations (complete/dismiss/snooze) and by the sweeper (triggered), and
// are never updated or deleted afterwards.
type ReminderAction struct {
	gorm.Model
	ReminderID uint               `gorm:"index:idx_actions_reminder_time,priority:1;not null" json:"reminder_id"`
	ActionType ReminderActionType `gorm:"type:varchar(16);not null" json:"action_type"`
	ActionTime time.Time          `gorm:"index:idx_actions_reminder_time,priority:2;index:idx_actions_user_time,priority:2" json:"action_time"`
	Note       string             `json:"note,omitempty"`
	Metadata   string             `json:"metadata,omitempty"` // JSON blob, e.g. {"snooze_minutes":10}
	UserID     uint               `gorm:"index:idx_actions_user_time,priority:1;not null" json:"user_id"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
