package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ReminderType string

const (
	ReminderTypeMedication  ReminderType = "medication"
	ReminderTypeMeal        ReminderType = "meal"
	ReminderTypeExercise    ReminderType = "exercise"
	ReminderTypeSleep       ReminderType = "sleep"
	ReminderTypeWater       ReminderType = "water"
	ReminderTypeHealthCheck ReminderType = "health_check"
	ReminderTypeAppointment ReminderType = "appointment"
	ReminderTypeCustom      ReminderType = "custom"
)

type ReminderFrequency string

const (
	FrequencyOnce    ReminderFrequency = "once"
	FrequencyDaily   ReminderFrequency = "daily"
	FrequencyWeekly  ReminderFrequency = "weekly"
	FrequencyMonthly ReminderFrequency = "monthly"
	FrequencyCustom  ReminderFrequency = "custom"
)

type ReminderStatus string

const (
	StatusActive    ReminderStatus = "active"
	StatusSnoozed   ReminderStatus = "snoozed"
	StatusCompleted ReminderStatus = "completed"
	StatusDismissed ReminderStatus = "dismissed"
	StatusInactive  ReminderStatus = "inactive"
)

// triggerWindow is the tolerance around an occurrence inside which a
// one-minute sweep counts the reminder as due.
const triggerWindow = time.Minute

type Reminder struct {
	gorm.Model
	Title         string            `gorm:"not null" json:"title"`
	Description   string            `json:"description,omitempty"`
	Type          ReminderType      `gorm:"type:varchar(32);not null" json:"type"`
	ScheduledTime time.Time         `gorm:"index:idx_reminders_user_sched,priority:2" json:"scheduled_time"`
	Frequency     ReminderFrequency `gorm:"type:varchar(16);default:once" json:"frequency"`
	Status        ReminderStatus    `gorm:"type:varchar(16);default:active" json:"status"`
	Enabled       bool              `gorm:"default:true" json:"enabled"`
	Weekdays      string            `json:"weekdays,omitempty"` // comma-sep 0-6, Sunday=0; weekly only
	EndDate       *time.Time        `json:"end_date,omitempty"`
	SnoozeUntil   *time.Time        `json:"snooze_until,omitempty"`
	CustomData    string            `json:"custom_data,omitempty"` // per-type JSON payload
	UserID        uint              `gorm:"index:idx_reminders_user_sched,priority:1;not null" json:"user_id"`

	Actions []ReminderAction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User    *User            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Reminder) IsActive() bool {
	return r.Enabled && r.Status == StatusActive
}

func (r *Reminder) IsSnoozedAt(now time.Time) bool {
	return r.SnoozeUntil != nil && now.Before(*r.SnoozeUntil)
}

// WeekdaySet parses the comma-separated weekday list, dropping anything
// outside 0-6. An empty result degrades weekly recurrence to 7-day stepping.
func (r *Reminder) WeekdaySet() []int {
	if r.Weekdays == "" {
		return nil
	}
	var days []int
	for _, part := range strings.Split(r.Weekdays, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 0 || d > 6 {
			continue
		}
		days = append(days, d)
	}
	return days
}

// NextOccurrence computes the next occurrence of a recurring reminder.
// Stepping stops at the first occurrence no older than the trigger window,
// so a sweep landing a few seconds after the instant still sees it as
// current rather than jumping a whole period ahead. Non-active reminders
// and once/unknown frequencies return the stored scheduled time unchanged.
func (r *Reminder) NextOccurrence(now time.Time) time.Time {
	if !r.IsActive() || r.Frequency == FrequencyOnce {
		return r.ScheduledTime
	}

	horizon := now.Add(-triggerWindow)

	switch r.Frequency {
	case FrequencyDaily:
		t := r.ScheduledTime
		for t.Before(horizon) {
			t = t.Add(24 * time.Hour)
		}
		return t

	case FrequencyWeekly:
		if days := r.WeekdaySet(); len(days) > 0 {
			return r.nextWeekday(now, days)
		}
		t := r.ScheduledTime
		for t.Before(horizon) {
			t = t.AddDate(0, 0, 7)
		}
		return t

	case FrequencyMonthly:
		t := r.ScheduledTime
		for t.Before(horizon) {
			t = r.monthAfter(t)
		}
		return t

	default:
		return r.ScheduledTime
	}
}

// nextWeekday finds the nearest weekday in the set strictly after today,
// same calendar week first, keeping the scheduled time-of-day.
func (r *Reminder) nextWeekday(now time.Time, days []int) time.Time {
	cur := int(now.Weekday())

	next := -1
	for _, d := range days {
		if d > cur && (next == -1 || d < next) {
			next = d
		}
	}

	var daysAhead int
	if next != -1 {
		daysAhead = next - cur
	} else {
		first := days[0]
		for _, d := range days[1:] {
			if d < first {
				first = d
			}
		}
		daysAhead = 7 - cur + first
	}

	h, m, s := r.ScheduledTime.Clock()
	return time.Date(now.Year(), now.Month(), now.Day()+daysAhead, h, m, s, 0, now.Location())
}

// ShouldTriggerAt reports whether the reminder is due within the trigger
// window. Snoozed or non-active reminders never trigger.
func (r *Reminder) ShouldTriggerAt(now time.Time) bool {
	if !r.IsActive() || r.IsSnoozedAt(now) {
		return false
	}

	next := r.NextOccurrence(now)
	if next.IsZero() {
		return false
	}

	diff := now.Sub(next)
	if diff < 0 {
		diff = -diff
	}
	return diff <= triggerWindow
}

// FollowingOccurrence returns the occurrence one full period after occ,
// where occ is an occurrence of this reminder. The sweeper advances to it
// after firing occ at or before its instant, so the same instant stays out
// of the trigger window on the next tick.
func (r *Reminder) FollowingOccurrence(occ time.Time) time.Time {
	switch r.Frequency {
	case FrequencyDaily:
		return occ.Add(24 * time.Hour)
	case FrequencyWeekly:
		if days := r.WeekdaySet(); len(days) > 0 {
			return r.nextWeekday(occ, days)
		}
		return occ.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return r.monthAfter(occ)
	default:
		return occ
	}
}

// monthAfter steps occ one calendar month forward. The day of month comes
// from the original scheduled date, clamped to the last valid day of the
// target month, so a reminder set for the 31st visits Feb 28/29 and lands
// back on the 31st in March instead of drifting onto the shorter day.
func (r *Reminder) monthAfter(occ time.Time) time.Time {
	y, m, _ := occ.Date()
	h, min, s := occ.Clock()

	d := r.ScheduledTime.Day()
	if last := daysInMonth(y, m+1); d > last {
		d = last
	}
	return time.Date(y, m+1, d, h, min, s, occ.Nanosecond(), occ.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the following month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
