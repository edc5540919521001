package services

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"gorm.io/gorm"
)

type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// ReminderFilters narrows List; zero values mean "no filter".
type ReminderFilters struct {
	Enabled *bool
	Status  models.ReminderStatus
	Limit   int
}

// ActionInput is the optional note/metadata a user attaches to a
// complete/dismiss/snooze call.
type ActionInput struct {
	Note     string         `json:"note"`
	Metadata map[string]any `json:"metadata"`
}

func (s *ReminderService) Create(reminder *models.Reminder) error {
	if err := s.db.Create(reminder).Error; err != nil {
		return err
	}
	utils.LogDataAccess("create", "reminder", utils.Fields{
		"user_id":     reminder.UserID,
		"reminder_id": reminder.ID,
	})
	return nil
}

func (s *ReminderService) List(userID uint, f ReminderFilters) ([]models.Reminder, error) {
	q := s.db.Where("user_id = ?", userID).Order("scheduled_time ASC")
	if f.Enabled != nil {
		q = q.Where("enabled = ?", *f.Enabled)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var reminders []models.Reminder
	if err := q.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// Upcoming lists enabled, active reminders scheduled within the next
// `hours` hours.
func (s *ReminderService) Upcoming(userID uint, hours int) ([]models.Reminder, error) {
	now := time.Now()
	var reminders []models.Reminder
	err := s.db.
		Where("user_id = ? AND enabled = ? AND status = ?", userID, true, models.StatusActive).
		Where("scheduled_time BETWEEN ? AND ?", now, now.Add(time.Duration(hours)*time.Hour)).
		Order("scheduled_time ASC").
		Find(&reminders).Error
	return reminders, err
}

func (s *ReminderService) Get(id, userID uint) (*models.Reminder, error) {
	var reminder models.Reminder
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

// Update applies the non-nil fields of the patch. Ownership is re-checked
// through Get, so a foreign id reads as absent.
func (s *ReminderService) Update(id, userID uint, patch map[string]any) (*models.Reminder, error) {
	if _, err := s.Get(id, userID); err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		if err := s.db.Model(&models.Reminder{}).Where("id = ?", id).Updates(patch).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id, userID)
}

func (s *ReminderService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.Reminder{}, id).Error
}

// Complete appends a completed action. Only once-frequency reminders reach
// the terminal completed status; recurring ones stay active.
func (s *ReminderService) Complete(id, userID uint, input ActionInput) (*models.ReminderAction, error) {
	reminder, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	action, err := s.appendAction(id, userID, models.ActionCompleted, input.Note, input.Metadata)
	if err != nil {
		return nil, err
	}

	if reminder.Frequency == models.FrequencyOnce {
		if err := s.db.Model(reminder).Update("status", models.StatusCompleted).Error; err != nil {
			return nil, err
		}
	}
	return action, nil
}

// Dismiss records the action without touching status; a recurring reminder
// keeps firing on its schedule.
func (s *ReminderService) Dismiss(id, userID uint, input ActionInput) (*models.ReminderAction, error) {
	if _, err := s.Get(id, userID); err != nil {
		return nil, err
	}
	return s.appendAction(id, userID, models.ActionDismissed, input.Note, input.Metadata)
}

func (s *ReminderService) Snooze(id, userID uint, minutes int, input ActionInput) (*models.ReminderAction, error) {
	if _, err := s.Get(id, userID); err != nil {
		return nil, err
	}

	snoozeUntil := time.Now().Add(time.Duration(minutes) * time.Minute)
	err := s.db.Model(&models.Reminder{}).Where("id = ?", id).Updates(map[string]any{
		"snooze_until": snoozeUntil,
		"status":       models.StatusSnoozed,
	}).Error
	if err != nil {
		return nil, err
	}

	meta := map[string]any{"snooze_minutes": minutes}
	for k, v := range input.Metadata {
		meta[k] = v
	}
	return s.appendAction(id, userID, models.ActionSnoozed, input.Note, meta)
}

// Actions queries the append-only action ledger. A zero reminderID spans
// every reminder the user owns; a set one is ownership-checked first.
func (s *ReminderService) Actions(reminderID, userID uint, from, to time.Time, limit int) ([]models.ReminderAction, error) {
	q := s.db.Where("user_id = ?", userID).Order("action_time DESC")
	if reminderID != 0 {
		if _, err := s.Get(reminderID, userID); err != nil {
			return nil, err
		}
		q = q.Where("reminder_id = ?", reminderID)
	}
	if !from.IsZero() {
		q = q.Where("action_time >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("action_time <= ?", to)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var actions []models.ReminderAction
	if err := q.Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (s *ReminderService) appendAction(reminderID, userID uint, actionType models.ReminderActionType, note string, metadata map[string]any) (*models.ReminderAction, error) {
	action := &models.ReminderAction{
		ReminderID: reminderID,
		UserID:     userID,
		ActionType: actionType,
		ActionTime: time.Now(),
		Note:       note,
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, err
		}
		action.Metadata = string(raw)
	}
	if err := s.db.Create(action).Error; err != nil {
		return nil, err
	}
	return action, nil
}

type ReminderStats struct {
	TotalReminders     int            `json:"total_reminders"`
	ActiveReminders    int            `json:"active_reminders"`
	CompletedToday     int            `json:"completed_today"`
	MissedToday        int            `json:"missed_today"`
	UpcomingReminders  int            `json:"upcoming_reminders"`
	CompletionRate     int            `json:"completion_rate"` // percent, last 7 days
	TypeBreakdown      map[string]int `json:"type_breakdown"`
	FrequencyBreakdown map[string]int `json:"frequency_breakdown"`
}

func (s *ReminderService) Stats(userID uint) (*ReminderStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	var reminders []models.Reminder
	if err := s.db.Where("user_id = ?", userID).Find(&reminders).Error; err != nil {
		return nil, err
	}

	var todayActions []models.ReminderAction
	if err := s.db.
		Where("user_id = ? AND action_time BETWEEN ? AND ?", userID, dayStart, dayStart.AddDate(0, 0, 1)).
		Find(&todayActions).Error; err != nil {
		return nil, err
	}

	var weekActions []models.ReminderAction
	if err := s.db.
		Where("user_id = ? AND action_time > ?", userID, weekAgo).
		Find(&weekActions).Error; err != nil {
		return nil, err
	}

	upcoming, err := s.Upcoming(userID, 24)
	if err != nil {
		return nil, err
	}

	stats := buildReminderStats(reminders, todayActions, weekActions)
	stats.UpcomingReminders = len(upcoming)
	return stats, nil
}

// buildReminderStats is the pure aggregation over already-loaded rows.
func buildReminderStats(reminders []models.Reminder, todayActions, weekActions []models.ReminderAction) *ReminderStats {
	stats := &ReminderStats{
		TotalReminders:     len(reminders),
		TypeBreakdown:      map[string]int{},
		FrequencyBreakdown: map[string]int{},
	}

	for i := range reminders {
		r := &reminders[i]
		if r.IsActive() {
			stats.ActiveReminders++
		}
		stats.TypeBreakdown[string(r.Type)]++
		stats.FrequencyBreakdown[string(r.Frequency)]++
	}

	for _, a := range todayActions {
		switch a.ActionType {
		case models.ActionCompleted:
			stats.CompletedToday++
		case models.ActionDismissed:
			stats.MissedToday++
		}
	}

	completed := 0
	for _, a := range weekActions {
		if a.ActionType == models.ActionCompleted {
			completed++
		}
	}
	if len(weekActions) > 0 {
		stats.CompletionRate = int(math.Round(float64(completed) / float64(len(weekActions)) * 100))
	}
	return stats
}
