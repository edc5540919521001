package services

import (
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ReminderStore is the slice of the store the sweeper drives. Gorm backs
// it in production; tests inject a fake with a fixed clock.
type ReminderStore interface {
	// ListSweepable returns enabled reminders that are active or snoozed.
	ListSweepable() ([]models.Reminder, error)
	AdvanceSchedule(reminderID uint, next time.Time) error
	// Reactivate moves a snoozed reminder back to active and clears the
	// snooze window.
	Reactivate(reminderID uint) error
	AppendAction(action *models.ReminderAction) error
}

// ReminderSweeper is the per-minute scan that fires due reminders and
// re-arms elapsed snoozes. It only records the triggered action and
// advances schedule state; notification delivery belongs elsewhere.
type ReminderSweeper struct {
	store ReminderStore
	now   func() time.Time
}

func NewReminderSweeper(store ReminderStore) *ReminderSweeper {
	return &ReminderSweeper{store: store, now: time.Now}
}

// Start registers the sweep on a one-minute interval. Singleton mode with
// reschedule drops any tick that fires while a sweep is still running, so
// two sweeps never race over the same reminder set.
func (s *ReminderSweeper) Start() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(s.SweepOnce),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

// SweepOnce processes the whole batch. A failure on one reminder is logged
// and must not stop the rest.
func (s *ReminderSweeper) SweepOnce() {
	reminders, err := s.store.ListSweepable()
	if err != nil {
		utils.LogError("sweep: loading reminders failed", err, nil)
		return
	}

	now := s.now()
	for i := range reminders {
		r := &reminders[i]
		if err := s.process(r, now); err != nil {
			utils.LogError("sweep: reminder processing failed", err, utils.Fields{
				"reminder_id": r.ID,
				"user_id":     r.UserID,
			})
		}
	}
}

func (s *ReminderSweeper) process(r *models.Reminder, now time.Time) error {
	if r.Status == models.StatusSnoozed {
		if r.SnoozeUntil == nil || !now.Before(*r.SnoozeUntil) {
			return s.store.Reactivate(r.ID)
		}
		return nil
	}

	if !r.ShouldTriggerAt(now) {
		return nil
	}

	action := &models.ReminderAction{
		ReminderID: r.ID,
		UserID:     r.UserID,
		ActionType: models.ActionTriggered,
		ActionTime: now,
	}
	if err := s.store.AppendAction(action); err != nil {
		return err
	}

	utils.LogInfo("reminder triggered", utils.Fields{
		"reminder_id": r.ID,
		"user_id":     r.UserID,
	})

	// Advance recurring reminders past this occurrence so the next sweep
	// does not re-fire the same instant. An occurrence fired at or before
	// its instant would still sit inside the trigger window one tick later,
	// so the stored time moves a full period beyond it.
	if r.Frequency != models.FrequencyOnce {
		next := r.NextOccurrence(now)
		if !now.After(next) {
			next = r.FollowingOccurrence(next)
		}
		if !next.Equal(r.ScheduledTime) {
			return s.store.AdvanceSchedule(r.ID, next)
		}
	}
	return nil
}

// GormReminderStore is the production ReminderStore.
type GormReminderStore struct {
	db *gorm.DB
}

func NewGormReminderStore(db *gorm.DB) *GormReminderStore {
	return &GormReminderStore{db: db}
}

func (s *GormReminderStore) ListSweepable() ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.
		Where("enabled = ? AND status IN ?", true, []models.ReminderStatus{models.StatusActive, models.StatusSnoozed}).
		Find(&reminders).Error
	return reminders, err
}

func (s *GormReminderStore) AdvanceSchedule(reminderID uint, next time.Time) error {
	return s.db.Model(&models.Reminder{}).Where("id = ?", reminderID).
		Update("scheduled_time", next).Error
}

func (s *GormReminderStore) Reactivate(reminderID uint) error {
	return s.db.Model(&models.Reminder{}).Where("id = ?", reminderID).Updates(map[string]any{
		"status":       models.StatusActive,
		"snooze_until": nil,
	}).Error
}

func (s *GormReminderStore) AppendAction(action *models.ReminderAction) error {
	return s.db.Create(action).Error
}
