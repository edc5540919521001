package services

import (
	"errors"
	"math"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"gorm.io/gorm"
)

type WellnessService struct {
	db *gorm.DB
}

func NewWellnessService(db *gorm.DB) *WellnessService {
	return &WellnessService{db: db}
}

// SessionFilters narrows the catalog listing.
type SessionFilters struct {
	Type       models.SessionType
	Difficulty models.SessionDifficulty
	Premium    *bool
	Limit      int
}

func (s *WellnessService) CreateSession(session *models.WellnessSession) error {
	if err := s.db.Create(session).Error; err != nil {
		return err
	}
	utils.LogDataAccess("create", "wellness_session", utils.Fields{"session_id": session.ID})
	return nil
}

func (s *WellnessService) ListSessions(f SessionFilters) ([]models.WellnessSession, error) {
	q := s.db.Where("is_active = ?", true).Order("total_sessions DESC")
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Premium != nil {
		q = q.Where("is_premium = ?", *f.Premium)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var sessions []models.WellnessSession
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *WellnessService) GetSession(id uint) (*models.WellnessSession, error) {
	var session models.WellnessSession
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&session).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &session, nil
}

func (s *WellnessService) UpdateSession(id uint, patch map[string]any) (*models.WellnessSession, error) {
	if _, err := s.GetSession(id); err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		if err := s.db.Model(&models.WellnessSession{}).Where("id = ?", id).Updates(patch).Error; err != nil {
			return nil, err
		}
	}
	return s.GetSession(id)
}

// DeleteSession retires a catalog entry. The row stays so historical
// progress keeps resolving; listings and lookups stop returning it.
func (s *WellnessService) DeleteSession(id uint) error {
	if _, err := s.GetSession(id); err != nil {
		return err
	}
	return s.db.Model(&models.WellnessSession{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// Start opens a progress row for the session, reusing an unfinished one so
// a re-entered session resumes instead of forking.
func (s *WellnessService) Start(sessionID, userID uint) (*models.SessionProgress, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return nil, err
	}

	now := time.Now()
	var progress models.SessionProgress
	err := s.db.
		Where("session_id = ? AND user_id = ? AND status IN ?", sessionID, userID,
			[]models.SessionStatus{models.SessionNotStarted, models.SessionInProgress, models.SessionPaused}).
		First(&progress).Error
	switch {
	case err == nil:
		updates := map[string]any{"status": models.SessionInProgress, "paused_at": nil}
		if progress.StartedAt == nil {
			updates["started_at"] = now
		}
		if err := s.db.Model(&progress).Updates(updates).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = models.SessionProgress{
			SessionID: sessionID,
			UserID:    userID,
			Status:    models.SessionInProgress,
			StartedAt: &now,
		}
		if err := s.db.Create(&progress).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	utils.LogDataAccess("start", "session_progress", utils.Fields{
		"user_id":    userID,
		"session_id": sessionID,
	})
	return &progress, nil
}

// ProgressInput reports elapsed seconds and whether the user paused.
type ProgressInput struct {
	ProgressTime int    `json:"progress_time" binding:"required,min=0"`
	Paused       bool   `json:"paused"`
	SessionData  string `json:"session_data"`
}

func (s *WellnessService) RecordProgress(sessionID, userID uint, input ProgressInput) (*models.SessionProgress, error) {
	progress, err := s.liveProgress(sessionID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"progress_time": input.ProgressTime}
	if input.SessionData != "" {
		updates["session_data"] = input.SessionData
	}
	if input.Paused {
		updates["status"] = models.SessionPaused
		updates["paused_at"] = time.Now()
	} else {
		updates["status"] = models.SessionInProgress
		updates["paused_at"] = nil
	}
	if err := s.db.Model(progress).Updates(updates).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// CompleteInput optionally rates the session 1-5.
type CompleteInput struct {
	ProgressTime int    `json:"progress_time"`
	Rating       int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback     string `json:"feedback"`
}

// Complete closes the progress row and folds the rating into the catalog
// aggregates. Counter updates run as SQL expressions so concurrent
// completions do not lose increments.
func (s *WellnessService) Complete(sessionID, userID uint, input CompleteInput) (*models.SessionProgress, error) {
	progress, err := s.liveProgress(sessionID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]any{
		"status":       models.SessionCompleted,
		"completed_at": now,
	}
	if input.ProgressTime > 0 {
		updates["progress_time"] = input.ProgressTime
	}
	if input.Rating > 0 {
		updates["rating"] = input.Rating
	}
	if input.Feedback != "" {
		updates["feedback"] = input.Feedback
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(progress).Updates(updates).Error; err != nil {
			return err
		}

		counters := map[string]any{
			"total_sessions": gorm.Expr("total_sessions + 1"),
		}
		if input.Rating > 0 {
			counters["average_rating"] = gorm.Expr(
				"(average_rating * rating_count + ?) / (rating_count + 1)", input.Rating)
			counters["rating_count"] = gorm.Expr("rating_count + 1")
		}
		return tx.Model(&models.WellnessSession{}).Where("id = ?", sessionID).
			Updates(counters).Error
	})
	if err != nil {
		return nil, err
	}

	utils.LogDataAccess("complete", "session_progress", utils.Fields{
		"user_id":    userID,
		"session_id": sessionID,
	})
	return progress, nil
}

func (s *WellnessService) liveProgress(sessionID, userID uint) (*models.SessionProgress, error) {
	var progress models.SessionProgress
	err := s.db.
		Where("session_id = ? AND user_id = ? AND status IN ?", sessionID, userID,
			[]models.SessionStatus{models.SessionInProgress, models.SessionPaused}).
		First(&progress).Error
	if err != nil {
		return nil, translateGormError(err)
	}
	return &progress, nil
}

func (s *WellnessService) UserProgress(userID uint, limit int) ([]models.SessionProgress, error) {
	q := s.db.Where("user_id = ?", userID).Order("updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.SessionProgress
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type WellnessStats struct {
	SessionsCompleted int            `json:"sessions_completed"`
	TotalMinutes      int            `json:"total_minutes"`
	CurrentStreak     int            `json:"current_streak"` // consecutive days with a completion
	AverageRating     float64        `json:"average_rating"`
	FavoriteType      string         `json:"favorite_type,omitempty"`
	TypeBreakdown     map[string]int `json:"type_breakdown"`
}

func (s *WellnessService) Stats(userID uint) (*WellnessStats, error) {
	var completed []models.SessionProgress
	err := s.db.
		Where("user_id = ? AND status = ?", userID, models.SessionCompleted).
		Order("completed_at DESC").
		Find(&completed).Error
	if err != nil {
		return nil, err
	}

	sessionTypes := map[uint]models.SessionType{}
	if len(completed) > 0 {
		ids := make([]uint, 0, len(completed))
		for i := range completed {
			ids = append(ids, completed[i].SessionID)
		}
		var sessions []models.WellnessSession
		if err := s.db.Where("id IN ?", ids).Find(&sessions).Error; err != nil {
			return nil, err
		}
		for i := range sessions {
			sessionTypes[sessions[i].ID] = sessions[i].Type
		}
	}

	return buildWellnessStats(completed, sessionTypes, time.Now()), nil
}

// buildWellnessStats expects completions newest-first.
func buildWellnessStats(completed []models.SessionProgress, types map[uint]models.SessionType, now time.Time) *WellnessStats {
	stats := &WellnessStats{
		SessionsCompleted: len(completed),
		TypeBreakdown:     map[string]int{},
	}
	if len(completed) == 0 {
		return stats
	}

	var ratingSum, ratingN int
	days := map[string]bool{}
	for i := range completed {
		p := &completed[i]
		stats.TotalMinutes += p.ProgressTime / 60
		if p.Rating > 0 {
			ratingSum += p.Rating
			ratingN++
		}
		if t, ok := types[p.SessionID]; ok {
			stats.TypeBreakdown[string(t)]++
		}
		if p.CompletedAt != nil {
			days[p.CompletedAt.Format("2006-01-02")] = true
		}
	}

	if ratingN > 0 {
		stats.AverageRating = math.Round(float64(ratingSum)/float64(ratingN)*100) / 100
	}

	best := 0
	for t, n := range stats.TypeBreakdown {
		if n > best {
			best = n
			stats.FavoriteType = t
		}
	}

	// Streak counts back from today; a quiet today does not break a streak
	// that ran through yesterday.
	day := dayStart(now)
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format("2006-01-02")] {
		stats.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}
	return stats
}
