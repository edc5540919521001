package services

import (
	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"gorm.io/gorm"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Create stores the workout, filling in a MET-based calorie estimate when
// the caller did not report one. The profile weight feeds the estimate.
func (s *ActivityService) Create(metric *models.ActivityMetric, profileWeightKg float64) error {
	if metric.CaloriesBurned == 0 && metric.Duration > 0 {
		metric.CaloriesBurned = float64(metric.EstimatedCalories(profileWeightKg))
	}
	if err := s.db.Create(metric).Error; err != nil {
		return err
	}
	utils.LogDataAccess("create", "activity_metric", utils.Fields{"user_id": metric.UserID})
	return nil
}

func (s *ActivityService) List(userID uint, f RangeFilters) ([]models.ActivityMetric, error) {
	q := s.db.Where("user_id = ?", userID).Order("date DESC")
	q = applyRange(q, f)

	var metrics []models.ActivityMetric
	if err := q.Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (s *ActivityService) Get(id, userID uint) (*models.ActivityMetric, error) {
	var metric models.ActivityMetric
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&metric).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &metric, nil
}

func (s *ActivityService) Update(id, userID uint, patch map[string]any) (*models.ActivityMetric, error) {
	if _, err := s.Get(id, userID); err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		if err := s.db.Model(&models.ActivityMetric{}).Where("id = ?", id).Updates(patch).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id, userID)
}

func (s *ActivityService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.ActivityMetric{}, id).Error
}

type ActivityStats struct {
	TotalWorkouts    int            `json:"total_workouts"`
	TotalMinutes     int            `json:"total_minutes"`
	TotalCalories    int            `json:"total_calories"`
	TotalSteps       int            `json:"total_steps"`
	TotalDistance    float64        `json:"total_distance"`
	AverageDuration  int            `json:"average_duration"`
	AverageIntensity float64        `json:"average_intensity"` // 1-4 scale
	TypeBreakdown    map[string]int `json:"type_breakdown"`
	FavoriteType     string         `json:"favorite_type,omitempty"`
}

func (s *ActivityService) Stats(userID uint, f RangeFilters) (*ActivityStats, error) {
	metrics, err := s.List(userID, f)
	if err != nil {
		return nil, err
	}
	return buildActivityStats(metrics), nil
}

func buildActivityStats(metrics []models.ActivityMetric) *ActivityStats {
	stats := &ActivityStats{
		TotalWorkouts: len(metrics),
		TypeBreakdown: map[string]int{},
	}
	if len(metrics) == 0 {
		return stats
	}

	var intensitySum, intensityN int
	for i := range metrics {
		m := &metrics[i]
		stats.TotalMinutes += m.Duration
		stats.TotalCalories += int(m.CaloriesBurned)
		stats.TotalSteps += m.Steps
		stats.TotalDistance += m.Distance
		stats.TypeBreakdown[string(m.ActivityType)]++
		if sc := m.IntensityScore(); sc > 0 {
			intensitySum += sc
			intensityN++
		}
	}

	stats.AverageDuration = stats.TotalMinutes / len(metrics)
	if intensityN > 0 {
		stats.AverageIntensity = round2(float64(intensitySum) / float64(intensityN))
	}
	stats.TotalDistance = round2(stats.TotalDistance)

	best := 0
	for t, n := range stats.TypeBreakdown {
		if n > best {
			best = n
			stats.FavoriteType = t
		}
	}
	return stats
}
