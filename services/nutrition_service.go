package services

import (
	"math"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"gorm.io/gorm"
)

type NutritionService struct {
	db *gorm.DB
}

func NewNutritionService(db *gorm.DB) *NutritionService {
	return &NutritionService{db: db}
}

func (s *NutritionService) Create(metric *models.NutritionMetric) error {
	if err := s.db.Create(metric).Error; err != nil {
		return err
	}
	utils.LogDataAccess("create", "nutrition_metric", utils.Fields{"user_id": metric.UserID})
	return nil
}

func (s *NutritionService) List(userID uint, f RangeFilters) ([]models.NutritionMetric, error) {
	q := s.db.Where("user_id = ?", userID).Order("date DESC")
	q = applyRange(q, f)

	var metrics []models.NutritionMetric
	if err := q.Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

// ForDay returns every entry logged on one calendar day, earliest first.
func (s *NutritionService) ForDay(userID uint, day time.Time) ([]models.NutritionMetric, error) {
	start := dayStart(day)
	var metrics []models.NutritionMetric
	err := s.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, start.AddDate(0, 0, 1)).
		Order("date ASC").
		Find(&metrics).Error
	return metrics, err
}

func (s *NutritionService) Get(id, userID uint) (*models.NutritionMetric, error) {
	var metric models.NutritionMetric
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&metric).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &metric, nil
}

func (s *NutritionService) Update(id, userID uint, patch map[string]any) (*models.NutritionMetric, error) {
	if _, err := s.Get(id, userID); err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		if err := s.db.Model(&models.NutritionMetric{}).Where("id = ?", id).Updates(patch).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id, userID)
}

func (s *NutritionService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.NutritionMetric{}, id).Error
}

type NutritionStats struct {
	TotalEntries      int                    `json:"total_entries"`
	DaysTracked       int                    `json:"days_tracked"`
	DailyCalories     float64                `json:"daily_calories"`
	DailyProtein      float64                `json:"daily_protein"`
	DailyCarbs        float64                `json:"daily_carbs"`
	DailyFats         float64                `json:"daily_fats"`
	DailyWater        float64                `json:"daily_water"` // ml
	MacroDistribution *models.MacroBreakdown `json:"macro_distribution,omitempty"`
	MealBreakdown     map[string]int         `json:"meal_breakdown"`
}

func (s *NutritionService) Stats(userID uint, f RangeFilters) (*NutritionStats, error) {
	metrics, err := s.List(userID, f)
	if err != nil {
		return nil, err
	}
	return buildNutritionStats(metrics), nil
}

// buildNutritionStats averages per tracked day, not per entry, so a day
// with five meals weighs the same as a day with one.
func buildNutritionStats(metrics []models.NutritionMetric) *NutritionStats {
	stats := &NutritionStats{
		TotalEntries:  len(metrics),
		MealBreakdown: map[string]int{},
	}
	if len(metrics) == 0 {
		return stats
	}

	days := map[string]bool{}
	var calories, protein, carbs, fats, water float64
	for i := range metrics {
		m := &metrics[i]
		days[m.Date.Format("2006-01-02")] = true
		calories += m.Calories
		protein += m.Protein
		carbs += m.Carbs
		fats += m.Fats
		water += m.WaterIntake
		stats.MealBreakdown[string(m.MealType)]++
	}

	n := float64(len(days))
	stats.DaysTracked = len(days)
	stats.DailyCalories = round2(calories / n)
	stats.DailyProtein = round2(protein / n)
	stats.DailyCarbs = round2(carbs / n)
	stats.DailyFats = round2(fats / n)
	stats.DailyWater = round2(water / n)

	total := (&models.NutritionMetric{Protein: protein, Carbs: carbs, Fats: fats})
	stats.MacroDistribution = total.Macros()
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
