package services

import (
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailySummaryService struct {
	db *gorm.DB
}

func NewDailySummaryService(db *gorm.DB) *DailySummaryService {
	return &DailySummaryService{db: db}
}

// Create inserts the check-in for its day; a second check-in for the same
// day is a duplicate, use Upsert for overwrite semantics.
func (s *DailySummaryService) Create(summary *models.DailySummary) error {
	summary.Date = dayStart(summary.Date)
	if err := s.db.Create(summary).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDate
		}
		return err
	}
	utils.LogDataAccess("create", "daily_summary", utils.Fields{"user_id": summary.UserID})
	return nil
}

// Upsert writes the day's check-in, overwriting an existing row for the
// same (user, day) in one statement.
func (s *DailySummaryService) Upsert(summary *models.DailySummary) error {
	summary.Date = dayStart(summary.Date)
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mood", "stress_level", "energy_level", "symptoms",
			"blood_pressure_systolic", "blood_pressure_diastolic",
			"weight", "notes", "updated_at",
		}),
	}).Create(summary).Error
	if err != nil {
		return err
	}
	utils.LogDataAccess("upsert", "daily_summary", utils.Fields{"user_id": summary.UserID})
	return nil
}

func (s *DailySummaryService) List(userID uint, f RangeFilters) ([]models.DailySummary, error) {
	q := s.db.Where("user_id = ?", userID).Order("date DESC")
	q = applyRange(q, f)

	var summaries []models.DailySummary
	if err := q.Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *DailySummaryService) Get(id, userID uint) (*models.DailySummary, error) {
	var summary models.DailySummary
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&summary).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &summary, nil
}

func (s *DailySummaryService) GetByDate(userID uint, day time.Time) (*models.DailySummary, error) {
	start := dayStart(day)
	var summary models.DailySummary
	err := s.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, start.AddDate(0, 0, 1)).
		First(&summary).Error
	if err != nil {
		return nil, translateGormError(err)
	}
	return &summary, nil
}

func (s *DailySummaryService) Update(id, userID uint, patch map[string]any) (*models.DailySummary, error) {
	if _, err := s.Get(id, userID); err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		if err := s.db.Model(&models.DailySummary{}).Where("id = ?", id).Updates(patch).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id, userID)
}

func (s *DailySummaryService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.DailySummary{}, id).Error
}

type SummaryStats struct {
	DaysTracked          int     `json:"days_tracked"`
	AverageMood          float64 `json:"average_mood"`
	AverageStress        float64 `json:"average_stress"`
	AverageEnergy        float64 `json:"average_energy"`
	AverageWellnessScore float64 `json:"average_wellness_score"`
	LatestWeight         float64 `json:"latest_weight,omitempty"`
	WeightChange         float64 `json:"weight_change,omitempty"`
}

func (s *DailySummaryService) Stats(userID uint, f RangeFilters) (*SummaryStats, error) {
	summaries, err := s.List(userID, f)
	if err != nil {
		return nil, err
	}
	return buildSummaryStats(summaries), nil
}

// buildSummaryStats expects summaries newest-first, as List returns them.
func buildSummaryStats(summaries []models.DailySummary) *SummaryStats {
	stats := &SummaryStats{DaysTracked: len(summaries)}
	if len(summaries) == 0 {
		return stats
	}

	var moodSum, moodN, stressSum, stressN, energySum, energyN int
	var scoreSum float64
	var scoreN int
	var firstWeight, lastWeight float64
	for i := range summaries {
		d := &summaries[i]
		if d.Mood > 0 {
			moodSum += d.Mood
			moodN++
		}
		if d.StressLevel > 0 {
			stressSum += d.StressLevel
			stressN++
		}
		if d.EnergyLevel > 0 {
			energySum += d.EnergyLevel
			energyN++
		}
		if sc := d.WellnessScore(); sc >= 0 {
			scoreSum += sc
			scoreN++
		}
		if d.Weight > 0 {
			if lastWeight == 0 {
				lastWeight = d.Weight // newest row with a weight
			}
			firstWeight = d.Weight // keeps updating to the oldest
		}
	}

	if moodN > 0 {
		stats.AverageMood = round2(float64(moodSum) / float64(moodN))
	}
	if stressN > 0 {
		stats.AverageStress = round2(float64(stressSum) / float64(stressN))
	}
	if energyN > 0 {
		stats.AverageEnergy = round2(float64(energySum) / float64(energyN))
	}
	if scoreN > 0 {
		stats.AverageWellnessScore = round2(scoreSum / float64(scoreN))
	}
	if lastWeight > 0 {
		stats.LatestWeight = lastWeight
		stats.WeightChange = round2(lastWeight - firstWeight)
	}
	return stats
}
