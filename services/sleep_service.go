package services

import (
	"fmt"
	"math"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"gorm.io/gorm"
)

type SleepService struct {
	db *gorm.DB
}

func NewSleepService(db *gorm.DB) *SleepService {
	return &SleepService{db: db}
}

// RangeFilters narrows metric listings; zero values mean "no filter".
type RangeFilters struct {
	From  time.Time
	To    time.Time
	Limit int
}

// Create enforces one sleep record per user per day.
func (s *SleepService) Create(metric *models.SleepMetric) error {
	var count int64
	day := dayStart(metric.Date)
	err := s.db.Model(&models.SleepMetric{}).
		Where("user_id = ? AND date >= ? AND date < ?", metric.UserID, day, day.AddDate(0, 0, 1)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateDate
	}

	if err := s.db.Create(metric).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDate
		}
		return err
	}
	utils.LogDataAccess("create", "sleep_metric", utils.Fields{"user_id": metric.UserID})
	return nil
}

func (s *SleepService) List(userID uint, f RangeFilters) ([]models.SleepMetric, error) {
	q := s.db.Where("user_id = ?", userID).Order("date DESC")
	q = applyRange(q, f)

	var metrics []models.SleepMetric
	if err := q.Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (s *SleepService) Get(id, userID uint) (*models.SleepMetric, error) {
	var metric models.SleepMetric
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&metric).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &metric, nil
}

func (s *SleepService) Update(id, userID uint, patch map[string]any) (*models.SleepMetric, error) {
	if _, err := s.Get(id, userID); err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		if err := s.db.Model(&models.SleepMetric{}).Where("id = ?", id).Updates(patch).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id, userID)
}

func (s *SleepService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.SleepMetric{}, id).Error
}

type SleepStats struct {
	TotalRecords      int     `json:"total_records"`
	AverageDuration   int     `json:"average_duration"` // minutes
	AverageQuality    float64 `json:"average_quality"`  // 1-4 scale
	AverageEfficiency int     `json:"average_efficiency"`
	AverageBedTime    string  `json:"average_bed_time,omitempty"`
	AverageWakeTime   string  `json:"average_wake_time,omitempty"`
}

func (s *SleepService) Stats(userID uint, f RangeFilters) (*SleepStats, error) {
	metrics, err := s.List(userID, f)
	if err != nil {
		return nil, err
	}
	return buildSleepStats(metrics), nil
}

func buildSleepStats(metrics []models.SleepMetric) *SleepStats {
	stats := &SleepStats{TotalRecords: len(metrics)}
	if len(metrics) == 0 {
		return stats
	}

	var durSum, durN, qualSum, qualN, effSum, effN int
	var bedTimes, wakeTimes []int
	for i := range metrics {
		m := &metrics[i]
		if m.Duration > 0 {
			durSum += m.Duration
			durN++
		}
		if q := m.QualityScore(); q > 0 {
			qualSum += q
			qualN++
		}
		if e := m.SleepEfficiency(); e >= 0 {
			effSum += e
			effN++
		}
		if v, ok := clockToMinutes(m.BedTime); ok {
			bedTimes = append(bedTimes, v)
		}
		if v, ok := clockToMinutes(m.WakeTime); ok {
			wakeTimes = append(wakeTimes, v)
		}
	}

	if durN > 0 {
		stats.AverageDuration = durSum / durN
	}
	if qualN > 0 {
		stats.AverageQuality = math.Round(float64(qualSum)/float64(qualN)*100) / 100
	}
	if effN > 0 {
		stats.AverageEfficiency = effSum / effN
	}
	stats.AverageBedTime = averageClock(bedTimes)
	stats.AverageWakeTime = averageClock(wakeTimes)
	return stats
}

// averageClock averages "HH:MM" values on a circle so bed times straddling
// midnight (23:30, 00:30) do not average to noon.
func averageClock(minutes []int) string {
	if len(minutes) == 0 {
		return ""
	}

	var sinSum, cosSum float64
	for _, m := range minutes {
		rad := float64(m) / (24 * 60) * 2 * math.Pi
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}

	rad := math.Atan2(sinSum/float64(len(minutes)), cosSum/float64(len(minutes)))
	if rad < 0 {
		rad += 2 * math.Pi
	}
	avg := int(math.Round(rad / (2 * math.Pi) * 24 * 60))
	avg %= 24 * 60
	return fmt.Sprintf("%02d:%02d", avg/60, avg%60)
}

func clockToMinutes(hhmm string) (int, bool) {
	if hhmm == "" {
		return 0, false
	}
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func applyRange(q *gorm.DB, f RangeFilters) *gorm.DB {
	if !f.From.IsZero() {
		q = q.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("date <= ?", f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	return q
}
