package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	openai "github.com/sashabaranov/go-openai"
	"gorm.io/gorm"
)

// ChatCompleter is the slice of the OpenAI client the generator uses;
// tests substitute a canned implementation.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type InsightService struct {
	db       *gorm.DB
	ai       ChatCompleter
	model    string
	dayLimit int
}

func NewInsightService(db *gorm.DB, ai ChatCompleter, model string, dayLimit int) *InsightService {
	return &InsightService{db: db, ai: ai, model: model, dayLimit: dayLimit}
}

func (s *InsightService) Create(insight *models.AIInsight) error {
	if insight.InsightDate.IsZero() {
		insight.InsightDate = time.Now()
	}
	if err := s.db.Create(insight).Error; err != nil {
		return err
	}
	utils.LogDataAccess("create", "ai_insight", utils.Fields{"user_id": insight.UserID})
	return nil
}

type InsightFilters struct {
	Type       models.InsightType
	UnreadOnly bool
	Limit      int
}

func (s *InsightService) List(userID uint, f InsightFilters) ([]models.AIInsight, error) {
	q := s.db.Where("user_id = ? AND is_dismissed = ?", userID, false).
		Order("created_at DESC")
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var insights []models.AIInsight
	if err := q.Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (s *InsightService) Get(id, userID uint) (*models.AIInsight, error) {
	var insight models.AIInsight
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&insight).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &insight, nil
}

func (s *InsightService) MarkRead(id, userID uint) (*models.AIInsight, error) {
	insight, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(insight).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	return insight, nil
}

func (s *InsightService) Dismiss(id, userID uint) error {
	insight, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	return s.db.Model(insight).Updates(map[string]any{
		"is_dismissed": true,
		"is_read":      true,
	}).Error
}

func (s *InsightService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.AIInsight{}, id).Error
}

// GenerationStatus reports how much of today's generation quota remains.
type GenerationStatus struct {
	GeneratedToday int       `json:"generated_today"`
	DailyLimit     int       `json:"daily_limit"`
	Remaining      int       `json:"remaining"`
	ResetsAt       time.Time `json:"resets_at"`
}

func (s *InsightService) Status(userID uint) (*GenerationStatus, error) {
	count, err := s.generatedToday(userID)
	if err != nil {
		return nil, err
	}

	remaining := s.dayLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return &GenerationStatus{
		GeneratedToday: count,
		DailyLimit:     s.dayLimit,
		Remaining:      remaining,
		ResetsAt:       dayStart(time.Now()).AddDate(0, 0, 1),
	}, nil
}

func (s *InsightService) generatedToday(userID uint) (int, error) {
	start := dayStart(time.Now())
	var count int64
	err := s.db.Model(&models.AIInsight{}).
		Where("user_id = ? AND created_at >= ? AND metadata LIKE ?",
			userID, start, `%"source":"generated"%`).
		Count(&count).Error
	return int(count), err
}

// generatedInsight is the JSON shape the model is asked to produce.
type generatedInsight struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Priority        string   `json:"priority"`
	Recommendations []string `json:"recommendations"`
	ConfidenceScore float64  `json:"confidence_score"`
}

// Generate builds an insight from the caller's last week of data. The
// daily quota is checked first; crossing it returns ErrLimitReached.
func (s *InsightService) Generate(ctx context.Context, userID uint, insightType models.InsightType) (*models.AIInsight, error) {
	count, err := s.generatedToday(userID)
	if err != nil {
		return nil, err
	}
	if count >= s.dayLimit {
		return nil, ErrLimitReached
	}

	summary, err := s.recentDataSummary(userID)
	if err != nil {
		return nil, err
	}

	if insightType == "" {
		insightType = models.InsightRecommendation
	}

	resp, err := s.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a health coach generating one insight from a user's tracked data. " +
					"Respond with a single JSON object with keys: title, content, priority " +
					"(low|medium|high|urgent), recommendations (array of strings), " +
					"confidence_score (0-100). No markdown, no prose outside the JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Insight type: %s\n\nTracked data for the last 7 days:\n%s", insightType, summary),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var gen generatedInsight
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &gen); err != nil {
		return nil, fmt.Errorf("decode generated insight: %w", err)
	}

	insight := &models.AIInsight{
		UserID:          userID,
		Type:            insightType,
		Title:           gen.Title,
		Content:         gen.Content,
		Priority:        normalizePriority(gen.Priority),
		ConfidenceScore: gen.ConfidenceScore,
		InsightDate:     time.Now(),
	}
	if len(gen.Recommendations) > 0 {
		raw, _ := json.Marshal(gen.Recommendations)
		insight.Recommendations = string(raw)
	}
	meta, _ := json.Marshal(map[string]string{"source": "generated", "model": s.model})
	insight.Metadata = string(meta)

	if err := s.db.Create(insight).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("generated insight", utils.Fields{
		"user_id":    userID,
		"insight_id": insight.ID,
		"type":       string(insightType),
	})
	return insight, nil
}

func normalizePriority(p string) models.InsightPriority {
	switch models.InsightPriority(strings.ToLower(p)) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return models.InsightPriority(strings.ToLower(p))
	default:
		return models.PriorityMedium
	}
}

// recentDataSummary renders the last week of metrics as compact text for
// the prompt. Raw notes are left out; only numbers and enums go in.
func (s *InsightService) recentDataSummary(userID uint) (string, error) {
	weekAgo := time.Now().AddDate(0, 0, -7)
	var b strings.Builder

	var sleep []models.SleepMetric
	if err := s.db.Where("user_id = ? AND date >= ?", userID, weekAgo).
		Order("date ASC").Find(&sleep).Error; err != nil {
		return "", err
	}
	for i := range sleep {
		m := &sleep[i]
		fmt.Fprintf(&b, "sleep %s: %d min, quality %s\n",
			m.Date.Format("2006-01-02"), m.Duration, m.Quality)
	}

	var nutrition []models.NutritionMetric
	if err := s.db.Where("user_id = ? AND date >= ?", userID, weekAgo).
		Order("date ASC").Find(&nutrition).Error; err != nil {
		return "", err
	}
	for i := range nutrition {
		m := &nutrition[i]
		fmt.Fprintf(&b, "meal %s %s: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat\n",
			m.Date.Format("2006-01-02"), m.MealType, m.Calories, m.Protein, m.Carbs, m.Fats)
	}

	var activity []models.ActivityMetric
	if err := s.db.Where("user_id = ? AND date >= ?", userID, weekAgo).
		Order("date ASC").Find(&activity).Error; err != nil {
		return "", err
	}
	for i := range activity {
		m := &activity[i]
		fmt.Fprintf(&b, "activity %s %s: %d min, intensity %s, %.0f kcal\n",
			m.Date.Format("2006-01-02"), m.ActivityType, m.Duration, m.Intensity, m.CaloriesBurned)
	}

	var summaries []models.DailySummary
	if err := s.db.Where("user_id = ? AND date >= ?", userID, weekAgo).
		Order("date ASC").Find(&summaries).Error; err != nil {
		return "", err
	}
	for i := range summaries {
		d := &summaries[i]
		fmt.Fprintf(&b, "check-in %s: mood %d/5, stress %d/5, energy %d/5\n",
			d.Date.Format("2006-01-02"), d.Mood, d.StressLevel, d.EnergyLevel)
	}

	if b.Len() == 0 {
		return "no data tracked this week", nil
	}
	return b.String(), nil
}
