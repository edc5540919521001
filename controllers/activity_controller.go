package controllers

import (
	"net/http"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/middlewares"
	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Svc *services.ActivityService
}

func NewActivityController(svc *services.ActivityService) *ActivityController {
	return &ActivityController{Svc: svc}
}

type activityInput struct {
	Date             time.Time `json:"date" binding:"required"`
	ActivityType     string    `json:"activity_type" binding:"required"`
	ActivityName     string    `json:"activity_name" binding:"required"`
	Duration         int       `json:"duration" binding:"required,min=1,max=1440"`
	Intensity        string    `json:"intensity" binding:"required"`
	CaloriesBurned   float64   `json:"calories_burned" binding:"omitempty,min=0"`
	Distance         float64   `json:"distance" binding:"omitempty,min=0"`
	DistanceUnit     string    `json:"distance_unit"`
	Steps            int       `json:"steps" binding:"omitempty,min=0"`
	AverageHeartRate int       `json:"average_heart_rate" binding:"omitempty,min=0,max=300"`
	HeartRateMax     int       `json:"heart_rate_max" binding:"omitempty,min=0,max=300"`
	Notes            string    `json:"notes"`
}

func (h *ActivityController) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metric := &models.ActivityMetric{
		Date:             input.Date,
		ActivityType:     models.ActivityType(input.ActivityType),
		ActivityName:     input.ActivityName,
		Duration:         input.Duration,
		Intensity:        models.ActivityIntensity(input.Intensity),
		CaloriesBurned:   input.CaloriesBurned,
		Distance:         input.Distance,
		DistanceUnit:     models.DistanceUnit(input.DistanceUnit),
		Steps:            input.Steps,
		AverageHeartRate: input.AverageHeartRate,
		HeartRateMax:     input.HeartRateMax,
		Notes:            input.Notes,
		UserID:           userID,
	}

	var weight float64
	if user, ok := middlewares.CurrentUser(c); ok {
		weight = user.Weight
	}
	if err := h.Svc.Create(metric, weight); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activityView(metric))
}

func (h *ActivityController) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	f, ok := rangeFromQuery(c)
	if !ok {
		return
	}

	metrics, err := h.Svc.List(userID, f)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(metrics))
	for i := range metrics {
		out = append(out, activityView(&metrics[i]))
	}
	c.JSON(http.StatusOK, gin.H{"workouts": out, "count": len(out)})
}

func (h *ActivityController) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	metric, err := h.Svc.Get(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, activityView(metric))
}

func (h *ActivityController) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := pickFields(input,
		"activity_type", "activity_name", "duration", "intensity",
		"calories_burned", "distance", "distance_unit", "steps",
		"average_heart_rate", "heart_rate_max", "notes")

	metric, err := h.Svc.Update(id, userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, activityView(metric))
}

func (h *ActivityController) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "workout deleted"})
}

func (h *ActivityController) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	f, ok := rangeFromQuery(c)
	if !ok {
		return
	}

	stats, err := h.Svc.Stats(userID, f)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func activityView(m *models.ActivityMetric) gin.H {
	view := gin.H{
		"workout":         m,
		"intensity_score": m.IntensityScore(),
	}
	if pace := m.Pace(); pace >= 0 {
		view["pace"] = pace
		view["average_speed"] = m.AverageSpeed()
	}
	return view
}
