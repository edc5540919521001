package controllers

import (
	"net/http"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

type SleepController struct {
	Svc *services.SleepService
}

func NewSleepController(svc *services.SleepService) *SleepController {
	return &SleepController{Svc: svc}
}

type sleepInput struct {
	Date             time.Time `json:"date" binding:"required"`
	BedTime          string    `json:"bed_time"`
	WakeTime         string    `json:"wake_time"`
	Duration         int       `json:"duration" binding:"omitempty,min=0,max=1440"`
	Quality          string    `json:"quality"`
	DeepSleepMinutes int       `json:"deep_sleep_minutes"`
	RemSleepMinutes  int       `json:"rem_sleep_minutes"`
	AwakeDuringNight int       `json:"awake_during_night"`
	Notes            string    `json:"notes"`
}

func (h *SleepController) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input sleepInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metric := &models.SleepMetric{
		Date:             input.Date,
		BedTime:          input.BedTime,
		WakeTime:         input.WakeTime,
		Duration:         input.Duration,
		Quality:          models.SleepQuality(input.Quality),
		DeepSleepMinutes: input.DeepSleepMinutes,
		RemSleepMinutes:  input.RemSleepMinutes,
		AwakeDuringNight: input.AwakeDuringNight,
		Notes:            input.Notes,
		UserID:           userID,
	}
	if err := h.Svc.Create(metric); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sleepView(metric))
}

func (h *SleepController) List(c *gin.Context) {
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
		out = append(out, sleepView(&metrics[i]))
	}
	c.JSON(http.StatusOK, gin.H{"records": out, "count": len(out)})
}

func (h *SleepController) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, sleepView(metric))
}

func (h *SleepController) Update(c *gin.Context) {
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
		"bed_time", "wake_time", "duration", "quality",
		"deep_sleep_minutes", "rem_sleep_minutes", "awake_during_night", "notes")

	metric, err := h.Svc.Update(id, userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sleepView(metric))
}

func (h *SleepController) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "sleep record deleted"})
}

func (h *SleepController) Stats(c *gin.Context) {
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

func sleepView(m *models.SleepMetric) gin.H {
	return gin.H{
		"record":        m,
		"efficiency":    m.SleepEfficiency(),
		"quality_score": m.QualityScore(),
	}
}

// pickFields keeps only the allowed keys of a raw JSON patch, so column
// names outside the whitelist never reach the database layer.
func pickFields(input map[string]any, allowed ...string) map[string]any {
	patch := map[string]any{}
	for _, k := range allowed {
		if v, ok := input[k]; ok {
			patch[k] = v
		}
	}
	return patch
}
