package controllers

import (
	"net/http"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

type DailySummaryController struct {
	Svc *services.DailySummaryService
}

func NewDailySummaryController(svc *services.DailySummaryService) *DailySummaryController {
	return &DailySummaryController{Svc: svc}
}

type summaryInput struct {
	Date                   time.Time `json:"date" binding:"required"`
	Mood                   int       `json:"mood" binding:"omitempty,min=1,max=5"`
	StressLevel            int       `json:"stress_level" binding:"omitempty,min=1,max=5"`
	EnergyLevel            int       `json:"energy_level" binding:"omitempty,min=1,max=5"`
	Symptoms               string    `json:"symptoms"`
	BloodPressureSystolic  int       `json:"blood_pressure_systolic" binding:"omitempty,min=50,max=300"`
	BloodPressureDiastolic int       `json:"blood_pressure_diastolic" binding:"omitempty,min=30,max=200"`
	Weight                 float64   `json:"weight" binding:"omitempty,min=0"`
	Notes                  string    `json:"notes"`
}

func (in *summaryInput) toModel(userID uint) *models.DailySummary {
	return &models.DailySummary{
		Date:                   in.Date,
		Mood:                   in.Mood,
		StressLevel:            in.StressLevel,
		EnergyLevel:            in.EnergyLevel,
		Symptoms:               in.Symptoms,
		BloodPressureSystolic:  in.BloodPressureSystolic,
		BloodPressureDiastolic: in.BloodPressureDiastolic,
		Weight:                 in.Weight,
		Notes:                  in.Notes,
		UserID:                 userID,
	}
}

func (h *DailySummaryController) Create(c *gin.Context) {
	h.save(c, h.Svc.Create, http.StatusCreated)
}

func (h *DailySummaryController) Upsert(c *gin.Context) {
	h.save(c, h.Svc.Upsert, http.StatusOK)
}

func (h *DailySummaryController) save(c *gin.Context, fn func(*models.DailySummary) error, status int) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input summaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary := input.toModel(userID)
	if err := fn(summary); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(status, summaryView(summary))
}

func (h *DailySummaryController) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	f, ok := rangeFromQuery(c)
	if !ok {
		return
	}

	summaries, err := h.Svc.List(userID, f)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(summaries))
	for i := range summaries {
		out = append(out, summaryView(&summaries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"summaries": out, "count": len(out)})
}

func (h *DailySummaryController) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	summary, err := h.Svc.Get(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryView(summary))
}

func (h *DailySummaryController) GetByDate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	day, ok := dateParam(c, "date")
	if !ok {
		return
	}

	summary, err := h.Svc.GetByDate(userID, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryView(summary))
}

func (h *DailySummaryController) Update(c *gin.Context) {
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
		"mood", "stress_level", "energy_level", "symptoms",
		"blood_pressure_systolic", "blood_pressure_diastolic",
		"weight", "notes")

	summary, err := h.Svc.Update(id, userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryView(summary))
}

func (h *DailySummaryController) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "daily summary deleted"})
}

func (h *DailySummaryController) Stats(c *gin.Context) {
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

func summaryView(d *models.DailySummary) gin.H {
	view := gin.H{
		"summary":        d,
		"wellness_score": d.WellnessScore(),
		"symptoms":       d.SymptomList(),
	}
	if cat := d.BloodPressureCategory(); cat != "" {
		view["blood_pressure_category"] = cat
	}
	return view
}
