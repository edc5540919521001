package controllers

import (
	"net/http"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

type NutritionController struct {
	Svc *services.NutritionService
}

func NewNutritionController(svc *services.NutritionService) *NutritionController {
	return &NutritionController{Svc: svc}
}

type nutritionInput struct {
	Date        time.Time `json:"date" binding:"required"`
	MealType    string    `json:"meal_type" binding:"required"`
	FoodName    string    `json:"food_name" binding:"required"`
	ServingSize float64   `json:"serving_size"`
	ServingUnit string    `json:"serving_unit"`
	Calories    float64   `json:"calories" binding:"omitempty,min=0"`
	Protein     float64   `json:"protein" binding:"omitempty,min=0"`
	Carbs       float64   `json:"carbs" binding:"omitempty,min=0"`
	Fats        float64   `json:"fats" binding:"omitempty,min=0"`
	Fiber       float64   `json:"fiber"`
	Sugar       float64   `json:"sugar"`
	Sodium      float64   `json:"sodium"`
	WaterIntake float64   `json:"water_intake"`
	Notes       string    `json:"notes"`
}

func (h *NutritionController) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input nutritionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metric := &models.NutritionMetric{
		Date:        input.Date,
		MealType:    models.MealType(input.MealType),
		FoodName:    input.FoodName,
		ServingSize: input.ServingSize,
		ServingUnit: models.ServingUnit(input.ServingUnit),
		Calories:    input.Calories,
		Protein:     input.Protein,
		Carbs:       input.Carbs,
		Fats:        input.Fats,
		Fiber:       input.Fiber,
		Sugar:       input.Sugar,
		Sodium:      input.Sodium,
		WaterIntake: input.WaterIntake,
		Notes:       input.Notes,
		UserID:      userID,
	}
	if err := h.Svc.Create(metric); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, nutritionView(metric))
}

func (h *NutritionController) List(c *gin.Context) {
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
		out = append(out, nutritionView(&metrics[i]))
	}
	c.JSON(http.StatusOK, gin.H{"entries": out, "count": len(out)})
}

// Daily lists everything logged on one calendar day with running totals.
func (h *NutritionController) Daily(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	day, ok := dateParam(c, "date")
	if !ok {
		return
	}

	metrics, err := h.Svc.ForDay(userID, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var calories, protein, carbs, fats, water float64
	out := make([]gin.H, 0, len(metrics))
	for i := range metrics {
		m := &metrics[i]
		calories += m.Calories
		protein += m.Protein
		carbs += m.Carbs
		fats += m.Fats
		water += m.WaterIntake
		out = append(out, nutritionView(m))
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    day.Format("2006-01-02"),
		"entries": out,
		"totals": gin.H{
			"calories": calories,
			"protein":  protein,
			"carbs":    carbs,
			"fats":     fats,
			"water":    water,
		},
	})
}

func (h *NutritionController) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, nutritionView(metric))
}

func (h *NutritionController) Update(c *gin.Context) {
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
		"meal_type", "food_name", "serving_size", "serving_unit",
		"calories", "protein", "carbs", "fats", "fiber", "sugar",
		"sodium", "water_intake", "notes")

	metric, err := h.Svc.Update(id, userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, nutritionView(metric))
}

func (h *NutritionController) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "nutrition entry deleted"})
}

func (h *NutritionController) Stats(c *gin.Context) {
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

func nutritionView(m *models.NutritionMetric) gin.H {
	return gin.H{
		"entry":  m,
		"macros": m.Macros(),
	}
}
