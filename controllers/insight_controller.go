package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Svc *services.InsightService
}

func NewInsightController(svc *services.InsightService) *InsightController {
	return &InsightController{Svc: svc}
}

type insightInput struct {
	Type            string    `json:"type" binding:"required"`
	Title           string    `json:"title" binding:"required"`
	Content         string    `json:"content" binding:"required"`
	Priority        string    `json:"priority"`
	Metadata        string    `json:"metadata"`
	Recommendations string    `json:"recommendations"`
	ConfidenceScore float64   `json:"confidence_score" binding:"omitempty,min=0,max=100"`
	InsightDate     time.Time `json:"insight_date"`
}

func (h *InsightController) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input insightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	insight := &models.AIInsight{
		Type:            models.InsightType(input.Type),
		Title:           input.Title,
		Content:         input.Content,
		Priority:        models.InsightPriority(input.Priority),
		Metadata:        input.Metadata,
		Recommendations: input.Recommendations,
		ConfidenceScore: input.ConfidenceScore,
		InsightDate:     input.InsightDate,
		UserID:          userID,
	}
	if insight.Priority == "" {
		insight.Priority = models.PriorityMedium
	}

	if err := h.Svc.Create(insight); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, insight)
}

func (h *InsightController) List(c *gin.Context) {
	h.list(c, services.InsightFilters{})
}

func (h *InsightController) Unread(c *gin.Context) {
	h.list(c, services.InsightFilters{UnreadOnly: true})
}

func (h *InsightController) ByType(c *gin.Context) {
	h.list(c, services.InsightFilters{Type: models.InsightType(c.Param("type"))})
}

func (h *InsightController) list(c *gin.Context, f services.InsightFilters) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		f.Limit = n
	}

	insights, err := h.Svc.List(userID, f)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(insights))
	for i := range insights {
		ins := &insights[i]
		out = append(out, gin.H{
			"insight":       ins,
			"is_new":        ins.IsNew(now),
			"is_actionable": ins.IsActionable(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"insights": out, "count": len(out)})
}

func (h *InsightController) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	insight, err := h.Svc.Get(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, insight)
}

func (h *InsightController) MarkRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	insight, err := h.Svc.MarkRead(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, insight)
}

func (h *InsightController) Dismiss(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Svc.Dismiss(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "insight dismissed"})
}

func (h *InsightController) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "insight deleted"})
}

type generateInput struct {
	Type string `json:"type"`
}

func (h *InsightController) Generate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input generateInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	insight, err := h.Svc.Generate(c.Request.Context(), userID, models.InsightType(input.Type))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, insight)
}

func (h *InsightController) GenerationStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	status, err := h.Svc.Status(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
