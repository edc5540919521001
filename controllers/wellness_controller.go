package controllers

import (
	"net/http"
	"strconv"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

type WellnessController struct {
	Svc *services.WellnessService
}

func NewWellnessController(svc *services.WellnessService) *WellnessController {
	return &WellnessController{Svc: svc}
}

type sessionInput struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Type         string `json:"type" binding:"required"`
	Duration     int    `json:"duration" binding:"required,min=1,max=480"`
	Difficulty   string `json:"difficulty"`
	AudioURL     string `json:"audio_url"`
	VideoURL     string `json:"video_url"`
	ImageURL     string `json:"image_url"`
	Instructions string `json:"instructions"`
	Benefits     string `json:"benefits"`
	Metadata     string `json:"metadata"`
	IsPremium    bool   `json:"is_premium"`
	Tags         string `json:"tags"`
}

func (h *WellnessController) CreateSession(c *gin.Context) {
	var input sessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := &models.WellnessSession{
		Title:        input.Title,
		Description:  input.Description,
		Type:         models.SessionType(input.Type),
		Duration:     input.Duration,
		Difficulty:   models.SessionDifficulty(input.Difficulty),
		AudioURL:     input.AudioURL,
		VideoURL:     input.VideoURL,
		ImageURL:     input.ImageURL,
		Instructions: input.Instructions,
		Benefits:     input.Benefits,
		Metadata:     input.Metadata,
		IsPremium:    input.IsPremium,
		IsActive:     true,
		Tags:         input.Tags,
	}
	if session.Difficulty == "" {
		session.Difficulty = models.DifficultyBeginner
	}

	if err := h.Svc.CreateSession(session); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionView(session))
}

func (h *WellnessController) ListSessions(c *gin.Context) {
	var f services.SessionFilters
	f.Type = models.SessionType(c.Query("type"))
	f.Difficulty = models.SessionDifficulty(c.Query("difficulty"))
	if v := c.Query("premium"); v != "" {
		premium := v == "true"
		f.Premium = &premium
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		f.Limit = n
	}

	sessions, err := h.Svc.ListSessions(f)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		out = append(out, sessionView(&sessions[i]))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out, "count": len(out)})
}

func (h *WellnessController) GetSession(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	session, err := h.Svc.GetSession(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WellnessController) UpdateSession(c *gin.Context) {
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
		"title", "description", "type", "duration", "difficulty",
		"audio_url", "video_url", "image_url", "instructions",
		"benefits", "metadata", "is_premium", "tags")

	session, err := h.Svc.UpdateSession(id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WellnessController) DeleteSession(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Svc.DeleteSession(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session retired"})
}

func (h *WellnessController) Start(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	progress, err := h.Svc.Start(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *WellnessController) Progress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input services.ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	progress, err := h.Svc.RecordProgress(id, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *WellnessController) Complete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input services.CompleteInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	progress, err := h.Svc.Complete(id, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *WellnessController) UserProgress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	rows, err := h.Svc.UserProgress(userID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": rows, "count": len(rows)})
}

func (h *WellnessController) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.Svc.Stats(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func sessionView(s *models.WellnessSession) gin.H {
	return gin.H{
		"session":            s,
		"duration_formatted": s.DurationFormatted(),
		"difficulty_level":   s.DifficultyLevel(),
		"is_popular":         s.IsPopular(),
	}
}
