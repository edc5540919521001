package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Svc *services.ReminderService
}

func NewReminderController(svc *services.ReminderService) *ReminderController {
	return &ReminderController{Svc: svc}
}

type reminderInput struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Type          string     `json:"type" binding:"required"`
	ScheduledTime time.Time  `json:"scheduled_time" binding:"required"`
	Frequency     string     `json:"frequency"`
	Weekdays      string     `json:"weekdays"`
	EndDate       *time.Time `json:"end_date"`
	CustomData    string     `json:"custom_data"`
}

func (h *ReminderController) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input reminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder := &models.Reminder{
		Title:         input.Title,
		Description:   input.Description,
		Type:          models.ReminderType(input.Type),
		ScheduledTime: input.ScheduledTime,
		Frequency:     models.ReminderFrequency(input.Frequency),
		Weekdays:      input.Weekdays,
		EndDate:       input.EndDate,
		CustomData:    input.CustomData,
		Status:        models.StatusActive,
		Enabled:       true,
		UserID:        userID,
	}
	if reminder.Frequency == "" {
		reminder.Frequency = models.FrequencyOnce
	}

	if err := h.Svc.Create(reminder); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (h *ReminderController) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var f services.ReminderFilters
	if v := c.Query("enabled"); v != "" {
		enabled := v == "true"
		f.Enabled = &enabled
	}
	f.Status = models.ReminderStatus(c.Query("status"))
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		f.Limit = n
	}

	reminders, err := h.Svc.List(userID, f)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders, "count": len(reminders)})
}

func (h *ReminderController) Upcoming(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	hours := 24
	if v := c.Query("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 24*7 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hours"})
			return
		}
		hours = n
	}

	reminders, err := h.Svc.Upcoming(userID, hours)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders, "count": len(reminders)})
}

func (h *ReminderController) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	reminder, err := h.Svc.Get(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

type reminderPatch struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	Frequency     *string    `json:"frequency"`
	Weekdays      *string    `json:"weekdays"`
	EndDate       *time.Time `json:"end_date"`
	Enabled       *bool      `json:"enabled"`
	Status        *string    `json:"status"`
	CustomData    *string    `json:"custom_data"`
}

func (h *ReminderController) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input reminderPatch
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := map[string]any{}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.ScheduledTime != nil {
		patch["scheduled_time"] = *input.ScheduledTime
	}
	if input.Frequency != nil {
		patch["frequency"] = *input.Frequency
	}
	if input.Weekdays != nil {
		patch["weekdays"] = *input.Weekdays
	}
	if input.EndDate != nil {
		patch["end_date"] = *input.EndDate
	}
	if input.Enabled != nil {
		patch["enabled"] = *input.Enabled
	}
	if input.Status != nil {
		patch["status"] = *input.Status
	}
	if input.CustomData != nil {
		patch["custom_data"] = *input.CustomData
	}

	reminder, err := h.Svc.Update(id, userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderController) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "reminder deleted"})
}

func (h *ReminderController) Complete(c *gin.Context) {
	h.recordAction(c, h.Svc.Complete)
}

func (h *ReminderController) Dismiss(c *gin.Context) {
	h.recordAction(c, h.Svc.Dismiss)
}

func (h *ReminderController) recordAction(c *gin.Context, fn func(uint, uint, services.ActionInput) (*models.ReminderAction, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input services.ActionInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	action, err := fn(id, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}

type snoozeInput struct {
	Minutes  int            `json:"minutes" binding:"required,min=1,max=1440"`
	Note     string         `json:"note"`
	Metadata map[string]any `json:"metadata"`
}

func (h *ReminderController) Snooze(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input snoozeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := h.Svc.Snooze(id, userID, input.Minutes, services.ActionInput{
		Note:     input.Note,
		Metadata: input.Metadata,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}

// Actions lists the user's action history, optionally scoped to one
// reminder and a time range.
func (h *ReminderController) Actions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var reminderID uint
	if c.Param("id") != "" {
		id, ok := idParam(c)
		if !ok {
			return
		}
		reminderID = id
	}

	f, ok := rangeFromQuery(c)
	if !ok {
		return
	}

	actions, err := h.Svc.Actions(reminderID, userID, f.From, f.To, f.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions, "count": len(actions)})
}

func (h *ReminderController) Stats(c *gin.Context) {
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
