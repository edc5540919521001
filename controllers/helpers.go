package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/services"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func requireUserID(c *gin.Context) (uint, bool) {
	id, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// dateParam parses a YYYY-MM-DD path segment in server-local time.
func dateParam(c *gin.Context, name string) (time.Time, bool) {
	v := c.Param(name)
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// rangeFromQuery reads optional from/to/limit query params.
func rangeFromQuery(c *gin.Context) (services.RangeFilters, bool) {
	var f services.RangeFilters
	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return f, false
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return f, false
		}
		f.To = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return f, false
		}
		f.Limit = n
	}
	return f, true
}

// respondServiceError maps the service sentinels onto HTTP statuses.
// Unknown errors are logged and surfaced as an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrDuplicateDate):
		c.JSON(http.StatusConflict, gin.H{"error": "record already exists for this date"})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "record already exists"})
	case errors.Is(err, services.ErrLimitReached):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily generation limit reached"})
	default:
		utils.LogError("request failed", err, utils.Fields{"path": c.FullPath()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
