package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/middlewares"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{Svc: svc}
}

// profileResponse wraps the model with the derived fields clients expect.
func profileResponse(c *gin.Context, status int, svc *services.UserService, userID uint) {
	user, err := svc.Get(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(status, gin.H{
		"profile":   user,
		"full_name": user.FullName(),
		"age":       user.Age(time.Now()),
	})
}

func (h *UserController) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	profileResponse(c, http.StatusOK, h.Svc, userID)
}

// CreateProfile completes the skeleton row provisioned on first login.
func (h *UserController) CreateProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Svc.CreateProfile(user, input); err != nil {
		respondServiceError(c, err)
		return
	}
	profileResponse(c, http.StatusCreated, h.Svc, user.ID)
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input services.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Svc.UpdateProfile(userID, input); err != nil {
		respondServiceError(c, err)
		return
	}
	profileResponse(c, http.StatusOK, h.Svc, userID)
}

// ListAll is the admin view over every profile. Non-admin callers get the
// same 404 a missing route would, not a hint that the surface exists.
func (h *UserController) ListAll(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !user.IsAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
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

	users, err := h.Svc.ListAll(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// Delete removes the account and everything it owns.
func (h *UserController) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
