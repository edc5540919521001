// middlewares/auth_middleware.go
package middlewares

import (
	"net/http"
	"strings"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/services"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	CtxUser   = "user"
	CtxUserID = "userID"
	CtxClaims = "claims"
)

// AuthRequired is the single authorization checkpoint. It validates the
// bearer token, resolves it to a User, and attaches both to the request
// context. Every failure in the chain collapses to the same 401 body; the
// internal reason goes to the log only.
func AuthRequired(tokens *services.TokenService, identities *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			rejectUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.Validate(c.Request.Context(), tokenString)
		if err != nil {
			rejectUnauthorized(c, err.Error())
			return
		}

		user, err := identities.Resolve(claims)
		if err != nil {
			rejectUnauthorized(c, err.Error())
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

func rejectUnauthorized(c *gin.Context, reason string) {
	utils.LogWarn("authentication failed", utils.Fields{
		"path":   c.FullPath(),
		"reason": reason,
	})
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// CurrentUser returns the resolved user set by AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
