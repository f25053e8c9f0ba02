package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventure/internal/helpers"
	"eventure/internal/models"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "session"

// ResolveSession returns the user bound to a non-expired session token.
// A missing, unknown or expired token all come back as a nil user; the
// caller cannot tell the cases apart.
func ResolveSession(db *gorm.DB, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	var session models.Session
	err := db.Preload("User").
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session.User, nil
}

func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		db, exists := c.Get("db")
		if !exists {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
			c.Abort()
			return
		}
		gormDB := db.(*gorm.DB)

		token, _ := c.Cookie(SessionCookie)
		user, err := ResolveSession(gormDB, token)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error resolving session.")
			c.Abort()
			return
		}
		if user == nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

// RequireAdmin must run after SessionAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.RoleAdmin {
			helpers.RespondWithError(c, http.StatusForbidden, "Admin access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}
