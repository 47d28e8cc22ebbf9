package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "thimar/internal/errors"
	"thimar/internal/models"
	"thimar/internal/session"
)

const (
	userIDKey   = "userID"
	userTypeKey = "userType"
)

// SessionRequired gates routes behind the stored credentials. The backend
// still verifies the token on every forwarded call; this guard only keeps
// signed-out users off authenticated screens.
func SessionRequired(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sess.User()
		if !sess.IsAuthenticated() || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthorized.Code,
					"message": apperrors.ErrUnauthorized.Message,
				},
			})
			return
		}

		c.Set(userIDKey, user.ID)
		c.Set(userTypeKey, user.Type)
		c.Next()
	}
}

// AdminRequired additionally rejects non-admin users. Must run after
// SessionRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, ok := c.Get(userTypeKey)
		if !ok || userType != models.UserTypeAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "هذه الصفحة متاحة للمشرفين فقط",
				},
			})
			return
		}
		c.Next()
	}
}
