package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "thimar/internal/errors"
	"thimar/internal/guard"
)

// SingleFlight rejects a write request that duplicates one already in flight
// for the same user and route. This extends the wizard's submission guard to
// every plain create/update form: a rapid double-POST reaches the backend
// once, the loser gets the in-flight error. Must run after SessionRequired
// so the key carries the user id.
func SingleFlight() gin.HandlerFunc {
	submissions := guard.NewSet()
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := fmt.Sprintf("%d:%s:%s", c.GetUint(userIDKey), c.Request.Method, c.FullPath())
		release, ok := submissions.Begin(key)
		if !ok {
			c.AbortWithStatusJSON(apperrors.ErrSubmissionInFlight.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrSubmissionInFlight.Code,
					"message": apperrors.ErrSubmissionInFlight.Message,
				},
			})
			return
		}
		defer release()
		c.Next()
	}
}
