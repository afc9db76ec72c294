package middleware

import (
	"net/http"

	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionRequired gates page routes behind a valid session cookie.
// Requests without one are redirected to the login page and aborted.
// Claims are trusted as signed; the user row is not re-fetched here, so
// a session issued for a since-deleted user still passes.
func SessionRequired(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessions.CookieName())
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := sessions.Validate(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}
