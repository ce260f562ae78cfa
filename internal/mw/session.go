package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"institute-site-backend/internal/session"
)

const sessionKey = "session"

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// Sessions loads the client's session into the request context.
func Sessions(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, m.Load(c.Request))
		c.Next()
	}
}

// CurrentSession returns the session loaded by Sessions, or an empty one.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return session.New()
}

// RequireAdmin redirects requests without an admin session to the login page.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAdmin(CurrentSession(c)) {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
