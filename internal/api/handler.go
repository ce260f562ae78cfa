package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"institute-site-backend/internal/auth"
	"institute-site-backend/internal/chatbot"
	"institute-site-backend/internal/mw"
	"institute-site-backend/internal/session"
	"institute-site-backend/internal/store"
)

const unavailableMessage = "The service is temporarily unavailable. Please try again later."

// Handler holds shared dependencies for site handlers.
type Handler struct {
	store    store.Store
	verifier *auth.Verifier
	matcher  *chatbot.Matcher
	sessions *session.Manager
	pages    *cache.Cache
}

// NewHandler creates a new site handler.
func NewHandler(s store.Store, sessions *session.Manager, pages *cache.Cache) *Handler {
	return &Handler{
		store:    s,
		verifier: auth.NewVerifier(s),
		matcher:  chatbot.NewMatcher(s),
		sessions: sessions,
		pages:    pages,
	}
}

// render executes a page template, filling in the fields every page uses.
func (h *Handler) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Admin"] = mw.CurrentSession(c).Admin()
	c.HTML(status, name, data)
}

// fail logs err and answers with the error page.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	mw.Logger(c).Error().Err(err).Msg(msg)
	c.Error(err)
	h.render(c, http.StatusInternalServerError, "error.html", "Error", gin.H{"Message": unavailableMessage})
	c.Abort()
}

// Health reports whether the store is reachable.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		mw.Logger(c).Error().Err(err).Msg("store ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
