package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home renders the landing page with the chatbot widget.
func (h *Handler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html", "Home", nil)
}

// Placements renders the static placements page.
func (h *Handler) Placements(c *gin.Context) {
	h.render(c, http.StatusOK, "placements.html", "Placements", nil)
}

// Faculty lists every faculty member.
func (h *Handler) Faculty(c *gin.Context) {
	faculty, err := h.store.ListFaculty(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to list faculty")
		return
	}
	h.render(c, http.StatusOK, "faculty.html", "Faculty", gin.H{"Faculty": faculty})
}

// Events lists every event.
func (h *Handler) Events(c *gin.Context) {
	events, err := h.store.ListEvents(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to list events")
		return
	}
	h.render(c, http.StatusOK, "events.html", "Events", gin.H{"Events": events})
}

// Articles lists every article.
func (h *Handler) Articles(c *gin.Context) {
	articles, err := h.store.ListArticles(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to list articles")
		return
	}
	h.render(c, http.StatusOK, "articles.html", "Articles", gin.H{"Articles": articles})
}
