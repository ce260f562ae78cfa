package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"institute-site-backend/internal/mw"
)

type chatbotRequest struct {
	Message string `json:"message"`
}

// Chatbot answers a visitor message from the keyword rules.
func (h *Handler) Chatbot(c *gin.Context) {
	var req chatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	response, err := h.matcher.Respond(c.Request.Context(), req.Message)
	if err != nil {
		mw.Logger(c).Error().Err(err).Msg("chatbot lookup failed")
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
