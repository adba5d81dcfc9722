package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sehatmand-backend/models"
	"sehatmand-backend/services"
	"sehatmand-backend/session"
)

type ChatbotController struct {
	chatbotService *services.ChatbotService
	store          session.Store
}

func NewChatbotController(chatbotService *services.ChatbotService, store session.Store) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
		store:          store,
	}
}

// HandleChat processes one chat message. Upstream trouble never surfaces
// here: barring a malformed body, the response is always 200 with the
// normal shape.
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ClearSession drops a session's history. Always reports cleared, whether or
// not the session existed.
func (cc *ChatbotController) ClearSession(c *gin.Context) {
	var req models.ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.SessionID != "" {
		cc.store.Clear(req.SessionID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// HealthCheck reports service liveness and the session count.
func (cc *ChatbotController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:         "running",
		ActiveSessions: cc.store.ActiveSessions(),
		HospitalSearch: "OpenStreetMap (free, no API key needed)",
		Timestamp:      time.Now(),
	})
}
