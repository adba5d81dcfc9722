package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"sehatmand-backend/models"
	"sehatmand-backend/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Configure properly for production
	},
}

type WebSocketController struct {
	chatbotService *services.ChatbotService
}

func NewWebSocketController(chatbotService *services.ChatbotService) *WebSocketController {
	return &WebSocketController{
		chatbotService: chatbotService,
	}
}

// HandleWebSocket runs a chat conversation over a websocket. Each frame is a
// JSON object with "message" and optional "mode"; replies use the same shape
// as POST /api/chat. Without a session_id query param the connection gets a
// generated id, so history survives across frames but not reconnects.
func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	for {
		var msg map[string]string
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("Read error:", err)
			}
			break
		}

		req := models.ChatRequest{
			Message:   msg["message"],
			Mode:      msg["mode"],
			SessionID: sessionID,
		}

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			detail := "Failed to process message"
			if errors.Is(err, services.ErrEmptyMessage) {
				detail = "Message cannot be empty"
			}
			conn.WriteJSON(map[string]any{"error": detail})
			continue
		}

		conn.WriteJSON(response)
	}
}
