package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sehatmand-backend/config"
	"sehatmand-backend/models"
	"sehatmand-backend/services"
	"sehatmand-backend/session"
)

type fakeAI struct{ reply string }

func (f *fakeAI) Complete(context.Context, string, []models.Turn) (string, error) {
	return f.reply, nil
}

type fakeDirectory struct{}

func (fakeDirectory) FindBySpecialization(context.Context, string, int) []models.Doctor {
	return []models.Doctor{}
}

func newTestRouter(t *testing.T) (*gin.Engine, session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := session.NewStore(session.StoreTypeMemory, session.Options{TTL: 30 * time.Minute, MaxHistory: 10})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.AI.Timeout = time.Second
	svc := services.NewChatbotService(&fakeAI{reply: "General advice: rest and hydrate."}, fakeDirectory{}, store, cfg)

	cc := NewChatbotController(svc, store)
	router := gin.New()
	router.POST("/api/chat", cc.HandleChat)
	router.POST("/api/clear", cc.ClearSession)
	router.GET("/api/health", cc.HealthCheck)
	return router, store
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleChat(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/chat", `{"message":"I have a mild cough","mode":"user","session_id":"s1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "General advice: rest and hydrate.", resp.Reply)
	assert.Equal(t, "user", resp.Mode)
	assert.NotNil(t, resp.Doctors)
}

func TestHandleChatRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/chat", `{"mode":"user"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/chat", `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearSession(t *testing.T) {
	router, store := newTestRouter(t)
	store.SaveTurn("s1", "hello", "hi")

	w := doJSON(router, http.MethodPost, "/api/clear", `{"session_id":"s1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"cleared"}`, w.Body.String())
	assert.Empty(t, store.History("s1"))

	// Clearing an unknown session still reports cleared.
	w = doJSON(router, http.MethodPost, "/api/clear", `{"session_id":"ghost"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"cleared"}`, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	router, store := newTestRouter(t)
	store.SaveTurn("s1", "hello", "hi")

	w := doJSON(router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "running", resp.Status)
	assert.Equal(t, 1, resp.ActiveSessions)
}
