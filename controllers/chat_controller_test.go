package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"healthbot/config"
	"healthbot/models"
	"healthbot/services"
)

func newTestController() *Controller {
	cfg := &config.Config{
		AlwaysGenerate:      true,
		ShowEmergencyNotice: true,
	}
	// No generators and no retriever: the pipeline degrades to the
	// default reply, which is all the transport tests need.
	chatbot := services.NewChatbot(cfg, nil)
	discord := services.NewDiscordService(chatbot, "", "")
	return NewController(chatbot, discord)
}

func newTestRouter(c *Controller) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", c.HealthHandler).Methods("GET")
	router.HandleFunc("/chat", c.ChatHandler).Methods("POST")
	router.HandleFunc("/sos", c.SOSHandler).Methods("POST")
	return router
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(newTestController())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, "healthbot", resp.Service)
	require.NotEmpty(t, resp.Version)
}

func TestChatHandlerEmergency(t *testing.T) {
	router := newTestRouter(newTestController())

	body, _ := json.Marshal(models.ChatRequest{Message: "I have chest pain"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.EmergencyRecommended)
	require.NotEmpty(t, resp.Reply)
	require.Contains(t, resp.Reply, "Emergency Notice")
	require.Contains(t, resp.Reply, "Sorry, I could not generate a response")
}

func TestChatHandlerNonEmergency(t *testing.T) {
	router := newTestRouter(newTestController())

	body, _ := json.Marshal(models.ChatRequest{Message: "tell me about hydration"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.EmergencyRecommended)
	require.NotEmpty(t, resp.Reply)
}

func TestChatHandlerInvalidJSON(t *testing.T) {
	router := newTestRouter(newTestController())

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandlerEmptyMessage(t *testing.T) {
	router := newTestRouter(newTestController())

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"   "}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSOSHandlerEchoesClientTimestamp(t *testing.T) {
	router := newTestRouter(newTestController())

	body, _ := json.Marshal(models.SOSRequest{Emergency: true, Timestamp: "2026-08-29T10:00:00Z"})
	req := httptest.NewRequest(http.MethodPost, "/sos", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SOSResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "SOS request received at 2026-08-29T10:00:00Z", resp.Status)
}

func TestSOSHandlerDefaultsToServerTimestamp(t *testing.T) {
	router := newTestRouter(newTestController())

	req := httptest.NewRequest(http.MethodPost, "/sos", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SOSResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp.Status, "SOS request received at "))
}

func TestSOSHandlerAcceptsEmptyBody(t *testing.T) {
	router := newTestRouter(newTestController())

	req := httptest.NewRequest(http.MethodPost, "/sos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
