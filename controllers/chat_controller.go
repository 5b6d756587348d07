package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthbot/models"
)

// ChatHandler runs a chat message through the reply pipeline. Pipeline
// failures never surface here: a well-formed request always gets a 200
// with best-effort text.
func (c *Controller) ChatHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid JSON format"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Message cannot be empty"})
		return
	}

	response := c.chatbot.BuildReply(r.Context(), req.Message)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// SOSHandler acknowledges an emergency signal from the frontend. The
// timestamp is the client's if supplied, otherwise server UTC time. An
// empty body is accepted; both request fields are optional.
func (c *Controller) SOSHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.SOSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid JSON format"})
		return
	}

	ts := req.Timestamp
	if ts == "" {
		ts = time.Now().UTC().Format(time.RFC3339)
	}

	incidentID := uuid.NewString()
	log.Printf("SOS %s acknowledged (emergency=%v) at %s", incidentID, req.Emergency, ts)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.SOSResponse{Status: "SOS request received at " + ts})
}
