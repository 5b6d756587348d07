package controllers

import (
	"encoding/json"
	"net/http"

	"healthbot/models"
)

const (
	serviceName    = "healthbot"
	serviceVersion = "0.4.0"
)

// HealthHandler reports liveness. It succeeds regardless of provider or
// index state.
func (c *Controller) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(models.HealthResponse{
		Status:  "ok",
		Service: serviceName,
		Version: serviceVersion,
	})
}
