package models

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply produced by the chat pipeline. Reply is
// never empty: the pipeline degrades to a default sentence before it
// ever returns nothing.
type ChatResponse struct {
	Reply                string `json:"reply"`
	EmergencyRecommended bool   `json:"emergency_recommended"`
}

// SOSRequest represents an emergency signal from the frontend. Both
// fields are optional.
type SOSRequest struct {
	Emergency bool   `json:"emergency"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SOSResponse acknowledges an SOS request
type SOSResponse struct {
	Status string `json:"status"`
}

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ErrorResponse is returned for malformed requests
type ErrorResponse struct {
	Error string `json:"error"`
}
