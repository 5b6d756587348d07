package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"healthbot/config"
)

// LLMService talks to a local Ollama instance. It is the second
// generation tier, opt-in via OLLAMA_URL.
type LLMService struct {
	baseURL     string
	model       string
	httpClient  *http.Client
	maxTokens   int
	temperature float32
	topP        float32
}

// OllamaRequest represents a request to the Ollama API
type OllamaRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// OllamaResponse represents a response from the Ollama API
type OllamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// NewLLMService creates the local provider from configuration.
func NewLLMService(cfg *config.Config) *LLMService {
	model := cfg.OllamaModel
	if model == "" {
		model = "tinyllama:latest"
	}

	return &LLMService{
		baseURL: strings.TrimRight(cfg.OllamaURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // model inference can be slow on small hosts
		},
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}
}

// Enabled reports whether a local Ollama endpoint is configured.
func (l *LLMService) Enabled() bool {
	return l.baseURL != ""
}

// Generate runs the composed prompt through Ollama and returns the
// trimmed completion.
func (l *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if l.baseURL == "" {
		return "", fmt.Errorf("ollama: no base URL configured")
	}

	request := OllamaRequest{
		Model:  l.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": l.temperature,
			"top_p":       l.topP,
			"num_predict": l.maxTokens,
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("ollama: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("ollama: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp OllamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("ollama: failed to decode response: %w", err)
	}
	if ollamaResp.Error != "" {
		return "", fmt.Errorf("ollama: model returned error: %s", ollamaResp.Error)
	}

	return strings.TrimSpace(ollamaResp.Response), nil
}
