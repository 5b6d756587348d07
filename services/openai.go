package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"healthbot/config"
)

// OpenAIService is the hosted generation provider. Construction never
// fails: without an API key the service reports itself disabled and
// the pipeline degrades to the next tier.
type OpenAIService struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	topP        float32
	enabled     bool
}

// NewOpenAIService creates the hosted provider from configuration.
func NewOpenAIService(cfg *config.Config) *OpenAIService {
	s := &OpenAIService{
		model:       cfg.OpenAIModel,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}

	if cfg.OpenAIKey == "" {
		log.Printf("OPENAI_API_KEY not set, hosted generation disabled")
		return s
	}

	s.client = openai.NewClient(cfg.OpenAIKey)
	s.enabled = true
	log.Printf("OpenAI service available, model: %s", s.model)
	return s
}

// Enabled reports whether the provider can be called at all.
func (s *OpenAIService) Enabled() bool {
	return s.enabled
}

// Generate sends the composed prompt as a single user message and
// returns the trimmed completion. An empty completion is not an error.
func (s *OpenAIService) Generate(ctx context.Context, prompt string) (string, error) {
	if !s.enabled {
		return "", fmt.Errorf("openai: no API key configured")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		TopP:        s.topP,
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
