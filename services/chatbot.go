package services

import (
	"context"
	"log"
	"strings"

	"healthbot/config"
	"healthbot/models"
)

// contextLimit is how many blocks are requested from the retriever.
const contextLimit = 4

// systemPrompt steers the model toward full, structured answers.
// Disclaimers are deliberately not requested: the only safety text the
// pipeline ever adds is the emergency notice below.
const systemPrompt = "You are an AI healthcare assistant. Answer the user's question fully and clearly, " +
	"providing step-by-step, well-structured explanations when helpful. " +
	"Use everyday language and add practical tips. Avoid adding disclaimers unless asked."

const emergencyNotice = "⚠️ **Emergency Notice:** If symptoms are severe or worsening, please seek immediate medical help."

const defaultReply = "Sorry, I could not generate a response at this moment. Please try again."

// Generator produces text for a composed prompt. Empty output and
// errors look the same to the composer: both mean "no answer".
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Enabled() bool
}

// Chatbot orchestrates keyword detection, retrieval, generation and the
// extractive fallback into a single reply.
type Chatbot struct {
	cfg        *config.Config
	retriever  Retriever
	generators []Generator
}

// NewChatbot wires the reply pipeline. Generators are tried in order;
// the retriever may be nil when no index is available.
func NewChatbot(cfg *config.Config, retriever Retriever, generators ...Generator) *Chatbot {
	return &Chatbot{cfg: cfg, retriever: retriever, generators: generators}
}

// BuildReply runs the full pipeline for one message. The reply is
// always non-empty; provider and retrieval failures only lower the
// fallback tier, they never fail the request.
func (c *Chatbot) BuildReply(ctx context.Context, message string) models.ChatResponse {
	emergency := ContainsEmergencyKeywords(message)

	// Fetch context only if something downstream might use it.
	var contextBlocks []string
	if c.cfg.IncludeContext || c.cfg.ExtractFallback {
		contextBlocks = c.retrieveContext(ctx, message)
	}

	answer := c.generate(ctx, message, contextBlocks)

	if answer == "" && c.cfg.ExtractFallback && len(contextBlocks) > 0 {
		answer = ExtractAnswer(message, contextBlocks)
	}

	if answer == "" {
		answer = defaultReply
	}

	if emergency && c.cfg.ShowEmergencyNotice {
		answer += "\n\n" + emergencyNotice
	}

	return models.ChatResponse{
		Reply:                answer,
		EmergencyRecommended: emergency,
	}
}

// retrieveContext queries the index, absorbing failures: a broken or
// missing index means no context, never a failed request.
func (c *Chatbot) retrieveContext(ctx context.Context, query string) []string {
	if c.retriever == nil {
		return nil
	}
	blocks, err := c.retriever.Search(ctx, query, contextLimit)
	if err != nil {
		log.Printf("Retrieval failed: %v", err)
		return nil
	}
	return blocks
}

// generate tries each configured generator in order and returns the
// first non-empty answer. Failures are logged and absorbed.
func (c *Chatbot) generate(ctx context.Context, message string, contextBlocks []string) string {
	if !c.cfg.AlwaysGenerate {
		return ""
	}

	prompt := c.buildPrompt(message, contextBlocks)
	for _, g := range c.generators {
		if g == nil || !g.Enabled() {
			continue
		}
		answer, err := g.Generate(ctx, prompt)
		if err != nil {
			log.Printf("Generation failed: %v", err)
			continue
		}
		if answer != "" {
			return answer
		}
	}
	return ""
}

// buildPrompt composes the fixed system instruction, the joined context
// blocks (only when context inclusion is on) and the user message.
func (c *Chatbot) buildPrompt(message string, contextBlocks []string) string {
	var prompt strings.Builder
	prompt.WriteString(systemPrompt)
	prompt.WriteString("\n\n")

	if c.cfg.IncludeContext && len(contextBlocks) > 0 {
		prompt.WriteString("Context:\n")
		prompt.WriteString(strings.Join(contextBlocks, "\n\n"))
		prompt.WriteString("\n\n")
	}

	prompt.WriteString("User: ")
	prompt.WriteString(message)
	prompt.WriteString("\nAssistant:")
	return prompt.String()
}
