// Package assistant answers reader questions about posts through an OpenAI
// compatible chat model. It degrades instead of failing: without an API key
// it returns a canned answer, and provider errors turn into a placeholder.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	systemPrompt = "You are a friendly assistant who answers questions about a personal blog. Keep answers short and clear."

	// Placeholder is returned when the model provider fails.
	Placeholder = "The AI service is temporarily unavailable, please try again later."
	// NoAnswer is returned when the model produced nothing.
	NoAnswer = "Sorry, I cannot answer this question."

	maxContextRunes = 1000
	maxTokens       = 500
	temperature     = 0.7
)

type Answerer interface {
	// Answer never fails because of the model provider. An error means the
	// request itself was cancelled.
	Answer(ctx context.Context, question string, post *models.Post) (string, error)
}

// Generator is the part of llms.Model the assistant uses.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

type LLMAnswerer struct {
	model  Generator
	logger logging.Logger
}

// New returns a MockAnswerer when no API key is configured.
func New(o Options, logger logging.Logger) (Answerer, error) {
	if o.APIKey == "" {
		return MockAnswerer{}, nil
	}

	opts := []openai.Option{openai.WithToken(o.APIKey)}
	if o.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(o.BaseURL))
	}
	if o.Model != "" {
		opts = append(opts, openai.WithModel(o.Model))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("openai client: %w", err)
	}
	return NewLLMAnswerer(llm, logger), nil
}

func NewLLMAnswerer(model Generator, logger logging.Logger) *LLMAnswerer {
	return &LLMAnswerer{model: model, logger: logging.Component(logger, "assistant")}
}

func (a *LLMAnswerer) Answer(ctx context.Context, question string, post *models.Post) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, Prompt(question, post)),
	}

	resp, err := a.model.GenerateContent(ctx, messages,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		a.logger.Error(ctx, "model request failed", "error", err)
		return Placeholder, nil
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return NoAnswer, nil
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// Prompt builds the user message. With a post the title and the first 1000
// characters of its content are included as context.
func Prompt(question string, post *models.Post) string {
	if post == nil {
		return "Answer the following question briefly:\n\n" + question
	}
	var b strings.Builder
	b.WriteString("Answer the question based on this article.\n\n")
	b.WriteString("Title: ")
	b.WriteString(post.Title)
	b.WriteString("\nContent: ")
	b.WriteString(truncate(post.Content, maxContextRunes))
	b.WriteString("...\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// MockAnswerer echoes the question. Used when no API key is configured.
type MockAnswerer struct{}

func (MockAnswerer) Answer(ctx context.Context, question string, _ *models.Post) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Thanks for your question: %q. This is a demo answer because no AI API key is configured.", question), nil
}
