// Package openai implements the text classifier on top of any OpenAI-compatible
// chat completions endpoint. Groq is served through its compatible base URL.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spigell/resume-scorer/internal/ai"
)

const (
	Provider     = "openai"
	ProviderGroq = "groq"

	GroqBaseURL      = "https://api.groq.com/openai/v1"
	defaultModel     = "gpt-4o-mini"
	defaultGroqModel = "llama-3.1-8b-instant"
)

const systemPrompt = "You are a strict content classifier. Answer with a single JSON object and nothing else."

type completer interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

type Classifier struct {
	completions completer
	provider    string
	model       string
}

var _ ai.TextClassifier = (*Classifier)(nil)

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewClassifier builds a classifier from cfg. An empty provider means OpenAI.
func NewClassifier(cfg Config) (*Classifier, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = Provider
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	model := strings.TrimSpace(cfg.Model)
	switch provider {
	case Provider:
		if model == "" {
			model = defaultModel
		}
	case ProviderGroq:
		if baseURL == "" {
			baseURL = GroqBaseURL
		}
		if model == "" {
			model = defaultGroqModel
		}
	default:
		return nil, fmt.Errorf("unsupported openai-compatible provider %q", cfg.Provider)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &Classifier{completions: &client.Chat.Completions, provider: provider, model: model}, nil
}

// Classify sends the prompt as a single user message at zero temperature.
func (c *Classifier) Classify(ctx context.Context, prompt string) (*ai.Completion, error) {
	if c == nil || c.completions == nil {
		return nil, errors.New("openai classifier is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	resp, err := c.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("%s chat completion: %w", c.provider, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty choices", c.provider)
	}

	completion := &ai.Completion{
		Content: strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: ai.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
		},
	}
	if completion.Content == "" {
		return completion, fmt.Errorf("%s: empty response", c.provider)
	}
	return completion, nil
}

func (c *Classifier) Provider() string {
	if c == nil {
		return ""
	}
	return c.provider
}

func (c *Classifier) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
