package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/resume-scorer/internal/ai"
	"google.golang.org/genai"
)

const (
	Provider     = "gemini"
	defaultModel = "gemini-2.5-flash"
)

type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Classifier wraps the Google GenAI client for single-turn classification prompts.
type Classifier struct {
	models    modelsAPI
	modelName string
}

var _ ai.TextClassifier = (*Classifier)(nil)

// NewClassifier creates a new Classifier configured for the Gemini API backend.
func NewClassifier(ctx context.Context, apiKey, model string) (*Classifier, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClassifier(client.Models, model), nil
}

func newClassifier(models modelsAPI, model string) *Classifier {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Classifier{models: models, modelName: model}
}

// Classify sends the prompt to Gemini and returns the textual response with token usage.
func (c *Classifier) Classify(ctx context.Context, prompt string) (*ai.Completion, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini classifier is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
	}

	resp, err := c.models.GenerateContent(ctx, c.modelName, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return nil, errors.New("gemini api returned no response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	completion := &ai.Completion{Content: strings.TrimSpace(builder.String())}
	if meta := resp.UsageMetadata; meta != nil {
		completion.Usage = ai.Usage{
			PromptTokens:     int(meta.PromptTokenCount),
			CompletionTokens: int(meta.CandidatesTokenCount),
		}
	}

	if completion.Content == "" {
		return completion, errors.New("gemini api returned empty response")
	}
	return completion, nil
}

func (c *Classifier) Provider() string {
	return Provider
}

func (c *Classifier) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
