package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	for _, content := range contents {
		for _, part := range content.Parts {
			f.prompt += part.Text
		}
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     120,
			CandidatesTokenCount: 15,
		},
	}
}

func TestClassifierReturnsTextAndUsage(t *testing.T) {
	models := &fakeModels{resp: textResponse(` {"verdict": "valid"`, `"isValid": true} `)}
	classifier := newClassifier(models, "")

	completion, err := classifier.Classify(context.Background(), "  classify this  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if completion.Content != "{\"verdict\": \"valid\"\n\"isValid\": true}" {
		t.Fatalf("unexpected content: %q", completion.Content)
	}
	if completion.Usage.PromptTokens != 120 || completion.Usage.CompletionTokens != 15 {
		t.Fatalf("unexpected usage: %+v", completion.Usage)
	}
	if models.model != defaultModel {
		t.Fatalf("expected default model %q, got %q", defaultModel, models.model)
	}
	if models.prompt != "classify this" {
		t.Fatalf("expected trimmed prompt, got %q", models.prompt)
	}
	if models.config == nil || models.config.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json response config")
	}
	if models.config.Temperature == nil || *models.config.Temperature != 0 {
		t.Fatalf("expected zero temperature")
	}
}

func TestClassifierErrors(t *testing.T) {
	tests := []struct {
		name   string
		models *fakeModels
		prompt string
		expect string
	}{
		{name: "empty prompt", models: &fakeModels{}, prompt: "  ", expect: "prompt must not be empty"},
		{name: "api error", models: &fakeModels{err: errors.New("boom")}, prompt: "p", expect: "generate content: boom"},
		{name: "empty response", models: &fakeModels{resp: textResponse(" ")}, prompt: "p", expect: "empty response"},
		{name: "nil response", models: &fakeModels{}, prompt: "p", expect: "no response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newClassifier(tt.models, "gemini-test").Classify(context.Background(), tt.prompt)
			if err == nil || !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error containing %q, got %v", tt.expect, err)
			}
		})
	}
}

func TestClassifierDescribesItself(t *testing.T) {
	classifier := newClassifier(&fakeModels{}, "gemini-test")
	if classifier.Provider() != Provider || classifier.Model() != "gemini-test" {
		t.Fatalf("unexpected description: %s/%s", classifier.Provider(), classifier.Model())
	}
}

func TestNewClassifierRequiresKey(t *testing.T) {
	if _, err := NewClassifier(context.Background(), " ", ""); err == nil {
		t.Fatalf("expected missing api key error")
	}
}
