package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/resume-scorer/internal/ai"
)

func TestNewClassifierDisabled(t *testing.T) {
	for _, cfg := range []*AIConfig{nil, {Enabled: false, Provider: "gemini"}} {
		c, err := newClassifier(context.Background(), cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c != nil {
			t.Fatalf("expected no classifier, got %T", c)
		}
	}
}

func TestNewClassifierUnsupportedProvider(t *testing.T) {
	_, err := newClassifier(context.Background(), &AIConfig{Enabled: true, Provider: "cohere"})
	if err == nil || !strings.Contains(err.Error(), "unsupported ai provider") {
		t.Fatalf("expected unsupported provider error, got %v", err)
	}
}

func TestNewClassifierMissingKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	_, err := newClassifier(context.Background(), &AIConfig{Enabled: true, Provider: "groq"})
	if err == nil || !strings.Contains(err.Error(), "GROQ_API_KEY_FILE") {
		t.Fatalf("expected missing key hint, got %v", err)
	}
}

func TestNewClassifierOpenAICompatible(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(keyFile, []byte("sk-test\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	tests := []struct {
		provider string
		cfg      *AIConfig
		model    string
	}{
		{
			provider: "groq",
			cfg:      &AIConfig{Enabled: true, Provider: "groq", Groq: &ProviderConfig{APIKeyFile: keyFile}},
			model:    "llama-3.1-8b-instant",
		},
		{
			provider: "openai",
			cfg:      &AIConfig{Enabled: true, Provider: "OpenAI", OpenAI: &ProviderConfig{APIKey: "sk-inline", Model: "gpt-4.1-mini"}},
			model:    "gpt-4.1-mini",
		},
	}

	for _, tt := range tests {
		c, err := newClassifier(context.Background(), tt.cfg)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.provider, err)
		}
		provider, model := ai.Describe(c)
		if provider != tt.provider || model != tt.model {
			t.Fatalf("expected %s/%s, got %s/%s", tt.provider, tt.model, provider, model)
		}
	}
}

func TestSectionWeights(t *testing.T) {
	weights := sectionWeights(map[string]float64{" Summary ": 30, "skills": 0})
	if weights["summary"] != 30 {
		t.Fatalf("expected normalized summary weight, got %v", weights)
	}
	if w, ok := weights["skills"]; !ok || w != 0 {
		t.Fatalf("expected zero skills weight to be kept, got %v", weights)
	}
}
