package ai

import (
	"context"
)

// Usage is the token accounting of a single call or a run.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
}

// Add returns the sum of two usages.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
	}
}

func (u Usage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0
}

type Completion struct {
	Content string
	Usage   Usage
}

// TextClassifier sends a classification prompt to a text-generation backend.
type TextClassifier interface {
	Classify(ctx context.Context, prompt string) (*Completion, error)
}

// Describer is implemented by classifiers that can name their backend.
type Describer interface {
	Provider() string
	Model() string
}

// Describe returns provider and model of c, or empty strings.
func Describe(c TextClassifier) (provider, model string) {
	if d, ok := c.(Describer); ok {
		return d.Provider(), d.Model()
	}
	return "", ""
}
