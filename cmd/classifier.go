package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/ai/gemini"
	"github.com/spigell/resume-scorer/internal/ai/openai"
	"github.com/spigell/resume-scorer/internal/secrets"
)

// newClassifier builds the content classifier for cfg. It returns nil when
// content checks are disabled.
func newClassifier(ctx context.Context, cfg *AIConfig) (ai.TextClassifier, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = gemini.Provider
	}

	switch provider {
	case gemini.Provider:
		pc := providerConfig(cfg.Gemini)
		apiKey, err := loadAPIKey("gemini api key", pc, "GEMINI_API_KEY")
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}
		c, err := gemini.NewClassifier(ctx, apiKey, pc.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case openai.Provider, openai.ProviderGroq:
		pc, env := providerConfig(cfg.OpenAI), "OPENAI_API_KEY"
		if provider == openai.ProviderGroq {
			pc, env = providerConfig(cfg.Groq), "GROQ_API_KEY"
		}
		apiKey, err := loadAPIKey(provider+" api key", pc, env)
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.%s.api-key-file or %s_FILE)", err, provider, env)
		}
		c, err := openai.NewClassifier(openai.Config{
			Provider: provider,
			APIKey:   apiKey,
			Model:    pc.Model,
			BaseURL:  pc.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func providerConfig(pc *ProviderConfig) *ProviderConfig {
	if pc == nil {
		return &ProviderConfig{}
	}
	return pc
}

func loadAPIKey(name string, pc *ProviderConfig, env string) (string, error) {
	return secrets.Load(secrets.Source{
		Name:  name,
		File:  pc.APIKeyFile,
		Env:   env,
		Value: pc.APIKey,
	})
}
