package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spigell/resume-scorer/internal/cache"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-scorer"
)

type Config struct {
	Scoring *ScoringConfig `mapstructure:"scoring"`
	AI      *AIConfig      `mapstructure:"ai"`
	Cache   *CacheConfig   `mapstructure:"cache"`
}

type ScoringConfig struct {
	RequiredCap    float64            `mapstructure:"required-cap" validate:"omitempty,gte=1,lte=10"`
	StrengthWeight int                `mapstructure:"strength-weight" validate:"gte=0,lte=100"`
	Timeout        time.Duration      `mapstructure:"timeout" validate:"gte=0"`
	SectionWeights map[string]float64 `mapstructure:"section-weights" validate:"omitempty,dive,gte=0"`
}

type AIConfig struct {
	Enabled      bool            `mapstructure:"enabled"`
	Provider     string          `mapstructure:"provider" validate:"omitempty,oneof=gemini openai groq"`
	Threshold    float64         `mapstructure:"threshold" validate:"gte=0,lte=1"`
	Timeout      time.Duration   `mapstructure:"timeout" validate:"gte=0"`
	MaxLogLength int             `mapstructure:"max-log-length" validate:"gte=0"`
	Gemini       *ProviderConfig `mapstructure:"gemini"`
	OpenAI       *ProviderConfig `mapstructure:"openai"`
	Groq         *ProviderConfig `mapstructure:"groq"`
}

type ProviderConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url" validate:"omitempty,url"`
}

type CacheConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	cache.Config `mapstructure:",squash"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-scorer is a cli for scoring generated resumes against a versioned checklist",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"ai.openai.api-key-file": "OPENAI_API_KEY_FILE",
		"ai.groq.api-key-file":   "GROQ_API_KEY_FILE",
		"cache.password":         "REDIS_PASSWORD",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only scoring reads the config file.
	if scoreCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Scoring == nil {
		config.Scoring = &ScoringConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.Cache == nil {
		config.Cache = &CacheConfig{}
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	validate := validator.New()
	if err := validate.Struct(config.Scoring); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := validate.Struct(config.AI); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	if config.Cache.Enabled {
		if err := validate.Struct(config.Cache.Config); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	return nil
}
