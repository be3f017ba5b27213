package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/cache"
	"github.com/spigell/resume-scorer/internal/checklist"
	"github.com/spigell/resume-scorer/internal/feedback"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/quality"
	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/scoring"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptPrint           = "Print score"
	PromptReportBySection = "Report by section"
	PromptScoreToFile     = "Dump score to file"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptPrint, PromptReportBySection, PromptScoreToFile, PromptExit},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a generated resume",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "generated resume file (json or yaml)")
	scoreCmd.Flags().StringP("input", "i", "", "original input file used to generate the resume, enables consistency checks")
	scoreCmd.Flags().StringP("tier", "t", string(feedback.Free), "caller entitlement: free or premium")
	scoreCmd.Flags().BoolP("yes", "y", false, "print the score and exit without asking")

	scoreCmd.MarkFlagRequired("resume")
}

// score is the main command for the cli.
func score(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-scorer", zap.String("version", version), zap.String("checklist_version", checklist.Version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	req, err := buildRequest(cmd)
	if err != nil {
		logger.Fatal("preparing the request", zap.Error(err))
	}

	engine, closeFn, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the scoring engine", zap.Error(err))
	}
	defer closeFn()

	result, err := engine.Score(ctx, req)
	if err != nil {
		logger.Fatal("scoring the resume", zap.Error(err))
	}

	logger.Info("resume scored",
		zap.Float64("total_score", result.TotalScore),
		zap.Bool("cached", result.Provenance.Cached),
		zap.String("tier", string(req.Entitlement)),
	)

	action := PromptPrint
	for {
		if cmd.Flag("yes").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, logger, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if cmd.Flag("yes").Value.String() == "true" {
			return
		}
	}
}

func handleAction(action string, logger *zap.Logger, result *scoring.ResumeScore) error {
	switch action {
	case PromptPrint:
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode score: %w", err)
		}
		fmt.Println(string(pretty))
		return nil
	case PromptReportBySection:
		pretty, _ := json.MarshalIndent(reportBySection(result), "", "  ")
		logger.Info(string(pretty), zap.Float64("total_score", result.TotalScore))
		return nil
	case PromptScoreToFile:
		filename, err := dumpToTmpFile(result)
		if err != nil {
			return fmt.Errorf("dump score to file: %w", err)
		}
		logger.Info("dumping score to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func buildRequest(cmd *cobra.Command) (scoring.Request, error) {
	tier, err := feedback.ParseEntitlement(cmd.Flag("tier").Value.String())
	if err != nil {
		return scoring.Request{}, err
	}

	generated, err := resume.LoadGenerated(cmd.Flag("resume").Value.String())
	if err != nil {
		return scoring.Request{}, err
	}

	req := scoring.Request{Resume: generated, Entitlement: tier}
	if path := strings.TrimSpace(cmd.Flag("input").Value.String()); path != "" {
		if req.Original, err = resume.LoadOriginalInput(path); err != nil {
			return scoring.Request{}, err
		}
	}
	return req, nil
}

// buildEngine wires the classifier, cache and options from config. The
// returned func releases the cache connection.
func buildEngine(ctx context.Context, config *Config, log *zap.Logger) (*scoring.Engine, func(), error) {
	closeFn := func() {}

	classifier, err := newClassifier(ctx, config.AI)
	if err != nil {
		// Content checks fail open, so a broken classifier setup only disables them.
		log.Warn("skipping content checks", zap.Error(err))
		classifier = nil
	}

	content := quality.NewValidator(classifier, log, quality.Options{
		Threshold:    config.AI.Threshold,
		Timeout:      config.AI.Timeout,
		MaxLogLength: config.AI.MaxLogLength,
	})

	provider, model := ai.Describe(classifier)
	opts := scoring.Options{
		RequiredCap:    config.Scoring.RequiredCap,
		StrengthWeight: config.Scoring.StrengthWeight,
		Timeout:        config.Scoring.Timeout,
		SectionWeights: sectionWeights(config.Scoring.SectionWeights),
		Reporter:       &usageLogger{logger: logger.WithCommonFields(log, provider, model)},
	}

	if config.Cache.Enabled {
		store, closeStore, err := cache.Open(ctx, config.Cache.Config)
		if err != nil {
			log.Warn("skipping score cache", zap.Error(err))
		} else {
			opts.Store = store
			closeFn = func() { _ = closeStore() }
		}
	}

	engine, err := scoring.NewEngine(checklist.Default(), content, log, opts)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return engine, closeFn, nil
}

func sectionWeights(raw map[string]float64) map[resume.Section]float64 {
	if len(raw) == 0 {
		return nil
	}
	weights := make(map[resume.Section]float64, len(raw))
	for k, w := range raw {
		weights[resume.Section(strings.ToLower(strings.TrimSpace(k)))] = w
	}
	return weights
}

// usageLogger reports classifier token usage to the log.
type usageLogger struct {
	logger *zap.Logger
}

func (u *usageLogger) ReportUsage(_ context.Context, usage ai.Usage) {
	u.logger.Info("content check token usage",
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
	)
}

type sectionReport struct {
	Section  resume.Section    `json:"section"`
	Score    float64           `json:"score"`
	Priority feedback.Priority `json:"priority,omitempty"`
	Failed   []string          `json:"failed,omitempty"`
}

func reportBySection(result *scoring.ResumeScore) []sectionReport {
	detailed := make(map[resume.Section]feedback.SectionFeedback, len(result.DetailedFeedback))
	for _, d := range result.DetailedFeedback {
		detailed[d.Section] = d
	}

	report := make([]sectionReport, 0, len(result.Breakdown))
	for _, s := range checklist.Default().Sections() {
		sub, ok := result.Breakdown[s.Key]
		if !ok {
			continue
		}
		entry := sectionReport{Section: s.Key, Score: sub}
		if d, ok := detailed[s.Key]; ok {
			entry.Priority = d.Priority
			entry.Failed = d.Recommendations
		}
		report = append(report, entry)
	}
	return report
}

func dumpToTmpFile(result *scoring.ResumeScore) (string, error) {
	file, err := os.CreateTemp("", app+"-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// redacted returns a copy of config that is safe to log.
func redacted(config *Config) Config {
	out := *config
	if config.AI != nil {
		aiCfg := *config.AI
		for _, pc := range []**ProviderConfig{&aiCfg.Gemini, &aiCfg.OpenAI, &aiCfg.Groq} {
			if *pc != nil && (*pc).APIKey != "" {
				masked := **pc
				masked.APIKey = "***"
				*pc = &masked
			}
		}
		out.AI = &aiCfg
	}
	if config.Cache != nil && config.Cache.Password != "" {
		cacheCfg := *config.Cache
		cacheCfg.Password = "***"
		out.Cache = &cacheCfg
	}
	return out
}
