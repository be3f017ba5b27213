// Package quality asks a text classifier whether a resume section holds
// genuine content. The classifier only classifies; it never writes resume
// text. Any failure of the classifier fails open.
package quality

import (
	"context"
	_ "embed"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/utils"
	"github.com/spigell/resume-scorer/internal/verify"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const (
	DefaultThreshold    = 0.6
	DefaultTimeout      = 8 * time.Second
	defaultMaxLogLength = 200
	maxEvidenceLength   = 200

	verdictEmpty = "empty"
)

// Validation is the classifier verdict normalized to a fixed shape.
type Validation struct {
	IsValid    bool    `json:"isValid"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
	Verdict    string  `json:"verdict,omitempty"`
}

// Outcome is the result of one Validate call.
type Outcome struct {
	Validation
	Usage ai.Usage
	// FailedOpen is set when the classifier could not give a usable answer
	// and the content was assumed valid.
	FailedOpen bool
	// Disabled is set when no classifier is configured.
	Disabled bool
}

// Result folds the outcome into the verifier result shape.
func (o Outcome) Result() verify.Result {
	res := verify.Result{Passed: o.IsValid}
	switch {
	case o.Disabled:
		res.Reason = "content check disabled"
	case o.FailedOpen:
		res.Reason = "content check unavailable; content assumed authentic"
	case o.IsValid:
		res.Reason = "content looks authentic"
	case o.Verdict == verdictEmpty:
		res.Reason = "section is empty"
	case o.Verdict == VerdictGibberish:
		res.Reason = "section text reads as gibberish; rewrite it with real details"
	case o.Verdict == VerdictPlaceholder:
		res.Reason = "section contains placeholder text; replace it with real details"
	default:
		res.Reason = "section content could not be confirmed as authentic"
	}
	if !o.Disabled && !o.FailedOpen {
		res.Evidence = utils.TruncateForLog(o.Reason, maxEvidenceLength)
	}
	return res
}

type Options struct {
	// Threshold is the minimum confidence for a valid verdict to stand.
	Threshold float64
	// Timeout bounds each classifier call.
	Timeout          time.Duration
	MaxSectionLength int
	MaxLogLength     int
}

type Validator struct {
	classifier ai.TextClassifier
	logger     *zap.Logger
	opts       Options
}

// NewValidator wraps classifier. A nil classifier yields a validator that
// passes every section without calling anything.
func NewValidator(classifier ai.TextClassifier, log *zap.Logger, opts Options) *Validator {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxSectionLength <= 0 {
		opts.MaxSectionLength = defaultMaxSectionLength
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}

	provider, model := ai.Describe(classifier)
	return &Validator{
		classifier: classifier,
		logger:     logger.WithCommonFields(log, provider, model),
		opts:       opts,
	}
}

func (v *Validator) Enabled() bool {
	return v != nil && v.classifier != nil
}

// Describe returns the provider and model behind the validator.
func (v *Validator) Describe() (provider, model string) {
	if !v.Enabled() {
		return "", ""
	}
	return ai.Describe(v.classifier)
}

// Validate classifies the section text. It never returns an error: classifier
// failures, timeouts and unusable answers all yield a valid outcome with
// FailedOpen set.
func (v *Validator) Validate(ctx context.Context, text string, section resume.Section, in *resume.OriginalInput) Outcome {
	if !v.Enabled() {
		return Outcome{Validation: Validation{IsValid: true, Confidence: 1}, Disabled: true}
	}

	log := v.logger.With(logger.ItemFields(string(section), "")...)

	sanitized := Sanitize(text, v.opts.MaxSectionLength)
	if sanitized == "" {
		return Outcome{Validation: Validation{IsValid: false, Confidence: 1, Verdict: verdictEmpty}}
	}

	prompt := buildPrompt(section, sanitized, profession(in))
	log.Debug("content check request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, v.opts.MaxLogLength)),
	)

	callCtx, cancel := context.WithTimeout(ctx, v.opts.Timeout)
	defer cancel()

	completion, err := v.classifier.Classify(callCtx, prompt)
	var usage ai.Usage
	if completion != nil {
		usage = completion.Usage
	}
	if err != nil {
		log.Warn("content check failed, assuming valid", zap.Error(err))
		return failOpen(usage)
	}

	log.Debug("content check response",
		zap.Int("response_length", utf8.RuneCountInString(completion.Content)),
		zap.String("response_preview", utils.TruncateForLog(completion.Content, v.opts.MaxLogLength)),
	)

	validation, err := parseResponse(completion.Content)
	if err != nil {
		log.Warn("content check response unusable, assuming valid",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(completion.Content, v.opts.MaxLogLength)),
		)
		return failOpen(usage)
	}

	if validation.IsValid && validation.Confidence < v.opts.Threshold {
		log.Debug("set valid to false by confidence threshold",
			zap.Float64("confidence", validation.Confidence),
			zap.Float64("threshold", v.opts.Threshold),
		)
		validation.IsValid = false
		validation.Verdict = ""
	}

	return Outcome{Validation: validation, Usage: usage}
}

func failOpen(usage ai.Usage) Outcome {
	return Outcome{Validation: Validation{IsValid: true}, Usage: usage, FailedOpen: true}
}

func profession(in *resume.OriginalInput) string {
	if in == nil {
		return ""
	}
	return in.Profession
}

func buildPrompt(section resume.Section, text, profession string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Classify the {{SECTION}} section for {{PROFESSION}} as valid, placeholder or gibberish.\n\"\"\"\n{{SECTION_TEXT}}\n\"\"\"\nJSON Response:"
	}

	profession = sanitizeLine(profession, maxProfessionLength)
	if profession == "" {
		profession = "unspecified"
	}

	// A single replacer pass never rescans inserted text.
	return strings.NewReplacer(
		"{{SECTION}}", string(section),
		"{{PROFESSION}}", profession,
		"{{SECTION_TEXT}}", text,
	).Replace(template)
}
