// Package scoring runs the checklist against a resume and reduces the
// verdicts to a bounded, reproducible score with feedback.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/checklist"
	"github.com/spigell/resume-scorer/internal/feedback"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/quality"
	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/verify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	CacheKeyPrefix = "resume-score"

	reasonUnexpected = "check failed unexpectedly"
	reasonEmpty      = "section is empty"
)

var ErrInvalidRequest = errors.New("invalid scoring request")

// ContentValidator judges whether section text is genuine.
type ContentValidator interface {
	Enabled() bool
	Describe() (provider, model string)
	Validate(ctx context.Context, text string, section resume.Section, in *resume.OriginalInput) quality.Outcome
}

// Store memoizes complete scores outside the process.
type Store interface {
	Get(ctx context.Context, key string) (*ResumeScore, bool, error)
	Put(ctx context.Context, key string, score *ResumeScore) error
}

// UsageReporter receives the classifier token usage of every run that made calls.
type UsageReporter interface {
	ReportUsage(ctx context.Context, usage ai.Usage)
}

type Options struct {
	// RequiredCap is the highest sub-score a section with a failed required
	// item can reach.
	RequiredCap float64 `validate:"gte=1,lte=10"`
	// SectionWeights override the default section importance.
	SectionWeights map[resume.Section]float64 `validate:"omitempty,dive,gte=0"`
	StrengthWeight int                        `validate:"gte=0,lte=100"`
	// Timeout bounds a whole run. Zero means no limit beyond the caller's context.
	Timeout time.Duration `validate:"gte=0"`

	Store    Store
	Reporter UsageReporter
	Now      func() time.Time
}

type Request struct {
	Resume      *resume.Generated `validate:"required"`
	Original    *resume.OriginalInput
	Entitlement feedback.Entitlement `validate:"omitempty,oneof=free premium"`
}

type Engine struct {
	registry  *checklist.Registry
	validator ContentValidator
	logger    *zap.Logger
	opts      Options
	weights   map[resume.Section]float64
	validate  *validator.Validate
	lookup    func(key string) (verify.Func, bool)
}

// NewEngine validates the registry and options and returns a ready engine.
// A nil content validator disables content quality checks.
func NewEngine(registry *checklist.Registry, content ContentValidator, log *zap.Logger, opts Options) (*Engine, error) {
	if registry == nil {
		registry = checklist.Default()
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("checklist registry: %w", err)
	}
	if content == nil {
		content = quality.NewValidator(nil, log, quality.Options{})
	}

	if opts.RequiredCap == 0 {
		opts.RequiredCap = DefaultRequiredCap
	}
	if opts.StrengthWeight == 0 {
		opts.StrengthWeight = feedback.DefaultStrengthWeight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	validate := validator.New()
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("scoring options: %w", err)
	}

	weights := checklist.DefaultSectionWeights()
	for k, w := range opts.SectionWeights {
		if _, ok := registry.Section(k); !ok {
			return nil, fmt.Errorf("scoring options: weight for unknown section %q", k)
		}
		weights[k] = w
	}

	return &Engine{
		registry:  registry,
		validator: content,
		logger:    logger.WithChecklistVersion(log, registry.Version()),
		opts:      opts,
		weights:   weights,
		validate:  validate,
		lookup:    verify.Lookup,
	}, nil
}

// Score evaluates the resume. Only invalid requests produce an error;
// classifier and verifier failures are absorbed into the verdicts.
func (e *Engine) Score(ctx context.Context, req Request) (*ResumeScore, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.Entitlement == "" {
		req.Entitlement = feedback.Free
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	key := e.cacheKey(req)
	if hit := e.cached(ctx, key); hit != nil {
		hit.Provenance.Cached = true
		return hit.gate(req.Entitlement), nil
	}

	start := time.Now()
	sections, usage, failedOpen := e.evaluate(ctx, req)

	breakdown := make(map[resume.Section]float64, len(sections))
	for _, s := range sections {
		breakdown[s.Key] = s.Score
	}

	fb := feedback.Generate(sections, feedback.Options{StrengthWeight: e.opts.StrengthWeight})

	total := Total(breakdown, e.weights)
	percentage, requiredPassed := completion(sections)

	full := &ResumeScore{
		TotalScore:           total,
		CompletionPercentage: percentage,
		IsOptimized:          requiredPassed && total >= OptimizedScore,
		Breakdown:            breakdown,
		Strengths:            fb.Strengths,
		Improvements:         fb.Improvements,
		DetailedFeedback:     fb.Detailed,
		GeneratedAt:          e.opts.Now().UTC(),
		Provenance: Provenance{
			ChecklistVersion: e.registry.Version(),
			RequiredCap:      e.opts.RequiredCap,
			Usage:            usage,
		},
	}
	if e.validator.Enabled() {
		provider, model := e.validator.Describe()
		full.Provenance.ContentCheck = &ContentCheck{Provider: provider, Model: model, FailedOpen: failedOpen}
	}

	e.logger.Info("resume scored",
		zap.Float64("total_score", full.TotalScore),
		zap.Int("sections", len(sections)),
		zap.Int("content_checks_failed_open", failedOpen),
		zap.Duration("elapsed", time.Since(start)),
	)

	// Failed-open or interrupted runs are not final; the next run retries them.
	if failedOpen == 0 && ctx.Err() == nil {
		e.remember(ctx, key, full)
	}
	if e.opts.Reporter != nil && !usage.IsZero() {
		e.opts.Reporter.ReportUsage(ctx, usage)
	}

	return full.gate(req.Entitlement), nil
}

// ScoreBestEffort never fails: any error or panic yields a nil score and a
// log entry, so the caller can carry on without one.
func (e *Engine) ScoreBestEffort(ctx context.Context, req Request) (score *ResumeScore) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("scoring panicked, continuing without score", zap.Any("panic", r))
			score = nil
		}
	}()

	score, err := e.Score(ctx, req)
	if err != nil {
		e.logger.Warn("scoring failed, continuing without score", zap.Error(err))
		return nil
	}
	return score
}

type plannedSection struct {
	def      checklist.Section
	present  bool
	verdicts []checklist.Verdict
	outcome  *quality.Outcome
}

// plan selects the sections to evaluate. Absent optional sections are
// skipped; absent mandatory ones are evaluated and fail.
func (e *Engine) plan(req Request) []*plannedSection {
	var planned []*plannedSection
	for _, def := range e.registry.Sections() {
		present := req.Resume.Has(def.Key)
		if def.RequiresInput {
			if req.Original == nil || !req.Resume.Has(resume.SectionExperience) {
				continue
			}
			present = true
		}
		if !present && !def.Mandatory {
			continue
		}
		planned = append(planned, &plannedSection{
			def:      def,
			present:  present,
			verdicts: make([]checklist.Verdict, len(def.Items)),
		})
	}
	return planned
}

func (e *Engine) evaluate(ctx context.Context, req Request) ([]feedback.Section, ai.Usage, int) {
	planned := e.plan(req)

	// Every goroutine writes only to its own section slot.
	var g errgroup.Group
	for _, p := range planned {
		g.Go(func() error {
			e.runRules(req, p)
			return nil
		})

		if !p.present || !hasQualityItem(p.def) {
			continue
		}
		g.Go(func() error {
			outcome := e.runQuality(ctx, req, p.def.Key)
			p.outcome = &outcome
			return nil
		})
	}
	_ = g.Wait()

	var usage ai.Usage
	var failedOpen int
	sections := make([]feedback.Section, 0, len(planned))
	for _, p := range planned {
		for i, it := range p.def.Items {
			if it.Verifier.Kind != checklist.RefQuality {
				continue
			}
			res := verify.Result{Passed: false, Reason: reasonEmpty}
			if p.outcome != nil {
				res = p.outcome.Result()
			}
			p.verdicts[i] = checklist.Verdict{Item: it, Result: res}
		}
		if p.outcome != nil {
			usage = usage.Add(p.outcome.Usage)
			if p.outcome.FailedOpen {
				failedOpen++
			}
		}

		sections = append(sections, feedback.Section{
			Key:      p.def.Key,
			Score:    sectionScore(p.verdicts, e.opts.RequiredCap),
			Verdicts: p.verdicts,
		})
	}
	return sections, usage, failedOpen
}

func (e *Engine) runRules(req Request, p *plannedSection) {
	for i, it := range p.def.Items {
		if it.Verifier.Kind != checklist.RefRule {
			continue
		}
		res := e.runRule(req, it)
		if !p.present && res.Passed {
			res = verify.Result{Passed: false, Reason: reasonEmpty}
		}
		p.verdicts[i] = checklist.Verdict{Item: it, Result: res}
	}
}

// runRule isolates a single verifier: a panic fails that item only.
func (e *Engine) runRule(req Request, it checklist.Item) (res verify.Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("verifier panicked",
				append(logger.ItemFields(string(it.Section), it.ID), zap.Any("panic", r))...,
			)
			res = verify.Result{Passed: false, Reason: reasonUnexpected}
		}
	}()

	fn, ok := e.lookup(it.Verifier.Key)
	if !ok {
		return verify.Result{Passed: false, Reason: reasonUnexpected}
	}

	res = fn(req.Resume, req.Original)
	if !res.Passed && strings.TrimSpace(res.Reason) == "" {
		res.Reason = it.Description + " check failed"
	}
	return res
}

// runQuality calls the content validator; a panic there fails open like any
// other classifier failure.
func (e *Engine) runQuality(ctx context.Context, req Request, section resume.Section) (outcome quality.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("content check panicked, assuming valid",
				append(logger.ItemFields(string(section), ""), zap.Any("panic", r))...,
			)
			outcome = quality.Outcome{Validation: quality.Validation{IsValid: true}, FailedOpen: true}
		}
	}()
	return e.validator.Validate(ctx, req.Resume.SectionText(section), section, req.Original)
}

func hasQualityItem(s checklist.Section) bool {
	for _, it := range s.Items {
		if it.Verifier.Kind == checklist.RefQuality {
			return true
		}
	}
	return false
}

// cacheKey is (checklist version, content hash); the hash also covers the
// options and classifier that influence the result. Empty without a store.
func (e *Engine) cacheKey(req Request) string {
	if e.opts.Store == nil {
		return ""
	}

	provider, model := e.validator.Describe()
	extra := []string{
		"cap=" + strconv.FormatFloat(e.opts.RequiredCap, 'f', -1, 64),
		"strength=" + strconv.Itoa(e.opts.StrengthWeight),
		"content=" + provider + "/" + model,
	}
	sections := make([]string, 0, len(e.weights))
	for k := range e.weights {
		sections = append(sections, string(k))
	}
	sort.Strings(sections)
	for _, k := range sections {
		extra = append(extra, k+"="+strconv.FormatFloat(e.weights[resume.Section(k)], 'f', -1, 64))
	}

	hash, err := resume.Fingerprint(req.Resume, req.Original, extra...)
	if err != nil {
		e.logger.Warn("cannot fingerprint resume, skipping cache", zap.Error(err))
		return ""
	}
	return CacheKeyPrefix + ":" + e.registry.Version() + ":" + hash
}

func (e *Engine) cached(ctx context.Context, key string) *ResumeScore {
	if key == "" {
		return nil
	}
	score, ok, err := e.opts.Store.Get(ctx, key)
	if err != nil {
		e.logger.Warn("score cache lookup failed", zap.Error(err))
		return nil
	}
	if !ok || score == nil {
		return nil
	}
	e.logger.Debug("score served from cache", zap.String("cache_key", key))
	return score
}

func (e *Engine) remember(ctx context.Context, key string, score *ResumeScore) {
	if key == "" {
		return
	}
	if err := e.opts.Store.Put(ctx, key, score); err != nil {
		e.logger.Warn("score cache store failed", zap.Error(err))
	}
}
