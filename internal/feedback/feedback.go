// Package feedback turns checklist verdicts into user-facing strengths,
// improvements and per-section recommendations, and decides how much of it
// a caller is entitled to see.
package feedback

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-scorer/internal/checklist"
	"github.com/spigell/resume-scorer/internal/resume"
)

// DefaultStrengthWeight is the minimum weight for an optional passed item to
// be reported as a strength.
const DefaultStrengthWeight = 20

type Entitlement string

const (
	Free    Entitlement = "free"
	Premium Entitlement = "premium"
)

// ParseEntitlement accepts "free" or "premium" in any case. An empty value
// means free.
func ParseEntitlement(s string) (Entitlement, error) {
	switch e := Entitlement(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return Free, nil
	case Free, Premium:
		return e, nil
	default:
		return "", fmt.Errorf("unknown entitlement %q", s)
	}
}

type Priority string

const (
	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"
)

// ItemResult is the per-item detail shown to premium callers.
type ItemResult struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Weight      int    `json:"weight"`
	Passed      bool   `json:"passed"`
	Reason      string `json:"reason"`
	Evidence    string `json:"evidence,omitempty"`
}

type SectionFeedback struct {
	Section         resume.Section `json:"section"`
	CurrentScore    float64        `json:"currentScore"`
	Recommendations []string       `json:"recommendations"`
	Priority        Priority       `json:"priority"`
	Checklist       []ItemResult   `json:"checklist,omitempty"`
}

// Section is the scored outcome of one section, in registry order.
type Section struct {
	Key      resume.Section
	Score    float64
	Verdicts []checklist.Verdict
}

type Feedback struct {
	Strengths    []string
	Improvements []string
	Detailed     []SectionFeedback
}

type Options struct {
	StrengthWeight int
}

// Generate builds the complete, ungated feedback.
func Generate(sections []Section, opts Options) Feedback {
	if opts.StrengthWeight <= 0 {
		opts.StrengthWeight = DefaultStrengthWeight
	}

	strengths := newList()
	required := newList()
	optional := newList()
	detailed := make([]SectionFeedback, 0, len(sections))

	for _, s := range sections {
		sectionRequired := newList()
		sectionOptional := newList()
		items := make([]ItemResult, 0, len(s.Verdicts))

		for _, v := range s.Verdicts {
			items = append(items, ItemResult{
				ID:          v.Item.ID,
				Description: v.Item.Description,
				Required:    v.Item.Required,
				Weight:      v.Item.Weight,
				Passed:      v.Result.Passed,
				Reason:      v.Result.Reason,
				Evidence:    v.Result.Evidence,
			})

			if v.Result.Passed {
				// Content checks pass when the classifier is unavailable and
				// are never reported as strengths.
				if v.Item.Verifier.Kind == checklist.RefRule && (v.Item.Required || v.Item.Weight >= opts.StrengthWeight) {
					strengths.add(v.Result.Reason)
				}
				continue
			}

			if v.Item.Required {
				required.add(v.Result.Reason)
				sectionRequired.add(v.Result.Reason)
			} else {
				optional.add(v.Result.Reason)
				sectionOptional.add(v.Result.Reason)
			}
		}

		detailed = append(detailed, SectionFeedback{
			Section:         s.Key,
			CurrentScore:    s.Score,
			Recommendations: concat(sectionRequired, sectionOptional),
			Priority:        priority(sectionRequired.failures, sectionOptional.failures),
			Checklist:       items,
		})
	}

	return Feedback{
		Strengths:    strengths.items,
		Improvements: concat(required, optional),
		Detailed:     detailed,
	}
}

// Gate strips what the entitlement does not cover. Free callers keep the
// strengths only; the gated lists are empty rather than nil.
func (f Feedback) Gate(e Entitlement) Feedback {
	gated := Feedback{
		Strengths:    nonNil(f.Strengths),
		Improvements: []string{},
		Detailed:     []SectionFeedback{},
	}
	if e != Premium {
		return gated
	}

	gated.Improvements = nonNil(f.Improvements)
	if f.Detailed != nil {
		gated.Detailed = f.Detailed
	}
	return gated
}

func priority(requiredFailures, optionalFailures int) Priority {
	switch {
	case requiredFailures > 0:
		return High
	case optionalFailures >= 2:
		return Medium
	default:
		return Low
	}
}

// list keeps insertion order and drops duplicate reasons. failures counts
// every add, duplicates included.
type list struct {
	items    []string
	seen     map[string]struct{}
	failures int
}

func newList() *list {
	return &list{items: []string{}, seen: make(map[string]struct{})}
}

func (l *list) add(s string) {
	l.failures++
	if s == "" {
		return
	}
	if _, ok := l.seen[s]; ok {
		return
	}
	l.seen[s] = struct{}{}
	l.items = append(l.items, s)
}

// concat joins lists in order, dropping reasons already present.
func concat(lists ...*list) []string {
	out := newList()
	for _, l := range lists {
		for _, item := range l.items {
			out.add(item)
		}
	}
	return out.items
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
