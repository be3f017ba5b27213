package scoring

import (
	"time"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/feedback"
	"github.com/spigell/resume-scorer/internal/resume"
)

// ResumeScore is the outcome of one scoring run. A run always produces a new
// value; callers should treat it as read-only.
type ResumeScore struct {
	TotalScore float64 `json:"totalScore"`
	// CompletionPercentage is the share of evaluated items that passed, 0..100.
	CompletionPercentage int `json:"completionPercentage"`
	// IsOptimized is set when every required item passed and TotalScore
	// reaches OptimizedScore.
	IsOptimized      bool                       `json:"isOptimized"`
	Breakdown        map[resume.Section]float64 `json:"breakdown"`
	Strengths        []string                   `json:"strengths"`
	Improvements     []string                   `json:"improvements"`
	DetailedFeedback []feedback.SectionFeedback `json:"detailedFeedback"`
	GeneratedAt      time.Time                  `json:"generatedAt"`
	Provenance       Provenance                 `json:"provenance"`
}

type Provenance struct {
	ChecklistVersion string        `json:"checklistVersion"`
	RequiredCap      float64       `json:"requiredCap"`
	ContentCheck     *ContentCheck `json:"contentCheck,omitempty"`
	Usage            ai.Usage      `json:"usage"`
	Cached           bool          `json:"cached,omitempty"`
}

// ContentCheck describes the classifier used for content quality items.
type ContentCheck struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	// FailedOpen counts sections whose check could not complete.
	FailedOpen int `json:"failedOpen"`
}

// gate returns a copy of s restricted to what e may see.
func (s *ResumeScore) gate(e feedback.Entitlement) *ResumeScore {
	fb := feedback.Feedback{
		Strengths:    s.Strengths,
		Improvements: s.Improvements,
		Detailed:     s.DetailedFeedback,
	}.Gate(e)

	out := *s
	out.Breakdown = make(map[resume.Section]float64, len(s.Breakdown))
	for k, v := range s.Breakdown {
		out.Breakdown[k] = v
	}
	out.Strengths = append([]string{}, fb.Strengths...)
	out.Improvements = append([]string{}, fb.Improvements...)
	out.DetailedFeedback = append([]feedback.SectionFeedback{}, fb.Detailed...)
	if s.Provenance.ContentCheck != nil {
		cc := *s.Provenance.ContentCheck
		out.Provenance.ContentCheck = &cc
	}
	return &out
}
