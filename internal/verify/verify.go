// Package verify holds the rule-based resume checks. Every verifier is a pure
// function of the resume and the optional original input: no I/O, no clock,
// no randomness. Identical inputs always produce identical results.
package verify

import (
	"fmt"
	"sort"

	"github.com/spigell/resume-scorer/internal/resume"
)

// Result is the verdict of a single checklist item.
type Result struct {
	Passed   bool   `json:"passed"`
	Reason   string `json:"reason"`
	Evidence string `json:"evidence,omitempty"`
}

// Func is the shape of every rule-based verifier.
type Func func(r *resume.Generated, in *resume.OriginalInput) Result

func pass(reason string, args ...any) Result {
	return Result{Passed: true, Reason: fmt.Sprintf(reason, args...)}
}

func fail(reason string, args ...any) Result {
	return Result{Passed: false, Reason: fmt.Sprintf(reason, args...)}
}

func (r Result) withEvidence(evidence string) Result {
	r.Evidence = evidence
	return r
}

// Verifier keys referenced by the checklist registry.
const (
	SummaryLength         = "summary.length"
	SummaryNoFirstPerson  = "summary.no_first_person"
	SummaryMetrics        = "summary.metrics"
	SummaryKeywords       = "summary.ats_keywords"
	SummaryKeywordDensity = "summary.keyword_density"

	ExperienceMetrics      = "experience.metrics"
	ExperienceActionVerbs  = "experience.action_verbs"
	ExperienceAchievements = "experience.achievements"
	ExperienceProgression  = "experience.progression"

	SkillsOrganized = "skills.organized"
	SkillsTechnical = "skills.technical"
	SkillsSoft      = "skills.soft"
	SkillsTools     = "skills.tools"

	EducationDates       = "education.dates"
	EducationInstitution = "education.institution"
	EducationDegreeField = "education.degree_field"

	CertificationsIssuer = "certifications.issuer"
	CertificationsDate   = "certifications.date"

	ProjectsDescription  = "projects.description"
	ProjectsTechnologies = "projects.technologies"
	ProjectsImpact       = "projects.impact"

	AchievementsMetrics      = "achievements.metrics"
	AchievementsQuantifiable = "achievements.quantifiable"

	LanguagesLevels = "languages.levels"

	ContactEmail    = "contact.email"
	ContactPhone    = "contact.phone"
	ContactLinkedIn = "contact.linkedin"

	ConsistencyMetrics   = "consistency.metrics"
	ConsistencyEmployers = "consistency.employers"
)

var funcs = map[string]Func{
	SummaryLength:         summaryLength,
	SummaryNoFirstPerson:  summaryNoFirstPerson,
	SummaryMetrics:        summaryMetrics,
	SummaryKeywords:       summaryKeywords,
	SummaryKeywordDensity: summaryKeywordDensity,

	ExperienceMetrics:      experienceMetrics,
	ExperienceActionVerbs:  experienceActionVerbs,
	ExperienceAchievements: experienceAchievements,
	ExperienceProgression:  experienceProgression,

	SkillsOrganized: skillsOrganized,
	SkillsTechnical: skillsTechnical,
	SkillsSoft:      skillsSoft,
	SkillsTools:     skillsTools,

	EducationDates:       educationDates,
	EducationInstitution: educationInstitution,
	EducationDegreeField: educationDegreeField,

	CertificationsIssuer: certificationsIssuer,
	CertificationsDate:   certificationsDate,

	ProjectsDescription:  projectsDescription,
	ProjectsTechnologies: projectsTechnologies,
	ProjectsImpact:       projectsImpact,

	AchievementsMetrics:      achievementsMetrics,
	AchievementsQuantifiable: achievementsQuantifiable,

	LanguagesLevels: languagesLevels,

	ContactEmail:    contactEmail,
	ContactPhone:    contactPhone,
	ContactLinkedIn: contactLinkedIn,

	ConsistencyMetrics:   consistencyMetrics,
	ConsistencyEmployers: consistencyEmployers,
}

// Lookup returns the verifier registered under key.
func Lookup(key string) (Func, bool) {
	fn, ok := funcs[key]
	return fn, ok
}

// Keys lists every registered verifier key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(funcs))
	for k := range funcs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
