package resume

import (
	"fmt"
	"strings"
)

// OriginalInput is the user-supplied data the resume was generated from.
type OriginalInput struct {
	FirstName      string              `json:"firstName,omitempty"`
	LastName       string              `json:"lastName,omitempty"`
	Email          string              `json:"email,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	LinkedIn       string              `json:"linkedin,omitempty"`
	Profession     string              `json:"profession,omitempty"`
	TargetLevel    string              `json:"targetLevel,omitempty"`
	Language       string              `json:"language,omitempty"`
	Summary        string              `json:"summary,omitempty"`
	Skills         []string            `json:"skillsRaw,omitempty"`
	Experience     []*InputExperience  `json:"experience,omitempty"`
	Education      []*Education        `json:"education,omitempty"`
	Certifications []*Certification    `json:"certifications,omitempty"`
	Projects       []*InputProject     `json:"projects,omitempty"`
	Achievements   []*InputAchievement `json:"achievements,omitempty"`
	Languages      []*Language         `json:"languages,omitempty"`
}

type InputExperience struct {
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

type InputProject struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

type InputAchievement struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Corpus flattens every free-text value of the input into a single
// lower-cased string used for cross-checking generated facts.
func (in *OriginalInput) Corpus() string {
	if in == nil {
		return ""
	}

	parts := []string{in.Summary, in.Profession}
	parts = append(parts, in.Skills...)
	for _, e := range in.Experience {
		if e == nil {
			continue
		}
		parts = append(parts, e.Title, e.Company, e.Description)
		parts = append(parts, e.Achievements...)
	}
	for _, p := range in.Projects {
		if p == nil {
			continue
		}
		parts = append(parts, p.Name, p.Description)
		parts = append(parts, p.Technologies...)
	}
	for _, a := range in.Achievements {
		if a == nil {
			continue
		}
		parts = append(parts, a.Title, a.Description, a.Year)
	}
	for _, e := range in.Education {
		if e == nil {
			continue
		}
		parts = append(parts, e.Degree, e.Field, e.Institution)
	}
	return strings.ToLower(joinNonEmpty(parts, "\n"))
}

// Companies returns the employer names listed in the input.
func (in *OriginalInput) Companies() []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in.Experience))
	for _, e := range in.Experience {
		if e == nil {
			continue
		}
		if c := strings.TrimSpace(e.Company); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// SectionText renders a section as plain text for content classification.
func (g *Generated) SectionText(section Section) string {
	if g == nil {
		return ""
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		s := strings.TrimSpace(fmt.Sprintf(format, args...))
		if s == "" {
			return
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	field := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			line("%s: %s", label, value)
		}
	}

	switch section {
	case SectionSummary:
		line("%s", g.Summary)
	case SectionExperience:
		for _, e := range g.Experience {
			if e == nil {
				continue
			}
			line("%s at %s (%s)", e.Title, e.Company, e.Duration)
			line("%s", e.Description)
			for _, bullet := range e.Bullets() {
				line("- %s", bullet)
			}
		}
	case SectionSkills:
		field("Technical", strings.Join(nonEmpty(g.Skills.Technical), ", "))
		field("Soft", strings.Join(nonEmpty(g.Skills.Soft), ", "))
		field("Tools", strings.Join(nonEmpty(g.Skills.Tools), ", "))
	case SectionEducation:
		for _, e := range g.Education {
			if e == nil {
				continue
			}
			line("%s in %s, %s (%s)", e.Degree, e.Field, e.Institution, e.Date())
		}
	case SectionCertifications:
		for _, c := range g.Certifications {
			if c == nil {
				continue
			}
			line("%s, issued by %s (%s)", c.Name, c.Issuer, c.Date)
		}
	case SectionProjects:
		for _, p := range g.Projects {
			if p == nil {
				continue
			}
			line("%s: %s", p.Name, p.Description)
		}
	case SectionAchievements:
		for _, a := range nonEmpty(g.Achievements) {
			line("- %s", a)
		}
	case SectionLanguages:
		for _, l := range g.Languages {
			if l == nil {
				continue
			}
			field(l.Language, l.Level)
		}
	case SectionContact:
		field("Name", g.Contact.FullName)
		field("Email", g.Contact.Email)
		field("Phone", g.Contact.Phone)
		field("Location", g.Contact.Location)
		field("LinkedIn", g.Contact.LinkedIn)
	}

	return strings.TrimSpace(b.String())
}
