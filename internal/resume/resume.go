package resume

import (
	"strings"
)

// Section names a part of a resume.
type Section string

const (
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
	SectionProjects       Section = "projects"
	SectionAchievements   Section = "achievements"
	SectionLanguages      Section = "languages"
	SectionContact        Section = "contact"
	// SectionConsistency groups cross-checks between the generated resume
	// and the original input. It has no content of its own.
	SectionConsistency Section = "consistency"
)

// Generated is the enhanced resume under evaluation.
type Generated struct {
	Summary        string          `json:"professionalSummary,omitempty"`
	Experience     []*Experience   `json:"experience,omitempty"`
	Skills         Skills          `json:"skills,omitempty"`
	Education      []*Education    `json:"education,omitempty"`
	Certifications []*Certification `json:"certifications,omitempty"`
	Projects       []*Project      `json:"projects,omitempty"`
	Achievements   []string        `json:"achievements,omitempty"`
	Languages      []*Language     `json:"languages,omitempty"`
	Contact        Contact         `json:"contactInfo,omitempty"`
}

type Experience struct {
	Title            string   `json:"title,omitempty"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	StartDate        string   `json:"startDate,omitempty"`
	EndDate          string   `json:"endDate,omitempty"`
	Description      string   `json:"description,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	Impact           []string `json:"impact,omitempty"`
}

// Bullets returns the trimmed, non-empty achievement and responsibility lines.
// When the entry has no bullets the description is used as a single bullet.
func (e *Experience) Bullets() []string {
	bullets := make([]string, 0, len(e.Achievements)+len(e.Responsibilities))
	for _, line := range append(append([]string{}, e.Achievements...), e.Responsibilities...) {
		if line = strings.TrimSpace(line); line != "" {
			bullets = append(bullets, line)
		}
	}
	if len(bullets) == 0 {
		if d := strings.TrimSpace(e.Description); d != "" {
			bullets = append(bullets, d)
		}
	}
	return bullets
}

// Text joins every free-text field of the entry.
func (e *Experience) Text() string {
	parts := []string{e.Description}
	parts = append(parts, e.Achievements...)
	parts = append(parts, e.Responsibilities...)
	parts = append(parts, e.Impact...)
	return joinNonEmpty(parts, " ")
}

type Skills struct {
	Technical []string `json:"technical,omitempty"`
	Soft      []string `json:"soft,omitempty"`
	Tools     []string `json:"tools,omitempty"`
}

func (s Skills) Len() int {
	return len(nonEmpty(s.Technical)) + len(nonEmpty(s.Soft)) + len(nonEmpty(s.Tools))
}

type Education struct {
	Degree         string `json:"degree,omitempty"`
	Field          string `json:"field,omitempty"`
	Institution    string `json:"institution,omitempty"`
	Duration       string `json:"duration,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// Date returns the first populated date-like field.
func (e *Education) Date() string {
	for _, v := range []string{e.Duration, e.GraduationDate} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

type Project struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Impact       string   `json:"impact,omitempty"`
	URL          string   `json:"url,omitempty"`
}

type Language struct {
	Language string `json:"language,omitempty"`
	Level    string `json:"level,omitempty"`
}

type Contact struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

func (c Contact) IsEmpty() bool {
	return strings.TrimSpace(c.FullName+c.Email+c.Phone+c.Location+c.LinkedIn) == ""
}

// Has reports whether the resume carries any data for the section.
func (g *Generated) Has(section Section) bool {
	if g == nil {
		return false
	}

	switch section {
	case SectionSummary:
		return strings.TrimSpace(g.Summary) != ""
	case SectionExperience:
		return len(g.Experience) > 0
	case SectionSkills:
		return g.Skills.Len() > 0
	case SectionEducation:
		return len(g.Education) > 0
	case SectionCertifications:
		return len(g.Certifications) > 0
	case SectionProjects:
		return len(g.Projects) > 0
	case SectionAchievements:
		return len(nonEmpty(g.Achievements)) > 0
	case SectionLanguages:
		return len(g.Languages) > 0
	case SectionContact:
		return !g.Contact.IsEmpty()
	default:
		return false
	}
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func joinNonEmpty(items []string, sep string) string {
	return strings.Join(nonEmpty(items), sep)
}
