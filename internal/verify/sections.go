package verify

import (
	"strings"

	"github.com/spigell/resume-scorer/internal/resume"
)

const (
	minSkillCategories       = 2
	minProjectDescriptionLen = 40
)

func skillsOf(r *resume.Generated) resume.Skills {
	if r == nil {
		return resume.Skills{}
	}
	return r.Skills
}

func skillsOrganized(r *resume.Generated, _ *resume.OriginalInput) Result {
	s := skillsOf(r)
	var categories int
	for _, c := range [][]string{s.Technical, s.Soft, s.Tools} {
		if len(nonEmpty(c)) > 0 {
			categories++
		}
	}
	if categories < minSkillCategories {
		return fail("skills fill %d of 3 categories; split them into technical, soft and tools", categories)
	}
	return pass("skills are organized into %d categories", categories)
}

func skillCategory(name string, items []string) Result {
	items = nonEmpty(items)
	if len(items) == 0 {
		return fail("no %s skills listed", name)
	}
	return pass("%d %s skill(s) listed", len(items), name).withEvidence(preview(items, 5))
}

func skillsTechnical(r *resume.Generated, _ *resume.OriginalInput) Result {
	return skillCategory("technical", skillsOf(r).Technical)
}

func skillsSoft(r *resume.Generated, _ *resume.OriginalInput) Result {
	return skillCategory("soft", skillsOf(r).Soft)
}

func skillsTools(r *resume.Generated, _ *resume.OriginalInput) Result {
	return skillCategory("tool", skillsOf(r).Tools)
}

// everyEntry fails on the first entry rejected by ok and on an empty list.
func everyEntry[T any](entries []*T, empty, passed string, ok func(*T) (string, bool)) Result {
	var seen int
	for _, e := range entries {
		if e == nil {
			continue
		}
		seen++
		if reason, good := ok(e); !good {
			return fail("%s", reason)
		}
	}
	if seen == 0 {
		return fail("%s", empty)
	}
	return pass("%s", passed)
}

func educationEntries(r *resume.Generated) []*resume.Education {
	if r == nil {
		return nil
	}
	return r.Education
}

func educationDates(r *resume.Generated, _ *resume.OriginalInput) Result {
	return everyEntry(educationEntries(r), "no education provided", "every education entry has a date",
		func(e *resume.Education) (string, bool) {
			return "education entry " + label(e.Institution, e.Degree) + " has no date", e.Date() != ""
		})
}

func educationInstitution(r *resume.Generated, _ *resume.OriginalInput) Result {
	return everyEntry(educationEntries(r), "no education provided", "every education entry names an institution",
		func(e *resume.Education) (string, bool) {
			return "education entry " + label(e.Degree, e.Field) + " has no institution", !blank(e.Institution)
		})
}

func educationDegreeField(r *resume.Generated, _ *resume.OriginalInput) Result {
	return everyEntry(educationEntries(r), "no education provided", "every education entry has a degree and field",
		func(e *resume.Education) (string, bool) {
			return "education entry " + label(e.Institution, "") + " is missing its degree or field of study",
				!blank(e.Degree) && !blank(e.Field)
		})
}

func certificationEntries(r *resume.Generated) []*resume.Certification {
	if r == nil {
		return nil
	}
	return r.Certifications
}

func certificationsIssuer(r *resume.Generated, _ *resume.OriginalInput) Result {
	return everyEntry(certificationEntries(r), "no certifications provided", "every certification names its issuer",
		func(c *resume.Certification) (string, bool) {
			return "certification " + label(c.Name, "") + " has no issuer", !blank(c.Issuer)
		})
}

func certificationsDate(r *resume.Generated, _ *resume.OriginalInput) Result {
	return everyEntry(certificationEntries(r), "no certifications provided", "every certification has a date",
		func(c *resume.Certification) (string, bool) {
			return "certification " + label(c.Name, "") + " has no date", !blank(c.Date)
		})
}

func projectEntries(r *resume.Generated) []*resume.Project {
	if r == nil {
		return nil
	}
	return r.Projects
}

func projectsDescription(r *resume.Generated, _ *resume.OriginalInput) Result {
	return everyEntry(projectEntries(r), "no projects provided", "every project has a meaningful description",
		func(p *resume.Project) (string, bool) {
			return "project " + label(p.Name, "") + " needs a description of at least 40 characters",
				len([]rune(strings.TrimSpace(p.Description))) >= minProjectDescriptionLen
		})
}

func projectsTechnologies(r *resume.Generated, _ *resume.OriginalInput) Result {
	return everyEntry(projectEntries(r), "no projects provided", "every project lists its technologies",
		func(p *resume.Project) (string, bool) {
			return "project " + label(p.Name, "") + " lists no technologies", len(nonEmpty(p.Technologies)) > 0
		})
}

func projectsImpact(r *resume.Generated, _ *resume.OriginalInput) Result {
	return everyEntry(projectEntries(r), "no projects provided", "every project states its impact",
		func(p *resume.Project) (string, bool) {
			return "project " + label(p.Name, "") + " has no impact statement",
				!blank(p.Impact) || len(strictMetrics(p.Description)) > 0
		})
}

func label(primary, fallback string) string {
	for _, v := range []string{primary, fallback} {
		if v = strings.TrimSpace(v); v != "" {
			return "\"" + v + "\""
		}
	}
	return "(unnamed)"
}
