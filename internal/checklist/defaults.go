package checklist

import (
	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/verify"
)

func defaultSections() []Section {
	sections := []Section{
		{
			Key: resume.SectionSummary, Name: "Professional Summary", Mandatory: true,
			Items: []Item{
				{ID: "summary-length", Description: "Summary has an adequate length", Weight: 20, Required: true, Verifier: rule(verify.SummaryLength)},
				{ID: "summary-third-person", Description: "Summary avoids first-person pronouns", Weight: 20, Required: true, Verifier: rule(verify.SummaryNoFirstPerson)},
				{ID: "summary-metrics", Description: "Summary contains a quantifiable metric", Weight: 20, Verifier: rule(verify.SummaryMetrics)},
				{ID: "summary-ats-keywords", Description: "Summary contains ATS keywords", Weight: 15, Verifier: rule(verify.SummaryKeywords)},
				{ID: "summary-keyword-density", Description: "Keyword density is balanced", Weight: 10, Verifier: rule(verify.SummaryKeywordDensity)},
				{ID: "summary-content", Description: "Summary content is authentic", Weight: 15, Verifier: quality()},
			},
		},
		{
			Key: resume.SectionExperience, Name: "Work Experience", Mandatory: true,
			Items: []Item{
				{ID: "experience-metrics", Description: "Experience entries include quantifiable metrics", Weight: 25, Verifier: rule(verify.ExperienceMetrics)},
				{ID: "experience-action-verbs", Description: "Bullets start with strong action verbs", Weight: 20, Required: true, Verifier: rule(verify.ExperienceActionVerbs)},
				{ID: "experience-achievements", Description: "Achievements are distinct from responsibilities", Weight: 25, Required: true, Verifier: rule(verify.ExperienceAchievements)},
				{ID: "experience-progression", Description: "Titles show career progression", Weight: 15, Verifier: rule(verify.ExperienceProgression)},
				{ID: "experience-content", Description: "Experience content is authentic", Weight: 15, Verifier: quality()},
			},
		},
		{
			Key: resume.SectionSkills, Name: "Skills", Mandatory: true,
			Items: []Item{
				{ID: "skills-organized", Description: "Skills are organized into categories", Weight: 25, Verifier: rule(verify.SkillsOrganized)},
				{ID: "skills-technical", Description: "At least one technical skill", Weight: 25, Required: true, Verifier: rule(verify.SkillsTechnical)},
				{ID: "skills-soft", Description: "At least one soft skill", Weight: 15, Verifier: rule(verify.SkillsSoft)},
				{ID: "skills-tools", Description: "At least one tool or technology", Weight: 20, Verifier: rule(verify.SkillsTools)},
				{ID: "skills-content", Description: "Skills content is authentic", Weight: 15, Verifier: quality()},
			},
		},
		{
			Key: resume.SectionEducation, Name: "Education", Mandatory: true,
			Items: []Item{
				{ID: "education-dates", Description: "Every entry has a date", Weight: 25, Required: true, Verifier: rule(verify.EducationDates)},
				{ID: "education-institution", Description: "Every entry names an institution", Weight: 25, Required: true, Verifier: rule(verify.EducationInstitution)},
				{ID: "education-degree-field", Description: "Every entry has a degree and field", Weight: 30, Required: true, Verifier: rule(verify.EducationDegreeField)},
				{ID: "education-content", Description: "Education content is authentic", Weight: 20, Verifier: quality()},
			},
		},
		{
			Key: resume.SectionCertifications, Name: "Certifications",
			Items: []Item{
				{ID: "certifications-issuer", Description: "Every certification names its issuer", Weight: 40, Verifier: rule(verify.CertificationsIssuer)},
				{ID: "certifications-date", Description: "Every certification has a date", Weight: 30, Verifier: rule(verify.CertificationsDate)},
				{ID: "certifications-content", Description: "Certifications content is authentic", Weight: 30, Verifier: quality()},
			},
		},
		{
			Key: resume.SectionProjects, Name: "Projects",
			Items: []Item{
				{ID: "projects-description", Description: "Every project has a meaningful description", Weight: 40, Required: true, Verifier: rule(verify.ProjectsDescription)},
				{ID: "projects-technologies", Description: "Every project lists technologies", Weight: 30, Verifier: rule(verify.ProjectsTechnologies)},
				{ID: "projects-impact", Description: "Every project states its impact", Weight: 30, Verifier: rule(verify.ProjectsImpact)},
			},
		},
		{
			Key: resume.SectionAchievements, Name: "Achievements",
			Items: []Item{
				{ID: "achievements-metrics", Description: "Achievements carry concrete metrics", Weight: 50, Verifier: rule(verify.AchievementsMetrics)},
				{ID: "achievements-quantifiable", Description: "Every achievement is quantifiable", Weight: 50, Verifier: rule(verify.AchievementsQuantifiable)},
			},
		},
		{
			Key: resume.SectionLanguages, Name: "Languages",
			Items: []Item{
				{ID: "languages-levels", Description: "Every language has a proficiency level", Weight: 100, Required: true, Verifier: rule(verify.LanguagesLevels)},
			},
		},
		{
			Key: resume.SectionContact, Name: "Contact Information", Mandatory: true,
			Items: []Item{
				{ID: "contact-email", Description: "Professional email address", Weight: 35, Required: true, Verifier: rule(verify.ContactEmail)},
				{ID: "contact-phone", Description: "Phone number", Weight: 30, Required: true, Verifier: rule(verify.ContactPhone)},
				{ID: "contact-linkedin", Description: "LinkedIn profile URL", Weight: 20, Verifier: rule(verify.ContactLinkedIn)},
				{ID: "contact-content", Description: "Contact details are authentic", Weight: 15, Verifier: quality()},
			},
		},
		{
			Key: resume.SectionConsistency, Name: "Consistency with Input", RequiresInput: true,
			Items: []Item{
				{ID: "consistency-metrics", Description: "Metrics are grounded in the original input", Weight: 60, Verifier: rule(verify.ConsistencyMetrics)},
				{ID: "consistency-employers", Description: "Employers are grounded in the original input", Weight: 40, Verifier: rule(verify.ConsistencyEmployers)},
			},
		},
	}

	for i := range sections {
		for j := range sections[i].Items {
			sections[i].Items[j].Section = sections[i].Key
		}
	}
	return sections
}

// DefaultSectionWeights is the relative importance of each section in the
// overall score.
func DefaultSectionWeights() map[resume.Section]float64 {
	return map[resume.Section]float64{
		resume.SectionSummary:        20,
		resume.SectionExperience:     30,
		resume.SectionSkills:         15,
		resume.SectionEducation:      10,
		resume.SectionContact:        10,
		resume.SectionProjects:       5,
		resume.SectionAchievements:   5,
		resume.SectionConsistency:    5,
		resume.SectionCertifications: 3,
		resume.SectionLanguages:      2,
	}
}
