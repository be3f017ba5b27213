package verify

import (
	"strings"
	"testing"

	"github.com/spigell/resume-scorer/internal/resume"
)

func run(t *testing.T, key string, r *resume.Generated, in *resume.OriginalInput) Result {
	t.Helper()
	fn, ok := Lookup(key)
	if !ok {
		t.Fatalf("verifier %q is not registered", key)
	}
	return fn(r, in)
}

func TestEveryVerifierHandlesEmptyResume(t *testing.T) {
	t.Parallel()

	for _, key := range Keys() {
		res := run(t, key, nil, nil)
		if res.Reason == "" {
			t.Fatalf("%s: expected a reason for the empty resume", key)
		}
		if res.Passed && !strings.HasPrefix(key, "consistency.") {
			t.Fatalf("%s: expected empty resume to fail", key)
		}
	}
}

func TestMetricDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		strict bool
		expect bool
	}{
		{name: "percentage", text: "grew revenue 25%", strict: true, expect: true},
		{name: "multiplier", text: "made builds 3x faster", strict: true, expect: true},
		{name: "currency", text: "saved $1.2M per year", strict: true, expect: true},
		{name: "count of things", text: "served 3 million users", strict: true, expect: true},
		{name: "bare number is loose only", text: "shipped 12 features", strict: false, expect: true},
		{name: "bare number is not strict", text: "shipped 12 features", strict: true, expect: false},
		{name: "years are not metrics", text: "joined the company in 2019", strict: false, expect: false},
		{name: "no digits", text: "improved system reliability", strict: false, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var found []string
			if tt.strict {
				found = strictMetrics(tt.text)
			} else {
				found = metrics(tt.text)
			}
			if got := len(found) > 0; got != tt.expect {
				t.Fatalf("expected %v for %q, got %v (%v)", tt.expect, tt.text, got, found)
			}
		})
	}
}

func TestSummaryFirstPerson(t *testing.T) {
	t.Parallel()

	summary := strings.TrimSpace(strings.Repeat("I led the platform team at my company and I am proud of the work. ", 7))
	r := &resume.Generated{Summary: summary}

	if res := run(t, SummaryLength, r, nil); !res.Passed {
		t.Fatalf("expected length check to pass: %s", res.Reason)
	}

	res := run(t, SummaryNoFirstPerson, r, nil)
	if res.Passed {
		t.Fatalf("expected first-person check to fail")
	}
	if !strings.Contains(res.Reason, "first person") {
		t.Fatalf("unexpected reason: %s", res.Reason)
	}
	if !strings.Contains(res.Evidence, "I") || !strings.Contains(res.Evidence, "my") {
		t.Fatalf("expected pronouns as evidence, got %q", res.Evidence)
	}
}

func TestSummaryThirdPerson(t *testing.T) {
	t.Parallel()

	r := &resume.Generated{Summary: "Senior backend engineer experienced in designing cloud platforms and distributed systems. " +
		"Led the migration of 40 services to Kubernetes, improved performance by 35% and reduced infrastructure costs by $200K annually. " +
		"Skilled in Go, data pipelines and agile delivery with a strong focus on quality and collaboration across product teams."}

	for _, key := range []string{SummaryLength, SummaryNoFirstPerson, SummaryMetrics, SummaryKeywords, SummaryKeywordDensity} {
		if res := run(t, key, r, nil); !res.Passed {
			t.Fatalf("%s: expected pass, got %q", key, res.Reason)
		}
	}
}

func TestSummaryKeywordStuffing(t *testing.T) {
	t.Parallel()

	r := &resume.Generated{Summary: strings.Repeat("cloud data systems quality agile platform growth leadership ", 4)}
	res := run(t, SummaryKeywordDensity, r, nil)
	if res.Passed {
		t.Fatalf("expected keyword stuffing to fail")
	}
	if !strings.Contains(res.Reason, "too high") {
		t.Fatalf("unexpected reason: %s", res.Reason)
	}
}

func TestSummaryTooShort(t *testing.T) {
	t.Parallel()

	res := run(t, SummaryLength, &resume.Generated{Summary: "Go developer."}, nil)
	if res.Passed || !strings.Contains(res.Reason, "too short") {
		t.Fatalf("expected short summary to fail, got %+v", res)
	}
}

func TestExperienceWithoutMetrics(t *testing.T) {
	t.Parallel()

	r := &resume.Generated{Experience: []*resume.Experience{{
		Title:        "Engineer",
		Achievements: []string{"Improved system reliability"},
	}}}

	res := run(t, ExperienceMetrics, r, nil)
	if res.Passed {
		t.Fatalf("expected metrics check to fail")
	}
	if res.Reason != "no quantifiable metric found" {
		t.Fatalf("unexpected reason: %s", res.Reason)
	}

	for _, key := range []string{ExperienceAchievements, ExperienceActionVerbs, ExperienceProgression} {
		if res := run(t, key, r, nil); !res.Passed {
			t.Fatalf("%s: expected pass, got %q", key, res.Reason)
		}
	}
}

func TestExperienceMetricsNeedHalfTheEntries(t *testing.T) {
	t.Parallel()

	entries := []*resume.Experience{
		{Title: "Engineer", Achievements: []string{"Cut p99 latency by 40%"}},
		{Title: "Engineer", Achievements: []string{"Maintained services"}},
		{Title: "Engineer", Achievements: []string{"Wrote documentation"}},
	}

	if res := run(t, ExperienceMetrics, &resume.Generated{Experience: entries}, nil); res.Passed {
		t.Fatalf("expected one of three entries to be insufficient")
	}
	if res := run(t, ExperienceMetrics, &resume.Generated{Experience: entries[:2]}, nil); !res.Passed {
		t.Fatalf("expected one of two entries to be sufficient: %s", res.Reason)
	}
}

func TestExperienceActionVerbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		bullets []string
		expect  bool
	}{
		{name: "strong verbs", bullets: []string{"Built the billing service", "Led a team of 5", "Reduced costs by 10%"}, expect: true},
		{name: "weak openers", bullets: []string{"Responsible for deployments", "Helped the team", "Built dashboards"}, expect: false},
		{name: "past tense outside list", bullets: []string{"Containerized legacy apps"}, expect: true},
		{name: "duty phrasing", bullets: []string{"Worked on payments", "Participated in on-call"}, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &resume.Generated{Experience: []*resume.Experience{{Title: "Engineer", Responsibilities: tt.bullets}}}
			if res := run(t, ExperienceActionVerbs, r, nil); res.Passed != tt.expect {
				t.Fatalf("expected %v, got %v (%s)", tt.expect, res.Passed, res.Reason)
			}
		})
	}
}

func TestExperienceAchievementsDistinctFromDuties(t *testing.T) {
	t.Parallel()

	r := &resume.Generated{Experience: []*resume.Experience{{
		Title:            "Engineer",
		Achievements:     []string{"Maintained the CI pipeline."},
		Responsibilities: []string{"maintained the ci pipeline"},
	}}}

	if res := run(t, ExperienceAchievements, r, nil); res.Passed {
		t.Fatalf("expected restated duty not to count as an achievement")
	}
}

func TestExperienceProgression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []*resume.Experience
		expect  bool
	}{
		{
			name:    "most recent first without dates",
			entries: []*resume.Experience{{Title: "Senior Engineer"}, {Title: "Junior Engineer"}},
			expect:  true,
		},
		{
			name:    "step down without dates",
			entries: []*resume.Experience{{Title: "Junior Engineer"}, {Title: "Engineering Manager"}},
			expect:  false,
		},
		{
			name: "ordered by start date",
			entries: []*resume.Experience{
				{Title: "Junior Developer", StartDate: "2015-01"},
				{Title: "Tech Lead", StartDate: "2019-06"},
			},
			expect: true,
		},
		{
			name:    "unknown titles are ignored",
			entries: []*resume.Experience{{Title: "Consultant"}, {Title: "Developer"}},
			expect:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := run(t, ExperienceProgression, &resume.Generated{Experience: tt.entries}, nil)
			if res.Passed != tt.expect {
				t.Fatalf("expected %v, got %v (%s)", tt.expect, res.Passed, res.Reason)
			}
		})
	}
}

func TestSkills(t *testing.T) {
	t.Parallel()

	r := &resume.Generated{Skills: resume.Skills{Technical: []string{"Go", " "}}}

	if res := run(t, SkillsOrganized, r, nil); res.Passed || !strings.HasPrefix(res.Reason, "skills fill 1 of 3 categories") {
		t.Fatalf("expected a single category to be unorganized: %+v", res)
	}
	if res := run(t, SkillsOrganized, &resume.Generated{}, nil); res.Passed || !strings.HasPrefix(res.Reason, "skills fill 0 of 3 categories") {
		t.Fatalf("expected empty skills to be unorganized: %+v", res)
	}
	if res := run(t, SkillsTechnical, r, nil); !res.Passed {
		t.Fatalf("expected technical skills to pass: %s", res.Reason)
	}
	if res := run(t, SkillsSoft, r, nil); res.Passed || res.Reason != "no soft skills listed" {
		t.Fatalf("unexpected soft skills result: %+v", res)
	}
}

func TestEducation(t *testing.T) {
	t.Parallel()

	complete := &resume.Education{Degree: "BSc", Field: "Computer Science", Institution: "MIT", GraduationDate: "2015"}
	missingDate := &resume.Education{Degree: "MSc", Field: "Mathematics", Institution: "ETH"}

	r := &resume.Generated{Education: []*resume.Education{complete}}
	for _, key := range []string{EducationDates, EducationInstitution, EducationDegreeField} {
		if res := run(t, key, r, nil); !res.Passed {
			t.Fatalf("%s: expected pass, got %q", key, res.Reason)
		}
	}

	r.Education = append(r.Education, missingDate)
	res := run(t, EducationDates, r, nil)
	if res.Passed {
		t.Fatalf("expected missing date to fail")
	}
	if res.Reason != `education entry "ETH" has no date` {
		t.Fatalf("unexpected reason: %s", res.Reason)
	}
}

func TestProjects(t *testing.T) {
	t.Parallel()

	r := &resume.Generated{Projects: []*resume.Project{{
		Name:         "Search",
		Description:  "Full-text search service serving 10,000 users across the company",
		Technologies: []string{"Go", "Elasticsearch"},
	}}}
	for _, key := range []string{ProjectsDescription, ProjectsTechnologies, ProjectsImpact} {
		if res := run(t, key, r, nil); !res.Passed {
			t.Fatalf("%s: expected pass, got %q", key, res.Reason)
		}
	}

	r.Projects[0].Description = "A tool"
	if res := run(t, ProjectsDescription, r, nil); res.Passed {
		t.Fatalf("expected short description to fail")
	}
	if res := run(t, ProjectsImpact, r, nil); res.Passed {
		t.Fatalf("expected missing impact to fail")
	}
}

func TestAchievements(t *testing.T) {
	t.Parallel()

	good := &resume.Generated{Achievements: []string{"Cut cloud costs by 30%", "Won the company hackathon"}}
	if res := run(t, AchievementsMetrics, good, nil); !res.Passed {
		t.Fatalf("expected metrics to pass: %s", res.Reason)
	}
	if res := run(t, AchievementsQuantifiable, good, nil); !res.Passed {
		t.Fatalf("expected quantifiable to pass: %s", res.Reason)
	}

	vague := &resume.Generated{Achievements: []string{"Did great work"}}
	if res := run(t, AchievementsMetrics, vague, nil); res.Passed {
		t.Fatalf("expected vague achievement to fail metrics")
	}
	if res := run(t, AchievementsQuantifiable, vague, nil); res.Passed {
		t.Fatalf("expected vague achievement to fail quantifiable")
	}
}

func TestLanguageLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level  string
		expect bool
	}{
		{level: "C1 / Fluent", expect: true},
		{level: "Native", expect: true},
		{level: "Upper-Intermediate", expect: true},
		{level: "Full professional proficiency", expect: true},
		{level: "good", expect: false},
		{level: "", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			r := &resume.Generated{Languages: []*resume.Language{{Language: "English", Level: tt.level}}}
			if res := run(t, LanguagesLevels, r, nil); res.Passed != tt.expect {
				t.Fatalf("expected %v for %q, got %v", tt.expect, tt.level, res.Passed)
			}
		})
	}
}

func TestContact(t *testing.T) {
	t.Parallel()

	emails := []struct {
		email  string
		expect bool
	}{
		{email: "jane.doe@acme.com", expect: true},
		{email: "jane@mailinator.com", expect: false},
		{email: "partyboy@gmail.com", expect: false},
		{email: "jdoe1987123@gmail.com", expect: false},
		{email: "test@acme.com", expect: false},
		{email: "not-an-email", expect: false},
	}
	for _, tt := range emails {
		r := &resume.Generated{Contact: resume.Contact{Email: tt.email}}
		if res := run(t, ContactEmail, r, nil); res.Passed != tt.expect {
			t.Fatalf("email %q: expected %v, got %v (%s)", tt.email, tt.expect, res.Passed, res.Reason)
		}
	}

	r := &resume.Generated{Contact: resume.Contact{Phone: "+1 (555) 123-4567", LinkedIn: "https://www.linkedin.com/in/jane-doe"}}
	if res := run(t, ContactPhone, r, nil); !res.Passed {
		t.Fatalf("expected phone to pass: %s", res.Reason)
	}
	if res := run(t, ContactLinkedIn, r, nil); !res.Passed {
		t.Fatalf("expected linkedin to pass: %s", res.Reason)
	}

	r.Contact = resume.Contact{Phone: "123", LinkedIn: "linkedin.com/company/acme"}
	if res := run(t, ContactPhone, r, nil); res.Passed {
		t.Fatalf("expected short phone to fail")
	}
	if res := run(t, ContactLinkedIn, r, nil); res.Passed {
		t.Fatalf("expected company page to fail")
	}
}

func TestConsistency(t *testing.T) {
	t.Parallel()

	generated := &resume.Generated{Experience: []*resume.Experience{
		{Company: "Acme Corp", Achievements: []string{"Reduced costs by 30%"}},
	}}
	input := &resume.OriginalInput{Experience: []*resume.InputExperience{
		{Company: "Acme Corp", Achievements: []string{"reduced costs 30%"}},
	}}

	if res := run(t, ConsistencyMetrics, generated, nil); !res.Passed {
		t.Fatalf("expected missing input to pass")
	}
	for _, key := range []string{ConsistencyMetrics, ConsistencyEmployers} {
		if res := run(t, key, generated, input); !res.Passed {
			t.Fatalf("%s: expected pass, got %q", key, res.Reason)
		}
	}

	generated.Experience = append(generated.Experience, &resume.Experience{
		Company:      "Globex",
		Achievements: []string{"Grew revenue by 50%"},
	})

	res := run(t, ConsistencyMetrics, generated, input)
	if res.Passed || res.Evidence != "50%" {
		t.Fatalf("expected invented metric to fail, got %+v", res)
	}
	res = run(t, ConsistencyEmployers, generated, input)
	if res.Passed || res.Evidence != "Globex" {
		t.Fatalf("expected unknown employer to fail, got %+v", res)
	}
}
